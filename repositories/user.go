//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"chat-hall/domain"
	"chat-hall/errors"
)

type IUserRepository interface {
	Save(user domain.User) (domain.User, error)
	FindByID(id domain.UserID) (domain.User, error)
	FindByUsername(username string) (domain.User, error)
	FindByEmail(email string) (domain.User, error)
	FindAll() ([]domain.User, error)
	FindAdmins() ([]domain.User, error)
	Delete(id domain.UserID) error
}

type UserRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

func NewUserRepository(db *badger.DB) (*UserRepository, error) {
	seq, err := db.GetSequence([]byte("seq:user"), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("%w: user sequence: %v", errors.ErrStorage, err)
	}
	return &UserRepository{db: db, seq: seq}, nil
}

// Close releases the id sequence. Unused ids in the current band are lost,
// which only leaves gaps in the numbering.
func (r *UserRepository) Close() error {
	return r.seq.Release()
}

func userKey(id domain.UserID) []byte {
	return []byte(fmt.Sprintf("user:%020d", id))
}

func usernameKey(username string) []byte {
	return []byte("user:name:" + username)
}

func emailKey(email string) []byte {
	return []byte("user:email:" + email)
}

// Save upserts a user. A zero id gets a fresh one assigned. The username
// and email index keys are kept in step inside the same transaction, so a
// profile update that renames the user never leaves a stale index behind.
func (r *UserRepository) Save(user domain.User) (domain.User, error) {
	if user.ID == 0 {
		id, err := nextID(r.seq)
		if err != nil {
			return domain.User{}, err
		}
		user.ID = domain.UserID(id)
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		var previous domain.User
		switch err := get(txn, userKey(user.ID), &previous); {
		case err == nil:
			if previous.Username != user.Username {
				if err := txn.Delete(usernameKey(previous.Username)); err != nil {
					return err
				}
			}
			if previous.Email != user.Email {
				if err := txn.Delete(emailKey(previous.Email)); err != nil {
					return err
				}
			}
		case !errors.Is(err, errors.ErrNotFound):
			return err
		}

		data, err := encode(user)
		if err != nil {
			return err
		}
		if err := txn.Set(userKey(user.ID), data); err != nil {
			return err
		}
		ref := []byte(fmt.Sprintf("%d", user.ID))
		if err := txn.Set(usernameKey(user.Username), ref); err != nil {
			return err
		}
		return txn.Set(emailKey(user.Email), ref)
	})
	if err != nil {
		return domain.User{}, storage(err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(id domain.UserID) (domain.User, error) {
	var user domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		return get(txn, userKey(id), &user)
	})
	if err != nil {
		return domain.User{}, storage(err)
	}
	return user, nil
}

func (r *UserRepository) FindByUsername(username string) (domain.User, error) {
	return r.findByIndex(usernameKey(username))
}

func (r *UserRepository) FindByEmail(email string) (domain.User, error) {
	return r.findByIndex(emailKey(email))
}

func (r *UserRepository) findByIndex(key []byte) (domain.User, error) {
	var user domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errors.ErrNotFound
			}
			return err
		}
		var id domain.UserID
		if err := item.Value(func(val []byte) error {
			_, scanErr := fmt.Sscanf(string(val), "%d", &id)
			return scanErr
		}); err != nil {
			return err
		}
		return get(txn, userKey(id), &user)
	})
	if err != nil {
		return domain.User{}, storage(err)
	}
	return user, nil
}

func (r *UserRepository) FindAll() ([]domain.User, error) {
	return r.scan(func(domain.User) bool { return true })
}

func (r *UserRepository) FindAdmins() ([]domain.User, error) {
	return r.scan(func(u domain.User) bool { return u.IsAdmin })
}

func (r *UserRepository) scan(keep func(domain.User) bool) ([]domain.User, error) {
	var users []domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		// "user::" sorts right after every "user:<digits>" key, so this
		// prefix only covers primary records, not the index keys.
		prefix := []byte("user:0")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var user domain.User
			err := it.Item().Value(func(val []byte) error {
				return decode(val, &user)
			})
			if err != nil {
				return err
			}
			if keep(user) {
				users = append(users, user)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storage(err)
	}
	return users, nil
}

// Delete removes the user record and its index keys. Subscription purging
// is the subscription repository's concern.
func (r *UserRepository) Delete(id domain.UserID) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		var user domain.User
		if err := get(txn, userKey(id), &user); err != nil {
			return err
		}
		if err := txn.Delete(usernameKey(user.Username)); err != nil {
			return err
		}
		if err := txn.Delete(emailKey(user.Email)); err != nil {
			return err
		}
		return txn.Delete(userKey(id))
	})
	return storage(err)
}
