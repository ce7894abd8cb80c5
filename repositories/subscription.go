//go:generate go run go.uber.org/mock/mockgen -source=subscription.go -destination=../mocks/mock_subscription_repository.go -package=mocks
package repositories

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"chat-hall/domain"
)

type ISubscriptionRepository interface {
	Save(sub domain.Subscription) (domain.Subscription, error)
	Find(userID domain.UserID, chatID domain.ChatID) (domain.Subscription, error)
	FindActiveByChat(chatID domain.ChatID) ([]domain.Subscription, error)
	FindActiveByUser(userID domain.UserID) ([]domain.Subscription, error)
	DeleteByUser(userID domain.UserID) error
	DeleteByChat(chatID domain.ChatID) error
}

// SubscriptionRepository stores one row per (user, chat) pair. The primary
// key is chat-major so that resolving a chat's audience is a single prefix
// scan; a user-major index key mirrors every row for the reverse lookup.
type SubscriptionRepository struct {
	db *badger.DB
}

func NewSubscriptionRepository(db *badger.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func subKey(chatID domain.ChatID, userID domain.UserID) []byte {
	return []byte(fmt.Sprintf("sub:%020d:%020d", chatID, userID))
}

func subUserKey(userID domain.UserID, chatID domain.ChatID) []byte {
	return []byte(fmt.Sprintf("sub:user:%020d:%020d", userID, chatID))
}

func (r *SubscriptionRepository) Save(sub domain.Subscription) (domain.Subscription, error) {
	err := r.db.Update(func(txn *badger.Txn) error {
		data, err := encode(sub)
		if err != nil {
			return err
		}
		if err := txn.Set(subKey(sub.ChatID, sub.UserID), data); err != nil {
			return err
		}
		return txn.Set(subUserKey(sub.UserID, sub.ChatID), nil)
	})
	if err != nil {
		return domain.Subscription{}, storage(err)
	}
	return sub, nil
}

func (r *SubscriptionRepository) Find(userID domain.UserID, chatID domain.ChatID) (domain.Subscription, error) {
	var sub domain.Subscription
	err := r.db.View(func(txn *badger.Txn) error {
		return get(txn, subKey(chatID, userID), &sub)
	})
	if err != nil {
		return domain.Subscription{}, storage(err)
	}
	return sub, nil
}

func (r *SubscriptionRepository) FindActiveByChat(chatID domain.ChatID) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(fmt.Sprintf("sub:%020d:", chatID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var sub domain.Subscription
			err := it.Item().Value(func(val []byte) error {
				return decode(val, &sub)
			})
			if err != nil {
				return err
			}
			if sub.IsActive {
				subs = append(subs, sub)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storage(err)
	}
	return subs, nil
}

func (r *SubscriptionRepository) FindActiveByUser(userID domain.UserID) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(fmt.Sprintf("sub:user:%020d:", userID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var chatID domain.ChatID
			key := string(it.Item().Key())
			if _, err := fmt.Sscanf(key[len(prefix):], "%d", &chatID); err != nil {
				return err
			}
			var sub domain.Subscription
			if err := get(txn, subKey(chatID, userID), &sub); err != nil {
				return err
			}
			if sub.IsActive {
				subs = append(subs, sub)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storage(err)
	}
	return subs, nil
}

// DeleteByUser purges every row of a removed user, active or not.
func (r *SubscriptionRepository) DeleteByUser(userID domain.UserID) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false})
		prefix := []byte(fmt.Sprintf("sub:user:%020d:", userID))
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, key := range keys {
			var chatID domain.ChatID
			if _, err := fmt.Sscanf(string(key[len(prefix):]), "%d", &chatID); err != nil {
				return err
			}
			if err := txn.Delete(subKey(chatID, userID)); err != nil {
				return err
			}
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	return storage(err)
}

// DeleteByChat purges every row of a deleted chat, active or not.
func (r *SubscriptionRepository) DeleteByChat(chatID domain.ChatID) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false})
		prefix := []byte(fmt.Sprintf("sub:%020d:", chatID))
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, key := range keys {
			var userID domain.UserID
			if _, err := fmt.Sscanf(string(key[len(prefix):]), "%d", &userID); err != nil {
				return err
			}
			if err := txn.Delete(key); err != nil {
				return err
			}
			if err := txn.Delete(subUserKey(userID, chatID)); err != nil {
				return err
			}
		}
		return nil
	})
	return storage(err)
}
