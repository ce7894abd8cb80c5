//go:generate go run go.uber.org/mock/mockgen -source=chat.go -destination=../mocks/mock_chat_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"chat-hall/domain"
	"chat-hall/errors"
)

type IChatRepository interface {
	Save(chat domain.Chat) (domain.Chat, error)
	FindByID(id domain.ChatID) (domain.Chat, error)
	FindAll() ([]domain.Chat, error)
	FindActive() (*domain.Chat, error)
	Delete(id domain.ChatID) error
}

type ChatRepository struct {
	db  *badger.DB
	log *slog.Logger
	seq *badger.Sequence
}

func NewChatRepository(db *badger.DB, log *slog.Logger) (*ChatRepository, error) {
	seq, err := db.GetSequence([]byte("seq:chat"), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("%w: chat sequence: %v", errors.ErrStorage, err)
	}
	return &ChatRepository{db: db, log: log, seq: seq}, nil
}

func (r *ChatRepository) Close() error {
	return r.seq.Release()
}

func chatKey(id domain.ChatID) []byte {
	return []byte(fmt.Sprintf("chat:%020d", id))
}

func (r *ChatRepository) Save(chat domain.Chat) (domain.Chat, error) {
	if chat.ID == 0 {
		id, err := nextID(r.seq)
		if err != nil {
			return domain.Chat{}, err
		}
		chat.ID = domain.ChatID(id)
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		data, err := encode(chat)
		if err != nil {
			return err
		}
		return txn.Set(chatKey(chat.ID), data)
	})
	if err != nil {
		return domain.Chat{}, storage(err)
	}
	return chat, nil
}

func (r *ChatRepository) FindByID(id domain.ChatID) (domain.Chat, error) {
	var chat domain.Chat
	err := r.db.View(func(txn *badger.Txn) error {
		return get(txn, chatKey(id), &chat)
	})
	if err != nil {
		return domain.Chat{}, storage(err)
	}
	return chat, nil
}

func (r *ChatRepository) FindAll() ([]domain.Chat, error) {
	var chats []domain.Chat
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte("chat:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var chat domain.Chat
			err := it.Item().Value(func(val []byte) error {
				return decode(val, &chat)
			})
			if err != nil {
				return err
			}
			chats = append(chats, chat)
		}
		return nil
	})
	if err != nil {
		return nil, storage(err)
	}
	return chats, nil
}

// FindActive returns the currently active chat, or nil when none is. The
// single-active invariant is enforced at the service layer; should the
// store ever contain more than one active chat (lost update), the lowest
// id wins and the anomaly is logged as a data-integrity warning.
func (r *ChatRepository) FindActive() (*domain.Chat, error) {
	chats, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	var active *domain.Chat
	extra := 0
	for i := range chats {
		if !chats[i].IsActive {
			continue
		}
		if active == nil {
			active = &chats[i]
			continue
		}
		extra++
	}
	if extra > 0 {
		r.log.Warn("more than one active chat persisted, keeping lowest id",
			"kept", active.ID, "extra", extra)
	}
	return active, nil
}

func (r *ChatRepository) Delete(id domain.ChatID) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		var chat domain.Chat
		if err := get(txn, chatKey(id), &chat); err != nil {
			return err
		}
		return txn.Delete(chatKey(id))
	})
	return storage(err)
}
