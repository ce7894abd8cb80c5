// Package repositories is the directory layer: lookup and upsert of User,
// Chat and Subscription records on BadgerDB. Values are stored as JSON so
// the viewer tool can inspect them without extra codecs; keys use zero
// padded decimal ids to keep lexicographical and numeric order aligned.
package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"chat-hall/errors"
)

const sequenceBandwidth = 64

// nextID returns a fresh id from the sequence, skipping 0 so that a zero
// id always means "not persisted yet".
func nextID(seq *badger.Sequence) (uint64, error) {
	for {
		id, err := seq.Next()
		if err != nil {
			return 0, fmt.Errorf("%w: id sequence: %v", errors.ErrStorage, err)
		}
		if id != 0 {
			return id, nil
		}
	}
}

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", errors.ErrStorage, err)
	}
	return data, nil
}

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode: %v", errors.ErrStorage, err)
	}
	return nil
}

// get loads and decodes one key inside an existing transaction.
func get(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotFound
		}
		return fmt.Errorf("%w: get %s: %v", errors.ErrStorage, key, err)
	}
	return item.Value(func(val []byte) error {
		return decode(val, v)
	})
}

func storage(err error) error {
	if err == nil || errors.Is(err, errors.ErrNotFound) || errors.Is(err, errors.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %v", errors.ErrStorage, err)
}
