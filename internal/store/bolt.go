package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.etcd.io/bbolt"
)

// Bolt keeps each collection in its own bucket: key id -> document JSON.
type Bolt struct {
	storage *bbolt.DB
}

// NewBolt opens (or creates) a Bolt database at the specified path.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Documents(_ context.Context, collection string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)

	err := b.storage.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(collection))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			// bbolt values are only valid inside the transaction
			doc := make([]byte, len(v))
			copy(doc, v)

			out[string(k)] = doc

			return nil
		})
	})

	return out, err
}

func (b *Bolt) Insert(_ context.Context, collection, id string, doc json.RawMessage) error {
	if collection == "" || id == "" {
		return errors.New("collection and id are required")
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(collection))
		if err != nil {
			return err
		}

		return bucket.Put([]byte(id), doc)
	})
}

func (b *Bolt) Remove(_ context.Context, collection, id string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(collection))
		if bucket == nil {
			return nil
		}

		return bucket.Delete([]byte(id))
	})
}
