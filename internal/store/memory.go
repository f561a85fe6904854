package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// Memory provides an in-memory implementation of Store.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

// NewMemory constructs an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]json.RawMessage),
	}
}

func (m *Memory) Ping() error {
	return nil
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) Documents(_ context.Context, collection string) (map[string]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := m.collections[collection]

	out := make(map[string]json.RawMessage, len(docs))
	for id, doc := range docs {
		out[id] = doc
	}

	return out, nil
}

func (m *Memory) Insert(_ context.Context, collection, id string, doc json.RawMessage) error {
	if collection == "" || id == "" {
		return errors.New("collection and id are required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	docs, ok := m.collections[collection]
	if !ok {
		docs = make(map[string]json.RawMessage)
		m.collections[collection] = docs
	}

	stored := make(json.RawMessage, len(doc))
	copy(stored, doc)

	docs[id] = stored

	return nil
}

func (m *Memory) Remove(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections[collection], id)

	return nil
}
