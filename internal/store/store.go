package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/inovacc/bookstore/internal/application"
	"github.com/inovacc/bookstore/internal/store/sqlite"
)

// Backend names accepted by Open
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store keeps JSON documents grouped by collection path.
type Store interface {
	Ping() error
	Documents(ctx context.Context, collection string) (map[string]json.RawMessage, error)
	Insert(ctx context.Context, collection, id string, doc json.RawMessage) error
	Remove(ctx context.Context, collection, id string) error
	Close() error
}

// Open opens the named backend at path. An empty path selects the default
// file in the application directory.
func Open(backend, path string) (Store, error) {
	if backend == BackendMemory {
		return NewMemory(), nil
	}

	if path == "" {
		var err error

		path, err = DefaultPath(backend)
		if err != nil {
			return nil, err
		}
	}

	switch backend {
	case BackendBolt, "":
		return NewBolt(path)
	case BackendSQLite:
		return sqlite.New(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q (want bolt, sqlite or memory)", backend)
	}
}

// DefaultPath returns the database file used by backend when none is configured.
func DefaultPath(backend string) (string, error) {
	dir, err := application.EnsureApplicationDirectory()
	if err != nil {
		return "", err
	}

	switch backend {
	case BackendSQLite:
		return filepath.Join(dir, "store.db"), nil
	default:
		return filepath.Join(dir, "store.bolt"), nil
	}
}

// NewID returns a new document key. Keys are time ordered like push ids.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate document id: %w", err)
	}

	return id.String(), nil
}
