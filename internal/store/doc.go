// Package store provides the storage layer of the development document store.
//
// The [Store] interface keeps raw JSON documents grouped by collection path,
// which is all the `serve` command needs to answer list, push and delete
// requests. Documents are stored exactly as received.
//
// # Backends
//
//   - bolt: BoltDB file, one bucket per collection (default)
//   - sqlite: SQLite file through the pure Go modernc driver
//   - memory: process memory, used by tests and throwaway sessions
//
// Use [Open] to select a backend by name:
//
//	s, err := store.Open(store.BackendBolt, "")
//	docs, err := s.Documents(ctx, "books")
package store
