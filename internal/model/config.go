package model

// DefaultURL points at the development store started by `bookstore serve`.
const DefaultURL = "http://127.0.0.1:9000/books"

// Config holds the application configuration
type Config struct {
	// URL is the collection URL of the remote document store, without ".json"
	URL string `ini:"url"`

	// SortKey is the initial sort column of the view
	SortKey Field `ini:"sort"`

	// Direction is the initial sort direction of the view
	Direction Direction `ini:"direction"`

	// ServerAddr is the listen address of the development store
	ServerAddr string `ini:"addr"`

	// Backend is the storage backend of the development store (bolt or sqlite)
	Backend string `ini:"backend"`

	// DBPath is the database file of the development store; empty means the app directory
	DBPath string `ini:"db"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		URL:        DefaultURL,
		SortKey:    FieldTitle,
		Direction:  Ascending,
		ServerAddr: "127.0.0.1:9000",
		Backend:    "bolt",
	}
}
