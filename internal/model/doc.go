// Package model defines the data structures used throughout bookstore.
//
// # Record
//
// The [Record] struct represents one book of the collection:
//
//	type Record struct {
//	    ID     string // Key assigned by the remote store
//	    Title  string
//	    Author string
//	    Year   string // Free-form text, never parsed
//	    ISBN   string
//	    Price  string
//	}
//
// A [Draft] is a record that has not been stored yet and therefore has no ID.
//
// # Fields
//
// [Field] names the five displayed columns in display order (see [Fields]).
// Every field is searchable and sortable. [Direction] is the sort direction.
//
// # Config
//
// The [Config] struct holds application configuration loaded by the config
// package.
package model
