// Package config reads and writes the bookstore configuration file.
//
// The file lives at <config dir>/bookstore/config.ini:
//
//	[remote]
//	url = https://example.firebaseio.com/books
//
//	[ui]
//	sort      = title
//	direction = asc
//
//	[server]
//	addr    = 127.0.0.1:9000
//	backend = bolt
//	db      =
//
// The collection URL can also come from the --url flag or the
// BOOKSTORE_URL environment variable, see [ResolveURL].
package config
