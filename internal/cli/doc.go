// Package cli provides the terminal user interface of bookstore.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All UI components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Components
//
//   - Browse: the collection table with search, column sorting, add and delete
//   - AddForm: the five field form used to enter a new book
//   - Picker: filterable list used by `bookstore remove` without an id
//
// # Network calls
//
// Requests to the remote collection never run inside Update. They are issued
// as commands and come back as result messages, so the event loop keeps
// handling keys while a request is in flight. A refresh takes its ticket from
// the view when it is issued; a result that arrives after a newer one has been
// applied is dropped by the view.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
