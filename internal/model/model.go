package model

import (
	"fmt"
	"strings"
)

// Record is one book entry of the collection.
type Record struct {
	// ID is the key assigned by the remote store; empty until persisted
	ID string `json:"id,omitempty"`

	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year"`
	ISBN   string `json:"isbn"`
	Price  string `json:"price"`
}

// Draft is a record that has not been persisted yet.
type Draft struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year"`
	ISBN   string `json:"isbn"`
	Price  string `json:"price"`
}

// Record returns the draft as a record without an id.
func (d Draft) Record() Record {
	return Record{
		Title:  d.Title,
		Author: d.Author,
		Year:   d.Year,
		ISBN:   d.ISBN,
		Price:  d.Price,
	}
}

// Draft strips the id from the record.
func (r Record) Draft() Draft {
	return Draft{
		Title:  r.Title,
		Author: r.Author,
		Year:   r.Year,
		ISBN:   r.ISBN,
		Price:  r.Price,
	}
}

// Value returns the value of a displayed field. Unknown fields read as empty.
func (r Record) Value(f Field) string {
	switch f {
	case FieldTitle:
		return r.Title
	case FieldAuthor:
		return r.Author
	case FieldYear:
		return r.Year
	case FieldISBN:
		return r.ISBN
	case FieldPrice:
		return r.Price
	}

	return ""
}

// Field identifies one of the displayed, sortable columns.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldYear   Field = "year"
	FieldISBN   Field = "isbn"
	FieldPrice  Field = "price"
)

// Fields lists the displayed fields in display order.
var Fields = []Field{FieldTitle, FieldAuthor, FieldYear, FieldISBN, FieldPrice}

// Label returns the column header for the field.
func (f Field) Label() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldAuthor:
		return "Author"
	case FieldYear:
		return "Year"
	case FieldISBN:
		return "Isbn"
	case FieldPrice:
		return "Price"
	}

	return string(f)
}

// Valid reports whether f is one of the displayed fields.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}

	return false
}

// ParseField converts a column name to a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown field %q (want one of title, author, year, isbn, price)", s)
	}

	return f, nil
}

// Direction is the sort direction of the projection.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}

	return Descending
}

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}

	return "ascending"
}

// ParseDirection converts "asc"/"desc" (or the long forms) to a Direction.
// Anything unrecognised falls back to ascending.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

// Column describes a sortable column for rendering sort indicators.
type Column struct {
	Field     Field
	Label     string
	Active    bool
	Direction Direction
}
