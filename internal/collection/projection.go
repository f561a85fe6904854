package collection

import (
	"slices"
	"strings"

	"github.com/inovacc/bookstore/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Project filters records by query and orders them by key and dir.
// The result is a new slice; records is never modified.
func Project(records []model.Record, query string, key model.Field, dir model.Direction) []model.Record {
	out := Filter(records, query)
	SortRecords(out, key, dir)

	return out
}

// Filter keeps the records where any displayed field contains the trimmed
// query, ignoring case. An empty query keeps everything.
func Filter(records []model.Record, query string) []model.Record {
	fold := cases.Fold()

	needle := fold.String(strings.TrimSpace(query))
	if needle == "" {
		out := make([]model.Record, len(records))
		copy(out, records)

		return out
	}

	out := make([]model.Record, 0, len(records))

	for _, r := range records {
		for _, f := range model.Fields {
			if strings.Contains(fold.String(r.Value(f)), needle) {
				out = append(out, r)
				break
			}
		}
	}

	return out
}

// SortRecords orders records in place by the key field using a case and
// accent insensitive collation that compares digit runs by numeric value,
// so "2" sorts before "10". Equal keys keep no particular order.
func SortRecords(records []model.Record, key model.Field, dir model.Direction) {
	if !key.Valid() {
		key = model.FieldTitle
	}

	c := newCollator()

	slices.SortFunc(records, func(a, b model.Record) int {
		cmp := c.CompareString(a.Value(key), b.Value(key))
		if dir == model.Descending {
			return -cmp
		}

		return cmp
	})
}

// Compare reports the collation order of two field values.
func Compare(a, b string) int {
	return newCollator().CompareString(a, b)
}

func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics, collate.Numeric)
}
