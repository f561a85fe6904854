package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDraft_JSONHasNoID(t *testing.T) {
	d := Draft{Title: "Dune", Author: "Herbert", Year: "1965", Price: "9.99"}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	if strings.Contains(string(data), `"id"`) {
		t.Errorf("draft JSON = %s, should not carry an id", data)
	}

	if !strings.Contains(string(data), `"isbn":""`) {
		t.Errorf("draft JSON = %s, empty fields should still be present", data)
	}
}

func TestRecord_Value(t *testing.T) {
	r := Record{ID: "k1", Title: "Dune", Author: "Herbert", Year: "1965", ISBN: "0441013597", Price: "9.99"}

	tests := []struct {
		field Field
		want  string
	}{
		{FieldTitle, "Dune"},
		{FieldAuthor, "Herbert"},
		{FieldYear, "1965"},
		{FieldISBN, "0441013597"},
		{FieldPrice, "9.99"},
		{Field("id"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			if got := r.Value(tt.field); got != tt.want {
				t.Errorf("Value(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestRecord_DraftRoundTrip(t *testing.T) {
	r := Record{ID: "k1", Title: "Dune", Author: "Herbert"}

	got := r.Draft().Record()
	if got.ID != "" {
		t.Errorf("ID = %q, want empty", got.ID)
	}

	if got.Title != r.Title || got.Author != r.Author {
		t.Errorf("Record() = %+v, want fields of %+v", got, r)
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		input   string
		want    Field
		wantErr bool
	}{
		{"title", FieldTitle, false},
		{" Year ", FieldYear, false},
		{"ISBN", FieldISBN, false},
		{"id", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseField(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseField(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("ParseField(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	if Ascending.Toggle() != Descending {
		t.Error("Ascending.Toggle() should be Descending")
	}

	if Descending.Toggle() != Ascending {
		t.Error("Descending.Toggle() should be Ascending")
	}

	if ParseDirection("DESC") != Descending {
		t.Error("ParseDirection(DESC) should be Descending")
	}

	if ParseDirection("sideways") != Ascending {
		t.Error("ParseDirection should fall back to Ascending")
	}
}

func TestFields_Labels(t *testing.T) {
	want := []string{"Title", "Author", "Year", "Isbn", "Price"}

	for i, f := range Fields {
		if f.Label() != want[i] {
			t.Errorf("Fields[%d].Label() = %q, want %q", i, f.Label(), want[i])
		}
	}
}
