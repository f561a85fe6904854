package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/bookstore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPicker_SelectsHighlighted(t *testing.T) {
	m := NewPicker("Remove a book", []model.Record{
		{ID: "b", Title: "Dune", Author: "Frank Herbert"},
		{ID: "a", Title: "Foundation"},
	})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(PickerModel)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PickerModel)

	require.NotNil(t, m.Selected())
	assert.Equal(t, "b", m.Selected().ID)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestPicker_QuitSelectsNothing(t *testing.T) {
	m := NewPicker("Remove a book", []model.Record{{ID: "a", Title: "Dune"}})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(PickerModel)

	assert.Nil(t, m.Selected())
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestRecordItem(t *testing.T) {
	item := recordItem{record: model.Record{ID: "k1", Title: "Dune", Author: "Frank Herbert", Year: "1965", Price: "9.99"}}

	assert.Equal(t, "Dune by Frank Herbert", item.Title())
	assert.Equal(t, "1965 | 9.99 | id k1", item.Description())
	assert.Equal(t, "Dune Frank Herbert", item.FilterValue())
}
