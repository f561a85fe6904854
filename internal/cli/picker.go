package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/bookstore/internal/model"
)

type recordItem struct {
	record model.Record
}

func (i recordItem) Title() string {
	if i.record.Author == "" {
		return i.record.Title
	}

	return fmt.Sprintf("%s by %s", i.record.Title, i.record.Author)
}

func (i recordItem) Description() string {
	var parts []string

	if i.record.Year != "" {
		parts = append(parts, i.record.Year)
	}

	if i.record.ISBN != "" {
		parts = append(parts, "ISBN "+i.record.ISBN)
	}

	if i.record.Price != "" {
		parts = append(parts, i.record.Price)
	}

	parts = append(parts, "id "+i.record.ID)

	return strings.Join(parts, " | ")
}

func (i recordItem) FilterValue() string {
	return i.record.Title + " " + i.record.Author
}

// PickerModel lets the user pick one record from a filterable list.
type PickerModel struct {
	list     list.Model
	selected *model.Record
	quitting bool
}

// NewPicker lists records in the given order.
func NewPicker(title string, records []model.Record) PickerModel {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = recordItem{record: r}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return PickerModel{list: l}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

		return m, nil

	case tea.KeyMsg:
		// Keys belong to the filter input while it is open.
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true

			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(recordItem); ok {
				m.selected = &i.record
			}

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m PickerModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	return docStyle.Render(m.list.View())
}

// Selected returns the picked record, or nil when the user quit.
func (m PickerModel) Selected() *model.Record {
	return m.selected
}
