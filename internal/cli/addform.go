package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/bookstore/internal/model"
)

const fmtField = " %s\n %s\n\n"

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = focusedStyle
	noStyle      = lipgloss.NewStyle()
	helpStyle    = blurredStyle

	focusedButton = focusedStyle.Render("[ Add ]")
	blurredButton = fmt.Sprintf("[ %s ]", blurredStyle.Render("Add"))
)

var formPlaceholders = map[model.Field]string{
	model.FieldTitle:  "Dune",
	model.FieldAuthor: "Frank Herbert",
	model.FieldYear:   "1965",
	model.FieldISBN:   "9780441013593",
	model.FieldPrice:  "9.99",
}

// draftSubmittedMsg carries the form contents when the user confirms.
type draftSubmittedMsg struct {
	draft model.Draft
}

// formCancelledMsg closes the form without creating anything.
type formCancelledMsg struct{}

// AddFormModel is the form used to enter a new record, one input per field.
type AddFormModel struct {
	focusIndex int
	inputs     []textinput.Model
}

// NewAddForm returns an empty form with the first field focused.
func NewAddForm() AddFormModel {
	m := AddFormModel{
		inputs: make([]textinput.Model, len(model.Fields)),
	}

	for i, f := range model.Fields {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 256
		t.Placeholder = formPlaceholders[f]

		switch f {
		case model.FieldYear:
			t.CharLimit = 16
		case model.FieldISBN:
			t.CharLimit = 32
		case model.FieldPrice:
			t.CharLimit = 16
		}

		m.inputs[i] = t
	}

	m.Reset()

	return m
}

// Reset clears every field and focuses the first one. The form always opens
// on an empty draft.
func (m *AddFormModel) Reset() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}

	m.focusIndex = 0

	return m.applyFocus()
}

// Draft returns the current form contents.
func (m AddFormModel) Draft() model.Draft {
	return model.Draft{
		Title:  m.inputs[0].Value(),
		Author: m.inputs[1].Value(),
		Year:   m.inputs[2].Value(),
		ISBN:   m.inputs[3].Value(),
		Price:  m.inputs[4].Value(),
	}
}

func (m AddFormModel) Update(msg tea.Msg) (AddFormModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch s := keyMsg.String(); s {
		case "esc":
			return m, func() tea.Msg { return formCancelledMsg{} }

		case "tab", "shift+tab", "enter", "up", "down":
			if s == "enter" && m.focusIndex == len(m.inputs) {
				draft := m.Draft()
				return m, func() tea.Msg { return draftSubmittedMsg{draft: draft} }
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			return m, m.applyFocus()
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))

	// Only the focused input reacts to keys.
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *AddFormModel) applyFocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle

			continue
		}

		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}

	return tea.Batch(cmds...)
}

func (m AddFormModel) View() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	s := headerStyle.Render("Add Book") + "\n"
	s += blurredStyle.Render("Fill in the fields and press Tab to navigate") + "\n\n"

	for i, f := range model.Fields {
		s += fmt.Sprintf(fmtField, blurredStyle.Render(f.Label()+":"), m.inputs[i].View())
	}

	button := &blurredButton
	if m.focusIndex == len(m.inputs) {
		button = &focusedButton
	}

	s += fmt.Sprintf("\n %s\n\n", *button)
	s += helpStyle.Render(" tab/shift+tab: navigate • enter: add • esc: cancel")

	return s
}
