package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/bookstore/internal/collection"
	"github.com/inovacc/bookstore/internal/model"
	"github.com/inovacc/bookstore/internal/remote"
)

var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

const (
	// lines taken by the header, search bar, status and help around the table
	chromeHeight = 8
	minTableRows = 3
)

type browseMode int

const (
	modeTable browseMode = iota
	modeSearch
	modeForm
)

type refreshRequestMsg struct{}

type refreshResultMsg struct {
	ticket  collection.Ticket
	records []model.Record
	err     error
}

type createResultMsg struct {
	draft model.Draft
	err   error
}

type deleteResultMsg struct {
	record model.Record
	err    error
}

// BrowseOptions configures a BrowseModel.
type BrowseOptions struct {
	// Logger receives operation failures; defaults to slog.Default()
	Logger *slog.Logger

	// URL is shown in the header
	URL string
}

// BrowseModel is the interactive collection browser. Network calls run as
// commands and report back through messages, so typing stays responsive
// while a request is in flight.
type BrowseModel struct {
	ctx     context.Context
	view    *collection.View
	logger  *slog.Logger
	url     string
	rows    []model.Record
	table   table.Model
	search  textinput.Model
	form    AddFormModel
	spinner spinner.Model
	mode    browseMode
	pending int
	notice  string
	err     error
	width   int
}

// NewBrowseModel builds the browser over view. Nothing is fetched until the
// program starts.
func NewBrowseModel(ctx context.Context, view *collection.View, opts BrowseOptions) BrowseModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search title, author, year, isbn or price"
	search.CharLimit = 128
	search.SetValue(view.Query())

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	m := BrowseModel{
		ctx:     ctx,
		view:    view,
		logger:  logger,
		url:     opts.URL,
		table:   t,
		search:  search,
		form:    NewAddForm(),
		spinner: s,
	}

	m.syncTable()

	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return refreshRequestMsg{} })
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(max(msg.Height-chromeHeight, minTableRows))
		m.syncTable()

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case refreshRequestMsg:
		return m, m.refresh()

	case refreshResultMsg:
		m.pending--

		if msg.err != nil {
			m.fail("Refresh failed", msg.err)
			return m, nil
		}

		if m.view.ApplyRefresh(msg.ticket, msg.records) {
			m.syncTable()
		}

		return m, nil

	case draftSubmittedMsg:
		m.mode = modeTable
		m.table.Focus()

		return m, m.create(msg.draft)

	case formCancelledMsg:
		m.mode = modeTable
		m.table.Focus()

		return m, nil

	case createResultMsg:
		m.pending--

		if msg.err != nil {
			m.fail("Add failed", msg.err)
			return m, nil
		}

		m.succeed(fmt.Sprintf("Added %q", msg.draft.Title))

		return m, m.refresh()

	case deleteResultMsg:
		m.pending--

		if msg.err != nil {
			m.fail("Remove failed", msg.err)
			return m, nil
		}

		m.succeed(fmt.Sprintf("Removed %q", msg.record.Title))

		return m, m.refresh()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.mode {
		case modeForm:
			var cmd tea.Cmd

			m.form, cmd = m.form.Update(msg)

			return m, cmd
		case modeSearch:
			return m.updateSearch(msg)
		default:
			return m.updateTable(msg)
		}
	}

	// Cursor blinks and other widget messages.
	var cmd tea.Cmd

	switch m.mode {
	case modeForm:
		m.form, cmd = m.form.Update(msg)
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	}

	return m, cmd
}

func (m BrowseModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit

	case "/":
		m.mode = modeSearch
		m.table.Blur()

		return m, m.search.Focus()

	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.view.SetSearchQuery("")
			m.syncTable()
		}

		return m, nil

	case "1", "2", "3", "4", "5":
		m.view.RequestSort(model.Fields[key[0]-'1'])
		m.syncTable()

		return m, nil

	case "a":
		m.mode = modeForm
		m.table.Blur()

		return m, m.form.Reset()

	case "d", "delete":
		record, ok := m.Selected()
		if !ok {
			m.notice, m.err = "Nothing selected", nil
			return m, nil
		}

		return m, m.remove(record)

	case "r":
		return m, m.refresh()
	}

	var cmd tea.Cmd

	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BrowseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab":
		m.mode = modeTable
		m.search.Blur()
		m.table.Focus()

		return m, nil

	case "esc":
		m.mode = modeTable
		m.search.Blur()
		m.search.SetValue("")
		m.table.Focus()
		m.view.SetSearchQuery("")
		m.syncTable()

		return m, nil
	}

	var cmd tea.Cmd

	m.search, cmd = m.search.Update(msg)
	m.view.SetSearchQuery(m.search.Value())
	m.syncTable()

	return m, cmd
}

// refresh stamps a refresh now and lists the collection in the background.
func (m *BrowseModel) refresh() tea.Cmd {
	ticket := m.view.BeginRefresh()
	m.pending++

	ctx, src := m.ctx, m.view.Source()

	return func() tea.Msg {
		records, err := src.List(ctx)
		return refreshResultMsg{ticket: ticket, records: records, err: err}
	}
}

func (m *BrowseModel) create(draft model.Draft) tea.Cmd {
	m.pending++

	ctx, src := m.ctx, m.view.Source()

	return func() tea.Msg {
		return createResultMsg{draft: draft, err: src.Create(ctx, draft)}
	}
}

func (m *BrowseModel) remove(record model.Record) tea.Cmd {
	if record.ID == "" {
		m.fail("Remove failed", remote.ErrMissingID)
		return nil
	}

	m.pending++

	ctx, src := m.ctx, m.view.Source()

	return func() tea.Msg {
		return deleteResultMsg{record: record, err: src.Delete(ctx, record.ID)}
	}
}

func (m *BrowseModel) fail(what string, err error) {
	m.logger.Warn(strings.ToLower(what), slog.Any("error", err))
	m.notice, m.err = what, err
}

func (m *BrowseModel) succeed(notice string) {
	m.notice, m.err = notice, nil
}

// syncTable re-derives the rows from the view and pushes them into the table.
func (m *BrowseModel) syncTable() {
	m.rows = m.view.Rows()

	m.table.SetColumns(tableColumns(m.view.Columns(), m.width))

	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = table.Row{r.Title, r.Author, r.Year, r.ISBN, r.Price}
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Selected returns the record under the cursor.
func (m BrowseModel) Selected() (model.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return model.Record{}, false
	}

	return m.rows[i], true
}

// Rows returns the records currently displayed, in display order.
func (m BrowseModel) Rows() []model.Record {
	return m.rows
}

// Err returns the error of the last failed operation, if the latest notice
// is a failure.
func (m BrowseModel) Err() error {
	return m.err
}

func (m BrowseModel) View() string {
	if m.mode == modeForm {
		return docStyle.Render(m.form.View())
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Bookstore"))

	if m.url != "" {
		b.WriteString("  " + urlStyle.Render(m.url))
	}

	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	switch m.mode {
	case modeSearch:
		b.WriteString(helpStyle.Render("type to filter • enter: done • esc: clear"))
	default:
		b.WriteString(helpStyle.Render("/: search • 1-5: sort • a: add • d: delete • r: refresh • q: quit"))
	}

	return docStyle.Render(b.String())
}

func (m BrowseModel) statusLine() string {
	count := fmt.Sprintf("%d of %d books", len(m.rows), len(m.view.Snapshot()))

	var parts []string
	if m.pending > 0 {
		parts = append(parts, m.spinner.View()+" syncing")
	}

	parts = append(parts, blurredStyle.Render(count))

	switch {
	case m.err != nil:
		parts = append(parts, errorStyle.Render("✗ "+m.notice+": "+describe(m.err)))
	case m.notice != "":
		parts = append(parts, successStyle.Render("✓ "+m.notice))
	}

	return strings.Join(parts, "  ")
}

func describe(err error) string {
	var rejection *remote.RemoteRejection
	if errors.As(err, &rejection) && rejection.Body != "" {
		return fmt.Sprintf("status %d: %s", rejection.StatusCode, rejection.Body)
	}

	return err.Error()
}

// tableColumns renders the column headers with the sort indicator on the
// active column only.
func tableColumns(columns []model.Column, width int) []table.Column {
	widths := columnWidths(width)

	out := make([]table.Column, len(columns))
	for i, c := range columns {
		title := c.Label
		if c.Active {
			if c.Direction == model.Descending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}

		out[i] = table.Column{Title: fmt.Sprintf("%d %s", i+1, title), Width: widths[i]}
	}

	return out
}

func columnWidths(total int) []int {
	const (
		yearWidth  = 10
		isbnWidth  = 16
		priceWidth = 10
		padding    = 2*5 + 4
	)

	if total <= 0 {
		total = 100
	}

	rest := max(total-yearWidth-isbnWidth-priceWidth-padding, 24)
	title := rest * 3 / 5

	return []int{title, rest - title, yearWidth, isbnWidth, priceWidth}
}
