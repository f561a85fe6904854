package collection

import (
	"context"
	"log/slog"
	"sync"

	"github.com/inovacc/bookstore/internal/model"
	"github.com/inovacc/bookstore/internal/remote"
)

// Source is the remote collection the view mirrors.
type Source interface {
	List(ctx context.Context) ([]model.Record, error)
	Create(ctx context.Context, draft model.Draft) error
	Delete(ctx context.Context, id string) error
}

// Ticket stamps one refresh. Tickets increase in issue order.
type Ticket uint64

// ViewOptions configures a View
type ViewOptions struct {
	Logger    *slog.Logger
	SortKey   model.Field
	Direction model.Direction
	Query     string
}

// View holds the local snapshot of the remote collection together with the
// search and sort state, and derives the rows shown to the user.
//
// The snapshot is only ever replaced as a whole by a fresh list from the
// source. Every successful mutation is followed by a refresh.
type View struct {
	src    Source
	logger *slog.Logger

	mu        sync.Mutex
	snapshot  []model.Record
	sortKey   model.Field
	direction model.Direction
	query     string
	issued    Ticket
	applied   Ticket
}

// NewView creates an empty view over src.
func NewView(src Source, opts ViewOptions) *View {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sortKey := opts.SortKey
	if !sortKey.Valid() {
		sortKey = model.FieldTitle
	}

	direction := opts.Direction
	if direction != model.Descending {
		direction = model.Ascending
	}

	return &View{
		src:       src,
		logger:    logger,
		snapshot:  []model.Record{},
		sortKey:   sortKey,
		direction: direction,
		query:     opts.Query,
	}
}

// Source returns the collection the view reads from.
func (v *View) Source() Source {
	return v.src
}

// Refresh lists the collection and replaces the snapshot. On failure the
// snapshot is left untouched.
func (v *View) Refresh(ctx context.Context) error {
	ticket := v.BeginRefresh()

	records, err := v.src.List(ctx)
	if err != nil {
		v.logger.Warn("refresh failed", slog.Any("error", err))
		return err
	}

	v.ApplyRefresh(ticket, records)

	return nil
}

// BeginRefresh issues the ticket for a refresh about to be sent.
func (v *View) BeginRefresh() Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.issued++

	return v.issued
}

// ApplyRefresh installs the records listed under ticket. A result is
// dropped when a refresh issued later has already been applied, so the
// snapshot never goes back to an older read.
func (v *View) ApplyRefresh(ticket Ticket, records []model.Record) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if ticket <= v.applied {
		v.logger.Debug("discarding stale refresh",
			slog.Uint64("ticket", uint64(ticket)),
			slog.Uint64("applied", uint64(v.applied)),
		)

		return false
	}

	snapshot := make([]model.Record, len(records))
	copy(snapshot, records)

	v.snapshot = snapshot
	v.applied = ticket

	return true
}

// AddRecord creates draft in the remote collection and refreshes. The draft
// is not kept when the create fails.
func (v *View) AddRecord(ctx context.Context, draft model.Draft) error {
	if err := v.src.Create(ctx, draft); err != nil {
		v.logger.Warn("add failed", slog.String("title", draft.Title), slog.Any("error", err))
		return err
	}

	return v.Refresh(ctx)
}

// RemoveRecord deletes the record named id and refreshes.
func (v *View) RemoveRecord(ctx context.Context, id string) error {
	if id == "" {
		return remote.ErrMissingID
	}

	if err := v.src.Delete(ctx, id); err != nil {
		v.logger.Warn("remove failed", slog.String("id", id), slog.Any("error", err))
		return err
	}

	return v.Refresh(ctx)
}

// SetSearchQuery replaces the search text.
func (v *View) SetSearchQuery(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.query = text
}

// SetSortKey changes the sort column and keeps the direction.
func (v *View) SetSortKey(key model.Field) {
	if !key.Valid() {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.sortKey = key
}

// ToggleSortDirection flips between ascending and descending.
func (v *View) ToggleSortDirection() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.direction = v.direction.Toggle()
}

// RequestSort is a click on a column header: the active column flips its
// direction, any other column becomes active in ascending order.
func (v *View) RequestSort(key model.Field) {
	if !key.Valid() {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if key == v.sortKey {
		v.direction = v.direction.Toggle()
		return
	}

	v.sortKey = key
	v.direction = model.Ascending
}

// Snapshot returns a copy of the current snapshot in store order.
func (v *View) Snapshot() []model.Record {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]model.Record, len(v.snapshot))
	copy(out, v.snapshot)

	return out
}

// Rows returns the filtered and sorted projection of the snapshot.
func (v *View) Rows() []model.Record {
	v.mu.Lock()
	snapshot, query, key, dir := v.snapshot, v.query, v.sortKey, v.direction
	v.mu.Unlock()

	return Project(snapshot, query, key, dir)
}

// Sort returns the active sort column and direction.
func (v *View) Sort() (model.Field, model.Direction) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.sortKey, v.direction
}

// Query returns the current search text.
func (v *View) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.query
}

// Columns describes the five sortable columns with the active sort marked.
func (v *View) Columns() []model.Column {
	key, dir := v.Sort()

	columns := make([]model.Column, len(model.Fields))
	for i, f := range model.Fields {
		columns[i] = model.Column{
			Field:     f,
			Label:     f.Label(),
			Active:    f == key,
			Direction: model.Ascending,
		}

		if f == key {
			columns[i].Direction = dir
		}
	}

	return columns
}
