package collection

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/inovacc/bookstore/internal/model"
	"github.com/inovacc/bookstore/internal/remote"
	"github.com/inovacc/bookstore/internal/server"
	"github.com/inovacc/bookstore/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory collection with switchable failures.
type fakeSource struct {
	mu        sync.Mutex
	records   map[string]model.Record
	nextID    int
	listErr   error
	createErr error
	deleteErr error
	lists     int
}

func newFakeSource(seed ...model.Record) *fakeSource {
	f := &fakeSource{records: make(map[string]model.Record), nextID: 1}
	for _, r := range seed {
		f.records[r.ID] = r
	}

	return f
}

func (f *fakeSource) List(_ context.Context) ([]model.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lists++

	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]model.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}

	return out, nil
}

func (f *fakeSource) Create(_ context.Context, draft model.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	r := draft.Record()
	r.ID = "k" + strconv.Itoa(f.nextID)
	f.nextID++
	f.records[r.ID] = r

	return nil
}

func (f *fakeSource) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}

	delete(f.records, id)

	return nil
}

func ids(records []model.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}

	sort.Strings(out)

	return out
}

func TestNewView_Defaults(t *testing.T) {
	v := NewView(newFakeSource(), ViewOptions{})

	key, dir := v.Sort()
	assert.Equal(t, model.FieldTitle, key)
	assert.Equal(t, model.Ascending, dir)
	assert.Empty(t, v.Query())
	assert.Empty(t, v.Snapshot())
	assert.Empty(t, v.Rows())
}

func TestNewView_Options(t *testing.T) {
	v := NewView(newFakeSource(), ViewOptions{SortKey: model.FieldYear, Direction: model.Descending, Query: "dune"})

	key, dir := v.Sort()
	assert.Equal(t, model.FieldYear, key)
	assert.Equal(t, model.Descending, dir)
	assert.Equal(t, "dune", v.Query())

	v = NewView(newFakeSource(), ViewOptions{SortKey: "id", Direction: "sideways"})
	key, dir = v.Sort()
	assert.Equal(t, model.FieldTitle, key)
	assert.Equal(t, model.Ascending, dir)
}

func TestView_RefreshIdempotent(t *testing.T) {
	src := newFakeSource(
		model.Record{ID: "a", Title: "Dune"},
		model.Record{ID: "b", Title: "Emma"},
	)
	v := NewView(src, ViewOptions{})

	require.NoError(t, v.Refresh(context.Background()))
	first := ids(v.Snapshot())

	require.NoError(t, v.Refresh(context.Background()))
	second := ids(v.Snapshot())

	assert.Equal(t, []string{"a", "b"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, src.lists)
}

func TestView_RefreshFailureKeepsSnapshot(t *testing.T) {
	src := newFakeSource(model.Record{ID: "a", Title: "Dune"})
	v := NewView(src, ViewOptions{})

	require.NoError(t, v.Refresh(context.Background()))

	src.listErr = &remote.NetworkError{Op: remote.OpList, Err: errors.New("connection refused")}

	err := v.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"a"}, ids(v.Snapshot()))
}

func TestView_AddRecordFailureDoesNotMutate(t *testing.T) {
	src := newFakeSource(model.Record{ID: "a", Title: "Dune"})
	v := NewView(src, ViewOptions{})

	require.NoError(t, v.Refresh(context.Background()))
	before := v.Snapshot()

	src.createErr = &remote.RemoteRejection{Op: remote.OpCreate, StatusCode: 500}

	err := v.AddRecord(context.Background(), model.Draft{Title: "Emma"})
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrRemoteWrite)
	assert.Equal(t, before, v.Snapshot())
	assert.Equal(t, 1, src.lists, "no refresh after a failed create")
}

func TestView_RemoveRecordFailureDoesNotMutate(t *testing.T) {
	src := newFakeSource(model.Record{ID: "a", Title: "Dune"})
	v := NewView(src, ViewOptions{})

	require.NoError(t, v.Refresh(context.Background()))
	before := v.Snapshot()

	src.deleteErr = &remote.RemoteRejection{Op: remote.OpDelete, StatusCode: 403}

	require.Error(t, v.RemoveRecord(context.Background(), "a"))
	assert.Equal(t, before, v.Snapshot())
}

func TestView_RemoveRecordRequiresID(t *testing.T) {
	src := newFakeSource()
	v := NewView(src, ViewOptions{})

	err := v.RemoveRecord(context.Background(), "")
	require.ErrorIs(t, err, remote.ErrMissingID)
	assert.Zero(t, src.lists)
}

func TestView_MutationsRefresh(t *testing.T) {
	src := newFakeSource()
	v := NewView(src, ViewOptions{})
	ctx := context.Background()

	require.NoError(t, v.AddRecord(ctx, model.Draft{Title: "Dune"}))
	require.NoError(t, v.AddRecord(ctx, model.Draft{Title: "Emma"}))

	rows := v.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Dune", "Emma"}, titles(rows))

	require.NoError(t, v.RemoveRecord(ctx, rows[0].ID))
	assert.Equal(t, []string{"Emma"}, titles(v.Rows()))
}

func TestView_RequestSort(t *testing.T) {
	src := newFakeSource(
		model.Record{ID: "a", Title: "Dune", Year: "1965"},
		model.Record{ID: "b", Title: "Emma", Year: "1815"},
		model.Record{ID: "c", Title: "Neuromancer", Year: "1984"},
	)
	v := NewView(src, ViewOptions{})
	require.NoError(t, v.Refresh(context.Background()))

	v.RequestSort(model.FieldYear)
	key, dir := v.Sort()
	assert.Equal(t, model.FieldYear, key)
	assert.Equal(t, model.Ascending, dir)
	first := v.Rows()

	v.RequestSort(model.FieldYear)
	_, dir = v.Sort()
	assert.Equal(t, model.Descending, dir)
	second := v.Rows()

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i], second[len(second)-1-i])
	}

	// A different column resets to ascending.
	v.RequestSort(model.FieldTitle)
	key, dir = v.Sort()
	assert.Equal(t, model.FieldTitle, key)
	assert.Equal(t, model.Ascending, dir)

	// Unknown columns are ignored.
	v.RequestSort("id")
	key, _ = v.Sort()
	assert.Equal(t, model.FieldTitle, key)
}

func TestView_SetSortKeyAndToggle(t *testing.T) {
	v := NewView(newFakeSource(), ViewOptions{})

	v.ToggleSortDirection()
	v.SetSortKey(model.FieldPrice)

	key, dir := v.Sort()
	assert.Equal(t, model.FieldPrice, key)
	assert.Equal(t, model.Descending, dir, "SetSortKey keeps the direction")
}

func TestView_SearchQuery(t *testing.T) {
	src := newFakeSource(
		model.Record{ID: "a", Title: "Dune"},
		model.Record{ID: "b", Title: "Foundation"},
	)
	v := NewView(src, ViewOptions{})
	require.NoError(t, v.Refresh(context.Background()))

	v.SetSearchQuery(" OUN ")
	assert.Equal(t, []string{"Foundation"}, titles(v.Rows()))
	assert.Len(t, v.Snapshot(), 2, "search never changes the snapshot")

	v.SetSearchQuery("")
	assert.Len(t, v.Rows(), 2)
}

func TestView_Columns(t *testing.T) {
	v := NewView(newFakeSource(), ViewOptions{})
	v.RequestSort(model.FieldYear)
	v.RequestSort(model.FieldYear)

	columns := v.Columns()
	require.Len(t, columns, 5)

	for _, c := range columns {
		if c.Field == model.FieldYear {
			assert.True(t, c.Active)
			assert.Equal(t, model.Descending, c.Direction)
			continue
		}

		assert.False(t, c.Active)
		assert.Equal(t, model.Ascending, c.Direction)
	}
}

func TestView_StaleRefreshDiscarded(t *testing.T) {
	v := NewView(newFakeSource(), ViewOptions{})

	older := v.BeginRefresh()
	newer := v.BeginRefresh()

	assert.True(t, v.ApplyRefresh(newer, []model.Record{{ID: "b", Title: "After delete"}}))
	assert.False(t, v.ApplyRefresh(older, []model.Record{{ID: "a"}, {ID: "b"}}))

	assert.Equal(t, []string{"b"}, ids(v.Snapshot()))

	// Out of order but still newer than the last applied one.
	third := v.BeginRefresh()
	fourth := v.BeginRefresh()
	assert.True(t, v.ApplyRefresh(third, nil))
	assert.True(t, v.ApplyRefresh(fourth, []model.Record{{ID: "c"}}))
	assert.Equal(t, []string{"c"}, ids(v.Snapshot()))
}

func TestView_ApplyRefreshCopies(t *testing.T) {
	v := NewView(newFakeSource(), ViewOptions{})

	records := []model.Record{{ID: "a", Title: "Dune"}}
	require.True(t, v.ApplyRefresh(v.BeginRefresh(), records))

	records[0].Title = "changed"
	assert.Equal(t, "Dune", v.Snapshot()[0].Title)
}

func TestView_EndToEnd(t *testing.T) {
	st, err := store.NewBolt(filepath.Join(t.TempDir(), "e2e.bolt"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(server.New(st, server.DefaultConfig()).Handler())
	t.Cleanup(srv.Close)

	client, err := remote.New(srv.URL+"/books", remote.Options{})
	require.NoError(t, err)

	v := NewView(client, ViewOptions{})
	ctx := context.Background()

	require.NoError(t, v.Refresh(ctx))
	assert.Empty(t, v.Rows())

	draft := model.Draft{Title: "Dune", Author: "Herbert", Year: "1965", ISBN: "", Price: "9.99"}
	require.NoError(t, v.AddRecord(ctx, draft))

	rows := v.Rows()
	require.Len(t, rows, 1)
	assert.NotEmpty(t, rows[0].ID)
	assert.Equal(t, draft, rows[0].Draft())

	require.NoError(t, v.RemoveRecord(ctx, rows[0].ID))
	assert.Empty(t, v.Rows())
}
