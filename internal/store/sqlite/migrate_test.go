package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, 1, migrations[0].version)
	assert.Equal(t, "documents", migrations[0].name)
	assert.Contains(t, migrations[0].up, "CREATE TABLE")
	assert.Contains(t, migrations[0].down, "DROP TABLE")

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].version, migrations[i].version)
	}
}

func TestMigrateUpDown(t *testing.T) {
	ctx := context.Background()

	s, err := New(filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })

	migrations, err := loadMigrations()
	require.NoError(t, err)

	latest := migrations[len(migrations)-1].version

	version, err := schemaVersion(ctx, s.db)
	require.NoError(t, err)
	assert.Equal(t, latest, version)

	// Reapplying is a no-op.
	require.NoError(t, migrateUp(ctx, s.db))

	version, err = schemaVersion(ctx, s.db)
	require.NoError(t, err)
	assert.Equal(t, latest, version)

	require.NoError(t, migrateDown(ctx, s.db))

	version, err = schemaVersion(ctx, s.db)
	require.NoError(t, err)
	assert.Equal(t, latest-1, version)

	if latest == 1 {
		assert.Error(t, s.Insert(ctx, "books", "k1", json.RawMessage(`{}`)))
	}

	require.NoError(t, migrateUp(ctx, s.db))
	require.NoError(t, s.Insert(ctx, "books", "k1", json.RawMessage(`{"title":"Dune"}`)))

	docs, err := s.Documents(ctx, "books")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Dune"}`, string(docs["k1"]))
}

func TestMigrateDown_Fresh(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "fresh.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, migrateDown(ctx, s.db))
	assert.Error(t, migrateDown(ctx, s.db))
}
