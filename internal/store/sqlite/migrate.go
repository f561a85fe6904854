package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migration is one numbered schema step, e.g. 001_documents.up.sql paired
// with 001_documents.down.sql.
type migration struct {
	version int
	name    string
	up      string
	down    string
}

const versionTable = `CREATE TABLE IF NOT EXISTS schema_version (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// loadMigrations reads the embedded scripts ordered by version.
func loadMigrations() ([]migration, error) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("listing migrations: %w", err)
	}

	byVersion := make(map[int]*migration)

	for _, file := range files {
		base := strings.TrimSuffix(path.Base(file), ".sql")

		stem, direction, ok := cutLast(base, ".")
		if !ok || (direction != "up" && direction != "down") {
			return nil, fmt.Errorf("migration %s: expected <version>_<name>.(up|down).sql", file)
		}

		num, name, ok := strings.Cut(stem, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: missing name", file)
		}

		version, err := strconv.Atoi(num)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s: bad version %q", file, num)
		}

		body, err := migrationsFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", file, err)
		}

		m, exists := byVersion[version]
		if !exists {
			m = &migration{version: version, name: name}
			byVersion[version] = m
		}

		if direction == "up" {
			m.up = string(body)
		} else {
			m.down = string(body)
		}
	}

	out := make([]migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.up == "" {
			return nil, fmt.Errorf("migration %d (%s) has no up script", m.version, m.name)
		}

		out = append(out, *m)
	}

	slices.SortFunc(out, func(a, b migration) int { return a.version - b.version })

	return out, nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}

	return s[:i], s[i+len(sep):], true
}

// schemaVersion returns the highest applied version, 0 for a fresh database.
func schemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	if _, err := db.ExecContext(ctx, versionTable); err != nil {
		return 0, fmt.Errorf("creating schema_version: %w", err)
	}

	var version int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}

	return version, nil
}

// migrateUp applies every migration newer than the current version.
func migrateUp(ctx context.Context, db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	current, err := schemaVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		err := inTx(ctx, db, m.up, `INSERT INTO schema_version (version, name) VALUES (?, ?)`, m.version, m.name)
		if err != nil {
			return fmt.Errorf("applying migration %d (%s): %w", m.version, m.name, err)
		}
	}

	return nil
}

// migrateDown rolls back the latest applied migration.
func migrateDown(ctx context.Context, db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	current, err := schemaVersion(ctx, db)
	if err != nil {
		return err
	}

	if current == 0 {
		return fmt.Errorf("no migration to roll back")
	}

	i := slices.IndexFunc(migrations, func(m migration) bool { return m.version == current })
	if i < 0 {
		return fmt.Errorf("applied migration %d is unknown to this binary", current)
	}

	m := migrations[i]
	if m.down == "" {
		return fmt.Errorf("migration %d (%s) has no down script", m.version, m.name)
	}

	if err := inTx(ctx, db, m.down, `DELETE FROM schema_version WHERE version = ?`, m.version); err != nil {
		return fmt.Errorf("rolling back migration %d (%s): %w", m.version, m.name, err)
	}

	return nil
}

// inTx runs script and the bookkeeping statement atomically.
func inTx(ctx context.Context, db *sql.DB, script, record string, args ...any) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, script); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
