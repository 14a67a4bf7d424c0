package builds

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/theapple1234/magecraft-forge/internal/domain/build"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
	forgeerr "github.com/theapple1234/magecraft-forge/internal/errors"
)

// SQLiteRepository persists builds in a local embedded SQLite database
type SQLiteRepository struct {
	sqlDB *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS builds (
	type    TEXT    NOT NULL,
	name    TEXT    NOT NULL,
	data    TEXT    NOT NULL,
	version INTEGER NOT NULL,
	PRIMARY KEY (type, name)
);
CREATE TABLE IF NOT EXISTS sheet (
	id   INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);
`

// OpenSQLite opens (creating if needed) a SQLite build store at path
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, forgeerr.InvalidArgument("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLiteRepository{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.sqlDB == nil {
		return nil
	}
	return r.sqlDB.Close()
}

// Save upserts a build record
func (r *SQLiteRepository) Save(ctx context.Context, b *build.Build) error {
	if err := validateBuild(b); err != nil {
		return err
	}

	jsonData, err := json.Marshal(build.ToData(b.Selection))
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}

	_, err = r.sqlDB.ExecContext(
		ctx,
		`INSERT INTO builds (type, name, data, version) VALUES (?, ?, ?, ?)
		 ON CONFLICT (type, name) DO UPDATE SET data = excluded.data, version = excluded.version`,
		string(b.Type), b.Name, string(jsonData), b.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save build: %w", err)
	}
	return nil
}

// Get retrieves a build by type and name
func (r *SQLiteRepository) Get(ctx context.Context, t shared.BuildType, name string) (*build.Build, error) {
	if name == "" {
		return nil, forgeerr.InvalidArgument("build name is required")
	}

	row := r.sqlDB.QueryRowContext(
		ctx,
		`SELECT data, version FROM builds WHERE type = ? AND name = ?`,
		string(t), name,
	)

	var jsonData string
	var version int
	if err := row.Scan(&jsonData, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, forgeerr.NotFoundf("%s build '%s' not found", t, name).
				WithMeta("build_type", string(t)).
				WithMeta("build_name", name)
		}
		return nil, fmt.Errorf("failed to get build: %w", err)
	}

	sel, err := build.UnmarshalSelection([]byte(jsonData))
	if err != nil {
		return nil, err
	}
	return &build.Build{Type: t, Name: name, Selection: sel, Version: version}, nil
}

// ListByType retrieves all builds of one type, ordered by name
func (r *SQLiteRepository) ListByType(ctx context.Context, t shared.BuildType) ([]*build.Build, error) {
	rows, err := r.sqlDB.QueryContext(
		ctx,
		`SELECT name, data, version FROM builds WHERE type = ? ORDER BY name`,
		string(t),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*build.Build
	for rows.Next() {
		var name, jsonData string
		var version int
		if err := rows.Scan(&name, &jsonData, &version); err != nil {
			return nil, fmt.Errorf("failed to scan build row: %w", err)
		}
		sel, err := build.UnmarshalSelection([]byte(jsonData))
		if err != nil {
			return nil, err
		}
		results = append(results, &build.Build{Type: t, Name: name, Selection: sel, Version: version})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate build rows: %w", err)
	}
	return results, nil
}

// ListAll retrieves every stored build
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]*build.Build, error) {
	var all []*build.Build
	for _, t := range shared.BuildTypes {
		results, err := r.ListByType(ctx, t)
		if err != nil {
			return nil, err
		}
		all = append(all, results...)
	}
	return all, nil
}

// Delete removes a build
func (r *SQLiteRepository) Delete(ctx context.Context, t shared.BuildType, name string) error {
	if name == "" {
		return forgeerr.InvalidArgument("build name is required")
	}

	result, err := r.sqlDB.ExecContext(
		ctx,
		`DELETE FROM builds WHERE type = ? AND name = ?`,
		string(t), name,
	)
	if err != nil {
		return fmt.Errorf("failed to delete build: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return forgeerr.NotFoundf("%s build '%s' not found", t, name).
			WithMeta("build_type", string(t)).
			WithMeta("build_name", name)
	}
	return nil
}

// GetSheet retrieves the character sheet, empty when never saved
func (r *SQLiteRepository) GetSheet(ctx context.Context) (*build.Sheet, error) {
	row := r.sqlDB.QueryRowContext(ctx, `SELECT data FROM sheet WHERE id = 1`)

	var jsonData string
	if err := row.Scan(&jsonData); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return build.NewSheet(), nil
		}
		return nil, fmt.Errorf("failed to get sheet: %w", err)
	}

	var sheet build.Sheet
	if err := json.Unmarshal([]byte(jsonData), &sheet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sheet: %w", err)
	}
	return &sheet, nil
}

// SaveSheet upserts the character sheet
func (r *SQLiteRepository) SaveSheet(ctx context.Context, sheet *build.Sheet) error {
	if sheet == nil {
		return forgeerr.InvalidArgument("sheet cannot be nil")
	}

	jsonData, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("failed to marshal sheet: %w", err)
	}

	_, err = r.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sheet (id, data) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data`,
		string(jsonData),
	)
	if err != nil {
		return fmt.Errorf("failed to save sheet: %w", err)
	}
	return nil
}
