package layoutstore

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver (pure Go)
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite WASM binary

	"github.com/go-theft-auto/dockgui"
	"github.com/go-theft-auto/dockgui/internal/inifile"
)

const schema = `
CREATE TABLE IF NOT EXISTS layouts (
	name       TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore keeps layouts as rows of a SQLite database, in the same text
// format as layout files.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single writer keeps SQLite lock contention out of the picture.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	for _, stmt := range []string{"PRAGMA busy_timeout = 5000", schema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("prepare database: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, name string, settings *dockgui.Settings) error {
	if err := checkName(name); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := inifile.Write(&buf, settings); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO layouts (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, buf.String(), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save layout %q: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, name string) (*dockgui.Settings, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM layouts WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("layout %q: %w", name, dockgui.ErrLayoutNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load layout %q: %w", name, err)
	}
	settings, err := inifile.Read(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", name, err)
	}
	return settings, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM layouts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list layouts: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	return names, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete layout %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("layout %q: %w", name, dockgui.ErrLayoutNotFound)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
