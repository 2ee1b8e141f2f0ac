package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it does not exist yet.
func (db *DB) RunMigrations() error {
	migration := `
-- Furniture (tables and seats)
CREATE TABLE IF NOT EXISTS furniture (
    id TEXT PRIMARY KEY,
    floor_id TEXT NOT NULL,
    seq_index INTEGER NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    pos_x REAL NOT NULL,
    pos_y REAL NOT NULL,
    width REAL NOT NULL,
    height REAL NOT NULL,
    capacity INTEGER NOT NULL DEFAULT 0,
    extra_seat_limit INTEGER NOT NULL DEFAULT 0,
    occupied INTEGER NOT NULL DEFAULT 0,
    tags TEXT NOT NULL DEFAULT '[]',
    description TEXT NOT NULL DEFAULT '',
    available INTEGER NOT NULL DEFAULT 1,
    last_occupied_at TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_furniture_floor ON furniture(floor_id, seq_index);

-- Per-floor background settings
CREATE TABLE IF NOT EXISTS floor_settings (
    floor_id TEXT PRIMARY KEY,
    crop_x INTEGER NOT NULL DEFAULT 0,
    crop_y INTEGER NOT NULL DEFAULT 0,
    crop_width INTEGER NOT NULL DEFAULT 0,
    crop_height INTEGER NOT NULL DEFAULT 0,
    zoom REAL NOT NULL DEFAULT 1,
    rotation INTEGER NOT NULL DEFAULT 0 CHECK(rotation BETWEEN 0 AND 3),
    background_hidden INTEGER NOT NULL DEFAULT 0,
    grid_hidden INTEGER NOT NULL DEFAULT 0,
    show_seat_index INTEGER NOT NULL DEFAULT 0,
    title TEXT NOT NULL,
    logo TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Activity log
CREATE TABLE IF NOT EXISTS activity_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT,
    furniture_id TEXT,
    activity_type TEXT NOT NULL,
    summary TEXT NOT NULL,
    details TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_furniture_activity ON activity_log(furniture_id);
CREATE INDEX IF NOT EXISTS idx_session_activity ON activity_log(session_id);
CREATE INDEX IF NOT EXISTS idx_created_at ON activity_log(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
