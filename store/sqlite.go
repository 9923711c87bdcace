package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const credentialsSchema = `
CREATE TABLE IF NOT EXISTS credentials (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
) STRICT;
`

// SQLite is a file-backed credential store. It models the browser's local
// storage: one row per key, surviving process restarts, scoped to the
// database file (the browsing context).
type SQLite struct {
	db   *sql.DB
	path string
}

// NewSQLite opens (or creates) the credential database at path with WAL
// mode and a busy timeout, and ensures the schema exists. A single writer
// connection avoids "database is locked" errors under the store's
// sequential access pattern.
func NewSQLite(path string) (*SQLite, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open credential db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping credential db: %w", err)
	}

	if _, err := db.Exec(credentialsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure credentials schema: %w", err)
	}

	return &SQLite{db: db, path: path}, nil
}

// Get returns the stored credential and whether it was present.
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM credentials WHERE key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get credential %q: %w", key, err)
	}

	return value, true, nil
}

// Set stores or replaces the credential under key.
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	const query = `INSERT OR REPLACE INTO credentials (key, value, updated_at) VALUES (?, ?, unixepoch())`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set credential %q: %w", key, err)
	}
	return nil
}

// Remove deletes the credential under key. Removing an absent key is a
// no-op.
func (s *SQLite) Remove(ctx context.Context, key string) error {
	const query = `DELETE FROM credentials WHERE key = ?`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("remove credential %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
