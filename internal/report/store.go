// Package report persists a history of parse failures so "pgexfmt history"
// can show what went wrong across past serve/watch runs, not just the
// most recent one.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded parse failure.
type Entry struct {
	ID         string
	Path       string
	LineNumber uint64
	LineData   string
	Message    string
	OccurredAt time.Time
}

// Store persists Entry rows in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at dsn and
// ensures its schema exists.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open report db: %w", err)
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	const schema = `
CREATE TABLE IF NOT EXISTS parse_failures (
	id          TEXT PRIMARY KEY,
	path        TEXT NOT NULL,
	line_number INTEGER NOT NULL,
	line_data   TEXT NOT NULL,
	message     TEXT NOT NULL,
	occurred_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_parse_failures_path ON parse_failures(path);
CREATE INDEX IF NOT EXISTS idx_parse_failures_occurred_at ON parse_failures(occurred_at);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Record inserts one failure entry, assigning it a fresh ID and timestamp.
func (s *Store) Record(ctx context.Context, path string, lineNumber uint64, lineData, message string) (Entry, error) {
	e := Entry{
		ID:         uuid.NewString(),
		Path:       path,
		LineNumber: lineNumber,
		LineData:   lineData,
		Message:    message,
		OccurredAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO parse_failures (id, path, line_number, line_data, message, occurred_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Path, e.LineNumber, e.LineData, e.Message, e.OccurredAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record failure: %w", err)
	}
	return e, nil
}

// Recent returns the most recent failures for path, newest first, limited
// to limit rows. An empty path returns failures across all files.
func (s *Store) Recent(ctx context.Context, path string, limit int) ([]Entry, error) {
	var rows *sql.Rows
	var err error
	if path == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, path, line_number, line_data, message, occurred_at FROM parse_failures ORDER BY occurred_at DESC LIMIT ?`,
			limit)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, path, line_number, line_data, message, occurred_at FROM parse_failures WHERE path = ? ORDER BY occurred_at DESC LIMIT ?`,
			path, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Path, &e.LineNumber, &e.LineData, &e.Message, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan failure row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
