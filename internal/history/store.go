// Package history keeps an optional local log of picked books.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lepinkainen/bookdice/internal/book"
	_ "modernc.org/sqlite"
)

// Schema defines the picks table
const Schema = `
CREATE TABLE IF NOT EXISTS picks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	subject TEXT NOT NULL,
	title TEXT NOT NULL,
	authors TEXT NOT NULL DEFAULT '[]',
	isbn TEXT,
	info_link TEXT,
	total_items INTEGER NOT NULL DEFAULT 0,
	picked_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_picks_picked_at ON picks(picked_at);
`

// Entry is one recorded pick
type Entry struct {
	ID         int64
	Subject    string
	Title      string
	Authors    []string
	ISBN       string
	InfoLink   string
	TotalItems int
	PickedAt   time.Time
}

// Store is a SQLite-backed pick log
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// Open opens (creating if needed) the history database at dbPath
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to history database: %w", err), closeErr)
	}

	if _, err := db.Exec(Schema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create history table: %w", err), closeErr)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Record stores a picked book for subject
func (s *Store) Record(ctx context.Context, subject string, record book.Record) error {
	authors, err := json.Marshal(record.Authors)
	if err != nil {
		return fmt.Errorf("failed to encode authors: %w", err)
	}

	var isbn sql.NullString
	if record.ISBN != nil {
		isbn = sql.NullString{String: *record.ISBN, Valid: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO picks (subject, title, authors, isbn, info_link, total_items)
		VALUES (?, ?, ?, ?, ?, ?)
	`, subject, record.Title, string(authors), isbn, record.InfoLink, record.TotalItems)
	if err != nil {
		return fmt.Errorf("failed to record pick: %w", err)
	}

	slog.Debug("Recorded pick", "subject", subject, "title", record.Title, "database", s.path)
	return nil
}

// Recent returns up to limit picks, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subject, title, authors, isbn, info_link, total_items, picked_at
		FROM picks
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			entry    Entry
			authors  string
			isbn     sql.NullString
			infoLink sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.Subject, &entry.Title, &authors, &isbn, &infoLink, &entry.TotalItems, &entry.PickedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal([]byte(authors), &entry.Authors); err != nil {
			slog.Warn("Corrupt authors in history row", "id", entry.ID, "error", err)
		}
		entry.ISBN = isbn.String
		entry.InfoLink = infoLink.String
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return entries, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
