package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// HistoryEntry represents a single executed query
type HistoryEntry struct {
	ID             int64
	ConnectionName string
	Dialect        string
	Query          string
	ExecutedAt     time.Time
	Duration       time.Duration
	RowsAffected   uint64
	Success        bool
	ErrorMessage   string
}

// Options controls what Record keeps
type Options struct {
	// SaveFailed keeps queries that ended in an error
	SaveFailed bool
	// MaxEntries caps the number of stored queries; 0 keeps everything
	MaxEntries int
}

// Store manages query history persistence in a SQLite file
type Store struct {
	db   *sql.DB
	opts Options
}

// NewStore opens (creating if needed) the history database at path
func NewStore(path string, opts Options) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db, opts: opts}, nil
}

// Add inserts an entry unconditionally
func (s *Store) Add(ctx context.Context, entry HistoryEntry) error {
	executedAt := entry.ExecutedAt
	if executedAt.IsZero() {
		executedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO query_history
		(connection_name, dialect, query, executed_at, duration_ms, rows_affected, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ConnectionName,
		entry.Dialect,
		entry.Query,
		executedAt.UTC(),
		entry.Duration.Milliseconds(),
		int64(entry.RowsAffected),
		entry.Success,
		entry.ErrorMessage,
	)
	return err
}

// Record stores an entry subject to Options and trims the oldest entries
// beyond MaxEntries. It reports whether the entry was stored.
func (s *Store) Record(ctx context.Context, entry HistoryEntry) (bool, error) {
	if !entry.Success && !s.opts.SaveFailed {
		return false, nil
	}
	if err := s.Add(ctx, entry); err != nil {
		return false, err
	}
	if s.opts.MaxEntries > 0 {
		if err := s.Prune(ctx, s.opts.MaxEntries); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Prune deletes all but the keep most recent entries
func (s *Store) Prune(ctx context.Context, keep int) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM query_history
		WHERE id NOT IN (
			SELECT id FROM query_history ORDER BY executed_at DESC, id DESC LIMIT ?
		)`, keep)
	return err
}

// RecentQueries returns distinct query texts, most recently run first
func (s *Store) RecentQueries(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT query FROM query_history
		GROUP BY query
		ORDER BY MAX(id) DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
