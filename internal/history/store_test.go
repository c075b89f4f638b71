package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, opts Options) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "nested", "history.db"), opts)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// storedEntries reads back every row, newest first
func storedEntries(t *testing.T, s *Store) []HistoryEntry {
	t.Helper()
	rows, err := s.db.QueryContext(context.Background(), `
		SELECT id, connection_name, dialect, query, executed_at,
		       duration_ms, rows_affected, success, error_message
		FROM query_history
		ORDER BY executed_at DESC, id DESC`)
	require.NoError(t, err)
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var durationMs, rowsAffected int64
		require.NoError(t, rows.Scan(
			&e.ID,
			&e.ConnectionName,
			&e.Dialect,
			&e.Query,
			&e.ExecutedAt,
			&durationMs,
			&rowsAffected,
			&e.Success,
			&e.ErrorMessage,
		))
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.RowsAffected = uint64(rowsAffected)
		entries = append(entries, e)
	}
	require.NoError(t, rows.Err())
	return entries
}

func TestStore_Add(t *testing.T) {
	s := openStore(t, Options{SaveFailed: true})
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Add(ctx, HistoryEntry{
		ConnectionName: "SQLite: app.db",
		Dialect:        "SQLite",
		Query:          "SELECT 1",
		ExecutedAt:     base,
		Duration:       15 * time.Millisecond,
		RowsAffected:   1,
		Success:        true,
	}))
	require.NoError(t, s.Add(ctx, HistoryEntry{
		ConnectionName: "SQLite: app.db",
		Dialect:        "SQLite",
		Query:          "SELEC 2",
		ExecutedAt:     base.Add(time.Minute),
		Success:        false,
		ErrorMessage:   "syntax error",
	}))

	entries := storedEntries(t, s)
	require.Len(t, entries, 2)

	assert.Equal(t, "SELEC 2", entries[0].Query)
	assert.False(t, entries[0].Success)
	assert.Equal(t, "syntax error", entries[0].ErrorMessage)

	assert.Equal(t, "SELECT 1", entries[1].Query)
	assert.True(t, entries[1].Success)
	assert.Equal(t, 15*time.Millisecond, entries[1].Duration)
	assert.Equal(t, uint64(1), entries[1].RowsAffected)
	assert.True(t, entries[1].ExecutedAt.Equal(base))
}

func TestStore_RecordRespectsOptions(t *testing.T) {
	s := openStore(t, Options{SaveFailed: false, MaxEntries: 3})
	ctx := context.Background()

	stored, err := s.Record(ctx, HistoryEntry{Query: "bad", Success: false})
	require.NoError(t, err)
	assert.False(t, stored)

	for i, q := range []string{"q1", "q2", "q3", "q4", "q5"} {
		stored, err := s.Record(ctx, HistoryEntry{
			Query:      q,
			Success:    true,
			ExecutedAt: time.Date(2024, 1, 1, 0, i, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.True(t, stored)
	}

	entries := storedEntries(t, s)
	require.Len(t, entries, 3)
	assert.Equal(t, "q5", entries[0].Query)
	assert.Equal(t, "q3", entries[2].Query)
}

func TestStore_RecentQueries(t *testing.T) {
	s := openStore(t, Options{SaveFailed: true})
	ctx := context.Background()

	for _, q := range []string{"SELECT * FROM users", "SELECT * FROM orders", "SELECT * FROM users", "DELETE FROM tmp"} {
		require.NoError(t, s.Add(ctx, HistoryEntry{Query: q, Success: true}))
	}

	queries, err := s.RecentQueries(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"DELETE FROM tmp", "SELECT * FROM users", "SELECT * FROM orders"}, queries)

	limited, err := s.RecentQueries(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"DELETE FROM tmp"}, limited)
}
