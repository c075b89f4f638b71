package connection

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/crux/internal/models"
)

func newMockConnection(t *testing.T) (*Connection, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := models.ConnectionConfig{Dialect: models.DialectMySQL, URL: "mysql://root@localhost/test", DisplayName: "MySQL: test@localhost"}
	return NewSQL(cfg, db), mock
}

func TestManager_NoActiveConnection(t *testing.T) {
	m := NewManager(DefaultOptions(), nil)

	_, err := m.Active()
	assert.ErrorIs(t, err, ErrNoActiveConnection)

	_, _, err = m.Acquire()
	assert.ErrorIs(t, err, ErrNoActiveConnection)

	assert.NoError(t, m.Close())
}

func TestManager_ReplaceClosesPrevious(t *testing.T) {
	m := NewManager(DefaultOptions(), nil)

	first, firstMock := newMockConnection(t)
	second, _ := newMockConnection(t)

	require.NoError(t, m.Replace(first))
	firstMock.ExpectClose()
	require.NoError(t, m.Replace(second))

	active, err := m.Active()
	require.NoError(t, err)
	assert.Same(t, second, active)
	assert.NoError(t, firstMock.ExpectationsWereMet())
}

func TestManager_ReplaceWhileBusy(t *testing.T) {
	m := NewManager(DefaultOptions(), nil)

	first, _ := newMockConnection(t)
	second, _ := newMockConnection(t)
	require.NoError(t, m.Replace(first))

	conn, release, err := m.Acquire()
	require.NoError(t, err)
	assert.Same(t, first, conn)
	assert.True(t, m.Busy())

	assert.ErrorIs(t, m.Replace(second), ErrBusy)

	_, err = m.Connect(context.Background(), "sqlite://whatever.db")
	assert.ErrorIs(t, err, ErrBusy)

	release()
	release()
	assert.False(t, m.Busy())
}

func TestManager_ConnectRejectsUnknownScheme(t *testing.T) {
	m := NewManager(DefaultOptions(), nil)
	_, err := m.Connect(context.Background(), "redis://localhost")
	assert.ErrorIs(t, err, ErrUnsupportedConnectionString)
}

func TestManager_ConnectSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")

	seed, err := sql.Open(sqliteDriver, path)
	require.NoError(t, err)
	_, err = seed.Exec("CREATE TABLE notes (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)
	require.NoError(t, seed.Close())

	m := NewManager(DefaultOptions(), nil)
	conn, err := m.Connect(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	assert.Equal(t, models.DialectSQLite, conn.Dialect())
	assert.Equal(t, "sqlite://"+path, conn.Config.URL)
	assert.Equal(t, "SQLite: app.db", conn.Config.DisplayName)
	assert.NotNil(t, conn.SQL())
	assert.Nil(t, conn.Postgres())
	assert.NoError(t, conn.Ping(context.Background()))
}

func TestManager_ConnectMissingSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	m := NewManager(DefaultOptions(), nil)
	_, err := m.Connect(context.Background(), path)
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "missing database file must not be created")

	_, err = m.Active()
	assert.ErrorIs(t, err, ErrNoActiveConnection)
}
