package connection

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/rebeliceyang/crux/internal/applog"
)

var (
	// ErrNoActiveConnection is returned when an operation needs a connection
	// before one was established.
	ErrNoActiveConnection = errors.New("no active connection")

	// ErrBusy is returned when the active connection would be replaced while
	// a query against it is outstanding.
	ErrBusy = errors.New("a query is still running on the active connection")
)

// Manager owns the single active connection of a session
type Manager struct {
	opts   Options
	logger *slog.Logger

	mu          sync.Mutex
	active      *Connection
	outstanding int
}

// NewManager creates a connection manager
func NewManager(opts Options, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Manager{opts: opts, logger: logger}
}

// Connect recognizes, opens and activates a connection string, closing the
// previous connection.
func (m *Manager) Connect(ctx context.Context, connStr string) (*Connection, error) {
	config, err := Parse(connStr)
	if err != nil {
		return nil, err
	}

	if m.Busy() {
		return nil, ErrBusy
	}

	conn, err := Open(ctx, config, m.opts)
	if err != nil {
		m.logger.Warn("connect failed", "connection", config.DisplayName, "error", err)
		return nil, err
	}

	if err := m.Replace(conn); err != nil {
		conn.Close()
		return nil, err
	}

	m.logger.Info("connected", "connection", config.DisplayName, "dialect", config.Dialect.String())
	return conn, nil
}

// Replace activates conn and closes the previous connection
func (m *Manager) Replace(conn *Connection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.outstanding > 0 {
		return ErrBusy
	}

	if m.active != nil && m.active != conn {
		if err := m.active.Close(); err != nil {
			m.logger.Warn("failed to close previous connection", "connection", m.active.Config.DisplayName, "error", err)
		}
	}
	m.active = conn
	return nil
}

// Active returns the active connection
func (m *Manager) Active() (*Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return nil, ErrNoActiveConnection
	}
	return m.active, nil
}

// Acquire returns the active connection and marks a query as outstanding
// until release is called. Release is idempotent.
func (m *Manager) Acquire() (conn *Connection, release func(), err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return nil, nil, ErrNoActiveConnection
	}

	m.outstanding++
	var once sync.Once
	release = func() {
		once.Do(func() {
			m.mu.Lock()
			m.outstanding--
			m.mu.Unlock()
		})
	}
	return m.active, release, nil
}

// Busy reports whether a query is outstanding on the active connection
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outstanding > 0
}

// Close closes the active connection
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return nil
	}
	err := m.active.Close()
	m.active = nil
	return err
}
