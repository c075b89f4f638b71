package connection_history

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/rebeliceyang/crux/internal/applog"
	"github.com/rebeliceyang/crux/internal/db/connection"
	"github.com/rebeliceyang/crux/internal/models"
)

const historyFile = "connection_history.yaml"

// Manager manages the recent connections list.
//
// Entries are persisted to a YAML file with passwords stripped from their
// URLs; passwords go to the Secrets store keyed by entry ID.
type Manager struct {
	path      string
	history   []models.ConnectionHistoryEntry
	passwords Secrets
	logger    *slog.Logger
	now       func() time.Time
}

// NewManager creates a new connection history manager. passwords may be nil,
// in which case passwords are not remembered.
func NewManager(configDir string, passwords Secrets, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = applog.Discard()
	}

	m := &Manager{
		path:      filepath.Join(configDir, historyFile),
		history:   []models.ConnectionHistoryEntry{},
		passwords: passwords,
		logger:    logger,
		now:       time.Now,
	}

	if _, err := os.Stat(m.path); err == nil {
		if err := m.Load(); err != nil {
			return nil, fmt.Errorf("failed to load connection history: %w", err)
		}
	}

	return m, nil
}

// Load loads connection history from the YAML file
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("failed to read connection history file: %w", err)
	}

	var history []models.ConnectionHistoryEntry
	if err := yaml.Unmarshal(data, &history); err != nil {
		return fmt.Errorf("failed to parse connection history: %w", err)
	}
	m.history = history

	return nil
}

// Save writes connection history to the YAML file
func (m *Manager) Save() error {
	data, err := yaml.Marshal(m.history)
	if err != nil {
		return fmt.Errorf("failed to marshal connection history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write connection history file: %w", err)
	}

	return nil
}

// Add records a successful connection. A string already in history (compared
// without its password) has its last-used time and usage count bumped.
func (m *Manager) Add(connStr string) error {
	stripped, password := connection.SplitPassword(connStr)
	now := m.now()

	idx := -1
	for i, entry := range m.history {
		if entry.URL == stripped {
			idx = i
			break
		}
	}

	if idx < 0 {
		m.history = append(m.history, models.ConnectionHistoryEntry{
			ID:        uuid.New().String(),
			URL:       stripped,
			CreatedAt: now,
		})
		idx = len(m.history) - 1
	}

	entry := &m.history[idx]
	entry.DisplayName = connection.DisplayName(stripped)
	entry.LastUsed = now
	entry.UsageCount++

	if password != "" && m.passwords != nil {
		if err := m.passwords.Save(entry.ID, password); err != nil {
			m.logger.Warn("password not remembered", "connection", entry.DisplayName, "error", err)
		} else {
			entry.HasSecret = true
		}
	}

	return m.Save()
}

// GetRecent returns up to limit entries, most recently used first.
// A limit of zero or less returns every entry.
func (m *Manager) GetRecent(limit int) []models.ConnectionHistoryEntry {
	sorted := make([]models.ConnectionHistoryEntry, len(m.history))
	copy(sorted, m.history)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastUsed.After(sorted[j].LastUsed)
	})

	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}

	return sorted
}

// Delete removes a connection from history by ID together with its password
func (m *Manager) Delete(id string) error {
	for i, entry := range m.history {
		if entry.ID != id {
			continue
		}
		if entry.HasSecret && m.passwords != nil {
			if err := m.passwords.Delete(entry.ID); err != nil {
				m.logger.Warn("failed to forget password", "connection", entry.DisplayName, "error", err)
			}
		}
		m.history = append(m.history[:i], m.history[i+1:]...)
		return m.Save()
	}
	return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

// ConnectionString rebuilds the full connection string of an entry, with its
// password read back from the keyring when one was stored.
func (m *Manager) ConnectionString(entry models.ConnectionHistoryEntry) string {
	if !entry.HasSecret || m.passwords == nil {
		return entry.URL
	}

	password, err := m.passwords.Get(entry.ID)
	if err != nil {
		m.logger.Warn("stored password unavailable", "connection", entry.DisplayName, "error", err)
		return entry.URL
	}
	return connection.WithPassword(entry.URL, password)
}
