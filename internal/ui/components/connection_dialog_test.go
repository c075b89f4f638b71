package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rebeliceyang/crux/internal/models"
	"github.com/rebeliceyang/crux/internal/ui/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recentEntries() []models.ConnectionHistoryEntry {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.ConnectionHistoryEntry{
		{ID: "a", DisplayName: "PostgreSQL: app@db", URL: "postgres://u@db/app", LastUsed: now},
		{ID: "b", DisplayName: "SQLite: test.db", URL: "sqlite://test.db", LastUsed: now.Add(-time.Hour)},
	}
}

func TestConnectionDialog_ToggleFocus(t *testing.T) {
	c := NewConnectionDialog(theme.DefaultTheme())

	c.ToggleFocus()
	assert.False(t, c.ListFocused, "empty list never takes focus")
	assert.True(t, c.Input.Focused())

	c.SetRecent(recentEntries())
	c.ToggleFocus()
	assert.True(t, c.ListFocused)
	assert.False(t, c.Input.Focused())

	c.ToggleFocus()
	assert.False(t, c.ListFocused)
}

func TestConnectionDialog_MoveSelectionWraps(t *testing.T) {
	c := NewConnectionDialog(theme.DefaultTheme())
	c.SetRecent(recentEntries())

	c.MoveSelection(1)
	assert.Equal(t, 1, c.SelectedIndex)
	c.MoveSelection(1)
	assert.Equal(t, 0, c.SelectedIndex)
	c.MoveSelection(-1)
	assert.Equal(t, 1, c.SelectedIndex)

	entry, ok := c.SelectedEntry()
	require.True(t, ok)
	assert.Equal(t, "b", entry.ID)
}

func TestConnectionDialog_SetRecentClampsSelection(t *testing.T) {
	c := NewConnectionDialog(theme.DefaultTheme())
	c.SetRecent(recentEntries())
	c.SelectedIndex = 1
	c.ToggleFocus()

	c.SetRecent(recentEntries()[:1])
	assert.Equal(t, 0, c.SelectedIndex)

	c.SetRecent(nil)
	assert.False(t, c.ListFocused, "focus returns to the input when the list empties")
	_, ok := c.SelectedEntry()
	assert.False(t, ok)
}

func TestConnectionDialog_Input(t *testing.T) {
	c := NewConnectionDialog(theme.DefaultTheme())

	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("test.db")})
	assert.Equal(t, "test.db", c.InputValue())

	c.SetRecent(recentEntries())
	c.ToggleFocus()
	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "test.db", c.InputValue(), "input ignores keys while the list is focused")

	c.SetInput("  sqlite://a.db ")
	assert.Equal(t, "sqlite://a.db", c.InputValue())
}

func TestConnectionDialog_View(t *testing.T) {
	c := NewConnectionDialog(theme.DefaultTheme())
	c.SetRecent(recentEntries())
	c.Error = "unsupported connection string"

	view := c.View()
	assert.Contains(t, view, "Recent connections")
	assert.Contains(t, view, "PostgreSQL: app@db")
	assert.Contains(t, view, "SQLite: test.db")
	assert.Contains(t, view, "unsupported connection string")
}
