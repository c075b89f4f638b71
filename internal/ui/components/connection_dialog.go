package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/crux/internal/models"
	"github.com/rebeliceyang/crux/internal/ui/theme"
)

// ConnectionDialog is the connection screen: a recent-connections list above
// a single-line connection string input.
type ConnectionDialog struct {
	Width  int
	Height int
	Theme  theme.Theme

	Input         textinput.Model
	Recent        []models.ConnectionHistoryEntry
	SelectedIndex int
	// ListFocused is true while keys move through the recent list
	ListFocused bool

	// Error is shown inline until the next attempt
	Error      string
	Connecting bool
	Spinner    string
}

// NewConnectionDialog creates a new connection dialog
func NewConnectionDialog(th theme.Theme) *ConnectionDialog {
	input := textinput.New()
	input.Placeholder = "postgres://user@localhost:5432/db, mysql://…, sqlite://file.db"
	input.Prompt = "› "
	input.CharLimit = 2048
	input.Focus()

	return &ConnectionDialog{
		Width:  72,
		Height: 20,
		Theme:  th,
		Input:  input,
	}
}

// SetRecent replaces the recent list. Focus moves to the input when the list
// becomes empty.
func (c *ConnectionDialog) SetRecent(entries []models.ConnectionHistoryEntry) {
	c.Recent = entries
	if c.SelectedIndex >= len(entries) {
		c.SelectedIndex = max(len(entries)-1, 0)
	}
	if len(entries) == 0 && c.ListFocused {
		c.ToggleFocus()
	}
}

// ToggleFocus switches between the list and the input. The list only takes
// focus when it has entries.
func (c *ConnectionDialog) ToggleFocus() {
	if c.ListFocused || len(c.Recent) == 0 {
		c.ListFocused = false
		c.Input.Focus()
		return
	}
	c.ListFocused = true
	c.Input.Blur()
}

// MoveSelection moves through the recent list cyclically
func (c *ConnectionDialog) MoveSelection(delta int) {
	n := len(c.Recent)
	if n == 0 {
		c.SelectedIndex = 0
		return
	}
	c.SelectedIndex = ((c.SelectedIndex+delta)%n + n) % n
}

// SelectedEntry returns the highlighted recent entry
func (c *ConnectionDialog) SelectedEntry() (models.ConnectionHistoryEntry, bool) {
	if c.SelectedIndex < 0 || c.SelectedIndex >= len(c.Recent) {
		return models.ConnectionHistoryEntry{}, false
	}
	return c.Recent[c.SelectedIndex], true
}

// InputValue returns the trimmed text of the input
func (c *ConnectionDialog) InputValue() string {
	return strings.TrimSpace(c.Input.Value())
}

// SetInput prefills the input
func (c *ConnectionDialog) SetInput(value string) {
	c.Input.SetValue(value)
	c.Input.CursorEnd()
}

// Update forwards messages to the input while it is focused
func (c *ConnectionDialog) Update(msg tea.Msg) tea.Cmd {
	if c.ListFocused {
		return nil
	}
	var cmd tea.Cmd
	c.Input, cmd = c.Input.Update(msg)
	return cmd
}

// View renders the dialog
func (c *ConnectionDialog) View() string {
	if c.Width <= 4 || c.Height <= 4 {
		return ""
	}
	innerW := c.Width - 4

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(c.Theme.BorderFocused)
	labelStyle := lipgloss.NewStyle().Foreground(c.Theme.Metadata)
	dimStyle := lipgloss.NewStyle().Foreground(c.Theme.Comment).Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Connect to a database"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Recent connections"))
	b.WriteString("\n")
	if len(c.Recent) == 0 {
		b.WriteString(dimStyle.Render("  (none yet)"))
		b.WriteString("\n")
	}
	for i, entry := range c.Recent {
		b.WriteString(c.renderEntry(entry, i == c.SelectedIndex, innerW))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Connection string"))
	b.WriteString("\n")
	c.Input.Width = max(innerW-runewidth.StringWidth(c.Input.Prompt)-1, 1)
	b.WriteString(c.Input.View())
	b.WriteString("\n\n")

	switch {
	case c.Connecting:
		b.WriteString(lipgloss.NewStyle().Foreground(c.Theme.Info).Render(strings.TrimSpace(c.Spinner + " Connecting…")))
	case c.Error != "":
		errStyle := lipgloss.NewStyle().Foreground(c.Theme.Error).Width(innerW)
		b.WriteString(errStyle.Render("✗ " + c.Error))
	}
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("Tab: switch list/input • ↑/↓: select • Enter: connect • Ctrl+D: delete • Esc: quit"))

	border := c.Theme.Border
	if !c.Connecting {
		border = c.Theme.BorderFocused
	}
	style := lipgloss.NewStyle().
		Width(c.Width-2).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)

	return style.Render(b.String())
}

func (c *ConnectionDialog) renderEntry(entry models.ConnectionHistoryEntry, selected bool, width int) string {
	prefix := "  "
	if selected {
		prefix = "> "
	}
	used := entry.LastUsed.Local().Format("2006-01-02 15:04")
	name := runewidth.Truncate(entry.DisplayName, max(width-len(prefix)-len(used)-2, 1), "…")
	line := fmt.Sprintf("%s%s  %s", prefix, runewidth.FillRight(name, max(width-len(prefix)-len(used)-2, 1)), used)

	if selected && c.ListFocused {
		return lipgloss.NewStyle().Background(c.Theme.Selection).Foreground(c.Theme.Foreground).Bold(true).Render(line)
	}
	if selected {
		return lipgloss.NewStyle().Foreground(c.Theme.Foreground).Render(line)
	}
	return lipgloss.NewStyle().Foreground(c.Theme.Metadata).Render(line)
}
