package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/crux/internal/models"
	"github.com/rebeliceyang/crux/internal/ui/theme"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// Section groups key bindings under a heading
type Section struct {
	Title    string
	Bindings []KeyBinding
}

// GetGlobalKeys returns key bindings available in every panel
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"Esc, Ctrl+C", "Quit"},
		{"Tab", "Next panel"},
		{"Shift+Tab", "Previous panel"},
		{"Ctrl+R, F5", "Run query"},
		{"F1", "Toggle help"},
	}
}

// GetSidebarKeys returns sidebar key bindings
func GetSidebarKeys() []KeyBinding {
	return []KeyBinding{
		{"↓/j, ↑/k", "Move selection"},
		{"Enter, →", "Toggle schema or open table"},
		{"←", "Collapse schema"},
		{"Space", "Toggle schema"},
	}
}

// GetEditorKeys returns query editor key bindings
func GetEditorKeys() []KeyBinding {
	return []KeyBinding{
		{"Ctrl+P", "Previous query from history"},
		{"Ctrl+N", "Next query from history"},
		{"Home/End", "Line start/end"},
	}
}

// GetButtonKeys returns button bar key bindings
func GetButtonKeys() []KeyBinding {
	return []KeyBinding{
		{"←/→", "Select button"},
		{"Enter", "Activate button"},
	}
}

// GetResultKeys returns result grid key bindings
func GetResultKeys() []KeyBinding {
	return []KeyBinding{
		{"↓/j, ↑/k", "Move row"},
		{"←/h, →/l", "Scroll columns"},
		{"g, G", "First/last row"},
		{"p", "Preview row"},
		{"y", "Copy row as CSV"},
		{"Y", "Copy result as CSV"},
	}
}

// GetConnectionKeys returns connection screen key bindings
func GetConnectionKeys() []KeyBinding {
	return []KeyBinding{
		{"Tab", "Switch list/input"},
		{"↑/↓", "Select recent connection"},
		{"Enter", "Connect"},
		{"Ctrl+D", "Delete recent connection"},
	}
}

// Sections returns every help section in display order
func Sections() []Section {
	return []Section{
		{"Global", GetGlobalKeys()},
		{"Sidebar", GetSidebarKeys()},
		{"Query editor", GetEditorKeys()},
		{"Buttons", GetButtonKeys()},
		{"Results", GetResultKeys()},
		{"Connection", GetConnectionKeys()},
	}
}

// ShortHints returns the status bar hint for the focused panel
func ShortHints(focus models.Focus) string {
	switch focus {
	case models.FocusSidebar:
		return "↑↓ move • Enter open • Space toggle • Tab next • F1 help"
	case models.FocusQueryEditor:
		return "Ctrl+R run • Ctrl+P/N history • Tab next • F1 help"
	case models.FocusQueryButtons:
		return "←→ select • Enter activate • Tab next • F1 help"
	case models.FocusResultGrid:
		return "↑↓ rows • ←→ columns • p preview • y/Y copy • F1 help"
	default:
		return "F1 help"
	}
}

// Render creates the help view
func Render(width, height int, th theme.Theme) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BorderFocused).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Info).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Warning).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(th.Foreground)

	var b strings.Builder

	b.WriteString(titleStyle.Render("crux - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, section := range Sections() {
		b.WriteString(sectionStyle.Render(section.Title))
		b.WriteString("\n")
		for _, kb := range section.Bindings {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press F1 or Esc to close help"))

	// Wrap in a box
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(0, 2).
		Width(max(width-4, 10)).
		MaxHeight(max(height, 3))

	return boxStyle.Render(b.String())
}
