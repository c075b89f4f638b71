package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/crux/internal/models"
	"github.com/rebeliceyang/crux/internal/ui/components"
	"github.com/rebeliceyang/crux/internal/ui/help"
)

// View implements tea.Model
func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return "Loading…"
	}

	if a.state == models.ConnectionScreen {
		a.connectionDialog.Spinner = a.spinner.View()
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.connectionDialog.View())
	}

	if a.showHelp {
		return help.Render(a.width, a.height, a.theme)
	}

	return a.renderBrowser()
}

func (a *App) renderBrowser() string {
	l := a.layout

	sidebar := components.Panel{
		Title:   fmt.Sprintf("Tables (%d)", a.tableTotal()),
		Content: a.treeView.View(),
		Width:   l.Sidebar.Width,
		Height:  l.Sidebar.Height,
		Style:   a.borderStyle(models.FocusSidebar),
	}

	buttonPanel := components.Panel{
		Content: " " + a.buttons.View(l.ButtonPanel.Width-3),
		Width:   l.ButtonPanel.Width,
		Height:  l.ButtonPanel.Height,
		Style:   a.borderStyle(models.FocusQueryButtons),
	}

	editor := components.Panel{
		Title:   "Query",
		Content: a.editor.View(),
		Width:   l.Editor.Width,
		Height:  l.Editor.Height,
		Style:   a.borderStyle(models.FocusQueryEditor),
	}

	body := a.tableView.View()
	if a.preview.Visible {
		body = a.preview.View()
	}
	results := components.Panel{
		Title:   "Results · " + a.tableView.Summary(),
		Content: body,
		Width:   l.Results.Width,
		Height:  l.Results.Height,
		Style:   a.borderStyle(models.FocusResultGrid),
	}

	right := lipgloss.JoinVertical(lipgloss.Left, buttonPanel.View(), editor.View(), results.View())
	panels := lipgloss.JoinHorizontal(lipgloss.Top, sidebar.View(), right)

	return lipgloss.JoinVertical(lipgloss.Left, panels, a.renderStatusBar())
}

func (a *App) tableTotal() int {
	n := 0
	for _, node := range a.treeView.Tree.Nodes {
		if !node.IsSchema() {
			n++
		}
	}
	return n
}

func (a *App) borderStyle(f models.Focus) lipgloss.Style {
	if a.focus == f {
		return lipgloss.NewStyle().BorderForeground(a.theme.BorderFocused)
	}
	return lipgloss.NewStyle().BorderForeground(a.theme.Border)
}

// renderStatusBar shows the connection, the last outcome and key hints
func (a *App) renderStatusBar() string {
	status := a.status
	if a.busy {
		status = a.spinner.View() + " running…"
	}

	left := a.connName
	if status != "" {
		left += " │ " + status
	}
	right := help.ShortHints(a.focus)

	return lipgloss.NewStyle().
		Width(a.width).
		MaxWidth(a.width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Render(formatStatusBar(left, right, a.width-2))
}

// formatStatusBar fills width with left and right aligned content. The hints
// on the right are dropped first when space runs out.
func formatStatusBar(left, right string, width int) string {
	width = max(width, 0)
	leftW := runewidth.StringWidth(left)
	rightW := runewidth.StringWidth(right)

	if leftW+rightW+1 > width {
		return " " + runewidth.Truncate(left, width, "…")
	}
	return " " + left + strings.Repeat(" ", width-leftW-rightW) + right
}
