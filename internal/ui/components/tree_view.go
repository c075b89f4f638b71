package components

// TreeView renders the schema → table navigator over a models.Tree and maps
// sidebar keys onto it.
//
// Usage:
//
//	tree := models.BuildSchemaTree(tables)
//	treeView := components.NewTreeView(tree, theme)
//	treeView.Width = 30
//	treeView.Height = 20
//
//	// In your Update method:
//	cmd := treeView.Update(msg)
//
//	// In your View method:
//	content := treeView.View()

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/crux/internal/models"
	"github.com/rebeliceyang/crux/internal/ui/theme"
)

// TreeView represents the sidebar navigator
type TreeView struct {
	Tree    *models.Tree
	Width   int // Row width
	Height  int // Number of rows shown
	Theme   theme.Theme
	Focused bool
}

// TableSelectedMsg is sent when a table node is activated (Enter/Right)
type TableSelectedMsg struct {
	Table models.TableRef
}

// NewTreeView creates a new tree view component
func NewTreeView(tree *models.Tree, th theme.Theme) *TreeView {
	if tree == nil {
		tree = &models.Tree{}
	}
	return &TreeView{
		Tree:   tree,
		Width:  30,
		Height: 20,
		Theme:  th,
	}
}

// SetTree replaces the tree, e.g. after a new catalog load
func (tv *TreeView) SetTree(tree *models.Tree) {
	if tree == nil {
		tree = &models.Tree{}
	}
	tv.Tree = tree
}

// Update handles sidebar keys. Activating a table returns a command emitting
// TableSelectedMsg; activating a schema toggles it.
func (tv *TreeView) Update(msg tea.KeyMsg) tea.Cmd {
	if tv.Tree.Len() == 0 {
		return nil
	}

	switch msg.String() {
	case "down", "j":
		tv.Tree.SelectNext()
	case "up", "k":
		tv.Tree.SelectPrev()
	case "enter", "right", "l":
		if tv.Tree.IsSelectedSchema() {
			tv.Tree.ToggleSelected()
			break
		}
		if table, ok := tv.Tree.SelectedTable(); ok {
			return func() tea.Msg {
				return TableSelectedMsg{Table: table}
			}
		}
	case "left", "h":
		tv.Tree.Collapse()
	case " ":
		tv.Tree.ToggleSelected()
	}

	tv.Tree.UpdateScroll(tv.Height)
	return nil
}

// ClickRow selects the node on the given row of the viewport
func (tv *TreeView) ClickRow(row int) bool {
	if row < 0 || row >= tv.Height {
		return false
	}
	if !tv.Tree.SelectByClick(tv.Tree.ScrollOffset + row) {
		return false
	}
	tv.Tree.UpdateScroll(tv.Height)
	return true
}

// View renders the visible window of the tree, one line per row
func (tv *TreeView) View() string {
	if tv.Tree.Len() == 0 {
		return tv.emptyState()
	}

	tv.Tree.UpdateScroll(tv.Height)
	visible := tv.Tree.VisibleIndices()
	counts := tv.tableCounts()

	end := min(tv.Tree.ScrollOffset+tv.Height, len(visible))
	lines := make([]string, 0, tv.Height)
	for _, idx := range visible[tv.Tree.ScrollOffset:end] {
		lines = append(lines, tv.renderNode(tv.Tree.Nodes[idx], counts, idx == tv.Tree.Selected))
	}

	if tv.Tree.ScrollOffset > 0 || end < len(visible) {
		tv.addScrollIndicators(lines, end < len(visible))
	}

	return strings.Join(lines, "\n")
}

func (tv *TreeView) renderNode(node models.TreeNode, counts map[string]int, selected bool) string {
	var icon, label string
	var iconColor lipgloss.Color

	if node.IsSchema() {
		icon, iconColor = "▸", tv.Theme.SchemaCollapsed
		if node.Expanded {
			icon, iconColor = "▾", tv.Theme.SchemaExpanded
		}
		label = fmt.Sprintf("%s (%d)", node.Label(), counts[node.Schema])
	} else {
		icon, iconColor = "  •", tv.Theme.TableIcon
		label = node.Label()
	}

	width := max(tv.Width, 1)
	text := runewidth.Truncate(label, max(width-runewidth.StringWidth(icon)-1, 0), "…")
	text = runewidth.FillRight(text, max(width-runewidth.StringWidth(icon)-1, 0))

	style := lipgloss.NewStyle().Foreground(tv.Theme.Foreground)
	iconStyle := lipgloss.NewStyle().Foreground(iconColor)
	if selected {
		bg := tv.Theme.Selection
		if tv.Focused {
			bg = tv.Theme.BorderFocused
		}
		style = style.Background(bg).Bold(true)
		iconStyle = iconStyle.Background(bg)
	}

	return iconStyle.Render(icon) + style.Render(" "+text)
}

func (tv *TreeView) tableCounts() map[string]int {
	counts := make(map[string]int)
	for _, node := range tv.Tree.Nodes {
		if !node.IsSchema() {
			counts[node.Schema]++
		}
	}
	return counts
}

// addScrollIndicators marks the last row when more nodes follow
func (tv *TreeView) addScrollIndicators(lines []string, more bool) {
	if !more || len(lines) == 0 || tv.Width < 2 {
		return
	}
	indicator := lipgloss.NewStyle().Foreground(tv.Theme.Info).Render("↓")
	last := len(lines) - 1
	lines[last] = lipgloss.NewStyle().MaxWidth(tv.Width-1).Render(lines[last]) + indicator
}

func (tv *TreeView) emptyState() string {
	style := lipgloss.NewStyle().
		Foreground(tv.Theme.Comment).
		Italic(true)

	return style.Render(runewidth.Truncate("No tables", max(tv.Width, 0), ""))
}
