package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/crux/internal/models"
	"github.com/rebeliceyang/crux/internal/ui/components"
)

// handleMouse routes a mouse event by hit-testing the layout rectangles.
// Scrollbars win over buttons, buttons over sidebar rows.
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x, y := msg.X, msg.Y

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		a.wheel(-1)
		return nil

	case msg.Button == tea.MouseButtonWheelDown:
		a.wheel(1)
		return nil

	case msg.Button == tea.MouseButtonLeft &&
		(msg.Action == tea.MouseActionPress || msg.Action == tea.MouseActionMotion):
		return a.leftClick(x, y, msg.Action == tea.MouseActionPress)

	case msg.Action == tea.MouseActionMotion:
		a.buttons.Hovered = components.HitTest(a.layout.Buttons, x, y)
	}
	return nil
}

// leftClick handles a press, or a drag when press is false. Dragging only
// moves scrollbar thumbs.
func (a *App) leftClick(x, y int, press bool) tea.Cmd {
	l := a.layout
	grid := a.tableView.Grid

	if a.gridScrollable() {
		if l.VScroll.Contains(x, y) {
			ratio := scrollRatio(y, l.VScroll.Y, l.VScroll.Height)
			grid.ScrollToVerticalRatio(ratio, len(a.tableView.Result.Rows))
			a.focusTo(models.FocusResultGrid, models.ButtonNone)
			a.syncPreview()
			return nil
		}
		if l.HScroll.Contains(x, y) {
			ratio := scrollRatio(x, l.HScroll.X, l.HScroll.Width)
			grid.ScrollToHorizontalRatio(ratio, a.tableView.MaxHorizontalScroll())
			a.focusTo(models.FocusResultGrid, models.ButtonNone)
			return nil
		}
	}
	if !press {
		return nil
	}

	if b := components.HitTest(l.Buttons, x, y); b != models.ButtonNone {
		a.focusTo(models.FocusQueryButtons, b)
		return a.activateButton(b)
	}

	if l.SidebarRows.Contains(x, y) {
		a.treeView.ClickRow(y - l.SidebarRows.Y)
		a.focusTo(models.FocusSidebar, models.ButtonNone)
	}
	return nil
}

// wheel moves the selection of the focused list by delta rows
func (a *App) wheel(delta int) {
	switch a.focus {
	case models.FocusSidebar:
		if delta < 0 {
			a.treeView.Tree.SelectPrev()
		} else {
			a.treeView.Tree.SelectNext()
		}
		a.treeView.Tree.UpdateScroll(a.treeView.Height)

	case models.FocusResultGrid:
		rows := len(a.tableView.Result.Rows)
		if delta < 0 {
			a.tableView.Grid.SelectPrev(rows)
		} else {
			a.tableView.Grid.SelectNext(rows)
		}
		a.syncPreview()
	}
}
