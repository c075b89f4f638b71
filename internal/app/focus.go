package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/crux/internal/models"
)

// focusTo moves focus to f. Entering the button bar selects button; leaving
// it clears the selection.
func (a *App) focusTo(f models.Focus, button models.QueryButton) {
	a.focus = f
	if f == models.FocusQueryButtons {
		a.buttons.Selected = button
	} else {
		a.buttons.Selected = models.ButtonNone
	}
	a.syncFocus()
}

func (a *App) syncFocus() {
	a.treeView.Focused = a.focus == models.FocusSidebar
	a.editor.Focused = a.focus == models.FocusQueryEditor
	a.tableView.Focused = a.focus == models.FocusResultGrid
}

// handleConnectionKey handles keys of the connection screen
func (a *App) handleConnectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a, tea.Quit
	}
	if a.busy {
		return a, nil
	}

	dialog := a.connectionDialog
	switch msg.String() {
	case "tab", "shift+tab":
		dialog.ToggleFocus()
		return a, nil

	case "up":
		if dialog.ListFocused {
			dialog.MoveSelection(-1)
		}
		return a, nil

	case "down":
		if dialog.ListFocused {
			dialog.MoveSelection(1)
		}
		return a, nil

	case "enter":
		connStr := dialog.InputValue()
		if dialog.ListFocused {
			entry, ok := dialog.SelectedEntry()
			if !ok || a.recent == nil {
				return a, nil
			}
			connStr = a.recent.ConnectionString(entry)
		}
		if connStr == "" {
			return a, nil
		}
		return a, a.connect(connStr)

	case "ctrl+d":
		if !dialog.ListFocused || a.recent == nil {
			return a, nil
		}
		if entry, ok := dialog.SelectedEntry(); ok {
			if err := a.recent.Delete(entry.ID); err != nil {
				dialog.Error = err.Error()
			}
			a.reloadRecent()
		}
		return a, nil
	}

	return a, dialog.Update(msg)
}

// handleBrowserKey dispatches keys of the browser screen: global keys first,
// then the focused panel.
func (a *App) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}
		return a, tea.Quit
	}
	if a.busy {
		return a, nil
	}

	if a.showHelp {
		if key == "f1" {
			a.showHelp = false
		}
		return a, nil
	}

	switch key {
	case "f1":
		a.showHelp = true
		return a, nil
	case "tab":
		a.focusTo(a.focus.Next(), models.ButtonRun)
		return a, nil
	case "shift+tab":
		a.focusTo(a.focus.Prev(), models.ButtonCopy)
		return a, nil
	case "ctrl+r", "f5":
		return a, a.runQuery(a.editor.GetContent())
	}

	switch a.focus {
	case models.FocusSidebar:
		return a, a.treeView.Update(msg)
	case models.FocusQueryEditor:
		a.editor.HandleKey(msg)
	case models.FocusQueryButtons:
		return a, a.handleButtonKey(key)
	case models.FocusResultGrid:
		a.handleResultKey(key)
	}
	return a, nil
}

func (a *App) handleButtonKey(key string) tea.Cmd {
	switch key {
	case "left", "h":
		a.buttons.Selected = a.buttons.Selected.Prev()
	case "right", "l":
		a.buttons.Selected = a.buttons.Selected.Next()
	case "enter", " ":
		return a.activateButton(a.buttons.Selected)
	}
	return nil
}

func (a *App) handleResultKey(key string) {
	grid := a.tableView.Grid
	rows := len(a.tableView.Result.Rows)

	if a.preview.Visible {
		switch key {
		case "up":
			a.preview.ScrollUp()
			return
		case "down":
			a.preview.ScrollDown()
			return
		}
	}

	switch key {
	case "down", "j":
		grid.SelectNext(rows)
	case "up", "k":
		grid.SelectPrev(rows)
	case "g", "home":
		grid.SelectFirst(rows)
	case "G", "end":
		grid.SelectLast(rows)
	case "left", "h":
		grid.ScrollLeft()
	case "right", "l":
		grid.ScrollRight(a.tableView.MaxHorizontalScroll())
	case "p":
		if !a.tableView.Result.IsEmpty() || a.preview.Visible {
			a.preview.Toggle()
		}
	case "y":
		a.copySelectedRow()
	case "Y":
		a.copyResult()
	}
	a.syncPreview()
}
