package app

import (
	"github.com/rebeliceyang/crux/internal/models"
	"github.com/rebeliceyang/crux/internal/ui/components"
)

const (
	statusBarHeight   = 1
	buttonPanelHeight = 3
	editorPanelHeight = 8
	minPanelWidth     = 20
)

// Layout holds the screen rectangles of the browser screen. Every mouse hit
// test runs against these; nothing is inferred from rendered output.
type Layout struct {
	Width  int
	Height int

	Sidebar     models.Rect
	SidebarRows models.Rect

	ButtonPanel models.Rect
	Buttons     []components.ButtonRect

	Editor     models.Rect
	EditorText models.Rect

	Results models.Rect
	// Grid is the results body below the panel title
	Grid    models.Rect
	VScroll models.Rect
	HScroll models.Rect

	StatusBar models.Rect
}

// computeLayout splits a width x height terminal into the sidebar, the
// button bar, the editor, the results panel and the status bar.
func computeLayout(width, height, sidebarRatio int, bar *components.ButtonBar) Layout {
	l := Layout{Width: width, Height: height}
	if width <= 0 || height <= 0 {
		return l
	}

	contentH := max(height-statusBarHeight, 0)

	sidebarW := max(width*sidebarRatio/100, minPanelWidth)
	if width-sidebarW < minPanelWidth {
		sidebarW = max(width-minPanelWidth, 0)
	}
	rightX := sidebarW
	rightW := width - sidebarW

	// Panels with a title lose the border line and the title line on top
	l.Sidebar = models.Rect{X: 0, Y: 0, Width: sidebarW, Height: contentH}
	l.SidebarRows = models.Rect{X: 1, Y: 2, Width: sidebarW - 2, Height: contentH - 3}

	l.ButtonPanel = models.Rect{X: rightX, Y: 0, Width: rightW, Height: buttonPanelHeight}
	l.Buttons = bar.Rects(rightX+2, 1)

	l.Editor = models.Rect{X: rightX, Y: buttonPanelHeight, Width: rightW, Height: editorPanelHeight}
	l.EditorText = models.Rect{
		X:      rightX + 1,
		Y:      buttonPanelHeight + 2,
		Width:  rightW - 2,
		Height: editorPanelHeight - 3,
	}

	resultsY := buttonPanelHeight + editorPanelHeight
	l.Results = models.Rect{X: rightX, Y: resultsY, Width: rightW, Height: contentH - resultsY}
	l.Grid = models.Rect{
		X:      rightX + 1,
		Y:      resultsY + 2,
		Width:  rightW - 2,
		Height: l.Results.Height - 3,
	}

	// Header and separator come first; the horizontal scrollbar is the last
	// body line and the vertical one is the last column of the data rows.
	dataH := max(l.Grid.Height-3, 1)
	l.VScroll = models.Rect{X: l.Grid.X + l.Grid.Width - 1, Y: l.Grid.Y + 2, Width: 1, Height: dataH}
	l.HScroll = models.Rect{X: l.Grid.X, Y: l.Grid.Y + 2 + dataH, Width: l.Grid.Width - 1, Height: 1}
	if l.Grid.Height < 4 {
		l.VScroll = models.Rect{}
		l.HScroll = models.Rect{}
	}

	l.StatusBar = models.Rect{X: 0, Y: contentH, Width: width, Height: statusBarHeight}
	return l
}

// scrollRatio maps a position along a track to [0,1]
func scrollRatio(pos, trackStart, trackLen int) float64 {
	if trackLen <= 1 {
		return 0
	}
	return float64(pos-trackStart) / float64(trackLen-1)
}
