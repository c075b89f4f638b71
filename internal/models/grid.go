package models

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// Column width bounds used when no configuration overrides them
const (
	DefaultMinColumnWidth = 12
	DefaultMaxColumnWidth = 50
	DefaultColumnPadding  = 2
)

// GridState tracks selection and scrolling over a QueryResult.
//
// HorizontalScroll counts leading columns scrolled out of view.
// ColumnWidths caches display widths per column and is only recomputed when
// the column count of the result differs from the cache.
type GridState struct {
	SelectedRow      int
	ScrollOffset     int
	HorizontalScroll int
	ColumnWidths     []int

	// VisibleHeight is the number of data rows the viewport shows; set by
	// the layout whenever the window size changes.
	VisibleHeight int

	MinColumnWidth int
	MaxColumnWidth int
	ColumnPadding  int
}

// NewGridState creates a grid state with default width bounds
func NewGridState() *GridState {
	return &GridState{
		VisibleHeight:  1,
		MinColumnWidth: DefaultMinColumnWidth,
		MaxColumnWidth: DefaultMaxColumnWidth,
		ColumnPadding:  DefaultColumnPadding,
	}
}

// Reset clears selection, scroll offsets and cached widths
func (g *GridState) Reset() {
	g.SelectedRow = 0
	g.ScrollOffset = 0
	g.HorizontalScroll = 0
	g.ColumnWidths = nil
}

// SelectNext moves the selection down, wrapping to the first row
func (g *GridState) SelectNext(rowCount int) {
	if rowCount <= 0 {
		return
	}
	g.SelectedRow = (g.SelectedRow + 1) % rowCount
	g.clampViewport()
}

// SelectPrev moves the selection up, wrapping to the last row
func (g *GridState) SelectPrev(rowCount int) {
	if rowCount <= 0 {
		return
	}
	if g.SelectedRow <= 0 {
		g.SelectedRow = rowCount - 1
	} else {
		g.SelectedRow--
	}
	g.clampViewport()
}

// SelectFirst jumps to the first row
func (g *GridState) SelectFirst(rowCount int) {
	if rowCount <= 0 {
		return
	}
	g.SelectedRow = 0
	g.clampViewport()
}

// SelectLast jumps to the last row
func (g *GridState) SelectLast(rowCount int) {
	if rowCount <= 0 {
		return
	}
	g.SelectedRow = rowCount - 1
	g.clampViewport()
}

// ScrollLeft moves the horizontal offset one column left
func (g *GridState) ScrollLeft() {
	if g.HorizontalScroll > 0 {
		g.HorizontalScroll--
	}
}

// ScrollRight moves the horizontal offset one column right, up to maxScroll
func (g *GridState) ScrollRight(maxScroll int) {
	if g.HorizontalScroll < maxScroll {
		g.HorizontalScroll++
	}
	if g.HorizontalScroll > maxScroll && maxScroll >= 0 {
		g.HorizontalScroll = maxScroll
	}
}

// ScrollToVerticalRatio selects the row at ratio ∈ [0,1] of the result
func (g *GridState) ScrollToVerticalRatio(ratio float64, rowCount int) {
	if rowCount <= 0 {
		return
	}
	g.SelectedRow = int(math.Round(clampRatio(ratio) * float64(rowCount-1)))
	g.clampViewport()
}

// ScrollToHorizontalRatio sets the horizontal offset to ratio ∈ [0,1] of maxScroll
func (g *GridState) ScrollToHorizontalRatio(ratio float64, maxScroll int) {
	if maxScroll <= 0 {
		g.HorizontalScroll = 0
		return
	}
	g.HorizontalScroll = int(math.Round(clampRatio(ratio) * float64(maxScroll)))
}

// SetVisibleHeight updates the viewport height and re-clamps the window
func (g *GridState) SetVisibleHeight(height int) {
	if height < 1 {
		height = 1
	}
	g.VisibleHeight = height
	g.clampViewport()
}

func (g *GridState) clampViewport() {
	g.ScrollOffset = ClampScroll(g.ScrollOffset, g.SelectedRow, g.VisibleHeight)
}

// EnsureColumnWidths recomputes widths only when the result shape changed
func (g *GridState) EnsureColumnWidths(result QueryResult) {
	if len(g.ColumnWidths) == len(result.Columns) && len(g.ColumnWidths) > 0 {
		return
	}
	g.CalculateColumnWidths(result)
}

// CalculateColumnWidths sets each column width to the widest of its header and
// cells plus padding, clamped to [MinColumnWidth, MaxColumnWidth].
func (g *GridState) CalculateColumnWidths(result QueryResult) {
	if len(result.Columns) == 0 {
		g.ColumnWidths = nil
		return
	}

	widths := make([]int, len(result.Columns))
	for i, col := range result.Columns {
		widths[i] = runewidth.StringWidth(col)
	}
	for _, row := range result.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	minWidth, maxWidth := g.MinColumnWidth, g.MaxColumnWidth
	if minWidth <= 0 {
		minWidth = DefaultMinColumnWidth
	}
	if maxWidth < minWidth {
		maxWidth = minWidth
	}
	for i := range widths {
		w := widths[i] + g.ColumnPadding
		if w < minWidth {
			w = minWidth
		}
		if w > maxWidth {
			w = maxWidth
		}
		widths[i] = w
	}

	g.ColumnWidths = widths
}

// TotalWidth returns the rendered width of all columns including separators
func (g *GridState) TotalWidth() int {
	total := 0
	for _, w := range g.ColumnWidths {
		total += w + 1
	}
	return total
}

// MaxHorizontalScroll returns how many leading columns may be scrolled away
// while the grid is wider than contentWidth.
func (g *GridState) MaxHorizontalScroll(contentWidth int) int {
	if g.TotalWidth() <= contentWidth || len(g.ColumnWidths) == 0 {
		return 0
	}
	// Stop once the remaining columns fit.
	remaining := g.TotalWidth()
	for i, w := range g.ColumnWidths {
		if remaining <= contentWidth {
			return i
		}
		remaining -= w + 1
	}
	return len(g.ColumnWidths) - 1
}

func clampRatio(ratio float64) float64 {
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
