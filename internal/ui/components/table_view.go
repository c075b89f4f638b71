package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/crux/internal/models"
	"github.com/rebeliceyang/crux/internal/ui/theme"
)

// DefaultMaxCellDisplayLength is the number of characters shown before a cell
// is cut and suffixed with "..."
const DefaultMaxCellDisplayLength = 47

// Lines of the grid body that are not data rows: header, separator and the
// horizontal scrollbar.
const tableChromeLines = 3

// TableView renders a QueryResult through a GridState.
//
// The body is Width x Height cells: a header, a separator, the data rows and
// a horizontal scrollbar on the last line. The rightmost column of the data
// rows is the vertical scrollbar.
type TableView struct {
	Result  models.QueryResult
	Grid    *models.GridState
	Width   int
	Height  int
	Theme   theme.Theme
	Focused bool

	MaxCellDisplayLength int
}

// NewTableView creates a new table view
func NewTableView(th theme.Theme) *TableView {
	return &TableView{
		Grid:                 models.NewGridState(),
		Theme:                th,
		MaxCellDisplayLength: DefaultMaxCellDisplayLength,
	}
}

// SetResult replaces the displayed result and resets the grid
func (tv *TableView) SetResult(result models.QueryResult) {
	tv.Result = result
	tv.Grid.Reset()
	tv.Grid.EnsureColumnWidths(result)
}

// DataHeight returns the number of data rows that fit
func (tv *TableView) DataHeight() int {
	return max(tv.Height-tableChromeLines, 1)
}

// ContentWidth returns the width available to columns
func (tv *TableView) ContentWidth() int {
	return max(tv.Width-1, 1)
}

// MaxHorizontalScroll returns the horizontal scroll limit for the current size
func (tv *TableView) MaxHorizontalScroll() int {
	tv.Grid.EnsureColumnWidths(tv.Result)
	return tv.Grid.MaxHorizontalScroll(tv.ContentWidth())
}

// Resize updates the body size and keeps the selection inside the viewport
func (tv *TableView) Resize(width, height int) {
	tv.Width = width
	tv.Height = height
	tv.Grid.SetVisibleHeight(tv.DataHeight())
	if maxScroll := tv.MaxHorizontalScroll(); tv.Grid.HorizontalScroll > maxScroll {
		tv.Grid.HorizontalScroll = maxScroll
	}
}

// Summary describes the result for panel titles and the status bar
func (tv *TableView) Summary() string {
	switch {
	case tv.Result.IsError():
		return "Error"
	case tv.Result.IsEmpty():
		return "No rows"
	case len(tv.Result.Rows) == 1:
		return "1 row"
	default:
		return fmt.Sprintf("%d rows", len(tv.Result.Rows))
	}
}

// View renders the grid body
func (tv *TableView) View() string {
	if tv.Width <= 1 || tv.Height <= 0 {
		return ""
	}
	if tv.Result.IsEmpty() {
		return tv.emptyState()
	}

	tv.Grid.EnsureColumnWidths(tv.Result)
	tv.Grid.SetVisibleHeight(tv.DataHeight())

	contentW := tv.ContentWidth()
	dataH := tv.DataHeight()
	rows := tv.Result.Rows

	lines := make([]string, 0, tv.Height)
	lines = append(lines, tv.renderHeader(contentW)+" ")
	lines = append(lines, tv.renderSeparator(contentW)+" ")

	thumbStart, thumbSize := ScrollThumb(dataH, len(rows), dataH, tv.Grid.ScrollOffset)
	for i := 0; i < dataH; i++ {
		var line string
		if r := tv.Grid.ScrollOffset + i; r < len(rows) {
			line = tv.renderRow(rows[r], r, contentW)
		} else {
			line = strings.Repeat(" ", contentW)
		}
		lines = append(lines, line+tv.scrollbarCell(i, thumbStart, thumbSize, "│", "┃"))
	}

	lines = append(lines, tv.renderHorizontalScrollbar(contentW)+" ")
	return strings.Join(lines, "\n")
}

// visibleColumns returns the columns from the horizontal offset onwards
func (tv *TableView) visibleColumns() []int {
	var cols []int
	for i := tv.Grid.HorizontalScroll; i < len(tv.Result.Columns) && i < len(tv.Grid.ColumnWidths); i++ {
		cols = append(cols, i)
	}
	return cols
}

// layoutCells lays out cells left to right, clipping the last one to fit
func (tv *TableView) layoutCells(contentW int, cell func(col int) string, render func(col int, text string) string) string {
	var b strings.Builder
	remaining := contentW
	for _, col := range tv.visibleColumns() {
		if remaining <= 0 {
			break
		}
		w := tv.Grid.ColumnWidths[col]
		text := " " + runewidth.FillRight(runewidth.Truncate(cell(col), max(w-2, 0), "…"), max(w-1, 0)) + "│"
		if runewidth.StringWidth(text) > remaining {
			text = runewidth.Truncate(text, remaining, "")
		}
		remaining -= runewidth.StringWidth(text)
		b.WriteString(render(col, text))
	}
	if remaining > 0 {
		b.WriteString(render(-1, strings.Repeat(" ", remaining)))
	}
	return b.String()
}

func (tv *TableView) renderHeader(contentW int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(tv.Theme.TableHeader)
	return tv.layoutCells(contentW,
		func(col int) string { return tv.Result.Columns[col] },
		func(_ int, text string) string { return style.Render(text) },
	)
}

func (tv *TableView) renderSeparator(contentW int) string {
	var b strings.Builder
	for _, col := range tv.visibleColumns() {
		b.WriteString(strings.Repeat("─", tv.Grid.ColumnWidths[col]))
		b.WriteString("┼")
	}
	line := runewidth.FillRight(runewidth.Truncate(b.String(), contentW, ""), contentW)
	return lipgloss.NewStyle().Foreground(tv.Theme.Border).Render(line)
}

func (tv *TableView) renderRow(row []string, index, contentW int) string {
	selected := index == tv.Grid.SelectedRow

	base := lipgloss.NewStyle().Foreground(tv.Theme.Foreground)
	if index%2 == 1 {
		base = base.Background(tv.Theme.TableRowOdd)
	} else {
		base = base.Background(tv.Theme.TableRowEven)
	}
	if selected {
		bg := tv.Theme.Selection
		if tv.Focused {
			bg = tv.Theme.TableRowSelected
		}
		base = base.Background(bg).Bold(true)
	}
	null := base.Foreground(tv.Theme.NullValue).Italic(true)

	return tv.layoutCells(contentW,
		func(col int) string {
			if col < len(row) {
				return tv.DisplayCell(row[col])
			}
			return ""
		},
		func(col int, text string) string {
			if col >= 0 && col < len(row) && row[col] == "NULL" && !selected {
				return null.Render(text)
			}
			return base.Render(text)
		},
	)
}

// DisplayCell flattens control whitespace and cuts values longer than
// MaxCellDisplayLength, appending "...". The underlying value is untouched.
func (tv *TableView) DisplayCell(value string) string {
	limit := tv.MaxCellDisplayLength
	if limit <= 0 {
		limit = DefaultMaxCellDisplayLength
	}
	value = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	return runewidth.Truncate(value, limit, "") + "..."
}

func (tv *TableView) renderHorizontalScrollbar(contentW int) string {
	maxScroll := tv.Grid.MaxHorizontalScroll(contentW)
	if maxScroll == 0 {
		return strings.Repeat(" ", contentW)
	}
	cols := len(tv.Grid.ColumnWidths)
	start, size := ScrollThumb(contentW, cols, cols-maxScroll, tv.Grid.HorizontalScroll)

	var b strings.Builder
	for i := 0; i < contentW; i++ {
		b.WriteString(tv.scrollbarCell(i, start, size, "─", "━"))
	}
	return b.String()
}

func (tv *TableView) scrollbarCell(i, thumbStart, thumbSize int, track, thumb string) string {
	if i >= thumbStart && i < thumbStart+thumbSize {
		return lipgloss.NewStyle().Foreground(tv.Theme.ScrollbarThumb).Render(thumb)
	}
	return lipgloss.NewStyle().Foreground(tv.Theme.ScrollbarTrack).Render(track)
}

func (tv *TableView) emptyState() string {
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Comment).
		Italic(true).
		Render(runewidth.Truncate("No results", tv.Width, ""))
}

// ScrollThumb returns the start and size of a scrollbar thumb on a track of
// trackLen cells, for total items of which visible are shown from offset.
func ScrollThumb(trackLen, total, visible, offset int) (start, size int) {
	if trackLen <= 0 {
		return 0, 0
	}
	if total <= visible || total <= 0 {
		return 0, trackLen
	}

	size = max(trackLen*visible/total, 1)
	maxOffset := total - visible
	offset = min(max(offset, 0), maxOffset)
	start = (trackLen - size) * offset / maxOffset
	return start, size
}
