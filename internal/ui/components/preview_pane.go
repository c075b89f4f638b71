package components

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/crux/internal/jsonb"
	"github.com/rebeliceyang/crux/internal/ui/theme"
)

// PreviewPane displays the full, untruncated values of one result row
type PreviewPane struct {
	Width  int
	Height int
	Theme  theme.Theme

	Visible bool

	columns  []string
	row      []string
	rowIndex int

	scrollY      int
	contentLines []string // Formatted content, cached per width
	formatWidth  int
}

// NewPreviewPane creates a new, hidden preview pane
func NewPreviewPane(th theme.Theme) *PreviewPane {
	return &PreviewPane{Theme: th}
}

// SetRow sets the row to display. Scrolling resets when the row changes.
func (p *PreviewPane) SetRow(columns, row []string, index int) {
	if index == p.rowIndex && slices.Equal(columns, p.columns) && slices.Equal(row, p.row) {
		return
	}
	p.columns = columns
	p.row = row
	p.rowIndex = index
	p.scrollY = 0
	p.contentLines = nil
}

// Toggle shows or hides the pane
func (p *PreviewPane) Toggle() {
	p.Visible = !p.Visible
}

// ScrollUp scrolls content up
func (p *PreviewPane) ScrollUp() {
	if p.scrollY > 0 {
		p.scrollY--
	}
}

// ScrollDown scrolls content down
func (p *PreviewPane) ScrollDown() {
	p.format()
	maxScroll := max(len(p.contentLines)-p.bodyHeight(), 0)
	if p.scrollY < maxScroll {
		p.scrollY++
	}
}

func (p *PreviewPane) bodyHeight() int {
	return max(p.Height-1, 1)
}

// format lays out "column" headings followed by their wrapped values; JSON
// objects and arrays are pretty-printed.
func (p *PreviewPane) format() {
	width := max(p.Width-2, 10)
	if p.contentLines != nil && p.formatWidth == width {
		return
	}

	headStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Theme.TableHeader)
	lines := []string{}
	for i, col := range p.columns {
		value := ""
		if i < len(p.row) {
			value = p.row[i]
		}
		if pretty, ok := jsonb.Indent(value); ok {
			value = pretty
		}

		lines = append(lines, headStyle.Render(runewidth.Truncate(col, width, "…")))
		for _, line := range wrapText(value, width) {
			lines = append(lines, "  "+line)
		}
	}

	p.contentLines = lines
	p.formatWidth = width
}

// wrapText wraps text to fit within maxWidth
func wrapText(text string, maxWidth int) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		if runewidth.StringWidth(line) <= maxWidth {
			result = append(result, line)
			continue
		}

		var current strings.Builder
		currentWidth := 0
		for _, r := range line {
			rWidth := runewidth.RuneWidth(r)
			if currentWidth+rWidth > maxWidth {
				result = append(result, current.String())
				current.Reset()
				currentWidth = 0
			}
			current.WriteRune(r)
			currentWidth += rWidth
		}
		if current.Len() > 0 {
			result = append(result, current.String())
		}
	}
	return result
}

// View renders Height lines: a header and the scrolled content
func (p *PreviewPane) View() string {
	if !p.Visible {
		return ""
	}
	p.format()

	titleStyle := lipgloss.NewStyle().Foreground(p.Theme.Info).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(p.Theme.Metadata).Italic(true)
	header := titleStyle.Render(fmt.Sprintf("Row %d", p.rowIndex+1)) +
		helpStyle.Render("  ↑↓ scroll • p close")

	lines := []string{header}
	end := min(p.scrollY+p.bodyHeight(), len(p.contentLines))
	for _, line := range p.contentLines[p.scrollY:end] {
		lines = append(lines, lipgloss.NewStyle().Foreground(p.Theme.Foreground).Render(line))
	}
	return strings.Join(lines, "\n")
}
