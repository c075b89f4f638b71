package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Panel represents a UI panel.
//
// Width and Height are the outer size including the border. The title, when
// present, takes the first inner line; content lines beyond the inner height
// are dropped.
type Panel struct {
	Title   string
	Content string
	Width   int
	Height  int
	Style   lipgloss.Style
}

// InnerWidth returns the usable width inside the border
func (p *Panel) InnerWidth() int {
	return max(p.Width-2, 0)
}

// ContentHeight returns the lines available below the title
func (p *Panel) ContentHeight() int {
	h := p.Height - 2
	if p.Title != "" {
		h--
	}
	return max(h, 0)
}

// View renders the panel
func (p *Panel) View() string {
	if p.Width <= 2 || p.Height <= 2 {
		return ""
	}
	innerW, innerH := p.Width-2, p.Height-2

	var lines []string
	if p.Title != "" {
		title := runewidth.Truncate(p.Title, max(innerW-2, 0), "…")
		titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		lines = append(lines, titleStyle.Render(title))
	}
	if p.Content != "" {
		lines = append(lines, strings.Split(p.Content, "\n")...)
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	style := p.Style.
		Border(lipgloss.RoundedBorder()).
		Width(innerW).
		Height(innerH).
		MaxHeight(p.Height)

	return style.Render(strings.Join(lines, "\n"))
}
