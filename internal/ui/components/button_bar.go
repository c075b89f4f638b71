package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/crux/internal/models"
	"github.com/rebeliceyang/crux/internal/ui/theme"
)

// QueryButtons lists the buttons of the bar in display order
var QueryButtons = []models.QueryButton{models.ButtonRun, models.ButtonClear, models.ButtonCopy}

var buttonLabels = map[models.QueryButton]string{
	models.ButtonRun:   "Run",
	models.ButtonClear: "Clear",
	models.ButtonCopy:  "Copy",
}

const (
	buttonPadding = 2
	buttonSpacing = 2
)

// ButtonRect places a button on screen
type ButtonRect struct {
	Button models.QueryButton
	Rect   models.Rect
}

// ButtonBar renders the Run / Clear / Copy buttons on a single line
type ButtonBar struct {
	Selected models.QueryButton
	Hovered  models.QueryButton
	// Running disables Run while a query is outstanding
	Running bool
	Theme   theme.Theme
}

// NewButtonBar creates a button bar with nothing selected
func NewButtonBar(th theme.Theme) *ButtonBar {
	return &ButtonBar{Theme: th}
}

func buttonWidth(b models.QueryButton) int {
	return runewidth.StringWidth(buttonLabels[b]) + 2*buttonPadding
}

// Rects returns the screen rectangle of each button when the bar line starts
// at (x, y).
func (bb *ButtonBar) Rects(x, y int) []ButtonRect {
	rects := make([]ButtonRect, 0, len(QueryButtons))
	for _, b := range QueryButtons {
		w := buttonWidth(b)
		rects = append(rects, ButtonRect{Button: b, Rect: models.Rect{X: x, Y: y, Width: w, Height: 1}})
		x += w + buttonSpacing
	}
	return rects
}

// HitTest returns the button at (x, y), or ButtonNone
func HitTest(rects []ButtonRect, x, y int) models.QueryButton {
	for _, r := range rects {
		if r.Rect.Contains(x, y) {
			return r.Button
		}
	}
	return models.ButtonNone
}

// View renders the buttons, clipped to width
func (bb *ButtonBar) View(width int) string {
	parts := make([]string, 0, len(QueryButtons))
	for _, b := range QueryButtons {
		parts = append(parts, bb.buttonStyle(b).Render(buttonLabels[b]))
	}
	line := strings.Join(parts, strings.Repeat(" ", buttonSpacing))

	if bb.Running {
		line += lipgloss.NewStyle().Foreground(bb.Theme.Metadata).Italic(true).Render("  running…")
	}
	return lipgloss.NewStyle().MaxWidth(max(width, 0)).Render(line)
}

func (bb *ButtonBar) buttonStyle(b models.QueryButton) lipgloss.Style {
	style := lipgloss.NewStyle().
		Padding(0, buttonPadding).
		Foreground(bb.Theme.Foreground).
		Background(bb.Theme.Button)

	switch {
	case b == models.ButtonRun && bb.Running:
		return style.Foreground(bb.Theme.Metadata).Faint(true)
	case b == bb.Selected:
		return style.Background(bb.Theme.ButtonActive).Bold(true)
	case b == bb.Hovered:
		return style.Background(bb.Theme.ButtonHover)
	}
	return style
}
