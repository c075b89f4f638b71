package models

import "strings"

// AppState identifies which top-level screen is shown
type AppState int

const (
	ConnectionScreen AppState = iota
	BrowserScreen
)

// Focus identifies the active panel of the browser screen.
// The forward cycle is Sidebar → QueryEditor → QueryButtons → ResultGrid → Sidebar.
type Focus int

const (
	FocusSidebar Focus = iota
	FocusQueryEditor
	FocusQueryButtons
	FocusResultGrid
)

var focusNames = [...]string{"sidebar", "editor", "buttons", "results"}

func (f Focus) String() string {
	if int(f) < len(focusNames) {
		return focusNames[f]
	}
	return "unknown"
}

// Next returns the following panel in the focus ring
func (f Focus) Next() Focus {
	return (f + 1) % 4
}

// Prev returns the preceding panel in the focus ring
func (f Focus) Prev() Focus {
	return (f + 3) % 4
}

// QueryButton identifies a button of the query button bar
type QueryButton int

const (
	ButtonNone QueryButton = iota
	ButtonRun
	ButtonClear
	ButtonCopy
)

func (b QueryButton) String() string {
	switch b {
	case ButtonRun:
		return "Run"
	case ButtonClear:
		return "Clear"
	case ButtonCopy:
		return "Copy"
	default:
		return "None"
	}
}

// Next cycles Run → Clear → Copy → Run. None moves to Run.
func (b QueryButton) Next() QueryButton {
	switch b {
	case ButtonRun:
		return ButtonClear
	case ButtonClear:
		return ButtonCopy
	default:
		return ButtonRun
	}
}

// Prev cycles Run → Copy → Clear → Run. None moves to Copy.
func (b QueryButton) Prev() QueryButton {
	switch b {
	case ButtonRun, ButtonNone:
		return ButtonCopy
	case ButtonCopy:
		return ButtonClear
	default:
		return ButtonRun
	}
}

// Rect is a screen rectangle in terminal cells
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// TableRef names a table inside a schema
type TableRef struct {
	Schema string
	Name   string
}

// IsBlank reports whether a query consists only of whitespace
func IsBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}
