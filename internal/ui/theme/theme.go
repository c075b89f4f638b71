package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme and styling
type Theme struct {
	Name string

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color
	Metadata      lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Syntax highlighting (SQL)
	Keyword  lipgloss.Color
	String   lipgloss.Color
	Number   lipgloss.Color
	Comment  lipgloss.Color
	Operator lipgloss.Color

	// Table colors
	TableHeader      lipgloss.Color
	TableRowEven     lipgloss.Color
	TableRowOdd      lipgloss.Color
	TableRowSelected lipgloss.Color
	NullValue        lipgloss.Color

	// Navigator colors
	SchemaExpanded  lipgloss.Color
	SchemaCollapsed lipgloss.Color
	TableIcon       lipgloss.Color

	// Button bar
	Button       lipgloss.Color
	ButtonActive lipgloss.Color
	ButtonHover  lipgloss.Color

	// Scrollbars
	ScrollbarTrack lipgloss.Color
	ScrollbarThumb lipgloss.Color
}

// Names lists the selectable themes
var Names = []string{"default", "catppuccin"}

// GetTheme returns a theme by name; unknown names fall back to the default theme
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMochaTheme()
	default:
		return DefaultTheme()
	}
}
