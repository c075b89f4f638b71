package theme

import "github.com/charmbracelet/lipgloss"

// CatppuccinMochaTheme returns the Catppuccin Mocha theme
// A soothing pastel theme for cozy TUIs
// Based on: https://github.com/catppuccin/catppuccin
func CatppuccinMochaTheme() Theme {
	return Theme{
		Name: "catppuccin-mocha",

		// Background colors
		Background: lipgloss.Color("#1e1e2e"), // Base
		Foreground: lipgloss.Color("#cdd6f4"), // Text

		// UI elements
		Border:        lipgloss.Color("#45475a"), // Surface1
		BorderFocused: lipgloss.Color("#89b4fa"), // Blue
		Selection:     lipgloss.Color("#313244"), // Surface0
		Cursor:        lipgloss.Color("#f5e0dc"), // Rosewater

		// Status colors
		Success: lipgloss.Color("#a6e3a1"), // Green
		Warning: lipgloss.Color("#f9e2af"), // Yellow
		Error:   lipgloss.Color("#f38ba8"), // Red
		Info:    lipgloss.Color("#89dceb"), // Sky

		// Syntax highlighting
		Keyword:  lipgloss.Color("#cba6f7"), // Mauve
		String:   lipgloss.Color("#a6e3a1"), // Green
		Number:   lipgloss.Color("#fab387"), // Peach
		Comment:  lipgloss.Color("#6c7086"), // Overlay0
		Operator: lipgloss.Color("#94e2d5"), // Teal

		// Table colors
		TableHeader:      lipgloss.Color("#89b4fa"), // Blue
		TableRowEven:     lipgloss.Color("#1e1e2e"), // Base
		TableRowOdd:      lipgloss.Color("#181825"), // Mantle
		TableRowSelected: lipgloss.Color("#313244"), // Surface0
		NullValue:        lipgloss.Color("#6c7086"), // Overlay0

		// Navigator colors
		SchemaExpanded:  lipgloss.Color("#89b4fa"), // Blue - expanded schema
		SchemaCollapsed: lipgloss.Color("#6c7086"), // Overlay0 - collapsed schema
		TableIcon:       lipgloss.Color("#cba6f7"), // Mauve - table icon
		Metadata:        lipgloss.Color("#6c7086"), // Overlay0 - metadata text

		// Button bar
		Button:       lipgloss.Color("#313244"), // Surface0
		ButtonActive: lipgloss.Color("#89b4fa"), // Blue
		ButtonHover:  lipgloss.Color("#45475a"), // Surface1

		// Scrollbars
		ScrollbarTrack: lipgloss.Color("#313244"), // Surface0
		ScrollbarThumb: lipgloss.Color("#9399b2"), // Overlay2
	}
}
