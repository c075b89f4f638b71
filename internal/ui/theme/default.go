package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		// Background colors
		Background: lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),

		// UI elements
		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("62"),
		Selection:     lipgloss.Color("237"),
		Cursor:        lipgloss.Color("248"),
		Metadata:      lipgloss.Color("244"),

		// Status colors
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		// Syntax highlighting
		Keyword:  lipgloss.Color("75"),
		String:   lipgloss.Color("180"),
		Number:   lipgloss.Color("150"),
		Comment:  lipgloss.Color("65"),
		Operator: lipgloss.Color("252"),

		// Table colors
		TableHeader:      lipgloss.Color("62"),
		TableRowEven:     lipgloss.Color("235"),
		TableRowOdd:      lipgloss.Color("236"),
		TableRowSelected: lipgloss.Color("25"),
		NullValue:        lipgloss.Color("244"),

		// Navigator colors
		SchemaExpanded:  lipgloss.Color("75"),
		SchemaCollapsed: lipgloss.Color("244"),
		TableIcon:       lipgloss.Color("141"),

		// Button bar
		Button:       lipgloss.Color("238"),
		ButtonActive: lipgloss.Color("62"),
		ButtonHover:  lipgloss.Color("240"),

		// Scrollbars
		ScrollbarTrack: lipgloss.Color("237"),
		ScrollbarThumb: lipgloss.Color("245"),
	}
}
