package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI. Styles
// painted onto the desktop canvas (windows and dropdowns) carry colour only;
// the canvas draws its own frames.
type Styles struct {
	Desktop *lipgloss.Style
	Loading *lipgloss.Style

	MenuBar          *lipgloss.Style
	MenuBarItem      *lipgloss.Style
	MenuBarActive    *lipgloss.Style
	Dropdown         *lipgloss.Style
	DropdownItem     *lipgloss.Style
	DropdownSelected *lipgloss.Style
	DropdownDisabled *lipgloss.Style
	Shortcut         *lipgloss.Style
	Separator        *lipgloss.Style

	Window            *lipgloss.Style
	WindowActive      *lipgloss.Style
	WindowMoving      *lipgloss.Style
	WindowTitle       *lipgloss.Style
	WindowTitleActive *lipgloss.Style
	WindowBody        *lipgloss.Style
	WindowDark        *lipgloss.Style

	Dock         *lipgloss.Style
	DockItem     *lipgloss.Style
	DockSelected *lipgloss.Style

	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style

	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Header            *lipgloss.Style
	Footer            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
}

var defaultStyles = Styles{
	Desktop: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	MenuBar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
	),
	MenuBarItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1),
	),
	MenuBarActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true).Padding(0, 1),
	),
	Dropdown: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("235")),
	),
	DropdownItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("235")),
	),
	DropdownSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	DropdownDisabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Background(lipgloss.Color("235")),
	),
	Shortcut: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	),
	Separator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("239")),
	),
	Window: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	WindowActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	WindowMoving: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	WindowTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	WindowTitleActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	WindowBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	WindowDark: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("234")),
	),
	Dock: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
	),
	DockItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")).Padding(0, 1),
	),
	DockSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Padding(0, 1),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
