package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap collects the desktop bindings so the footer help and the handlers
// read from one table.
type keyMap struct {
	Quit        key.Binding
	MenuBar     key.Binding
	Cycle       key.Binding
	CycleBack   key.Binding
	NewWindow   key.Binding
	LaunchApp   key.Binding
	Minimize    key.Binding
	Maximize    key.Binding
	Close       key.Binding
	Dock        key.Binding
	Switcher    key.Binding
	Move        key.Binding
	Type        key.Binding
	Location    key.Binding
	Rename      key.Binding
	Diagnostics key.Binding
	Back        key.Binding
}

var keys = keyMap{
	Quit:        key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	MenuBar:     key.NewBinding(key.WithKeys("f10", "alt+m"), key.WithHelp("f10", "menu")),
	Cycle:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next window")),
	CycleBack:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous window")),
	NewWindow:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new window")),
	LaunchApp:   key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "launch app")),
	Minimize:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "minimize")),
	Maximize:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "maximize")),
	Close:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "close")),
	Dock:        key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "dock")),
	Switcher:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "switch")),
	Move:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "move")),
	Type:        key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "type")),
	Location:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open location")),
	Rename:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "rename")),
	Diagnostics: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "menus")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
}

// launchOrder maps the digit keys onto bundled application types.
var launchOrder = []string{"calculator", "editor", "note", "browser"}

func (k keyMap) footer() []key.Binding {
	return []key.Binding{k.MenuBar, k.Cycle, k.NewWindow, k.LaunchApp, k.Move, k.Type, k.Switcher, k.Dock, k.Diagnostics, k.Quit}
}
