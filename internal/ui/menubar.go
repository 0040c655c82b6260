package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/webtop/internal/data/dispatcher"
	"github.com/atomicstack/webtop/internal/desktop"
	"github.com/atomicstack/webtop/internal/logging/events"
	"github.com/atomicstack/webtop/internal/menu"
	"github.com/atomicstack/webtop/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

type rowKind int

const (
	rowAction rowKind = iota
	rowSeparator
	rowCheckbox
	rowRadio
	rowSubmenu
)

// menuRow is one selectable line of an open dropdown. Radio groups expand
// into one row per option.
type menuRow struct {
	kind     rowKind
	label    string
	shortcut string
	disabled bool
	checked  bool
	inset    bool
	action   string
	value    string
	children []menu.Item
}

type dropdown struct {
	label  string
	rows   []menuRow
	cursor int
}

// menuState tracks the open menu and the chain of expanded submenus.
type menuState struct {
	open  bool
	index int
	stack []*dropdown
}

func buildRows(items []menu.Item) []menuRow {
	rows := make([]menuRow, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case menu.ActionItem:
			rows = append(rows, menuRow{kind: rowAction, label: v.Label, shortcut: v.Shortcut, disabled: v.Disabled, inset: v.Inset, action: v.Action, value: v.Value})
		case menu.Separator:
			rows = append(rows, menuRow{kind: rowSeparator})
		case menu.CheckboxItem:
			rows = append(rows, menuRow{kind: rowCheckbox, label: v.Label, disabled: v.Disabled, checked: v.Checked, action: v.Action})
		case menu.RadioGroup:
			for _, opt := range v.Options {
				rows = append(rows, menuRow{kind: rowRadio, label: opt.Label, checked: opt.Value == v.Value, action: v.Action, value: opt.Value})
			}
		case menu.Submenu:
			rows = append(rows, menuRow{kind: rowSubmenu, label: v.Label, children: v.Items, disabled: len(v.Items) == 0})
		}
	}
	return rows
}

func newDropdown(label string, items []menu.Item) *dropdown {
	d := &dropdown{label: label, rows: buildRows(items), cursor: -1}
	d.move(1)
	return d
}

// move steps the cursor over separators, wrapping at both ends.
func (d *dropdown) move(delta int) {
	n := len(d.rows)
	if n == 0 {
		d.cursor = -1
		return
	}
	pos := d.cursor
	for i := 0; i < n; i++ {
		pos = (pos + delta + n) % n
		if d.rows[pos].kind != rowSeparator {
			d.cursor = pos
			return
		}
	}
}

func (d *dropdown) current() (menuRow, bool) {
	if d == nil || d.cursor < 0 || d.cursor >= len(d.rows) {
		return menuRow{}, false
	}
	return d.rows[d.cursor], true
}

// rowText renders the label column of a row without styling.
func (r menuRow) text() string {
	switch r.kind {
	case rowCheckbox:
		if r.checked {
			return "✓ " + r.label
		}
		return "  " + r.label
	case rowRadio:
		if r.checked {
			return "● " + r.label
		}
		return "○ " + r.label
	case rowSubmenu:
		return r.label + " ▸"
	}
	if r.inset {
		return "  " + r.label
	}
	return r.label
}

func (d *dropdown) innerWidth() int {
	width := ansi.StringWidth(d.label)
	for _, r := range d.rows {
		w := ansi.StringWidth(r.text())
		if r.shortcut != "" {
			w += 2 + ansi.StringWidth(r.shortcut)
		}
		width = max(width, w)
	}
	return width + 2
}

func (m *Model) menuBar() []menu.Config {
	return m.desktop.MenuBar()
}

// openMenu shows the dropdown of the idx'th bar entry, wrapping around.
func (m *Model) openMenu(idx int) {
	bar := m.menuBar()
	if len(bar) == 0 {
		m.closeMenu()
		return
	}
	idx = ((idx % len(bar)) + len(bar)) % len(bar)
	cfg := bar[idx]
	m.menus = menuState{open: true, index: idx, stack: []*dropdown{newDropdown(cfg.Label, cfg.Content)}}
	m.setMode(ModeMenu)
	m.errMsg = ""
	events.UI.MenuOpen(cfg.Label, idx)
}

func (m *Model) closeMenu() {
	m.menus = menuState{}
	if m.mode == ModeMenu {
		m.setMode(ModeDesktop)
	}
}

func (m *Model) topDropdown() *dropdown {
	if !m.menus.open || len(m.menus.stack) == 0 {
		return nil
	}
	return m.menus.stack[len(m.menus.stack)-1]
}

// syncMenus rebuilds the open dropdowns from the current bar so toggled
// checkboxes and enabled states show without reopening.
func (m *Model) syncMenus() {
	if !m.menus.open {
		return
	}
	bar := m.menuBar()
	if m.menus.index >= len(bar) {
		m.closeMenu()
		return
	}
	cfg := bar[m.menus.index]
	label, items := cfg.Label, cfg.Content
	for depth, dd := range m.menus.stack {
		if depth > 0 {
			parent := m.menus.stack[depth-1]
			row, ok := parent.current()
			if !ok || row.kind != rowSubmenu {
				m.menus.stack = m.menus.stack[:depth]
				return
			}
			label, items = row.label, row.children
		}
		cursor := dd.cursor
		dd.label = label
		dd.rows = buildRows(items)
		if cursor >= len(dd.rows) || (cursor >= 0 && dd.rows[cursor].kind == rowSeparator) {
			dd.cursor = -1
			dd.move(1)
		}
	}
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	top := m.topDropdown()
	if top == nil {
		m.closeMenu()
		return nil
	}
	switch msg.String() {
	case "esc":
		if len(m.menus.stack) > 1 {
			m.menus.stack = m.menus.stack[:len(m.menus.stack)-1]
			return nil
		}
		m.closeMenu()
	case "f10", "alt+m":
		m.closeMenu()
	case "up", "k", "shift+tab":
		top.move(-1)
	case "down", "j", "tab":
		top.move(1)
	case "left", "h":
		if len(m.menus.stack) > 1 {
			m.menus.stack = m.menus.stack[:len(m.menus.stack)-1]
			return nil
		}
		m.openMenu(m.menus.index - 1)
	case "right", "l":
		if row, ok := top.current(); ok && row.kind == rowSubmenu && !row.disabled {
			m.menus.stack = append(m.menus.stack, newDropdown(row.label, row.children))
			return nil
		}
		m.openMenu(m.menus.index + 1)
	case "enter", " ":
		return m.activateMenuRow()
	case "ctrl+c":
		return tea.Quit
	}
	return nil
}

// activateMenuRow runs the highlighted row. Submenus expand instead.
func (m *Model) activateMenuRow() tea.Cmd {
	top := m.topDropdown()
	row, ok := top.current()
	if !ok {
		return nil
	}
	if row.kind == rowSubmenu {
		if !row.disabled {
			m.menus.stack = append(m.menus.stack, newDropdown(row.label, row.children))
		}
		return nil
	}
	if row.disabled {
		m.setInfo(fmt.Sprintf("%s is unavailable", row.label))
		return nil
	}
	inv := dispatcher.Invocation{
		Action:   row.action,
		WindowID: m.store.ActiveWindowID(),
		Value:    row.value,
	}
	if row.kind == rowCheckbox {
		inv.Checked = !row.checked
	}
	menuLabel := m.menus.stack[0].label
	events.UI.MenuEnter(menuLabel, row.label, row.action)
	m.closeMenu()
	if row.action == "" {
		m.setInfo(row.label)
		return nil
	}
	if strings.HasPrefix(row.action, desktop.PromptPrefix) {
		kind, target := row.action, inv.WindowID
		return func() tea.Msg { return locationPromptMsg{kind: kind, windowID: target} }
	}
	m.pending++
	return m.bus.Execute(m.ctx, command.Request{ID: row.action, Label: row.label, Invocation: inv})
}
