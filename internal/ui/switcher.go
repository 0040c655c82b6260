package ui

import (
	"fmt"
	"unicode"

	"github.com/atomicstack/webtop/internal/data/dispatcher"
	"github.com/atomicstack/webtop/internal/desktop"
	"github.com/atomicstack/webtop/internal/logging/events"
	"github.com/atomicstack/webtop/internal/state"
	"github.com/atomicstack/webtop/internal/ui/command"
	uistate "github.com/atomicstack/webtop/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const switcherID = "switcher"

// switcherEntries lists every window, topmost first, minimized ones included.
func (m *Model) switcherEntries() []uistate.Entry {
	stack := m.store.StackOrder()
	entries := make([]uistate.Entry, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		win := stack[i]
		if win.State == state.WindowClosed {
			continue
		}
		entries = append(entries, uistate.Entry{
			ID:     win.ID,
			Label:  desktop.Icon(win.Type) + " " + win.Title,
			Detail: fmt.Sprintf("%s %s", win.Type, win.State),
		})
	}
	return entries
}

func (m *Model) openSwitcher() tea.Cmd {
	entries := m.switcherEntries()
	if len(entries) == 0 {
		m.setInfo("no windows")
		return nil
	}
	lvl := uistate.NewLevel(switcherID, "Windows", entries)
	lvl.Markable = true
	lvl.Cursor = 0
	m.switcher = lvl
	m.setMode(ModeSwitcher)
	return nil
}

func (m *Model) closeSwitcher() {
	m.switcher = nil
	if m.mode == ModeSwitcher {
		m.setMode(ModeDesktop)
	}
}

// refreshSwitcher keeps the list in step with the store while it is open.
func (m *Model) refreshSwitcher() {
	if m.switcher == nil {
		return
	}
	m.switcher.UpdateItems(m.switcherEntries())
	m.syncViewport(m.switcher)
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.Reveal(m.maxVisibleItems())
}

func (m *Model) maxVisibleItems() int {
	_, dh := m.desktopSize()
	return max(dh-4, 1)
}

func (m *Model) handleSwitcherKey(msg tea.KeyMsg) tea.Cmd {
	current := m.switcher
	if current == nil {
		m.setMode(ModeDesktop)
		return nil
	}
	if handled, cmd := m.handleTextInput(msg); handled {
		return cmd
	}
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		if current.Filter != "" {
			m.editQuery(func() bool { current.SetFilter("", 0); return true }, func() {
				events.Filter.Cleared(current.ID)
			})
			return nil
		}
		m.closeSwitcher()
	case "enter":
		return m.activateSwitcher()
	case "tab":
		current.ToggleMark()
		current.Step(1, true)
	case "ctrl+x", "delete":
		return m.closeSelectedWindows()
	case "up", "ctrl+p":
		current.Step(-1, true)
	case "down", "ctrl+n":
		current.Step(1, true)
	case "pgup":
		current.Page(-1, m.maxVisibleItems())
	case "pgdown":
		current.Page(1, m.maxVisibleItems())
	case "home":
		current.Home()
	case "end":
		current.End()
	}
	m.syncViewport(current)
	return nil
}

// activateSwitcher focuses the highlighted window, restoring it from the
// dock when minimized.
func (m *Model) activateSwitcher() tea.Cmd {
	current := m.switcher
	entry, ok := current.Current()
	if !ok {
		return nil
	}
	win, ok := m.store.Window(entry.ID)
	m.closeSwitcher()
	if !ok {
		return nil
	}
	events.UI.Switch(current.Filter, win.ID)
	action := "window:front"
	if win.State == state.WindowMinimized {
		action = "dock:restore"
	}
	m.pending++
	return m.bus.Execute(m.ctx, command.Request{
		ID:         action,
		Label:      win.Label(),
		Invocation: dispatcher.Invocation{Action: action, WindowID: win.ID},
	})
}

// closeSelectedWindows closes every marked window, or the highlighted one
// when nothing is marked.
func (m *Model) closeSelectedWindows() tea.Cmd {
	current := m.switcher
	targets := current.MarkedEntries()
	if len(targets) == 0 {
		if entry, ok := current.Current(); ok {
			targets = append(targets, entry)
		}
	}
	if len(targets) == 0 {
		return nil
	}
	reqs := make([]command.Request, 0, len(targets))
	for _, entry := range targets {
		reqs = append(reqs, command.Request{
			ID:         "window:close",
			Label:      entry.Label,
			Invocation: dispatcher.Invocation{Action: "window:close", WindowID: entry.ID},
		})
	}
	current.ClearMarks()
	m.pending++
	return m.bus.ExecuteAll(m.ctx, reqs)
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

var caretKeys = map[string]uistate.Caret{
	"left":   uistate.CaretLeft,
	"right":  uistate.CaretRight,
	"alt+b":  uistate.CaretWordLeft,
	"alt+f":  uistate.CaretWordRight,
	"ctrl+a": uistate.CaretStart,
	"ctrl+e": uistate.CaretEnd,
}

// handleTextInput routes editing keys to the switcher query. It reports
// false for keys the query has no use for so list navigation can see them.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	current := m.switcher
	if current == nil {
		return false, nil
	}
	key := msg.String()
	if motion, ok := caretKeys[key]; ok {
		return m.editQuery(func() bool { return current.MoveCaret(motion) }, func() {
			events.Filter.Cursor(current.ID, current.FilterCursor)
		}), nil
	}
	switch key {
	case "ctrl+u":
		if current.Filter == "" {
			return false, nil
		}
		return m.editQuery(func() bool { current.SetFilter("", 0); return true }, func() {
			events.Filter.Cleared(current.ID)
		}), nil
	case "ctrl+w":
		return m.editQuery(current.EraseWord, func() {
			events.Filter.WordBackspace(current.ID, current.Filter)
		}), nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune(), nil
	case tea.KeySpace:
		return m.appendToFilter(" "), nil
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return m.appendToFilter(string(msg.Runes)), nil
	}
	return false, nil
}

// editQuery runs one edit of the switcher query, then traces it and keeps
// the caret and viewport in step.
func (m *Model) editQuery(edit func() bool, trace func()) bool {
	current := m.switcher
	before := current.FilterCursorPos()
	if !edit() {
		return false
	}
	if before != current.FilterCursorPos() {
		m.filterCursorDirty = true
	}
	trace()
	m.syncViewport(current)
	return true
}

func (m *Model) appendToFilter(text string) bool {
	current := m.switcher
	if text == "" || current == nil {
		return false
	}
	return m.editQuery(func() bool { return current.TypeQuery(text) }, func() {
		events.Filter.Append(current.ID, current.Filter)
	})
}

func (m *Model) removeFilterRune() bool {
	current := m.switcher
	if current == nil {
		return false
	}
	return m.editQuery(current.EraseRune, func() {
		events.Filter.Backspace(current.ID, current.Filter)
	})
}

// filterPrompt renders the switcher query with the blinking cursor.
func (m *Model) filterPrompt() string {
	current := m.switcher
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := render(styles.FilterPrompt, "» ")
	if current == nil || current.Filter == "" {
		placeholder := []rune("(type to search)")
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(placeholder[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	runes := []rune(current.Filter)
	pos := min(max(current.FilterCursorPos(), 0), len(runes))
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
