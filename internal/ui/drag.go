package ui

import (
	"github.com/atomicstack/webtop/internal/logging/events"
	"github.com/atomicstack/webtop/internal/state"
	tea "github.com/charmbracelet/bubbletea"
)

// dragState holds a window position that only the view sees. The store is
// written once when the move is committed.
type dragState struct {
	id     string
	origin state.Position
	pos    state.Position
	grabX  int
	grabY  int
	mouse  bool
}

func (m *Model) beginDrag(win state.Window, grabX, grabY int, mouse bool) bool {
	if win.State != state.WindowOpen {
		return false
	}
	r := m.windowRect(win)
	origin := state.Position{X: r.x, Y: r.y}
	m.drag = &dragState{id: win.ID, origin: origin, pos: origin, grabX: grabX, grabY: grabY, mouse: mouse}
	m.desktop.Focus(win.ID)
	m.setMode(ModeMove)
	events.Drag.Start(win.ID, origin.X, origin.Y)
	return true
}

func (m *Model) startKeyboardMove() {
	win, ok := m.activeWindow()
	if !ok {
		m.setInfo("no active window")
		return
	}
	if !m.beginDrag(win, 0, 0, false) {
		m.setInfo("maximized windows cannot move")
	}
}

// moveDrag repositions the transient frame, keeping the title bar on the
// desktop so the window can always be grabbed again.
func (m *Model) moveDrag(x, y int) {
	if m.drag == nil {
		return
	}
	win, ok := m.store.Window(m.drag.id)
	if !ok {
		m.drag = nil
		m.setMode(ModeDesktop)
		return
	}
	dw, dh := m.desktopSize()
	r := m.windowRect(win)
	x = min(max(x, 1-r.w), dw-1)
	y = min(max(y, 0), max(dh-1, 0))
	m.drag.pos = state.Position{X: x, Y: y}
}

func (m *Model) commitDrag() {
	if m.drag == nil {
		return
	}
	d := m.drag
	m.drag = nil
	m.setMode(ModeDesktop)
	if d.pos == d.origin {
		events.Drag.Cancel(d.id)
		return
	}
	m.store.SetWindowPosition(d.id, d.pos)
	events.Drag.Commit(d.id, d.pos.X, d.pos.Y)
}

func (m *Model) cancelDrag() {
	if m.drag == nil {
		return
	}
	events.Drag.Cancel(m.drag.id)
	m.drag = nil
	m.setMode(ModeDesktop)
}

func (m *Model) handleMoveKey(msg tea.KeyMsg) tea.Cmd {
	if m.drag == nil {
		m.setMode(ModeDesktop)
		return nil
	}
	step := 1
	switch msg.String() {
	case "shift+up", "shift+down", "shift+left", "shift+right", "K", "J", "H", "L":
		step = 4
	}
	pos := m.drag.pos
	switch msg.String() {
	case "up", "k", "shift+up", "K":
		m.moveDrag(pos.X, pos.Y-step)
	case "down", "j", "shift+down", "J":
		m.moveDrag(pos.X, pos.Y+step)
	case "left", "h", "shift+left", "H":
		m.moveDrag(pos.X-step, pos.Y)
	case "right", "l", "shift+right", "L":
		m.moveDrag(pos.X+step, pos.Y)
	case "enter", "d":
		m.commitDrag()
	case "esc":
		m.cancelDrag()
	case "ctrl+c":
		return tea.Quit
	}
	return nil
}

// handleMouseMsg routes clicks to the menu bar, window chrome and the dock,
// and drives title-bar drags.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if m.drag != nil && m.drag.mouse {
		switch ev.Action {
		case tea.MouseActionMotion:
			m.moveDrag(ev.X-m.drag.grabX, ev.Y-menuBarRows-m.drag.grabY)
		case tea.MouseActionRelease:
			m.moveDrag(ev.X-m.drag.grabX, ev.Y-menuBarRows-m.drag.grabY)
			m.commitDrag()
		}
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	switch m.mode {
	case ModeDesktop, ModeMenu, ModeInput:
	default:
		return nil
	}
	if ev.Y < menuBarRows {
		return m.clickMenuBar(ev.X)
	}
	if m.menus.open {
		if cmd, hit := m.clickDropdown(ev.X, ev.Y-menuBarRows); hit {
			return cmd
		}
		m.closeMenu()
	}
	_, dh := m.desktopSize()
	y := ev.Y - menuBarRows
	if y >= dh {
		if y == dh {
			return m.clickDock(ev.X)
		}
		return nil
	}
	win, r, ok := m.windowAt(ev.X, y)
	if !ok {
		return nil
	}
	m.desktop.Focus(win.ID)
	if y != r.y {
		return nil
	}
	if action := controlAt(r, ev.X); action != "" {
		return m.runOnActive(action, action)
	}
	m.beginDrag(win, ev.X-r.x, 0, true)
	return nil
}

// controlAt maps a title-bar column onto the minimize, maximize and close
// buttons drawn at the right of the frame.
func controlAt(r rect, x int) string {
	start := r.x + r.w - 1 - len([]rune(titleControls))
	switch x - start {
	case 1:
		return "window:minimize"
	case 3:
		return "window:maximize"
	case 5:
		return "window:close"
	}
	return ""
}

func (m *Model) clickMenuBar(x int) tea.Cmd {
	for i, span := range m.menuBarSpans() {
		if x >= span.x && x < span.x+span.w {
			if m.menus.open && m.menus.index == i {
				m.closeMenu()
				return nil
			}
			m.openMenu(i)
			return nil
		}
	}
	m.closeMenu()
	return nil
}

func (m *Model) clickDropdown(x, y int) (tea.Cmd, bool) {
	boxes := m.dropdownRects()
	for depth := len(boxes) - 1; depth >= 0; depth-- {
		r := boxes[depth]
		if !r.contains(x, y) {
			continue
		}
		idx := y - r.y - 1
		dd := m.menus.stack[depth]
		if idx < 0 || idx >= len(dd.rows) || dd.rows[idx].kind == rowSeparator {
			return nil, true
		}
		m.menus.stack = m.menus.stack[:depth+1]
		dd.cursor = idx
		return m.activateMenuRow(), true
	}
	return nil, false
}

func (m *Model) clickDock(x int) tea.Cmd {
	items := m.dockItems()
	for i, span := range m.dockSpans(items) {
		if x >= span.x && x < span.x+span.w {
			return m.dockAction("dock:restore", items[i], false)
		}
	}
	return nil
}
