package ui

import (
	"fmt"

	"github.com/atomicstack/webtop/internal/data/dispatcher"
	"github.com/atomicstack/webtop/internal/desktop"
	"github.com/atomicstack/webtop/internal/logging"
	"github.com/atomicstack/webtop/internal/state"
	"github.com/atomicstack/webtop/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	menuBarRows   = 1
	minWindowW    = 12
	minWindowH    = 4
	titleControls = " _ □ × "
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// bottomRows counts the rows below the desktop area: dock, status line and
// the optional key help.
func (m *Model) bottomRows() int {
	rows := 2
	if m.showFooter {
		rows++
	}
	return rows
}

// desktopSize is the area windows live in, between the menu bar and the dock.
func (m *Model) desktopSize() (int, int) {
	return max(m.width, 0), max(m.height-menuBarRows-m.bottomRows(), 0)
}

// windowRect places a window on the desktop area. Maximized windows cover it
// and a window being dragged reports its transient position.
func (m *Model) windowRect(win state.Window) rect {
	dw, dh := m.desktopSize()
	if win.State == state.WindowMaximized {
		return rect{0, 0, dw, dh}
	}
	r := rect{w: 36, h: 10}
	if win.Position != nil {
		r.x, r.y = win.Position.X, win.Position.Y
	}
	if win.Size != nil {
		r.w, r.h = win.Size.Width, win.Size.Height
	}
	if m.drag != nil && m.drag.id == win.ID {
		r.x, r.y = m.drag.pos.X, m.drag.pos.Y
	}
	r.w = max(r.w, minWindowW)
	r.h = max(r.h, minWindowH)
	return r
}

// visibleWindows lists the windows drawn on the desktop, bottom first.
func (m *Model) visibleWindows() []state.Window {
	stack := m.store.StackOrder()
	out := stack[:0]
	for _, win := range stack {
		if win.State == state.WindowMinimized || win.State == state.WindowClosed {
			continue
		}
		out = append(out, win)
	}
	return out
}

// windowAt returns the topmost visible window under a desktop-area cell.
func (m *Model) windowAt(x, y int) (state.Window, rect, bool) {
	wins := m.visibleWindows()
	for i := len(wins) - 1; i >= 0; i-- {
		r := m.windowRect(wins[i])
		if r.contains(x, y) {
			return wins[i], r, true
		}
	}
	return state.Window{}, rect{}, false
}

func (m *Model) handleDesktopKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.MenuBar):
		m.openMenu(0)
	case key.Matches(msg, keys.Cycle):
		m.cycleFocus(false)
	case key.Matches(msg, keys.CycleBack):
		m.cycleFocus(true)
	case key.Matches(msg, keys.NewWindow):
		m.launch(state.DefaultWindowType)
	case key.Matches(msg, keys.LaunchApp):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(launchOrder) {
			m.launch(launchOrder[idx])
		}
	case key.Matches(msg, keys.Minimize):
		return m.runOnActive("window:minimize", "Minimize")
	case key.Matches(msg, keys.Maximize):
		return m.runOnActive("window:maximize", "Maximize")
	case key.Matches(msg, keys.Close):
		return m.runOnActive("window:close", "Close")
	case key.Matches(msg, keys.Dock):
		m.enterDock()
	case key.Matches(msg, keys.Switcher):
		return m.openSwitcher()
	case key.Matches(msg, keys.Move):
		m.startKeyboardMove()
	case key.Matches(msg, keys.Type):
		m.enterInput()
	case key.Matches(msg, keys.Location):
		return m.requestPrompt(desktop.PromptLocation)
	case key.Matches(msg, keys.Rename):
		return m.requestPrompt(desktop.PromptRename)
	case key.Matches(msg, keys.Diagnostics):
		m.setMode(ModeDiagnostics)
	case key.Matches(msg, keys.Back):
		m.errMsg = ""
		m.forceClearInfo()
	}
	return nil
}

// launch opens a window of appType through the desktop-level action so the
// dispatcher sees every launch.
func (m *Model) launch(appType string) {
	res, err := m.desktop.Invoke(m.ctx, dispatcher.Invocation{Action: "desktop:launch", Value: appType})
	if err != nil {
		m.errMsg = err.Error()
		logging.Error(err)
		return
	}
	m.errMsg = ""
	if res.Info != "" && m.verbose {
		m.setInfo(res.Info)
	}
}

// cycleFocus raises the bottom visible window, or with reverse sends the top
// one to the back by raising every other window in order.
func (m *Model) cycleFocus(reverse bool) {
	wins := m.visibleWindows()
	if len(wins) < 2 {
		if len(wins) == 1 {
			m.desktop.Focus(wins[0].ID)
		}
		return
	}
	if !reverse {
		m.desktop.Focus(wins[0].ID)
		return
	}
	for _, win := range wins[:len(wins)-1] {
		m.store.BringToFront(win.ID)
	}
	m.desktop.Focus(wins[len(wins)-2].ID)
}

func (m *Model) runOnActive(action, label string) tea.Cmd {
	win, ok := m.activeWindow()
	if !ok {
		m.setInfo("no active window")
		return nil
	}
	m.pending++
	return m.bus.Execute(m.ctx, command.Request{
		ID:         action,
		Label:      fmt.Sprintf("%s %s", label, win.Label()),
		Invocation: dispatcher.Invocation{Action: action, WindowID: win.ID},
	})
}

// enterInput routes printable keys into the active application.
func (m *Model) enterInput() {
	win, ok := m.activeWindow()
	if !ok {
		m.setInfo("no active window")
		return
	}
	if !m.desktop.AcceptsInput(win.ID) {
		m.setInfo(fmt.Sprintf("%s does not take typing", win.Label()))
		return
	}
	m.setMode(ModeInput)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEsc {
		m.setMode(ModeDesktop)
		return nil
	}
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	win, ok := m.activeWindow()
	if !ok || !m.desktop.AcceptsInput(win.ID) {
		m.setMode(ModeDesktop)
		return nil
	}
	var value string
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		value = string(msg.Runes)
	case tea.KeySpace:
		value = "space"
	case tea.KeyBackspace, tea.KeyCtrlH:
		value = "backspace"
	case tea.KeyEnter:
		value = "enter"
	case tea.KeyTab:
		value = "tab"
	default:
		return nil
	}
	// typing runs inline so keys land in order
	if _, err := m.desktop.Input(m.ctx, win.ID, value); err != nil {
		m.errMsg = err.Error()
	}
	return nil
}

func (m *Model) dockItems() []state.Window {
	return m.store.DockItems()
}

func (m *Model) enterDock() {
	if len(m.dockItems()) == 0 {
		m.setInfo("dock is empty")
		return
	}
	m.dockIdx = 0
	m.setMode(ModeDock)
}

func (m *Model) handleDockKey(msg tea.KeyMsg) tea.Cmd {
	items := m.dockItems()
	if len(items) == 0 {
		m.setMode(ModeDesktop)
		return nil
	}
	m.dockIdx = min(max(m.dockIdx, 0), len(items)-1)
	switch msg.String() {
	case "esc", "b":
		m.setMode(ModeDesktop)
	case "left", "h", "shift+tab":
		m.dockIdx = (m.dockIdx - 1 + len(items)) % len(items)
	case "right", "l", "tab":
		m.dockIdx = (m.dockIdx + 1) % len(items)
	case "enter", " ", "r":
		return m.dockAction("dock:restore", items[m.dockIdx], len(items) == 1)
	case "w", "x", "delete":
		return m.dockAction("dock:close", items[m.dockIdx], len(items) == 1)
	case "ctrl+c":
		return tea.Quit
	}
	return nil
}

func (m *Model) dockAction(action string, win state.Window, last bool) tea.Cmd {
	if last {
		m.setMode(ModeDesktop)
	}
	m.pending++
	return m.bus.Execute(m.ctx, command.Request{
		ID:         action,
		Label:      win.Label(),
		Invocation: dispatcher.Invocation{Action: action, WindowID: win.ID},
	})
}

// dockLabel is the text of one dock entry.
func dockLabel(win state.Window) string {
	return desktop.Icon(win.Type) + " " + win.Title
}
