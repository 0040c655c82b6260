package ui

import (
	"slices"

	"github.com/atomicstack/webtop/internal/backend"
	"github.com/atomicstack/webtop/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent records the poller's health, then lets the dispatcher
// fold the event into the store.
func (m *Model) applyBackendEvent(evt backend.Event) {
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		return
	}
	res := m.desktop.Dispatcher().Handle(evt)
	if res.WindowsUpdated {
		m.refreshSwitcher()
		m.announceLoaded(res.Loaded)
	}
	if res.MenusUpdated {
		m.syncMenus()
	}
	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
}

// announceLoaded reports a finished page only for the window the user is
// looking at; background tabs load silently.
func (m *Model) announceLoaded(ids []string) {
	win, ok := m.desktop.Store().ActiveWindow()
	if !ok || win.Browser == nil || !slices.Contains(ids, win.ID) {
		return
	}
	events.Browser.Loaded(win.ID, win.Browser.CurrentURL)
	if m.mode == ModeDesktop {
		m.setInfo("loaded " + win.Browser.CurrentURL)
	}
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, err := range m.backendState {
		if err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}
