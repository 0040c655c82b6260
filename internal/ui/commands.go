package ui

import (
	"github.com/atomicstack/webtop/internal/logging/events"
	"github.com/atomicstack/webtop/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// handleActionResultMsg records the outcome of a menu or key action. The
// desktop keeps running; only errors stay on screen until the next action.
func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	if m.pending > 0 {
		m.pending--
	}
	m.refreshSwitcher()
	m.syncMenus()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Info != "" && m.verbose {
		m.setInfo(result.Info)
	} else {
		m.clearInfo()
	}
	events.Action.Success(result.Info)
	return nil
}
