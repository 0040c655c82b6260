package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const infoTTL = 5 * time.Second

// handleKeyMsg routes a key press to whichever component owns the keyboard.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.clearInfo()
	switch m.mode {
	case ModeMenu:
		return m.handleMenuKey(keyMsg)
	case ModeSwitcher:
		return m.handleSwitcherKey(keyMsg)
	case ModeMove:
		return m.handleMoveKey(keyMsg)
	case ModeInput:
		return m.handleInputKey(keyMsg)
	case ModeDock:
		return m.handleDockKey(keyMsg)
	case ModeDiagnostics:
		return m.handleDiagnosticsKey(keyMsg)
	case ModePrompt:
		// a prompt without a form falls back to the desktop
		m.setMode(ModeDesktop)
	}
	return m.handleDesktopKey(keyMsg)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport(m.switcher)
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
