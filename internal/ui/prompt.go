package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/webtop/internal/data/dispatcher"
	"github.com/atomicstack/webtop/internal/desktop"
	"github.com/atomicstack/webtop/internal/logging/events"
	"github.com/atomicstack/webtop/internal/state"
	"github.com/atomicstack/webtop/internal/ui/command"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// locationPromptMsg asks the model to collect a value for a window before
// running the follow-up action.
type locationPromptMsg struct {
	kind     string
	windowID string
}

// locationPrompt is a single-line form bound to one window.
type locationPrompt struct {
	input  textinput.Model
	kind   string
	target string
	action string
	title  string
	help   string
}

func newLocationPrompt(kind string, win state.Window) (*locationPrompt, error) {
	ti := textinput.New()
	ti.CharLimit = 256
	// the prompt shares the loop with the desktop, so its cursor does not tick
	ti.Cursor.SetMode(cursor.CursorStatic)
	p := &locationPrompt{kind: kind, target: win.ID}
	switch kind {
	case desktop.PromptLocation:
		if win.Type != state.BrowserWindowType {
			return nil, fmt.Errorf("%s is not a browser", win.Label())
		}
		ti.Placeholder = "https://example.com"
		if win.Browser != nil {
			ti.SetValue(win.Browser.CurrentURL)
			ti.CursorEnd()
		}
		p.action = "browser:open"
		p.title = "Open location in " + win.Title
		p.help = "Press Enter to open. Esc to cancel."
	case desktop.PromptRename:
		ti.Placeholder = "window title"
		ti.CharLimit = 64
		ti.SetValue(win.Title)
		ti.CursorEnd()
		p.action = "window:rename"
		p.title = "Rename " + win.Title
		p.help = "Press Enter to rename. Esc to cancel."
	default:
		return nil, fmt.Errorf("unknown prompt %q", kind)
	}
	ti.Focus()
	p.input = ti
	return p, nil
}

func (p *locationPrompt) Value() string     { return strings.TrimSpace(p.input.Value()) }
func (p *locationPrompt) InputView() string { return p.input.View() }

// Update feeds msg to the input. done reports a submitted value and cancel
// an abandoned prompt.
func (p *locationPrompt) Update(msg tea.Msg) (cmd tea.Cmd, done bool, cancel bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+u":
			if p.input.Value() != "" {
				p.input.SetValue("")
				p.input.CursorStart()
			}
			return nil, false, false
		}
		switch key.Type {
		case tea.KeyEsc:
			events.Prompt.Cancel(p.kind, p.target, "escape")
			return nil, false, true
		case tea.KeyEnter:
			if p.Value() == "" {
				events.Prompt.Cancel(p.kind, p.target, "empty")
				return nil, false, true
			}
			events.Prompt.Submit(p.kind, p.target, p.Value())
			return nil, true, false
		}
	}
	updated, cmd := p.input.Update(msg)
	p.input = updated
	return cmd, false, false
}

type promptResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withPrompt centralises the common prompt flow: reset transient state and
// run the action, surfacing its error or info.
func (m *Model) withPrompt(action func() promptResult) tea.Cmd {
	m.forceClearInfo()
	m.errMsg = ""
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		return nil
	}
	if result.Info != "" && m.verbose {
		m.setInfo(result.Info)
	}
	return result.Cmd
}

// requestPrompt opens the prompt of kind for the active window.
func (m *Model) requestPrompt(kind string) tea.Cmd {
	win, ok := m.activeWindow()
	if !ok {
		m.setInfo("no active window")
		return nil
	}
	return func() tea.Msg {
		return locationPromptMsg{kind: kind, windowID: win.ID}
	}
}

func (m *Model) handleLocationPromptMsg(msg tea.Msg) tea.Cmd {
	req, ok := msg.(locationPromptMsg)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		win, ok := m.store.Window(req.windowID)
		if !ok {
			return promptResult{Err: fmt.Errorf("window %s is gone", req.windowID)}
		}
		p, err := newLocationPrompt(req.kind, win)
		if err != nil {
			return promptResult{Err: err}
		}
		m.closeMenu()
		m.prompt = p
		m.setMode(ModePrompt)
		events.Prompt.Open(req.kind, win.ID)
		return promptResult{}
	})
}

// handleActivePrompt sends key presses to the open prompt.
func (m *Model) handleActivePrompt(msg tea.Msg) (bool, tea.Cmd) {
	if m.mode != ModePrompt || m.prompt == nil {
		return false, nil
	}
	switch msg.(type) {
	case tea.KeyMsg:
	default:
		return false, nil
	}
	cmd, done, cancel := m.prompt.Update(msg)
	if cancel {
		m.prompt = nil
		m.setMode(ModeDesktop)
		return true, cmd
	}
	if done {
		p := m.prompt
		m.prompt = nil
		m.setMode(ModeDesktop)
		m.pending++
		return true, m.bus.Execute(m.ctx, command.Request{
			ID:         p.action,
			Label:      p.title,
			Invocation: dispatcher.Invocation{Action: p.action, WindowID: p.target, Value: p.Value()},
		})
	}
	return true, cmd
}

func (m *Model) viewPrompt() string {
	if m.prompt == nil {
		return ""
	}
	return m.prompt.title + ": " + m.prompt.InputView()
}

func (m *Model) promptHelp() string {
	if m.prompt == nil {
		return ""
	}
	return m.prompt.help
}
