package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/webtop/internal/backend"
	"github.com/atomicstack/webtop/internal/desktop"
	"github.com/atomicstack/webtop/internal/menu"
	"github.com/atomicstack/webtop/internal/state"
	"github.com/atomicstack/webtop/internal/theme"
	"github.com/atomicstack/webtop/internal/ui/command"
	uistate "github.com/atomicstack/webtop/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

// Mode selects which component receives key presses.
type Mode int

const (
	ModeDesktop Mode = iota
	ModeMenu
	ModeSwitcher
	ModeMove
	ModeInput
	ModePrompt
	ModeDock
	ModeDiagnostics
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeSwitcher:
		return "switch"
	case ModeMove:
		return "move"
	case ModeInput:
		return "type"
	case ModePrompt:
		return "location"
	case ModeDock:
		return "dock"
	case ModeDiagnostics:
		return "menus"
	default:
		return "desktop"
	}
}

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Desktop    *desktop.Desktop
	Watcher    *backend.Watcher
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Model implements the Bubble Tea model for the terminal desktop.
type Model struct {
	desktop *desktop.Desktop
	store   *state.WindowStore
	bus     *command.Bus
	ctx     context.Context

	mode     Mode
	menus    menuState
	switcher *level
	drag     *dragState
	prompt   *locationPrompt
	dockIdx  int

	pending        int
	errMsg         string
	infoMsg        string
	infoExpire     time.Time
	width          int
	height         int
	fixedWidth     bool
	fixedHeight    bool
	backend        *backend.Watcher
	backendState   map[backend.Kind]error
	backendLastErr string
	showFooter     bool
	verbose        bool

	filterCursor      cursor.Model
	filterCursorDirty bool
	filterCursorLive  bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the UI to a desktop. The watcher is optional.
func NewModel(opts Options) *Model {
	d := opts.Desktop
	if d == nil {
		d = desktop.New(desktop.Config{DefaultMenu: desktop.DefaultMenu(), RegistryEnabled: true})
	}
	m := &Model{
		desktop:      d,
		store:        d.Store(),
		bus:          command.New(d),
		ctx:          context.Background(),
		mode:         ModeDesktop,
		backend:      opts.Watcher,
		backendState: map[backend.Kind]error{},
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		width:        80,
		height:       24,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	m.filterCursorLive = true
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.handleActivePrompt(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(menu.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(locationPromptMsg{}): m.handleLocationPromptMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		// the blink only restarts once Init has focused the cursor
		if m.filterCursorLive {
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Mode reports the component currently receiving keys.
func (m *Model) Mode() Mode {
	return m.mode
}

// Desktop exposes the desktop the model drives.
func (m *Model) Desktop() *desktop.Desktop {
	return m.desktop
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
}

// activeWindow returns the focused window when it is on screen.
func (m *Model) activeWindow() (state.Window, bool) {
	win, ok := m.store.ActiveWindow()
	if !ok || win.State == state.WindowMinimized || win.State == state.WindowClosed {
		return state.Window{}, false
	}
	return win, true
}
