package desktop

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"

	"github.com/atomicstack/webtop/internal/data/dispatcher"
	"github.com/atomicstack/webtop/internal/logging"
	"github.com/atomicstack/webtop/internal/menu"
	"github.com/atomicstack/webtop/internal/state"
)

// ErrUnknownApp is returned by Launch for application types with no
// registered App.
var ErrUnknownApp = errors.New("unknown application")

// Config describes how a Desktop is assembled.
type Config struct {
	DefaultMenu     []menu.Config
	RegistryEnabled bool
	URLPolicy       URLPolicy
	Clock           func() time.Time
	IDGenerator     func() string
	// Clipboard receives copied text. Nil uses the system clipboard when
	// one is available.
	Clipboard func(string) error
}

// Desktop owns the window store, one menu registry per window plus a
// desktop-level registry, and the action table that menu items resolve to.
type Desktop struct {
	store     *state.WindowStore
	root      *menu.Registry
	scopes    *menu.Scopes
	dispatch  *dispatcher.Dispatcher
	defaults  []menu.Config
	apps      map[string]App
	urlPolicy URLPolicy
	now       func() time.Time
	copyText  func(string) error

	mu       sync.Mutex
	mounts   map[string]mount
	enabled  bool
	launched int
	revision atomic.Int64
}

type mount struct {
	app      App
	menuID   string
	teardown func()
}

// New assembles a desktop with the bundled applications and built-in
// actions registered.
func New(cfg Config) *Desktop {
	d := &Desktop{
		defaults:  cfg.DefaultMenu,
		apps:      make(map[string]App),
		urlPolicy: cfg.URLPolicy,
		now:       cfg.Clock,
		copyText:  cfg.Clipboard,
		mounts:    make(map[string]mount),
		enabled:   cfg.RegistryEnabled,
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.copyText == nil && !clipboard.Unsupported {
		d.copyText = clipboard.WriteAll
	}
	storeOpts := []state.StoreOption{state.WithClock(cfg.Clock), state.WithIDGenerator(cfg.IDGenerator)}
	d.store = state.NewWindowStore(storeOpts...)
	onChange := menu.WithChangeHandler(func([]menu.Fragment) { d.revision.Add(1) })
	d.root = menu.NewRegistry(menu.WithDefaults(cfg.DefaultMenu), menu.WithEnabled(cfg.RegistryEnabled), onChange)
	d.scopes = menu.NewScopes(menu.WithDefaults(cfg.DefaultMenu), menu.WithEnabled(cfg.RegistryEnabled), onChange)
	d.dispatch = dispatcher.New(d.store)

	for _, app := range BundledApps() {
		d.apps[app.Type] = app
	}
	d.registerActions()
	return d
}

// Store exposes the window store.
func (d *Desktop) Store() *state.WindowStore {
	return d.store
}

// Dispatcher exposes the action table and backend event sink.
func (d *Desktop) Dispatcher() *dispatcher.Dispatcher {
	return d.dispatch
}

// Apps lists the bundled application types in sorted order.
func (d *Desktop) Apps() []App {
	out := make([]App, 0, len(d.apps))
	for _, app := range d.apps {
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// MenuRevision increases whenever any registry changes.
func (d *Desktop) MenuRevision() int64 {
	return d.revision.Load()
}

// RegistryEnabled reports the kill switch shared by every registry.
func (d *Desktop) RegistryEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// Launch opens a window for appType and mounts the application's menus into
// the window's own registry. An empty title uses the application default.
func (d *Desktop) Launch(appType, title string) (string, error) {
	app, ok := d.apps[appType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownApp, appType)
	}
	if title == "" {
		title = app.Title
	}

	d.mu.Lock()
	slot := d.launched % 8
	d.launched++
	enabled := d.enabled
	d.mu.Unlock()

	size := app.Size
	spec := state.WindowSpec{
		Title:    title,
		Type:     app.Type,
		Position: &state.Position{X: 2 + slot*4, Y: 1 + slot*2},
		Size:     &size,
		Extra:    app.initialExtra(),
	}
	id := d.store.AddWindow(spec)
	if app.Home != "" {
		d.store.NavigateBrowser(id, app.Home, "")
	}

	reg := d.scopes.For(id)
	reg.SetEnabled(enabled)
	ctx := menu.NewContext(context.Background(), reg)
	m := mount{app: app, menuID: app.menuID()}
	m.teardown = d.mountApp(ctx, id, m)
	d.mu.Lock()
	d.mounts[id] = m
	d.mu.Unlock()
	return id, nil
}

func (d *Desktop) mountApp(ctx context.Context, id string, m mount) func() {
	c := menu.FromContext(ctx, d.defaults)
	win, _ := d.store.Window(id)
	unmountWindow := menu.Mount(c, "window-menu", windowMenus(), menu.Options{Component: desktopComponent, Priority: menu.PriorityLow})
	unmountApp := func() {}
	if m.app.Menus != nil {
		unmountApp = menu.Mount(c, m.menuID, m.app.Menus(win), m.app.options())
	}
	return func() {
		unmountApp()
		unmountWindow()
	}
}

// Close unmounts the window's application, drops its registry and removes
// the window.
func (d *Desktop) Close(id string) {
	d.unmount(id)
	d.store.RemoveWindow(id)
	d.focusTopmost()
}

func (d *Desktop) unmount(id string) {
	d.mu.Lock()
	m, ok := d.mounts[id]
	delete(d.mounts, id)
	d.mu.Unlock()
	if ok && m.teardown != nil {
		m.teardown()
	}
	d.scopes.Drop(id)
}

// Focus raises the window and makes it active.
func (d *Desktop) Focus(id string) {
	d.store.BringToFront(id)
}

// Registry returns the registry whose menu bar is currently shown.
func (d *Desktop) Registry() *menu.Registry {
	if id := d.store.ActiveWindowID(); id != "" {
		if reg, ok := d.scopes.Lookup(id); ok {
			return reg
		}
	}
	return d.root
}

// MenuBar returns the system menu followed by the merged menu of the active
// window, or of the desktop when no window is active. The system menu sits
// outside the registries so the kill switch can always be reached.
func (d *Desktop) MenuBar() []menu.Config {
	merged := d.Registry().Merged(nil)
	bar := make([]menu.Config, 0, len(merged)+1)
	bar = append(bar, systemMenu(d.RegistryEnabled()))
	return append(bar, merged...)
}

// Invoke dispatches an action. Invocations without a window target the
// active window. Windows left closed by the action are unmounted.
func (d *Desktop) Invoke(ctx context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
	if inv.WindowID == "" {
		inv.WindowID = d.store.ActiveWindowID()
	}
	res, err := d.dispatch.Dispatch(ctx, inv)
	if err != nil {
		logging.Error(err)
	}
	d.reapClosed()
	return res, err
}

// reapClosed removes windows that reached the closed state so that no menu
// fragment outlives its window.
func (d *Desktop) reapClosed() {
	for _, win := range d.store.WindowsByState(state.WindowClosed) {
		d.unmount(win.ID)
		d.store.RemoveWindow(win.ID)
	}
}

// focusTopmost activates the highest visible window, or clears the active
// pointer when none is visible.
func (d *Desktop) focusTopmost() {
	stack := d.store.StackOrder()
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i].State {
		case state.WindowOpen, state.WindowMaximized:
			d.store.SetActiveWindow(stack[i].ID)
			return
		}
	}
	d.store.SetActiveWindow("")
}

// refreshMenus re-renders the application menus of id from the window's
// current state, patching each fragment in place.
func (d *Desktop) refreshMenus(id string) {
	d.mu.Lock()
	m, ok := d.mounts[id]
	d.mu.Unlock()
	if !ok || m.app.Menus == nil {
		return
	}
	reg, ok := d.scopes.Lookup(id)
	if !ok {
		return
	}
	win, ok := d.store.Window(id)
	if !ok {
		return
	}
	configs := m.app.Menus(win)
	for i, cfg := range configs {
		fragID := m.menuID
		if len(configs) > 1 {
			fragID = fmt.Sprintf("%s-%d", m.menuID, i+1)
		}
		reg.Update(fragID, []menu.Config{cfg})
	}
}

func (d *Desktop) setRegistryEnabled(enabled bool) {
	d.mu.Lock()
	d.enabled = enabled
	d.mu.Unlock()
	d.root.SetEnabled(enabled)
	d.scopes.Each(func(_ string, reg *menu.Registry) {
		reg.SetEnabled(enabled)
	})
	d.revision.Add(1)
}
