package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/atomicstack/webtop/internal/backend"
	"github.com/atomicstack/webtop/internal/state"
)

// ErrUnknownAction is returned by Dispatch for identifiers with no handler.
var ErrUnknownAction = errors.New("unknown action")

// Invocation is one request to run a menu action.
type Invocation struct {
	Action   string
	WindowID string
	Value    string
	Checked  bool
}

// Result reports what an action or backend event changed.
type Result struct {
	Info           string
	WindowsUpdated bool
	MenusUpdated   bool
	ClockUpdated   bool
	// Loaded lists browser windows whose page finished loading.
	Loaded []string
}

// Handler executes one action.
type Handler func(ctx context.Context, inv Invocation) (Result, error)

// Dispatcher resolves action identifiers to handlers and applies backend
// events to the window store.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	windows  *state.WindowStore
	clock    time.Time
}

// New returns a dispatcher with no actions bound that applies backend events
// to windows.
func New(windows *state.WindowStore) *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler), windows: windows}
}

// Register binds action to h, replacing any earlier binding.
func (d *Dispatcher) Register(action string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if h == nil {
		delete(d.handlers, action)
		return
	}
	d.handlers[action] = h
}

// Has reports whether action has a handler.
func (d *Dispatcher) Has(action string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handlers[action]
	return ok
}

// Actions lists the registered identifiers in sorted order.
func (d *Dispatcher) Actions() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.handlers))
	for id := range d.handlers {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Dispatch runs the handler bound to inv.Action.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation) (Result, error) {
	d.mu.RLock()
	h, ok := d.handlers[inv.Action]
	d.mu.RUnlock()
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAction, inv.Action)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return h(ctx, inv)
}

// Handle applies a backend event to the store.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindClock:
		if clock, ok := evt.Data.(backend.Clock); ok {
			d.mu.Lock()
			d.clock = clock.Now
			d.mu.Unlock()
			res.ClockUpdated = true
		}
	case backend.KindPageLoads:
		if loads, ok := evt.Data.(backend.PageLoads); ok && d.windows != nil {
			for _, id := range loads.IDs {
				d.windows.SetBrowserLoading(id, false)
				res.Loaded = append(res.Loaded, id)
			}
			res.WindowsUpdated = len(res.Loaded) > 0
		}
	}
	return res
}

// Clock returns the time carried by the most recent clock event.
func (d *Dispatcher) Clock() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.clock
}
