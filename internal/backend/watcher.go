package backend

import (
	"context"
	"sync"
	"time"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindClock Kind = iota
	KindPageLoads
)

func (k Kind) String() string {
	switch k {
	case KindClock:
		return "clock"
	case KindPageLoads:
		return "page-loads"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Clock carries the wall time shown in the menu bar.
type Clock struct {
	Now time.Time
}

// PageLoads lists browser windows whose page finished loading during the
// last poll.
type PageLoads struct {
	IDs []string
}

// PageSource reports browser windows that are waiting for a page.
type PageSource interface {
	LoadingBrowsers() []string
}

// Watcher polls its sources at a fixed interval and publishes events.
type Watcher struct {
	pages    PageSource
	interval time.Duration
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that emits a clock tick and the current page
// loads every interval.
func NewWatcher(pages PageSource, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		pages:    pages,
		interval: interval,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startClockPoller()
	if pages != nil {
		w.startPagePoller()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startClockPoller() {
	w.wg.Add(1)
	go w.poll(KindClock, func(ctx context.Context) (interface{}, error) {
		return Clock{Now: w.now()}, nil
	})
}

func (w *Watcher) startPagePoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindPageLoads, func(ctx context.Context) (interface{}, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		return PageLoads{IDs: w.pages.LoadingBrowsers()}, nil
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
