package backend

import (
	"context"
	"sync"
	"time"
)

// throttle hands out release slots at least gap apart so a burst of
// navigations settles before the shell hears about it.
type throttle struct {
	gap time.Duration
	now func() time.Time

	mu   sync.Mutex
	last time.Time
}

func newThrottle(gap time.Duration) *throttle {
	return &throttle{gap: gap, now: time.Now}
}

// wait reserves the next slot and blocks until it arrives. It reports false
// when ctx ends first.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.gap <= 0 {
		return ctx.Err() == nil
	}
	t.mu.Lock()
	now := t.now()
	slot := t.last.Add(t.gap)
	if t.last.IsZero() || slot.Before(now) {
		slot = now
	}
	t.last = slot
	t.mu.Unlock()

	delay := slot.Sub(now)
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
