package backend

import (
	"context"
	"sync"
	"testing"
	"time"
)

type stubPages struct {
	mu  sync.Mutex
	ids []string
}

func (s *stubPages) LoadingBrowsers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ids...)
}

func TestWatcherEmitsClockAndPageLoads(t *testing.T) {
	w := NewWatcher(&stubPages{ids: []string{"w1"}}, time.Hour)
	seen := map[Kind]Event{}
	timeout := time.After(5 * time.Second)
	for len(seen) < 2 {
		select {
		case evt := <-w.Events():
			seen[evt.Kind] = evt
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %v", seen)
		}
	}
	w.Stop()
	w.Wait()

	if _, ok := seen[KindClock].Data.(Clock); !ok {
		t.Fatalf("expected clock payload, got %#v", seen[KindClock].Data)
	}
	loads, ok := seen[KindPageLoads].Data.(PageLoads)
	if !ok || len(loads.IDs) != 1 || loads.IDs[0] != "w1" {
		t.Fatalf("unexpected page loads %#v", seen[KindPageLoads].Data)
	}
}

func TestWatcherWithoutPagesOnlyTicks(t *testing.T) {
	w := NewWatcher(nil, time.Hour)
	evt := <-w.Events()
	if evt.Kind != KindClock {
		t.Fatalf("expected clock event, got %v", evt.Kind)
	}
	w.Stop()
	w.Wait()
	for range w.Events() {
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	if !th.wait(ctx) || !th.wait(ctx) {
		t.Fatalf("expected both slots granted")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected second wait to be delayed, elapsed %v", elapsed)
	}
	var nilThrottle *throttle
	if !nilThrottle.wait(ctx) {
		t.Fatalf("expected a nil throttle to pass through")
	}
}

func TestThrottleHonoursCancel(t *testing.T) {
	th := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if !th.wait(ctx) {
		t.Fatalf("expected the first slot immediately")
	}
	cancel()
	if th.wait(ctx) {
		t.Fatalf("expected a cancelled wait to report false")
	}
}
