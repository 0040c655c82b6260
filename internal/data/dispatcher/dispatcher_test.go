package dispatcher

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/atomicstack/webtop/internal/backend"
	"github.com/atomicstack/webtop/internal/state"
)

func TestDispatchRunsRegisteredHandler(t *testing.T) {
	d := New(nil)
	var got Invocation
	d.Register("calculator:mode", func(_ context.Context, inv Invocation) (Result, error) {
		got = inv
		return Result{Info: "mode " + inv.Value}, nil
	})
	res, err := d.Dispatch(context.Background(), Invocation{Action: "calculator:mode", WindowID: "w1", Value: "scientific"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Info != "mode scientific" || got.WindowID != "w1" {
		t.Fatalf("unexpected result %#v for %#v", res, got)
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	d := New(nil)
	_, err := d.Dispatch(context.Background(), Invocation{Action: "nope"})
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestDispatchHonoursCancelledContext(t *testing.T) {
	d := New(nil)
	called := false
	d.Register("x", func(context.Context, Invocation) (Result, error) {
		called = true
		return Result{}, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Dispatch(ctx, Invocation{Action: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Fatalf("expected handler to be skipped")
	}
}

func TestRegisterNilRemovesBinding(t *testing.T) {
	d := New(nil)
	noop := func(context.Context, Invocation) (Result, error) { return Result{}, nil }
	d.Register("b", noop)
	d.Register("a", noop)
	if got := d.Actions(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected actions %v", got)
	}
	d.Register("a", nil)
	if d.Has("a") || !d.Has("b") {
		t.Fatalf("expected only b to remain, got %v", d.Actions())
	}
}

func TestHandlePageLoadsClearsLoading(t *testing.T) {
	store := state.NewWindowStore()
	id := store.AddWindow(state.WindowSpec{Type: state.BrowserWindowType})
	store.NavigateBrowser(id, "https://example.com", "")
	d := New(store)

	res := d.Handle(backend.Event{Kind: backend.KindPageLoads, Data: backend.PageLoads{IDs: store.LoadingBrowsers()}})
	if !res.WindowsUpdated || len(res.Loaded) != 1 || res.Loaded[0] != id {
		t.Fatalf("expected %s reported loaded, got %+v", id, res)
	}
	win, _ := store.Window(id)
	if win.Browser.Loading {
		t.Fatalf("expected page marked loaded")
	}
}

func TestHandleClockAndErrors(t *testing.T) {
	d := New(nil)
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	if res := d.Handle(backend.Event{Kind: backend.KindClock, Err: errors.New("boom")}); res.ClockUpdated {
		t.Fatalf("expected failed event to be ignored")
	}
	if !d.Clock().IsZero() {
		t.Fatalf("expected failed event to leave the clock unset, got %v", d.Clock())
	}
	res := d.Handle(backend.Event{Kind: backend.KindClock, Data: backend.Clock{Now: now}})
	if !res.ClockUpdated || !d.Clock().Equal(now) {
		t.Fatalf("expected clock %v, got %v", now, d.Clock())
	}
}
