package command

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/webtop/internal/data/dispatcher"
	"github.com/atomicstack/webtop/internal/menu"
)

type runnerFunc func(context.Context, dispatcher.Invocation) (dispatcher.Result, error)

func (f runnerFunc) Invoke(ctx context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
	return f(ctx, inv)
}

func TestExecuteReturnsActionResult(t *testing.T) {
	bus := New(runnerFunc(func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		return dispatcher.Result{Info: "ran " + inv.Action}, nil
	}))
	cmd := bus.Execute(context.Background(), Request{ID: "window:close", Label: "Close", Invocation: dispatcher.Invocation{Action: "window:close"}})
	msg, ok := cmd().(menu.ActionResult)
	if !ok {
		t.Fatalf("expected ActionResult")
	}
	if msg.Info != "ran window:close" || msg.Err != nil {
		t.Fatalf("unexpected result %#v", msg)
	}
}

func TestExecutePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	bus := New(runnerFunc(func(context.Context, dispatcher.Invocation) (dispatcher.Result, error) {
		return dispatcher.Result{}, boom
	}))
	msg := bus.Execute(context.Background(), Request{Invocation: dispatcher.Invocation{Action: "x"}})().(menu.ActionResult)
	if !errors.Is(msg.Err, boom) {
		t.Fatalf("expected boom, got %v", msg.Err)
	}
}

func TestExecuteSkipsEmptyAction(t *testing.T) {
	called := false
	bus := New(runnerFunc(func(context.Context, dispatcher.Invocation) (dispatcher.Result, error) {
		called = true
		return dispatcher.Result{}, nil
	}))
	if msg := bus.Execute(context.Background(), Request{Label: "Disabled"})(); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
	if called {
		t.Fatalf("expected runner not to be called")
	}
}

func TestExecuteAllRunsInOrderAndJoinsErrors(t *testing.T) {
	var seen []string
	boom := errors.New("boom")
	bus := New(runnerFunc(func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		seen = append(seen, inv.WindowID)
		if inv.WindowID == "w2" {
			return dispatcher.Result{}, boom
		}
		return dispatcher.Result{Info: "closed " + inv.WindowID}, nil
	}))
	reqs := []Request{
		{Invocation: dispatcher.Invocation{Action: "window:close", WindowID: "w1"}},
		{Invocation: dispatcher.Invocation{Action: "window:close", WindowID: "w2"}},
		{Invocation: dispatcher.Invocation{Action: "window:close", WindowID: "w3"}},
	}
	msg := bus.ExecuteAll(context.Background(), reqs)().(menu.ActionResult)
	if len(seen) != 3 || seen[0] != "w1" || seen[2] != "w3" {
		t.Fatalf("expected all requests in order, got %v", seen)
	}
	if !errors.Is(msg.Err, boom) {
		t.Fatalf("expected joined error, got %v", msg.Err)
	}
	if msg.Info != "closed w1; closed w3" {
		t.Fatalf("unexpected info %q", msg.Info)
	}
}
