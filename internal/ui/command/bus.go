package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/webtop/internal/data/dispatcher"
	"github.com/atomicstack/webtop/internal/logging/events"
	"github.com/atomicstack/webtop/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// Runner executes an action invocation. The desktop satisfies it.
type Runner interface {
	Invoke(ctx context.Context, inv dispatcher.Invocation) (dispatcher.Result, error)
}

// Request encapsulates an action invocation.
type Request struct {
	ID         string
	Label      string
	Invocation dispatcher.Invocation
}

// Bus coordinates the execution of menu actions.
type Bus struct {
	runner Runner
}

// New initialises a command bus instance.
func New(runner Runner) *Bus {
	return &Bus{runner: runner}
}

// Execute wraps a menu action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(ctx context.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if b.runner == nil || req.Invocation.Action == "" {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		res, err := b.runner.Invoke(ctx, req.Invocation)
		if err == nil && res.Info == "" && !res.WindowsUpdated && !res.MenusUpdated {
			events.Command.NoOp(req.ID, req.Label)
		}
		msg := menu.ActionResult{Info: res.Info, Err: err}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}

// ExecuteAll runs the requests in order inside one command and reports a
// single combined result. Every request runs even when an earlier one fails.
func (b *Bus) ExecuteAll(ctx context.Context, reqs []Request) tea.Cmd {
	if len(reqs) == 1 {
		return b.Execute(ctx, reqs[0])
	}
	for _, req := range reqs {
		events.Command.Queue(req.ID, req.Label)
	}
	return func() tea.Msg {
		if b.runner == nil || len(reqs) == 0 {
			return nil
		}
		var infos []string
		var errs []error
		for _, req := range reqs {
			if req.Invocation.Action == "" {
				events.Command.Skip(req.ID, req.Label)
				continue
			}
			res, err := b.runner.Invoke(ctx, req.Invocation)
			if err != nil {
				errs = append(errs, err)
			}
			if res.Info != "" {
				infos = append(infos, res.Info)
			}
			events.Command.Result(req.ID, req.Label, "menu.ActionResult")
		}
		return menu.ActionResult{Info: strings.Join(infos, "; "), Err: errors.Join(errs...)}
	}
}
