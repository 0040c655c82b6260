package desktop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/atomicstack/webtop/internal/data/dispatcher"
	"github.com/atomicstack/webtop/internal/logging/events"
	"github.com/atomicstack/webtop/internal/state"
)

const maxRecentDocuments = 5

// Extra keys private to the action handlers.
const (
	extraAcc       = "acc"
	extraOp        = "op"
	extraFresh     = "fresh"
	extraSnapshots = "snapshots"
)

func (d *Desktop) registerActions() {
	r := d.dispatch.Register

	r("window:minimize", d.onWindow(func(id string) {
		d.store.MinimizeWindow(id)
		d.focusTopmost()
	}))
	r("window:restore", d.onWindow(func(id string) {
		d.store.RestoreWindow(id)
		d.store.BringToFront(id)
	}))
	r("window:maximize", d.onWindow(d.store.ToggleMaximized))
	r("window:front", d.onWindow(d.store.BringToFront))
	r("window:close", d.onWindow(d.Close))
	r("window:rename", func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		title := strings.TrimSpace(inv.Value)
		if title == "" {
			return dispatcher.Result{}, errors.New("window title cannot be empty")
		}
		if _, ok := d.store.Window(inv.WindowID); !ok {
			return dispatcher.Result{}, nil
		}
		d.store.UpdateWindow(inv.WindowID, state.TitlePatch(title))
		return dispatcher.Result{Info: "renamed to " + title, WindowsUpdated: true}, nil
	})
	r("windows:minimize-all", d.onDesktop(func() {
		d.store.MinimizeAllWindows()
		d.store.SetActiveWindow("")
	}))
	r("windows:restore-all", d.onDesktop(func() {
		d.store.RestoreAllWindows()
		d.focusTopmost()
	}))
	r("windows:close-all", d.onDesktop(d.store.CloseAllWindows))
	r("dock:restore", d.onWindow(func(id string) {
		d.store.RestoreWindowFromDock(id)
		d.store.BringToFront(id)
	}))
	r("dock:close", d.onWindow(func(id string) {
		d.unmount(id)
		d.store.CloseWindowFromDock(id)
		d.focusTopmost()
	}))

	r("desktop:about", func(context.Context, dispatcher.Invocation) (dispatcher.Result, error) {
		return dispatcher.Result{Info: fmt.Sprintf("webtop: %d windows, %d apps", d.store.WindowCount(), len(d.apps))}, nil
	})
	r("desktop:launch", func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		id, err := d.Launch(inv.Value, "")
		if err != nil {
			return dispatcher.Result{}, err
		}
		return dispatcher.Result{Info: "opened " + id, WindowsUpdated: true, MenusUpdated: true}, nil
	})
	r("menu:toggle-registry", func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		d.setRegistryEnabled(inv.Checked)
		status := "disabled"
		if inv.Checked {
			status = "enabled"
		}
		return dispatcher.Result{Info: "menu registry " + status, MenusUpdated: true}, nil
	})

	d.registerBrowserActions()
	d.registerCalculatorActions()
	d.registerEditorActions("editor")
	d.registerEditorActions("note")
	d.registerNoteActions()
}

func (d *Desktop) registerBrowserActions() {
	r := d.dispatch.Register
	r("browser:back", d.onApp(d.store.BrowserGoBack))
	r("browser:forward", d.onApp(d.store.BrowserGoForward))
	r("browser:reload", d.onApp(func(id string) { d.store.SetBrowserLoading(id, true) }))
	r("browser:home", d.onApp(func(id string) {
		if app, ok := d.apps[state.BrowserWindowType]; ok {
			d.store.NavigateBrowser(id, app.Home, "")
		}
	}))
	r("browser:open", func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		if _, ok := d.store.Window(inv.WindowID); !ok {
			return dispatcher.Result{}, nil
		}
		loc, err := ParseLocation(inv.Value, d.urlPolicy)
		if err != nil {
			d.store.SetBrowserError(inv.WindowID, err.Error())
			d.refreshMenus(inv.WindowID)
			return dispatcher.Result{WindowsUpdated: true}, fmt.Errorf("open %q: %w", inv.Value, err)
		}
		d.store.NavigateBrowser(inv.WindowID, loc.URL, "")
		d.refreshMenus(inv.WindowID)
		return dispatcher.Result{Info: "loading " + loc.URL, WindowsUpdated: true, MenusUpdated: true}, nil
	})
}

func (d *Desktop) registerCalculatorActions() {
	r := d.dispatch.Register
	r("calculator:input", func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		d.updateCalculator(inv.WindowID, func(c calculator) calculator { return c.press(inv.Value) })
		return dispatcher.Result{WindowsUpdated: true}, nil
	})
	r("calculator:clear", func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		d.updateCalculator(inv.WindowID, func(calculator) calculator { return calculator{Display: "0"} })
		return dispatcher.Result{WindowsUpdated: true}, nil
	})
	r("calculator:copy", func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		win, ok := d.store.Window(inv.WindowID)
		if !ok {
			return dispatcher.Result{}, nil
		}
		display := extraString(win, extraDisplay)
		if d.copyText == nil {
			return dispatcher.Result{Info: "result " + display}, nil
		}
		if err := d.copyText(display); err != nil {
			return dispatcher.Result{}, fmt.Errorf("copy result: %w", err)
		}
		return dispatcher.Result{Info: "copied " + display}, nil
	})
	memory := func(fn func(mem, display float64) (float64, string)) dispatcher.Handler {
		return func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
			win, ok := d.store.Window(inv.WindowID)
			if !ok {
				return dispatcher.Result{}, nil
			}
			calc := loadCalculator(win)
			mem, display := fn(extraFloat(win, extraMemory), calc.value())
			extra := map[string]any{extraMemory: mem}
			if display != "" {
				extra[extraDisplay] = display
				extra[extraFresh] = true
			}
			d.store.UpdateWindow(inv.WindowID, state.WindowPatch{Extra: extra})
			return dispatcher.Result{WindowsUpdated: true}, nil
		}
	}
	r("calculator:memory-add", memory(func(mem, v float64) (float64, string) { return mem + v, "" }))
	r("calculator:memory-subtract", memory(func(mem, v float64) (float64, string) { return mem - v, "" }))
	r("calculator:memory-recall", memory(func(mem, _ float64) (float64, string) { return mem, formatNumber(mem) }))
	r("calculator:memory-clear", memory(func(float64, float64) (float64, string) { return 0, "" }))
	r("calculator:memory-indicator", d.toggleExtra(extraMemoryIndicator))
	r("calculator:mode", func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		if inv.Value != "basic" && inv.Value != "scientific" {
			return dispatcher.Result{}, fmt.Errorf("calculator mode %q", inv.Value)
		}
		d.store.UpdateWindow(inv.WindowID, state.WindowPatch{Extra: map[string]any{extraMode: inv.Value}})
		d.refreshMenus(inv.WindowID)
		return dispatcher.Result{Info: inv.Value + " mode", WindowsUpdated: true, MenusUpdated: true}, nil
	})
}

// registerEditorActions binds the text actions shared by the text and note
// editors under the given prefix.
func (d *Desktop) registerEditorActions(prefix string) {
	r := d.dispatch.Register
	r(prefix+":input", d.editContent(func(content, key string) string {
		switch key {
		case "backspace":
			_, size := utf8.DecodeLastRuneInString(content)
			return content[:len(content)-size]
		case "enter":
			return content + "\n"
		case "space":
			return content + " "
		case "tab":
			return content + "\t"
		}
		return content + key
	}))
	r(prefix+":upper", d.editContent(func(content, _ string) string { return strings.ToUpper(content) }))
	r(prefix+":lower", d.editContent(func(content, _ string) string { return strings.ToLower(content) }))
	r(prefix+":new", d.resetContent())
	if prefix == "editor" {
		r("editor:clear", d.resetContent())
		r("editor:save", func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
			d.store.UpdateWindow(inv.WindowID, state.WindowPatch{Extra: map[string]any{extraModified: false}})
			d.refreshMenus(inv.WindowID)
			return dispatcher.Result{Info: "document saved", WindowsUpdated: true, MenusUpdated: true}, nil
		})
		r("editor:autosave", d.toggleExtra(extraAutoSave))
		r("editor:wrap", d.toggleExtra(extraWordWrap))
	}
}

func (d *Desktop) registerNoteActions() {
	r := d.dispatch.Register
	r("note:dark-theme", d.toggleExtra(extraDarkTheme))
	r("note:word-count", d.toggleExtra(extraWordCount))
	r("note:select-all", func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		win, ok := d.store.Window(inv.WindowID)
		if !ok {
			return dispatcher.Result{}, nil
		}
		return dispatcher.Result{Info: fmt.Sprintf("selected %d characters", utf8.RuneCountInString(extraString(win, extraContent)))}, nil
	})
	r("note:save", func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		win, ok := d.store.Window(inv.WindowID)
		if !ok {
			return dispatcher.Result{}, nil
		}
		stamp := d.now().Format("2006-01-02 15:04:05")
		snapshots, _ := win.Extra[extraSnapshots].(map[string]string)
		nextSnapshots := make(map[string]string, len(snapshots)+1)
		for k, v := range snapshots {
			nextSnapshots[k] = v
		}
		nextSnapshots[stamp] = extraString(win, extraContent)

		recent := append([]string{stamp}, removeString(extraStrings(win, extraRecent), stamp)...)
		if len(recent) > maxRecentDocuments {
			for _, old := range recent[maxRecentDocuments:] {
				delete(nextSnapshots, old)
			}
			recent = recent[:maxRecentDocuments]
		}
		d.store.UpdateWindow(inv.WindowID, state.WindowPatch{Extra: map[string]any{
			extraModified:  false,
			extraRecent:    recent,
			extraSnapshots: nextSnapshots,
		}})
		d.refreshMenus(inv.WindowID)
		return dispatcher.Result{Info: "saved " + stamp, WindowsUpdated: true, MenusUpdated: true}, nil
	})
	r("note:open", func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		win, ok := d.store.Window(inv.WindowID)
		if !ok {
			return dispatcher.Result{}, nil
		}
		snapshots, _ := win.Extra[extraSnapshots].(map[string]string)
		content, ok := snapshots[inv.Value]
		if !ok {
			return dispatcher.Result{}, fmt.Errorf("no saved document %q", inv.Value)
		}
		d.store.UpdateWindow(inv.WindowID, state.WindowPatch{Extra: map[string]any{extraContent: content, extraModified: false}})
		d.refreshMenus(inv.WindowID)
		return dispatcher.Result{Info: "opened " + inv.Value, WindowsUpdated: true, MenusUpdated: true}, nil
	})
}

// Input forwards a key typed into the window to its application, when the
// application accepts text.
func (d *Desktop) Input(ctx context.Context, id, key string) (dispatcher.Result, error) {
	win, ok := d.store.Window(id)
	if !ok {
		return dispatcher.Result{}, nil
	}
	action := win.Type + ":input"
	if !d.dispatch.Has(action) {
		return dispatcher.Result{}, nil
	}
	return d.Invoke(ctx, dispatcher.Invocation{Action: action, WindowID: id, Value: key})
}

// AcceptsInput reports whether the window's application handles typed keys.
func (d *Desktop) AcceptsInput(id string) bool {
	win, ok := d.store.Window(id)
	return ok && d.dispatch.Has(win.Type+":input")
}

func (d *Desktop) onWindow(fn func(id string)) dispatcher.Handler {
	return func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		if inv.WindowID == "" {
			return dispatcher.Result{}, nil
		}
		fn(inv.WindowID)
		return dispatcher.Result{WindowsUpdated: true, MenusUpdated: true}, nil
	}
}

func (d *Desktop) onDesktop(fn func()) dispatcher.Handler {
	return func(context.Context, dispatcher.Invocation) (dispatcher.Result, error) {
		fn()
		return dispatcher.Result{WindowsUpdated: true, MenusUpdated: true}, nil
	}
}

// onApp runs fn and re-renders the window's menus afterwards.
func (d *Desktop) onApp(fn func(id string)) dispatcher.Handler {
	return func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		if _, ok := d.store.Window(inv.WindowID); !ok {
			return dispatcher.Result{}, nil
		}
		fn(inv.WindowID)
		d.refreshMenus(inv.WindowID)
		return dispatcher.Result{WindowsUpdated: true, MenusUpdated: true}, nil
	}
}

// toggleExtra stores the checkbox value under key and re-renders the menus
// that display it.
func (d *Desktop) toggleExtra(key string) dispatcher.Handler {
	return func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		if _, ok := d.store.Window(inv.WindowID); !ok {
			return dispatcher.Result{}, nil
		}
		d.store.UpdateWindow(inv.WindowID, state.WindowPatch{Extra: map[string]any{key: inv.Checked}})
		d.refreshMenus(inv.WindowID)
		events.Action.Success(fmt.Sprintf("%s %s=%t", inv.Action, key, inv.Checked))
		return dispatcher.Result{WindowsUpdated: true, MenusUpdated: true}, nil
	}
}

func (d *Desktop) editContent(edit func(content, value string) string) dispatcher.Handler {
	return func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		win, ok := d.store.Window(inv.WindowID)
		if !ok {
			return dispatcher.Result{}, nil
		}
		before := extraString(win, extraContent)
		after := edit(before, inv.Value)
		if after == before {
			return dispatcher.Result{}, nil
		}
		modified := !extraBool(win, extraAutoSave)
		d.store.UpdateWindow(inv.WindowID, state.WindowPatch{Extra: map[string]any{extraContent: after, extraModified: modified}})
		if modified != extraBool(win, extraModified) {
			d.refreshMenus(inv.WindowID)
		}
		return dispatcher.Result{WindowsUpdated: true, MenusUpdated: true}, nil
	}
}

func (d *Desktop) resetContent() dispatcher.Handler {
	return func(_ context.Context, inv dispatcher.Invocation) (dispatcher.Result, error) {
		if _, ok := d.store.Window(inv.WindowID); !ok {
			return dispatcher.Result{}, nil
		}
		d.store.UpdateWindow(inv.WindowID, state.WindowPatch{Extra: map[string]any{extraContent: "", extraModified: false}})
		d.refreshMenus(inv.WindowID)
		return dispatcher.Result{WindowsUpdated: true, MenusUpdated: true}, nil
	}
}

func (d *Desktop) updateCalculator(id string, fn func(calculator) calculator) {
	win, ok := d.store.Window(id)
	if !ok {
		return
	}
	next := fn(loadCalculator(win))
	d.store.UpdateWindow(id, state.WindowPatch{Extra: map[string]any{
		extraDisplay: next.Display,
		extraAcc:     next.Acc,
		extraOp:      next.Op,
		extraFresh:   next.Fresh,
	}})
}

func loadCalculator(win state.Window) calculator {
	return calculator{
		Display: extraString(win, extraDisplay),
		Acc:     extraFloat(win, extraAcc),
		Op:      extraString(win, extraOp),
		Fresh:   extraBool(win, extraFresh),
	}
}

func removeString(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
