package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/webtop/internal/desktop"
	"github.com/atomicstack/webtop/internal/state"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestDesktop(t *testing.T) *desktop.Desktop {
	t.Helper()
	n := 0
	clock := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return desktop.New(desktop.Config{
		DefaultMenu:     desktop.DefaultMenu(),
		RegistryEnabled: true,
		IDGenerator: func() string {
			n++
			return fmt.Sprintf("w%d", n)
		},
		Clock: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	})
}

func newTestHarness(t *testing.T, apps ...string) (*Harness, []string) {
	t.Helper()
	d := newTestDesktop(t)
	ids := make([]string, 0, len(apps))
	for _, app := range apps {
		id, err := d.Launch(app, "")
		if err != nil {
			t.Fatalf("launch %s: %v", app, err)
		}
		ids = append(ids, id)
	}
	return NewHarness(NewModel(Options{Desktop: d, Width: 100, Height: 30})), ids
}

func mustWindow(t *testing.T, h *Harness, id string) state.Window {
	t.Helper()
	win, ok := h.Model().Desktop().Store().Window(id)
	if !ok {
		t.Fatalf("expected window %s to exist", id)
	}
	return win
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(Options{})
	if m.Desktop() == nil {
		t.Fatalf("expected a default desktop")
	}
	if m.width != 80 || m.height != 24 {
		t.Fatalf("expected 80x24, got %dx%d", m.width, m.height)
	}
	if m.Mode() != ModeDesktop {
		t.Fatalf("expected desktop mode, got %v", m.Mode())
	}
}

func TestWindowSizeIgnoredWhenFixed(t *testing.T) {
	h, _ := newTestHarness(t)
	h.Send(tea.WindowSizeMsg{Width: 40, Height: 10})
	if h.Model().width != 100 || h.Model().height != 30 {
		t.Fatalf("expected fixed 100x30, got %dx%d", h.Model().width, h.Model().height)
	}

	free := NewHarness(NewModel(Options{Desktop: newTestDesktop(t)}))
	free.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	if free.Model().width != 120 || free.Model().height != 40 {
		t.Fatalf("expected 120x40, got %dx%d", free.Model().width, free.Model().height)
	}
}

func TestNewWindowKeyLaunchesBasicWindow(t *testing.T) {
	h, _ := newTestHarness(t)
	h.Press("n")
	store := h.Model().Desktop().Store()
	if store.WindowCount() != 1 {
		t.Fatalf("expected 1 window, got %d", store.WindowCount())
	}
	win, ok := store.ActiveWindow()
	if !ok || win.Type != state.DefaultWindowType {
		t.Fatalf("expected active basic window, got %+v", win)
	}
}

func TestDigitKeysLaunchApps(t *testing.T) {
	h, _ := newTestHarness(t)
	h.Press("1", "4")
	store := h.Model().Desktop().Store()
	if got := len(store.WindowsByType("calculator")); got != 1 {
		t.Fatalf("expected 1 calculator, got %d", got)
	}
	if got := len(store.BrowserWindows()); got != 1 {
		t.Fatalf("expected 1 browser, got %d", got)
	}
}

func TestCycleFocusRaisesBottomWindow(t *testing.T) {
	h, ids := newTestHarness(t, "basic", "basic", "basic")
	store := h.Model().Desktop().Store()
	if store.ActiveWindowID() != ids[2] {
		t.Fatalf("expected %s active, got %s", ids[2], store.ActiveWindowID())
	}
	h.Press("tab")
	if store.ActiveWindowID() != ids[0] {
		t.Fatalf("expected %s active after tab, got %s", ids[0], store.ActiveWindowID())
	}
	h.Press("shift+tab")
	if store.ActiveWindowID() != ids[2] {
		t.Fatalf("expected %s active after shift+tab, got %s", ids[2], store.ActiveWindowID())
	}
}

func TestMinimizeAndDockRestore(t *testing.T) {
	h, ids := newTestHarness(t, "basic")
	h.Press("m")
	store := h.Model().Desktop().Store()
	if win := mustWindow(t, h, ids[0]); win.State != state.WindowMinimized {
		t.Fatalf("expected minimized, got %s", win.State)
	}
	if len(store.DockItems()) != 1 {
		t.Fatalf("expected 1 dock item, got %d", len(store.DockItems()))
	}
	if label := dockLabel(mustWindow(t, h, ids[0])); !strings.Contains(h.View(), label) {
		t.Fatalf("expected dock to list %q, got:\n%s", label, h.View())
	}

	h.Press("b")
	if h.Model().Mode() != ModeDock {
		t.Fatalf("expected dock mode, got %v", h.Model().Mode())
	}
	h.Press("enter")
	if win := mustWindow(t, h, ids[0]); win.State != state.WindowOpen {
		t.Fatalf("expected open after restore, got %s", win.State)
	}
	if len(store.DockItems()) != 0 {
		t.Fatalf("expected empty dock, got %d", len(store.DockItems()))
	}
	if h.Model().Mode() != ModeDesktop {
		t.Fatalf("expected desktop mode once the dock empties, got %v", h.Model().Mode())
	}
}

func TestDockOnEmptyDesktopShowsInfo(t *testing.T) {
	h, _ := newTestHarness(t)
	h.Press("b")
	if h.Model().Mode() != ModeDesktop {
		t.Fatalf("expected desktop mode, got %v", h.Model().Mode())
	}
	if h.Model().infoMsg != "dock is empty" {
		t.Fatalf("expected dock info, got %q", h.Model().infoMsg)
	}
}

func TestCloseKeyRemovesWindowAndRefocuses(t *testing.T) {
	h, ids := newTestHarness(t, "basic", "editor")
	h.Press("w")
	store := h.Model().Desktop().Store()
	if _, ok := store.Window(ids[1]); ok {
		t.Fatalf("expected %s to be removed", ids[1])
	}
	if store.ActiveWindowID() != ids[0] {
		t.Fatalf("expected focus to fall back to %s, got %s", ids[0], store.ActiveWindowID())
	}
}

func TestInputModeTypesIntoCalculator(t *testing.T) {
	h, ids := newTestHarness(t, "calculator")
	h.Press("i")
	if h.Model().Mode() != ModeInput {
		t.Fatalf("expected input mode, got %v", h.Model().Mode())
	}
	h.Type("12+3=")
	win := mustWindow(t, h, ids[0])
	if got := win.Extra["display"]; got != "15" {
		t.Fatalf("expected display 15, got %v", got)
	}
	h.Press("esc")
	if h.Model().Mode() != ModeDesktop {
		t.Fatalf("expected desktop mode after esc, got %v", h.Model().Mode())
	}
}

func TestInputModeRefusedForBasicWindow(t *testing.T) {
	h, _ := newTestHarness(t, "basic")
	h.Press("i")
	if h.Model().Mode() != ModeDesktop {
		t.Fatalf("expected desktop mode, got %v", h.Model().Mode())
	}
	if !strings.Contains(h.Model().infoMsg, "does not take typing") {
		t.Fatalf("expected refusal info, got %q", h.Model().infoMsg)
	}
}

func TestActionErrorShownInStatus(t *testing.T) {
	h, _ := newTestHarness(t)
	h.Send(errorResult("boom"))
	if h.Model().errMsg != "boom" {
		t.Fatalf("expected error recorded, got %q", h.Model().errMsg)
	}
	if !strings.Contains(h.View(), "boom") {
		t.Fatalf("expected error in view, got:\n%s", h.View())
	}
}
