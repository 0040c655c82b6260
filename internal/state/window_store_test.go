package state

import (
	"fmt"
	"testing"
	"time"
)

func newTestStore() *WindowStore {
	n := 0
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	return NewWindowStore(
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("w%d", n)
		}),
		WithClock(func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		}),
	)
}

func ids(wins []Window) []string {
	out := make([]string, len(wins))
	for i, w := range wins {
		out[i] = w.ID
	}
	return out
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func TestWindowLifecycleScenario(t *testing.T) {
	s := newTestStore()
	before := s.WindowCount()

	id := s.AddWindow(WindowSpec{Title: "Calc", Type: "calculator"})
	win, ok := s.Window(id)
	if !ok {
		t.Fatalf("expected window %s to exist", id)
	}
	if win.State != WindowOpen || win.ZIndex != 100 {
		t.Fatalf("expected open window at z 100, got %s at %d", win.State, win.ZIndex)
	}
	if !win.CreatedAt.Equal(win.UpdatedAt) {
		t.Fatalf("expected createdAt == updatedAt, got %v and %v", win.CreatedAt, win.UpdatedAt)
	}

	s.BringToFront(id)
	win, _ = s.Window(id)
	if win.ZIndex != 101 {
		t.Fatalf("expected z 101 after bringToFront, got %d", win.ZIndex)
	}
	if s.ActiveWindowID() != id {
		t.Fatalf("expected %s active, got %q", id, s.ActiveWindowID())
	}

	s.UpdateWindow(id, StatePatch(WindowMinimized))
	if !contains(ids(s.MinimizedWindows()), id) {
		t.Fatalf("expected %s among minimized windows", id)
	}

	s.RemoveWindow(id)
	if got := s.WindowCount(); got != before {
		t.Fatalf("expected count %d after removal, got %d", before, got)
	}
}

func TestAddWindowDefaults(t *testing.T) {
	s := newTestStore()
	first := s.AddWindow(WindowSpec{})
	second := s.AddWindow(WindowSpec{State: "bogus"})
	a, _ := s.Window(first)
	b, _ := s.Window(second)
	if a.Title != "Window 1" || b.Title != "Window 2" {
		t.Fatalf("unexpected default titles %q, %q", a.Title, b.Title)
	}
	if a.Type != DefaultWindowType {
		t.Fatalf("expected default type, got %q", a.Type)
	}
	if b.State != WindowOpen {
		t.Fatalf("expected invalid state to fall back to open, got %q", b.State)
	}
	if s.ActiveWindowID() != second {
		t.Fatalf("expected newest window active, got %q", s.ActiveWindowID())
	}
}

func TestAddWindowUsesUUIDsByDefault(t *testing.T) {
	s := NewWindowStore()
	a := s.AddWindow(WindowSpec{})
	b := s.AddWindow(WindowSpec{})
	if a == b || len(a) != 36 {
		t.Fatalf("expected distinct uuid ids, got %q and %q", a, b)
	}
}

func TestZOrderMonotonicity(t *testing.T) {
	s := newTestStore()
	var created []string
	for i := 0; i < 4; i++ {
		created = append(created, s.AddWindow(WindowSpec{}))
	}
	touch := []string{created[1], created[3], created[0], created[0], created[2]}
	for _, id := range touch {
		s.BringToFront(id)
		top, _ := s.Window(id)
		for _, other := range s.Windows() {
			if other.ID != id && other.ZIndex >= top.ZIndex {
				t.Fatalf("expected %s (z %d) above %s (z %d)", id, top.ZIndex, other.ID, other.ZIndex)
			}
		}
	}
	order := ids(s.StackOrder())
	if order[len(order)-1] != created[2] {
		t.Fatalf("expected %s on top, got %v", created[2], order)
	}
}

func TestActiveWindowConsistency(t *testing.T) {
	s := newTestStore()
	a := s.AddWindow(WindowSpec{})
	b := s.AddWindow(WindowSpec{})
	if win, ok := s.ActiveWindow(); !ok || win.ID != b {
		t.Fatalf("expected %s active, got %#v", b, win)
	}
	s.RemoveWindow(a)
	if s.ActiveWindowID() != b {
		t.Fatalf("expected removing inactive window to keep %s active", b)
	}
	s.RemoveWindow(b)
	if s.ActiveWindowID() != "" {
		t.Fatalf("expected active pointer cleared, got %q", s.ActiveWindowID())
	}
	if _, ok := s.ActiveWindow(); ok {
		t.Fatalf("expected no active window")
	}

	s.SetActiveWindow("ghost")
	if _, ok := s.ActiveWindow(); ok {
		t.Fatalf("expected dangling active pointer to resolve to nothing")
	}
	s.SetActiveWindow("")
	if s.ActiveWindowID() != "" {
		t.Fatalf("expected empty id to unset active pointer")
	}
}

func TestCloseIsDelete(t *testing.T) {
	s := newTestStore()
	id := s.AddWindow(WindowSpec{Type: BrowserWindowType})
	s.MinimizeWindow(id)
	s.RemoveWindow(id)
	if _, ok := s.Window(id); ok {
		t.Fatalf("expected %s to be gone", id)
	}
	lists := map[string][]Window{
		"open":      s.OpenWindows(),
		"minimized": s.MinimizedWindows(),
		"dock":      s.DockItems(),
		"browsers":  s.BrowserWindows(),
		"all":       s.Windows(),
	}
	for name, list := range lists {
		if contains(ids(list), id) {
			t.Fatalf("expected %s absent from %s list", id, name)
		}
	}
}

func TestBulkRestoreLeavesClosedWindowsClosed(t *testing.T) {
	s := newTestStore()
	open := s.AddWindow(WindowSpec{})
	maxed := s.AddWindow(WindowSpec{State: WindowMaximized})
	closed := s.AddWindow(WindowSpec{})
	s.UpdateWindow(closed, StatePatch(WindowClosed))

	s.MinimizeAllWindows()
	for _, id := range []string{open, maxed} {
		if win, _ := s.Window(id); win.State != WindowMinimized {
			t.Fatalf("expected %s minimized, got %s", id, win.State)
		}
	}
	s.RestoreAllWindows()
	for _, id := range []string{open, maxed} {
		if win, _ := s.Window(id); win.State != WindowOpen {
			t.Fatalf("expected %s open, got %s", id, win.State)
		}
	}
	if win, _ := s.Window(closed); win.State != WindowClosed {
		t.Fatalf("expected %s to stay closed, got %s", closed, win.State)
	}
}

func TestCloseAllWindowsMarksClosed(t *testing.T) {
	s := newTestStore()
	a := s.AddWindow(WindowSpec{})
	b := s.AddWindow(WindowSpec{State: WindowMinimized})
	s.CloseAllWindows()
	if s.ActiveWindowID() != "" {
		t.Fatalf("expected active pointer cleared")
	}
	for _, id := range []string{a, b} {
		if win, _ := s.Window(id); win.State != WindowClosed {
			t.Fatalf("expected %s closed, got %s", id, win.State)
		}
	}
	if n := len(s.DockItems()); n != 0 {
		t.Fatalf("expected closed windows to leave the dock view, got %d", n)
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	s := newTestStore()
	id := s.AddWindow(WindowSpec{})
	before, _ := s.Window(id)

	s.RemoveWindow("missing")
	s.UpdateWindow("missing", TitlePatch("x"))
	s.SetWindowPosition("missing", Position{X: 1})
	s.SetWindowSize("missing", Size{Width: 1})
	s.BringToFront("missing")
	s.RestoreWindowFromDock("missing")
	s.CloseWindowFromDock("missing")
	s.AddWindowToDock("missing")
	s.NavigateBrowser("missing", "https://example.com", "")

	after, _ := s.Window(id)
	if s.WindowCount() != 1 || after.ZIndex != before.ZIndex || !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("expected store untouched, got %#v", after)
	}
	if s.ActiveWindowID() != id {
		t.Fatalf("expected active pointer untouched")
	}
	if n := len(s.DockItems()); n != 0 {
		t.Fatalf("expected no dock entries, got %d", n)
	}
}

func TestUpdateWindowMergesPatch(t *testing.T) {
	s := newTestStore()
	id := s.AddWindow(WindowSpec{Title: "Old", Extra: map[string]any{"mode": "basic"}})
	before, _ := s.Window(id)

	s.UpdateWindow(id, WindowPatch{Extra: map[string]any{"wrap": true}})
	s.SetWindowPosition(id, Position{X: 4, Y: 2})
	s.SetWindowSize(id, Size{Width: 40, Height: 10})
	s.UpdateWindow(id, TitlePatch("New"))

	win, _ := s.Window(id)
	if win.Title != "New" || win.Position == nil || win.Position.X != 4 || win.Size == nil || win.Size.Width != 40 {
		t.Fatalf("unexpected window after patches %#v", win)
	}
	if win.Extra["mode"] != "basic" || win.Extra["wrap"] != true {
		t.Fatalf("expected merged extra map, got %#v", win.Extra)
	}
	if !win.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("expected updatedAt to advance")
	}
}

func TestQueriesReturnCopies(t *testing.T) {
	s := newTestStore()
	id := s.AddWindow(WindowSpec{Position: &Position{X: 1, Y: 1}})
	win, _ := s.Window(id)
	win.Position.X = 99
	win.Title = "mutated"
	again, _ := s.Window(id)
	if again.Position.X != 1 || again.Title == "mutated" {
		t.Fatalf("expected store to be isolated from caller mutation, got %#v", again)
	}
}

func TestQueriesFilterByTypeAndState(t *testing.T) {
	s := newTestStore()
	calc := s.AddWindow(WindowSpec{Type: "calculator"})
	browser := s.AddWindow(WindowSpec{Type: BrowserWindowType})
	s.AddWindow(WindowSpec{Type: "calculator", State: WindowMaximized})

	if got := ids(s.WindowsByType("calculator")); len(got) != 2 || got[0] != calc {
		t.Fatalf("unexpected calculator windows %v", got)
	}
	if got := ids(s.BrowserWindows()); len(got) != 1 || got[0] != browser {
		t.Fatalf("unexpected browser windows %v", got)
	}
	if got := s.WindowsByState(WindowMaximized); len(got) != 1 {
		t.Fatalf("expected one maximized window, got %d", len(got))
	}
	if got := s.OpenWindows(); len(got) != 2 {
		t.Fatalf("expected two open windows, got %d", len(got))
	}
}

func TestToggleMaximizedAndRestore(t *testing.T) {
	s := newTestStore()
	id := s.AddWindow(WindowSpec{})
	s.ToggleMaximized(id)
	if win, _ := s.Window(id); win.State != WindowMaximized {
		t.Fatalf("expected maximized, got %s", win.State)
	}
	s.ToggleMaximized(id)
	if win, _ := s.Window(id); win.State != WindowOpen {
		t.Fatalf("expected open, got %s", win.State)
	}
	s.MinimizeWindow(id)
	s.RestoreWindow(id)
	if win, _ := s.Window(id); win.State != WindowOpen {
		t.Fatalf("expected restore to open, got %s", win.State)
	}
	s.UpdateWindow(id, StatePatch(WindowClosed))
	s.ToggleMaximized(id)
	s.RestoreWindow(id)
	if win, _ := s.Window(id); win.State != WindowClosed {
		t.Fatalf("expected closed window untouched, got %s", win.State)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore()
	s.AddWindow(WindowSpec{Type: "calculator"})
	s.AddWindow(WindowSpec{Type: "calculator", State: WindowMinimized})
	s.AddWindow(WindowSpec{Type: BrowserWindowType, State: WindowMaximized})
	st := s.Stats()
	if st.Total != 3 || st.Open != 1 || st.Minimized != 1 || st.Maximized != 1 || st.Closed != 0 {
		t.Fatalf("unexpected stats %#v", st)
	}
	if st.ByType["calculator"] != 2 || st.ByType[BrowserWindowType] != 1 {
		t.Fatalf("unexpected per-type stats %#v", st.ByType)
	}
}

type counter struct{ n *int }

func (c counter) Clone() any {
	n := *c.n
	return counter{n: &n}
}

func TestExtraIsDeepCopied(t *testing.T) {
	s := newTestStore()
	recent := []string{"a"}
	snap := map[string]string{"k": "v"}
	id := s.AddWindow(WindowSpec{Extra: map[string]any{"recent": recent, "snap": snap}})
	recent[0] = "spec"
	snap["k"] = "spec"

	win, _ := s.Window(id)
	win.Extra["recent"].([]string)[0] = "copy"
	win.Extra["snap"].(map[string]string)["k"] = "copy"

	win, _ = s.Window(id)
	if got := win.Extra["recent"].([]string)[0]; got != "a" {
		t.Fatalf("expected stored slice untouched, got %q", got)
	}
	if got := win.Extra["snap"].(map[string]string)["k"]; got != "v" {
		t.Fatalf("expected stored map untouched, got %q", got)
	}

	n := 1
	nested := map[string]any{"tags": []any{"x", []string{"y"}}}
	s.UpdateWindow(id, WindowPatch{Extra: map[string]any{"nested": nested, "count": counter{n: &n}}})
	nested["tags"].([]any)[1].([]string)[0] = "patch"
	n = 2

	win, _ = s.Window(id)
	tags := win.Extra["nested"].(map[string]any)["tags"].([]any)
	if got := tags[1].([]string)[0]; got != "y" {
		t.Fatalf("expected patched nested slice untouched, got %q", got)
	}
	if got := *win.Extra["count"].(counter).n; got != 1 {
		t.Fatalf("expected cloned counter to keep 1, got %d", got)
	}
	if got := win.Extra["recent"].([]string)[0]; got != "a" {
		t.Fatalf("expected merge to keep existing keys, got %q", got)
	}
}
