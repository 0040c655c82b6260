package state

import "testing"

func TestMinimizeEnlistsInDock(t *testing.T) {
	s := newTestStore()
	a := s.AddWindow(WindowSpec{})
	b := s.AddWindow(WindowSpec{})
	s.MinimizeWindow(b)
	s.UpdateWindow(a, StatePatch(WindowMinimized))

	got := ids(s.DockItems())
	if len(got) != 2 || got[0] != b || got[1] != a {
		t.Fatalf("expected dock order [%s %s], got %v", b, a, got)
	}
}

func TestDockItemsFollowState(t *testing.T) {
	s := newTestStore()
	id := s.AddWindow(WindowSpec{})
	s.AddWindowToDock(id)
	if n := len(s.DockItems()); n != 0 {
		t.Fatalf("expected open window hidden from dock, got %d", n)
	}
	s.MinimizeWindow(id)
	if n := len(s.DockItems()); n != 1 {
		t.Fatalf("expected minimized window in dock, got %d", n)
	}
	s.RemoveWindowFromDock(id)
	if n := len(s.DockItems()); n != 0 {
		t.Fatalf("expected dock entry removed, got %d", n)
	}
	if win, _ := s.Window(id); win.State != WindowMinimized {
		t.Fatalf("expected state untouched by dock removal, got %s", win.State)
	}
}

func TestRestoreWindowFromDock(t *testing.T) {
	s := newTestStore()
	id := s.AddWindow(WindowSpec{State: WindowMinimized})
	if n := len(s.DockItems()); n != 1 {
		t.Fatalf("expected window created minimized to be docked, got %d", n)
	}
	s.RestoreWindowFromDock(id)
	if win, _ := s.Window(id); win.State != WindowOpen {
		t.Fatalf("expected open, got %s", win.State)
	}
	if n := len(s.DockItems()); n != 0 {
		t.Fatalf("expected empty dock, got %d", n)
	}
	s.MinimizeWindow(id)
	if n := len(s.DockItems()); n != 1 {
		t.Fatalf("expected re-minimized window back in dock, got %d", n)
	}
}

func TestCloseWindowFromDockRemovesWindow(t *testing.T) {
	s := newTestStore()
	id := s.AddWindow(WindowSpec{State: WindowMinimized})
	s.CloseWindowFromDock(id)
	if _, ok := s.Window(id); ok {
		t.Fatalf("expected window removed")
	}
	if n := len(s.DockItems()); n != 0 {
		t.Fatalf("expected empty dock, got %d", n)
	}
}

func TestLeavingMinimizedDelistsFromDock(t *testing.T) {
	s := newTestStore()
	a := s.AddWindow(WindowSpec{})
	b := s.AddWindow(WindowSpec{})
	s.MinimizeWindow(a)
	s.MinimizeWindow(b)
	s.RestoreWindow(a)
	s.MinimizeWindow(a)

	got := ids(s.DockItems())
	if len(got) != 2 || got[0] != b || got[1] != a {
		t.Fatalf("expected dock order [%s %s] after restore, got %v", b, a, got)
	}

	s.ToggleMaximized(b)
	s.MinimizeWindow(b)
	got = ids(s.DockItems())
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("expected dock order [%s %s] after maximize, got %v", a, b, got)
	}
}

func TestRestoreWindowFromDockLeavesClosedWindows(t *testing.T) {
	s := newTestStore()
	id := s.AddWindow(WindowSpec{State: WindowMinimized})
	s.CloseAllWindows()
	s.RestoreWindowFromDock(id)
	if win, _ := s.Window(id); win.State != WindowClosed {
		t.Fatalf("expected closed window to stay closed, got %s", win.State)
	}
	if n := len(s.DockItems()); n != 0 {
		t.Fatalf("expected empty dock, got %d", n)
	}
}
