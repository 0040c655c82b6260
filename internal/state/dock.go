package state

import "github.com/atomicstack/webtop/internal/logging/events"

// AddWindowToDock enlists a live window in the dock list.
func (s *WindowStore) AddWindowToDock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.windows[id]; !ok {
		return
	}
	if s.enlistLocked(id) {
		events.Dock.Add(id)
	}
}

// RemoveWindowFromDock drops the id from the dock list without touching state.
func (s *WindowStore) RemoveWindowFromDock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delistLocked(id) {
		events.Dock.Remove(id)
	}
}

// RestoreWindowFromDock opens the window and removes it from the dock in one
// step. Closed windows stay closed.
func (s *WindowStore) RestoreWindowFromDock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	win, ok := s.windows[id]
	if !ok || win.State == WindowClosed {
		return
	}
	s.setStateLocked(win, WindowOpen)
	win.UpdatedAt = s.now()
	events.Dock.Restore(id)
}

// CloseWindowFromDock removes the window entirely.
func (s *WindowStore) CloseWindowFromDock(id string) {
	events.Dock.Close(id)
	s.RemoveWindow(id)
}

// DockItems returns the docked windows that are still minimized, in dock order.
func (s *WindowStore) DockItems() []Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Window, 0, len(s.dock))
	for _, id := range s.dock {
		win, ok := s.windows[id]
		if !ok || win.State != WindowMinimized {
			continue
		}
		out = append(out, win.clone())
	}
	return out
}

func (s *WindowStore) enlistLocked(id string) bool {
	for _, existing := range s.dock {
		if existing == id {
			return false
		}
	}
	s.dock = append(s.dock, id)
	return true
}

func (s *WindowStore) delistLocked(id string) bool {
	for i, existing := range s.dock {
		if existing == id {
			s.dock = append(s.dock[:i], s.dock[i+1:]...)
			return true
		}
	}
	return false
}
