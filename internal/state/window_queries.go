package state

import "sort"

// Window returns a copy of the entity with the given id.
func (s *WindowStore) Window(id string) (Window, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	win, ok := s.windows[id]
	if !ok {
		return Window{}, false
	}
	return win.clone(), true
}

// Windows returns every live entity in creation order.
func (s *WindowStore) Windows() []Window {
	return s.filter(func(*Window) bool { return true })
}

// WindowsByType returns the entities tagged with typ.
func (s *WindowStore) WindowsByType(typ string) []Window {
	return s.filter(func(w *Window) bool { return w.Type == typ })
}

// WindowsByState returns the entities currently in st.
func (s *WindowStore) WindowsByState(st WindowState) []Window {
	return s.filter(func(w *Window) bool { return w.State == st })
}

// OpenWindows returns the entities in the open state.
func (s *WindowStore) OpenWindows() []Window {
	return s.WindowsByState(WindowOpen)
}

// MinimizedWindows returns the entities in the minimized state.
func (s *WindowStore) MinimizedWindows() []Window {
	return s.WindowsByState(WindowMinimized)
}

// BrowserWindows returns the entities tagged as browsers.
func (s *WindowStore) BrowserWindows() []Window {
	return s.WindowsByType(BrowserWindowType)
}

// ActiveWindowID returns the active pointer, which may be empty.
func (s *WindowStore) ActiveWindowID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// ActiveWindow returns the active entity when the pointer references a live window.
func (s *WindowStore) ActiveWindow() (Window, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeID == "" {
		return Window{}, false
	}
	win, ok := s.windows[s.activeID]
	if !ok {
		return Window{}, false
	}
	return win.clone(), true
}

// WindowCount returns the number of live entities.
func (s *WindowStore) WindowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.windows)
}

// StackOrder returns the entities sorted bottom to top by z-index.
func (s *WindowStore) StackOrder() []Window {
	out := s.Windows()
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// Stats summarises the store contents.
type Stats struct {
	Total     int
	Open      int
	Minimized int
	Maximized int
	Closed    int
	ByType    map[string]int
}

// Stats computes per-state and per-type counts.
func (s *WindowStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Total: len(s.windows), ByType: make(map[string]int)}
	for _, win := range s.windows {
		switch win.State {
		case WindowOpen:
			st.Open++
		case WindowMinimized:
			st.Minimized++
		case WindowMaximized:
			st.Maximized++
		case WindowClosed:
			st.Closed++
		}
		st.ByType[win.Type]++
	}
	return st
}

func (s *WindowStore) filter(keep func(*Window) bool) []Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Window, 0, len(s.windows))
	for _, win := range s.sortedLocked() {
		if keep(win) {
			out = append(out, win.clone())
		}
	}
	return out
}

// sortedLocked returns the live entities in creation order. Callers hold s.mu.
func (s *WindowStore) sortedLocked() []*Window {
	wins := make([]*Window, 0, len(s.windows))
	for _, win := range s.windows {
		wins = append(wins, win)
	}
	sort.Slice(wins, func(i, j int) bool { return wins[i].seq < wins[j].seq })
	return wins
}

// LoadingBrowsers returns the ids of browser windows whose page is still
// loading, in creation order.
func (s *WindowStore) LoadingBrowsers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for _, win := range s.sortedLocked() {
		if win.Browser != nil && win.Browser.Loading {
			ids = append(ids, win.ID)
		}
	}
	return ids
}
