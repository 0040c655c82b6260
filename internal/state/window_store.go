package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/webtop/internal/logging/events"
	"github.com/google/uuid"
)

// DefaultInitialZIndex is the first z-index handed out by a new store.
const DefaultInitialZIndex = 100

// WindowStore is the single source of truth for window entities in one
// desktop session. All mutations are last-writer-wins; operations on unknown
// ids are silent no-ops.
type WindowStore struct {
	mu         sync.RWMutex
	windows    map[string]*Window
	activeID   string
	nextZIndex int
	created    int
	dock       []string

	now   func() time.Time
	newID func() string
}

// StoreOption customises a WindowStore at construction time.
type StoreOption func(*WindowStore)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *WindowStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides window id generation.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *WindowStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithInitialZIndex sets the first z-index value.
func WithInitialZIndex(z int) StoreOption {
	return func(s *WindowStore) {
		s.nextZIndex = z
	}
}

// NewWindowStore creates an empty store.
func NewWindowStore(opts ...StoreOption) *WindowStore {
	s := &WindowStore{
		windows:    make(map[string]*Window),
		nextZIndex: DefaultInitialZIndex,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddWindow creates a new entity, places it on top of the stack and makes it
// the active window. It always succeeds.
func (s *WindowStore) AddWindow(spec WindowSpec) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.created++
	id := s.newID()
	for _, exists := s.windows[id]; exists || id == ""; _, exists = s.windows[id] {
		id = s.newID()
	}
	now := s.now()
	win := &Window{
		ID:        id,
		Title:     spec.Title,
		Type:      spec.Type,
		State:     spec.State,
		ZIndex:    s.nextZIndex,
		CreatedAt: now,
		UpdatedAt: now,
		seq:       s.created,
	}
	if win.Title == "" {
		win.Title = fmt.Sprintf("Window %d", s.created)
	}
	if win.Type == "" {
		win.Type = DefaultWindowType
	}
	if !win.State.Valid() {
		win.State = WindowOpen
	}
	if spec.Position != nil {
		p := *spec.Position
		win.Position = &p
	}
	if spec.Size != nil {
		sz := *spec.Size
		win.Size = &sz
	}
	win.Browser = spec.Browser.clone()
	if len(spec.Extra) > 0 {
		win.Extra = cloneExtra(spec.Extra)
	}
	s.nextZIndex++
	s.windows[id] = win
	s.activeID = id
	if win.State == WindowMinimized {
		s.enlistLocked(id)
	}
	events.Window.Add(id, win.Type, win.Title, win.ZIndex)
	return id
}

// RemoveWindow deletes the entity. Closing and removal are the same
// operation; the id also leaves the dock and the active pointer.
func (s *WindowStore) RemoveWindow(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.windows[id]; !ok {
		return
	}
	delete(s.windows, id)
	s.delistLocked(id)
	if s.activeID == id {
		s.activeID = ""
	}
	events.Window.Remove(id)
}

// UpdateWindow shallow-merges patch into the entity and refreshes UpdatedAt.
func (s *WindowStore) UpdateWindow(id string, patch WindowPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	win, ok := s.windows[id]
	if !ok {
		return
	}
	fields := make([]string, 0, 4)
	if patch.Title != nil {
		win.Title = *patch.Title
		fields = append(fields, "title")
	}
	if patch.Type != nil {
		win.Type = *patch.Type
		fields = append(fields, "type")
	}
	if patch.State != nil && patch.State.Valid() {
		s.setStateLocked(win, *patch.State)
		fields = append(fields, "state")
	}
	if patch.Position != nil {
		p := *patch.Position
		win.Position = &p
		fields = append(fields, "position")
	}
	if patch.Size != nil {
		sz := *patch.Size
		win.Size = &sz
		fields = append(fields, "size")
	}
	if patch.Browser != nil {
		win.Browser = patch.Browser.clone()
		fields = append(fields, "browser")
	}
	if len(patch.Extra) > 0 {
		if win.Extra == nil {
			win.Extra = make(map[string]any, len(patch.Extra))
		}
		for k, v := range patch.Extra {
			win.Extra[k] = cloneValue(v)
		}
		fields = append(fields, "extra")
	}
	win.UpdatedAt = s.now()
	events.Window.Update(id, fields)
}

// SetWindowPosition records a committed position, typically at drag end.
func (s *WindowStore) SetWindowPosition(id string, pos Position) {
	s.UpdateWindow(id, WindowPatch{Position: &pos})
}

// SetWindowSize records a new window size.
func (s *WindowStore) SetWindowSize(id string, size Size) {
	s.UpdateWindow(id, WindowPatch{Size: &size})
}

// BringToFront moves the window to the top of the stack and activates it.
func (s *WindowStore) BringToFront(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	win, ok := s.windows[id]
	if !ok {
		return
	}
	win.ZIndex = s.nextZIndex
	win.UpdatedAt = s.now()
	s.nextZIndex++
	s.activeID = id
	events.Window.Front(id, win.ZIndex)
}

// MinimizeWindow transitions the window to minimized and enlists it in the dock.
func (s *WindowStore) MinimizeWindow(id string) {
	s.UpdateWindow(id, StatePatch(WindowMinimized))
}

// RestoreWindow transitions a minimized or maximized window back to open.
func (s *WindowStore) RestoreWindow(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	win, ok := s.windows[id]
	if !ok || win.State == WindowClosed || win.State == WindowOpen {
		return
	}
	s.setStateLocked(win, WindowOpen)
	win.UpdatedAt = s.now()
	events.Window.Update(id, []string{"state"})
}

// ToggleMaximized flips between open and maximized. Minimized windows are
// maximized directly; closed windows are left alone.
func (s *WindowStore) ToggleMaximized(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	win, ok := s.windows[id]
	if !ok || win.State == WindowClosed {
		return
	}
	next := WindowMaximized
	if win.State == WindowMaximized {
		next = WindowOpen
	}
	s.setStateLocked(win, next)
	win.UpdatedAt = s.now()
	events.Window.Update(id, []string{"state"})
}

// SetActiveWindow overrides the active pointer. An empty id clears it. The
// id is trusted and not checked against the store.
func (s *WindowStore) SetActiveWindow(id string) {
	s.mu.Lock()
	s.activeID = id
	s.mu.Unlock()
	events.Window.Activate(id)
}

// CloseAllWindows marks every window closed and clears the active pointer.
func (s *WindowStore) CloseAllWindows() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, win := range s.windows {
		s.setStateLocked(win, WindowClosed)
		win.UpdatedAt = now
	}
	s.activeID = ""
	events.Window.Bulk("close-all", len(s.windows))
}

// MinimizeAllWindows minimizes every window that is not closed.
func (s *WindowStore) MinimizeAllWindows() {
	s.bulkTransition("minimize-all", WindowMinimized)
}

// RestoreAllWindows opens every window that is not closed.
func (s *WindowStore) RestoreAllWindows() {
	s.bulkTransition("restore-all", WindowOpen)
}

func (s *WindowStore) bulkTransition(op string, target WindowState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, win := range s.sortedLocked() {
		if win.State == WindowClosed {
			continue
		}
		s.setStateLocked(win, target)
		win.UpdatedAt = now
	}
	events.Window.Bulk(op, len(s.windows))
}

// setStateLocked applies a state transition and keeps the dock hint in step
// with it. Callers hold s.mu.
func (s *WindowStore) setStateLocked(win *Window, next WindowState) {
	win.State = next
	if next == WindowMinimized {
		s.enlistLocked(win.ID)
	} else {
		s.delistLocked(win.ID)
	}
}
