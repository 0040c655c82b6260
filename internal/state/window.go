package state

import (
	"fmt"
	"time"
)

// WindowState is the lifecycle state of a window entity.
type WindowState string

const (
	WindowOpen      WindowState = "open"
	WindowMinimized WindowState = "minimized"
	WindowMaximized WindowState = "maximized"
	WindowClosed    WindowState = "closed"
)

// Valid reports whether s is one of the known window states.
func (s WindowState) Valid() bool {
	switch s {
	case WindowOpen, WindowMinimized, WindowMaximized, WindowClosed:
		return true
	default:
		return false
	}
}

// DefaultWindowType is assigned to windows created without a type tag.
const DefaultWindowType = "basic"

// BrowserWindowType tags windows that carry a BrowserData payload.
const BrowserWindowType = "browser"

// Position is a screen offset in cells.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a window extent in cells.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BrowserData is the navigation payload of a browser window.
type BrowserData struct {
	CurrentURL   string   `json:"current_url,omitempty"`
	History      []string `json:"history,omitempty"`
	HistoryIndex int      `json:"history_index"`
	Loading      bool     `json:"loading,omitempty"`
	Title        string   `json:"title,omitempty"`
	Favicon      string   `json:"favicon,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// CanGoBack reports whether an earlier history entry exists.
func (b *BrowserData) CanGoBack() bool {
	return b != nil && b.HistoryIndex > 0 && len(b.History) > 0
}

// CanGoForward reports whether a later history entry exists.
func (b *BrowserData) CanGoForward() bool {
	return b != nil && b.HistoryIndex < len(b.History)-1
}

func (b *BrowserData) clone() *BrowserData {
	if b == nil {
		return nil
	}
	dup := *b
	if b.History != nil {
		dup.History = append([]string(nil), b.History...)
	}
	return &dup
}

// Window is one logical window instance tracked by the store.
type Window struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Type      string         `json:"type"`
	State     WindowState    `json:"state"`
	Position  *Position      `json:"position,omitempty"`
	Size      *Size          `json:"size,omitempty"`
	ZIndex    int            `json:"z_index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Browser   *BrowserData   `json:"browser,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`

	seq int
}

// Label renders a short human-readable description used in logs and switchers.
func (w Window) Label() string {
	if w.Title == "" {
		return fmt.Sprintf("%s (%s)", w.Type, w.ID)
	}
	return w.Title
}

func (w *Window) clone() Window {
	dup := *w
	if w.Position != nil {
		p := *w.Position
		dup.Position = &p
	}
	if w.Size != nil {
		s := *w.Size
		dup.Size = &s
	}
	dup.Browser = w.Browser.clone()
	if w.Extra != nil {
		dup.Extra = cloneExtra(w.Extra)
	}
	return dup
}

// Cloner lets an Extra value provide its own deep copy.
type Cloner interface {
	Clone() any
}

func cloneExtra(extra map[string]any) map[string]any {
	dup := make(map[string]any, len(extra))
	for k, v := range extra {
		dup[k] = cloneValue(v)
	}
	return dup
}

// cloneValue deep-copies the container shapes Extra holds. Other values are
// copied by assignment, so pointers to mutable state belong behind Cloner.
func cloneValue(v any) any {
	switch v := v.(type) {
	case Cloner:
		return v.Clone()
	case []string:
		if v == nil {
			return v
		}
		return append([]string(nil), v...)
	case []float64:
		if v == nil {
			return v
		}
		return append([]float64(nil), v...)
	case []any:
		if v == nil {
			return v
		}
		dup := make([]any, len(v))
		for i, item := range v {
			dup[i] = cloneValue(item)
		}
		return dup
	case map[string]string:
		if v == nil {
			return v
		}
		dup := make(map[string]string, len(v))
		for k, item := range v {
			dup[k] = item
		}
		return dup
	case map[string]any:
		if v == nil {
			return v
		}
		return cloneExtra(v)
	}
	return v
}

// WindowSpec carries the caller-supplied fields for AddWindow. Zero values
// fall back to the store defaults.
type WindowSpec struct {
	Title    string
	Type     string
	State    WindowState
	Position *Position
	Size     *Size
	Browser  *BrowserData
	Extra    map[string]any
}

// WindowPatch is a shallow partial update. Nil fields are left untouched;
// Extra keys are merged into the existing map.
type WindowPatch struct {
	Title    *string
	Type     *string
	State    *WindowState
	Position *Position
	Size     *Size
	Browser  *BrowserData
	Extra    map[string]any
}

// StatePatch is shorthand for a patch that only changes the state.
func StatePatch(s WindowState) WindowPatch {
	return WindowPatch{State: &s}
}

// TitlePatch is shorthand for a patch that only changes the title.
func TitlePatch(title string) WindowPatch {
	return WindowPatch{Title: &title}
}
