package state

// Level is one list the switcher or a dropdown shows: its entries, the
// filter narrowing them, the cursor and the visible window onto them.
type Level struct {
	ID             string
	Title          string
	Items          []Entry
	Full           []Entry
	Filter         string
	FilterCursor   int
	Cursor         int
	Markable       bool
	Marked         map[string]struct{}
	LastCursor     int
	ViewportOffset int
}

// NewLevel constructs a Level over items with nothing selected.
func NewLevel(id, title string, items []Entry) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
		Marked:     make(map[string]struct{}),
	}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the visible index of the entry with id, or -1.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the entry under the cursor.
func (l *Level) Current() (Entry, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Entry{}, false
	}
	return l.Items[l.Cursor], true
}

// Focus moves the cursor onto id when it is visible.
func (l *Level) Focus(id string) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	l.Cursor = idx
	return true
}

// UpdateItems swaps in a fresh entry list, keeping the filter, the viewport
// and any selections whose entries survived.
func (l *Level) UpdateItems(items []Entry) {
	prevOffset := l.ViewportOffset
	l.Full = CloneEntries(items)
	l.pruneMarks()
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
