package state

// IsMarked reports whether the entry with id is marked.
func (l *Level) IsMarked(id string) bool {
	_, ok := l.Marked[id]
	return ok
}

// ToggleMark flips the mark on the entry under the cursor. Levels that are
// not Markable ignore it.
func (l *Level) ToggleMark() bool {
	entry, ok := l.Current()
	if !l.Markable || !ok {
		return false
	}
	if l.Marked == nil {
		l.Marked = make(map[string]struct{})
	}
	if l.IsMarked(entry.ID) {
		delete(l.Marked, entry.ID)
	} else {
		l.Marked[entry.ID] = struct{}{}
	}
	return true
}

// ClearMarks unmarks every entry.
func (l *Level) ClearMarks() {
	clear(l.Marked)
}

// MarkedEntries returns the marked entries that survive the filter, in
// display order.
func (l *Level) MarkedEntries() []Entry {
	var out []Entry
	for _, entry := range l.Items {
		if l.IsMarked(entry.ID) {
			out = append(out, entry)
		}
	}
	return out
}

// pruneMarks forgets marks on entries that left the full list, such as
// windows closed from elsewhere.
func (l *Level) pruneMarks() {
	if len(l.Marked) == 0 {
		return
	}
	live := make(map[string]bool, len(l.Full))
	for _, entry := range l.Full {
		live[entry.ID] = true
	}
	for id := range l.Marked {
		if !live[id] {
			delete(l.Marked, id)
		}
	}
}
