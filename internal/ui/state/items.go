package state

// Entry is one selectable row of a level. Detail is secondary text, such as
// a window's type and state, that the filter also searches.
type Entry struct {
	ID     string
	Label  string
	Detail string
}

// CloneEntries produces a shallow copy of the provided entries.
func CloneEntries(items []Entry) []Entry {
	dup := make([]Entry, len(items))
	copy(dup, items)
	return dup
}
