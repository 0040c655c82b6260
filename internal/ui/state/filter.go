package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter replaces the query and places the caret at cursor. Narrowing
// from an empty query remembers the highlighted row; clearing the query
// puts the highlight back there.
func (l *Level) SetFilter(query string, cursor int) {
	was := strings.TrimSpace(l.Filter)
	now := strings.TrimSpace(query)
	l.Filter = query
	l.FilterCursor = min(max(cursor, 0), len([]rune(query)))

	if now != "" && was == "" {
		l.LastCursor = l.Cursor
	}
	l.applyFilter()

	switch {
	case now != "":
		l.Cursor = max(BestMatchIndex(l.Items, now), 0)
	case was != "":
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		} else {
			l.Cursor = max(len(l.Items)-1, 0)
		}
		l.LastCursor = -1
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	n := len(l.Items)
	if n == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	if l.Cursor < 0 || l.Cursor >= n {
		l.Cursor = n - 1
	}
	if l.ViewportOffset >= n {
		l.ViewportOffset = 0
	}
}

// FilterItems keeps the entries matching query in their original order.
// Titles are matched fuzzily first; when no title matches, the detail line
// (window type and state) and the id are searched by substring.
func FilterItems(items []Entry, query string) []Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return CloneEntries(items)
	}
	hits := make([]bool, len(items))
	found := false
	for _, rank := range fuzzy.RankFindNormalizedFold(query, labelsOf(items)) {
		hits[rank.OriginalIndex] = true
		found = true
	}
	if !found {
		needle := strings.ToLower(query)
		for i, item := range items {
			hay := strings.ToLower(item.Label + "\x00" + item.Detail + "\x00" + item.ID)
			hits[i] = strings.Contains(hay, needle)
		}
	}
	out := make([]Entry, 0, len(items))
	for i, item := range items {
		if hits[i] {
			out = append(out, item)
		}
	}
	return out
}

// BestMatchIndex picks the row a query most likely means: an exact title or
// id, then a title or id prefix, then the closest fuzzy title. It returns
// -1 only for an empty list.
func BestMatchIndex(items []Entry, query string) int {
	if len(items) == 0 {
		return -1
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return 0
	}
	lower := strings.ToLower(query)
	tests := []func(Entry) bool{
		func(e Entry) bool { return strings.EqualFold(e.Label, query) || strings.EqualFold(e.ID, query) },
		func(e Entry) bool { return strings.HasPrefix(strings.ToLower(e.Label), lower) },
		func(e Entry) bool { return strings.HasPrefix(strings.ToLower(e.ID), lower) },
	}
	for _, test := range tests {
		for i, item := range items {
			if test(item) {
				return i
			}
		}
	}
	best := 0
	bestDistance := -1
	for _, rank := range fuzzy.RankFindNormalizedFold(query, labelsOf(items)) {
		if bestDistance < 0 || rank.Distance < bestDistance ||
			(rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best, bestDistance = rank.OriginalIndex, rank.Distance
		}
	}
	return best
}

func labelsOf(items []Entry) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}
