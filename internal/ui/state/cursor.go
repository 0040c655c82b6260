package state

// Step moves the cursor by delta rows. With wrap the cursor cycles past
// either end, otherwise it stops there. It reports whether the cursor moved.
func (l *Level) Step(delta int, wrap bool) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	from := l.clampedCursor()
	to := from + delta
	switch {
	case wrap:
		to = ((to % n) + n) % n
	case to < 0:
		to = 0
	case to >= n:
		to = n - 1
	}
	l.Cursor = to
	return to != from
}

// Home moves the cursor to the first row.
func (l *Level) Home() bool {
	return l.Step(-len(l.Items), false)
}

// End moves the cursor to the last row.
func (l *Level) End() bool {
	return l.Step(len(l.Items), false)
}

// Page moves the cursor by whole screens of visible rows; pages < 0 moves up.
// A visible count of zero or more than the list length pages the whole list.
func (l *Level) Page(pages, visible int) bool {
	if visible <= 0 || visible > len(l.Items) {
		visible = len(l.Items)
	}
	return l.Step(pages*visible, false)
}

// Reveal scrolls the viewport so the cursor row is one of the visible rows.
func (l *Level) Reveal(visible int) {
	n := len(l.Items)
	l.Cursor = l.clampedCursor()
	if n == 0 || visible <= 0 {
		l.ViewportOffset = 0
		return
	}
	top := min(max(l.ViewportOffset, 0), max(n-visible, 0))
	switch {
	case l.Cursor < top:
		top = l.Cursor
	case l.Cursor >= top+visible:
		top = l.Cursor - visible + 1
	}
	l.ViewportOffset = top
}

func (l *Level) clampedCursor() int {
	if len(l.Items) == 0 {
		return 0
	}
	return min(max(l.Cursor, 0), len(l.Items)-1)
}
