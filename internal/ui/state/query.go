package state

import "unicode"

// Caret names a motion of the filter caret.
type Caret int

const (
	CaretLeft Caret = iota
	CaretRight
	CaretWordLeft
	CaretWordRight
	CaretStart
	CaretEnd
)

// FilterCursorPos returns the caret as a rune offset into the query.
func (l *Level) FilterCursorPos() int {
	return min(max(l.FilterCursor, 0), len([]rune(l.Filter)))
}

// MoveCaret applies motion to the caret and reports whether it moved.
func (l *Level) MoveCaret(motion Caret) bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	to := pos
	switch motion {
	case CaretLeft:
		to = max(pos-1, 0)
	case CaretRight:
		to = min(pos+1, len(runes))
	case CaretWordLeft:
		to = wordStart(runes, pos)
	case CaretWordRight:
		to = wordEnd(runes, pos)
	case CaretStart:
		to = 0
	case CaretEnd:
		to = len(runes)
	}
	l.FilterCursor = to
	return to != pos
}

// TypeQuery inserts text at the caret.
func (l *Level) TypeQuery(text string) bool {
	if text == "" {
		return false
	}
	pos := l.FilterCursorPos()
	return l.spliceQuery(pos, pos, []rune(text))
}

// EraseRune deletes the rune before the caret.
func (l *Level) EraseRune() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	return l.spliceQuery(pos-1, pos, nil)
}

// EraseWord deletes back to the start of the word before the caret,
// including any spaces between it and the caret.
func (l *Level) EraseWord() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	return l.spliceQuery(wordStart([]rune(l.Filter), pos), pos, nil)
}

// spliceQuery replaces runes [from, to) with text and leaves the caret
// after the inserted text.
func (l *Level) spliceQuery(from, to int, text []rune) bool {
	runes := []rune(l.Filter)
	next := make([]rune, 0, len(runes)-(to-from)+len(text))
	next = append(next, runes[:from]...)
	next = append(next, text...)
	next = append(next, runes[to:]...)
	l.SetFilter(string(next), from+len(text))
	return true
}

func wordStart(runes []rune, pos int) int {
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

func wordEnd(runes []rune, pos int) int {
	for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}
