package state

import (
	"strings"
	"unicode"
)

// SetFilter updates the filter query and cursor position. While a query is
// active the cursor jumps to the best match; clearing the query returns to
// the entity that was selected before filtering began.
func (l *Level) SetFilter(query string, cursor int) {
	before := strings.TrimSpace(l.Filter)
	after := strings.TrimSpace(query)
	l.Filter = query
	l.FilterCursor = min(max(cursor, 0), len([]rune(query)))

	switch {
	case before == after:
	case before == "":
		l.last = l.selected
		l.View.SetFilterText(after)
	default:
		l.View.SetFilterText(after)
	}

	if after != "" {
		if row := l.View.BestMatch(after); row >= 0 {
			l.Cursor = row
			l.Remember()
		}
		return
	}
	if before != "" {
		restored := l.last.ok && l.Select(l.last.kind, l.last.name)
		if !restored {
			l.clampCursor()
			l.Remember()
		}
		l.last = selection{}
	}
}

// FilterCursorPos returns the filter cursor clamped to the query.
func (l *Level) FilterCursorPos() int {
	return min(max(l.FilterCursor, 0), len([]rune(l.Filter)))
}

// editFilter replaces the runes in [from, to) with insert and leaves the
// cursor after the inserted text.
func (l *Level) editFilter(from, to int, insert []rune) bool {
	if from == to && len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter)
	updated := make([]rune, 0, len(runes)-(to-from)+len(insert))
	updated = append(updated, runes[:from]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[to:]...)
	l.SetFilter(string(updated), from+len(insert))
	return true
}

// moveFilterCursor reports whether pos differs from the current cursor.
func (l *Level) moveFilterCursor(pos int) bool {
	if pos == l.FilterCursorPos() {
		return false
	}
	l.FilterCursor = pos
	return true
}

// wordStart skips blanks then the word before pos.
func wordStart(runes []rune, pos int) int {
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

// wordEnd skips the word after pos and the blanks following it.
func wordEnd(runes []rune, pos int) int {
	for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}

// InsertFilterText inserts text at the filter cursor.
func (l *Level) InsertFilterText(text string) bool {
	pos := l.FilterCursorPos()
	return l.editFilter(pos, pos, []rune(text))
}

func (l *Level) DeleteFilterRuneBackward() bool {
	pos := l.FilterCursorPos()
	return l.editFilter(max(pos-1, 0), pos, nil)
}

// DeleteFilterWordBackward deletes back to the start of the previous word.
func (l *Level) DeleteFilterWordBackward() bool {
	pos := l.FilterCursorPos()
	return l.editFilter(wordStart([]rune(l.Filter), pos), pos, nil)
}

func (l *Level) MoveFilterCursorStart() bool {
	return l.moveFilterCursor(0)
}

func (l *Level) MoveFilterCursorEnd() bool {
	return l.moveFilterCursor(len([]rune(l.Filter)))
}

func (l *Level) MoveFilterCursorWordBackward() bool {
	return l.moveFilterCursor(wordStart([]rune(l.Filter), l.FilterCursorPos()))
}

func (l *Level) MoveFilterCursorWordForward() bool {
	return l.moveFilterCursor(wordEnd([]rune(l.Filter), l.FilterCursorPos()))
}

func (l *Level) MoveFilterCursorRuneBackward() bool {
	return l.moveFilterCursor(max(l.FilterCursorPos()-1, 0))
}

func (l *Level) MoveFilterCursorRuneForward() bool {
	return l.moveFilterCursor(min(l.FilterCursorPos()+1, len([]rune(l.Filter))))
}
