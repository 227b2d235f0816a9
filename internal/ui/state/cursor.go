package state

// MoveCursorUp moves the cursor one row up, wrapping to the last row.
func (l *Level) MoveCursorUp() bool {
	n := l.Len()
	if n == 0 {
		return false
	}
	if l.Cursor > 0 {
		l.Cursor--
	} else {
		l.Cursor = n - 1
	}
	l.Remember()
	return n > 1
}

// MoveCursorDown moves the cursor one row down, wrapping to the first row.
func (l *Level) MoveCursorDown() bool {
	n := l.Len()
	if n == 0 {
		return false
	}
	if l.Cursor < n-1 {
		l.Cursor++
	} else {
		l.Cursor = 0
	}
	l.Remember()
	return n > 1
}

// MoveCursorHome moves the cursor to the first row.
func (l *Level) MoveCursorHome() bool {
	if l.Len() == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	l.Remember()
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last row.
func (l *Level) MoveCursorEnd() bool {
	n := l.Len()
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	l.Remember()
	return old != l.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.moveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.moveCursorBy(l.pageSize(maxVisible))
}

func (l *Level) moveCursorBy(delta int) bool {
	n := l.Len()
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = min(max(l.Cursor+delta, 0), n-1)
	l.Remember()
	return l.Cursor != old
}

func (l *Level) pageSize(maxVisible int) int {
	total := l.Len()
	if total == 0 {
		return 0
	}
	if maxVisible <= 0 || maxVisible > total {
		return total
	}
	return maxVisible
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	n := l.Len()
	if n == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = min(max(l.Cursor, 0), n-1)
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := max(n-maxVisible, 0)
	l.ViewportOffset = min(max(l.ViewportOffset, 0), maxOffset)
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if upper := l.ViewportOffset + maxVisible - 1; l.Cursor > upper {
		l.ViewportOffset = min(l.Cursor-maxVisible+1, maxOffset)
	}
}
