package state

import (
	"github.com/atomicstack/style-browser/internal/model"
	"github.com/atomicstack/style-browser/internal/style"
	"github.com/atomicstack/style-browser/internal/view"
)

type selection struct {
	kind style.Entity
	name string
	ok   bool
}

// Level tracks the cursor, viewport and filter input over a view.View. The
// cursor follows the selected entity by name whenever the view reorders.
type Level struct {
	View           *view.View
	Filter         string
	FilterCursor   int
	Cursor         int
	ViewportOffset int

	selected selection
	// last is the selection to restore once the filter is cleared.
	last selection

	unsubscribe func()
}

// NewLevel binds a level to v and selects the first row.
func NewLevel(v *view.View) *Level {
	l := &Level{View: v}
	l.unsubscribe = v.Subscribe(l.resync)
	l.Remember()
	return l
}

// Close stops following the view.
func (l *Level) Close() {
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
}

// Len returns the number of visible rows.
func (l *Level) Len() int {
	return l.View.RowCount()
}

// Selected returns the entity under the cursor.
func (l *Level) Selected() (style.Entity, string, bool) {
	return l.View.EntityAt(l.Cursor)
}

// Remember records the entity under the cursor as the one to follow.
func (l *Level) Remember() {
	kind, name, ok := l.View.EntityAt(l.Cursor)
	l.selected = selection{kind: kind, name: name, ok: ok}
}

// Select moves the cursor to an entity. It reports false when the entity is
// not visible.
func (l *Level) Select(kind style.Entity, name string) bool {
	row := l.View.RowOf(kind, name)
	if row < 0 {
		return false
	}
	l.Cursor = row
	l.Remember()
	return true
}

// Rename renames the selected entity through the view and keeps following
// it under its new name.
func (l *Level) Rename(newName string) bool {
	kind, _, ok := l.Selected()
	if !ok {
		return false
	}
	prev := l.selected
	l.selected = selection{kind: kind, name: newName, ok: true}
	if !l.View.SetData(l.Cursor, model.ColumnName, newName) {
		l.selected = prev
		return false
	}
	return true
}

func (l *Level) resync() {
	if l.selected.ok {
		if row := l.View.RowOf(l.selected.kind, l.selected.name); row >= 0 {
			l.Cursor = row
			return
		}
	}
	l.clampCursor()
	l.Remember()
}

func (l *Level) clampCursor() {
	n := l.Len()
	if n == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= n {
		l.Cursor = n - 1
	}
	if l.ViewportOffset > n-1 {
		l.ViewportOffset = 0
	}
}
