package state

import (
	"testing"

	"github.com/atomicstack/style-browser/internal/style"
	"github.com/atomicstack/style-browser/internal/view"
)

func newTestLevel(t *testing.T, names ...string) (*Level, *style.Library) {
	t.Helper()
	lib := style.NewLibrary()
	for _, name := range names {
		if err := lib.AddSymbol(style.Symbol{Name: name}); err != nil {
			t.Fatalf("add %q: %v", name, err)
		}
	}
	v := view.New(lib)
	l := NewLevel(v)
	t.Cleanup(func() {
		l.Close()
		v.Close()
	})
	return l, lib
}

func selectedName(l *Level) string {
	_, name, _ := l.Selected()
	return name
}

func TestMoveCursorHome(t *testing.T) {
	l, _ := newTestLevel(t, "a", "b", "c")
	l.Cursor = 2
	if !l.MoveCursorHome() {
		t.Fatalf("expected move when rows exist")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}

	empty, _ := newTestLevel(t)
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty level")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorEnd(t *testing.T) {
	l, _ := newTestLevel(t, "a", "b", "c")
	if !l.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}

	empty, _ := newTestLevel(t)
	if empty.MoveCursorEnd() {
		t.Fatalf("expected no movement for empty level")
	}
}

func TestMoveCursorWraps(t *testing.T) {
	l, _ := newTestLevel(t, "a", "b", "c")
	l.MoveCursorUp()
	if name := selectedName(l); name != "c" {
		t.Fatalf("expected wrap to c, got %q", name)
	}
	l.MoveCursorDown()
	if name := selectedName(l); name != "a" {
		t.Fatalf("expected wrap to a, got %q", name)
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l, _ := newTestLevel(t, "a", "b", "c", "d", "e")
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on first page down")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on second page down")
	}
	if l.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor)
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(10) {
		t.Fatalf("expected movement back to start")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l, _ := newTestLevel(t, "a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}

	l.Cursor = -1
	l.EnsureCursorVisible(2)
	if l.Cursor != 0 {
		t.Fatalf("expected cursor normalized to 0, got %d", l.Cursor)
	}

	l.ViewportOffset = 4
	l.EnsureCursorVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.ViewportOffset)
	}

	l.ViewportOffset = 4
	l.Cursor = 1
	l.EnsureCursorVisible(3)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.ViewportOffset)
	}
}

func TestCursorFollowsSelectionAcrossMutations(t *testing.T) {
	l, lib := newTestLevel(t, "b", "d", "f")
	if !l.Select(style.SymbolEntity, "d") {
		t.Fatalf("expected d to be selectable")
	}

	if err := lib.AddSymbol(style.Symbol{Name: "a"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if l.Cursor != 2 || selectedName(l) != "d" {
		t.Fatalf("expected cursor to follow d to row 2, got %d (%q)", l.Cursor, selectedName(l))
	}

	if !lib.RenameSymbol("b", "z") {
		t.Fatalf("rename failed")
	}
	if selectedName(l) != "d" {
		t.Fatalf("expected d to stay selected, got %q", selectedName(l))
	}

	if err := lib.RemoveSymbol("d"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if name := selectedName(l); name != "f" {
		t.Fatalf("expected neighbour f after removal, got %q", name)
	}
}

func TestRenameKeepsSelection(t *testing.T) {
	l, _ := newTestLevel(t, "alpha", "beta", "gamma")
	l.Select(style.SymbolEntity, "alpha")

	if !l.Rename("omega") {
		t.Fatalf("expected rename to succeed")
	}
	if name := selectedName(l); name != "omega" {
		t.Fatalf("expected omega selected, got %q", name)
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor to move with the row, got %d", l.Cursor)
	}

	if l.Rename("beta") {
		t.Fatalf("expected rename onto an existing name to fail")
	}
	if name := selectedName(l); name != "omega" {
		t.Fatalf("expected omega still selected, got %q", name)
	}
}

func TestRenameUnderFavoritesKeepsSelection(t *testing.T) {
	l, lib := newTestLevel(t, "alpha", "beta", "gamma")
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if err := lib.SetFavorite(style.SymbolEntity, name, true); err != nil {
			t.Fatalf("favorite %q: %v", name, err)
		}
	}
	l.View.SetFavoritesOnly(true)
	l.Select(style.SymbolEntity, "alpha")

	if !l.Rename("zeta") {
		t.Fatalf("expected rename to succeed")
	}
	if name := selectedName(l); name != "zeta" {
		t.Fatalf("expected zeta selected, got %q", name)
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor on the last row, got %d", l.Cursor)
	}
}
