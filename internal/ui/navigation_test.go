package ui

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/style-browser/internal/style"
	"github.com/atomicstack/style-browser/internal/view"
)

func TestArrowKeysWrap(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	h := NewHarness(m)

	h.Key(tea.KeyUp)
	if got := selectedName(m); got != "well" {
		t.Fatalf("expected up from first row to wrap to well, got %q", got)
	}
	h.Key(tea.KeyDown)
	if got := selectedName(m); got != "coast" {
		t.Fatalf("expected down from last row to wrap to coast, got %q", got)
	}
	h.Key(tea.KeyEnd)
	if got := selectedName(m); got != "well" {
		t.Fatalf("expected end to select well, got %q", got)
	}
	h.Key(tea.KeyHome)
	if got := selectedName(m); got != "coast" {
		t.Fatalf("expected home to select coast, got %q", got)
	}
}

func TestTabCyclesEntityFilter(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	h := NewHarness(m)

	steps := []struct {
		rows  int
		label string
	}{
		{4, "symbols"},
		{2, "color ramps"},
		{6, "all"},
	}
	for _, step := range steps {
		h.Key(tea.KeyTab)
		if got := m.view.RowCount(); got != step.rows {
			t.Fatalf("%s: expected %d rows, got %d", step.label, step.rows, got)
		}
		if got := entityFilterLabel(m.view); got != step.label {
			t.Fatalf("expected label %q, got %q", step.label, got)
		}
	}
}

func TestSymbolTypeCycleHidesRamps(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	h := NewHarness(m)

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.view.Names(); !slices.Equal(got, []string{"well"}) {
		t.Fatalf("expected only markers, got %v", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.view.Names(); !slices.Equal(got, []string{"coast", "road"}) {
		t.Fatalf("expected only lines, got %v", got)
	}
	for range style.SymbolTypes()[1:] {
		h.Send(tea.KeyMsg{Type: tea.KeyCtrlY})
	}
	if m.view.SymbolTypeFilterEnabled() {
		t.Fatalf("expected symbol type filter to switch off after the last type")
	}
	if got := m.view.RowCount(); got != 6 {
		t.Fatalf("expected all rows back, got %d", got)
	}
}

func TestTagCycleFollowsLibraryTags(t *testing.T) {
	m, lib := newTestModel(t, 80, 30)
	h := NewHarness(m)

	for _, tag := range lib.Tags() {
		h.Send(tea.KeyMsg{Type: tea.KeyCtrlT})
		if got := m.view.TagID(); got != tag.ID {
			t.Fatalf("expected tag %s (%d), got %d", tag.Name, tag.ID, got)
		}
		want := append(lib.NamesWithTag(style.SymbolEntity, tag.ID), lib.NamesWithTag(style.ColorRampEntity, tag.ID)...)
		slices.Sort(want)
		if got := m.view.Names(); !slices.Equal(got, want) {
			t.Fatalf("tag %s: expected %v, got %v", tag.Name, want, got)
		}
		if !strings.Contains(m.header(), "tag: "+tag.Name) {
			t.Fatalf("expected header to name tag %s, got %q", tag.Name, m.header())
		}
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlT})
	if got := m.view.TagID(); got != view.NoID {
		t.Fatalf("expected tag filter off, got %d", got)
	}
}

func TestSmartGroupCycle(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	h := NewHarness(m)

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlG})
	if got := m.view.Names(); !slices.Equal(got, []string{"coast", "ocean"}) {
		t.Fatalf("expected wet group members, got %v", got)
	}
	if got := m.smartGroupLabel(); got != "group: wet" {
		t.Fatalf("unexpected group label %q", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlG})
	if got := m.view.SmartGroupID(); got != view.NoID {
		t.Fatalf("expected smart group filter off, got %d", got)
	}
}

func TestFavoritesOnlyAndToggle(t *testing.T) {
	m, lib := newTestModel(t, 80, 30)
	h := NewHarness(m)

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlF})
	if got := m.view.Names(); !slices.Equal(got, []string{"forest"}) {
		t.Fatalf("expected favorites only, got %v", got)
	}
	if got := selectedName(m); got != "forest" {
		t.Fatalf("expected forest selected, got %q", got)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	if lib.IsFavorite(style.SymbolEntity, "forest") {
		t.Fatalf("expected forest to be unfavorited")
	}
	if got := m.view.RowCount(); got != 0 {
		t.Fatalf("expected no favorites left, got %d rows", got)
	}
	if _, _, ok := m.level.Selected(); ok {
		t.Fatalf("expected no selection on an empty view")
	}

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlF})
	h.Key(tea.KeyEnd)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !lib.IsFavorite(style.SymbolEntity, "well") {
		t.Fatalf("expected well to be favorited")
	}
	if got := m.currentInfo(); got != "Favorited well" {
		t.Fatalf("unexpected info %q", got)
	}
}

func TestSortToggleKeepsSelection(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	h := NewHarness(m)
	h.Key(tea.KeyDown)

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlR})
	want := []string{"well", "road", "ocean", "heat", "forest", "coast"}
	if got := m.view.Names(); !slices.Equal(got, want) {
		t.Fatalf("expected descending rows %v, got %v", want, got)
	}
	if got := selectedName(m); got != "forest" {
		t.Fatalf("expected forest to stay selected, got %q", got)
	}
	if m.level.Cursor != 4 {
		t.Fatalf("expected cursor to follow forest to row 4, got %d", m.level.Cursor)
	}
}

func TestEscapeClearsFilterThenQuits(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	h := NewHarness(m)

	h.Type("heat")
	if m.level.Filter != "heat" {
		t.Fatalf("expected filter heat, got %q", m.level.Filter)
	}
	h.Key(tea.KeyEsc)
	if m.level.Filter != "" {
		t.Fatalf("expected esc to clear the filter, got %q", m.level.Filter)
	}
	if h.Quit() {
		t.Fatalf("expected first esc not to quit")
	}
	h.Key(tea.KeyEsc)
	if !h.Quit() {
		t.Fatalf("expected second esc to quit")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	h := NewHarness(m)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !h.Quit() {
		t.Fatalf("expected ctrl+c to quit")
	}
}
