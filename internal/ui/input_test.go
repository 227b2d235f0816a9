package ui

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTypingFiltersAndJumpsToBestMatch(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	h := NewHarness(m)
	h.Key(tea.KeyDown) // forest

	h.Type("o")
	want := []string{"coast", "forest", "ocean", "road"}
	if got := m.view.Names(); !slices.Equal(got, want) {
		t.Fatalf("expected rows %v, got %v", want, got)
	}
	if got := selectedName(m); got != "ocean" {
		t.Fatalf("expected prefix match ocean selected, got %q", got)
	}

	h.Key(tea.KeyBackspace)
	if m.level.Filter != "" {
		t.Fatalf("expected empty filter, got %q", m.level.Filter)
	}
	if got := m.view.RowCount(); got != 6 {
		t.Fatalf("expected all rows back, got %d", got)
	}
	if got := selectedName(m); got != "forest" {
		t.Fatalf("expected selection before filtering to be restored, got %q", got)
	}
}

func TestFilterMatchesTags(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	h := NewHarness(m)
	h.Type("water")
	if got := m.view.Names(); !slices.Equal(got, []string{"coast", "ocean"}) {
		t.Fatalf("expected tagged rows, got %v", got)
	}
}

func TestFilterWithoutMatchesShowsMessage(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	h := NewHarness(m)
	h.Type("zzz")
	if got := m.view.RowCount(); got != 0 {
		t.Fatalf("expected no rows, got %d", got)
	}
	if !strings.Contains(h.View(), `No matches for "zzz"`) {
		t.Fatalf("expected no-match message, got:\n%s", h.View())
	}
}

func TestHandleTextInputEditing(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)

	for _, r := range "sea road" {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		if !m.handleTextInput(msg) {
			t.Fatalf("expected %q to be consumed", r)
		}
	}
	if m.level.Filter != "sea road" {
		t.Fatalf("unexpected filter %q", m.level.Filter)
	}

	if !m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlW}) {
		t.Fatalf("expected ctrl+w to be consumed")
	}
	if m.level.Filter != "sea " {
		t.Fatalf("expected word deleted, got %q", m.level.Filter)
	}

	if !m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlA}) {
		t.Fatalf("expected ctrl+a to move the cursor")
	}
	if m.level.FilterCursorPos() != 0 {
		t.Fatalf("expected cursor at start, got %d", m.level.FilterCursorPos())
	}
	if m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlA}) {
		t.Fatalf("expected ctrl+a at start to be a no-op")
	}
	if !m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlE}) {
		t.Fatalf("expected ctrl+e to move the cursor")
	}
	if m.level.FilterCursorPos() != 4 {
		t.Fatalf("expected cursor at end, got %d", m.level.FilterCursorPos())
	}

	if !m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlU}) {
		t.Fatalf("expected ctrl+u to clear the filter")
	}
	if m.level.Filter != "" {
		t.Fatalf("expected empty filter, got %q", m.level.Filter)
	}
	if m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlU}) {
		t.Fatalf("expected ctrl+u on an empty filter to fall through")
	}
}

func TestAltRunesAreNotFilterInput(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	if m.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}) {
		t.Fatalf("expected alt+x to fall through")
	}
	if m.level.Filter != "" {
		t.Fatalf("expected filter untouched, got %q", m.level.Filter)
	}
}

func TestFilterPrompt(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	if got := m.filterPrompt(); !strings.Contains(got, "type to filter") {
		t.Fatalf("expected placeholder prompt, got %q", got)
	}
	h := NewHarness(m)
	h.Type("hea")
	got := m.filterPrompt()
	if !strings.Contains(got, "hea") || strings.Contains(got, "type to filter") {
		t.Fatalf("expected typed filter in prompt, got %q", got)
	}
}
