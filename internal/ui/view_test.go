package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestTruncateText(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  string
	}{
		{"forest", 10, "forest"},
		{"forest", 4, "for…"},
		{"forest", 1, "f"},
		{"forest", 0, "forest"},
	}
	for _, tc := range cases {
		if got := truncateText(tc.text, tc.width); got != tc.want {
			t.Fatalf("truncateText(%q, %d): expected %q, got %q", tc.text, tc.width, tc.want, got)
		}
	}
}

func TestFitWidthPads(t *testing.T) {
	if got := fitWidth("abc", 6); got != "abc   " {
		t.Fatalf("expected padding, got %q", got)
	}
	if got := fitWidth("abcdefgh", 4); ansi.StringWidth(got) != 4 {
		t.Fatalf("expected width 4, got %q", got)
	}
}

func TestLimitHeightEndsInEllipsis(t *testing.T) {
	lines := []styledLine{{text: "a"}, {text: "b"}, {text: "c"}, {text: "d"}}
	got := limitHeight(lines, 3, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(got))
	}
	if got[2].text != "…" {
		t.Fatalf("expected trailing ellipsis, got %q", got[2].text)
	}
	if got := limitHeight(lines, 10, 10); len(got) != len(lines) {
		t.Fatalf("expected untouched lines, got %d", len(got))
	}
}

func TestViewFitsTerminalWidth(t *testing.T) {
	for _, width := range []int{30, 50, 100} {
		m, _ := newTestModel(t, width, 24)
		for i, line := range strings.Split(m.View(), "\n") {
			if w := ansi.StringWidth(line); w > width {
				t.Fatalf("width %d: line %d is %d cells wide: %q", width, i, w, line)
			}
		}
	}
}

func TestViewFitsTerminalHeight(t *testing.T) {
	m, _ := newTestModel(t, 50, 12)
	if rows := strings.Count(m.View(), "\n") + 1; rows > 12 {
		t.Fatalf("expected at most 12 rows, got %d", rows)
	}
	m, _ = newTestModel(t, 100, 12)
	if rows := strings.Count(m.View(), "\n") + 1; rows != 12 {
		t.Fatalf("expected the side layout to fill 12 rows, got %d", rows)
	}
}

func TestStatusLineShowsError(t *testing.T) {
	m, _ := newTestModel(t, 80, 24)
	m.errMsg = "boom"
	if !strings.Contains(m.View(), "Error: boom") {
		t.Fatalf("expected error in status line, got:\n%s", m.View())
	}
}

func TestFooterToggle(t *testing.T) {
	m, _ := newTestModel(t, 120, 24)
	if !strings.Contains(m.View(), "enter rename") {
		t.Fatalf("expected footer by default")
	}
	h := NewHarness(m)
	h.Key(tea.KeyF1)
	if strings.Contains(m.View(), "enter rename") {
		t.Fatalf("expected footer hidden after f1")
	}
}
