package ui

import (
	"io"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/atomicstack/style-browser/internal/data/dispatcher"
	"github.com/atomicstack/style-browser/internal/library"
	"github.com/atomicstack/style-browser/internal/logging"
	"github.com/atomicstack/style-browser/internal/preview"
	"github.com/atomicstack/style-browser/internal/style"
	"github.com/atomicstack/style-browser/internal/testutil"
	"github.com/atomicstack/style-browser/internal/view"
)

const fixtureLibrary = `
[[symbol]]
name = "coast"
type = "line"
color = "#1f78b4"
tags = ["water"]

[[symbol]]
name = "forest"
type = "fill"
color = "#33a02c"
favorite = true

[[symbol]]
name = "road"
type = "line"
color = "#444444"
tags = ["transport"]

[[symbol]]
name = "well"
type = "marker"
color = "#a6cee3"

[[ramp]]
name = "heat"
stops = ["#0000ff", "#ffff00", "#ff0000"]

[[ramp]]
name = "ocean"
stops = ["#deebf7", "#08519c"]
tags = ["water"]

[[smartgroup]]
name = "wet"
match = "any"
conditions = [{ op = "tag", param = "water" }]
`

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func parseFixture(t *testing.T, extra string) library.Snapshot {
	t.Helper()
	snap, err := library.Parse([]byte(fixtureLibrary + extra))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return snap
}

// newTestModel builds a browser over the fixture library. Zero width or
// height leaves that dimension to resize messages.
func newTestModel(t *testing.T, width, height int) (*Model, *style.Library) {
	t.Helper()
	return newTestModelWith(t, "", width, height)
}

// newTestModelWith appends extra library entries to the fixture.
func newTestModelWith(t *testing.T, extra string, width, height int) (*Model, *style.Library) {
	t.Helper()
	lib := style.NewLibrary()
	if res := dispatcher.New(lib).Apply(parseFixture(t, extra)); res.Err != nil {
		t.Fatalf("apply fixture: %v", res.Err)
	}
	renderer := preview.New(lib)
	v := view.New(lib, view.WithPreviewer(renderer))
	m := NewModel(lib, v, width, height, nil)
	t.Cleanup(func() {
		m.Close()
		v.Close()
		renderer.Close()
	})
	return m, lib
}

func selectedName(m *Model) string {
	_, name, _ := m.level.Selected()
	return name
}

func TestNewModelSelectsFirstRow(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	want := []string{"coast", "forest", "heat", "ocean", "road", "well"}
	if got := m.view.Names(); !slices.Equal(got, want) {
		t.Fatalf("expected rows %v, got %v", want, got)
	}
	if got := selectedName(m); got != "coast" {
		t.Fatalf("expected coast selected, got %q", got)
	}
	if m.mode != ModeBrowse {
		t.Fatalf("expected browse mode, got %v", m.mode)
	}
}

func TestHeaderCountsVisibleRows(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	if got := m.header(); got != "styles (6/6)" {
		t.Fatalf("unexpected header %q", got)
	}
	h := NewHarness(m)
	h.Type("oa")
	if got := m.header(); got != "styles (2/6)" {
		t.Fatalf("unexpected filtered header %q", got)
	}
}

func TestHeaderNamesActiveFilters(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	m.view.SetEntityFilter(style.SymbolEntity)
	m.view.SetEntityFilterEnabled(true)
	m.view.SetSymbolType(style.LineSymbol)
	m.view.SetSymbolTypeFilterEnabled(true)
	m.view.SetFavoritesOnly(true)
	m.view.Sort(view.Descending)

	want := []string{"styles (0/6)", "symbols", "type: line", "★ favorites", "z→a"}
	if got := m.headerSegments(); !slices.Equal(got, want) {
		t.Fatalf("expected segments %v, got %v", want, got)
	}
	if !strings.Contains(m.View(), "No styles match the active filters") {
		t.Fatalf("expected empty-filter placeholder, got:\n%s", m.View())
	}
}

func TestRenderedRowsShowKindAndTags(t *testing.T) {
	m, _ := newTestModel(t, 50, 30)
	heading, labels := m.rowLabels()
	if heading != "   Kind    Name    Tags" {
		t.Fatalf("unexpected column headings %q", heading)
	}
	if strings.Index(heading, "Name") != strings.Index(labels[0], "coast") {
		t.Fatalf("heading misaligned:\n%s\n%s", heading, labels[0])
	}
	if len(labels) != 6 {
		t.Fatalf("expected 6 labels, got %d", len(labels))
	}
	if !strings.Contains(labels[0], "line") || !strings.Contains(labels[0], "coast") || !strings.Contains(labels[0], "water") {
		t.Fatalf("unexpected coast label %q", labels[0])
	}
	if !strings.HasPrefix(labels[1], "★") {
		t.Fatalf("expected favorite mark on forest, got %q", labels[1])
	}
	if !strings.Contains(labels[2], "ramp") {
		t.Fatalf("expected ramp kind on heat, got %q", labels[2])
	}
	// columns line up
	if strings.Index(labels[0], "coast") != strings.Index(labels[2], "heat") {
		t.Fatalf("name column misaligned:\n%s\n%s", labels[0], labels[2])
	}
}

func TestRowsMatchGolden(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)
	heading, labels := m.rowLabels()
	output := m.header() + "\n" + heading + "\n" + strings.Join(labels, "\n") + "\n"
	testutil.AssertGolden(t, "browser_rows.golden", output)
}

func TestNextID(t *testing.T) {
	ids := []int{3, 5, 9}
	cases := []struct {
		current int
		want    int
	}{
		{view.NoID, 3},
		{3, 5},
		{5, 9},
		{9, view.NoID},
		{42, 3},
	}
	for _, tc := range cases {
		if got := nextID(ids, tc.current); got != tc.want {
			t.Fatalf("nextID(%d): expected %d, got %d", tc.current, tc.want, got)
		}
	}
	if got := nextID(nil, 3); got != view.NoID {
		t.Fatalf("expected NoID for empty ids, got %d", got)
	}
}
