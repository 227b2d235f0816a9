package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/style-browser/internal/style"
)

type recorder struct {
	changes []Change
}

func (r *recorder) record(c Change) { r.changes = append(r.changes, c) }

func newLibrary(t *testing.T, symbols, ramps []string) *style.Library {
	t.Helper()
	lib := style.NewLibrary()
	for _, name := range symbols {
		require.NoError(t, lib.AddSymbol(style.Symbol{Name: name, Type: style.MarkerSymbol}))
	}
	for _, name := range ramps {
		require.NoError(t, lib.AddColorRamp(style.ColorRamp{Name: name, Stops: []string{"#000000", "#ffffff"}}))
	}
	return lib
}

func newRecordedModel(t *testing.T, lib *style.Library) (*Model, *recorder) {
	t.Helper()
	m := New(lib)
	t.Cleanup(m.Close)
	rec := &recorder{}
	m.Subscribe(rec.record)
	return m, rec
}

func rowNames(m *Model) []string {
	out := make([]string, 0, m.RowCount())
	for row := 0; row < m.RowCount(); row++ {
		_, name, _ := m.EntityAt(row)
		out = append(out, name)
	}
	return out
}

func TestRowsSplitBetweenSymbolsAndRamps(t *testing.T) {
	lib := newLibrary(t, []string{"beta", "alpha"}, []string{"gamma"})
	m, _ := newRecordedModel(t, lib)

	require.Equal(t, 3, m.RowCount())
	require.Equal(t, 2, m.ColumnCount())

	kind, name, ok := m.EntityAt(2)
	require.True(t, ok)
	require.Equal(t, style.ColorRampEntity, kind)
	require.Equal(t, "gamma", name)

	kind, name, ok = m.EntityAt(0)
	require.True(t, ok)
	require.Equal(t, style.SymbolEntity, kind)
	require.Equal(t, "alpha", name)

	_, _, ok = m.EntityAt(3)
	require.False(t, ok)
	require.Equal(t, 2, m.RowOf(style.ColorRampEntity, "gamma"))
	require.Equal(t, -1, m.RowOf(style.SymbolEntity, "gamma"))
}

func TestDataRoles(t *testing.T) {
	lib := newLibrary(t, []string{"dot"}, []string{"heat"})
	require.NoError(t, lib.AddSymbol(style.Symbol{Name: "road", Type: style.LineSymbol}))
	require.NoError(t, lib.TagEntity(style.SymbolEntity, "road", "transport", "asphalt"))
	m, _ := newRecordedModel(t, lib)

	tests := []struct {
		name string
		row  int
		col  Column
		role Role
		want any
		ok   bool
	}{
		{"display name", 1, ColumnName, RoleDisplay, "road", true},
		{"edit name", 1, ColumnName, RoleEdit, "road", true},
		{"tooltip with tags", 1, ColumnName, RoleToolTip, "road\nasphalt, transport", true},
		{"tooltip untagged", 0, ColumnName, RoleToolTip, "dot\nNot tagged", true},
		{"tags column", 1, ColumnTags, RoleDisplay, "asphalt, transport", true},
		{"empty tags column", 2, ColumnTags, RoleDisplay, "", true},
		{"tag list", 1, ColumnName, RoleTags, []string{"asphalt", "transport"}, true},
		{"entity symbol", 0, ColumnName, RoleEntity, style.SymbolEntity, true},
		{"entity ramp", 2, ColumnTags, RoleEntity, style.ColorRampEntity, true},
		{"symbol type", 1, ColumnName, RoleSymbolType, style.LineSymbol, true},
		{"ramp has no symbol type", 2, ColumnName, RoleSymbolType, nil, false},
		{"no previewer no decoration", 0, ColumnName, RoleDecoration, nil, false},
		{"negative row", -1, ColumnName, RoleDisplay, nil, false},
		{"row past end", 3, ColumnName, RoleDisplay, nil, false},
		{"bad column", 0, Column(2), RoleDisplay, nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.Data(tc.row, tc.col, tc.role)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSetDataRenamesThroughRegistry(t *testing.T) {
	lib := newLibrary(t, []string{"a", "b"}, []string{"r"})
	m, _ := newRecordedModel(t, lib)

	require.True(t, m.SetData(0, ColumnName, "c"))
	require.Equal(t, []string{"b", "c"}, lib.SymbolNames())

	require.True(t, m.SetData(2, ColumnName, "s"))
	require.Equal(t, []string{"s"}, lib.ColorRampNames())

	require.False(t, m.SetData(0, ColumnName, "c"), "duplicate names are rejected")
	require.False(t, m.SetData(0, ColumnTags, "x"), "tags are never editable")
	require.False(t, m.SetData(9, ColumnName, "x"))
	require.Equal(t, []string{"b", "c", "s"}, rowNames(m))

	require.Equal(t, Selectable|Editable, m.Flags(ColumnName))
	require.Equal(t, Selectable, m.Flags(ColumnTags))
	header, ok := m.HeaderData(ColumnTags)
	require.True(t, ok)
	require.Equal(t, "Tags", header)
}

func TestAddAndRemoveSymbolKeepOtherRows(t *testing.T) {
	lib := newLibrary(t, []string{"alpha", "delta"}, []string{"ramp"})
	m, rec := newRecordedModel(t, lib)
	before := rowNames(m)

	require.NoError(t, lib.AddSymbol(style.Symbol{Name: "charlie"}))
	require.Equal(t, []Change{{Kind: RowsInserted, First: 1, Last: 1}}, rec.changes)
	require.Equal(t, 1, m.RowOf(style.SymbolEntity, "charlie"))
	require.Equal(t, []string{"alpha", "charlie", "delta", "ramp"}, rowNames(m))

	require.NoError(t, lib.RemoveSymbol("charlie"))
	require.Equal(t, Change{Kind: RowsRemoved, First: 1, Last: 1}, rec.changes[1])
	require.Equal(t, before, rowNames(m))
}

func TestRampRowsAreOffsetBySymbolCount(t *testing.T) {
	lib := newLibrary(t, []string{"a", "b"}, []string{"m", "z"})
	m, rec := newRecordedModel(t, lib)

	require.NoError(t, lib.AddColorRamp(style.ColorRamp{Name: "q"}))
	require.NoError(t, lib.RemoveColorRamp("m"))
	require.True(t, lib.RenameColorRamp("z", "c"))

	require.Equal(t, []Change{
		{Kind: RowsInserted, First: 3, Last: 3},
		{Kind: RowsRemoved, First: 2, Last: 2},
		{Kind: RowsMoved, First: 3, Last: 3, Destination: 2},
	}, rec.changes)
	require.Equal(t, []string{"a", "b", "c", "q"}, rowNames(m))
}

func TestRenameWithinSamePositionOnlyRefreshes(t *testing.T) {
	lib := newLibrary(t, []string{"a", "c", "e"}, nil)
	m, rec := newRecordedModel(t, lib)

	require.True(t, lib.RenameSymbol("c", "d"))
	require.Len(t, rec.changes, 1)
	require.Equal(t, DataChanged, rec.changes[0].Kind)
	require.Equal(t, 1, rec.changes[0].First)
	require.Equal(t, []string{"a", "d", "e"}, rowNames(m))
}

func TestRenameMovesRowAndReplayMatchesRegistry(t *testing.T) {
	tests := []struct {
		name     string
		symbols  []string
		old, new string
		want     Change
	}{
		{"backward", []string{"b", "c", "d"}, "d", "a", Change{Kind: RowsMoved, First: 2, Last: 2, Destination: 0}},
		{"forward", []string{"a", "b", "c"}, "a", "d", Change{Kind: RowsMoved, First: 0, Last: 0, Destination: 3}},
		{"forward one", []string{"a", "c", "e"}, "a", "d", Change{Kind: RowsMoved, First: 0, Last: 0, Destination: 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lib := newLibrary(t, tc.symbols, nil)
			m, rec := newRecordedModel(t, lib)
			before := rowNames(m)

			require.True(t, lib.RenameSymbol(tc.old, tc.new))
			require.Equal(t, []Change{tc.want}, rec.changes)

			replayed := ApplyMove(before, tc.want.First, tc.want.Destination)
			for i, name := range replayed {
				if name == tc.old {
					replayed[i] = tc.new
				}
			}
			require.Equal(t, lib.SymbolNames(), replayed)
			require.Equal(t, lib.SymbolNames(), rowNames(m))
		})
	}
}

func TestTagsChangedScopesToTagsColumn(t *testing.T) {
	lib := newLibrary(t, []string{"a"}, []string{"r"})
	_, rec := newRecordedModel(t, lib)

	require.NoError(t, lib.TagEntity(style.ColorRampEntity, "r", "warm"))
	require.Len(t, rec.changes, 1)
	change := rec.changes[0]
	require.Equal(t, DataChanged, change.Kind)
	require.Equal(t, 1, change.First)
	require.Equal(t, ColumnTags, change.FirstColumn)
	require.Equal(t, ColumnTags, change.LastColumn)
	require.True(t, change.HasRole(RoleTags))
	require.False(t, change.HasRole(RoleDecoration))
}

func TestUnknownNamesAreIgnored(t *testing.T) {
	lib := newLibrary(t, []string{"a", "b"}, nil)
	m, rec := newRecordedModel(t, lib)

	m.handleEvent(style.Event{Type: style.EntityRemoved, Entity: style.SymbolEntity, Name: "ghost"})
	m.handleEvent(style.Event{Type: style.EntityAdded, Entity: style.SymbolEntity, Name: "ghost"})
	m.handleEvent(style.Event{Type: style.EntityRenamed, Entity: style.SymbolEntity, OldName: "ghost", Name: "a"})
	m.handleEvent(style.Event{Type: style.EntityRenamed, Entity: style.SymbolEntity, OldName: "a", Name: "ghost"})
	m.handleEvent(style.Event{Type: style.EntityTagsChanged, Entity: style.SymbolEntity, Name: "ghost"})

	require.Empty(t, rec.changes)
	require.Equal(t, []string{"a", "b"}, rowNames(m))
}

func TestOutOfStepCacheTriggersReset(t *testing.T) {
	lib := newLibrary(t, []string{"a"}, nil)
	m, rec := newRecordedModel(t, lib)
	m.Close()

	require.NoError(t, lib.AddSymbol(style.Symbol{Name: "b"}))
	require.NoError(t, lib.AddSymbol(style.Symbol{Name: "c"}))
	require.Equal(t, []string{"a"}, rowNames(m), "a closed model stops following the registry")

	m.handleEvent(style.Event{Type: style.EntityAdded, Entity: style.SymbolEntity, Name: "c"})
	require.Equal(t, []Change{{Kind: ModelReset, First: 0, Last: 2}}, rec.changes)
	require.Equal(t, []string{"a", "b", "c"}, rowNames(m))
}

func TestRefreshReloadsRowsWithSingleReset(t *testing.T) {
	lib := newLibrary(t, []string{"a", "c"}, []string{"heat"})
	m, rec := newRecordedModel(t, lib)
	m.Close()

	require.NoError(t, lib.AddSymbol(style.Symbol{Name: "b"}))
	require.NoError(t, lib.RemoveColorRamp("heat"))
	require.Equal(t, []string{"a", "c", "heat"}, rowNames(m))
	require.Empty(t, rec.changes)

	m.Refresh()
	require.Equal(t, []Change{{Kind: ModelReset, First: 0, Last: 2}}, rec.changes)
	require.Equal(t, []string{"a", "b", "c"}, rowNames(m))
}

type fakePreviewer struct {
	calls []Image
	fail  map[Size]bool
}

func (f *fakePreviewer) Preview(kind style.Entity, name string, size Size, padding int) (string, error) {
	if f.fail[size] {
		return "", errors.New("render failed")
	}
	f.calls = append(f.calls, Image{Size: size, Padding: padding})
	return kind.String() + ":" + name + "@" + size.String(), nil
}

func TestDecorationRendersDefaultAndRequestedSizes(t *testing.T) {
	lib := newLibrary(t, []string{"dot"}, []string{"heat"})
	m, _ := newRecordedModel(t, lib)
	prev := &fakePreviewer{fail: map[Size]bool{{Width: 16, Height: 16}: true}}
	m.SetPreviewer(prev)
	m.SetPreviewSizes([]Size{{Width: 48, Height: 48}, {Width: 16, Height: 16}})

	value, ok := m.Data(1, ColumnName, RoleDecoration)
	require.True(t, ok)
	icon, isIcon := value.(Icon)
	require.True(t, isIcon)
	require.Equal(t, style.ColorRampEntity, icon.Entity)
	require.Len(t, icon.Images, 2, "failed renders are skipped")
	require.Equal(t, Image{Size: DefaultPreviewSize, Padding: 1, Content: "colorramp:heat@24x24"}, icon.Images[0])
	require.Equal(t, 7, icon.Images[1].Padding)

	best, ok := icon.Best(40)
	require.True(t, ok)
	require.Equal(t, 48, best.Size.Width)

	_, ok = m.Data(1, ColumnTags, RoleDecoration)
	require.False(t, ok)
	require.Equal(t, []Size{{Width: 48, Height: 48}, {Width: 16, Height: 16}}, m.PreviewSizes())
}

func TestEntityChangedRefreshesDecoration(t *testing.T) {
	lib := newLibrary(t, []string{"dot"}, nil)
	_, rec := newRecordedModel(t, lib)

	require.NoError(t, lib.UpdateSymbol(style.Symbol{Name: "dot", Type: style.FillSymbol}))
	require.Len(t, rec.changes, 1)
	require.True(t, rec.changes[0].HasRole(RoleDecoration))
	require.True(t, rec.changes[0].HasRole(RoleSymbolType))
}

func TestParseSize(t *testing.T) {
	size, err := ParseSize(" 32x16 ")
	require.NoError(t, err)
	require.Equal(t, Size{Width: 32, Height: 16}, size)

	size, err = ParseSize("48")
	require.NoError(t, err)
	require.Equal(t, Size{Width: 48, Height: 48}, size)

	for _, bad := range []string{"", "x", "0x4", "ax3"} {
		_, err := ParseSize(bad)
		require.Error(t, err, bad)
	}
}
