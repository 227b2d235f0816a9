package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/style-browser/internal/logging"
	"github.com/atomicstack/style-browser/internal/logging/events"
	"github.com/atomicstack/style-browser/internal/style"
	"github.com/atomicstack/style-browser/internal/view"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeBrowse {
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		m.startRenameForm()
	case "up":
		m.moveCursor(m.level.MoveCursorUp)
	case "down":
		m.moveCursor(m.level.MoveCursorDown)
	case "pgup":
		m.moveCursor(func() bool { return m.level.MoveCursorPageUp(m.maxVisibleItems()) })
	case "pgdown":
		m.moveCursor(func() bool { return m.level.MoveCursorPageDown(m.maxVisibleItems()) })
	case "home":
		m.moveCursor(m.level.MoveCursorHome)
	case "end":
		m.moveCursor(m.level.MoveCursorEnd)
	case "tab":
		m.cycleEntityFilter()
	case "ctrl+y":
		m.cycleSymbolType()
	case "ctrl+t":
		m.cycleTag()
	case "ctrl+g":
		m.cycleSmartGroup()
	case "ctrl+f":
		m.toggleFavoritesOnly()
	case "ctrl+s":
		m.toggleFavorite()
	case "ctrl+r":
		m.toggleSortOrder()
	case "f1":
		m.showFooter = !m.showFooter
		m.syncViewport()
	}
	return nil
}

// handleEscapeKey clears an active query first and quits otherwise.
func (m *Model) handleEscapeKey() tea.Cmd {
	if m.clearFilter() {
		return nil
	}
	return tea.Quit
}

func (m *Model) moveCursor(move func() bool) {
	if move() {
		kind, name, _ := m.level.Selected()
		events.UI.Cursor(m.level.Cursor, kind.String(), name)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.level.EnsureCursorVisible(m.maxVisibleItems())
}

// afterFilterChange runs after a hotkey changed one of the view's filters.
// The level has already followed its selection through the view's
// notification; only the viewport and status need refreshing.
func (m *Model) afterFilterChange(key string, value interface{}) {
	events.UI.Hotkey(key, value)
	m.errMsg = ""
	m.forceClearInfo()
	m.syncViewport()
}

// cycleEntityFilter steps through all rows, symbols only and ramps only.
func (m *Model) cycleEntityFilter() {
	v := m.view
	switch {
	case !v.EntityFilterEnabled():
		v.SetEntityFilter(style.SymbolEntity)
		v.SetEntityFilterEnabled(true)
	case v.EntityFilter() == style.SymbolEntity:
		v.SetEntityFilter(style.ColorRampEntity)
	default:
		v.SetEntityFilterEnabled(false)
	}
	m.afterFilterChange("entity", entityFilterLabel(v))
}

// cycleSymbolType steps through every symbol type and then off.
func (m *Model) cycleSymbolType() {
	v := m.view
	types := style.SymbolTypes()
	if !v.SymbolTypeFilterEnabled() {
		v.SetSymbolType(types[0])
		v.SetSymbolTypeFilterEnabled(true)
	} else if next := indexOf(types, v.SymbolType()) + 1; next < len(types) {
		v.SetSymbolType(types[next])
	} else {
		v.SetSymbolTypeFilterEnabled(false)
	}
	m.afterFilterChange("symbol-type", symbolTypeLabel(v))
}

// cycleTag steps through the library's tags and then off.
func (m *Model) cycleTag() {
	tags := m.library.Tags()
	ids := make([]int, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	m.view.SetTagID(nextID(ids, m.view.TagID()))
	m.afterFilterChange("tag", m.tagLabel())
	if len(ids) == 0 {
		m.setInfo("No tags defined.")
	}
}

// cycleSmartGroup steps through the library's smart groups and then off.
func (m *Model) cycleSmartGroup() {
	groups := m.library.SmartGroups()
	ids := make([]int, len(groups))
	for i, group := range groups {
		ids[i] = group.ID
	}
	m.view.SetSmartGroupID(nextID(ids, m.view.SmartGroupID()))
	m.afterFilterChange("smart-group", m.smartGroupLabel())
	if len(ids) == 0 {
		m.setInfo("No smart groups defined.")
	}
}

func (m *Model) toggleFavoritesOnly() {
	m.view.SetFavoritesOnly(!m.view.FavoritesOnly())
	m.afterFilterChange("favorites", m.view.FavoritesOnly())
}

func (m *Model) toggleSortOrder() {
	order := view.Ascending
	if m.view.SortOrder() == view.Ascending {
		order = view.Descending
	}
	m.view.Sort(order)
	m.afterFilterChange("sort", order.String())
}

// toggleFavorite flips the favorite flag of the selected entity. With the
// favorites filter on, unfavoriting hides the row and the cursor moves to
// its neighbour.
func (m *Model) toggleFavorite() {
	kind, name, ok := m.level.Selected()
	if !ok {
		return
	}
	favorite := !m.library.IsFavorite(kind, name)
	if err := m.library.SetFavorite(kind, name, favorite); err != nil {
		logging.Error(err)
		events.Action.Error(err)
		m.errMsg = err.Error()
		return
	}
	events.Action.Favorite(kind.String(), name, favorite)
	verb := "Unfavorited"
	if favorite {
		verb = "Favorited"
	}
	info := fmt.Sprintf("%s %s", verb, name)
	events.Action.Success(info)
	m.errMsg = ""
	m.setInfo(info)
	m.syncViewport()
}

func indexOf[T comparable](items []T, want T) int {
	for i, item := range items {
		if item == want {
			return i
		}
	}
	return -1
}

// nextID returns the id after current in ids, view.NoID after the last
// one, and the first id when current is not in ids.
func nextID(ids []int, current int) int {
	if len(ids) == 0 {
		return view.NoID
	}
	if current == view.NoID {
		return ids[0]
	}
	idx := indexOf(ids, current)
	if idx < 0 {
		return ids[0]
	}
	if idx+1 < len(ids) {
		return ids[idx+1]
	}
	return view.NoID
}
