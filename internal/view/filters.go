package view

import (
	"github.com/atomicstack/style-browser/internal/logging/events"
	"github.com/atomicstack/style-browser/internal/style"
)

// FilterText returns the free-text filter.
func (v *View) FilterText() string { return v.filterText }

// SetFilterText keeps rows whose name or tags contain text,
// case-insensitively. An empty string disables the filter.
func (v *View) SetFilterText(text string) {
	v.filterText = text
	v.invalidate()
	events.View.Filter("text", text, v.RowCount())
}

// FavoritesOnly reports whether only favorited entities are shown.
func (v *View) FavoritesOnly() bool { return v.favoritesOnly }

// SetFavoritesOnly restricts the rows to favorited entities.
func (v *View) SetFavoritesOnly(favoritesOnly bool) {
	v.favoritesOnly = favoritesOnly
	v.refreshFavorites()
	v.invalidate()
	events.View.Filter("favorites", favoritesOnly, v.RowCount())
}

// EntityFilter returns the entity kind used when the entity filter is on.
func (v *View) EntityFilter() style.Entity { return v.entityFilter }

// SetEntityFilter sets the entity kind rows must have while the entity
// filter is enabled.
func (v *View) SetEntityFilter(kind style.Entity) {
	v.entityFilter = kind
	v.invalidate()
	events.View.Filter("entity", kind.String(), v.RowCount())
}

// EntityFilterEnabled reports whether the entity filter applies.
func (v *View) EntityFilterEnabled() bool { return v.entityFilterEnabled }

// SetEntityFilterEnabled turns the entity filter on or off.
func (v *View) SetEntityFilterEnabled(enabled bool) {
	v.entityFilterEnabled = enabled
	v.invalidate()
	events.View.Filter("entity.enabled", enabled, v.RowCount())
}

// SymbolType returns the symbol type used when the type filter is on.
func (v *View) SymbolType() style.SymbolType { return v.symbolType }

// SetSymbolType sets the symbol type rows must have while the symbol type
// filter is enabled. Ramps never match.
func (v *View) SetSymbolType(typ style.SymbolType) {
	v.symbolType = typ
	v.invalidate()
	events.View.Filter("symboltype", typ.String(), v.RowCount())
}

// SymbolTypeFilterEnabled reports whether the symbol type filter applies.
func (v *View) SymbolTypeFilterEnabled() bool { return v.symbolTypeFilterEnabled }

// SetSymbolTypeFilterEnabled turns the symbol type filter on or off.
func (v *View) SetSymbolTypeFilterEnabled(enabled bool) {
	v.symbolTypeFilterEnabled = enabled
	v.invalidate()
	events.View.Filter("symboltype.enabled", enabled, v.RowCount())
}

// TagID returns the tag filter, or NoID.
func (v *View) TagID() int { return v.tagID }

// SetTagID keeps rows carrying the tag id. A negative id disables the
// filter.
func (v *View) SetTagID(id int) {
	if id < 0 {
		id = NoID
	}
	v.tagID = id
	v.refreshTagged()
	v.invalidate()
	events.View.Filter("tag", id, v.RowCount())
}

// SmartGroupID returns the smart group filter, or NoID.
func (v *View) SmartGroupID() int { return v.smartGroupID }

// SetSmartGroupID keeps rows belonging to the smart group. A negative id
// disables the filter.
func (v *View) SetSmartGroupID(id int) {
	if id < 0 {
		id = NoID
	}
	v.smartGroupID = id
	v.refreshSmartGroup()
	v.invalidate()
	events.View.Filter("smartgroup", id, v.RowCount())
}

func (v *View) refreshTagged() {
	if v.tagID < 0 {
		v.taggedNames = nil
		return
	}
	v.taggedNames = newNameSet(
		v.registry.NamesWithTag(style.SymbolEntity, v.tagID),
		v.registry.NamesWithTag(style.ColorRampEntity, v.tagID),
	)
	events.View.Membership("tag", len(v.taggedNames))
}

func (v *View) refreshSmartGroup() {
	if v.smartGroupID < 0 {
		v.smartGroupNames = nil
		return
	}
	v.smartGroupNames = newNameSet(
		v.registry.NamesInSmartGroup(style.SymbolEntity, v.smartGroupID),
		v.registry.NamesInSmartGroup(style.ColorRampEntity, v.smartGroupID),
	)
	events.View.Membership("smartgroup", len(v.smartGroupNames))
}

func (v *View) refreshFavorites() {
	if !v.favoritesOnly {
		v.favoritedNames = nil
		return
	}
	v.favoritedNames = newNameSet(
		v.registry.FavoritesOf(style.SymbolEntity),
		v.registry.FavoritesOf(style.ColorRampEntity),
	)
	events.View.Membership("favorites", len(v.favoritedNames))
}

// refreshMembership recomputes the membership sets an event may have
// shifted. It runs before the model sees the event.
func (v *View) refreshMembership(evt style.Event) {
	var tagged, grouped, favorites bool
	switch evt.Type {
	case style.EntityTagsChanged:
		tagged, grouped = true, true
	case style.EntityFavoritedChanged:
		favorites = true
	case style.SmartGroupsChanged:
		grouped = true
	case style.EntityRenamed, style.EntityAdded, style.EntityRemoved:
		// every cached set is keyed by name
		tagged, grouped, favorites = true, true, true
	default:
		return
	}

	if tagged && v.tagID >= 0 {
		v.refreshTagged()
		v.membershipDirty = true
	}
	if grouped && v.smartGroupID >= 0 {
		v.refreshSmartGroup()
		v.membershipDirty = true
	}
	if favorites && v.favoritesOnly {
		v.refreshFavorites()
		v.membershipDirty = true
	}
}

// flushMembership re-filters after the model has handled an event whose
// set changes produced no row change of their own, such as a favorite
// toggle.
func (v *View) flushMembership(style.Event) {
	if v.membershipDirty {
		v.invalidate()
	}
}
