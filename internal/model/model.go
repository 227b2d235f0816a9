// Package model exposes the symbols and color ramps of a style registry as
// a two-column table (Name, Tags). The table caches the registry's name
// lists and patches them row by row as registry events arrive, so observers
// holding row indices (selections, scroll offsets) only see the rows that
// actually moved.
package model

import (
	"slices"

	"github.com/atomicstack/style-browser/internal/logging/events"
	"github.com/atomicstack/style-browser/internal/style"
)

type observer struct {
	id int
	fn func(Change)
}

// Model is the table over a style.Registry. It is bound to a single
// registry for its whole life and must be used from the goroutine that
// mutates that registry.
type Model struct {
	registry    style.Registry
	symbolNames []string
	rampNames   []string

	previewer    Previewer
	previewSizes []Size

	observers    []observer
	nextObserver int
	unsubscribe  func()
}

// New builds a model over reg and subscribes to its events.
func New(reg style.Registry) *Model {
	m := &Model{
		registry:    reg,
		symbolNames: reg.SymbolNames(),
		rampNames:   reg.ColorRampNames(),
	}
	m.unsubscribe = reg.Subscribe(m.handleEvent)
	return m
}

// Close detaches the model from its registry. The cached rows stay
// readable but no longer follow registry changes.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Registry returns the registry the model mirrors.
func (m *Model) Registry() style.Registry {
	return m.registry
}

// Subscribe registers fn for change notifications and returns a function
// removing it.
func (m *Model) Subscribe(fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	m.nextObserver++
	id := m.nextObserver
	m.observers = append(m.observers, observer{id: id, fn: fn})
	return func() {
		m.observers = slices.DeleteFunc(m.observers, func(o observer) bool {
			return o.id == id
		})
	}
}

func (m *Model) notify(change Change) {
	for _, o := range slices.Clone(m.observers) {
		o.fn(change)
	}
}

// RowCount returns the number of symbol and ramp rows.
func (m *Model) RowCount() int {
	return len(m.symbolNames) + len(m.rampNames)
}

// ColumnCount is always 2.
func (m *Model) ColumnCount() int {
	return columnCount
}

// SymbolCount returns the number of cached symbol rows.
func (m *Model) SymbolCount() int {
	return len(m.symbolNames)
}

// EntityAt resolves a row to its entity kind and name.
func (m *Model) EntityAt(row int) (style.Entity, string, bool) {
	kind, offset, ok := RowToEntity(row, len(m.symbolNames), len(m.rampNames))
	if !ok {
		return 0, "", false
	}
	return kind, m.names(kind)[offset], true
}

// RowOf returns the row of the named entity, or -1.
func (m *Model) RowOf(kind style.Entity, name string) int {
	return EntityToRow(kind, slices.Index(m.names(kind), name), len(m.symbolNames))
}

// Refresh discards the cached name lists and reloads them from the
// registry, notifying observers with ModelReset.
func (m *Model) Refresh() {
	m.reset("refresh")
}

func (m *Model) names(kind style.Entity) []string {
	if kind == style.ColorRampEntity {
		return m.rampNames
	}
	return m.symbolNames
}

func (m *Model) fetch(kind style.Entity) []string {
	if kind == style.ColorRampEntity {
		return m.registry.ColorRampNames()
	}
	return m.registry.SymbolNames()
}

func (m *Model) setNames(kind style.Entity, names []string) {
	if kind == style.ColorRampEntity {
		m.rampNames = names
		return
	}
	m.symbolNames = names
}

// rowOffset is the first row of kind's range.
func (m *Model) rowOffset(kind style.Entity) int {
	return EntityToRow(kind, 0, len(m.symbolNames))
}

func (m *Model) reset(reason string) {
	m.symbolNames = m.registry.SymbolNames()
	m.rampNames = m.registry.ColorRampNames()
	events.Model.Reset(reason, m.RowCount())
	m.notify(Change{Kind: ModelReset, First: 0, Last: m.RowCount() - 1})
}

func (m *Model) handleEvent(evt style.Event) {
	switch evt.Type {
	case style.EntityAdded:
		m.onAdded(evt.Entity, evt.Name)
	case style.EntityRemoved:
		m.onRemoved(evt.Entity, evt.Name)
	case style.EntityRenamed:
		m.onRenamed(evt.Entity, evt.OldName, evt.Name)
	case style.EntityTagsChanged:
		m.onTagsChanged(evt.Entity, evt.Name)
	case style.EntityChanged:
		m.onChanged(evt.Entity, evt.Name)
	}
}

func (m *Model) onAdded(kind style.Entity, name string) {
	old := m.names(kind)
	fresh := m.fetch(kind)
	pos := slices.Index(fresh, name)
	if pos < 0 {
		events.Model.Ignored("added", kind.String(), name)
		return
	}
	if len(fresh) != len(old)+1 {
		m.reset("added: cached rows out of step")
		return
	}
	row := m.rowOffset(kind) + pos
	m.setNames(kind, fresh)
	events.Model.Inserted(kind.String(), name, row)
	m.notify(Change{Kind: RowsInserted, First: row, Last: row})
}

func (m *Model) onRemoved(kind style.Entity, name string) {
	old := m.names(kind)
	pos := slices.Index(old, name)
	if pos < 0 {
		events.Model.Ignored("removed", kind.String(), name)
		return
	}
	fresh := m.fetch(kind)
	if len(fresh) != len(old)-1 {
		m.reset("removed: cached rows out of step")
		return
	}
	row := m.rowOffset(kind) + pos
	m.setNames(kind, fresh)
	events.Model.Removed(kind.String(), name, row)
	m.notify(Change{Kind: RowsRemoved, First: row, Last: row})
}

func (m *Model) onRenamed(kind style.Entity, oldName, newName string) {
	old := m.names(kind)
	fresh := m.fetch(kind)
	oldPos := slices.Index(old, oldName)
	if oldPos < 0 {
		events.Model.Ignored("renamed", kind.String(), oldName)
		return
	}
	newPos := slices.Index(fresh, newName)
	if newPos < 0 {
		events.Model.Ignored("renamed", kind.String(), newName)
		return
	}
	if len(fresh) != len(old) {
		m.reset("renamed: cached rows out of step")
		return
	}
	offset := m.rowOffset(kind)
	if oldPos == newPos {
		m.setNames(kind, fresh)
		row := offset + newPos
		events.Model.Refreshed(kind.String(), newName, row)
		m.notify(Change{Kind: DataChanged, First: row, Last: row, FirstColumn: ColumnName, LastColumn: ColumnTags})
		return
	}
	from := offset + oldPos
	to := offset + MoveDestination(oldPos, newPos)
	m.setNames(kind, fresh)
	events.Model.Moved(kind.String(), oldName, newName, from, to)
	m.notify(Change{Kind: RowsMoved, First: from, Last: from, Destination: to})
}

func (m *Model) onTagsChanged(kind style.Entity, name string) {
	row := m.RowOf(kind, name)
	if row < 0 {
		events.Model.Ignored("tags-changed", kind.String(), name)
		return
	}
	m.notify(Change{
		Kind:        DataChanged,
		First:       row,
		Last:        row,
		FirstColumn: ColumnTags,
		LastColumn:  ColumnTags,
		Roles:       []Role{RoleDisplay, RoleEdit, RoleToolTip, RoleTags},
	})
}

func (m *Model) onChanged(kind style.Entity, name string) {
	row := m.RowOf(kind, name)
	if row < 0 {
		events.Model.Ignored("changed", kind.String(), name)
		return
	}
	m.notify(Change{
		Kind:        DataChanged,
		First:       row,
		Last:        row,
		FirstColumn: ColumnName,
		LastColumn:  ColumnName,
		Roles:       []Role{RoleDecoration, RoleSymbolType},
	})
}
