package model

import (
	"fmt"
	"strings"

	"github.com/atomicstack/style-browser/internal/logging/events"
	"github.com/atomicstack/style-browser/internal/style"
)

// Column addresses one of the two table columns.
type Column int

const (
	ColumnName Column = iota
	ColumnTags
)

const columnCount = 2

// Role selects which aspect of a cell Data returns.
type Role int

const (
	// RoleDisplay is the cell text.
	RoleDisplay Role = iota
	// RoleEdit is the value an editor starts from.
	RoleEdit
	// RoleToolTip is the name followed by its tags.
	RoleToolTip
	// RoleDecoration is an Icon rendered by the Previewer.
	RoleDecoration
	// RoleEntity is the style.Entity of the row.
	RoleEntity
	// RoleTags is the []string of tags of the row.
	RoleTags
	// RoleSymbolType is the style.SymbolType of a symbol row.
	RoleSymbolType
)

// ItemFlags describe what a consumer may do with a cell.
type ItemFlags int

const (
	Selectable ItemFlags = 1 << iota
	Editable
)

const notTagged = "Not tagged"

// Data returns the value of a cell for role. The second result is false
// when the cell has no value for that role, including out-of-range rows
// and columns.
func (m *Model) Data(row int, col Column, role Role) (any, bool) {
	if col < 0 || int(col) >= columnCount {
		return nil, false
	}
	kind, name, ok := m.EntityAt(row)
	if !ok {
		return nil, false
	}

	switch role {
	case RoleDisplay, RoleEdit, RoleToolTip:
		tags := m.registry.TagsOf(kind, name)
		if col == ColumnTags {
			return strings.Join(tags, ", "), true
		}
		if role != RoleToolTip {
			return name, true
		}
		if len(tags) == 0 {
			return fmt.Sprintf("%s\n%s", name, notTagged), true
		}
		return fmt.Sprintf("%s\n%s", name, strings.Join(tags, ", ")), true

	case RoleDecoration:
		if col != ColumnName {
			return nil, false
		}
		return m.decoration(kind, name)

	case RoleEntity:
		return kind, true

	case RoleTags:
		return m.registry.TagsOf(kind, name), true

	case RoleSymbolType:
		if kind != style.SymbolEntity {
			return nil, false
		}
		typ, ok := m.registry.SymbolType(name)
		if !ok {
			return nil, false
		}
		return typ, true
	}
	return nil, false
}

// SetData renames the entity of row when col is ColumnName. It reports
// the registry's verdict; the Tags column is never editable.
func (m *Model) SetData(row int, col Column, value string) bool {
	if col != ColumnName {
		return false
	}
	kind, name, ok := m.EntityAt(row)
	if !ok {
		return false
	}
	var renamed bool
	if kind == style.ColorRampEntity {
		renamed = m.registry.RenameColorRamp(name, value)
	} else {
		renamed = m.registry.RenameSymbol(name, value)
	}
	events.Model.Rename(kind.String(), name, value, renamed)
	return renamed
}

// Flags reports the capabilities of cells in col.
func (m *Model) Flags(col Column) ItemFlags {
	switch col {
	case ColumnName:
		return Selectable | Editable
	case ColumnTags:
		return Selectable
	}
	return 0
}

// HeaderData returns the title of a column.
func (m *Model) HeaderData(col Column) (string, bool) {
	switch col {
	case ColumnName:
		return "Name", true
	case ColumnTags:
		return "Tags", true
	}
	return "", false
}
