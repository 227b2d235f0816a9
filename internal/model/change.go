package model

import "slices"

// ChangeKind classifies a notification emitted by Model.
type ChangeKind int

const (
	RowsInserted ChangeKind = iota
	RowsRemoved
	RowsMoved
	DataChanged
	ModelReset
)

func (k ChangeKind) String() string {
	switch k {
	case RowsInserted:
		return "rows-inserted"
	case RowsRemoved:
		return "rows-removed"
	case RowsMoved:
		return "rows-moved"
	case DataChanged:
		return "data-changed"
	case ModelReset:
		return "model-reset"
	default:
		return "unknown"
	}
}

// Change is delivered to observers after the model has updated its state.
//
// First and Last bound the affected rows (inclusive). For RowsMoved they
// name the source rows and Destination holds the target position in the
// pre-move sequence; see ApplyMove. For DataChanged, FirstColumn and
// LastColumn bound the columns and Roles lists the affected aspects (all
// aspects when empty).
type Change struct {
	Kind        ChangeKind
	First       int
	Last        int
	Destination int
	FirstColumn Column
	LastColumn  Column
	Roles       []Role
}

// HasRole reports whether a DataChanged notification covers role.
func (c Change) HasRole(role Role) bool {
	if len(c.Roles) == 0 {
		return true
	}
	return slices.Contains(c.Roles, role)
}
