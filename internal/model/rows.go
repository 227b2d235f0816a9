package model

import (
	"slices"

	"github.com/atomicstack/style-browser/internal/style"
)

// RowToEntity splits a linear row index into the entity kind it addresses
// and the offset within that kind's name list. Symbols occupy
// [0, symbolCount) and ramps [symbolCount, symbolCount+rampCount).
func RowToEntity(row, symbolCount, rampCount int) (style.Entity, int, bool) {
	if row < 0 || symbolCount < 0 || rampCount < 0 {
		return 0, 0, false
	}
	if row < symbolCount {
		return style.SymbolEntity, row, true
	}
	offset := row - symbolCount
	if offset >= rampCount {
		return 0, 0, false
	}
	return style.ColorRampEntity, offset, true
}

// EntityToRow is the inverse of RowToEntity.
func EntityToRow(kind style.Entity, offset, symbolCount int) int {
	if offset < 0 {
		return -1
	}
	if kind == style.ColorRampEntity {
		return symbolCount + offset
	}
	return offset
}

// MoveDestination converts a before/after position pair into the
// destination of a single-row move. The destination is expressed in the
// coordinates of the sequence before the move, so moving forward lands
// one past the new position.
func MoveDestination(oldPos, newPos int) int {
	if newPos > oldPos {
		return newPos + 1
	}
	return newPos
}

// ApplyMove replays a single-row move on a copy of items: the element at
// src is placed in front of the element that was at dst before the move.
// Moves that would leave the sequence unchanged (dst == src or
// dst == src+1) and out-of-range positions return an unmodified copy.
func ApplyMove[T any](items []T, src, dst int) []T {
	out := slices.Clone(items)
	if src < 0 || src >= len(out) || dst < 0 || dst > len(out) {
		return out
	}
	if dst == src || dst == src+1 {
		return out
	}
	item := out[src]
	out = slices.Delete(out, src, src+1)
	if dst > src {
		dst--
	}
	return slices.Insert(out, dst, item)
}
