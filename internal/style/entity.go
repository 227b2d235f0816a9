package style

import (
	"fmt"
	"strings"
)

// Entity identifies the kind of a named style item.
type Entity int

const (
	SymbolEntity Entity = iota
	ColorRampEntity
)

func (e Entity) String() string {
	switch e {
	case SymbolEntity:
		return "symbol"
	case ColorRampEntity:
		return "colorramp"
	default:
		return fmt.Sprintf("entity(%d)", int(e))
	}
}

// SymbolType is the geometry family a symbol renders.
type SymbolType int

const (
	MarkerSymbol SymbolType = iota
	LineSymbol
	FillSymbol
	HybridSymbol
)

var symbolTypeNames = []string{"marker", "line", "fill", "hybrid"}

func (t SymbolType) String() string {
	if t < 0 || int(t) >= len(symbolTypeNames) {
		return fmt.Sprintf("symboltype(%d)", int(t))
	}
	return symbolTypeNames[t]
}

// ParseSymbolType maps a case-insensitive name to a SymbolType.
func ParseSymbolType(raw string) (SymbolType, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for i, candidate := range symbolTypeNames {
		if name == candidate {
			return SymbolType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown symbol type %q", raw)
}

// SymbolTypes lists every symbol type in declaration order.
func SymbolTypes() []SymbolType {
	return []SymbolType{MarkerSymbol, LineSymbol, FillSymbol, HybridSymbol}
}

// Symbol is a named drawing recipe.
type Symbol struct {
	Name  string
	Type  SymbolType
	Color string
}

// ColorRamp is a named sequence of color stops.
type ColorRamp struct {
	Name  string
	Stops []string
}

// Tag is a label that can be attached to any entity.
type Tag struct {
	ID   int
	Name string
}
