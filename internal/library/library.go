// Package library reads style library files. A library file is TOML with
// one table array per entity kind:
//
//	[[symbol]]
//	name = "river"
//	type = "line"
//	color = "#3070c0"
//	tags = ["water"]
//	favorite = true
//
//	[[ramp]]
//	name = "heat"
//	stops = ["#0000ff", "#ffff00", "#ff0000"]
//
//	[[smartgroup]]
//	name = "blue things"
//	match = "any"
//	conditions = [{ op = "tag", param = "water" }, { op = "name", param = "blue" }]
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/atomicstack/style-browser/internal/logging/events"
	"github.com/atomicstack/style-browser/internal/style"
)

// ErrInvalid marks a library file that parsed but describes an impossible
// library.
var ErrInvalid = errors.New("invalid library")

// SymbolEntry is a symbol together with its tags and favorite flag.
type SymbolEntry struct {
	Symbol   style.Symbol
	Tags     []string
	Favorite bool
}

// RampEntry is a color ramp together with its tags and favorite flag.
type RampEntry struct {
	Ramp     style.ColorRamp
	Tags     []string
	Favorite bool
}

// SmartGroupEntry is a smart group definition. IDs are assigned by the
// registry, so only the name identifies a group in a file.
type SmartGroupEntry struct {
	Name       string
	MatchAll   bool
	Conditions []style.Condition
}

// Snapshot is the full content of a library file.
type Snapshot struct {
	Path        string
	Symbols     []SymbolEntry
	Ramps       []RampEntry
	SmartGroups []SmartGroupEntry
}

type fileCondition struct {
	Op    string `toml:"op"`
	Param string `toml:"param"`
}

type fileSymbol struct {
	Name     string   `toml:"name"`
	Type     string   `toml:"type"`
	Color    string   `toml:"color"`
	Tags     []string `toml:"tags"`
	Favorite bool     `toml:"favorite"`
}

type fileRamp struct {
	Name     string   `toml:"name"`
	Stops    []string `toml:"stops"`
	Tags     []string `toml:"tags"`
	Favorite bool     `toml:"favorite"`
}

type fileSmartGroup struct {
	Name       string          `toml:"name"`
	Match      string          `toml:"match"`
	Conditions []fileCondition `toml:"conditions"`
}

type file struct {
	Symbols     []fileSymbol     `toml:"symbol"`
	Ramps       []fileRamp       `toml:"ramp"`
	SmartGroups []fileSmartGroup `toml:"smartgroup"`
}

// Load reads and parses the library file at path. A leading "~" expands
// to the home directory.
func Load(path string) (Snapshot, error) {
	resolved, err := ExpandPath(path)
	if err != nil {
		return Snapshot{}, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read library: %w", err)
	}
	snap, err := Parse(data)
	if err != nil {
		events.Library.Error(resolved, err)
		return Snapshot{}, fmt.Errorf("%s: %w", resolved, err)
	}
	snap.Path = resolved
	events.Library.Load(resolved, len(snap.Symbols), len(snap.Ramps))
	return snap, nil
}

// Parse decodes library TOML.
func Parse(data []byte) (Snapshot, error) {
	var raw file
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("parse library: %w", err)
	}

	var snap Snapshot
	seen := map[string]struct{}{}
	for i, sym := range raw.Symbols {
		name := strings.TrimSpace(sym.Name)
		if name == "" {
			return Snapshot{}, fmt.Errorf("symbol #%d: %w: empty name", i+1, ErrInvalid)
		}
		if _, dup := seen[name]; dup {
			return Snapshot{}, fmt.Errorf("symbol %q: %w: duplicate name", name, ErrInvalid)
		}
		seen[name] = struct{}{}
		typ := style.MarkerSymbol
		if strings.TrimSpace(sym.Type) != "" {
			parsed, err := style.ParseSymbolType(sym.Type)
			if err != nil {
				return Snapshot{}, fmt.Errorf("symbol %q: %w: %v", name, ErrInvalid, err)
			}
			typ = parsed
		}
		snap.Symbols = append(snap.Symbols, SymbolEntry{
			Symbol:   style.Symbol{Name: name, Type: typ, Color: strings.TrimSpace(sym.Color)},
			Tags:     sym.Tags,
			Favorite: sym.Favorite,
		})
	}

	clear(seen)
	for i, ramp := range raw.Ramps {
		name := strings.TrimSpace(ramp.Name)
		if name == "" {
			return Snapshot{}, fmt.Errorf("ramp #%d: %w: empty name", i+1, ErrInvalid)
		}
		if _, dup := seen[name]; dup {
			return Snapshot{}, fmt.Errorf("ramp %q: %w: duplicate name", name, ErrInvalid)
		}
		seen[name] = struct{}{}
		if len(ramp.Stops) == 0 {
			return Snapshot{}, fmt.Errorf("ramp %q: %w: no stops", name, ErrInvalid)
		}
		snap.Ramps = append(snap.Ramps, RampEntry{
			Ramp:     style.ColorRamp{Name: name, Stops: ramp.Stops},
			Tags:     ramp.Tags,
			Favorite: ramp.Favorite,
		})
	}

	clear(seen)
	for i, group := range raw.SmartGroups {
		entry, err := parseSmartGroup(group)
		if err != nil {
			return Snapshot{}, fmt.Errorf("smart group #%d: %w", i+1, err)
		}
		if _, dup := seen[entry.Name]; dup {
			return Snapshot{}, fmt.Errorf("smart group %q: %w: duplicate name", entry.Name, ErrInvalid)
		}
		seen[entry.Name] = struct{}{}
		snap.SmartGroups = append(snap.SmartGroups, entry)
	}
	return snap, nil
}

func parseSmartGroup(group fileSmartGroup) (SmartGroupEntry, error) {
	entry := SmartGroupEntry{Name: strings.TrimSpace(group.Name)}
	if entry.Name == "" {
		return entry, fmt.Errorf("%w: empty name", ErrInvalid)
	}
	switch strings.ToLower(strings.TrimSpace(group.Match)) {
	case "", "all":
		entry.MatchAll = true
	case "any":
	default:
		return entry, fmt.Errorf("%w: match must be \"all\" or \"any\", got %q", ErrInvalid, group.Match)
	}
	for _, cond := range group.Conditions {
		op, err := style.ParseConditionOp(cond.Op)
		if err != nil {
			return entry, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		entry.Conditions = append(entry.Conditions, style.Condition{Op: op, Param: cond.Param})
	}
	return entry, nil
}

// ExpandPath resolves "~" and makes path absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("library path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
