package dispatcher

import (
	"errors"
	"slices"
	"strings"

	"github.com/atomicstack/style-browser/internal/backend"
	"github.com/atomicstack/style-browser/internal/library"
	"github.com/atomicstack/style-browser/internal/logging"
	"github.com/atomicstack/style-browser/internal/logging/events"
	"github.com/atomicstack/style-browser/internal/style"
)

// Result counts the registry mutations one snapshot produced.
type Result struct {
	Added         int
	Removed       int
	Updated       int
	Retagged      int
	Favorited     int
	GroupsChanged int
	Err           error
}

// Changed reports whether the snapshot touched the registry at all.
func (r Result) Changed() bool {
	return r.Added+r.Removed+r.Updated+r.Retagged+r.Favorited+r.GroupsChanged > 0
}

// Dispatcher replays library snapshots onto a style.Library through its
// mutators, so consumers see ordinary registry events.
type Dispatcher struct {
	lib *style.Library
}

func New(lib *style.Library) *Dispatcher {
	return &Dispatcher{lib: lib}
}

// Handle applies a watcher event. Failed reloads leave the library as it
// was.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	if evt.Err != nil {
		logging.Error(evt.Err)
		return Result{Err: evt.Err}
	}
	return d.Apply(evt.Snapshot)
}

// Apply makes the library match snap. Entities are identified by kind and
// name, so a rename in the file arrives as a removal plus an addition.
func (d *Dispatcher) Apply(snap library.Snapshot) Result {
	var res Result
	var errs []error

	wantSymbols := make(map[string]library.SymbolEntry, len(snap.Symbols))
	for _, entry := range snap.Symbols {
		wantSymbols[entry.Symbol.Name] = entry
	}
	for _, name := range d.lib.SymbolNames() {
		if _, keep := wantSymbols[name]; keep {
			continue
		}
		if err := d.lib.RemoveSymbol(name); err != nil {
			errs = append(errs, err)
			continue
		}
		res.Removed++
	}
	for _, entry := range snap.Symbols {
		current, exists := d.lib.Symbol(entry.Symbol.Name)
		switch {
		case !exists:
			if err := d.lib.AddSymbol(entry.Symbol); err != nil {
				errs = append(errs, err)
				continue
			}
			res.Added++
		case current != entry.Symbol:
			if err := d.lib.UpdateSymbol(entry.Symbol); err != nil {
				errs = append(errs, err)
				continue
			}
			res.Updated++
		}
		d.syncMembership(&res, &errs, style.SymbolEntity, entry.Symbol.Name, entry.Tags, entry.Favorite)
	}

	wantRamps := make(map[string]library.RampEntry, len(snap.Ramps))
	for _, entry := range snap.Ramps {
		wantRamps[entry.Ramp.Name] = entry
	}
	for _, name := range d.lib.ColorRampNames() {
		if _, keep := wantRamps[name]; keep {
			continue
		}
		if err := d.lib.RemoveColorRamp(name); err != nil {
			errs = append(errs, err)
			continue
		}
		res.Removed++
	}
	for _, entry := range snap.Ramps {
		current, exists := d.lib.ColorRamp(entry.Ramp.Name)
		switch {
		case !exists:
			if err := d.lib.AddColorRamp(entry.Ramp); err != nil {
				errs = append(errs, err)
				continue
			}
			res.Added++
		case !slices.Equal(current.Stops, entry.Ramp.Stops):
			if err := d.lib.UpdateColorRamp(entry.Ramp); err != nil {
				errs = append(errs, err)
				continue
			}
			res.Updated++
		}
		d.syncMembership(&res, &errs, style.ColorRampEntity, entry.Ramp.Name, entry.Tags, entry.Favorite)
	}

	d.syncSmartGroups(&res, &errs, snap.SmartGroups)

	res.Err = errors.Join(errs...)
	if res.Err != nil {
		logging.Error(res.Err)
	}
	events.Library.Applied(res.Added, res.Removed, res.Updated, res.Retagged)
	return res
}

func (d *Dispatcher) syncMembership(res *Result, errs *[]error, kind style.Entity, name string, tags []string, favorite bool) {
	want := map[string]struct{}{}
	for _, tag := range tags {
		if normalized := strings.ToLower(strings.TrimSpace(tag)); normalized != "" {
			want[normalized] = struct{}{}
		}
	}
	var stale []string
	have := map[string]struct{}{}
	for _, tag := range d.lib.TagsOf(kind, name) {
		have[tag] = struct{}{}
		if _, keep := want[tag]; !keep {
			stale = append(stale, tag)
		}
	}
	var missing []string
	for tag := range want {
		if _, ok := have[tag]; !ok {
			missing = append(missing, tag)
		}
	}
	slices.Sort(missing)

	if len(stale) > 0 {
		if err := d.lib.DetagEntity(kind, name, stale...); err != nil {
			*errs = append(*errs, err)
		}
	}
	if len(missing) > 0 {
		if err := d.lib.TagEntity(kind, name, missing...); err != nil {
			*errs = append(*errs, err)
		}
	}
	if len(stale) > 0 || len(missing) > 0 {
		res.Retagged++
	}

	if d.lib.IsFavorite(kind, name) != favorite {
		if err := d.lib.SetFavorite(kind, name, favorite); err != nil {
			*errs = append(*errs, err)
			return
		}
		res.Favorited++
	}
}

func (d *Dispatcher) syncSmartGroups(res *Result, errs *[]error, groups []library.SmartGroupEntry) {
	want := make(map[string]library.SmartGroupEntry, len(groups))
	for _, group := range groups {
		want[group.Name] = group
	}
	current := map[string]style.SmartGroup{}
	for _, group := range d.lib.SmartGroups() {
		if _, keep := want[group.Name]; !keep {
			if err := d.lib.RemoveSmartGroup(group.ID); err != nil {
				*errs = append(*errs, err)
				continue
			}
			res.GroupsChanged++
			continue
		}
		current[group.Name] = group
	}
	for _, group := range groups {
		if existing, ok := current[group.Name]; ok &&
			existing.MatchAll == group.MatchAll &&
			slices.Equal(existing.Conditions, group.Conditions) {
			continue
		}
		if _, err := d.lib.SetSmartGroup(group.Name, group.MatchAll, group.Conditions...); err != nil {
			*errs = append(*errs, err)
			continue
		}
		res.GroupsChanged++
	}
}
