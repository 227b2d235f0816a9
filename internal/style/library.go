package style

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

type record struct {
	tags     map[int]struct{}
	favorite bool
}

type symbolRecord struct {
	record
	symbol Symbol
}

type rampRecord struct {
	record
	ramp ColorRamp
}

type subscriber struct {
	id int
	fn func(Event)
}

// Library is an in-memory Registry. It is not safe for concurrent use;
// callers mutate it from the same goroutine that consumes its events.
type Library struct {
	symbols map[string]*symbolRecord
	ramps   map[string]*rampRecord

	tags      map[int]string
	tagIDs    map[string]int
	nextTagID int

	groups      map[int]*SmartGroup
	nextGroupID int

	subscribers []subscriber
	nextSubID   int
}

var _ Registry = (*Library)(nil)

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{
		symbols:     make(map[string]*symbolRecord),
		ramps:       make(map[string]*rampRecord),
		tags:        make(map[int]string),
		tagIDs:      make(map[string]int),
		nextTagID:   1,
		groups:      make(map[int]*SmartGroup),
		nextGroupID: 1,
	}
}

// Subscribe implements Registry.
func (l *Library) Subscribe(fn func(Event)) func() {
	if fn == nil {
		return func() {}
	}
	l.nextSubID++
	id := l.nextSubID
	l.subscribers = append(l.subscribers, subscriber{id: id, fn: fn})
	return func() {
		l.subscribers = slices.DeleteFunc(l.subscribers, func(s subscriber) bool {
			return s.id == id
		})
	}
}

func (l *Library) emit(evt Event) {
	subs := slices.Clone(l.subscribers)
	for _, sub := range subs {
		sub.fn(evt)
	}
}

// SymbolNames implements Registry.
func (l *Library) SymbolNames() []string {
	return slices.Sorted(maps.Keys(l.symbols))
}

// ColorRampNames implements Registry.
func (l *Library) ColorRampNames() []string {
	return slices.Sorted(maps.Keys(l.ramps))
}

// SymbolCount implements Registry.
func (l *Library) SymbolCount() int {
	return len(l.symbols)
}

// ColorRampCount reports the number of ramps.
func (l *Library) ColorRampCount() int {
	return len(l.ramps)
}

// SymbolType implements Registry.
func (l *Library) SymbolType(name string) (SymbolType, bool) {
	rec, ok := l.symbols[name]
	if !ok {
		return 0, false
	}
	return rec.symbol.Type, true
}

// Symbol returns a copy of the named symbol.
func (l *Library) Symbol(name string) (Symbol, bool) {
	rec, ok := l.symbols[name]
	if !ok {
		return Symbol{}, false
	}
	return rec.symbol, true
}

// ColorRamp returns a copy of the named ramp.
func (l *Library) ColorRamp(name string) (ColorRamp, bool) {
	rec, ok := l.ramps[name]
	if !ok {
		return ColorRamp{}, false
	}
	ramp := rec.ramp
	ramp.Stops = slices.Clone(ramp.Stops)
	return ramp, true
}

func (l *Library) recordOf(kind Entity, name string) *record {
	switch kind {
	case SymbolEntity:
		if rec, ok := l.symbols[name]; ok {
			return &rec.record
		}
	case ColorRampEntity:
		if rec, ok := l.ramps[name]; ok {
			return &rec.record
		}
	}
	return nil
}

func (l *Library) namesOf(kind Entity) []string {
	if kind == ColorRampEntity {
		return l.ColorRampNames()
	}
	return l.SymbolNames()
}

// AddSymbol stores a new symbol.
func (l *Library) AddSymbol(sym Symbol) error {
	if strings.TrimSpace(sym.Name) == "" {
		return ErrEmptyName
	}
	if _, exists := l.symbols[sym.Name]; exists {
		return fmt.Errorf("add symbol %q: %w", sym.Name, ErrDuplicateName)
	}
	l.symbols[sym.Name] = &symbolRecord{record: record{tags: map[int]struct{}{}}, symbol: sym}
	l.emit(Event{Type: EntityAdded, Entity: SymbolEntity, Name: sym.Name})
	return nil
}

// UpdateSymbol replaces the definition of an existing symbol, keeping its
// tags and favorite flag.
func (l *Library) UpdateSymbol(sym Symbol) error {
	rec, ok := l.symbols[sym.Name]
	if !ok {
		return fmt.Errorf("update symbol %q: %w", sym.Name, ErrNotFound)
	}
	rec.symbol = sym
	l.emit(Event{Type: EntityChanged, Entity: SymbolEntity, Name: sym.Name})
	return nil
}

// RemoveSymbol deletes a symbol together with its tags and favorite flag.
func (l *Library) RemoveSymbol(name string) error {
	if _, ok := l.symbols[name]; !ok {
		return fmt.Errorf("remove symbol %q: %w", name, ErrNotFound)
	}
	delete(l.symbols, name)
	l.emit(Event{Type: EntityRemoved, Entity: SymbolEntity, Name: name})
	return nil
}

// RenameSymbol implements Registry. It fails when the old name is unknown,
// the new name is empty, or the new name is taken.
func (l *Library) RenameSymbol(oldName, newName string) bool {
	rec, ok := l.symbols[oldName]
	if !ok || strings.TrimSpace(newName) == "" {
		return false
	}
	if _, taken := l.symbols[newName]; taken {
		return false
	}
	delete(l.symbols, oldName)
	rec.symbol.Name = newName
	l.symbols[newName] = rec
	l.emit(Event{Type: EntityRenamed, Entity: SymbolEntity, Name: newName, OldName: oldName})
	return true
}

// AddColorRamp stores a new ramp.
func (l *Library) AddColorRamp(ramp ColorRamp) error {
	if strings.TrimSpace(ramp.Name) == "" {
		return ErrEmptyName
	}
	if _, exists := l.ramps[ramp.Name]; exists {
		return fmt.Errorf("add color ramp %q: %w", ramp.Name, ErrDuplicateName)
	}
	ramp.Stops = slices.Clone(ramp.Stops)
	l.ramps[ramp.Name] = &rampRecord{record: record{tags: map[int]struct{}{}}, ramp: ramp}
	l.emit(Event{Type: EntityAdded, Entity: ColorRampEntity, Name: ramp.Name})
	return nil
}

// UpdateColorRamp replaces the stops of an existing ramp.
func (l *Library) UpdateColorRamp(ramp ColorRamp) error {
	rec, ok := l.ramps[ramp.Name]
	if !ok {
		return fmt.Errorf("update color ramp %q: %w", ramp.Name, ErrNotFound)
	}
	rec.ramp.Stops = slices.Clone(ramp.Stops)
	l.emit(Event{Type: EntityChanged, Entity: ColorRampEntity, Name: ramp.Name})
	return nil
}

// RemoveColorRamp deletes a ramp together with its tags and favorite flag.
func (l *Library) RemoveColorRamp(name string) error {
	if _, ok := l.ramps[name]; !ok {
		return fmt.Errorf("remove color ramp %q: %w", name, ErrNotFound)
	}
	delete(l.ramps, name)
	l.emit(Event{Type: EntityRemoved, Entity: ColorRampEntity, Name: name})
	return nil
}

// RenameColorRamp implements Registry.
func (l *Library) RenameColorRamp(oldName, newName string) bool {
	rec, ok := l.ramps[oldName]
	if !ok || strings.TrimSpace(newName) == "" {
		return false
	}
	if _, taken := l.ramps[newName]; taken {
		return false
	}
	delete(l.ramps, oldName)
	rec.ramp.Name = newName
	l.ramps[newName] = rec
	l.emit(Event{Type: EntityRenamed, Entity: ColorRampEntity, Name: newName, OldName: oldName})
	return true
}

func normalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AddTag registers a tag and returns its id. Adding an existing tag
// returns the id it already has.
func (l *Library) AddTag(name string) (int, error) {
	tag := normalizeTag(name)
	if tag == "" {
		return 0, ErrEmptyName
	}
	if id, ok := l.tagIDs[tag]; ok {
		return id, nil
	}
	id := l.nextTagID
	l.nextTagID++
	l.tags[id] = tag
	l.tagIDs[tag] = id
	return id, nil
}

// TagID looks up a tag by name.
func (l *Library) TagID(name string) (int, bool) {
	id, ok := l.tagIDs[normalizeTag(name)]
	return id, ok
}

// Tags lists every known tag ordered by id.
func (l *Library) Tags() []Tag {
	ids := slices.Sorted(maps.Keys(l.tags))
	out := make([]Tag, 0, len(ids))
	for _, id := range ids {
		out = append(out, Tag{ID: id, Name: l.tags[id]})
	}
	return out
}

// TagEntity attaches tags to an entity, creating unknown tags on the fly.
func (l *Library) TagEntity(kind Entity, name string, tags ...string) error {
	rec := l.recordOf(kind, name)
	if rec == nil {
		return fmt.Errorf("tag %s %q: %w", kind, name, ErrNotFound)
	}
	changed := false
	for _, tag := range tags {
		id, err := l.AddTag(tag)
		if err != nil {
			continue
		}
		if _, ok := rec.tags[id]; ok {
			continue
		}
		rec.tags[id] = struct{}{}
		changed = true
	}
	if changed {
		l.emit(Event{Type: EntityTagsChanged, Entity: kind, Name: name, Tags: l.TagsOf(kind, name)})
	}
	return nil
}

// DetagEntity removes the given tags from an entity, or every tag when
// none are given.
func (l *Library) DetagEntity(kind Entity, name string, tags ...string) error {
	rec := l.recordOf(kind, name)
	if rec == nil {
		return fmt.Errorf("detag %s %q: %w", kind, name, ErrNotFound)
	}
	changed := false
	if len(tags) == 0 {
		changed = len(rec.tags) > 0
		clear(rec.tags)
	}
	for _, tag := range tags {
		id, ok := l.tagIDs[normalizeTag(tag)]
		if !ok {
			continue
		}
		if _, has := rec.tags[id]; has {
			delete(rec.tags, id)
			changed = true
		}
	}
	if changed {
		l.emit(Event{Type: EntityTagsChanged, Entity: kind, Name: name, Tags: l.TagsOf(kind, name)})
	}
	return nil
}

// TagsOf implements Registry. Tags are returned sorted by name.
func (l *Library) TagsOf(kind Entity, name string) []string {
	rec := l.recordOf(kind, name)
	if rec == nil || len(rec.tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(rec.tags))
	for id := range rec.tags {
		out = append(out, l.tags[id])
	}
	slices.Sort(out)
	return out
}

// NamesWithTag implements Registry.
func (l *Library) NamesWithTag(kind Entity, tagID int) []string {
	var out []string
	for _, name := range l.namesOf(kind) {
		if _, ok := l.recordOf(kind, name).tags[tagID]; ok {
			out = append(out, name)
		}
	}
	return out
}

// SetFavorite flags or unflags an entity. Events are only emitted when the
// flag actually changes.
func (l *Library) SetFavorite(kind Entity, name string, favorite bool) error {
	rec := l.recordOf(kind, name)
	if rec == nil {
		return fmt.Errorf("favorite %s %q: %w", kind, name, ErrNotFound)
	}
	if rec.favorite == favorite {
		return nil
	}
	rec.favorite = favorite
	l.emit(Event{Type: EntityFavoritedChanged, Entity: kind, Name: name, Favorite: favorite})
	return nil
}

// IsFavorite reports the favorite flag of an entity.
func (l *Library) IsFavorite(kind Entity, name string) bool {
	rec := l.recordOf(kind, name)
	return rec != nil && rec.favorite
}

// FavoritesOf implements Registry.
func (l *Library) FavoritesOf(kind Entity) []string {
	var out []string
	for _, name := range l.namesOf(kind) {
		if l.recordOf(kind, name).favorite {
			out = append(out, name)
		}
	}
	return out
}

// SetSmartGroup creates or replaces the smart group with the given name and
// returns its id. Replacing keeps the existing id.
func (l *Library) SetSmartGroup(name string, matchAll bool, conditions ...Condition) (int, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, ErrEmptyName
	}
	group := &SmartGroup{Name: trimmed, MatchAll: matchAll, Conditions: slices.Clone(conditions)}
	if existing, ok := l.smartGroupByName(trimmed); ok {
		group.ID = existing.ID
	} else {
		group.ID = l.nextGroupID
		l.nextGroupID++
	}
	l.groups[group.ID] = group
	l.emit(Event{Type: SmartGroupsChanged})
	return group.ID, nil
}

// RemoveSmartGroup deletes a smart group by id.
func (l *Library) RemoveSmartGroup(id int) error {
	if _, ok := l.groups[id]; !ok {
		return fmt.Errorf("remove smart group %d: %w", id, ErrNotFound)
	}
	delete(l.groups, id)
	l.emit(Event{Type: SmartGroupsChanged})
	return nil
}

func (l *Library) smartGroupByName(name string) (*SmartGroup, bool) {
	for _, group := range l.groups {
		if group.Name == name {
			return group, true
		}
	}
	return nil, false
}

// SmartGroups lists the smart groups ordered by id.
func (l *Library) SmartGroups() []SmartGroup {
	ids := slices.Sorted(maps.Keys(l.groups))
	out := make([]SmartGroup, 0, len(ids))
	for _, id := range ids {
		group := *l.groups[id]
		group.Conditions = slices.Clone(group.Conditions)
		out = append(out, group)
	}
	return out
}

// NamesInSmartGroup implements Registry.
func (l *Library) NamesInSmartGroup(kind Entity, groupID int) []string {
	group, ok := l.groups[groupID]
	if !ok {
		return nil
	}
	var out []string
	for _, name := range l.namesOf(kind) {
		rec := l.recordOf(kind, name)
		tags := make(map[string]struct{}, len(rec.tags))
		for id := range rec.tags {
			tags[l.tags[id]] = struct{}{}
		}
		if group.matches(name, tags) {
			out = append(out, name)
		}
	}
	return out
}
