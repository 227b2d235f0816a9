// Package view layers filtering and sorting over a model.Model. A View
// owns the model it wraps and re-derives its cached membership sets (tag,
// smart group, favorites) from the registry whenever the registry reports
// a change that could shift them.
package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/atomicstack/style-browser/internal/logging/events"
	"github.com/atomicstack/style-browser/internal/model"
	"github.com/atomicstack/style-browser/internal/style"
)

// NoID disables the tag and smart group filters.
const NoID = -1

// SortOrder orders visible rows by name.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (o SortOrder) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

// Option configures a View at construction.
type Option func(*View)

// WithPreviewer installs the renderer used for decorations.
func WithPreviewer(p model.Previewer) Option {
	return func(v *View) { v.model.SetPreviewer(p) }
}

// WithSortOrder sets the initial sort order.
func WithSortOrder(order SortOrder) Option {
	return func(v *View) { v.order = order }
}

type nameSet map[string]struct{}

func newNameSet(lists ...[]string) nameSet {
	set := nameSet{}
	for _, list := range lists {
		for _, name := range list {
			set[name] = struct{}{}
		}
	}
	return set
}

func (s nameSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

type observer struct {
	id int
	fn func()
}

// View is a filtered, sorted projection of a model.Model.
type View struct {
	registry style.Registry
	model    *model.Model

	filterText              string
	favoritesOnly           bool
	entityFilterEnabled     bool
	entityFilter            style.Entity
	symbolTypeFilterEnabled bool
	symbolType              style.SymbolType
	tagID                   int
	smartGroupID            int

	taggedNames     nameSet
	smartGroupNames nameSet
	favoritedNames  nameSet

	order   SortOrder
	rows    []int
	fromSrc []int

	observers    []observer
	nextObserver int

	// membershipDirty is set when a registry event refreshed a set and no
	// model change has re-filtered the rows since.
	membershipDirty bool

	unsubscribeRegistry func()
	unsubscribeModel    func()
}

// New creates a view, and the model it owns, over reg.
func New(reg style.Registry, opts ...Option) *View {
	v := &View{
		registry:     reg,
		tagID:        NoID,
		smartGroupID: NoID,
	}
	// Registry subscribers run in order: the membership sets must hold the
	// new names before the model's row change makes the view re-filter.
	stopSets := reg.Subscribe(v.refreshMembership)
	v.model = model.New(reg)
	stopFlush := reg.Subscribe(v.flushMembership)
	v.unsubscribeRegistry = func() {
		stopSets()
		stopFlush()
	}
	for _, opt := range opts {
		opt(v)
	}
	v.unsubscribeModel = v.model.Subscribe(func(model.Change) { v.invalidate() })
	v.invalidate()
	return v
}

// Close detaches the view and its model from the registry.
func (v *View) Close() {
	if v.unsubscribeRegistry != nil {
		v.unsubscribeRegistry()
		v.unsubscribeRegistry = nil
	}
	if v.unsubscribeModel != nil {
		v.unsubscribeModel()
		v.unsubscribeModel = nil
	}
	v.model.Close()
}

// Model returns the wrapped model.
func (v *View) Model() *model.Model {
	return v.model
}

// Subscribe registers fn to run after every re-evaluation of the visible
// rows. It returns a function removing the observer.
func (v *View) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	v.nextObserver++
	id := v.nextObserver
	v.observers = append(v.observers, observer{id: id, fn: fn})
	return func() {
		v.observers = slices.DeleteFunc(v.observers, func(o observer) bool {
			return o.id == id
		})
	}
}

func (v *View) anyFilterActive() bool {
	return v.filterText != "" ||
		v.entityFilterEnabled ||
		v.symbolTypeFilterEnabled ||
		v.tagID >= 0 ||
		v.smartGroupID >= 0 ||
		v.favoritesOnly
}

// AcceptsRow reports whether the model row src passes every active filter.
func (v *View) AcceptsRow(src int) bool {
	kind, name, ok := v.model.EntityAt(src)
	if !ok {
		return false
	}
	if !v.anyFilterActive() {
		return true
	}
	if v.entityFilterEnabled && kind != v.entityFilter {
		return false
	}
	if v.symbolTypeFilterEnabled {
		typ, ok := v.model.Data(src, model.ColumnName, model.RoleSymbolType)
		if !ok || typ != v.symbolType {
			return false
		}
	}
	if v.tagID >= 0 && !v.taggedNames.has(name) {
		return false
	}
	if v.smartGroupID >= 0 && !v.smartGroupNames.has(name) {
		return false
	}
	if v.favoritesOnly && !v.favoritedNames.has(name) {
		return false
	}
	if v.filterText != "" {
		needle := strings.ToLower(v.filterText)
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
		tags, _ := v.model.Data(src, model.ColumnName, model.RoleTags)
		joined, _ := tags.([]string)
		return strings.Contains(strings.ToLower(strings.Join(joined, ";")), needle)
	}
	return true
}

// invalidate re-evaluates visibility and ordering of every model row.
func (v *View) invalidate() {
	v.membershipDirty = false
	total := v.model.RowCount()
	type candidate struct {
		src int
		key string
	}
	visible := make([]candidate, 0, total)
	for src := 0; src < total; src++ {
		if !v.AcceptsRow(src) {
			continue
		}
		_, name, _ := v.model.EntityAt(src)
		visible = append(visible, candidate{src: src, key: strings.ToLower(name)})
	}
	slices.SortStableFunc(visible, func(a, b candidate) int {
		if v.order == Descending {
			return cmp.Compare(b.key, a.key)
		}
		return cmp.Compare(a.key, b.key)
	})

	v.rows = v.rows[:0]
	v.fromSrc = slices.Grow(v.fromSrc[:0], total)[:total]
	for i := range v.fromSrc {
		v.fromSrc[i] = -1
	}
	for row, c := range visible {
		v.rows = append(v.rows, c.src)
		v.fromSrc[c.src] = row
	}
	for _, o := range slices.Clone(v.observers) {
		o.fn()
	}
}

// RowCount returns the number of visible rows.
func (v *View) RowCount() int {
	return len(v.rows)
}

// MapToSource converts a visible row to a model row, or -1.
func (v *View) MapToSource(row int) int {
	if row < 0 || row >= len(v.rows) {
		return -1
	}
	return v.rows[row]
}

// MapFromSource converts a model row to a visible row, or -1 when the row
// is filtered out.
func (v *View) MapFromSource(src int) int {
	if src < 0 || src >= len(v.fromSrc) {
		return -1
	}
	return v.fromSrc[src]
}

// Data returns the cell of a visible row.
func (v *View) Data(row int, col model.Column, role model.Role) (any, bool) {
	return v.model.Data(v.MapToSource(row), col, role)
}

// SetData edits the cell of a visible row.
func (v *View) SetData(row int, col model.Column, value string) bool {
	src := v.MapToSource(row)
	if src < 0 {
		return false
	}
	return v.model.SetData(src, col, value)
}

// EntityAt resolves a visible row.
func (v *View) EntityAt(row int) (style.Entity, string, bool) {
	return v.model.EntityAt(v.MapToSource(row))
}

// RowOf returns the visible row of an entity, or -1.
func (v *View) RowOf(kind style.Entity, name string) int {
	return v.MapFromSource(v.model.RowOf(kind, name))
}

// Names returns the names of the visible rows in display order.
func (v *View) Names() []string {
	out := make([]string, 0, len(v.rows))
	for _, src := range v.rows {
		_, name, _ := v.model.EntityAt(src)
		out = append(out, name)
	}
	return out
}

// Sort changes the sort order and re-evaluates the rows.
func (v *View) Sort(order SortOrder) {
	v.order = order
	events.View.Sort(order.String())
	v.invalidate()
}

// SortOrder returns the current sort order.
func (v *View) SortOrder() SortOrder {
	return v.order
}
