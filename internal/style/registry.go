package style

// EventType enumerates the notifications a registry emits.
type EventType int

const (
	EntityAdded EventType = iota
	EntityRemoved
	EntityRenamed
	EntityTagsChanged
	EntityFavoritedChanged
	EntityChanged
	SmartGroupsChanged
)

func (t EventType) String() string {
	switch t {
	case EntityAdded:
		return "added"
	case EntityRemoved:
		return "removed"
	case EntityRenamed:
		return "renamed"
	case EntityTagsChanged:
		return "tags-changed"
	case EntityFavoritedChanged:
		return "favorited-changed"
	case EntityChanged:
		return "changed"
	case SmartGroupsChanged:
		return "smartgroups-changed"
	default:
		return "unknown"
	}
}

// Event describes a single registry mutation. OldName is only set for
// renames, Tags for tag changes and Favorite for favorite changes.
// SmartGroupsChanged carries no entity.
type Event struct {
	Type     EventType
	Entity   Entity
	Name     string
	OldName  string
	Tags     []string
	Favorite bool
}

// Registry is the store the table model mirrors. Name lists are returned
// in the registry's canonical order and are safe for the caller to keep.
type Registry interface {
	SymbolNames() []string
	ColorRampNames() []string
	SymbolCount() int
	SymbolType(name string) (SymbolType, bool)

	TagsOf(kind Entity, name string) []string
	FavoritesOf(kind Entity) []string
	NamesWithTag(kind Entity, tagID int) []string
	NamesInSmartGroup(kind Entity, groupID int) []string

	RenameSymbol(oldName, newName string) bool
	RenameColorRamp(oldName, newName string) bool

	// Subscribe registers fn for every subsequent event and returns a
	// function that removes it again.
	Subscribe(fn func(Event)) (unsubscribe func())
}
