package world

import "fmt"

// EntityID identifies a game object. IDs are allocated monotonically by the
// owning Store and are never reused within a session.
type EntityID int64

// NoEntity is the zero EntityID; it never refers to a real entity.
const NoEntity EntityID = 0

// EntityKind classifies an entity once at creation time. Interaction logic
// dispatches on this tag instead of probing for marker components.
type EntityKind int

const (
	EntityUnknown EntityKind = iota
	EntityMarine
	EntityRoom
	EntityItem
)

func (k EntityKind) String() string {
	switch k {
	case EntityMarine:
		return "marine"
	case EntityRoom:
		return "room"
	case EntityItem:
		return "item"
	default:
		return "unknown"
	}
}

// EntityMeta is the per-entity record in the metadata table. Every component
// row must reference an entity present here.
type EntityMeta struct {
	ID   EntityID
	Kind EntityKind
	Name string
}

// NoSuchEntityError is returned when a component operation references an
// entity that was never created in this store.
type NoSuchEntityError struct {
	ID EntityID
}

func (e *NoSuchEntityError) Error() string {
	return fmt.Sprintf("entity %d does not exist", e.ID)
}

// UnknownKindError is returned when a component operation names a kind
// outside the closed component set.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown component kind %d", e.Kind)
}
