package world

import (
	"slices"
)

// Store is the single source of truth for all game state: a metadata table
// of entities plus one sparse component table per kind. It has no scheduling
// or rules logic and offers no transactional guarantees; all mutation in the
// simulation core happens synchronously within a single action-resolution
// step, and the Store is owned exclusively by that core.
type Store struct {
	nextID EntityID
	meta   map[EntityID]*EntityMeta
	tables map[Kind]map[EntityID]Component
}

// NewStore creates an empty world. Each Store owns its own ID allocator, so
// independent worlds (parallel tests) never cross-contaminate.
func NewStore() *Store {
	return &Store{
		meta:   make(map[EntityID]*EntityMeta),
		tables: make(map[Kind]map[EntityID]Component),
	}
}

// CreateEntity allocates the next ID and registers the entity's kind tag.
func (s *Store) CreateEntity(kind EntityKind, name string) EntityID {
	s.nextID++
	id := s.nextID
	s.meta[id] = &EntityMeta{ID: id, Kind: kind, Name: name}
	return id
}

// Exists reports whether id was created in this store. Entities are never
// destroyed, so a true result stays true for the session.
func (s *Store) Exists(id EntityID) bool {
	_, ok := s.meta[id]
	return ok
}

// Meta returns the entity's metadata record, or nil.
func (s *Store) Meta(id EntityID) *EntityMeta {
	return s.meta[id]
}

// KindOf returns the entity's kind tag, EntityUnknown if it does not exist.
func (s *Store) KindOf(id EntityID) EntityKind {
	if m, ok := s.meta[id]; ok {
		return m.Kind
	}
	return EntityUnknown
}

// Name returns the entity's display name, empty if it does not exist.
func (s *Store) Name(id EntityID) string {
	if m, ok := s.meta[id]; ok {
		return m.Name
	}
	return ""
}

// Set upserts a component record. The entity must exist and the component's
// kind must be in the closed set; violations come back as typed errors, not
// silent table creation.
func (s *Store) Set(id EntityID, c Component) error {
	if !s.Exists(id) {
		return &NoSuchEntityError{ID: id}
	}
	k := c.Kind()
	if !k.valid() {
		return &UnknownKindError{Kind: k}
	}
	t, ok := s.tables[k]
	if !ok {
		t = make(map[EntityID]Component)
		s.tables[k] = t
	}
	t[id] = c
	return nil
}

// Get returns the component record for (id, kind), or nil when absent.
func (s *Store) Get(id EntityID, k Kind) Component {
	return s.tables[k][id]
}

// Has reports whether the entity has a record in the kind's table.
func (s *Store) Has(id EntityID, k Kind) bool {
	_, ok := s.tables[k][id]
	return ok
}

// Remove deletes the component record if present. The entity itself is
// never deleted.
func (s *Store) Remove(id EntityID, k Kind) {
	delete(s.tables[k], id)
}

// EntitiesWith returns the IDs holding a record of the given kind, sorted
// ascending so iteration order is deterministic.
func (s *Store) EntitiesWith(k Kind) []EntityID {
	t := s.tables[k]
	ids := make([]EntityID, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// EntitiesWithAll intersects EntitiesWith over every kind given. An empty
// kind list yields an empty result by convention.
func (s *Store) EntitiesWithAll(kinds ...Kind) []EntityID {
	if len(kinds) == 0 {
		return nil
	}
	var ids []EntityID
	for _, id := range s.EntitiesWith(kinds[0]) {
		all := true
		for _, k := range kinds[1:] {
			if !s.Has(id, k) {
				all = false
				break
			}
		}
		if all {
			ids = append(ids, id)
		}
	}
	return ids
}

// Typed accessors. Each returns nil when the record is absent; callers that
// only need presence use Has.

func (s *Store) Position(id EntityID) *Position {
	c, _ := s.Get(id, KindPosition).(*Position)
	return c
}

func (s *Store) Health(id EntityID) *Health {
	c, _ := s.Get(id, KindHealth).(*Health)
	return c
}

func (s *Store) Speed(id EntityID) *Speed {
	c, _ := s.Get(id, KindSpeed).(*Speed)
	return c
}

func (s *Store) Skills(id EntityID) *Skills {
	c, _ := s.Get(id, KindSkills).(*Skills)
	return c
}

func (s *Store) Attributes(id EntityID) *Attributes {
	c, _ := s.Get(id, KindAttributes).(*Attributes)
	return c
}

func (s *Store) Personality(id EntityID) *Personality {
	c, _ := s.Get(id, KindPersonality).(*Personality)
	return c
}

func (s *Store) Inventory(id EntityID) *Inventory {
	c, _ := s.Get(id, KindInventory).(*Inventory)
	return c
}

func (s *Store) Doors(id EntityID) *Doors {
	c, _ := s.Get(id, KindDoors).(*Doors)
	return c
}

func (s *Store) Environment(id EntityID) *Environment {
	c, _ := s.Get(id, KindEnvironment).(*Environment)
	return c
}

func (s *Store) TurnState(id EntityID) *TurnState {
	c, _ := s.Get(id, KindTurnState).(*TurnState)
	return c
}

func (s *Store) ExaminationHistory(id EntityID) *ExaminationHistory {
	c, _ := s.Get(id, KindExaminationHistory).(*ExaminationHistory)
	return c
}

func (s *Store) SearchHistory(id EntityID) *SearchHistory {
	c, _ := s.Get(id, KindSearchHistory).(*SearchHistory)
	return c
}

func (s *Store) MissionData(id EntityID) *MissionData {
	c, _ := s.Get(id, KindMissionData).(*MissionData)
	return c
}

func (s *Store) MissionObjectives(id EntityID) *MissionObjectives {
	c, _ := s.Get(id, KindMissionObjectives).(*MissionObjectives)
	return c
}

func (s *Store) MissionConditions(id EntityID) *MissionConditions {
	c, _ := s.Get(id, KindMissionConditions).(*MissionConditions)
	return c
}

// IsAIControlled reports whether the character's decisions come from the AI
// source.
func (s *Store) IsAIControlled(id EntityID) bool {
	return s.Has(id, KindAIControlled)
}

// Marines returns every marine entity, sorted by ID.
func (s *Store) Marines() []EntityID {
	var ids []EntityID
	for id, m := range s.meta {
		if m.Kind == EntityMarine {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Rooms returns every room entity, sorted by ID.
func (s *Store) Rooms() []EntityID {
	var ids []EntityID
	for id, m := range s.meta {
		if m.Kind == EntityRoom {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
