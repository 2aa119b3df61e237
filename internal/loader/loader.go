package loader

import (
	"fmt"
	"sort"

	"github.com/pixil98/go-errors"
	"github.com/veildrift/go-incursion/internal/storage"
	"github.com/veildrift/go-incursion/internal/world"
)

// Result is a populated world plus the mapping from definition identifiers
// back to the entities they produced. The mapping is what lets mission
// objectives written against asset ids find their targets.
type Result struct {
	Store    *world.Store
	Entities map[storage.Identifier]world.EntityID
}

// Resolve looks up the entity created for a definition id. It satisfies
// mission.Resolver.
func (r *Result) Resolve(id string) (world.EntityID, bool) {
	e, ok := r.Entities[storage.Identifier(id)]
	return e, ok
}

// Build instantiates rooms and characters from their definition stores into
// a fresh world. Definitions that cannot be instantiated are skipped and
// reported; the returned Result is usable alongside a non-nil error.
func Build(rooms storage.Storer[*RoomSpec], characters storage.Storer[*CharacterSpec]) (*Result, error) {
	el := errors.NewErrorList()

	res := &Result{
		Store:    world.NewStore(),
		Entities: map[storage.Identifier]world.EntityID{},
	}

	buildRooms(res, rooms, el)
	buildCharacters(res, characters, el)

	return res, el.Err()
}

// buildRooms runs two passes so door targets can reference rooms that appear
// later in the directory listing. Identifiers are processed in sorted order
// to keep entity ids stable across loads.
func buildRooms(res *Result, rooms storage.Storer[*RoomSpec], el interface{ Add(error) }) {
	all := rooms.GetAll()
	ids := sortedIds(all)

	for _, id := range ids {
		spec := all[id]
		ent := res.Store.CreateEntity(world.EntityRoom, spec.Name)
		res.Entities[id] = ent

		if err := res.Store.Set(ent, &world.Environment{
			Description: spec.Description,
			Atmosphere:  spec.Atmosphere,
			Hazardous:   spec.Hazardous,
			Dark:        spec.Dark,
		}); err != nil {
			el.Add(fmt.Errorf("room %q: %w", id, err))
		}
	}

	for _, id := range ids {
		spec := all[id]
		ent := res.Entities[id]

		doors := &world.Doors{}
		for _, d := range spec.Doors {
			target, ok := res.Entities[storage.Identifier(d.Target)]
			if !ok {
				el.Add(fmt.Errorf("room %q: door target %q is not a known room", id, d.Target))
				continue
			}
			doors.Connections = append(doors.Connections, world.DoorConnection{
				Target:      target,
				Cost:        d.Cost,
				Description: d.Description,
			})
		}
		if err := res.Store.Set(ent, doors); err != nil {
			el.Add(fmt.Errorf("room %q: %w", id, err))
		}
	}
}

func buildCharacters(res *Result, characters storage.Storer[*CharacterSpec], el interface{ Add(error) }) {
	all := characters.GetAll()

	for _, id := range sortedIds(all) {
		spec := all[id]

		start, ok := res.Entities[storage.Identifier(spec.StartRoom)]
		if !ok {
			el.Add(fmt.Errorf("character %q: start room %q is not a known room", id, spec.StartRoom))
			continue
		}

		ent := res.Store.CreateEntity(world.EntityMarine, spec.Name)
		res.Entities[id] = ent

		components := []world.Component{
			&world.Position{Room: start},
			&world.Health{Current: spec.Health, Max: spec.Health},
			&world.Speed{Value: spec.Speed},
			&world.Skills{Values: spec.Skills},
		}
		if spec.Attributes != nil {
			components = append(components, &world.Attributes{
				Might:   spec.Attributes.Might,
				Agility: spec.Attributes.Agility,
				Wits:    spec.Attributes.Wits,
				Empathy: spec.Attributes.Empathy,
			})
		}
		if spec.Agenda != "" || len(spec.Traits) > 0 {
			components = append(components, &world.Personality{
				Agenda: spec.Agenda,
				Traits: spec.Traits,
			})
		}
		if len(spec.Inventory) > 0 {
			components = append(components, &world.Inventory{Items: spec.Inventory})
		}
		if spec.AI {
			components = append(components, &world.AIControlled{})
		}

		for _, c := range components {
			if err := res.Store.Set(ent, c); err != nil {
				el.Add(fmt.Errorf("character %q: %w", id, err))
			}
		}
	}
}

func sortedIds[T any](m map[storage.Identifier]T) []storage.Identifier {
	ids := make([]storage.Identifier, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
