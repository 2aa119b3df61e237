package mission

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/veildrift/go-incursion/internal/world"
)

// System owns the mission singleton entity: its status record, objective
// lists and failure conditions, all stored as components in the world
// store.
type System struct {
	store  *world.Store
	entity world.EntityID
}

// Resolver maps a definition identifier from the mission asset to the
// entity it was instantiated as.
type Resolver func(id string) (world.EntityID, bool)

// Init creates the mission singleton from a validated spec. Objective
// targets are resolved against the instantiated world; an unresolvable
// target is a setup error, aggregated and returned.
func Init(store *world.Store, spec *Spec, resolve Resolver) (*System, error) {
	el := errors.NewErrorList()

	buildObjectives := func(specs []ObjectiveSpec) []world.Objective {
		out := make([]world.Objective, 0, len(specs))
		for _, os := range specs {
			target, ok := resolve(os.Target)
			if !ok {
				el.Add(fmt.Errorf("objective %q: unknown target %q", os.ID, os.Target))
				continue
			}
			out = append(out, world.Objective{
				ID:          os.ID,
				Description: os.Description,
				Type:        world.ObjectiveType(os.Type),
				Target:      target,
			})
		}
		return out
	}

	objectives := &world.MissionObjectives{
		Primary:   buildObjectives(spec.Primary),
		Secondary: buildObjectives(spec.Secondary),
	}

	conditions := &world.MissionConditions{}
	for _, cs := range spec.Conditions {
		conditions.Conditions = append(conditions.Conditions, world.FailureCondition{
			ID:          cs.ID,
			Description: cs.Description,
			Type:        world.ConditionType(cs.Type),
			MaxTick:     cs.MaxTicks,
		})
	}

	if err := el.Err(); err != nil {
		return nil, err
	}
	if len(objectives.Primary) == 0 {
		return nil, fmt.Errorf("mission %q has no usable primary objective", spec.Name)
	}

	ent := store.CreateEntity(world.EntityUnknown, spec.Name)
	for _, c := range []world.Component{
		&world.MissionData{Status: world.StatusActive},
		objectives,
		conditions,
	} {
		if err := store.Set(ent, c); err != nil {
			return nil, fmt.Errorf("initializing mission components: %w", err)
		}
	}

	return &System{store: store, entity: ent}, nil
}

// Entity returns the mission singleton's entity ID.
func (s *System) Entity() world.EntityID {
	return s.entity
}

// Status returns the current mission status.
func (s *System) Status() world.MissionStatus {
	if d := s.store.MissionData(s.entity); d != nil {
		return d.Status
	}
	return world.StatusActive
}

// Terminal reports whether the mission has ended.
func (s *System) Terminal() bool {
	st := s.Status()
	return st == world.StatusSuccess || st == world.StatusFailure
}
