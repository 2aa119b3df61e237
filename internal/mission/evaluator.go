package mission

import (
	"fmt"

	"github.com/veildrift/go-incursion/internal/world"
)

// Update is the result of one evaluation pass, consumed by the pipeline and
// the result publisher.
type Update struct {
	Status             world.MissionStatus `json:"status"`
	Changed            bool                `json:"changed"`
	NewlyCompleted     []string            `json:"newly_completed,omitempty"`
	TriggeredCondition string              `json:"triggered_condition,omitempty"`
	Message            string              `json:"message,omitempty"`
}

// Evaluate runs one mission evaluation pass at the given tick. Failure
// conditions are checked first; the first one that triggers ends the
// mission immediately and short-circuits objective evaluation for the pass.
// Otherwise incomplete objectives are re-checked against world state, and
// completing every primary objective ends the mission in success. Terminal
// missions are never re-evaluated.
func (s *System) Evaluate(tick int64) (*Update, error) {
	data := s.store.MissionData(s.entity)
	if data == nil {
		return nil, fmt.Errorf("mission entity %d has no status record", s.entity)
	}

	if data.Status != world.StatusActive {
		return &Update{Status: data.Status, Message: "no update"}, nil
	}

	conds := s.store.MissionConditions(s.entity)
	if conds != nil {
		for i := range conds.Conditions {
			c := &conds.Conditions[i]
			if c.Triggered {
				continue
			}
			if !s.conditionHolds(c, tick) {
				continue
			}
			c.Triggered = true
			c.TriggeredTick = tick
			data.Status = world.StatusFailure
			data.EndedTick = tick
			return &Update{
				Status:             world.StatusFailure,
				Changed:            true,
				TriggeredCondition: c.ID,
				Message:            c.Description,
			}, nil
		}
	}

	objs := s.store.MissionObjectives(s.entity)
	if objs == nil {
		return nil, fmt.Errorf("mission entity %d has no objectives record", s.entity)
	}

	update := &Update{Status: data.Status}
	for _, list := range [][]world.Objective{objs.Primary, objs.Secondary} {
		for i := range list {
			o := &list[i]
			if o.Completed {
				continue
			}
			if !s.objectiveMet(o) {
				continue
			}
			o.Completed = true
			o.CompletedTick = tick
			update.Changed = true
			update.NewlyCompleted = append(update.NewlyCompleted, o.ID)
		}
	}

	// Success hinges on primary objectives only.
	allPrimary := true
	for i := range objs.Primary {
		if !objs.Primary[i].Completed {
			allPrimary = false
			break
		}
	}
	if allPrimary {
		data.Status = world.StatusSuccess
		data.EndedTick = tick
		update.Status = world.StatusSuccess
		update.Changed = true
		update.Message = "all primary objectives complete"
	}

	return update, nil
}

// conditionHolds evaluates one failure-condition predicate against current
// world state. Pure read-only.
func (s *System) conditionHolds(c *world.FailureCondition, tick int64) bool {
	switch c.Type {
	case world.ConditionCharacterDeath:
		for _, id := range s.store.Marines() {
			if h := s.store.Health(id); h != nil && h.Current <= 0 {
				return true
			}
		}
		return false
	case world.ConditionTimeLimit:
		return tick >= c.MaxTick
	default:
		return false
	}
}

// objectiveMet evaluates one objective predicate against current world
// state. Pure read-only.
func (s *System) objectiveMet(o *world.Objective) bool {
	switch o.Type {
	case world.ObjectiveReachRoom:
		for _, id := range s.store.Marines() {
			if pos := s.store.Position(id); pos != nil && pos.Room == o.Target {
				return true
			}
		}
		return false
	case world.ObjectiveExamineTarget:
		h := s.store.ExaminationHistory(o.Target)
		return h != nil && len(h.Entries) > 0
	case world.ObjectiveSearchRoom:
		h := s.store.SearchHistory(o.Target)
		return h != nil && len(h.Entries) > 0
	default:
		return false
	}
}
