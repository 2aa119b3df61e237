package mission

import (
	"fmt"

	"github.com/veildrift/go-incursion/internal/actions"
	"github.com/veildrift/go-incursion/internal/world"
)

// Record books a successfully resolved action into the mission counters.
// Tracking is auxiliary to core correctness: callers log failures and move
// on, they never undo the action.
func (s *System) Record(actor world.EntityID, v *actions.Validated, o *actions.Outcome) error {
	data := s.store.MissionData(s.entity)
	if data == nil {
		return fmt.Errorf("mission entity %d has no status record", s.entity)
	}

	data.ActionsTaken++
	switch v.Type {
	case actions.TypeQuickRadio, actions.TypeListen:
		data.CommTraffic++
	}

	return nil
}
