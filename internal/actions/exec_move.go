package actions

import (
	"github.com/veildrift/go-incursion/internal/display"
	"github.com/veildrift/go-incursion/internal/world"
)

// executeMove relocates the actor through a door connection. It re-checks
// that a connection still exists from the actor's current room to the
// target at execution time; catalogs and even validated records can go
// stale between validation and execution.
func executeMove(store *world.Store, actor world.EntityID, v *Validated) (*Outcome, error) {
	pos := store.Position(actor)
	if pos == nil {
		return nil, newExecutionError(TypeMove, "character %d lost its position", actor)
	}

	doors := store.Doors(pos.Room)
	var conn *world.DoorConnection
	if doors != nil {
		for i := range doors.Connections {
			if doors.Connections[i].Target == v.Target {
				conn = &doors.Connections[i]
				break
			}
		}
	}
	if conn == nil {
		return nil, newValidationError(TypeMove, "no door from %q to %q",
			store.Name(pos.Room), store.Name(v.Target))
	}
	if !store.Exists(v.Target) {
		return nil, newValidationError(TypeMove, "room %d does not exist", v.Target)
	}

	tmplName := "move"
	switch v.Variant {
	case VariantCareful:
		tmplName = "move_careful"
	case VariantQuick:
		tmplName = "move_quick"
	}
	msg, err := display.Narrate(tmplName, map[string]string{
		"Actor": store.Name(actor),
		"Door":  conn.Description,
		"Room":  store.Name(v.Target),
	})
	if err != nil {
		return nil, newExecutionError(TypeMove, "rendering outcome: %v", err)
	}

	// Mutate only after everything that can fail has succeeded.
	from := pos.Room
	pos.Room = v.Target

	return &Outcome{
		Message: msg,
		Effects: []Effect{
			{Type: EffectPositionChanged, Entity: actor,
				Detail: store.Name(from) + " -> " + store.Name(v.Target)},
		},
	}, nil
}
