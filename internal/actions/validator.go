package actions

import (
	"github.com/veildrift/go-incursion/internal/world"
)

// Validate re-derives a candidate action's legality against current world
// truth and returns an execution-ready record. The pipeline never executes
// an action that has not passed through here, even one taken from an
// earlier catalog snapshot: the world may have changed in between.
func Validate(store *world.Store, actor world.EntityID, cand Candidate) (*Validated, error) {
	if !cand.Type.Known() {
		return nil, &UnknownActionTypeError{Type: cand.Type}
	}

	if store.KindOf(actor) != world.EntityMarine {
		return nil, newValidationError(cand.Type, "entity %d is not a character", actor)
	}
	pos := store.Position(actor)
	if pos == nil {
		return nil, newValidationError(cand.Type, "character %d has no position", actor)
	}
	room := pos.Room

	v := &Validated{Candidate: cand, From: room}

	switch cand.Type {
	case TypeMove:
		switch cand.Variant {
		case "":
			v.Variant = VariantNormal
		case VariantNormal, VariantCareful, VariantQuick:
		default:
			return nil, newValidationError(cand.Type, "unknown move variant %q", cand.Variant)
		}
		if store.KindOf(cand.Target) != world.EntityRoom {
			return nil, newValidationError(cand.Type, "target %d is not a room", cand.Target)
		}
		doors := store.Doors(room)
		if doors == nil {
			return nil, newValidationError(cand.Type, "room %q has no doors", store.Name(room))
		}
		var conn *world.DoorConnection
		for i := range doors.Connections {
			if doors.Connections[i].Target == cand.Target {
				conn = &doors.Connections[i]
				break
			}
		}
		if conn == nil {
			return nil, newValidationError(cand.Type, "no door from %q to %q",
				store.Name(room), store.Name(cand.Target))
		}
		v.Door = conn
		v.TargetName = store.Name(cand.Target)
		v.Cost = ActionCost(store, actor, TypeMove, v.Variant, conn.Cost)

	case TypeExamine, TypeExamineThorough:
		if cand.Target == actor {
			return nil, newValidationError(cand.Type, "character cannot examine itself")
		}
		if store.KindOf(cand.Target) != world.EntityMarine {
			return nil, newValidationError(cand.Type, "target %d is not a character", cand.Target)
		}
		tpos := store.Position(cand.Target)
		if tpos == nil || tpos.Room != room {
			return nil, newValidationError(cand.Type, "%q is not in the same room",
				store.Name(cand.Target))
		}
		v.TargetName = store.Name(cand.Target)
		v.Cost = ActionCost(store, actor, cand.Type, "", 0)

	case TypeSearch:
		// An omitted target defaults to the current room.
		target := cand.Target
		if target == world.NoEntity {
			target = room
		}
		if target != room {
			return nil, newValidationError(cand.Type, "can only search the current room")
		}
		if !store.Exists(room) {
			return nil, newValidationError(cand.Type, "room %d does not exist", room)
		}
		v.Target = room
		v.TargetName = store.Name(room)
		v.Cost = ActionCost(store, actor, TypeSearch, "", 0)

	case TypeQuickRadio, TypeListen, TypeWait:
		v.Cost = ActionCost(store, actor, cand.Type, "", 0)
	}

	return v, nil
}
