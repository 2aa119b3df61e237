package actions

import (
	"github.com/veildrift/go-incursion/internal/world"
)

// Execute dispatches a validated action to its category executor. The
// returned outcome reports the mutation; any error means no world change
// happened and no tick cost should be charged.
func Execute(store *world.Store, actor world.EntityID, v *Validated, tick int64) (*Outcome, error) {
	switch v.Type {
	case TypeMove:
		return executeMove(store, actor, v)
	case TypeExamine, TypeExamineThorough:
		return executeExamine(store, actor, v, tick)
	case TypeSearch:
		return executeSearch(store, actor, v, tick)
	case TypeQuickRadio:
		return executeQuickRadio(store, actor, v)
	case TypeListen:
		return executeListen(store, actor)
	case TypeWait:
		return executeWait(store, actor)
	default:
		return nil, &UnknownActionTypeError{Type: v.Type}
	}
}
