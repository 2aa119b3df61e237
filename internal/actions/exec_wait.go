package actions

import (
	"github.com/veildrift/go-incursion/internal/display"
	"github.com/veildrift/go-incursion/internal/world"
)

// executeWait passes the turn. No world mutation; the cost application in
// the pipeline is the whole point of the action.
func executeWait(store *world.Store, actor world.EntityID) (*Outcome, error) {
	msg, err := display.Narrate("wait", map[string]string{
		"Actor": store.Name(actor),
	})
	if err != nil {
		return nil, newExecutionError(TypeWait, "rendering outcome: %v", err)
	}

	return &Outcome{
		Message: msg,
		Effects: []Effect{{Type: EffectWaited, Entity: actor}},
	}, nil
}
