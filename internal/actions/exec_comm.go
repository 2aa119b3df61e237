package actions

import (
	"github.com/veildrift/go-incursion/internal/display"
	"github.com/veildrift/go-incursion/internal/world"
)

// executeQuickRadio reports over comms. No world mutation; the action
// exists for mission-tracking hooks and the commander's log.
func executeQuickRadio(store *world.Store, actor world.EntityID, v *Validated) (*Outcome, error) {
	text := v.Message
	if text == "" {
		text = "All quiet. Holding."
	}

	msg, err := display.Narrate("quick_radio", map[string]string{
		"Actor":   store.Name(actor),
		"Message": text,
	})
	if err != nil {
		return nil, newExecutionError(TypeQuickRadio, "rendering outcome: %v", err)
	}

	return &Outcome{
		Message: msg,
		Speech:  text,
		Effects: []Effect{{Type: EffectRadio, Entity: actor, Detail: text}},
	}, nil
}

// executeListen holds still for a moment. No world mutation.
func executeListen(store *world.Store, actor world.EntityID) (*Outcome, error) {
	msg, err := display.Narrate("listen", map[string]string{
		"Actor": store.Name(actor),
	})
	if err != nil {
		return nil, newExecutionError(TypeListen, "rendering outcome: %v", err)
	}

	return &Outcome{
		Message: msg,
		Effects: []Effect{{Type: EffectListened, Entity: actor}},
	}, nil
}
