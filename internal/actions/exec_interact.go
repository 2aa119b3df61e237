package actions

import (
	"github.com/veildrift/go-incursion/internal/display"
	"github.com/veildrift/go-incursion/internal/world"
)

// executeExamine records an examination of a co-located character. The only
// mutation is an append to the target's examination history.
func executeExamine(store *world.Store, actor world.EntityID, v *Validated, tick int64) (*Outcome, error) {
	if !store.Exists(v.Target) {
		return nil, newExecutionError(v.Type, "target %d vanished", v.Target)
	}

	tmplName := "examine"
	if v.Type == TypeExamineThorough {
		tmplName = "examine_thorough"
	}
	msg, err := display.Narrate(tmplName, map[string]string{
		"Actor":  store.Name(actor),
		"Target": store.Name(v.Target),
	})
	if err != nil {
		return nil, newExecutionError(v.Type, "rendering outcome: %v", err)
	}

	hist := store.ExaminationHistory(v.Target)
	if hist == nil {
		hist = &world.ExaminationHistory{}
		if err := store.Set(v.Target, hist); err != nil {
			return nil, newExecutionError(v.Type, "recording examination: %v", err)
		}
	}
	hist.Entries = append(hist.Entries, world.ExaminationEntry{
		By:       actor,
		Tick:     tick,
		Thorough: v.Type == TypeExamineThorough,
	})

	return &Outcome{
		Message: msg,
		Effects: []Effect{{Type: EffectExamined, Entity: v.Target}},
	}, nil
}

// executeSearch records a search of the actor's current room in the room's
// search history.
func executeSearch(store *world.Store, actor world.EntityID, v *Validated, tick int64) (*Outcome, error) {
	if !store.Exists(v.Target) {
		return nil, newExecutionError(v.Type, "room %d vanished", v.Target)
	}

	msg, err := display.Narrate("search", map[string]string{
		"Actor": store.Name(actor),
		"Room":  store.Name(v.Target),
	})
	if err != nil {
		return nil, newExecutionError(v.Type, "rendering outcome: %v", err)
	}

	hist := store.SearchHistory(v.Target)
	if hist == nil {
		hist = &world.SearchHistory{}
		if err := store.Set(v.Target, hist); err != nil {
			return nil, newExecutionError(v.Type, "recording search: %v", err)
		}
	}
	hist.Entries = append(hist.Entries, world.SearchEntry{By: actor, Tick: tick})

	return &Outcome{
		Message: msg,
		Effects: []Effect{{Type: EffectSearched, Entity: v.Target}},
	}, nil
}
