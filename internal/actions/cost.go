package actions

import (
	"github.com/veildrift/go-incursion/internal/world"
)

// Skill names the cost model consults.
const (
	SkillMobility    = "mobility"
	SkillObservation = "observation"
)

// Base tick costs per action type. Movement takes its base from the door
// connection instead.
const (
	costExamine         = 4
	costExamineThorough = 8
	costSearch          = 6
	costQuickRadio      = 2
	costListen          = 2
	costWait            = 1

	// minCost floors every non-wait action so wait stays the cheapest
	// entry in any catalog.
	minCost = 2
)

// ActionCost resolves the tick cost of one action for one actor in their
// current environment. It is a pure function over current store contents:
// no memoization, no side effects. Skills and the local environment can
// change between calls, so callers recompute it every time a catalog is
// built or an action validated.
func ActionCost(store *world.Store, actor world.EntityID, t Type, variant MoveVariant, doorCost int) int {
	skills := store.Skills(actor)

	var env *world.Environment
	if pos := store.Position(actor); pos != nil {
		env = store.Environment(pos.Room)
	}

	switch t {
	case TypeMove:
		cost := doorCost
		switch variant {
		case VariantCareful:
			cost += doorCost / 2
		case VariantQuick:
			cost -= doorCost / 3
		}
		cost -= skills.Level(SkillMobility)
		if env != nil && env.Hazardous {
			cost += 2
		}
		return clampCost(cost)

	case TypeExamine, TypeExamineThorough, TypeSearch:
		cost := costExamine
		switch t {
		case TypeExamineThorough:
			cost = costExamineThorough
		case TypeSearch:
			cost = costSearch
		}
		cost -= skills.Level(SkillObservation)
		if env != nil && env.Dark {
			cost += 2
		}
		return clampCost(cost)

	case TypeQuickRadio:
		return costQuickRadio
	case TypeListen:
		return costListen
	case TypeWait:
		return costWait
	default:
		return clampCost(0)
	}
}

func clampCost(c int) int {
	if c < minCost {
		return minCost
	}
	return c
}
