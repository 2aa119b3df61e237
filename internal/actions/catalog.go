package actions

import (
	"fmt"

	"github.com/veildrift/go-incursion/internal/world"
)

// moveVariants pairs each movement variant with its risk tags. Careful
// trades time for safety; quick trades safety for time.
var moveVariants = []struct {
	variant MoveVariant
	risk    []string
}{
	{VariantNormal, nil},
	{VariantCareful, []string{"low-risk"}},
	{VariantQuick, []string{"high-risk", "noisy"}},
}

// BuildCatalog derives the full list of currently legal actions for one
// character from the world store. Nothing is cached: every call re-reads
// doors, co-located characters, skills and environment, so costs reflect
// the world as it is right now. For any character with a valid position the
// result is non-empty because wait is always present.
func BuildCatalog(store *world.Store, actor world.EntityID) ([]Descriptor, error) {
	pos := store.Position(actor)
	if pos == nil {
		return nil, newValidationError(TypeWait, "character %d has no position", actor)
	}
	room := pos.Room

	var catalog []Descriptor

	// Movement: one action per outbound door connection, in three
	// cost/risk variants. Dangling connections stay in the catalog; the
	// validator resolves them lazily.
	if doors := store.Doors(room); doors != nil {
		for _, conn := range doors.Connections {
			label := conn.Description
			if label == "" {
				label = fmt.Sprintf("to %s", store.Name(conn.Target))
			}
			for _, mv := range moveVariants {
				catalog = append(catalog, Descriptor{
					Type:    TypeMove,
					Target:  conn.Target,
					Variant: mv.variant,
					Cost:    ActionCost(store, actor, TypeMove, mv.variant, conn.Cost),
					Risk:    mv.risk,
					Label:   fmt.Sprintf("move (%s) %s", mv.variant, label),
				})
			}
		}
	}

	// Interaction: examine each co-located marine, search the room itself.
	for _, other := range store.Marines() {
		if other == actor {
			continue
		}
		opos := store.Position(other)
		if opos == nil || opos.Room != room {
			continue
		}
		name := store.Name(other)
		catalog = append(catalog,
			Descriptor{
				Type:   TypeExamine,
				Target: other,
				Cost:   ActionCost(store, actor, TypeExamine, "", 0),
				Label:  fmt.Sprintf("examine %s", name),
			},
			Descriptor{
				Type:   TypeExamineThorough,
				Target: other,
				Cost:   ActionCost(store, actor, TypeExamineThorough, "", 0),
				Label:  fmt.Sprintf("examine %s thoroughly", name),
			},
		)
	}
	if store.Exists(room) {
		catalog = append(catalog, Descriptor{
			Type:   TypeSearch,
			Target: room,
			Cost:   ActionCost(store, actor, TypeSearch, "", 0),
			Label:  fmt.Sprintf("search %s", store.Name(room)),
		})
	}

	// Communication: fixed set, independent of room contents.
	catalog = append(catalog,
		Descriptor{
			Type:  TypeQuickRadio,
			Cost:  ActionCost(store, actor, TypeQuickRadio, "", 0),
			Label: "quick radio report",
		},
		Descriptor{
			Type:  TypeListen,
			Cost:  ActionCost(store, actor, TypeListen, "", 0),
			Label: "listen",
		},
	)

	// Wait is always present and always the cheapest entry, so the catalog
	// is never empty for a positioned character.
	catalog = append(catalog, Descriptor{
		Type:  TypeWait,
		Cost:  ActionCost(store, actor, TypeWait, "", 0),
		Label: "hold position",
	})

	return catalog, nil
}
