package actions

import (
	"github.com/veildrift/go-incursion/internal/world"
)

// Type names an action category understood by the pipeline.
type Type string

const (
	TypeMove            Type = "MOVE"
	TypeExamine         Type = "EXAMINE"
	TypeExamineThorough Type = "EXAMINE_THOROUGH"
	TypeSearch          Type = "SEARCH"
	TypeQuickRadio      Type = "QUICK_RADIO"
	TypeListen          Type = "LISTEN"
	TypeWait            Type = "WAIT"
)

// Known reports whether t is in the closed action set. Unknown types are
// rejected by the validator, never dispatched.
func (t Type) Known() bool {
	switch t {
	case TypeMove, TypeExamine, TypeExamineThorough, TypeSearch,
		TypeQuickRadio, TypeListen, TypeWait:
		return true
	default:
		return false
	}
}

// MoveVariant selects the cost/risk trade-off of a movement action.
type MoveVariant string

const (
	VariantNormal  MoveVariant = "normal"
	VariantCareful MoveVariant = "careful"
	VariantQuick   MoveVariant = "quick"
)

// Candidate is the action a decision source (human commander or AI) hands
// to the core: a type, an optional target and optional parameters. It
// carries no authority; the validator re-derives legality against current
// world truth before anything executes.
type Candidate struct {
	Type    Type           `json:"type"`
	Target  world.EntityID `json:"target,omitempty"`
	Variant MoveVariant    `json:"variant,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Descriptor is one catalog entry: a currently-legal action with its
// resolved tick cost and risk tags. Catalogs are derived fresh from the
// world store each time; descriptors are never cached across turns.
type Descriptor struct {
	Type    Type           `json:"type"`
	Target  world.EntityID `json:"target,omitempty"`
	Variant MoveVariant    `json:"variant,omitempty"`
	Cost    int            `json:"cost"`
	Risk    []string       `json:"risk,omitempty"`
	Label   string         `json:"label"`
}

// Candidate converts a descriptor back into the wire form a decision source
// would submit.
func (d Descriptor) Candidate() Candidate {
	return Candidate{Type: d.Type, Target: d.Target, Variant: d.Variant}
}

// Validated is an execution-ready action record produced by the validator:
// the candidate enriched with the resolved cost and the world facts it was
// checked against.
type Validated struct {
	Candidate
	Cost       int
	From       world.EntityID // actor's room at validation time
	Door       *world.DoorConnection
	TargetName string
}

// Effect is one structured world change reported by an executor.
type Effect struct {
	Type   string         `json:"type"`
	Entity world.EntityID `json:"entity,omitempty"`
	Detail string         `json:"detail,omitempty"`
}

const (
	EffectPositionChanged = "position_changed"
	EffectExamined        = "examined"
	EffectSearched        = "searched"
	EffectRadio           = "radio"
	EffectListened        = "listened"
	EffectWaited          = "waited"
)

// Outcome is an executor's report of a successfully resolved action.
type Outcome struct {
	Message string   `json:"message"`
	Speech  string   `json:"speech,omitempty"`
	Effects []Effect `json:"effects,omitempty"`
}
