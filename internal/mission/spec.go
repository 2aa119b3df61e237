package mission

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// ObjectiveSpec is one objective in a mission definition asset. Target is a
// definition identifier (room or character id) resolved to an entity when
// the mission is instantiated.
type ObjectiveSpec struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Target      string `json:"target"`
}

func (o *ObjectiveSpec) validate() error {
	el := errors.NewErrorList()

	if o.ID == "" {
		el.Add(fmt.Errorf("objective id is required"))
	}
	switch o.Type {
	case "reach_room", "examine_target", "search_room":
		if o.Target == "" {
			el.Add(fmt.Errorf("objective %q: target is required", o.ID))
		}
	default:
		el.Add(fmt.Errorf("objective %q: unknown type %q", o.ID, o.Type))
	}

	return el.Err()
}

// ConditionSpec is one failure condition in a mission definition asset.
type ConditionSpec struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Type        string `json:"type"`
	MaxTicks    int64  `json:"max_ticks,omitempty"`
}

func (c *ConditionSpec) validate() error {
	el := errors.NewErrorList()

	if c.ID == "" {
		el.Add(fmt.Errorf("condition id is required"))
	}
	switch c.Type {
	case "character_death":
	case "time_limit":
		if c.MaxTicks <= 0 {
			el.Add(fmt.Errorf("condition %q: max_ticks must be positive", c.ID))
		}
	default:
		el.Add(fmt.Errorf("condition %q: unknown type %q", c.ID, c.Type))
	}

	return el.Err()
}

// Spec is a mission definition loaded from a JSON asset.
type Spec struct {
	Name       string          `json:"name"`
	Primary    []ObjectiveSpec `json:"primary"`
	Secondary  []ObjectiveSpec `json:"secondary,omitempty"`
	Conditions []ConditionSpec `json:"conditions,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (s *Spec) Validate() error {
	if s == nil {
		return fmt.Errorf("mission spec is missing")
	}

	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("mission name is required"))
	}
	if len(s.Primary) == 0 {
		el.Add(fmt.Errorf("at least one primary objective is required"))
	}
	for i := range s.Primary {
		el.Add(s.Primary[i].validate())
	}
	for i := range s.Secondary {
		el.Add(s.Secondary[i].validate())
	}
	for i := range s.Conditions {
		el.Add(s.Conditions[i].validate())
	}

	return el.Err()
}
