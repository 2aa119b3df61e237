package loader

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// DoorSpec is one outbound connection in a room definition. Target is the
// identifier of another room asset; connections are one-way by design.
type DoorSpec struct {
	Target      string `json:"target"`
	Cost        int    `json:"cost"`
	Description string `json:"description,omitempty"`
}

// RoomSpec is a room definition asset.
type RoomSpec struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Atmosphere  string     `json:"atmosphere,omitempty"`
	Hazardous   bool       `json:"hazardous,omitempty"`
	Dark        bool       `json:"dark,omitempty"`
	Doors       []DoorSpec `json:"doors,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (r *RoomSpec) Validate() error {
	if r == nil {
		return fmt.Errorf("room spec is missing")
	}

	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}
	for i, d := range r.Doors {
		if d.Target == "" {
			el.Add(fmt.Errorf("door %d: target is required", i))
		}
		if d.Cost <= 0 {
			el.Add(fmt.Errorf("door %d: cost must be positive", i))
		}
	}

	return el.Err()
}

// AttributeSpec carries the character sheet attributes a decision source
// needs for role-play context.
type AttributeSpec struct {
	Might   int `json:"might"`
	Agility int `json:"agility"`
	Wits    int `json:"wits"`
	Empathy int `json:"empathy"`
}

// CharacterSpec is a character definition asset. A character missing any
// required field is rejected whole at load time rather than defaulted into
// an inconsistent entity.
type CharacterSpec struct {
	Name       string         `json:"name"`
	Speed      int            `json:"speed"`
	Health     int            `json:"health"`
	Skills     map[string]int `json:"skills,omitempty"`
	Attributes *AttributeSpec `json:"attributes,omitempty"`
	Agenda     string         `json:"agenda,omitempty"`
	Traits     []string       `json:"traits,omitempty"`
	Inventory  []string       `json:"inventory,omitempty"`
	AI         bool           `json:"ai,omitempty"`
	StartRoom  string         `json:"start_room"`
}

// Validate satisfies storage.ValidatingSpec.
func (c *CharacterSpec) Validate() error {
	if c == nil {
		return fmt.Errorf("character spec is missing")
	}

	el := errors.NewErrorList()

	if c.Name == "" {
		el.Add(fmt.Errorf("character name is required"))
	}
	if c.Speed <= 0 {
		el.Add(fmt.Errorf("speed must be positive"))
	}
	if c.Health <= 0 {
		el.Add(fmt.Errorf("health must be positive"))
	}
	if c.StartRoom == "" {
		el.Add(fmt.Errorf("start_room is required"))
	}
	for skill, level := range c.Skills {
		if level < 0 {
			el.Add(fmt.Errorf("skill %q: level must not be negative", skill))
		}
	}

	return el.Err()
}
