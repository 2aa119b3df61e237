package decision

import (
	"fmt"

	"github.com/veildrift/go-incursion/internal/actions"
	"github.com/veildrift/go-incursion/internal/mission"
	"github.com/veildrift/go-incursion/internal/scheduler"
	"github.com/veildrift/go-incursion/internal/world"
)

// Context is everything a decision source is allowed to see before choosing
// an action. Human and AI sources receive the same structure; neither gets a
// back door into the world store.
type Context struct {
	Turn      TurnStatus     `json:"turn"`
	Character CharacterState `json:"character"`
	Location  Location       `json:"location"`
	Squad     []SquadMember  `json:"squad"`
	Actions   []ActionOption `json:"actions"`
	Mission   MissionSummary `json:"mission"`
}

// TurnStatus reports where the clock stands and who else is waiting.
type TurnStatus struct {
	Tick     int64       `json:"tick"`
	Upcoming []QueueSlot `json:"upcoming,omitempty"`
}

// QueueSlot is one character's place in the turn order.
type QueueSlot struct {
	Name    string `json:"name"`
	ReadyAt int64  `json:"ready_at"`
	Speed   int    `json:"speed"`
}

// CharacterState is the acting character's own sheet.
type CharacterState struct {
	Name      string         `json:"name"`
	Health    int            `json:"health"`
	MaxHealth int            `json:"max_health"`
	Speed     int            `json:"speed"`
	Skills    map[string]int `json:"skills,omitempty"`
	Agenda    string         `json:"agenda,omitempty"`
	Traits    []string       `json:"traits,omitempty"`
	Inventory []string       `json:"inventory,omitempty"`
}

// Location describes the room the character stands in, doors included.
type Location struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Atmosphere  string `json:"atmosphere,omitempty"`
	Hazardous   bool   `json:"hazardous,omitempty"`
	Dark        bool   `json:"dark,omitempty"`
	Doors       []Door `json:"doors,omitempty"`
}

// Door is an exit as seen from inside the room.
type Door struct {
	To          string `json:"to"`
	Cost        int    `json:"cost"`
	Description string `json:"description,omitempty"`
}

// SquadMember summarizes another character without exposing their full sheet.
type SquadMember struct {
	Name      string `json:"name"`
	Room      string `json:"room"`
	Health    int    `json:"health"`
	Colocated bool   `json:"colocated"`
}

// ActionOption is one legal choice, priced and labeled. Target is the
// entity id a source echoes back in its candidate; TargetName is for
// display only.
type ActionOption struct {
	Type       string         `json:"type"`
	Target     world.EntityID `json:"target,omitempty"`
	TargetName string         `json:"target_name,omitempty"`
	Variant    string         `json:"variant,omitempty"`
	Cost       int            `json:"cost"`
	Risk       []string       `json:"risk,omitempty"`
	Label      string         `json:"label"`
}

// MissionSummary is the mission board as the squad sees it.
type MissionSummary struct {
	Name       string             `json:"name"`
	Status     string             `json:"status"`
	Objectives []ObjectiveSummary `json:"objectives,omitempty"`
}

// ObjectiveSummary is one objective line on the board.
type ObjectiveSummary struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Primary     bool   `json:"primary"`
	Completed   bool   `json:"completed"`
}

// Assemble builds the decision context for one character. The catalog inside
// it is the authoritative list of legal actions at this instant; anything a
// source returns outside of it will fail validation downstream.
func Assemble(store *world.Store, sched *scheduler.Scheduler, m *mission.System, char world.EntityID) (*Context, error) {
	pos := store.Position(char)
	if pos == nil {
		return nil, fmt.Errorf("character %d has no position", char)
	}

	catalog, err := actions.BuildCatalog(store, char)
	if err != nil {
		return nil, fmt.Errorf("building action catalog: %w", err)
	}

	ctx := &Context{
		Turn:      assembleTurn(store, sched),
		Character: assembleCharacter(store, char),
		Location:  assembleLocation(store, pos.Room),
		Squad:     assembleSquad(store, char, pos.Room),
		Actions:   assembleOptions(store, catalog),
		Mission:   assembleMission(store, m),
	}
	return ctx, nil
}

func assembleTurn(store *world.Store, sched *scheduler.Scheduler) TurnStatus {
	ts := TurnStatus{Tick: sched.Tick()}
	for _, e := range sched.Entries() {
		ts.Upcoming = append(ts.Upcoming, QueueSlot{
			Name:    store.Name(e.Char),
			ReadyAt: e.ReadyAt,
			Speed:   e.Speed,
		})
	}
	return ts
}

func assembleCharacter(store *world.Store, char world.EntityID) CharacterState {
	cs := CharacterState{Name: store.Name(char)}
	if h := store.Health(char); h != nil {
		cs.Health = h.Current
		cs.MaxHealth = h.Max
	}
	if sp := store.Speed(char); sp != nil {
		cs.Speed = sp.Value
	}
	if sk := store.Skills(char); sk != nil {
		cs.Skills = sk.Values
	}
	if p := store.Personality(char); p != nil {
		cs.Agenda = p.Agenda
		cs.Traits = p.Traits
	}
	if inv := store.Inventory(char); inv != nil {
		cs.Inventory = inv.Items
	}
	return cs
}

func assembleLocation(store *world.Store, room world.EntityID) Location {
	loc := Location{Name: store.Name(room)}
	if env := store.Environment(room); env != nil {
		loc.Description = env.Description
		loc.Atmosphere = env.Atmosphere
		loc.Hazardous = env.Hazardous
		loc.Dark = env.Dark
	}
	if doors := store.Doors(room); doors != nil {
		for _, d := range doors.Connections {
			if !store.Exists(d.Target) {
				continue
			}
			loc.Doors = append(loc.Doors, Door{
				To:          store.Name(d.Target),
				Cost:        d.Cost,
				Description: d.Description,
			})
		}
	}
	return loc
}

func assembleSquad(store *world.Store, char, room world.EntityID) []SquadMember {
	var squad []SquadMember
	for _, other := range store.Marines() {
		if other == char {
			continue
		}
		m := SquadMember{Name: store.Name(other)}
		if p := store.Position(other); p != nil {
			m.Room = store.Name(p.Room)
			m.Colocated = p.Room == room
		}
		if h := store.Health(other); h != nil {
			m.Health = h.Current
		}
		squad = append(squad, m)
	}
	return squad
}

func assembleOptions(store *world.Store, catalog []actions.Descriptor) []ActionOption {
	opts := make([]ActionOption, 0, len(catalog))
	for _, d := range catalog {
		name := ""
		if d.Target != world.NoEntity {
			name = store.Name(d.Target)
		}
		opts = append(opts, ActionOption{
			Type:       string(d.Type),
			Target:     d.Target,
			TargetName: name,
			Variant:    string(d.Variant),
			Cost:       d.Cost,
			Risk:       d.Risk,
			Label:      d.Label,
		})
	}
	return opts
}

func assembleMission(store *world.Store, m *mission.System) MissionSummary {
	if m == nil {
		return MissionSummary{}
	}
	ent := m.Entity()
	ms := MissionSummary{
		Name:   store.Name(ent),
		Status: string(m.Status()),
	}
	if obj := store.MissionObjectives(ent); obj != nil {
		for _, o := range obj.Primary {
			ms.Objectives = append(ms.Objectives, ObjectiveSummary{
				ID: o.ID, Description: o.Description, Primary: true, Completed: o.Completed,
			})
		}
		for _, o := range obj.Secondary {
			ms.Objectives = append(ms.Objectives, ObjectiveSummary{
				ID: o.ID, Description: o.Description, Completed: o.Completed,
			})
		}
	}
	return ms
}
