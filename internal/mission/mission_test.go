package mission

import (
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/veildrift/go-incursion/internal/world"
)

func newTestWorld(t *testing.T) (*world.Store, world.EntityID, world.EntityID, world.EntityID) {
	t.Helper()
	store := world.NewStore()

	airlock := store.CreateEntity(world.EntityRoom, "Airlock")
	corridor := store.CreateEntity(world.EntityRoom, "Corridor")
	store.Set(airlock, &world.Environment{})
	store.Set(corridor, &world.Environment{})

	marine := store.CreateEntity(world.EntityMarine, "Ripley")
	store.Set(marine, &world.Position{Room: airlock})
	store.Set(marine, &world.Health{Current: 8, Max: 8})
	store.Set(marine, &world.Speed{Value: 10})
	store.Set(marine, &world.Skills{Values: map[string]int{}})

	return store, marine, airlock, corridor
}

func testResolver(ids map[string]world.EntityID) Resolver {
	return func(id string) (world.EntityID, bool) {
		e, ok := ids[id]
		return e, ok
	}
}

func TestInit(t *testing.T) {
	store, _, _, corridor := newTestWorld(t)

	spec := &Spec{
		Name: "Sweep the Deck",
		Primary: []ObjectiveSpec{
			{ID: "reach", Description: "Reach the corridor", Type: "reach_room", Target: "corridor"},
		},
		Conditions: []ConditionSpec{
			{ID: "clock", Description: "Out of time", Type: "time_limit", MaxTicks: 50},
		},
	}

	m, err := Init(store, spec, testResolver(map[string]world.EntityID{"corridor": corridor}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "status", m.Status(), world.StatusActive)
	testutil.AssertEqual(t, "terminal", m.Terminal(), false)
	testutil.AssertEqual(t, "name", store.Name(m.Entity()), "Sweep the Deck")
}

func TestInit_UnresolvableTarget(t *testing.T) {
	store, _, _, _ := newTestWorld(t)

	spec := &Spec{
		Name: "Sweep the Deck",
		Primary: []ObjectiveSpec{
			{ID: "reach", Description: "Reach the vault", Type: "reach_room", Target: "vault"},
		},
	}

	if _, err := Init(store, spec, testResolver(nil)); err == nil {
		t.Fatal("expected an error for the unresolvable objective target")
	}
}

func TestEvaluate_SuccessOnPrimariesOnly(t *testing.T) {
	store, marine, _, corridor := newTestWorld(t)

	spec := &Spec{
		Name: "Sweep the Deck",
		Primary: []ObjectiveSpec{
			{ID: "reach", Description: "Reach the corridor", Type: "reach_room", Target: "corridor"},
		},
		Secondary: []ObjectiveSpec{
			{ID: "look", Description: "Examine Ripley", Type: "examine_target", Target: "ripley"},
		},
	}
	m, err := Init(store, spec, testResolver(map[string]world.EntityID{
		"corridor": corridor,
		"ripley":   marine,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	update, err := m.Evaluate(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "changed", update.Changed, false)
	testutil.AssertEqual(t, "status", update.Status, world.StatusActive)

	store.Position(marine).Room = corridor
	update, err = m.Evaluate(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The secondary objective stays open; completing every primary is
	// enough for success.
	testutil.AssertEqual(t, "status", update.Status, world.StatusSuccess)
	testutil.AssertEqual(t, "newly completed", len(update.NewlyCompleted), 1)
	testutil.AssertEqual(t, "terminal", m.Terminal(), true)

	objs := store.MissionObjectives(m.Entity())
	testutil.AssertEqual(t, "completed tick", objs.Primary[0].CompletedTick, int64(2))
	testutil.AssertEqual(t, "secondary open", objs.Secondary[0].Completed, false)
}

// When a failure condition and the final objective hold on the same pass,
// the failure wins: conditions are evaluated first and short-circuit.
func TestEvaluate_FailureBeforeSuccess(t *testing.T) {
	store, marine, _, corridor := newTestWorld(t)

	spec := &Spec{
		Name: "Sweep the Deck",
		Primary: []ObjectiveSpec{
			{ID: "reach", Description: "Reach the corridor", Type: "reach_room", Target: "corridor"},
		},
		Conditions: []ConditionSpec{
			{ID: "casualty", Description: "A marine is down", Type: "character_death"},
		},
	}
	m, err := Init(store, spec, testResolver(map[string]world.EntityID{"corridor": corridor}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.Position(marine).Room = corridor
	store.Health(marine).Current = 0

	update, err := m.Evaluate(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "status", update.Status, world.StatusFailure)
	testutil.AssertEqual(t, "condition", update.TriggeredCondition, "casualty")
	testutil.AssertEqual(t, "no objectives credited", len(update.NewlyCompleted), 0)

	objs := store.MissionObjectives(m.Entity())
	testutil.AssertEqual(t, "objective open", objs.Primary[0].Completed, false)
}

func TestEvaluate_TimeLimit(t *testing.T) {
	store, _, _, corridor := newTestWorld(t)

	spec := &Spec{
		Name: "Sweep the Deck",
		Primary: []ObjectiveSpec{
			{ID: "reach", Description: "Reach the corridor", Type: "reach_room", Target: "corridor"},
		},
		Conditions: []ConditionSpec{
			{ID: "clock", Description: "Out of time", Type: "time_limit", MaxTicks: 10},
		},
	}
	m, err := Init(store, spec, testResolver(map[string]world.EntityID{"corridor": corridor}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	update, err := m.Evaluate(9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "status before", update.Status, world.StatusActive)

	update, err = m.Evaluate(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "status at limit", update.Status, world.StatusFailure)

	data := store.MissionData(m.Entity())
	testutil.AssertEqual(t, "ended tick", data.EndedTick, int64(10))
}

// Terminal status is monotonic: later world changes cannot revive or flip
// an ended mission.
func TestEvaluate_TerminalIsSticky(t *testing.T) {
	store, marine, airlock, corridor := newTestWorld(t)

	spec := &Spec{
		Name: "Sweep the Deck",
		Primary: []ObjectiveSpec{
			{ID: "reach", Description: "Reach the corridor", Type: "reach_room", Target: "corridor"},
		},
		Conditions: []ConditionSpec{
			{ID: "casualty", Description: "A marine is down", Type: "character_death"},
		},
	}
	m, err := Init(store, spec, testResolver(map[string]world.EntityID{"corridor": corridor}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.Position(marine).Room = corridor
	if _, err := m.Evaluate(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "status", m.Status(), world.StatusSuccess)

	// A casualty after the mission ended changes nothing.
	store.Health(marine).Current = 0
	store.Position(marine).Room = airlock
	update, err := m.Evaluate(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "status", update.Status, world.StatusSuccess)
	testutil.AssertEqual(t, "changed", update.Changed, false)
}

func TestSpec_Validate(t *testing.T) {
	tests := map[string]struct {
		spec *Spec
		ok   bool
	}{
		"valid": {&Spec{
			Name:    "Sweep",
			Primary: []ObjectiveSpec{{ID: "a", Description: "d", Type: "reach_room", Target: "r"}},
		}, true},
		"missing name": {&Spec{
			Primary: []ObjectiveSpec{{ID: "a", Description: "d", Type: "reach_room", Target: "r"}},
		}, false},
		"no primaries": {&Spec{Name: "Sweep"}, false},
		"objective without target": {&Spec{
			Name:    "Sweep",
			Primary: []ObjectiveSpec{{ID: "a", Description: "d", Type: "reach_room"}},
		}, false},
		"time limit without max": {&Spec{
			Name:       "Sweep",
			Primary:    []ObjectiveSpec{{ID: "a", Description: "d", Type: "reach_room", Target: "r"}},
			Conditions: []ConditionSpec{{ID: "c", Description: "d", Type: "time_limit"}},
		}, false},
		"unknown condition type": {&Spec{
			Name:       "Sweep",
			Primary:    []ObjectiveSpec{{ID: "a", Description: "d", Type: "reach_room", Target: "r"}},
			Conditions: []ConditionSpec{{ID: "c", Description: "d", Type: "meteor_strike"}},
		}, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.spec.Validate()
			testutil.AssertEqual(t, "valid", err == nil, tt.ok)
		})
	}
}
