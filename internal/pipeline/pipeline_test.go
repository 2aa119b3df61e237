package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/veildrift/go-incursion/internal/actions"
	"github.com/veildrift/go-incursion/internal/scheduler"
	"github.com/veildrift/go-incursion/internal/world"
)

func newTestWorld(t *testing.T) (*world.Store, *scheduler.Scheduler, world.EntityID, world.EntityID, world.EntityID) {
	t.Helper()
	store := world.NewStore()

	airlock := store.CreateEntity(world.EntityRoom, "Airlock")
	corridor := store.CreateEntity(world.EntityRoom, "Corridor")
	store.Set(airlock, &world.Environment{Description: "A cramped pressure chamber."})
	store.Set(corridor, &world.Environment{Description: "Flickering strip lights."})
	store.Set(airlock, &world.Doors{Connections: []world.DoorConnection{
		{Target: corridor, Cost: 6},
	}})

	marine := store.CreateEntity(world.EntityMarine, "Ripley")
	store.Set(marine, &world.Position{Room: airlock})
	store.Set(marine, &world.Health{Current: 8, Max: 8})
	store.Set(marine, &world.Speed{Value: 10})
	store.Set(marine, &world.Skills{Values: map[string]int{}})

	sched := scheduler.New(store)
	if err := sched.Initialize(); err != nil {
		t.Fatalf("initializing scheduler: %v", err)
	}

	return store, sched, marine, airlock, corridor
}

func TestExecute_Move(t *testing.T) {
	store, sched, marine, _, corridor := newTestWorld(t)
	p := New(store, sched, nil)

	result, err := p.Execute(context.Background(), marine, actions.Candidate{
		Type:   actions.TypeMove,
		Target: corridor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "success", result.Success, true)
	testutil.AssertEqual(t, "cost", result.Cost, 6)
	testutil.AssertEqual(t, "room", store.Position(marine).Room, corridor)
	testutil.AssertEqual(t, "timer charged", store.TurnState(marine).Timer, 6)
	if result.Message == "" {
		t.Error("result carries no narration")
	}
}

// A rejected action must change nothing: no world mutation, no tick cost.
func TestExecute_ValidationFailureConservesTurn(t *testing.T) {
	store, sched, marine, airlock, _ := newTestWorld(t)
	p := New(store, sched, nil)

	vault := store.CreateEntity(world.EntityRoom, "Vault")
	result, err := p.Execute(context.Background(), marine, actions.Candidate{
		Type:   actions.TypeMove,
		Target: vault,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "success", result.Success, false)
	if len(result.Errors) == 0 {
		t.Fatal("failed result carries no errors")
	}
	testutil.AssertEqual(t, "room unchanged", store.Position(marine).Room, airlock)
	testutil.AssertEqual(t, "timer unchanged", store.TurnState(marine).Timer, 0)
	testutil.AssertEqual(t, "still active", sched.Active(), marine)
}

func TestExecute_UnknownTypeIsRejected(t *testing.T) {
	store, sched, marine, _, _ := newTestWorld(t)
	p := New(store, sched, nil)

	result, err := p.Execute(context.Background(), marine, actions.Candidate{Type: "TELEPORT"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "success", result.Success, false)
	testutil.AssertEqual(t, "timer unchanged", store.TurnState(marine).Timer, 0)
}

// An actor whose turn it is not gets a consistency error, the one condition
// the pipeline reports as a real error.
func TestExecute_NotReadyIsConsistencyError(t *testing.T) {
	store, sched, marine, _, corridor := newTestWorld(t)
	p := New(store, sched, nil)

	// Spend the turn, leaving the character with a loaded timer.
	if _, err := p.Execute(context.Background(), marine, actions.Candidate{
		Type:   actions.TypeMove,
		Target: corridor,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := p.Execute(context.Background(), marine, actions.Candidate{Type: actions.TypeWait})
	var cerr *actions.ConsistencyError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected a ConsistencyError, got %v", err)
	}
	testutil.AssertEqual(t, "char", cerr.Char, marine)
}

// Moving away and back: both actions resolve against re-validated state,
// and the character pays for each leg.
func TestExecute_MoveRoundtrip(t *testing.T) {
	store, sched, marine, airlock, corridor := newTestWorld(t)
	store.Set(corridor, &world.Doors{Connections: []world.DoorConnection{
		{Target: airlock, Cost: 6},
	}})
	p := New(store, sched, nil)

	legs := []world.EntityID{corridor, airlock}
	for _, dest := range legs {
		if _, err := sched.AdvanceUntilReady(); err != nil {
			t.Fatalf("advancing: %v", err)
		}
		result, err := p.Execute(context.Background(), marine, actions.Candidate{
			Type:   actions.TypeMove,
			Target: dest,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "success", result.Success, true)
		testutil.AssertEqual(t, "room", store.Position(marine).Room, dest)
	}
}
