package sim

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"github.com/veildrift/go-incursion/internal/actions"
	"github.com/veildrift/go-incursion/internal/decision"
	"github.com/veildrift/go-incursion/internal/messaging"
	"github.com/veildrift/go-incursion/internal/mission"
	"github.com/veildrift/go-incursion/internal/scheduler"
	"github.com/veildrift/go-incursion/internal/world"
)

type fakeBroker struct {
	mu        sync.Mutex
	published map[string][][]byte
	handlers  map[string]func([]byte)
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{
		published: map[string][][]byte{},
		handlers:  map[string]func([]byte){},
	}
}

func (f *fakeBroker) Publish(subject string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published[subject] = append(f.published[subject], data)
	return nil
}

func (f *fakeBroker) Subscribe(subject string, handler func([]byte)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[subject] = handler
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers, subject)
	}, nil
}

func (f *fakeBroker) handler(subject string) (func([]byte), bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.handlers[subject]
	return h, ok
}

func (f *fakeBroker) messages(subject string) [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.published[subject]
}

func newTestSim(t *testing.T) (*world.Store, *scheduler.Scheduler, *mission.System, world.EntityID, world.EntityID) {
	t.Helper()
	store := world.NewStore()

	airlock := store.CreateEntity(world.EntityRoom, "Airlock")
	corridor := store.CreateEntity(world.EntityRoom, "Corridor")
	store.Set(airlock, &world.Environment{Description: "A cramped pressure chamber."})
	store.Set(corridor, &world.Environment{Description: "Flickering strip lights."})
	store.Set(airlock, &world.Doors{Connections: []world.DoorConnection{
		{Target: corridor, Cost: 4},
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

	spec := &mission.Spec{
		Name: "Sweep the Deck",
		Primary: []mission.ObjectiveSpec{
			{ID: "reach-corridor", Description: "Reach the corridor", Type: "reach_room", Target: "corridor"},
		},
	}
	resolve := func(id string) (world.EntityID, bool) {
		if id == "corridor" {
			return corridor, true
		}
		return world.NoEntity, false
	}
	m, err := mission.Init(store, spec, resolve)
	if err != nil {
		t.Fatalf("initializing mission: %v", err)
	}

	return store, sched, m, marine, corridor
}

func fixedSource(cand actions.Candidate) SourceFactory {
	return func(world.EntityID, string) decision.Source {
		return decision.SourceFunc(func(context.Context, *decision.Context) (*actions.Candidate, error) {
			c := cand
			return &c, nil
		})
	}
}

func TestRunner_Tick(t *testing.T) {
	store, sched, m, marine, corridor := newTestSim(t)
	broker := newFakeBroker()
	pub := messaging.NewPublisher(broker)

	r := NewRunner(store, sched, m, pub, broker,
		WithSourceFactory(fixedSource(actions.Candidate{Type: actions.TypeMove, Target: corridor})))

	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos := store.Position(marine)
	testutil.AssertEqual(t, "room", pos.Room, corridor)

	contexts := broker.messages(messaging.SubjectContext("Ripley"))
	testutil.AssertEqual(t, "contexts published", len(contexts), 1)

	results := broker.messages(messaging.SubjectResult)
	testutil.AssertEqual(t, "results published", len(results), 1)
	var report messaging.TurnReport
	if err := json.Unmarshal(results[0], &report); err != nil {
		t.Fatalf("unmarshaling report: %v", err)
	}
	testutil.AssertEqual(t, "success", report.Success, true)
	if report.Narration == "" {
		t.Error("report carries no narration")
	}

	// Reaching the corridor completes the only primary objective.
	missions := broker.messages(messaging.SubjectMission)
	testutil.AssertEqual(t, "mission reports", len(missions), 1)
	testutil.AssertEqual(t, "mission status", m.Status(), world.StatusSuccess)
}

func TestRunner_TerminalMissionIsNoOp(t *testing.T) {
	store, sched, m, _, corridor := newTestSim(t)
	broker := newFakeBroker()
	pub := messaging.NewPublisher(broker)

	r := NewRunner(store, sched, m, pub, broker,
		WithSourceFactory(fixedSource(actions.Candidate{Type: actions.TypeMove, Target: corridor})))

	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "terminal", m.Terminal(), true)

	before := len(broker.messages(messaging.SubjectResult))
	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "no further results", len(broker.messages(messaging.SubjectResult)), before)
}

func TestRunner_FallbackOnSourceFailure(t *testing.T) {
	store, sched, m, marine, _ := newTestSim(t)
	broker := newFakeBroker()
	pub := messaging.NewPublisher(broker)

	failing := func(world.EntityID, string) decision.Source {
		return decision.SourceFunc(func(ctx context.Context, dc *decision.Context) (*actions.Candidate, error) {
			return nil, context.DeadlineExceeded
		})
	}
	r := NewRunner(store, sched, m, pub, broker, WithSourceFactory(failing))

	ts := store.TurnState(marine)
	testutil.AssertEqual(t, "timer before", ts.Timer, 0)

	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The fallback resolved something; the character paid for it.
	if ts.Timer == 0 {
		t.Error("fallback action did not consume any ticks")
	}
	testutil.AssertEqual(t, "results published", len(broker.messages(messaging.SubjectResult)), 1)
}

func TestRunner_CommandSourceViaBroker(t *testing.T) {
	store, sched, m, marine, _ := newTestSim(t)
	broker := newFakeBroker()
	pub := messaging.NewPublisher(broker)

	r := NewRunner(store, sched, m, pub, broker, WithDecisionTimeout(time.Second))

	// Feed the command as soon as the runner subscribes, the way an
	// external commander would after seeing the published context.
	done := make(chan struct{})
	go func() {
		defer close(done)
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if h, ok := broker.handler(messaging.SubjectCommand("Ripley")); ok {
				cmd, _ := json.Marshal(actions.Candidate{Type: actions.TypeWait})
				h(cmd)
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()

	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-done

	ts := store.TurnState(marine)
	testutil.AssertEqual(t, "wait cost", ts.Timer, 1)
}
