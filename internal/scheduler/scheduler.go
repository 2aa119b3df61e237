package scheduler

import (
	"container/heap"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/veildrift/go-incursion/internal/world"
)

// DefaultTickCeiling bounds AdvanceUntilReady. If no character can become
// ready within this many ticks the call reports a SafetyLimitError instead
// of looping forever.
const DefaultTickCeiling = 100

// requiredKinds are the components a character must carry to participate in
// turn scheduling. Partially-constructed characters are rejected at
// Initialize time, not skipped later.
var requiredKinds = []world.Kind{
	world.KindPosition,
	world.KindHealth,
	world.KindSpeed,
	world.KindSkills,
}

// Scheduler owns the turn queue. It decides who may act next and applies
// action costs as cooldowns. It never advances time on its own during a
// cost application; a caller drives AdvanceTick.
type Scheduler struct {
	store   *world.Store
	queue   turnQueue
	items   map[world.EntityID]*queueEntry
	tick    int64
	nextSeq int
	active  world.EntityID
	ceiling int
}

type Opt func(*Scheduler)

// WithTickCeiling overrides the advance-until-ready safety ceiling.
func WithTickCeiling(n int) Opt {
	return func(s *Scheduler) {
		s.ceiling = n
	}
}

func New(store *world.Store, opts ...Opt) *Scheduler {
	s := &Scheduler{
		store:   store,
		queue:   make(turnQueue, 0),
		items:   make(map[world.EntityID]*queueEntry),
		ceiling: DefaultTickCeiling,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tick returns the current global tick.
func (s *Scheduler) Tick() int64 {
	return s.tick
}

// Active returns the character currently allowed to act, NoEntity if none.
func (s *Scheduler) Active() world.EntityID {
	return s.active
}

// Initialize enqueues every fully-constructed marine at timer zero and
// selects the active character. Partially-constructed marines are rejected
// per-entity; their errors are aggregated and returned alongside a working
// scheduler as long as at least one valid character exists. With zero valid
// characters it returns ErrNoCharactersAvailable.
func (s *Scheduler) Initialize() error {
	el := errors.NewErrorList()

	for _, id := range s.store.Marines() {
		var missing []world.Kind
		for _, k := range requiredKinds {
			if !s.store.Has(id, k) {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			el.Add(&InvalidCharacterError{Char: id, Missing: missing})
			continue
		}

		speed := s.store.Speed(id).Value
		ts := &world.TurnState{Timer: 0, Speed: speed, Ready: true}
		if err := s.store.Set(id, ts); err != nil {
			el.Add(err)
			continue
		}

		e := &queueEntry{char: id, readyAt: 0, speed: speed, seq: s.nextSeq}
		s.nextSeq++
		heap.Push(&s.queue, e)
		s.items[id] = e
	}

	if len(s.items) == 0 {
		return ErrNoCharactersAvailable
	}

	s.selectActive()
	return el.Err()
}

// AdvanceTick increments the global tick, recovers every cooling-down
// character by its speed, and re-selects the active character if the
// previous one is gone or none was active.
func (s *Scheduler) AdvanceTick() {
	s.tick++
	for _, e := range s.queue {
		ts := s.store.TurnState(e.char)
		if ts == nil {
			continue
		}
		if ts.Timer > 0 {
			ts.Timer -= ts.Speed
			if ts.Timer < 0 {
				ts.Timer = 0
			}
		}
		ts.Ready = ts.Timer <= 0
	}
	if s.active == world.NoEntity || !s.isReady(s.active) {
		s.selectActive()
	}
}

// AdvanceUntilReady drives AdvanceTick until some character is ready,
// bounded by the safety ceiling. It returns the number of ticks advanced.
func (s *Scheduler) AdvanceUntilReady() (int, error) {
	if s.anyReady() {
		s.selectActive()
		return 0, nil
	}
	for n := 1; n <= s.ceiling; n++ {
		s.AdvanceTick()
		if s.anyReady() {
			return n, nil
		}
	}
	return s.ceiling, &SafetyLimitError{Ticks: s.ceiling}
}

// ApplyActionCost charges a successfully resolved action against the
// character. The character must have been ready (timer zero); otherwise the
// world store and scheduler have desynchronized and a NotReadyError comes
// back.
func (s *Scheduler) ApplyActionCost(char world.EntityID, cost int) error {
	e, ok := s.items[char]
	if !ok {
		return &world.NoSuchEntityError{ID: char}
	}
	ts := s.store.TurnState(char)
	if ts == nil || ts.Timer != 0 {
		timer := -1
		if ts != nil {
			timer = ts.Timer
		}
		return &NotReadyError{Char: char, Timer: timer}
	}

	ts.Timer += cost
	ts.Ready = ts.Timer <= 0
	ts.Active = false
	if s.active == char {
		s.active = world.NoEntity
	}

	s.queue.update(e, s.tick+int64(cost))
	s.selectActive()
	return nil
}

func (s *Scheduler) isReady(char world.EntityID) bool {
	ts := s.store.TurnState(char)
	return ts != nil && ts.Ready
}

func (s *Scheduler) anyReady() bool {
	for _, e := range s.queue {
		if s.isReady(e.char) {
			return true
		}
	}
	return false
}

// selectActive picks the best-ordered ready character and maintains the
// invariant that exactly one character is active whenever one is ready, and
// none otherwise.
func (s *Scheduler) selectActive() {
	var best *queueEntry
	for _, e := range s.queue {
		if !s.isReady(e.char) {
			continue
		}
		if best == nil || e.before(best) {
			best = e
		}
	}

	if best == nil {
		if s.active != world.NoEntity {
			if ts := s.store.TurnState(s.active); ts != nil {
				ts.Active = false
			}
			s.active = world.NoEntity
		}
		return
	}

	if s.active == best.char {
		return
	}
	if s.active != world.NoEntity {
		if ts := s.store.TurnState(s.active); ts != nil {
			ts.Active = false
		}
	}
	s.active = best.char
	s.store.TurnState(best.char).Active = true
}

// Entries returns a snapshot of the queue for context assembly and
// debugging, in deterministic queue order.
func (s *Scheduler) Entries() []Entry {
	entries := make([]*queueEntry, len(s.queue))
	copy(entries, s.queue)
	slices.SortFunc(entries, func(a, b *queueEntry) int {
		if a.before(b) {
			return -1
		}
		return 1
	})

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{Char: e.char, ReadyAt: e.readyAt, Speed: e.speed})
	}
	return out
}

// Entry is a read-only view of one queue slot.
type Entry struct {
	Char    world.EntityID `json:"char"`
	ReadyAt int64          `json:"ready_at"`
	Speed   int            `json:"speed"`
}
