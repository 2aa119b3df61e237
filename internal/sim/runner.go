package sim

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pixil98/go-log"
	"github.com/veildrift/go-incursion/internal/actions"
	"github.com/veildrift/go-incursion/internal/decision"
	"github.com/veildrift/go-incursion/internal/messaging"
	"github.com/veildrift/go-incursion/internal/mission"
	"github.com/veildrift/go-incursion/internal/pipeline"
	"github.com/veildrift/go-incursion/internal/scheduler"
	"github.com/veildrift/go-incursion/internal/world"
)

const DefaultDecisionTimeout = 30 * time.Second

// SourceFactory builds the decision source for one character. Human and AI
// characters may come from different factories but their candidates travel
// the same pipeline afterwards.
type SourceFactory func(char world.EntityID, name string) decision.Source

// Runner advances the simulation one resolved turn at a time. It implements
// driver.Manager; each driver tick resolves at most one character's action.
type Runner struct {
	store   *world.Store
	sched   *scheduler.Scheduler
	mission *mission.System
	pipe    *pipeline.Pipeline
	pub     *messaging.Publisher
	broker  messaging.Broker

	timeout time.Duration
	factory SourceFactory
	sources map[world.EntityID]decision.Source
}

type RunnerOpt func(*Runner)

// WithDecisionTimeout bounds how long a source may take per decision before
// the deterministic fallback is used.
func WithDecisionTimeout(d time.Duration) RunnerOpt {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithSourceFactory overrides how decision sources are built, mainly so
// tests can drive the loop without a broker.
func WithSourceFactory(f SourceFactory) RunnerOpt {
	return func(r *Runner) {
		r.factory = f
	}
}

func NewRunner(store *world.Store, sched *scheduler.Scheduler, m *mission.System, pub *messaging.Publisher, broker messaging.Broker, opts ...RunnerOpt) *Runner {
	r := &Runner{
		store:   store,
		sched:   sched,
		mission: m,
		pipe:    pipeline.New(store, sched, m),
		pub:     pub,
		broker:  broker,
		timeout: DefaultDecisionTimeout,
		sources: map[world.EntityID]decision.Source{},
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.factory == nil {
		r.factory = r.commandSource
	}

	return r
}

// Tick resolves one turn: advance the clock to the next ready character,
// hand them their decision context, and run whatever they chose through the
// pipeline. Recoverable conditions (safety ceiling, consistency faults) are
// logged and absorbed so the driver keeps ticking.
func (r *Runner) Tick(ctx context.Context) error {
	logger := log.GetLogger(ctx)

	if r.mission != nil && r.mission.Terminal() {
		return nil
	}

	if r.sched.Active() == world.NoEntity {
		_, err := r.sched.AdvanceUntilReady()
		if err != nil {
			var limit *scheduler.SafetyLimitError
			if errors.As(err, &limit) {
				logger.Warnf("no character became ready within %d ticks", limit.Ticks)
				return nil
			}
			return err
		}
	}

	char := r.sched.Active()
	name := r.store.Name(char)

	dc, err := decision.Assemble(r.store, r.sched, r.mission, char)
	if err != nil {
		return err
	}
	if err := r.pub.PublishContext(name, dc); err != nil {
		logger.WithError(err).Warnf("publishing decision context for %s", name)
	}

	cand := r.decide(ctx, char, name, dc)

	result, err := r.pipe.Execute(ctx, char, cand)
	if err != nil {
		var cerr *actions.ConsistencyError
		if errors.As(err, &cerr) {
			logger.WithError(cerr).Warnf("turn for %s rolled back", name)
			return nil
		}
		return err
	}

	r.report(ctx, name, result)
	return nil
}

func (r *Runner) decide(ctx context.Context, char world.EntityID, name string, dc *decision.Context) actions.Candidate {
	src, ok := r.sources[char]
	if !ok {
		src = r.factory(char, name)
		r.sources[char] = src
	}

	cand, err := src.Decide(ctx, dc)
	if err != nil {
		log.GetLogger(ctx).WithError(err).Warnf("decision source for %s failed, using fallback", name)
		fb := decision.Fallback(dc)
		return fb
	}
	return *cand
}

// commandSource subscribes to the character's command subject. Both human
// and AI commanders speak the same dialect here; the only difference is who
// is on the other end of the subject.
func (r *Runner) commandSource(char world.EntityID, name string) decision.Source {
	commands := make(chan actions.Candidate, 16)
	_, err := r.broker.Subscribe(messaging.SubjectCommand(name), func(data []byte) {
		var cand actions.Candidate
		if err := json.Unmarshal(data, &cand); err != nil {
			return
		}
		select {
		case commands <- cand:
		default:
		}
	})
	if err != nil {
		// No subject means no commands will ever arrive; let the timeout
		// and fallback carry this character.
		return decision.SourceFunc(func(ctx context.Context, dc *decision.Context) (*actions.Candidate, error) {
			return nil, err
		})
	}
	return decision.NewQueueSource(commands, r.timeout)
}

func (r *Runner) report(ctx context.Context, name string, result *pipeline.Result) {
	logger := log.GetLogger(ctx)

	report := &messaging.TurnReport{
		Tick:      r.sched.Tick(),
		Character: name,
		Success:   result.Success,
		Narration: result.Message,
		Speech:    result.Speech,
		Errors:    result.Errors,
		Warnings:  result.Warnings,
		Effects:   result.Effects,
		Cost:      result.Cost,
	}
	if err := r.pub.PublishResult(report); err != nil {
		logger.WithError(err).Warnf("publishing turn report for %s", name)
	}

	if result.Mission != nil && result.Mission.Changed {
		mr := &messaging.MissionReport{
			Tick:               r.sched.Tick(),
			Status:             string(result.Mission.Status),
			Message:            result.Mission.Message,
			NewlyCompleted:     result.Mission.NewlyCompleted,
			TriggeredCondition: result.Mission.TriggeredCondition,
		}
		if err := r.pub.PublishMission(mr); err != nil {
			logger.WithError(err).Warnf("publishing mission report")
		}
	}
}
