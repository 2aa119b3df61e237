package pipeline

import (
	"context"
	"errors"

	"github.com/pixil98/go-log"
	"github.com/veildrift/go-incursion/internal/actions"
	"github.com/veildrift/go-incursion/internal/mission"
	"github.com/veildrift/go-incursion/internal/scheduler"
	"github.com/veildrift/go-incursion/internal/world"
)

// Result is the combined report of one action-resolution step, consumed by
// the logging/UI collaborator. The core makes no assumption about how or
// whether it is rendered.
type Result struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Speech   string           `json:"speech,omitempty"`
	Errors   []string         `json:"errors,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
	Effects  []actions.Effect `json:"effects,omitempty"`
	Cost     int              `json:"cost,omitempty"`
	Mission  *mission.Update  `json:"mission,omitempty"`
}

// Pipeline is the single entry point for resolving an action. Validation,
// execution, cost application and mission tracking run synchronously and in
// that order; the step is atomic with respect to the world because nothing
// else mutates it while Execute runs.
type Pipeline struct {
	store   *world.Store
	sched   *scheduler.Scheduler
	mission *mission.System
}

func New(store *world.Store, sched *scheduler.Scheduler, m *mission.System) *Pipeline {
	return &Pipeline{store: store, sched: sched, mission: m}
}

// Execute resolves one candidate action for one character.
//
// Failure semantics follow the "instant resolution, cost as cooldown"
// design: a failed validation or a failed execution attempt returns
// immediately with no world mutation charged and no tick cost applied.
// Only a successfully resolved action consumes time. A scheduler rejection
// after a successful execution is a consistency violation and comes back as
// a non-nil error alongside the failed result.
func (p *Pipeline) Execute(ctx context.Context, actor world.EntityID, cand actions.Candidate) (*Result, error) {
	logger := log.GetLogger(ctx)

	v, err := actions.Validate(p.store, actor, cand)
	if err != nil {
		return &Result{Errors: []string{err.Error()}}, nil
	}

	outcome, err := actions.Execute(p.store, actor, v, p.sched.Tick())
	if err != nil {
		return &Result{Errors: []string{err.Error()}}, nil
	}

	if err := p.sched.ApplyActionCost(actor, v.Cost); err != nil {
		var nre *scheduler.NotReadyError
		if errors.As(err, &nre) {
			cerr := &actions.ConsistencyError{Char: actor, Err: err}
			return &Result{Errors: []string{cerr.Error()}}, cerr
		}
		return &Result{Errors: []string{err.Error()}}, err
	}

	result := &Result{
		Success: true,
		Message: outcome.Message,
		Speech:  outcome.Speech,
		Effects: outcome.Effects,
		Cost:    v.Cost,
	}

	// Mission bookkeeping is auxiliary: failures are logged and swallowed,
	// never allowed to undo a successful action.
	if p.mission != nil {
		if err := p.mission.Record(actor, v, outcome); err != nil {
			logger.Warnf("recording action for mission tracking: %v", err)
			result.Warnings = append(result.Warnings, "mission tracking unavailable")
		}

		update, err := p.mission.Evaluate(p.sched.Tick())
		if err != nil {
			logger.Warnf("evaluating mission: %v", err)
			result.Warnings = append(result.Warnings, "mission evaluation unavailable")
		} else {
			result.Mission = update
		}
	}

	return result, nil
}
