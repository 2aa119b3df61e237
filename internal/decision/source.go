package decision

import (
	"context"
	"fmt"
	"time"

	"github.com/veildrift/go-incursion/internal/actions"
)

// Source chooses an action for a character given its decision context. The
// core treats every source the same way: the returned candidate goes
// through the full validation pipeline regardless of who produced it.
type Source interface {
	Decide(ctx context.Context, dc *Context) (*actions.Candidate, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, dc *Context) (*actions.Candidate, error)

func (f SourceFunc) Decide(ctx context.Context, dc *Context) (*actions.Candidate, error) {
	return f(ctx, dc)
}

// QueueSource feeds candidates from a channel, typically wired to an
// external command subject. Each Decide call takes at most one candidate
// and gives up after the configured timeout.
type QueueSource struct {
	commands <-chan actions.Candidate
	timeout  time.Duration
}

// NewQueueSource wraps a command channel. A non-positive timeout means
// Decide waits only on context cancellation.
func NewQueueSource(commands <-chan actions.Candidate, timeout time.Duration) *QueueSource {
	return &QueueSource{
		commands: commands,
		timeout:  timeout,
	}
}

func (q *QueueSource) Decide(ctx context.Context, _ *Context) (*actions.Candidate, error) {
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	select {
	case cand, ok := <-q.commands:
		if !ok {
			return nil, fmt.Errorf("command channel closed")
		}
		return &cand, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for command: %w", ctx.Err())
	}
}

// Fallback picks an action deterministically when a source fails or times
// out: the first catalog entry, or a wait when the catalog is somehow
// empty. Given the same context it always returns the same candidate, so a
// stalled source never stalls the turn loop.
func Fallback(dc *Context) actions.Candidate {
	for _, opt := range dc.Actions {
		return actions.Candidate{
			Type:    actions.Type(opt.Type),
			Target:  opt.Target,
			Variant: actions.MoveVariant(opt.Variant),
		}
	}
	return actions.Candidate{Type: actions.TypeWait}
}
