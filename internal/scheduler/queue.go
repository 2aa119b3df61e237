package scheduler

import (
	"container/heap"

	"github.com/veildrift/go-incursion/internal/world"
)

// queueEntry is one character's slot in the turn queue.
type queueEntry struct {
	char    world.EntityID
	readyAt int64 // tick at the last cost application plus the cost
	speed   int
	seq     int // insertion order, breaks remaining ties
	index   int // heap index, needed for Fix
}

// turnQueue is a min-heap ordered by readyAt ascending, then speed
// descending (faster characters act first on a tie), then insertion order.
type turnQueue []*queueEntry

func (q turnQueue) Len() int { return len(q) }

func (q turnQueue) Less(i, j int) bool {
	if q[i].readyAt != q[j].readyAt {
		return q[i].readyAt < q[j].readyAt
	}
	if q[i].speed != q[j].speed {
		return q[i].speed > q[j].speed
	}
	return q[i].seq < q[j].seq
}

func (q turnQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *turnQueue) Push(x any) {
	e := x.(*queueEntry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *turnQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// update re-sorts a single entry after its readyAt changed.
func (q *turnQueue) update(e *queueEntry, readyAt int64) {
	e.readyAt = readyAt
	heap.Fix(q, e.index)
}

// before reports whether a orders ahead of b under the queue's total order.
func (a *queueEntry) before(b *queueEntry) bool {
	if a.readyAt != b.readyAt {
		return a.readyAt < b.readyAt
	}
	if a.speed != b.speed {
		return a.speed > b.speed
	}
	return a.seq < b.seq
}
