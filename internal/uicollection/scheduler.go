package uicollection

import "sync"

// Scheduler decides when listener callbacks and transition steps run.
type Scheduler interface {
	Schedule(fn func())
}

// Immediate runs every callback synchronously.
type Immediate struct{}

func (Immediate) Schedule(fn func()) {
	if fn != nil {
		fn()
	}
}

// Queue defers callbacks until Flush. Callbacks scheduled while flushing run
// in the same Flush call.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Schedule(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len reports how many callbacks are waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs queued callbacks in order and returns how many ran.
func (q *Queue) Flush() int {
	ran := 0
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return ran
		}
		fn := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()
		fn()
		ran++
	}
}
