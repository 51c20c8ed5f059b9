package queue

import (
	"sync"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// Queue is the hand-off point between the hardware delivery context and the
// processing loop. Push may be called from any goroutine; Drain and Clear are
// called only by the processing loop. FIFO order is preserved and no event is
// lost or duplicated under concurrent use.
type Queue struct {
	mu     sync.Mutex
	events []contracts.Event
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Push appends an event. It never blocks beyond the internal lock.
func (q *Queue) Push(ev contracts.Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain removes and returns all currently queued events in arrival order.
// It returns nil when nothing is pending.
func (q *Queue) Drain() []contracts.Event {
	q.mu.Lock()
	events := q.events
	q.events = nil
	q.mu.Unlock()
	return events
}

// Clear discards everything queued so far in one atomic step.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.events = nil
	q.mu.Unlock()
}

// Len reports the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
