package input

import "sync"

// Queue hands events from device goroutines to the update loop. Producers
// Push; the loop Drains once per frame and processes outside the lock.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 32)}
}

func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Drain returns everything pushed since the last drain, in arrival order.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	if len(q.events) == 0 {
		q.mu.Unlock()
		return nil
	}
	drained := q.events
	q.events = make([]Event, 0, cap(drained))
	q.mu.Unlock()
	return drained
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Sink is anything that accepts decoded events.
type Sink interface {
	Push(e Event)
}
