package event

import "github.com/lixenwraith/pie-merge/core"

// Queue is a bounded FIFO of session notifications
// Not safe for concurrent use: the goroutine driving Session.Tick also drains it
// Overflow overwrites the oldest unread event and counts it in Dropped
type Queue struct {
	buf     []GameEvent
	head    int // index of the oldest unread event
	size    int
	dropped uint64
}

// NewQueue creates a queue holding at most capacity unread events
func NewQueue(capacity int) *Queue {
	if !core.Assert(capacity > 0, "event queue capacity must be positive, got %d", capacity) {
		capacity = 1
	}
	return &Queue{buf: make([]GameEvent, capacity)}
}

// Push appends ev, evicting the oldest event when full
func (q *Queue) Push(ev GameEvent) {
	idx := (q.head + q.size) % len(q.buf)
	q.buf[idx] = ev
	if q.size < len(q.buf) {
		q.size++
		return
	}
	q.head = (q.head + 1) % len(q.buf)
	q.dropped++
}

// Consume returns all pending events in FIFO order, nil when empty
func (q *Queue) Consume() []GameEvent {
	if q.size == 0 {
		return nil
	}
	out := make([]GameEvent, q.size)
	n := copy(out, q.buf[q.head:min(q.head+q.size, len(q.buf))])
	copy(out[n:], q.buf[:q.size-n])
	clear(q.buf)
	q.head, q.size = 0, 0
	return out
}

func (q *Queue) Len() int {
	return q.size
}

// Dropped returns how many events were overwritten before being consumed
func (q *Queue) Dropped() uint64 {
	return q.dropped
}
