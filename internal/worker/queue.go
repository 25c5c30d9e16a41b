package worker

import (
	"sync"

	"github.com/sunitsen/flame/internal/domain/model"
)

// EventQueue is a thread-safe FIFO of outbound POS events awaiting delivery.
// One queue is shared across all orders; ordering is FIFO globally, not
// partitioned per order. Unbounded so retry re-enqueues never block.
//
// A buffered signal channel of size one coalesces wakeups for the
// dispatcher's workers.
type EventQueue struct {
	mu     sync.Mutex
	events []*model.POSEvent
	closed bool
	signal chan struct{}
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: make([]*model.POSEvent, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends an event to the back of the queue. Returns false if the
// queue is closed.
func (q *EventQueue) Enqueue(event *model.POSEvent) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.events = append(q.events, event)

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue removes and returns the head event without blocking.
func (q *EventQueue) TryDequeue() (*model.POSEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil, false
	}
	event := q.events[0]
	q.events = q.events[1:]
	return event, true
}

// Wait returns the wakeup channel workers block on when the queue is empty.
func (q *EventQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Remove deletes queued events for the given order, keeping the event with
// keepID. Returns the removed events. Used to abort pending deliveries once
// an order reaches a terminal status.
func (q *EventQueue) Remove(orderID, keepID string) []*model.POSEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	var removed []*model.POSEvent
	kept := q.events[:0]
	for _, event := range q.events {
		if event.OrderID == orderID && event.ID != keepID {
			removed = append(removed, event)
		} else {
			kept = append(kept, event)
		}
	}
	q.events = kept
	return removed
}

// Close marks the queue closed; subsequent enqueues are rejected.
func (q *EventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}
