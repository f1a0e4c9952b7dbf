package events

import (
	"sync"
	"time"
)

// Event types published by the core services.
const (
	TypeCheckIn       = "attendance.check-in"
	TypeCheckOut      = "attendance.check-out"
	TypeSalaryCreated = "salary.generated"
	TypeBatchFinished = "salary.batch-finished"
)

// Event is a fire-and-forget audit/notification message. Delivery is
// best-effort; publishing never blocks or fails the operation that emitted it.
type Event struct {
	Type string      `json:"type"`
	At   time.Time   `json:"at"`
	Data interface{} `json:"data,omitempty"`
}

// Hub fans events out to in-process subscribers (the SSE stream, audit log).
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber and returns the event channel and a
// cleanup function.
func (h *Hub) Subscribe() (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)
	h.subscribers[ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers, ch)
		close(ch)
	}

	return ch, cleanup
}

// Publish sends the event to every subscriber. Slow subscribers are skipped
// rather than blocked on.
func (h *Hub) Publish(eventType string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event := Event{Type: eventType, At: time.Now().UTC(), Data: data}
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
