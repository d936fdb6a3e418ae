package realtime

import (
	"sync"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

// EventKind distinguishes the two events the evaluator emits.
type EventKind string

const (
	EventOpportunity EventKind = "opportunity"
	EventClosed EventKind = "opportunity_closed"
)

// Event is one published realtime occurrence. Opportunity is nil for
// EventClosed.
type Event struct {
	Kind EventKind
	PairID string
	Opportunity *models.RealtimeOpportunity
}

// EventBus is a typed pub/sub following the familiar register/unregister/
// broadcast-over-a-client-set hub shape, but over plain Go channels — there
// are no WebSocket clients in this engine, only in-process subscribers
// (e.g. the batch API surface, or a test).
type EventBus struct {
	mu sync.RWMutex
	subs map[chan Event]struct{}
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[chan Event]struct{})}
}

// Subscribe returns a channel that receives every future published
// event. The channel is buffered so a slow subscriber cannot block
// Publish; Unsubscribe must be called to stop receiving and release it.
func (b *EventBus) Subscribe() chan Event {
	ch := make(chan Event, 32)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[ch] = struct{}{}
	return ch
}

func (b *EventBus) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

// Publish fans an event out to every current subscriber. A full
// subscriber channel drops the event rather than blocking the publisher,
// keeping broadcast non-blocking.
func (b *EventBus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
