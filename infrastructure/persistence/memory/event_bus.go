package memory

import (
	"context"
	"sync"

	"dreamvault/application/ports"
	"dreamvault/domain/events"
)

// EventBus is an in-memory ports.EventBus that records published events.
// Development mode and tests use it in place of the real bus.
type EventBus struct {
	mu        sync.Mutex
	published []events.DomainEvent
}

// NewEventBus creates an empty in-memory bus
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Publish records a single event
func (b *EventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	return nil
}

// PublishBatch records multiple events
func (b *EventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, batch...)
	return nil
}

// Published returns a copy of everything recorded so far
func (b *EventBus) Published() []events.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]events.DomainEvent, len(b.published))
	copy(out, b.published)
	return out
}

var _ ports.EventBus = (*EventBus)(nil)
