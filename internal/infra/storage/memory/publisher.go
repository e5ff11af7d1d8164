package memory

import (
	"context"
	"sync"

	"stayly/internal/domain/shared/events"
)

// EventSink collects published events in memory; used in tests and when no
// broker is configured.
type EventSink struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func NewEventSink() *EventSink {
	return &EventSink{}
}

func (s *EventSink) Publish(ctx context.Context, event events.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *EventSink) Events() []events.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]events.DomainEvent, len(s.events))
	copy(out, s.events)
	return out
}
