package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"stayly/internal/domain/shared/events"
)

// EventPublisher serializes domain events to JSON and emits them to a topic
// derived from the event name: "pricing.period_created" with prefix "stayly"
// lands on "stayly.pricing". The event name and aggregate id travel as headers.
type EventPublisher struct {
	Producer    *Producer
	TopicPrefix string
}

type envelope struct {
	Name        string      `json:"name"`
	AggregateID string      `json:"aggregate_id"`
	OccurredAt  time.Time   `json:"occurred_at"`
	Payload     interface{} `json:"payload"`
}

func (p EventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	body, err := json.Marshal(envelope{
		Name:        event.EventName(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt().UTC(),
		Payload:     event,
	})
	if err != nil {
		return err
	}
	headers := map[string]string{
		"event_name":   event.EventName(),
		"aggregate_id": event.AggregateID(),
	}
	return p.Producer.Publish(ctx, p.topic(event.EventName()), event.AggregateID(), body, headers)
}

func (p EventPublisher) topic(eventName string) string {
	context := eventName
	if idx := strings.Index(eventName, "."); idx > 0 {
		context = eventName[:idx]
	}
	if p.TopicPrefix == "" {
		return context
	}
	return p.TopicPrefix + "." + context
}
