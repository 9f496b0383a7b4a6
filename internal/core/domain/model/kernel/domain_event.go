package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate. The unit of work persists
// recorded events to the outbox in the same transaction as the aggregate.
type DomainEvent interface {
	EventID() UUID
	EventType() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventRecorder is implemented by aggregates that record domain events.
type EventRecorder interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
