package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event waiting to be dispatched.
type OutboxMessage struct {
	ID          kernel.UUID
	EventType   string
	AggregateID kernel.UUID
	Payload     []byte
	Attempts    int
	OccurredAt  time.Time
}

// OutboxRepository manages the dispatch state of outbox messages.
// Writing messages is done by the unit of work on commit.
type OutboxRepository interface {
	// Claim marks up to limit due messages as processing and returns them.
	// Messages stuck in processing for longer than staleAfter are claimed again.
	Claim(ctx context.Context, limit int, staleAfter time.Duration) ([]OutboxMessage, error)

	MarkCompleted(ctx context.Context, id kernel.UUID) error

	// MarkFailed records cause. When final is false the message goes back to pending.
	MarkFailed(ctx context.Context, id kernel.UUID, cause string, final bool) error
}

// EventHandler reacts to one dispatched outbox message.
type EventHandler interface {
	Handle(ctx context.Context, message OutboxMessage) error
}
