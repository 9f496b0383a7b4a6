// Package outboxrepo stores domain events next to the aggregates that recorded
// them and tracks their dispatch state.
package outboxrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// OutboxMessageDTO is a row of the outbox_messages table.
type OutboxMessageDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EventType   string
	AggregateID uuid.UUID       `gorm:"type:uuid"`
	Payload     json.RawMessage `gorm:"type:jsonb"`
	Status      string
	Attempts    int
	LastError   string
	OccurredAt  time.Time
	LockedAt    *time.Time
	ProcessedAt *time.Time
	CreatedAt   time.Time
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromEvent(e kernel.DomainEvent, now time.Time) (OutboxMessageDTO, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return OutboxMessageDTO{}, err
	}

	return OutboxMessageDTO{
		ID:          e.EventID().Bytes(),
		EventType:   e.EventType(),
		AggregateID: e.AggregateID().Bytes(),
		Payload:     payload,
		Status:      StatusPending,
		OccurredAt:  e.OccurredAt(),
		CreatedAt:   now,
	}, nil
}

func (dto OutboxMessageDTO) toPort() (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		EventType:   dto.EventType,
		AggregateID: aggregateID,
		Payload:     dto.Payload,
		Attempts:    dto.Attempts,
		OccurredAt:  dto.OccurredAt,
	}, nil
}
