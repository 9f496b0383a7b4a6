package outboxrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{
		db:  db,
		now: time.Now,
	}
}

// Append writes events as pending messages. The unit of work calls it inside
// the transaction that saves the recording aggregates.
func (r *GormOutboxRepository) Append(ctx context.Context, events []kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	now := r.now().UTC()
	dtos := make([]OutboxMessageDTO, 0, len(events))
	for _, e := range events {
		dto, err := fromEvent(e, now)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Claim picks up to limit due messages, oldest first. Rows held by another
// relay are skipped.
func (r *GormOutboxRepository) Claim(ctx context.Context, limit int, staleAfter time.Duration) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		return nil, nil
	}

	now := r.now().UTC()
	db := r.db.WithContext(ctx)

	var dtos []OutboxMessageDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? OR (status = ? AND locked_at < ?)", StatusPending, StatusProcessing, now.Add(-staleAfter)).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}

	err = db.Model(&OutboxMessageDTO{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":    StatusProcessing,
			"attempts":  gorm.Expr("attempts + 1"),
			"locked_at": now,
		}).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		dto.Attempts++
		msg, convErr := dto.toPort()
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

func (r *GormOutboxRepository) MarkCompleted(ctx context.Context, id kernel.UUID) error {
	now := r.now().UTC()
	return r.update(ctx, id, map[string]any{
		"status":       StatusCompleted,
		"last_error":   "",
		"locked_at":    nil,
		"processed_at": now,
	})
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, cause string, final bool) error {
	values := map[string]any{
		"status":     StatusPending,
		"last_error": cause,
		"locked_at":  nil,
	}
	if final {
		values["status"] = StatusFailed
		values["processed_at"] = r.now().UTC()
	}
	return r.update(ctx, id, values)
}

func (r *GormOutboxRepository) update(ctx context.Context, id kernel.UUID, values map[string]any) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OutboxMessageDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
