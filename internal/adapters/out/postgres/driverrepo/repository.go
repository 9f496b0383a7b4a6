package driverrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new driver. A taken driver code is reported as ports.ErrDuplicateDriverCode.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ports.ErrDuplicateDriverCode
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves status, counters and metadata of an existing driver.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DriverDTO{}).Where("id = ?", dto.ID).
		Select("status", "vehicle_type", "registration", "total_deliveries", "successful_deliveries", "metadata", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListAvailableForUpdate returns up to limit active drivers operating one of
// vehicles, least busy first (ties by driver code, then id). The rows are
// locked until the surrounding transaction ends. A concurrent claim waits for
// the lock instead of skipping the row, so it still sees the least busy driver.
//
// The select runs in its own savepoint: a failed lookup (lock or statement
// timeout) leaves the outer transaction usable.
func (r *GormDriverRepository) ListAvailableForUpdate(
	ctx context.Context,
	vehicles []driver.VehicleType,
	limit int,
) ([]*driver.Driver, error) {
	if len(vehicles) == 0 || limit <= 0 {
		return []*driver.Driver{}, nil
	}

	types := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		types = append(types, string(v))
	}

	var dtos []DriverDTO
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND vehicle_type IN ?", string(driver.StatusActive), types).
			Order("total_deliveries, driver_code, id").
			Limit(limit).
			Find(&dtos).Error
	})
	if err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		drivers = append(drivers, d)
	}

	return drivers, nil
}
