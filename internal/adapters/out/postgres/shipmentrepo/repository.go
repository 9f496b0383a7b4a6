package shipmentrepo

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/addressrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the shipment, its items and its pending tracking events.
//
// The inserts run in their own savepoint when called inside a transaction, so
// a reference collision (ports.ErrDuplicateShipmentReference) leaves the outer
// transaction usable for a retry.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items := itemsFromDomain(aggregate.Items())
	events := eventsFromDomain(aggregate.PendingTrackingEvents())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dto).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		if len(events) > 0 {
			if err := tx.Create(&events).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "idx_shipments_reference" {
			return ports.ErrDuplicateShipmentReference
		}
		return err
	}

	aggregate.ClearPendingTrackingEvents()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the mutable columns and appends the pending tracking events.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&ShipmentDTO{}).Where("id = ?", dto.ID).
		Select(
			"status", "actual_delivery_at", "driver_id", "shipping_fee", "estimated_delivery",
			"metadata", "notes", "updated_at",
		).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if events := eventsFromDomain(aggregate.PendingTrackingEvents()); len(events) > 0 {
		if err := db.Create(&events).Error; err != nil {
			return err
		}
	}

	aggregate.ClearPendingTrackingEvents()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a shipment and locks its row until the transaction ends.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.find(ctx, id.String(), "id = ?", id.Bytes())
}

// GetByExternalReference loads and locks the external shipment the carrier calls reference.
func (r *GormShipmentRepository) GetByExternalReference(ctx context.Context, reference string) (*shipment.Shipment, error) {
	if reference == "" {
		return nil, errs.NewValueIsRequiredError("reference")
	}

	return r.find(ctx, reference,
		"external_carrier_reference = ? AND carrier_type = ?", reference, string(shipment.CarrierExternal))
}

// Delete removes the tracking events, the items, the shipment row and both addresses.
func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dto ShipmentDTO
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "delivery_address_id", "pickup_address_id").
			First(&dto, "id = ?", id.Bytes()).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("shipment", id.String())
			}
			return err
		}

		if err = tx.Where("shipment_id = ?", dto.ID).Delete(&TrackingEventDTO{}).Error; err != nil {
			return err
		}
		if err = tx.Where("shipment_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
			return err
		}
		if err = tx.Delete(&ShipmentDTO{}, "id = ?", dto.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&addressrepo.AddressDTO{}, "id IN ?", []any{dto.DeliveryAddressID, dto.PickupAddressID}).Error
	})
}

func (r *GormShipmentRepository) find(ctx context.Context, key string, query string, args ...any) (*shipment.Shipment, error) {
	db := r.db.WithContext(ctx)

	var dto ShipmentDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where(query, args...).First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", key)
		}
		return nil, err
	}

	var items []ItemDTO
	if err = db.Where("shipment_id = ?", dto.ID).Order("item_id").Find(&items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, items)
}
