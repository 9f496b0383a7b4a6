// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes together with the domain
// events those objects recorded.
//
// Key Features:
//   - Transaction management across the shipment, address, driver, route and outbox repositories
//   - Aggregate tracking for the transactional outbox
//   - Proper isolation between concurrent operations
//   - Savepoint-friendly repositories, so a unique violation can be retried in place
//
// Usage Patterns:
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx) //nolint:errcheck
//
//	if err := uow.ShipmentRepository().Add(ctx, s); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Multi-Repository Transactions:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx) //nolint:errcheck
//
//	// All operations within same transaction
//	if err := uow.ShipmentRepository().Update(ctx, s); err != nil {
//	    return err
//	}
//
//	if err := uow.DriverRepository().Update(ctx, d); err != nil {
//	    return err
//	}
//
//	// The events recorded by s are written to outbox_messages before the commit
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Driver selection locks with FOR UPDATE; outbox claiming uses FOR UPDATE SKIP LOCKED
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/addressrepo"
	"fulfillment/internal/adapters/out/postgres/driverrepo"
	"fulfillment/internal/adapters/out/postgres/outboxrepo"
	"fulfillment/internal/adapters/out/postgres/routerepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The provided database connection will be used for all created unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
// Each instance maintains its own transaction state and aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations.
//
// Every aggregate added or updated through one of its repositories is tracked.
// On Commit the domain events of tracked aggregates that implement
// kernel.EventRecorder are written to the outbox in the same transaction, and
// cleared from the aggregate so that a later commit does not write them twice.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations will execute within this transaction context.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit writes the recorded domain events to the outbox and finalizes the
// transaction. After commit, the transaction is closed and cannot be reused.
//
// Returns gorm.ErrInvalidTransaction if no active transaction exists. When the
// outbox write fails the transaction is rolled back and the error returned.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.flushDomainEvents(ctx); err != nil {
		_ = uow.tx.Rollback()
		uow.reset()
		return err
	}

	err := uow.tx.Commit().Error
	uow.reset()
	return err
}

// Rollback discards all changes made within the current transaction and
// forgets the tracked aggregates.
//
// Returns gorm.ErrInvalidTransaction if no active transaction exists, which
// makes it safe to defer after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.reset()
	return err
}

// ShipmentRepository provides access to shipment persistence operations within the unit of work.
// Repository operations will execute within the current transaction if one is active,
// otherwise they use the main database connection for immediate execution.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

// AddressRepository provides access to address persistence operations within the unit of work.
func (uow *GormUnitOfWork) AddressRepository() ports.AddressRepository {
	return addressrepo.NewGormAddressRepository(uow.conn())
}

// DriverRepository provides access to driver persistence operations within the unit of work.
// Locks taken by ListAvailableForUpdate are held until Commit or Rollback.
func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn(), uow)
}

// RouteRepository provides access to the route template catalog within the unit of work.
func (uow *GormUnitOfWork) RouteRepository() ports.RouteRepository {
	return routerepo.NewGormRouteRepository(uow.conn())
}

// OutboxRepository provides access to outbox dispatch state within the unit of work.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// This method is called by repository implementations when aggregates are
// added or updated.
//
// Example (as used by repository implementations):
//
//	func (r *GormDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
//	    if err := r.db.Create(&dto).Error; err != nil {
//	        return err
//	    }
//
//	    r.tracker.TrackAggregate(d.ID(), d)
//	    return nil
//	}
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// flushDomainEvents appends the events of every tracked recorder to the outbox.
// An aggregate tracked more than once contributes its events only once.
func (uow *GormUnitOfWork) flushDomainEvents(ctx context.Context) error {
	seen := make(map[kernel.EventRecorder]struct{}, len(uow.trackedAggregates))
	recorders := make([]kernel.EventRecorder, 0, len(uow.trackedAggregates))
	var events []kernel.DomainEvent

	for _, tracked := range uow.trackedAggregates {
		recorder, ok := tracked.Aggregate.(kernel.EventRecorder)
		if !ok {
			continue
		}
		if _, dup := seen[recorder]; dup {
			continue
		}
		seen[recorder] = struct{}{}
		recorders = append(recorders, recorder)
		events = append(events, recorder.DomainEvents()...)
	}

	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Append(ctx, events); err != nil {
		return err
	}

	for _, recorder := range recorders {
		recorder.ClearDomainEvents()
	}
	return nil
}

func (uow *GormUnitOfWork) reset() {
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
}
