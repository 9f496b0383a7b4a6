package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
)

// ErrDuplicateDriverCode is returned by DriverRepository.Add when the code is taken.
var ErrDuplicateDriverCode = errors.New("driver code already exists")

// DriverRepository defines the persistence contract for fleet drivers.
type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error
	Update(ctx context.Context, aggregate *driver.Driver) error
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// ListAvailableForUpdate returns up to limit active drivers operating one of
	// vehicles, least loaded first, and locks their rows. A concurrent claim
	// waits for the lock and then sees the same least loaded driver, since a
	// driver can carry several shipments.
	ListAvailableForUpdate(ctx context.Context, vehicles []driver.VehicleType, limit int) ([]*driver.Driver, error)
}
