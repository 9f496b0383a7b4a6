package driver

import (
	"errors"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

// Driver is a fleet member able to carry internal shipments.
//
// Invariants:
//   - driverCode and registration are non-empty
//   - successfulDeliveries never exceeds totalDeliveries
type Driver struct {
	id                   kernel.UUID
	driverCode           string
	userID               *kernel.UUID
	vehicleType          VehicleType
	registration         string
	status               Status
	totalDeliveries      int
	successfulDeliveries int
	metadata             kernel.Metadata

	isConstructed bool
}

// NewDriver registers an active driver with empty counters.
func NewDriver(
	id kernel.UUID,
	driverCode string,
	userID *kernel.UUID,
	vehicleType VehicleType,
	registration string,
	metadata kernel.Metadata,
) (*Driver, error) {
	return RestoreDriver(id, driverCode, userID, vehicleType, registration, StatusActive, 0, 0, metadata)
}

// RestoreDriver rebuilds a driver from storage.
func RestoreDriver(
	id kernel.UUID,
	driverCode string,
	userID *kernel.UUID,
	vehicleType VehicleType,
	registration string,
	status Status,
	totalDeliveries int,
	successfulDeliveries int,
	metadata kernel.Metadata,
) (*Driver, error) {
	d := &Driver{
		id:                   id,
		driverCode:           strings.TrimSpace(driverCode),
		userID:               userID,
		vehicleType:          vehicleType,
		registration:         strings.TrimSpace(registration),
		status:               status,
		totalDeliveries:      totalDeliveries,
		successfulDeliveries: successfulDeliveries,
		metadata:             metadata,
		isConstructed:        true,
	}

	if err := errors.Join(
		id.Validate(),
		d.validateCode(),
		vehicleType.Validate(),
		d.validateRegistration(),
		status.Validate(),
		d.validateCounters(),
	); err != nil {
		return nil, err
	}

	if userID != nil {
		if err := userID.Validate(); err != nil {
			return nil, err
		}
	}

	if d.metadata == nil {
		d.metadata = kernel.Metadata{}
	}
	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

func (d *Driver) ID() kernel.UUID { return d.id }

func (d *Driver) Code() string { return d.driverCode }

func (d *Driver) UserID() *kernel.UUID { return d.userID }

func (d *Driver) VehicleType() VehicleType { return d.vehicleType }

func (d *Driver) Registration() string { return d.registration }

func (d *Driver) Status() Status { return d.status }

func (d *Driver) TotalDeliveries() int { return d.totalDeliveries }

func (d *Driver) SuccessfulDeliveries() int { return d.successfulDeliveries }

func (d *Driver) Metadata() kernel.Metadata { return d.metadata.Clone() }

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// IsActive reports whether the driver may receive new shipments.
func (d *Driver) IsActive() bool {
	return d.status == StatusActive
}

// CanCarry reports whether the driver is active and drives one of the given vehicles.
func (d *Driver) CanCarry(vehicles []VehicleType) bool {
	return d.IsActive() && slices.Contains(vehicles, d.vehicleType)
}

// ChangeStatus moves the driver to another availability status.
func (d *Driver) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

// RecordDelivery counts a finished delivery attempt.
func (d *Driver) RecordDelivery(successful bool) {
	d.totalDeliveries++
	if successful {
		d.successfulDeliveries++
	}
}

func (d *Driver) validateCode() error {
	if d.driverCode == "" {
		return errs.NewValueIsRequiredError("driverCode")
	}
	return nil
}

func (d *Driver) validateRegistration() error {
	if d.registration == "" {
		return errs.NewValueIsRequiredError("registration")
	}
	return nil
}

func (d *Driver) validateCounters() error {
	if d.totalDeliveries < 0 {
		return errs.NewValueIsOutOfRangeError("totalDeliveries", d.totalDeliveries, 0, "unbounded")
	}
	if d.successfulDeliveries < 0 || d.successfulDeliveries > d.totalDeliveries {
		return errs.NewValueIsOutOfRangeError("successfulDeliveries", d.successfulDeliveries, 0, d.totalDeliveries)
	}
	return nil
}
