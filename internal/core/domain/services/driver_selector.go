package services

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/shipment"
)

// ErrDriverNotFound is returned when no candidate is eligible for a shipment.
var ErrDriverNotFound = errors.New("driver not found")

// DriverSelector picks a fleet driver for an internal shipment and assigns it.
//
// Business rules:
//   - only active drivers are eligible
//   - the driver's vehicle must suit the shipment's transport mode (see driver.VehiclesFor)
//   - among eligible drivers the one with the fewest total deliveries wins
//   - ties go to the lowest driver code, then the lowest id
//
// Example usage:
//
//	selector := services.NewDriverSelector()
//	chosen, err := selector.Assign(s, candidates, time.Now())
//	if errors.Is(err, services.ErrDriverNotFound) {
//	    // leave the shipment unassigned
//	}
type DriverSelector struct{}

func NewDriverSelector() DriverSelector {
	return DriverSelector{}
}

// Assign selects the best candidate for s and attaches it to the shipment.
func (d DriverSelector) Assign(s *shipment.Shipment, candidates []*driver.Driver, now time.Time) (*driver.Driver, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.CarrierType() != shipment.CarrierInternal {
		return nil, shipment.ErrDriverNotAllowed
	}

	best, err := d.Select(driver.VehiclesFor(s.TransportMode()), candidates)
	if err != nil {
		return nil, err
	}

	if err := s.AssignDriver(best, now); err != nil {
		return nil, err
	}
	return best, nil
}

// Select returns the least loaded eligible driver without touching any shipment.
func (DriverSelector) Select(vehicles []driver.VehicleType, candidates []*driver.Driver) (*driver.Driver, error) {
	var best *driver.Driver
	for _, c := range candidates {
		if c.Validate() != nil || !c.IsActive() || !c.CanCarry(vehicles) {
			continue
		}
		if best == nil || lessLoaded(c, best) {
			best = c
		}
	}

	if best == nil {
		return nil, ErrDriverNotFound
	}
	return best, nil
}

func lessLoaded(a, b *driver.Driver) bool {
	if a.TotalDeliveries() != b.TotalDeliveries() {
		return a.TotalDeliveries() < b.TotalDeliveries()
	}
	if a.Code() != b.Code() {
		return a.Code() < b.Code()
	}
	return a.ID().String() < b.ID().String()
}
