package driver

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// VehicleType is the kind of vehicle a driver operates.
type VehicleType string

const (
	VehicleBike  VehicleType = "bike"
	VehicleCar   VehicleType = "car"
	VehicleVan   VehicleType = "van"
	VehicleTruck VehicleType = "truck"
)

// AllVehicleTypes lists every vehicle in a stable order.
func AllVehicleTypes() []VehicleType {
	return []VehicleType{VehicleCar, VehicleVan, VehicleTruck, VehicleBike}
}

// ParseVehicleType accepts bike, car, van or truck in any case.
func ParseVehicleType(s string) (VehicleType, error) {
	v := VehicleType(strings.ToLower(strings.TrimSpace(s)))
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

func (v VehicleType) Validate() error {
	switch v {
	case VehicleBike, VehicleCar, VehicleVan, VehicleTruck:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%q is not a known vehicle", string(v)))
}

// VehiclesFor returns the vehicles allowed to carry a shipment of the given mode:
//
//	road    car, van, truck, bike
//	air     car, van
//	sea     van, truck
//
// Any other mode allows every vehicle.
func VehiclesFor(mode kernel.TransportMode) []VehicleType {
	switch mode {
	case kernel.TransportModeRoad:
		return []VehicleType{VehicleCar, VehicleVan, VehicleTruck, VehicleBike}
	case kernel.TransportModeAir:
		return []VehicleType{VehicleCar, VehicleVan}
	case kernel.TransportModeSea:
		return []VehicleType{VehicleVan, VehicleTruck}
	default:
		return AllVehicleTypes()
	}
}
