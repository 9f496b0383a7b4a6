package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// TransportMode is how a parcel travels between cities.
type TransportMode string

const (
	TransportModeRoad TransportMode = "road"
	TransportModeAir  TransportMode = "air"
	TransportModeSea  TransportMode = "sea"
)

// ParseTransportMode accepts road, air or sea in any case.
func ParseTransportMode(s string) (TransportMode, error) {
	mode := TransportMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"transportMode",
			fmt.Errorf("%q is not one of road, air, sea", s),
		)
	}
	return mode, nil
}

func (m TransportMode) IsValid() bool {
	switch m {
	case TransportModeRoad, TransportModeAir, TransportModeSea:
		return true
	}
	return false
}

func (m TransportMode) String() string {
	return string(m)
}

// ServiceLevel is the delivery speed a shipment is booked with.
type ServiceLevel string

const (
	ServiceLevelExpress  ServiceLevel = "Express"
	ServiceLevelStandard ServiceLevel = "Standard"
	ServiceLevelEconomy  ServiceLevel = "Economy"
)

// ParseServiceLevel accepts Express, Standard or Economy in any case and
// returns the canonical capitalised form.
func ParseServiceLevel(s string) (ServiceLevel, error) {
	for _, level := range []ServiceLevel{ServiceLevelExpress, ServiceLevelStandard, ServiceLevelEconomy} {
		if strings.EqualFold(strings.TrimSpace(s), string(level)) {
			return level, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause(
		"serviceLevel",
		fmt.Errorf("%q is not one of Express, Standard, Economy", s),
	)
}

func (l ServiceLevel) String() string {
	return string(l)
}
