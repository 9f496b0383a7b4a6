package pgtest

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/address"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

// Addresses builds a Lagos pickup and an Abuja delivery address.
func Addresses(t *testing.T) (*address.Address, *address.Address) {
	t.Helper()

	pickup, err := address.NewAddress(kernel.NewUUID(), address.TypePickup, address.Details{
		Name:    "Vendor Store",
		Phone:   "+2348000000001",
		Line1:   "1 Broad Street",
		City:    "Lagos",
		State:   "Lagos",
		Country: "NG",
	})
	require.NoError(t, err)

	delivery, err := address.NewAddress(kernel.NewUUID(), address.TypeDelivery, address.Details{
		Name:     "Ada Obi",
		Phone:    "+2348000000002",
		Email:    "ada@example.com",
		Line1:    "5 Aminu Kano Crescent",
		City:     "Abuja",
		State:    "FCT",
		Country:  "NG",
		Metadata: kernel.Metadata{"landmark": "Near the mosque"},
	})
	require.NoError(t, err)

	return pickup, delivery
}

// Shipment builds a two-item shipment between the given addresses.
func Shipment(t *testing.T, carrierSlug string, pickup, delivery *address.Address) *shipment.Shipment {
	t.Helper()

	unit := 4000.0
	s, err := shipment.NewShipment(kernel.NewUUID(), shipment.Draft{
		OrderReference:           "ORD-2001",
		UserID:                   kernel.NewUUID(),
		VendorName:               "Vendor Store",
		CarrierName:              "Obana Logistics",
		CarrierSlug:              carrierSlug,
		ExternalCarrierReference: "GIG-778812",
		TransportMode:            kernel.TransportModeRoad,
		ServiceLevel:             kernel.ServiceLevelStandard,
		Currency:                 "ngn",
		Metadata:                 kernel.Metadata{"channel": "web"},
		Items: []shipment.ItemDraft{
			{Name: "Phone case", Quantity: 2, UnitPrice: &unit, Weight: 0.5},
			{
				Name:       "Charger",
				Quantity:   1,
				UnitPrice:  &unit,
				Weight:     0.25,
				Dimensions: &shipment.Dimensions{Length: 10, Width: 5, Height: 3},
			},
		},
	}, pickup, delivery, time.Now())
	require.NoError(t, err)

	return s
}

// Driver builds an active driver with the given delivery count.
func Driver(t *testing.T, code string, vehicle driver.VehicleType, total int) *driver.Driver {
	t.Helper()

	d, err := driver.RestoreDriver(
		kernel.NewUUID(), code, nil, vehicle, "LAG-"+code,
		driver.StatusActive, total, total, kernel.Metadata{"name": "Driver " + code},
	)
	require.NoError(t, err)

	return d
}
