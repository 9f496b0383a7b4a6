package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func shipmentPayload(carrierSlug string) commands.ShipmentPayload {
	return commands.ShipmentPayload{
		OrderReference: "ORD-2001",
		VendorName:     "Vendor Store",
		PickupAddress: &commands.AddressPayload{
			Name:    "Vendor Store",
			Phone:   "+2348000000001",
			Line1:   "1 Broad Street",
			City:    "Lagos",
			State:   "Lagos",
			Country: "NG",
		},
		DeliveryAddress: &commands.AddressPayload{
			Name:    "Ada Obi",
			Phone:   "+2348000000002",
			Email:   "ada@example.com",
			Line1:   "5 Aminu Kano Crescent",
			City:    "Abuja",
			State:   "FCT",
			Country: "NG",
		},
		Items: []commands.ItemPayload{
			{Name: "Phone case", Quantity: ptr(1), Weight: ptr(0.5), UnitPrice: ptr(4000.0)},
		},
		TransportMode: "road",
		ServiceLevel:  "standard",
		CarrierName:   "Obana Logistics",
		CarrierSlug:   carrierSlug,
	}
}

func principal(t *testing.T, role kernel.Role) kernel.Principal {
	t.Helper()
	p, err := kernel.NewPrincipal(kernel.NewUUID(), role)
	require.NoError(t, err)
	return p
}

// storedShipment restores a shipment in the given status as a repository would return it.
func storedShipment(t *testing.T, status shipment.Status, carrierType shipment.CarrierType, driverID *kernel.UUID) *shipment.Shipment {
	t.Helper()
	s, err := shipment.RestoreShipment(shipment.State{
		ID:                       kernel.NewUUID(),
		Reference:                "OBANA-20250314-AB12CD34",
		UserID:                   kernel.NewUUID(),
		CarrierType:              carrierType,
		CarrierName:              "Obana Logistics",
		CarrierSlug:              "gig",
		ExternalCarrierReference: "GIG-778812",
		TransportMode:            kernel.TransportModeRoad,
		ServiceLevel:             kernel.ServiceLevelStandard,
		DeliveryAddressID:        kernel.NewUUID(),
		PickupAddressID:          kernel.NewUUID(),
		Currency:                 "NGN",
		Status:                   status,
		DriverID:                 driverID,
		CreatedAt:                time.Now().UTC(),
		UpdatedAt:                time.Now().UTC(),
	})
	require.NoError(t, err)
	return s
}

func bikeDriver(t *testing.T, code string, total, successful int) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(
		kernel.NewUUID(), code, nil, driver.VehicleBike, "LAG-123-XY",
		driver.StatusActive, total, successful, kernel.Metadata{"name": "Musa"},
	)
	require.NoError(t, err)
	return d
}

func logger() *zap.Logger {
	return zap.NewNop()
}
