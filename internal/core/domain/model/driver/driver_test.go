package driver_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriver(t *testing.T) {
	userID := kernel.NewUUID()

	d, err := driver.NewDriver(kernel.NewUUID(), " DRV-001 ", &userID, driver.VehicleBike, "LAG-123", nil)
	require.NoError(t, err)

	assert.Equal(t, "DRV-001", d.Code())
	assert.Equal(t, driver.StatusActive, d.Status())
	assert.Zero(t, d.TotalDeliveries())
	assert.True(t, d.UserID().IsEqual(userID))
	assert.NotNil(t, d.Metadata())
}

func TestNewDriver_ReportsEveryProblem(t *testing.T) {
	_, err := driver.NewDriver(kernel.UUID{}, "", nil, driver.VehicleType("scooter"), "", nil)
	require.Error(t, err)

	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRestoreDriver_CounterInvariant(t *testing.T) {
	_, err := driver.RestoreDriver(kernel.NewUUID(), "D", nil, driver.VehicleCar, "R", driver.StatusActive, 2, 3, nil)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestDriver_CanCarry(t *testing.T) {
	d, err := driver.NewDriver(kernel.NewUUID(), "D", nil, driver.VehicleBike, "R", nil)
	require.NoError(t, err)

	assert.True(t, d.CanCarry(driver.VehiclesFor(kernel.TransportModeRoad)))
	assert.False(t, d.CanCarry(driver.VehiclesFor(kernel.TransportModeAir)))

	require.NoError(t, d.ChangeStatus(driver.StatusOnLeave))
	assert.False(t, d.CanCarry(driver.VehiclesFor(kernel.TransportModeRoad)))
}

func TestDriver_ChangeStatus_Invalid(t *testing.T) {
	d, err := driver.NewDriver(kernel.NewUUID(), "D", nil, driver.VehicleVan, "R", nil)
	require.NoError(t, err)

	require.Error(t, d.ChangeStatus(driver.Status("retired")))
	assert.Equal(t, driver.StatusActive, d.Status())
}

func TestDriver_RecordDelivery(t *testing.T) {
	d, err := driver.NewDriver(kernel.NewUUID(), "D", nil, driver.VehicleVan, "R", nil)
	require.NoError(t, err)

	d.RecordDelivery(true)
	d.RecordDelivery(false)

	assert.Equal(t, 2, d.TotalDeliveries())
	assert.Equal(t, 1, d.SuccessfulDeliveries())
}

func TestVehiclesFor(t *testing.T) {
	tests := []struct {
		mode kernel.TransportMode
		want []driver.VehicleType
	}{
		{kernel.TransportModeRoad, []driver.VehicleType{driver.VehicleCar, driver.VehicleVan, driver.VehicleTruck, driver.VehicleBike}},
		{kernel.TransportModeAir, []driver.VehicleType{driver.VehicleCar, driver.VehicleVan}},
		{kernel.TransportModeSea, []driver.VehicleType{driver.VehicleVan, driver.VehicleTruck}},
		{kernel.TransportMode("rail"), driver.AllVehicleTypes()},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, driver.VehiclesFor(tt.mode))
		})
	}
}

func TestParseVehicleTypeAndStatus(t *testing.T) {
	v, err := driver.ParseVehicleType("TRUCK")
	require.NoError(t, err)
	assert.Equal(t, driver.VehicleTruck, v)

	s, err := driver.ParseStatus("On_Leave")
	require.NoError(t, err)
	assert.Equal(t, driver.StatusOnLeave, s)

	_, err = driver.ParseStatus("away")
	require.Error(t, err)
}
