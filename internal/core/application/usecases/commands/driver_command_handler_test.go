package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateDriverCommand(t *testing.T) {
	tests := []struct {
		name    string
		payload commands.DriverPayload
		wantErr bool
	}{
		{
			name:    "valid",
			payload: commands.DriverPayload{DriverCode: "DRV-100", VehicleType: "Van", Registration: "ABJ-1"},
		},
		{
			name:    "unknown vehicle",
			payload: commands.DriverPayload{DriverCode: "DRV-100", VehicleType: "boat", Registration: "ABJ-1"},
			wantErr: true,
		},
		{
			name:    "bad user id",
			payload: commands.DriverPayload{DriverCode: "DRV-100", UserID: "nope", VehicleType: "car", Registration: "ABJ-1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewCreateDriverCommand(tt.payload)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, driver.VehicleVan, cmd.VehicleType())
			assert.Nil(t, cmd.UserID())
		})
	}
}

func TestCreateDriverCommandHandler(t *testing.T) {
	// Arrange
	ctx := t.Context()
	uow := txUoW(ctx, true)
	factory := new(MockDriverUoWFactory)
	repo := new(MockDriverRepository)
	factory.On("Create").Return(uow).Once()
	uow.On("DriverRepository").Return(repo).Once()

	var saved *driver.Driver
	repo.On("Add", ctx, mock.AnythingOfType("*driver.Driver")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*driver.Driver) }).
		Return(nil).Once()

	cmd, err := commands.NewCreateDriverCommand(commands.DriverPayload{
		DriverCode:   "DRV-100",
		VehicleType:  "bike",
		Registration: "LAG-77",
		Metadata:     map[string]any{"name": "Musa", "phone": "+2348000000003"},
	})
	require.NoError(t, err)

	handler := commands.NewCreateDriverCommandHandler(factory)

	// Act
	id, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	uow.AssertExpectations(t)
	require.NotNil(t, saved)
	assert.Equal(t, id, saved.ID())
	assert.Equal(t, driver.StatusActive, saved.Status())
	assert.Zero(t, saved.TotalDeliveries())
}

func TestCreateDriverCommandHandler_DuplicateCode(t *testing.T) {
	ctx := t.Context()
	uow := txUoW(ctx, false)
	factory := new(MockDriverUoWFactory)
	repo := new(MockDriverRepository)
	factory.On("Create").Return(uow).Once()
	uow.On("DriverRepository").Return(repo).Once()
	repo.On("Add", ctx, mock.Anything).Return(ports.ErrDuplicateDriverCode).Once()

	cmd, err := commands.NewCreateDriverCommand(commands.DriverPayload{
		DriverCode: "DRV-100", VehicleType: "bike", Registration: "LAG-77",
	})
	require.NoError(t, err)

	handler := commands.NewCreateDriverCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrDuplicateDriverCode)
	uow.AssertExpectations(t)
}

func TestChangeDriverStatusCommandHandler(t *testing.T) {
	// Arrange
	ctx := t.Context()
	d := bikeDriver(t, "DRV-001", 0, 0)

	uow := txUoW(ctx, true)
	factory := new(MockDriverUoWFactory)
	repo := new(MockDriverRepository)
	factory.On("Create").Return(uow).Once()
	uow.On("DriverRepository").Return(repo).Once()
	repo.On("Get", ctx, d.ID()).Return(d, nil).Once()
	repo.On("Update", ctx, d).Return(nil).Once()

	cmd, err := commands.NewChangeDriverStatusCommand(d.ID(), "suspended")
	require.NoError(t, err)

	handler := commands.NewChangeDriverStatusCommandHandler(factory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	repo.AssertExpectations(t)
	assert.Equal(t, driver.StatusSuspended, d.Status())
	assert.False(t, d.IsActive())
}

func TestNewChangeDriverStatusCommand_RejectsUnknownStatus(t *testing.T) {
	_, err := commands.NewChangeDriverStatusCommand(kernel.NewUUID(), "retired")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
