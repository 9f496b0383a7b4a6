package commands_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func lagosAbujaTemplate(t *testing.T) *route.Template {
	t.Helper()
	small, err := route.NewWeightBracket(0, ptr(1.0), 1500, "2-3 days")
	require.NoError(t, err)
	large, err := route.NewWeightBracket(1, nil, 4000, "3-5 days")
	require.NoError(t, err)

	tpl, err := route.NewTemplate(kernel.NewUUID(), route.Definition{
		OriginCity:      "lagos",
		DestinationCity: "ABUJA",
		TransportMode:   kernel.TransportModeRoad,
		ServiceLevel:    "Standard",
		Brackets:        []route.WeightBracket{small, large},
	}, time.Now())
	require.NoError(t, err)
	return tpl
}

type createShipmentFixture struct {
	uow          *MockUoW
	factory      *MockCreateShipmentUoWFactory
	addressRepo  *MockAddressRepository
	shipmentRepo *MockShipmentRepository
	driverRepo   *MockDriverRepository
	routeRepo    *MockRouteRepository
	handler      commands.CreateShipmentCommandHandler
}

func newCreateShipmentFixture() *createShipmentFixture {
	f := &createShipmentFixture{
		uow:          new(MockUoW),
		factory:      new(MockCreateShipmentUoWFactory),
		addressRepo:  new(MockAddressRepository),
		shipmentRepo: new(MockShipmentRepository),
		driverRepo:   new(MockDriverRepository),
		routeRepo:    new(MockRouteRepository),
	}
	f.factory.On("Create").Return(f.uow).Maybe()
	f.uow.On("AddressRepository").Return(f.addressRepo).Maybe()
	f.uow.On("ShipmentRepository").Return(f.shipmentRepo).Maybe()
	f.uow.On("DriverRepository").Return(f.driverRepo).Maybe()
	f.uow.On("RouteRepository").Return(f.routeRepo).Maybe()
	f.handler = commands.NewCreateShipmentCommandHandler(f.factory, "NGN", logger())
	return f
}

func (f *createShipmentFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.factory.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.addressRepo.AssertExpectations(t)
	f.shipmentRepo.AssertExpectations(t)
	f.driverRepo.AssertExpectations(t)
	f.routeRepo.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_InternalShipmentIsPricedAndAssigned(t *testing.T) {
	// Arrange
	ctx := t.Context()
	f := newCreateShipmentFixture()
	busy := bikeDriver(t, "DRV-002", 9, 8)
	idle := bikeDriver(t, "DRV-001", 3, 3)

	var saved *shipment.Shipment
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.addressRepo.On("Add", ctx, mock.AnythingOfType("*address.Address")).Return(nil).Twice(),
		f.routeRepo.On("List", ctx).Return([]*route.Template{lagosAbujaTemplate(t)}, nil).Once(),
		f.driverRepo.On("ListAvailableForUpdate", ctx, driver.VehiclesFor(kernel.TransportModeRoad), 1).
			Return([]*driver.Driver{busy, idle}, nil).Once(),
		f.shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*shipment.Shipment) }).
			Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), shipmentPayload("obana"))
	require.NoError(t, err)

	// Act
	result, err := f.handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	f.assertExpectations(t)

	require.NotNil(t, saved)
	assert.Equal(t, cmd.ShipmentID(), result.ShipmentID)
	assert.Equal(t, shipment.CarrierInternal, result.CarrierType)
	assert.Equal(t, shipment.StatusPending, result.Status)
	assert.True(t, strings.HasPrefix(result.Reference, "OBANA-"))
	assert.InDelta(t, 1500.0, result.ShippingFee, 1e-9)
	assert.Equal(t, "2-3 days", result.EstimatedDelivery)
	require.NotNil(t, result.DriverID)
	assert.Equal(t, idle.ID(), *result.DriverID)

	assert.InDelta(t, 0.5, saved.TotalWeight(), 1e-9)
	require.Len(t, saved.PendingTrackingEvents(), 1)
	assert.Equal(t, shipment.TrackingCreated, saved.PendingTrackingEvents()[0].Status())
	assert.Equal(t, "NGN", saved.Snapshot().Currency)
}

func TestCreateShipmentCommandHandler_ExternalShipmentSkipsFleet(t *testing.T) {
	// Arrange
	ctx := t.Context()
	f := newCreateShipmentFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.addressRepo.On("Add", ctx, mock.Anything).Return(nil).Twice()
	f.shipmentRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	p := shipmentPayload("gig")
	p.CarrierName = "GIG Logistics"
	p.ExternalCarrierReference = "GIG-778812"
	p.ShippingFee = ptr(3200.0)
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), p)
	require.NoError(t, err)

	// Act
	result, err := f.handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	f.assertExpectations(t)
	f.routeRepo.AssertNotCalled(t, "List", mock.Anything)
	f.driverRepo.AssertNotCalled(t, "ListAvailableForUpdate", mock.Anything, mock.Anything, mock.Anything)

	assert.Equal(t, shipment.CarrierExternal, result.CarrierType)
	assert.True(t, strings.HasPrefix(result.Reference, "EXT-"))
	assert.Equal(t, "GIG-778812", result.ExternalReference)
	assert.InDelta(t, 3200.0, result.ShippingFee, 1e-9)
	assert.Nil(t, result.DriverID)
}

func TestCreateShipmentCommandHandler_NoDriverOrRouteStillCreates(t *testing.T) {
	// Arrange
	ctx := t.Context()
	f := newCreateShipmentFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.addressRepo.On("Add", ctx, mock.Anything).Return(nil).Twice()
	f.routeRepo.On("List", ctx).Return([]*route.Template{}, nil).Once()
	f.driverRepo.On("ListAvailableForUpdate", ctx, mock.Anything, 1).Return([]*driver.Driver{}, nil).Once()
	f.shipmentRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), shipmentPayload("obana"))
	require.NoError(t, err)

	// Act
	result, err := f.handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	f.assertExpectations(t)
	assert.Nil(t, result.DriverID)
	assert.Zero(t, result.ShippingFee)
}

func TestCreateShipmentCommandHandler_LookupFailuresStillCreate(t *testing.T) {
	// Arrange
	ctx := t.Context()
	f := newCreateShipmentFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.addressRepo.On("Add", ctx, mock.Anything).Return(nil).Twice()
	f.routeRepo.On("List", ctx).Return(nil, errors.New("canceling statement due to statement timeout")).Once()
	f.driverRepo.On("ListAvailableForUpdate", ctx, mock.Anything, 1).
		Return(nil, errors.New("canceling statement due to lock timeout")).Once()
	f.shipmentRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), shipmentPayload("obana"))
	require.NoError(t, err)

	// Act
	result, err := f.handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	f.assertExpectations(t)
	assert.Nil(t, result.DriverID)
	assert.Zero(t, result.ShippingFee)
}

func TestCreateShipmentCommandHandler_RetriesReferenceCollision(t *testing.T) {
	// Arrange
	ctx := t.Context()
	f := newCreateShipmentFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.addressRepo.On("Add", ctx, mock.Anything).Return(nil).Twice()

	var references []string
	capture := func(args mock.Arguments) {
		references = append(references, args.Get(1).(*shipment.Shipment).Reference())
	}
	f.shipmentRepo.On("Add", ctx, mock.Anything).Run(capture).Return(ports.ErrDuplicateShipmentReference).Once()
	f.shipmentRepo.On("Add", ctx, mock.Anything).Run(capture).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	p := shipmentPayload("dhl")
	p.ShippingFee = ptr(9000.0)
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), p)
	require.NoError(t, err)

	// Act
	result, err := f.handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	f.assertExpectations(t)
	require.Len(t, references, 2)
	assert.Equal(t, references[1], result.Reference)
	assert.True(t, shipment.IsReference(result.Reference))
}

func TestCreateShipmentCommandHandler_GivesUpAfterRepeatedCollisions(t *testing.T) {
	// Arrange
	ctx := t.Context()
	f := newCreateShipmentFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.addressRepo.On("Add", ctx, mock.Anything).Return(nil).Twice()
	f.shipmentRepo.On("Add", ctx, mock.Anything).Return(ports.ErrDuplicateShipmentReference).Times(5)
	f.uow.On("Rollback", ctx).Return(nil).Once()

	p := shipmentPayload("dhl")
	p.ShippingFee = ptr(9000.0)
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), p)
	require.NoError(t, err)

	// Act
	_, err = f.handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, ports.ErrDuplicateShipmentReference)
	f.assertExpectations(t)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateShipmentCommandHandler_AddressFailureAbortsBeforeShipment(t *testing.T) {
	// Arrange
	ctx := t.Context()
	f := newCreateShipmentFixture()
	storeErr := errors.New("connection reset")
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.addressRepo.On("Add", ctx, mock.Anything).Return(storeErr).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), shipmentPayload("obana"))
	require.NoError(t, err)

	// Act
	_, err = f.handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, storeErr)
	f.shipmentRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateShipmentCommandHandler_RejectsZeroCommand(t *testing.T) {
	f := newCreateShipmentFixture()

	_, err := f.handler.Handle(t.Context(), commands.CreateShipmentCommand{})

	require.ErrorIs(t, err, commands.ErrCreateShipmentCommandIsNotConstructed)
	f.factory.AssertNotCalled(t, "Create")
}
