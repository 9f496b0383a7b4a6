package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReconcileCarrierUpdateCommandHandler_ExceptionBecomesFailed(t *testing.T) {
	// Arrange
	ctx := t.Context()
	s := storedShipment(t, shipment.StatusInTransit, shipment.CarrierExternal, nil)

	uow := txUoW(ctx, true)
	factory := new(MockShipmentUoWFactory)
	repo := new(MockShipmentRepository)
	factory.On("Create").Return(uow).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	repo.On("GetByExternalReference", ctx, "GIG-778812").Return(s, nil).Once()
	repo.On("Update", ctx, s).Return(nil).Once()

	payload := map[string]any{
		"trackingNumber": "GIG-778812",
		"status":         "EXCEPTION",
		"location":       "Kaduna hub",
	}
	cmd, err := commands.NewReconcileCarrierUpdateCommand("GIG", payload)
	require.NoError(t, err)

	handler := commands.NewReconcileCarrierUpdateCommandHandler(factory, logger())

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)

	assert.Equal(t, shipment.StatusInTransit, result.PreviousStatus)
	assert.Equal(t, shipment.StatusFailed, result.Status)

	events := s.PendingTrackingEvents()
	require.Len(t, events, 1)
	event := events[0]
	assert.Equal(t, shipment.TrackingFailed, event.Status())
	assert.Equal(t, shipment.SourceCarrierAPI, event.Source())
	assert.Equal(t, "Status update from gig", event.Description())
	assert.Equal(t, "Kaduna hub", event.Location())
	carrierStatus, _ := event.Metadata().String("carrierStatus")
	assert.Equal(t, "EXCEPTION", carrierStatus)

	lastWebhook, ok := s.Metadata().Map("last_webhook")
	require.True(t, ok)
	ref, _ := lastWebhook.String("trackingNumber")
	assert.Equal(t, "GIG-778812", ref)
}

func TestReconcileCarrierUpdateCommandHandler_CarrierMismatchIsLogged(t *testing.T) {
	tests := []struct {
		name     string
		carrier  string
		warnings int
	}{
		{name: "booked carrier", carrier: "gig", warnings: 0},
		{name: "other carrier", carrier: "dhl", warnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctx := t.Context()
			s := storedShipment(t, shipment.StatusInTransit, shipment.CarrierExternal, nil)

			uow := txUoW(ctx, true)
			factory := new(MockShipmentUoWFactory)
			repo := new(MockShipmentRepository)
			factory.On("Create").Return(uow).Once()
			uow.On("ShipmentRepository").Return(repo).Once()
			repo.On("GetByExternalReference", ctx, "GIG-778812").Return(s, nil).Once()
			repo.On("Update", ctx, s).Return(nil).Once()

			cmd, err := commands.NewReconcileCarrierUpdateCommand(tt.carrier, map[string]any{
				"trackingNumber": "GIG-778812",
				"status":         "delivered",
			})
			require.NoError(t, err)

			core, logs := observer.New(zap.WarnLevel)
			handler := commands.NewReconcileCarrierUpdateCommandHandler(factory, zap.New(core))

			// Act
			result, err := handler.Handle(ctx, cmd)

			// Assert
			require.NoError(t, err)
			repo.AssertExpectations(t)
			assert.Equal(t, shipment.StatusDelivered, result.Status)

			warnings := logs.FilterMessage("carrier update for a shipment booked with another carrier")
			assert.Equal(t, tt.warnings, warnings.Len())
		})
	}
}

func TestReconcileCarrierUpdateCommandHandler_UnknownStatusMeansInTransit(t *testing.T) {
	ctx := t.Context()
	s := storedShipment(t, shipment.StatusPending, shipment.CarrierExternal, nil)

	uow := txUoW(ctx, true)
	factory := new(MockShipmentUoWFactory)
	repo := new(MockShipmentRepository)
	factory.On("Create").Return(uow).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	repo.On("GetByExternalReference", ctx, "778812").Return(s, nil).Once()
	repo.On("Update", ctx, s).Return(nil).Once()

	cmd, err := commands.NewReconcileCarrierUpdateCommand("dhl", map[string]any{
		"reference": 778812,
		"status":    "out_for_delivery",
	})
	require.NoError(t, err)

	handler := commands.NewReconcileCarrierUpdateCommandHandler(factory, logger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.StatusInTransit, result.Status)
}

func TestReconcileCarrierUpdateCommandHandler_MissingReference(t *testing.T) {
	factory := new(MockShipmentUoWFactory)

	cmd, err := commands.NewReconcileCarrierUpdateCommand("gig", map[string]any{"status": "delivered"})
	require.NoError(t, err)

	handler := commands.NewReconcileCarrierUpdateCommandHandler(factory, logger())
	_, err = handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, services.ErrNoReferenceFound)
	factory.AssertNotCalled(t, "Create")
}

func TestReconcileCarrierUpdateCommandHandler_UnknownShipment(t *testing.T) {
	ctx := t.Context()

	uow := txUoW(ctx, false)
	factory := new(MockShipmentUoWFactory)
	repo := new(MockShipmentRepository)
	factory.On("Create").Return(uow).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	repo.On("GetByExternalReference", ctx, "NOPE-1").
		Return(nil, errs.NewObjectNotFoundError("shipment", "NOPE-1")).Once()

	cmd, err := commands.NewReconcileCarrierUpdateCommand("gig", map[string]any{"trackingNumber": "NOPE-1"})
	require.NoError(t, err)

	handler := commands.NewReconcileCarrierUpdateCommandHandler(factory, logger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestReconcileCarrierUpdateCommandHandler_TerminalShipmentRejectsUpdate(t *testing.T) {
	ctx := t.Context()
	s := storedShipment(t, shipment.StatusDelivered, shipment.CarrierExternal, nil)

	uow := txUoW(ctx, false)
	factory := new(MockShipmentUoWFactory)
	repo := new(MockShipmentRepository)
	factory.On("Create").Return(uow).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	repo.On("GetByExternalReference", ctx, "GIG-778812").Return(s, nil).Once()

	cmd, err := commands.NewReconcileCarrierUpdateCommand("gig", map[string]any{
		"carrierReference": "GIG-778812",
		"status":           "in_transit",
	})
	require.NoError(t, err)

	handler := commands.NewReconcileCarrierUpdateCommandHandler(factory, logger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, shipment.ErrInvalidTransition)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewReconcileCarrierUpdateCommand_RequiresCarrier(t *testing.T) {
	_, err := commands.NewReconcileCarrierUpdateCommand("  ", map[string]any{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
