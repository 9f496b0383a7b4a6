package eventhandlers_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"fulfillment/internal/core/application/eventhandlers"
	"fulfillment/internal/core/domain/model/address"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, n ports.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, change ports.OrderStatusChange) error {
	return m.Called(ctx, change).Error(0)
}

type MockAddressReader struct{ mock.Mock }

func (m *MockAddressReader) Get(ctx context.Context, id kernel.UUID) (*address.Address, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*address.Address)
	return a, args.Error(1)
}

var settings = eventhandlers.Settings{
	OpsEmail:        "ops@obana.africa",
	PickupTeamEmail: "pickup@obana.africa",
	TrackingBaseURL: "https://track.obana.africa/",
}

const reference = "OBANA-20250314-AB12CD34"

func createdMessage(carrierType string, orderReference string) ports.OutboxMessage {
	payload := fmt.Sprintf(`{
		"eventId": %q,
		"shipmentId": %q,
		"shipmentReference": %q,
		"orderReference": %q,
		"occurredAt": "2025-03-14T09:30:00Z",
		"userId": %q,
		"carrierType": %q,
		"carrierName": "Obana Logistics",
		"pickupCity": "Lagos",
		"deliveryCity": "Abuja",
		"recipient": {"name": "Ada Obi", "email": "ada@example.com", "phone": "+2348000000002"},
		"sender": {"name": "Vendor Store", "phone": "+2348000000001"},
		"productValue": 8000,
		"shippingFee": 2500,
		"currency": "NGN",
		"totalItems": 2
	}`, kernel.NewUUID(), kernel.NewUUID(), reference, orderReference, kernel.NewUUID(), carrierType)

	return ports.OutboxMessage{
		ID:        kernel.NewUUID(),
		EventType: shipment.EventTypeCreated,
		Payload:   []byte(payload),
	}
}

func statusChangedMessage(addressID kernel.UUID, orderReference string) ports.OutboxMessage {
	payload := fmt.Sprintf(`{
		"eventId": %q,
		"shipmentId": %q,
		"shipmentReference": %q,
		"orderReference": %q,
		"occurredAt": "2025-03-15T16:00:00Z",
		"userId": %q,
		"deliveryAddressId": %q,
		"previousStatus": "in_transit",
		"status": "delivered",
		"source": "driver",
		"description": "Handed to recipient"
	}`, kernel.NewUUID(), kernel.NewUUID(), reference, orderReference, kernel.NewUUID(), addressID)

	return ports.OutboxMessage{
		ID:        kernel.NewUUID(),
		EventType: shipment.EventTypeStatusChanged,
		Payload:   []byte(payload),
	}
}

func deliveryAddress(t *testing.T, email string) *address.Address {
	t.Helper()
	a, err := address.NewAddress(kernel.NewUUID(), address.TypeDelivery, address.Details{
		Name:    "Ada Obi",
		Phone:   "+2348000000002",
		Email:   email,
		Line1:   "5 Aminu Kano Crescent",
		City:    "Abuja",
		State:   "FCT",
		Country: "NG",
	})
	require.NoError(t, err)
	return a
}

func byTemplate(sent []ports.Notification, template string) []ports.Notification {
	var out []ports.Notification
	for _, n := range sent {
		if n.TemplateID == template {
			out = append(out, n)
		}
	}
	return out
}

func recordSends(notifier *MockNotifier, sent *[]ports.Notification, err error) {
	notifier.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			*sent = append(*sent, args.Get(1).(ports.Notification))
		}).
		Return(err)
}

func TestShipmentCreatedHandler_InternalShipment(t *testing.T) {
	// Arrange
	notifier := &MockNotifier{}
	var sent []ports.Notification
	recordSends(notifier, &sent, nil)

	handler := eventhandlers.NewShipmentCreatedHandler(notifier, settings, zap.NewNop())

	// Act
	err := handler.Handle(t.Context(), createdMessage("internal", "ORD-2001"))

	// Assert
	require.NoError(t, err)
	require.Len(t, sent, 4)

	ops := byTemplate(sent, eventhandlers.TemplateShipmentCreatedOps)
	require.Len(t, ops, 1)
	assert.Equal(t, "ops@obana.africa", ops[0].Recipient)
	assert.Equal(t, "New shipment "+reference, ops[0].Subject)

	customer := byTemplate(sent, eventhandlers.TemplateShipmentCreatedCustomer)
	require.Len(t, customer, 2)
	assert.Equal(t, ports.ChannelEmail, customer[0].Channel)
	assert.Equal(t, "ada@example.com", customer[0].Recipient)
	assert.Equal(t, ports.ChannelSMS, customer[1].Channel)
	assert.Equal(t, "+2348000000002", customer[1].Recipient)
	assert.Equal(t, "https://track.obana.africa/"+reference, customer[0].Data["trackingUrl"])

	pickup := byTemplate(sent, eventhandlers.TemplatePickupRequested)
	require.Len(t, pickup, 1)
	assert.Equal(t, "pickup@obana.africa", pickup[0].Recipient)
	assert.Equal(t, "Vendor Store", pickup[0].Data["senderName"])
	assert.NotContains(t, ops[0].Data, "senderName")
}

func TestShipmentCreatedHandler_ExternalShipmentSkipsPickupTeam(t *testing.T) {
	// Arrange
	notifier := &MockNotifier{}
	var sent []ports.Notification
	recordSends(notifier, &sent, nil)

	handler := eventhandlers.NewShipmentCreatedHandler(notifier, settings, zap.NewNop())

	// Act
	err := handler.Handle(t.Context(), createdMessage("external", "ORD-2001"))

	// Assert
	require.NoError(t, err)
	assert.Len(t, sent, 3)
	assert.Empty(t, byTemplate(sent, eventhandlers.TemplatePickupRequested))
}

func TestShipmentCreatedHandler_ReportsFailedSends(t *testing.T) {
	// Arrange
	notifier := &MockNotifier{}
	var sent []ports.Notification
	recordSends(notifier, &sent, errors.New("channel closed"))

	handler := eventhandlers.NewShipmentCreatedHandler(notifier, settings, zap.NewNop())

	// Act
	err := handler.Handle(t.Context(), createdMessage("internal", "ORD-2001"))

	// Assert
	require.ErrorContains(t, err, "channel closed")
	assert.Len(t, sent, 4, "a failed send does not stop the others")
}

func TestShipmentCreatedHandler_BrokenPayload(t *testing.T) {
	// Arrange
	notifier := &MockNotifier{}
	handler := eventhandlers.NewShipmentCreatedHandler(notifier, settings, zap.NewNop())

	// Act
	err := handler.Handle(t.Context(), ports.OutboxMessage{
		ID:        kernel.NewUUID(),
		EventType: shipment.EventTypeCreated,
		Payload:   []byte(`{"eventId":`),
	})

	// Assert
	require.ErrorContains(t, err, "decode shipment.created payload")
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDriverAssignedHandler(t *testing.T) {
	msg := func(driver string) ports.OutboxMessage {
		return ports.OutboxMessage{
			ID:        kernel.NewUUID(),
			EventType: shipment.EventTypeDriverAssigned,
			Payload: []byte(fmt.Sprintf(`{
				"eventId": %q,
				"shipmentId": %q,
				"shipmentReference": %q,
				"occurredAt": "2025-03-14T09:30:00Z",
				"driverId": %q,
				"driverCode": "DRV-001",
				"driver": %s,
				"pickupCity": "Lagos",
				"deliveryCity": "Abuja"
			}`, kernel.NewUUID(), kernel.NewUUID(), reference, kernel.NewUUID(), driver)),
		}
	}

	t.Run("notifies driver by email and sms", func(t *testing.T) {
		notifier := &MockNotifier{}
		var sent []ports.Notification
		recordSends(notifier, &sent, nil)
		handler := eventhandlers.NewDriverAssignedHandler(notifier, settings, zap.NewNop())

		err := handler.Handle(t.Context(), msg(`{"name":"Musa","email":"musa@obana.africa","phone":"+2348000000009"}`))

		require.NoError(t, err)
		require.Len(t, sent, 2)
		assert.Equal(t, "musa@obana.africa", sent[0].Recipient)
		assert.Equal(t, "+2348000000009", sent[1].Recipient)
		assert.Equal(t, "DRV-001", sent[0].Data["driverCode"])
	})

	t.Run("driver without contact is skipped", func(t *testing.T) {
		notifier := &MockNotifier{}
		handler := eventhandlers.NewDriverAssignedHandler(notifier, settings, zap.NewNop())

		err := handler.Handle(t.Context(), msg(`{}`))

		require.NoError(t, err)
		notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestStatusChangedHandler_NotifiesRecipient(t *testing.T) {
	// Arrange
	ctx := t.Context()
	recipient := deliveryAddress(t, "ada@example.com")

	addresses := &MockAddressReader{}
	addresses.On("Get", ctx, recipient.ID()).Return(recipient, nil)

	notifier := &MockNotifier{}
	var sent []ports.Notification
	recordSends(notifier, &sent, nil)

	handler := eventhandlers.NewStatusChangedHandler(notifier, addresses, settings, zap.NewNop())

	// Act
	err := handler.Handle(ctx, statusChangedMessage(recipient.ID(), "ORD-2001"))

	// Assert
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, "Shipment "+reference+" is delivered", sent[0].Subject)
	assert.Equal(t, "in_transit", sent[0].Data["previousStatus"])
	assert.Equal(t, "delivered", sent[0].Data["status"])
	assert.Equal(t, ports.ChannelSMS, sent[1].Channel)
	addresses.AssertExpectations(t)
}

func TestStatusChangedHandler_DeletedShipment(t *testing.T) {
	// Arrange
	ctx := t.Context()
	addressID := kernel.NewUUID()

	addresses := &MockAddressReader{}
	addresses.On("Get", ctx, addressID).Return(nil, errs.NewObjectNotFoundError("address", addressID))

	notifier := &MockNotifier{}
	handler := eventhandlers.NewStatusChangedHandler(notifier, addresses, settings, zap.NewNop())

	// Act
	err := handler.Handle(ctx, statusChangedMessage(addressID, "ORD-2001"))

	// Assert
	require.NoError(t, err)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestOrderStatusSyncHandler(t *testing.T) {
	t.Run("created publishes pending", func(t *testing.T) {
		publisher := &MockPublisher{}
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(c ports.OrderStatusChange) bool {
			return c.OrderReference == "ORD-2001" &&
				c.ShipmentReference == reference &&
				c.Status == "pending" &&
				c.OccurredAt.Equal(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC))
		})).Return(nil).Once()

		handler := eventhandlers.NewOrderStatusSyncHandler(publisher, zap.NewNop())

		require.NoError(t, handler.Handle(t.Context(), createdMessage("internal", "ORD-2001")))
		publisher.AssertExpectations(t)
	})

	t.Run("status change publishes new status", func(t *testing.T) {
		publisher := &MockPublisher{}
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(c ports.OrderStatusChange) bool {
			return c.Status == "delivered"
		})).Return(nil).Once()

		handler := eventhandlers.NewOrderStatusSyncHandler(publisher, zap.NewNop())

		require.NoError(t, handler.Handle(t.Context(), statusChangedMessage(kernel.NewUUID(), "ORD-2001")))
		publisher.AssertExpectations(t)
	})

	t.Run("no order reference is not synced", func(t *testing.T) {
		publisher := &MockPublisher{}
		handler := eventhandlers.NewOrderStatusSyncHandler(publisher, zap.NewNop())

		require.NoError(t, handler.Handle(t.Context(), createdMessage("internal", "")))
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("publish failure is returned", func(t *testing.T) {
		publisher := &MockPublisher{}
		publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
		handler := eventhandlers.NewOrderStatusSyncHandler(publisher, zap.NewNop())

		err := handler.Handle(t.Context(), createdMessage("internal", "ORD-2001"))

		require.ErrorContains(t, err, "broker down")
	})
}

func TestRegistry(t *testing.T) {
	registry := eventhandlers.Registry(&MockNotifier{}, &MockPublisher{}, &MockAddressReader{}, settings, zap.NewNop())

	assert.Len(t, registry[shipment.EventTypeCreated], 2)
	assert.Len(t, registry[shipment.EventTypeDriverAssigned], 1)
	assert.Len(t, registry[shipment.EventTypeStatusChanged], 2)
}
