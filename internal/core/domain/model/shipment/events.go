package shipment

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

const (
	EventTypeCreated        = "shipment.created"
	EventTypeDriverAssigned = "shipment.driver_assigned"
	EventTypeStatusChanged  = "shipment.status_changed"
)

// Contact is who should hear about a shipment.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// eventHeader carries the fields every shipment event shares.
type eventHeader struct {
	ID                kernel.UUID `json:"eventId"`
	ShipmentID        kernel.UUID `json:"shipmentId"`
	ShipmentReference string      `json:"shipmentReference"`
	OrderReference    string      `json:"orderReference,omitempty"`
	Occurred          time.Time   `json:"occurredAt"`
}

func (h eventHeader) EventID() kernel.UUID { return h.ID }

func (h eventHeader) AggregateID() kernel.UUID { return h.ShipmentID }

func (h eventHeader) OccurredAt() time.Time { return h.Occurred }

// CreatedEvent is recorded when a shipment is first built.
type CreatedEvent struct {
	eventHeader

	UserID            kernel.UUID `json:"userId"`
	VendorName        string      `json:"vendorName,omitempty"`
	CarrierType       CarrierType `json:"carrierType"`
	CarrierName       string      `json:"carrierName,omitempty"`
	PickupCity        string      `json:"pickupCity"`
	DeliveryCity      string      `json:"deliveryCity"`
	Recipient         Contact     `json:"recipient"`
	Sender            Contact     `json:"sender"`
	ProductValue      float64     `json:"productValue"`
	ShippingFee       float64     `json:"shippingFee"`
	Currency          string      `json:"currency"`
	TotalItems        int         `json:"totalItems"`
	EstimatedDelivery string      `json:"estimatedDelivery,omitempty"`
}

func (CreatedEvent) EventType() string { return EventTypeCreated }

// DriverAssignedEvent is recorded when a fleet driver is attached to a shipment.
type DriverAssignedEvent struct {
	eventHeader

	DriverID     kernel.UUID `json:"driverId"`
	DriverCode   string      `json:"driverCode"`
	Driver       Contact     `json:"driver"`
	PickupCity   string      `json:"pickupCity"`
	DeliveryCity string      `json:"deliveryCity"`
}

func (DriverAssignedEvent) EventType() string { return EventTypeDriverAssigned }

// StatusChangedEvent is recorded for every status change, cancellations included.
type StatusChangedEvent struct {
	eventHeader

	UserID            kernel.UUID `json:"userId"`
	DeliveryAddressID kernel.UUID `json:"deliveryAddressId"`
	PreviousStatus    Status      `json:"previousStatus"`
	Status            Status      `json:"status"`
	Source            Source      `json:"source"`
	Description       string      `json:"description,omitempty"`
	Location          string      `json:"location,omitempty"`
}

func (StatusChangedEvent) EventType() string { return EventTypeStatusChanged }
