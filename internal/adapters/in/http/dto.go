package http

import (
	"strings"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/google/uuid"
)

type Carrier struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// CreatedShipment is returned by POST /shipments.
type CreatedShipment struct {
	ShipmentID        uuid.UUID  `json:"shipmentId"`
	ShipmentReference string     `json:"shipmentReference"`
	TrackingURL       string     `json:"trackingUrl"`
	Carrier           Carrier    `json:"carrier"`
	Status            string     `json:"status"`
	ShippingFee       float64    `json:"shippingFee"`
	EstimatedDelivery string     `json:"estimatedDelivery,omitempty"`
	ExternalReference string     `json:"externalReference,omitempty"`
	DriverID          *uuid.UUID `json:"driverId,omitempty"`
}

// StatusChange is returned by every endpoint that moves a shipment.
type StatusChange struct {
	ShipmentID        uuid.UUID  `json:"shipmentId"`
	ShipmentReference string     `json:"shipmentReference"`
	PreviousStatus    string     `json:"previousStatus"`
	Status            string     `json:"status"`
	ActualDeliveryAt  *time.Time `json:"actualDeliveryAt,omitempty"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type MatchRouteRequest struct {
	OriginCity      string  `json:"originCity"`
	DestinationCity string  `json:"destinationCity"`
	TransportMode   string  `json:"transportMode"`
	ServiceLevel    string  `json:"serviceLevel"`
	Weight          float64 `json:"weight"`
}

type DriverStatusRequest struct {
	Status string `json:"status"`
}

type Created struct {
	ID uuid.UUID `json:"id"`
}

// ListShipmentsParams are the query parameters of GET /shipments.
type ListShipmentsParams struct {
	Page        *int       `form:"page"`
	Limit       *int       `form:"limit"`
	Status      *string    `form:"status"`
	CarrierType *string    `form:"carrierType"`
	From        *time.Time `form:"from"`
	To          *time.Time `form:"to"`
	Search      *string    `form:"search"`
}

func (s *Server) createdShipment(r commands.CreateShipmentResult) CreatedShipment {
	out := CreatedShipment{
		ShipmentID:        r.ShipmentID.Bytes(),
		ShipmentReference: r.Reference,
		TrackingURL:       strings.TrimRight(s.trackingBaseURL, "/") + "/" + r.Reference,
		Carrier:           Carrier{Type: string(r.CarrierType), Name: r.CarrierName},
		Status:            string(r.Status),
		ShippingFee:       r.ShippingFee,
		EstimatedDelivery: r.EstimatedDelivery,
		ExternalReference: r.ExternalReference,
	}
	if r.DriverID != nil {
		id := r.DriverID.Bytes()
		out.DriverID = &id
	}
	return out
}

func statusChange(r commands.StatusChangeResult) StatusChange {
	return StatusChange{
		ShipmentID:        r.ShipmentID.Bytes(),
		ShipmentReference: r.Reference,
		PreviousStatus:    string(r.PreviousStatus),
		Status:            string(r.Status),
		ActualDeliveryAt:  r.ActualDeliveryAt,
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
