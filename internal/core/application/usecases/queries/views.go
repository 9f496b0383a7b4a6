package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentView is the read model of a shipments row.
type ShipmentView struct {
	ID                       uuid.UUID       `json:"id"`
	ShipmentReference        string          `json:"shipmentReference"`
	OrderReference           string          `json:"orderReference,omitempty"`
	UserID                   uuid.UUID       `json:"userId"`
	VendorName               string          `json:"vendorName,omitempty"`
	CarrierType              string          `json:"carrierType"`
	CarrierName              string          `json:"carrierName,omitempty"`
	CarrierSlug              string          `json:"carrierSlug,omitempty"`
	ExternalCarrierReference string          `json:"externalCarrierReference,omitempty"`
	ExternalRateID           string          `json:"externalRateId,omitempty"`
	TransportMode            string          `json:"transportMode"`
	ServiceLevel             string          `json:"serviceLevel"`
	DeliveryAddressID        uuid.UUID       `json:"deliveryAddressId"`
	PickupAddressID          uuid.UUID       `json:"pickupAddressId"`
	ProductValue             float64         `json:"productValue"`
	ShippingFee              float64         `json:"shippingFee"`
	Currency                 string          `json:"currency"`
	TotalWeight              float64         `json:"totalWeight"`
	TotalItems               int             `json:"totalItems"`
	Status                   string          `json:"status"`
	EstimatedDelivery        string          `json:"estimatedDelivery,omitempty"`
	ActualDeliveryAt         *time.Time      `json:"actualDeliveryAt,omitempty"`
	IsInsured                bool            `json:"isInsured"`
	InsuranceAmount          float64         `json:"insuranceAmount"`
	DriverID                 *uuid.UUID      `json:"driverId,omitempty"`
	Metadata                 kernel.Metadata `json:"metadata"                  gorm:"serializer:json"`
	Notes                    string          `json:"notes,omitempty"`
	CreatedAt                time.Time       `json:"createdAt"`
	UpdatedAt                time.Time       `json:"updatedAt"`
}

// ItemView is the read model of a shipment_items row.
type ItemView struct {
	ID          uuid.UUID            `json:"id"`
	ItemID      string               `json:"itemId"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Quantity    int                  `json:"quantity"`
	UnitPrice   float64              `json:"unitPrice"`
	TotalPrice  float64              `json:"totalPrice"`
	Weight      float64              `json:"weight"`
	Dimensions  *shipment.Dimensions `json:"dimensions,omitempty" gorm:"serializer:json"`
	Currency    string               `json:"currency"`
	Metadata    kernel.Metadata      `json:"metadata"             gorm:"serializer:json"`
}

// AddressView is the read model of an addresses row.
type AddressView struct {
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	Name          string          `json:"name,omitempty"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email,omitempty"`
	Line1         string          `json:"line1"`
	Line2         string          `json:"line2,omitempty"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	Country       string          `json:"country"`
	Zip           string          `json:"zip,omitempty"`
	IsResidential bool            `json:"isResidential"`
	Instructions  string          `json:"instructions,omitempty"`
	Metadata      kernel.Metadata `json:"metadata"      gorm:"serializer:json"`
}

// TrackingEventView is the read model of a tracking_events row.
type TrackingEventView struct {
	ID          uuid.UUID       `json:"id"`
	Status      string          `json:"status"`
	Location    string          `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Source      string          `json:"source"`
	PerformedBy string          `json:"performedBy,omitempty"`
	Metadata    kernel.Metadata `json:"metadata"    gorm:"serializer:json"`
	CreatedAt   time.Time       `json:"createdAt"`
}
