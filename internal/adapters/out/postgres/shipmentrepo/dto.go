// Package shipmentrepo persists shipment aggregates: the shipment row, its
// items and its append-only tracking history.
package shipmentrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/jsonb"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO is a row of the shipments table.
type ShipmentDTO struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentReference        string    `gorm:"uniqueIndex:idx_shipments_reference"`
	OrderReference           string
	UserID                   uuid.UUID `gorm:"type:uuid"`
	VendorName               string
	CarrierType              string
	CarrierName              string
	CarrierSlug              string
	ExternalCarrierReference string
	ExternalRateID           string
	TransportMode            string
	ServiceLevel             string
	DeliveryAddressID        uuid.UUID `gorm:"type:uuid"`
	PickupAddressID          uuid.UUID `gorm:"type:uuid"`
	ProductValue             float64
	ShippingFee              float64
	Currency                 string
	TotalWeight              float64
	TotalItems               int
	Status                   string
	EstimatedDelivery        string
	ActualDeliveryAt         *time.Time
	IsInsured                bool
	InsuranceAmount          float64
	DriverID                 *uuid.UUID `gorm:"type:uuid"`
	Metadata                 jsonb.Column[kernel.Metadata]
	Notes                    string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ItemDTO is a row of the shipment_items table.
type ItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid"`
	ItemID      string
	Name        string
	Description string
	Quantity    int
	UnitPrice   float64
	TotalPrice  float64
	Weight      float64
	Dimensions  jsonb.Column[*shipment.Dimensions]
	Currency    string
	Metadata    jsonb.Column[kernel.Metadata]
}

func (ItemDTO) TableName() string {
	return "shipment_items"
}

// TrackingEventDTO is a row of the tracking_events table. Rows are only ever inserted.
type TrackingEventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid"`
	Status      string
	Location    string
	Description string
	Notes       string
	Source      string
	PerformedBy string
	Metadata    jsonb.Column[kernel.Metadata]
	CreatedAt   time.Time
}

func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	st := s.Snapshot()

	var driverID *uuid.UUID
	if st.DriverID != nil {
		raw := st.DriverID.Bytes()
		driverID = &raw
	}

	return ShipmentDTO{
		ID:                       st.ID.Bytes(),
		ShipmentReference:        st.Reference,
		OrderReference:           st.OrderReference,
		UserID:                   st.UserID.Bytes(),
		VendorName:               st.VendorName,
		CarrierType:              string(st.CarrierType),
		CarrierName:              st.CarrierName,
		CarrierSlug:              st.CarrierSlug,
		ExternalCarrierReference: st.ExternalCarrierReference,
		ExternalRateID:           st.ExternalRateID,
		TransportMode:            string(st.TransportMode),
		ServiceLevel:             string(st.ServiceLevel),
		DeliveryAddressID:        st.DeliveryAddressID.Bytes(),
		PickupAddressID:          st.PickupAddressID.Bytes(),
		ProductValue:             st.ProductValue,
		ShippingFee:              st.ShippingFee,
		Currency:                 st.Currency,
		TotalWeight:              st.TotalWeight,
		TotalItems:               st.TotalItems,
		Status:                   string(st.Status),
		EstimatedDelivery:        st.EstimatedDelivery,
		ActualDeliveryAt:         st.ActualDeliveryAt,
		IsInsured:                st.IsInsured,
		InsuranceAmount:          st.InsuranceAmount,
		DriverID:                 driverID,
		Metadata:                 jsonb.Wrap(st.Metadata),
		Notes:                    st.Notes,
		CreatedAt:                st.CreatedAt,
		UpdatedAt:                st.UpdatedAt,
	}
}

func itemsFromDomain(items []*shipment.Item) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, ItemDTO{
			ID:          it.ID().Bytes(),
			ShipmentID:  it.ShipmentID().Bytes(),
			ItemID:      it.ItemID(),
			Name:        it.Name(),
			Description: it.Description(),
			Quantity:    it.Quantity(),
			UnitPrice:   it.UnitPrice(),
			TotalPrice:  it.TotalPrice(),
			Weight:      it.Weight(),
			Dimensions:  jsonb.Wrap(it.Dimensions()),
			Currency:    it.Currency(),
			Metadata:    jsonb.Wrap(it.Metadata()),
		})
	}
	return dtos
}

func eventsFromDomain(events []*shipment.TrackingEvent) []TrackingEventDTO {
	dtos := make([]TrackingEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, TrackingEventDTO{
			ID:          e.ID().Bytes(),
			ShipmentID:  e.ShipmentID().Bytes(),
			Status:      e.Status().String(),
			Location:    e.Location(),
			Description: e.Description(),
			Notes:       e.Notes(),
			Source:      string(e.Source()),
			PerformedBy: e.PerformedBy(),
			Metadata:    jsonb.Wrap(e.Metadata()),
			CreatedAt:   e.CreatedAt(),
		})
	}
	return dtos
}

func toDomain(dto ShipmentDTO, itemDTOs []ItemDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryAddressID[:])
	if err != nil {
		return nil, err
	}
	pickupID, err := kernel.UUIDFromBytes(dto.PickupAddressID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	items := make([]*shipment.Item, 0, len(itemDTOs))
	for _, it := range itemDTOs {
		itemID, itemErr := kernel.UUIDFromBytes(it.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, shipment.RestoreItem(
			itemID, id,
			it.ItemID, it.Name, it.Description,
			it.Quantity,
			it.UnitPrice, it.TotalPrice, it.Weight,
			it.Dimensions.V,
			it.Currency,
			it.Metadata.V,
		))
	}

	return shipment.RestoreShipment(shipment.State{
		ID:                       id,
		Reference:                dto.ShipmentReference,
		OrderReference:           dto.OrderReference,
		UserID:                   userID,
		VendorName:               dto.VendorName,
		CarrierType:              shipment.CarrierType(dto.CarrierType),
		CarrierName:              dto.CarrierName,
		CarrierSlug:              dto.CarrierSlug,
		ExternalCarrierReference: dto.ExternalCarrierReference,
		ExternalRateID:           dto.ExternalRateID,
		TransportMode:            kernel.TransportMode(dto.TransportMode),
		ServiceLevel:             kernel.ServiceLevel(dto.ServiceLevel),
		DeliveryAddressID:        deliveryID,
		PickupAddressID:          pickupID,
		ProductValue:             dto.ProductValue,
		ShippingFee:              dto.ShippingFee,
		Currency:                 dto.Currency,
		TotalWeight:              dto.TotalWeight,
		TotalItems:               dto.TotalItems,
		Status:                   shipment.Status(dto.Status),
		EstimatedDelivery:        dto.EstimatedDelivery,
		ActualDeliveryAt:         dto.ActualDeliveryAt,
		IsInsured:                dto.IsInsured,
		InsuranceAmount:          dto.InsuranceAmount,
		DriverID:                 driverID,
		Metadata:                 dto.Metadata.V,
		Notes:                    dto.Notes,
		CreatedAt:                dto.CreatedAt,
		UpdatedAt:                dto.UpdatedAt,
		Items:                    items,
	})
}
