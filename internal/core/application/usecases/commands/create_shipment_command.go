package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/address"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand is a validated request to open a shipment.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(principal.UserID, payload)
//	var verr *ValidationError
//	if errors.As(err, &verr) {
//	    // report verr.Errors to the caller
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	draft      shipment.Draft
	pickup     address.Details
	delivery   address.Details
	needsQuote bool

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand runs the payload validator and converts the payload
// into domain drafts. A failed validation is returned as *ValidationError.
func NewCreateShipmentCommand(userID kernel.UUID, payload ShipmentPayload) (CreateShipmentCommand, error) {
	if err := userID.Validate(); err != nil {
		return CreateShipmentCommand{}, err
	}

	result := ValidateShipmentPayload(payload)
	if !result.Valid {
		return CreateShipmentCommand{}, &ValidationError{Errors: result.Errors}
	}

	// the validator has already checked these
	mode, _ := kernel.ParseTransportMode(payload.TransportMode)
	level, _ := kernel.ParseServiceLevel(payload.ServiceLevel)

	dispatcherSlug := ""
	if payload.Dispatcher != nil {
		dispatcherSlug = payload.Dispatcher.CarrierSlug
	}

	items := make([]shipment.ItemDraft, 0, len(payload.Items))
	for _, it := range payload.Items {
		items = append(items, itemDraft(it))
	}

	var fee float64
	if payload.ShippingFee != nil {
		fee = *payload.ShippingFee
	}

	return CreateShipmentCommand{
		shipmentID: kernel.NewUUID(),
		draft: shipment.Draft{
			OrderReference:           payload.OrderReference,
			UserID:                   userID,
			VendorName:               payload.VendorName,
			CarrierName:              payload.CarrierName,
			CarrierSlug:              payload.CarrierSlug,
			DispatcherSlug:           dispatcherSlug,
			ExternalCarrierReference: payload.ExternalCarrierReference,
			ExternalRateID:           payload.ExternalRateID,
			TransportMode:            mode,
			ServiceLevel:             level,
			ShippingFee:              fee,
			Currency:                 payload.Currency,
			IsInsured:                payload.IsInsured,
			InsuranceAmount:          payload.InsuranceAmount,
			EstimatedDelivery:        payload.EstimatedDelivery,
			Notes:                    payload.Notes,
			Metadata:                 kernel.SanitizeMetadata(payload.Metadata),
			Items:                    items,
		},
		pickup:     addressDetails(payload.PickupAddress),
		delivery:   addressDetails(payload.DeliveryAddress),
		needsQuote: payload.ShippingFee == nil,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CreateShipmentCommand) UserID() kernel.UUID {
	return c.draft.UserID
}

// Draft returns the shipment draft. Currency may be empty, in which case the
// handler applies its default.
func (c CreateShipmentCommand) Draft() shipment.Draft {
	return c.draft
}

func (c CreateShipmentCommand) PickupAddress() address.Details {
	return c.pickup
}

func (c CreateShipmentCommand) DeliveryAddress() address.Details {
	return c.delivery
}

// NeedsQuote reports whether the caller left the shipping fee to the route catalog.
func (c CreateShipmentCommand) NeedsQuote() bool {
	return c.needsQuote
}

func addressDetails(a *AddressPayload) address.Details {
	return address.Details{
		Name:          a.Name,
		Phone:         a.Phone,
		Email:         a.Email,
		Line1:         a.Line1,
		Line2:         a.Line2,
		City:          a.City,
		State:         a.State,
		Country:       a.Country,
		Zip:           a.Zip,
		IsResidential: a.IsResidential,
		Instructions:  a.Instructions,
		Metadata:      kernel.SanitizeMetadata(a.Metadata),
	}
}

func itemDraft(it ItemPayload) shipment.ItemDraft {
	d := shipment.ItemDraft{
		Name:        it.Name,
		Description: it.Description,
		UnitPrice:   it.UnitPrice,
		Price:       it.Price,
		Value:       it.Value,
		TotalPrice:  it.TotalPrice,
		Dimensions:  it.Dimensions,
		Currency:    strings.TrimSpace(it.Currency),
		Metadata:    kernel.SanitizeMetadata(it.Metadata),
	}
	if it.Quantity != nil {
		d.Quantity = *it.Quantity
	}
	if it.Weight != nil {
		d.Weight = *it.Weight
	}
	return d
}
