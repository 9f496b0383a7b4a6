package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrTrackShipmentQueryIsNotConstructed = errors.New(
	"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
)

// TrackShipmentQuery loads one shipment by its reference together with its
// items, both addresses and the tracking history.
//
// Visibility depends on the caller: admins see every shipment, drivers see
// shipments assigned to them or created by them, customers see the shipments
// they created. A shipment outside the caller's scope is reported as not found.
//
// Example:
//
//	query, err := NewTrackShipmentQuery(principal, "OBANA-20250314-AB12CD34")
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
type TrackShipmentQuery struct { //nolint:recvcheck //using for validation
	principal kernel.Principal
	reference string

	guard guard.ConstructorGuard
}

func NewTrackShipmentQuery(principal kernel.Principal, reference string) (TrackShipmentQuery, error) {
	if err := principal.UserID.Validate(); err != nil {
		return TrackShipmentQuery{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}

	reference = strings.TrimSpace(reference)
	if reference == "" {
		return TrackShipmentQuery{}, errs.NewValueIsRequiredError("reference")
	}

	return TrackShipmentQuery{
		principal: principal,
		reference: strings.ToUpper(reference),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

func (q TrackShipmentQuery) Principal() kernel.Principal {
	return q.principal
}

func (q TrackShipmentQuery) Reference() string {
	return q.reference
}

// TrackShipmentQueryResponse is the full picture of one shipment.
type TrackShipmentQueryResponse struct {
	Shipment        ShipmentView        `json:"shipment"`
	Items           []ItemView          `json:"items"`
	PickupAddress   AddressView         `json:"pickupAddress"`
	DeliveryAddress AddressView         `json:"deliveryAddress"`
	TrackingEvents  []TrackingEventView `json:"trackingEvents"`
}
