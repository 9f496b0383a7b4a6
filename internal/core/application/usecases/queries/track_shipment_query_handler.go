package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackShipmentQueryHandler reads a shipment and its history straight from the database.
type TrackShipmentQueryHandler struct {
	db *gorm.DB
}

func NewTrackShipmentQueryHandler(db *gorm.DB) TrackShipmentQueryHandler {
	return TrackShipmentQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when the reference is unknown or the
// shipment is not visible to the caller. Items are ordered by item id and the
// history oldest first.
func (h TrackShipmentQueryHandler) Handle(
	ctx context.Context,
	query TrackShipmentQuery,
) (TrackShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var found []ShipmentView
	scope, args := visibilityScope(query.Principal())
	err := db.Raw(`
		SELECT s.*
		FROM shipments s
		WHERE s.shipment_reference = ? AND `+scope+`
		LIMIT 1
	`, append([]any{query.Reference()}, args...)...).Scan(&found).Error
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}
	if len(found) == 0 {
		return TrackShipmentQueryResponse{}, errs.NewObjectNotFoundError("shipment", query.Reference())
	}

	resp := TrackShipmentQueryResponse{
		Shipment:       found[0],
		Items:          make([]ItemView, 0),
		TrackingEvents: make([]TrackingEventView, 0),
	}
	shipmentID := resp.Shipment.ID

	err = db.Raw(`
		SELECT id, item_id, name, description, quantity, unit_price, total_price, weight, dimensions, currency, metadata
		FROM shipment_items
		WHERE shipment_id = ?
		ORDER BY item_id
	`, shipmentID).Scan(&resp.Items).Error
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	var addresses []AddressView
	err = db.Raw(`
		SELECT id, type, name, phone, email, line1, line2, city, state, country, zip, is_residential, instructions, metadata
		FROM addresses
		WHERE id IN (?, ?)
	`, resp.Shipment.PickupAddressID, resp.Shipment.DeliveryAddressID).Scan(&addresses).Error
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}
	for _, a := range addresses {
		switch a.ID {
		case resp.Shipment.PickupAddressID:
			resp.PickupAddress = a
		case resp.Shipment.DeliveryAddressID:
			resp.DeliveryAddress = a
		}
	}

	err = db.Raw(`
		SELECT id, status, location, description, notes, source, performed_by, metadata, created_at
		FROM tracking_events
		WHERE shipment_id = ?
		ORDER BY created_at, id
	`, shipmentID).Scan(&resp.TrackingEvents).Error
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	return resp, nil
}

// visibilityScope returns the WHERE fragment restricting shipments (aliased s)
// to what the principal may see.
func visibilityScope(p kernel.Principal) (string, []any) {
	userID := p.UserID.Bytes()

	switch p.Role {
	case kernel.RoleAdmin:
		return "TRUE", nil
	case kernel.RoleDriver:
		return "(s.user_id = ? OR s.driver_id IN (SELECT d.id FROM drivers d WHERE d.user_id = ?))",
			[]any{userID, userID}
	case kernel.RoleCustomer:
		return "s.user_id = ?", []any{userID}
	}
	return "FALSE", nil
}
