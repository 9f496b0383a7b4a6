package services

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/shipment"

	"github.com/spf13/cast"
)

// ErrNoReferenceFound is returned when a carrier payload names no shipment.
var ErrNoReferenceFound = errors.New("no reference found in carrier payload")

// referenceKeys are checked in order; the first non-empty value wins.
var referenceKeys = []string{"trackingNumber", "reference", "carrierReference"}

var carrierStatuses = map[string]shipment.Status{
	"in_transit": shipment.StatusInTransit,
	"delivered":  shipment.StatusDelivered,
	"failed":     shipment.StatusFailed,
	"exception":  shipment.StatusFailed,
	"cancelled":  shipment.StatusCancelled,
}

// CarrierStatusMapper reads external carrier callbacks.
type CarrierStatusMapper struct{}

func NewCarrierStatusMapper() CarrierStatusMapper {
	return CarrierStatusMapper{}
}

// Reference extracts the carrier's tracking reference from payload.
// Numeric references are accepted and rendered as strings.
func (CarrierStatusMapper) Reference(payload map[string]any) (string, error) {
	for _, key := range referenceKeys {
		ref := strings.TrimSpace(cast.ToString(payload[key]))
		if ref != "" {
			return ref, nil
		}
	}
	return "", ErrNoReferenceFound
}

// Status maps the carrier's reported status onto the shipment vocabulary.
// Unknown or missing values are reported as in_transit.
func (CarrierStatusMapper) Status(payload map[string]any) shipment.Status {
	raw := strings.ToLower(strings.TrimSpace(cast.ToString(payload["status"])))
	if st, ok := carrierStatuses[raw]; ok {
		return st
	}
	return shipment.StatusInTransit
}
