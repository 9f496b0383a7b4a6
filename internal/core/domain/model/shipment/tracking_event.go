package shipment

import (
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Source names who produced a tracking event.
type Source string

const (
	SourceSystem     Source = "system"
	SourceDriver     Source = "driver"
	SourceAdmin      Source = "admin"
	SourceCarrierAPI Source = "carrier_api"
	SourceCustomer   Source = "customer"
)

func ParseSource(s string) (Source, error) {
	src := Source(strings.ToLower(strings.TrimSpace(s)))
	switch src {
	case SourceSystem, SourceDriver, SourceAdmin, SourceCarrierAPI, SourceCustomer:
		return src, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("source", fmt.Errorf("%q is not a tracking source", s))
}

// SourceForRole is the default source of a change made by a caller with role.
func SourceForRole(role kernel.Role) Source {
	switch role {
	case kernel.RoleAdmin:
		return SourceAdmin
	case kernel.RoleDriver:
		return SourceDriver
	case kernel.RoleCustomer:
		return SourceCustomer
	}
	return SourceSystem
}

// TrackingEvent is one immutable entry of a shipment's history.
type TrackingEvent struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	status      TrackingStatus
	location    string
	description string
	notes       string
	source      Source
	performedBy string
	metadata    kernel.Metadata
	createdAt   time.Time
}

func (e *TrackingEvent) ID() kernel.UUID { return e.id }

func (e *TrackingEvent) ShipmentID() kernel.UUID { return e.shipmentID }

func (e *TrackingEvent) Status() TrackingStatus { return e.status }

func (e *TrackingEvent) Location() string { return e.location }

func (e *TrackingEvent) Description() string { return e.description }

func (e *TrackingEvent) Notes() string { return e.notes }

func (e *TrackingEvent) Source() Source { return e.source }

func (e *TrackingEvent) PerformedBy() string { return e.performedBy }

func (e *TrackingEvent) Metadata() kernel.Metadata { return e.metadata.Clone() }

func (e *TrackingEvent) CreatedAt() time.Time { return e.createdAt }
