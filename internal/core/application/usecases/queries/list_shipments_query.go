package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

// ShipmentFilter holds the optional filters of the admin shipment listing.
// Zero values mean "no filter"; Page and Limit fall back to 1 and DefaultPageSize.
type ShipmentFilter struct {
	Page        int
	Limit       int
	Status      string
	CarrierType string
	From        *time.Time
	To          *time.Time
	Search      string
}

// ListShipmentsQuery pages through the ledger, newest first.
type ListShipmentsQuery struct { //nolint:recvcheck //using for validation
	page        int
	limit       int
	status      shipment.Status
	carrierType shipment.CarrierType
	from        *time.Time
	to          *time.Time
	search      string

	guard guard.ConstructorGuard
}

// NewListShipmentsQuery normalises the filter. An unknown status or carrier type,
// a page below one and an inverted date range are rejected together.
func NewListShipmentsQuery(f ShipmentFilter) (ListShipmentsQuery, error) {
	var problems []error

	q := ListShipmentsQuery{
		page:   f.Page,
		limit:  f.Limit,
		from:   f.From,
		to:     f.To,
		search: strings.TrimSpace(f.Search),
		guard:  guard.NewConstructorGuard(),
	}

	if q.page == 0 {
		q.page = 1
	}
	if q.page < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("page", f.Page, 1, "unbounded"))
	}

	if q.limit == 0 {
		q.limit = DefaultPageSize
	}
	if q.limit < 1 || q.limit > MaxPageSize {
		problems = append(problems, errs.NewValueIsOutOfRangeError("limit", f.Limit, 1, MaxPageSize))
	}

	if f.Status != "" {
		status, err := shipment.ParseStatus(f.Status)
		if err != nil {
			problems = append(problems, err)
		}
		q.status = status
	}

	if f.CarrierType != "" {
		carrierType, err := shipment.ParseCarrierType(f.CarrierType)
		if err != nil {
			problems = append(problems, err)
		}
		q.carrierType = carrierType
	}

	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"to", fmt.Errorf("%s is before from", f.To.Format(time.RFC3339))))
	}

	if err := errors.Join(problems...); err != nil {
		return ListShipmentsQuery{}, err
	}
	return q, nil
}

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

func (q ListShipmentsQuery) Page() int { return q.page }

func (q ListShipmentsQuery) Limit() int { return q.limit }

func (q ListShipmentsQuery) offset() int { return (q.page - 1) * q.limit }

// DayCount is the number of shipments created on one calendar day (UTC).
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ShipmentStats summarise the whole ledger, independent of the filters.
type ShipmentStats struct {
	ByStatus  map[string]int64 `json:"by_status"`
	ByCarrier map[string]int64 `json:"by_carrier"`
	Last7Days []DayCount       `json:"last_7_days"`
}

type ListShipmentsQueryResponse struct {
	Shipments []ShipmentView `json:"shipments"`
	Total     int64          `json:"total"`
	Page      int            `json:"page"`
	Limit     int            `json:"limit"`
	Stats     ShipmentStats  `json:"stats"`
}
