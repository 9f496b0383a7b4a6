package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// ListShipmentsQueryHandler serves the admin shipment listing.
type ListShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListShipmentsQueryHandler(db *gorm.DB) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db}
}

// Handle returns one page of shipments matching the filters, the total number
// of matches and ledger wide statistics.
//
// Search is a case-insensitive substring match on the shipment reference, the
// order reference, the external carrier reference and the vendor name.
func (h ListShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentsQuery,
) (ListShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListShipmentsQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	filtered := db.Table("shipments")
	if query.status != "" {
		filtered = filtered.Where("status = ?", string(query.status))
	}
	if query.carrierType != "" {
		filtered = filtered.Where("carrier_type = ?", string(query.carrierType))
	}
	if query.from != nil {
		filtered = filtered.Where("created_at >= ?", *query.from)
	}
	if query.to != nil {
		filtered = filtered.Where("created_at <= ?", *query.to)
	}
	if query.search != "" {
		like := "%" + escapeLike(query.search) + "%"
		filtered = filtered.Where(
			"(shipment_reference ILIKE ? OR order_reference ILIKE ? OR external_carrier_reference ILIKE ? OR vendor_name ILIKE ?)",
			like, like, like, like,
		)
	}

	resp := ListShipmentsQueryResponse{
		Shipments: make([]ShipmentView, 0),
		Page:      query.page,
		Limit:     query.limit,
	}

	if err := filtered.Session(&gorm.Session{}).Count(&resp.Total).Error; err != nil {
		return ListShipmentsQueryResponse{}, err
	}

	err := filtered.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Offset(query.offset()).
		Limit(query.limit).
		Scan(&resp.Shipments).Error
	if err != nil {
		return ListShipmentsQueryResponse{}, err
	}

	stats, err := h.stats(db)
	if err != nil {
		return ListShipmentsQueryResponse{}, err
	}
	resp.Stats = stats

	return resp, nil
}

type groupCount struct {
	Key   string
	Count int64
}

func (h ListShipmentsQueryHandler) stats(db *gorm.DB) (ShipmentStats, error) {
	stats := ShipmentStats{
		ByStatus:  map[string]int64{},
		ByCarrier: map[string]int64{},
		Last7Days: make([]DayCount, 0, 7),
	}

	var byStatus []groupCount
	if err := db.Raw(`
		SELECT status AS key, COUNT(*) AS count
		FROM shipments
		GROUP BY status
	`).Scan(&byStatus).Error; err != nil {
		return ShipmentStats{}, err
	}
	for _, g := range byStatus {
		stats.ByStatus[g.Key] = g.Count
	}

	var byCarrier []groupCount
	if err := db.Raw(`
		SELECT carrier_type AS key, COUNT(*) AS count
		FROM shipments
		GROUP BY carrier_type
	`).Scan(&byCarrier).Error; err != nil {
		return ShipmentStats{}, err
	}
	for _, g := range byCarrier {
		stats.ByCarrier[g.Key] = g.Count
	}

	if err := db.Raw(`
		SELECT to_char(day, 'YYYY-MM-DD') AS date, COUNT(s.id) AS count
		FROM generate_series(
			(NOW() AT TIME ZONE 'UTC')::date - 6,
			(NOW() AT TIME ZONE 'UTC')::date,
			INTERVAL '1 day'
		) AS day
		LEFT JOIN shipments s
			ON (s.created_at AT TIME ZONE 'UTC')::date = day::date
		GROUP BY day
		ORDER BY day
	`).Scan(&stats.Last7Days).Error; err != nil {
		return ShipmentStats{}, err
	}

	return stats, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
