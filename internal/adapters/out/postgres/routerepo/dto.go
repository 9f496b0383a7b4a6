// Package routerepo persists the route pricing catalog.
package routerepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/jsonb"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteTemplateDTO is a row of the route_templates table. Brackets keep their list order.
type RouteTemplateDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OriginCity      string
	DestinationCity string
	TransportMode   string
	ServiceLevel    string
	WeightBrackets  jsonb.Column[[]WeightBracketDTO]
	Metadata        jsonb.Column[kernel.Metadata]
	CreatedAt       time.Time
}

func (RouteTemplateDTO) TableName() string {
	return "route_templates"
}

// WeightBracketDTO is one element of the weight_brackets document.
// Missing keys decode as zero values.
type WeightBracketDTO struct {
	Min   float64  `json:"min"`
	Max   *float64 `json:"max,omitempty"`
	Price float64  `json:"price"`
	ETA   string   `json:"eta"`
}

func fromDomain(t *route.Template) RouteTemplateDTO {
	brackets := make([]WeightBracketDTO, 0, len(t.Brackets()))
	for _, b := range t.Brackets() {
		brackets = append(brackets, WeightBracketDTO{Min: b.Min, Max: b.Max, Price: b.Price, ETA: b.ETA})
	}

	return RouteTemplateDTO{
		ID:              t.ID().Bytes(),
		OriginCity:      t.OriginCity(),
		DestinationCity: t.DestinationCity(),
		TransportMode:   string(t.TransportMode()),
		ServiceLevel:    t.ServiceLevel(),
		WeightBrackets:  jsonb.Wrap(brackets),
		Metadata:        jsonb.Wrap(t.Metadata()),
		CreatedAt:       t.CreatedAt(),
	}
}

// toDomain rebuilds a template from its row.
func toDomain(dto RouteTemplateDTO) (*route.Template, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	brackets := make([]route.WeightBracket, 0, len(dto.WeightBrackets.V))
	for _, b := range dto.WeightBrackets.V {
		brackets = append(brackets, route.WeightBracket{Min: b.Min, Max: b.Max, Price: b.Price, ETA: b.ETA})
	}

	return route.RestoreTemplate(id, route.Definition{
		OriginCity:      dto.OriginCity,
		DestinationCity: dto.DestinationCity,
		TransportMode:   kernel.TransportMode(dto.TransportMode),
		ServiceLevel:    dto.ServiceLevel,
		Brackets:        brackets,
		Metadata:        dto.Metadata.V,
	}, dto.CreatedAt)
}
