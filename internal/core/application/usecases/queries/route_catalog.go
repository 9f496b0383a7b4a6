package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteCatalog is the read side of the route template store.
// ports.RouteRepository satisfies it.
type RouteCatalog interface {
	Get(ctx context.Context, id kernel.UUID) (*route.Template, error)
	List(ctx context.Context) ([]*route.Template, error)
}

type WeightBracketView struct {
	Min   float64  `json:"min"`
	Max   *float64 `json:"max,omitempty"`
	Price float64  `json:"price"`
	ETA   string   `json:"eta"`
}

type RouteTemplateView struct {
	ID              uuid.UUID           `json:"id"`
	OriginCity      string              `json:"originCity"`
	DestinationCity string              `json:"destinationCity"`
	TransportMode   string              `json:"transportMode"`
	ServiceLevel    string              `json:"serviceLevel"`
	WeightBrackets  []WeightBracketView `json:"weightBrackets"`
	Metadata        kernel.Metadata     `json:"metadata"`
	CreatedAt       time.Time           `json:"createdAt"`
}

func newWeightBracketView(b route.WeightBracket) WeightBracketView {
	return WeightBracketView{Min: b.Min, Max: b.Max, Price: b.Price, ETA: b.ETA}
}

func newRouteTemplateView(t *route.Template) RouteTemplateView {
	brackets := t.Brackets()
	views := make([]WeightBracketView, 0, len(brackets))
	for _, b := range brackets {
		views = append(views, newWeightBracketView(b))
	}

	return RouteTemplateView{
		ID:              t.ID().Bytes(),
		OriginCity:      t.OriginCity(),
		DestinationCity: t.DestinationCity(),
		TransportMode:   t.TransportMode().String(),
		ServiceLevel:    t.ServiceLevel(),
		WeightBrackets:  views,
		Metadata:        t.Metadata(),
		CreatedAt:       t.CreatedAt(),
	}
}
