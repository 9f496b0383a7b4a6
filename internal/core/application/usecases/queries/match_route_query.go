package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/guard"
)

var ErrMatchRouteQueryIsNotConstructed = errors.New(
	"MatchRouteQuery must be created via NewMatchRouteQuery constructor",
)

// MatchRouteQuery prices a parcel on a lane before a shipment is created.
//
// Example:
//
//	query, err := NewMatchRouteQuery(services.RouteQuery{
//	    OriginCity:      "Lagos",
//	    DestinationCity: "Abuja",
//	    TransportMode:   "road",
//	    ServiceLevel:    "standard",
//	    Weight:          0.5,
//	})
//	match, err := handler.Handle(ctx, query)
//	if errors.Is(err, services.ErrNoRouteAvailable) {
//	    // 404
//	}
type MatchRouteQuery struct { //nolint:recvcheck //using for validation
	route services.RouteQuery

	guard guard.ConstructorGuard
}

func NewMatchRouteQuery(q services.RouteQuery) (MatchRouteQuery, error) {
	if err := q.Validate(); err != nil {
		return MatchRouteQuery{}, err
	}
	return MatchRouteQuery{route: q, guard: guard.NewConstructorGuard()}, nil
}

func (q MatchRouteQuery) Validate() error {
	return q.guard.Validate(ErrMatchRouteQueryIsNotConstructed)
}

type MatchRouteQueryResponse struct {
	Template RouteTemplateView `json:"template"`
	Bracket  WeightBracketView `json:"bracket"`
}

type MatchRouteQueryHandler struct {
	catalog RouteCatalog
	matcher services.RouteMatcher
}

func NewMatchRouteQueryHandler(catalog RouteCatalog) MatchRouteQueryHandler {
	return MatchRouteQueryHandler{catalog: catalog, matcher: services.NewRouteMatcher()}
}

// Handle returns services.ErrNoRouteAvailable when nothing covers the request.
func (h MatchRouteQueryHandler) Handle(ctx context.Context, query MatchRouteQuery) (MatchRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return MatchRouteQueryResponse{}, err
	}

	templates, err := h.catalog.List(ctx)
	if err != nil {
		return MatchRouteQueryResponse{}, err
	}

	match, err := h.matcher.Match(query.route, templates)
	if err != nil {
		return MatchRouteQueryResponse{}, err
	}

	return MatchRouteQueryResponse{
		Template: newRouteTemplateView(match.Template),
		Bracket:  newWeightBracketView(match.Bracket),
	}, nil
}
