package queries

import (
	"context"
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrListRouteTemplatesQueryIsNotConstructed = errors.New(
	"ListRouteTemplatesQuery must be created via NewListRouteTemplatesQuery constructor",
)

// ListRouteTemplatesQuery returns the whole catalog in the order the matcher scans it.
type ListRouteTemplatesQuery struct {
	guard guard.ConstructorGuard
}

func NewListRouteTemplatesQuery() ListRouteTemplatesQuery {
	return ListRouteTemplatesQuery{guard: guard.NewConstructorGuard()}
}

func (q ListRouteTemplatesQuery) Validate() error {
	return q.guard.Validate(ErrListRouteTemplatesQueryIsNotConstructed)
}

type ListRouteTemplatesQueryHandler struct {
	catalog RouteCatalog
}

func NewListRouteTemplatesQueryHandler(catalog RouteCatalog) ListRouteTemplatesQueryHandler {
	return ListRouteTemplatesQueryHandler{catalog: catalog}
}

func (h ListRouteTemplatesQueryHandler) Handle(ctx context.Context, query ListRouteTemplatesQuery) ([]RouteTemplateView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	templates, err := h.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]RouteTemplateView, 0, len(templates))
	for _, t := range templates {
		views = append(views, newRouteTemplateView(t))
	}
	return views, nil
}
