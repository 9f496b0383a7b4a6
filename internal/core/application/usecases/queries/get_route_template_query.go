package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetRouteTemplateQueryIsNotConstructed = errors.New(
	"GetRouteTemplateQuery must be created via NewGetRouteTemplateQuery constructor",
)

// GetRouteTemplateQuery reads one route template.
type GetRouteTemplateQuery struct { //nolint:recvcheck //using for validation
	templateID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRouteTemplateQuery(templateID kernel.UUID) (GetRouteTemplateQuery, error) {
	if err := templateID.Validate(); err != nil {
		return GetRouteTemplateQuery{}, errs.NewValueIsRequiredErrorWithCause("templateId", err)
	}

	return GetRouteTemplateQuery{templateID: templateID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRouteTemplateQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteTemplateQueryIsNotConstructed)
}

type GetRouteTemplateQueryHandler struct {
	catalog RouteCatalog
}

func NewGetRouteTemplateQueryHandler(catalog RouteCatalog) GetRouteTemplateQueryHandler {
	return GetRouteTemplateQueryHandler{catalog: catalog}
}

func (h GetRouteTemplateQueryHandler) Handle(ctx context.Context, query GetRouteTemplateQuery) (RouteTemplateView, error) {
	if err := query.Validate(); err != nil {
		return RouteTemplateView{}, err
	}

	t, err := h.catalog.Get(ctx, query.templateID)
	if err != nil {
		return RouteTemplateView{}, err
	}
	return newRouteTemplateView(t), nil
}
