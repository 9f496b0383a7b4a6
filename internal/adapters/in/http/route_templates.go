package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// MatchRoute handles POST /api/v1/routes/match.
func (s *Server) MatchRoute(ctx echo.Context) error {
	var req MatchRouteRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	query, err := queries.NewMatchRouteQuery(services.RouteQuery{
		OriginCity:      req.OriginCity,
		DestinationCity: req.DestinationCity,
		TransportMode:   req.TransportMode,
		ServiceLevel:    req.ServiceLevel,
		Weight:          req.Weight,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	match, err := s.handlers.MatchRoute.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, match)
}

// ListRouteTemplates handles GET /api/v1/routes.
func (s *Server) ListRouteTemplates(ctx echo.Context) error {
	templates, err := s.handlers.ListRouteTemplates.Handle(ctx.Request().Context(), queries.NewListRouteTemplatesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, templates)
}

// CreateRouteTemplate handles POST /api/v1/routes.
func (s *Server) CreateRouteTemplate(ctx echo.Context) error {
	var payload commands.RouteTemplatePayload
	if err := ctx.Bind(&payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreateRouteTemplateCommand(payload)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.handlers.CreateRouteTemplate.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// GetRouteTemplate handles GET /api/v1/routes/:id.
func (s *Server) GetRouteTemplate(ctx echo.Context) error {
	templateID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "Invalid route template id")
	}

	query, err := queries.NewGetRouteTemplateQuery(templateID)
	if err != nil {
		return s.fail(ctx, err)
	}

	template, err := s.handlers.GetRouteTemplate.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, template)
}

// UpdateRouteTemplate handles PUT /api/v1/routes/:id. The whole template is replaced.
func (s *Server) UpdateRouteTemplate(ctx echo.Context) error {
	templateID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "Invalid route template id")
	}

	var payload commands.RouteTemplatePayload
	if err = ctx.Bind(&payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpdateRouteTemplateCommand(templateID, payload)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.UpdateRouteTemplate.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteRouteTemplate handles DELETE /api/v1/routes/:id.
func (s *Server) DeleteRouteTemplate(ctx echo.Context) error {
	templateID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "Invalid route template id")
	}

	cmd, err := commands.NewDeleteRouteTemplateCommand(templateID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DeleteRouteTemplate.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
