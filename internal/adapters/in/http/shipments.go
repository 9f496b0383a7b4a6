package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var payload commands.ShipmentPayload
	if err := ctx.Bind(&payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreateShipmentCommand(principalFrom(ctx).UserID, payload)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CreateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, s.createdShipment(result))
}

// TrackShipment handles GET /api/v1/shipments/track/:reference.
func (s *Server) TrackShipment(ctx echo.Context) error {
	query, err := queries.NewTrackShipmentQuery(principalFrom(ctx), ctx.Param("reference"))
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.handlers.TrackShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateShipmentStatus handles PUT /api/v1/shipments/status/:id.
func (s *Server) UpdateShipmentStatus(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	var req commands.StatusUpdateRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpdateShipmentStatusCommand(principalFrom(ctx), shipmentID, req)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.UpdateShipmentStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, statusChange(result))
}

// CancelShipment handles POST /api/v1/shipments/cancel/:id. The body is optional.
func (s *Server) CancelShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	var req CancelRequest
	if ctx.Request().ContentLength != 0 {
		if err = ctx.Bind(&req); err != nil {
			return respondError(ctx, http.StatusBadRequest, "Invalid request body")
		}
	}

	cmd, err := commands.NewCancelShipmentCommand(principalFrom(ctx), shipmentID, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CancelShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, statusChange(result))
}

// ListShipments handles GET /api/v1/shipments.
func (s *Server) ListShipments(ctx echo.Context) error {
	var params ListShipmentsParams
	if err := bindListShipmentsParams(ctx, &params); err != nil {
		return respondError(ctx, http.StatusBadRequest, err.Error())
	}

	query, err := queries.NewListShipmentsQuery(queries.ShipmentFilter{
		Page:        deref(params.Page),
		Limit:       deref(params.Limit),
		Status:      deref(params.Status),
		CarrierType: deref(params.CarrierType),
		From:        params.From,
		To:          params.To,
		Search:      deref(params.Search),
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.handlers.ListShipments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

func bindListShipmentsParams(ctx echo.Context, params *ListShipmentsParams) error {
	q := ctx.QueryParams()
	for name, dest := range map[string]any{
		"page":        &params.Page,
		"limit":       &params.Limit,
		"status":      &params.Status,
		"carrierType": &params.CarrierType,
		"from":        &params.From,
		"to":          &params.To,
		"search":      &params.Search,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
			return err
		}
	}
	return nil
}

// DeleteShipment handles DELETE /api/v1/shipments/:id.
func (s *Server) DeleteShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	cmd, err := commands.NewDeleteShipmentCommand(principalFrom(ctx), shipmentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DeleteShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CarrierWebhook handles POST /api/v1/shipments/webhooks/:carrier.
func (s *Server) CarrierWebhook(ctx echo.Context) error {
	var payload map[string]any
	if err := ctx.Bind(&payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewReconcileCarrierUpdateCommand(ctx.Param("carrier"), payload)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.ReconcileCarrier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, statusChange(result))
}
