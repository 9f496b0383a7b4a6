package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every failed request.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func (s *Server) fail(ctx echo.Context, err error) error {
	var validation *commands.ValidationError
	switch {
	case errors.As(err, &validation):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Errors:  validation.Errors,
		})
	case errors.Is(err, commands.ErrForbidden):
		return respondError(ctx, http.StatusForbidden, "You are not allowed to perform this action")
	case errors.Is(err, errs.ErrObjectNotFound):
		return respondError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNoRouteAvailable):
		return respondError(ctx, http.StatusNotFound, "No route available for this shipment")
	case errors.Is(err, shipment.ErrInvalidTransition),
		errors.Is(err, shipment.ErrCancelNotAllowed),
		errors.Is(err, ports.ErrDuplicateDriverCode):
		return respondError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respondError(ctx, http.StatusBadRequest, err.Error())
	}

	s.logger.Error("request failed",
		zap.String("method", ctx.Request().Method),
		zap.String("path", ctx.Path()),
		zap.Error(err),
	)
	return respondError(ctx, http.StatusInternalServerError, "Internal server error")
}

func respondError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
