package http

import (
	"net/http"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// WebhookOptions guard the carrier callback endpoint.
type WebhookOptions struct {
	Secret             string
	RateLimitPerMinute int
}

// RegisterHandlers mounts the API under /api/v1 together with the health
// check, the OpenAPI document and the Swagger UI.
func RegisterHandlers(e *echo.Echo, s *Server, webhook WebhookOptions) {
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, Document())
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	auth := Authenticate()
	admin := RequireRole(kernel.RoleAdmin)

	api := e.Group("/api/v1")

	api.POST("/shipments", s.CreateShipment, auth)
	api.GET("/shipments", s.ListShipments, auth, admin)
	api.GET("/shipments/track/:reference", s.TrackShipment, auth)
	api.PUT("/shipments/status/:id", s.UpdateShipmentStatus, auth, RequireRole(kernel.RoleAdmin, kernel.RoleDriver))
	api.POST("/shipments/cancel/:id", s.CancelShipment, auth, RequireRole(kernel.RoleAdmin, kernel.RoleCustomer))
	api.DELETE("/shipments/:id", s.DeleteShipment, auth, admin)
	api.POST("/shipments/webhooks/:carrier", s.CarrierWebhook,
		WebhookRateLimit(webhook.RateLimitPerMinute), WebhookSecret(webhook.Secret))

	api.POST("/routes/match", s.MatchRoute, auth)
	api.GET("/routes", s.ListRouteTemplates, auth, admin)
	api.POST("/routes", s.CreateRouteTemplate, auth, admin)
	api.GET("/routes/:id", s.GetRouteTemplate, auth, admin)
	api.PUT("/routes/:id", s.UpdateRouteTemplate, auth, admin)
	api.DELETE("/routes/:id", s.DeleteRouteTemplate, auth, admin)

	api.POST("/drivers", s.CreateDriver, auth, admin)
	api.PUT("/drivers/:id/status", s.ChangeDriverStatus, auth, admin)
}
