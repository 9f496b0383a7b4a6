package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	HeaderUserID        = "X-User-ID"
	HeaderUserRole      = "X-User-Role"
	HeaderWebhookSecret = "X-Webhook-Secret"

	principalKey = "principal"
)

// Authenticate reads the caller identity set by the API gateway. Requests
// without a valid identity are rejected with 403.
func Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderUserID))
			if err != nil {
				return respondError(ctx, http.StatusForbidden, "Authentication required")
			}
			role, err := kernel.ParseRole(ctx.Request().Header.Get(HeaderUserRole))
			if err != nil {
				return respondError(ctx, http.StatusForbidden, "Authentication required")
			}
			principal, err := kernel.NewPrincipal(userID, role)
			if err != nil {
				return respondError(ctx, http.StatusForbidden, "Authentication required")
			}

			ctx.Set(principalKey, principal)
			return next(ctx)
		}
	}
}

// RequireRole lets through callers holding one of roles. It must run after Authenticate.
func RequireRole(roles ...kernel.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !principalFrom(ctx).HasRole(roles...) {
				return respondError(ctx, http.StatusForbidden, "You are not allowed to perform this action")
			}
			return next(ctx)
		}
	}
}

func principalFrom(ctx echo.Context) kernel.Principal {
	p, _ := ctx.Get(principalKey).(kernel.Principal)
	return p
}

// WebhookSecret checks the shared secret carriers send with their callbacks.
// An empty secret disables the check.
func WebhookSecret(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if secret == "" {
				return next(ctx)
			}
			got := ctx.Request().Header.Get(HeaderWebhookSecret)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				return respondError(ctx, http.StatusForbidden, "Invalid webhook secret")
			}
			return next(ctx)
		}
	}
}

// WebhookRateLimit allows perMinute callbacks per client IP. Zero disables the limit.
func WebhookRateLimit(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(perMinute) / 60),
			Burst:     perMinute,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(ctx echo.Context, _ error) error {
			return respondError(ctx, http.StatusForbidden, "Client could not be identified")
		},
		DenyHandler: func(ctx echo.Context, _ string, _ error) error {
			return respondError(ctx, http.StatusTooManyRequests, "Too many webhook calls")
		},
	})
}

// RequestLogger writes one access log line per request.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
