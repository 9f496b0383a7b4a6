package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"
)

// RouteRepository stores the route template catalog.
type RouteRepository interface {
	Add(ctx context.Context, aggregate *route.Template) error
	Update(ctx context.Context, aggregate *route.Template) error
	Get(ctx context.Context, id kernel.UUID) (*route.Template, error)
	Delete(ctx context.Context, id kernel.UUID) error

	// List returns every template in insertion order (created_at, id).
	List(ctx context.Context) ([]*route.Template, error)
}
