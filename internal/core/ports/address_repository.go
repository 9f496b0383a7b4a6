package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/address"
	"fulfillment/internal/core/domain/model/kernel"
)

// AddressRepository stores the immutable addresses referenced by shipments.
type AddressRepository interface {
	Add(ctx context.Context, aggregate *address.Address) error
	Get(ctx context.Context, id kernel.UUID) (*address.Address, error)
}
