package ports

import (
	"context"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
)

// CatalogProvider resolves live catalog records by id. Missing ids are simply
// absent from the result; callers decide how to report them.
type CatalogProvider interface {
	FindProducts(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Product, error)
	FindShops(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Shop, error)
	FindAddresses(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Address, error)
}

// UserDirectory resolves buyers and deliverers. Returns errs.ObjectNotFoundError
// for unknown ids.
type UserDirectory interface {
	GetUser(ctx context.Context, id kernel.UUID) (identity.User, error)
}
