package product

import (
	"context"

	"quipu/internal/core/id"
	"quipu/internal/core/types"
	"quipu/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetForUpdate retrieves a product with a row lock. Used by the kardex
	// service to serialize valuation writes per product.
	GetForUpdate(ctx context.Context, id id.ID) (*Product, error)

	// UpdatePosition writes the valuation position (stock + unit cost) only.
	// Must be called within a transaction holding the row lock.
	UpdatePosition(ctx context.Context, id id.ID, stock types.Quantity, unitCost types.Money) error
}
