package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/core/types"
	"quipu/internal/domain/catalogs/product"
	"quipu/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// Compile-time check.
var _ product.Repository = (*ProductRepo)(nil)

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*product.Product](
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// UpdatePosition writes the valuation position only.
// The catalog fields (name, category, sale price) are left untouched so this
// can run concurrently with catalog edits without clobbering them.
// Must be called within a transaction holding the row lock from GetForUpdate.
func (r *ProductRepo) UpdatePosition(ctx context.Context, productID id.ID, stock types.Quantity, unitCost types.Money) error {
	q := r.Builder().
		Update(productTable).
		Set("current_stock", stock).
		Set("current_unit_cost", unitCost).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update position: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(productTable, productID.String())
	}

	return nil
}
