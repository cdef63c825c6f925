// Package product provides the Product catalog.
package product

import (
	"context"

	"quipu/internal/core/apperror"
	"quipu/internal/core/entity"
	"quipu/internal/core/types"
)

// Product represents an item held in inventory.
//
// CurrentStock and CurrentUnitCost form the product's valuation position. They
// are mutated exclusively by the kardex service in response to movements;
// catalog edits (name, category, sale price) never touch them.
type Product struct {
	entity.Catalog

	// Category groups products for reporting
	Category string `db:"category" json:"category,omitempty"`

	// UnitOfMeasure is the display unit (e.g., "UND", "KG", "LT")
	UnitOfMeasure string `db:"unit_of_measure" json:"unitOfMeasure"`

	// SalePrice is the list price, independent of cost
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	// CurrentStock is the on-hand quantity
	CurrentStock types.Quantity `db:"current_stock" json:"currentStock"`

	// CurrentUnitCost is the moving weighted-average cost per unit
	CurrentUnitCost types.Money `db:"current_unit_cost" json:"currentUnitCost"`
}

// New creates a new Product with zero stock and cost.
func New(code, name, unitOfMeasure string) *Product {
	return &Product{
		Catalog:         entity.NewCatalog(code, name),
		UnitOfMeasure:   unitOfMeasure,
		SalePrice:       types.Zero(),
		CurrentStock:    0,
		CurrentUnitCost: types.Zero(),
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}

	if p.UnitOfMeasure == "" {
		return apperror.NewValidation("unit of measure is required").
			WithDetail("field", "unitOfMeasure")
	}

	if p.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "salePrice")
	}

	if p.CurrentStock.IsNegative() {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "currentStock")
	}

	if p.CurrentUnitCost.IsNegative() {
		return apperror.NewValidation("unit cost cannot be negative").
			WithDetail("field", "currentUnitCost")
	}

	return nil
}

// InventoryValue returns the total value of on-hand stock.
func (p *Product) InventoryValue() types.Money {
	return p.CurrentStock.Decimal().Mul(p.CurrentUnitCost)
}
