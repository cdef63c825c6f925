package dto

import (
	"quipu/internal/core/types"
	"quipu/internal/domain/catalogs/account"
	"quipu/internal/domain/catalogs/product"
)

// --- Products ---

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Code          string  `json:"code" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category"`
	UnitOfMeasure string  `json:"unitOfMeasure" binding:"required"`
	SalePrice     *string `json:"salePrice"`
}

// ToEntity converts the request to a Product.
func (r CreateProductRequest) ToEntity() (*product.Product, error) {
	p := product.New(r.Code, r.Name, r.UnitOfMeasure)
	p.Category = r.Category
	if r.SalePrice != nil {
		price, err := types.NewMoneyFromString(*r.SalePrice)
		if err != nil {
			return nil, err
		}
		p.SalePrice = price
	}
	return p, nil
}

// UpdateProductRequest for updating catalog fields. The valuation position
// (stock, unit cost) is never writable through the API.
type UpdateProductRequest struct {
	Name          *string `json:"name"`
	Category      *string `json:"category"`
	UnitOfMeasure *string `json:"unitOfMeasure"`
	SalePrice     *string `json:"salePrice"`
	Version       int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields to an existing product.
func (r UpdateProductRequest) ApplyTo(p *product.Product) error {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.UnitOfMeasure != nil {
		p.UnitOfMeasure = *r.UnitOfMeasure
	}
	if r.SalePrice != nil {
		price, err := types.NewMoneyFromString(*r.SalePrice)
		if err != nil {
			return err
		}
		p.SalePrice = price
	}
	p.Version = r.Version
	return nil
}

// ProductResponse contains product fields.
type ProductResponse struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Category        string  `json:"category,omitempty"`
	UnitOfMeasure   string  `json:"unitOfMeasure"`
	SalePrice       string  `json:"salePrice"`
	CurrentStock    string  `json:"currentStock"`
	CurrentUnitCost string  `json:"currentUnitCost"`
	InventoryValue  string  `json:"inventoryValue"`
	DeletionMark    bool    `json:"deletionMark"`
	Version         int     `json:"version"`
}

// FromProduct creates ProductResponse from a product.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID.String(),
		Code:            p.Code,
		Name:            p.Name,
		Category:        p.Category,
		UnitOfMeasure:   p.UnitOfMeasure,
		SalePrice:       p.SalePrice.StringFixed(2),
		CurrentStock:    p.CurrentStock.String(),
		CurrentUnitCost: p.CurrentUnitCost.String(),
		InventoryValue:  p.InventoryValue().StringFixed(2),
		DeletionMark:    p.DeletionMark,
		Version:         p.Version,
	}
}

// --- Accounts ---

// CreateAccountRequest for creating accounts.
type CreateAccountRequest struct {
	Code       string  `json:"code" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Kind       string  `json:"kind" binding:"required"`
	ParentCode *string `json:"parentCode"`
}

// ToEntity converts the request to an Account.
func (r CreateAccountRequest) ToEntity() *account.Account {
	a := account.New(r.Code, r.Name, account.Kind(r.Kind))
	a.ParentCode = r.ParentCode
	return a
}

// AccountResponse contains account fields.
type AccountResponse struct {
	ID         string  `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	ParentCode *string `json:"parentCode,omitempty"`
	Version    int     `json:"version"`
}

// FromAccount creates AccountResponse from an account.
func FromAccount(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:         a.ID.String(),
		Code:       a.Code,
		Name:       a.Name,
		Kind:       string(a.Kind),
		ParentCode: a.ParentCode,
		Version:    a.Version,
	}
}
