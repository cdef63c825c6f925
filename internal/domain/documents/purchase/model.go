// Package purchase provides the Purchase document (compra de mercaderia).
package purchase

import (
	"context"

	"quipu/internal/core/apperror"
	"quipu/internal/core/entity"
	"quipu/internal/core/id"
	"quipu/internal/core/types"
	"quipu/internal/domain/tax"
)

// Purchase records incoming goods against a supplier invoice. Posting a
// purchase appends a kardex entry per line and one journal entry with the
// inventory, IVA credit and payable lines.
type Purchase struct {
	entity.Document

	SupplierName  string `db:"supplier_name" json:"supplierName"`
	InvoiceNumber string `db:"invoice_number" json:"invoiceNumber,omitempty"`

	// Totals calculated from lines
	Subtotal types.Money `db:"subtotal" json:"subtotal"`
	Tax      types.Money `db:"tax" json:"tax"`
	Total    types.Money `db:"total" json:"total"`

	// EntryID references the journal entry created at posting
	EntryID *id.ID `db:"entry_id" json:"entryId,omitempty"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one purchased product.
type Line struct {
	LineID    id.ID          `db:"line_id" json:"lineId"`
	LineNo    int            `db:"line_no" json:"lineNo"`
	ProductID id.ID          `db:"product_id" json:"productId"`
	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitCost  types.Money    `db:"unit_cost" json:"unitCost"`
	Amount    types.Money    `db:"amount" json:"amount"`
}

// New creates a new purchase document.
func New(supplierName string) *Purchase {
	return &Purchase{
		Document:     entity.NewDocument(),
		SupplierName: supplierName,
		Subtotal:     types.Zero(),
		Tax:          types.Zero(),
		Total:        types.Zero(),
		Lines:        make([]Line, 0),
	}
}

// AddLine appends a product line and recalculates totals.
func (p *Purchase) AddLine(productID id.ID, quantity types.Quantity, unitCost types.Money) {
	p.Lines = append(p.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(p.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitCost:  unitCost,
		Amount:    quantity.Decimal().Mul(unitCost),
	})
	p.RecalculateTotals()
}

// RecalculateTotals updates Subtotal/Tax/Total from the lines. IVA is applied
// on the document subtotal, not per line.
func (p *Purchase) RecalculateTotals() {
	subtotal := types.Zero()
	for _, l := range p.Lines {
		subtotal = subtotal.Add(l.Amount)
	}
	p.Subtotal = subtotal
	p.Tax = tax.IVAOn(subtotal)
	p.Total = subtotal.Add(p.Tax)
}

// Validate implements entity.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if p.SupplierName == "" {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierName")
	}

	if len(p.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range p.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("line product is required").
				WithDetail("line", i+1)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewInvalidQuantity(line.Quantity.String()).
				WithDetail("line", i+1)
		}
		if line.UnitCost.IsNegative() {
			return apperror.NewValidation("line unit cost cannot be negative").
				WithDetail("line", i+1)
		}
	}

	return nil
}
