// Package sale provides the Sale document (venta de mercaderia).
package sale

import (
	"context"

	"quipu/internal/core/apperror"
	"quipu/internal/core/entity"
	"quipu/internal/core/id"
	"quipu/internal/core/types"
	"quipu/internal/domain/tax"
)

// Sale records goods delivered to a customer. Posting a sale appends a kardex
// exit per line at the weighted-average cost and one journal entry covering
// both the revenue side and the cost of goods sold.
type Sale struct {
	entity.Document

	CustomerName string `db:"customer_name" json:"customerName"`

	// AllowBackorder permits posting even when stock is insufficient,
	// driving the product stock negative. Must be set explicitly.
	AllowBackorder bool `db:"allow_backorder" json:"allowBackorder"`

	// Totals calculated from lines
	Net   types.Money `db:"net" json:"net"`
	Tax   types.Money `db:"tax" json:"tax"`
	Total types.Money `db:"total" json:"total"`

	// COGS is the cost charged at posting, zero until posted
	COGS types.Money `db:"cogs" json:"cogs"`

	// EntryID references the journal entry created at posting
	EntryID *id.ID `db:"entry_id" json:"entryId,omitempty"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one sold product.
type Line struct {
	LineID    id.ID          `db:"line_id" json:"lineId"`
	LineNo    int            `db:"line_no" json:"lineNo"`
	ProductID id.ID          `db:"product_id" json:"productId"`
	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`
	Amount    types.Money    `db:"amount" json:"amount"`
}

// New creates a new sale document.
func New(customerName string) *Sale {
	return &Sale{
		Document:     entity.NewDocument(),
		CustomerName: customerName,
		Net:          types.Zero(),
		Tax:          types.Zero(),
		Total:        types.Zero(),
		COGS:         types.Zero(),
		Lines:        make([]Line, 0),
	}
}

// AddLine appends a product line and recalculates totals.
func (s *Sale) AddLine(productID id.ID, quantity types.Quantity, unitPrice types.Money) {
	s.Lines = append(s.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(s.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    quantity.Decimal().Mul(unitPrice),
	})
	s.RecalculateTotals()
}

// RecalculateTotals updates Net/Tax/Total from the lines.
func (s *Sale) RecalculateTotals() {
	net := types.Zero()
	for _, l := range s.Lines {
		net = net.Add(l.Amount)
	}
	s.Net = net
	s.Tax = tax.IVAOn(net)
	s.Total = net.Add(s.Tax)
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if s.CustomerName == "" {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerName")
	}

	if len(s.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range s.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("line product is required").
				WithDetail("line", i+1)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewInvalidQuantity(line.Quantity.String()).
				WithDetail("line", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("line unit price cannot be negative").
				WithDetail("line", i+1)
		}
	}

	return nil
}
