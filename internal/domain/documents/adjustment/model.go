// Package adjustment provides the inventory Adjustment document.
package adjustment

import (
	"context"

	"quipu/internal/core/apperror"
	"quipu/internal/core/entity"
	"quipu/internal/core/id"
	"quipu/internal/core/types"
)

// Direction distinguishes positive from negative adjustments.
type Direction string

const (
	DirectionEntry Direction = "entry"
	DirectionExit  Direction = "exit"
)

// Kind distinguishes stock corrections from opening-balance loads.
type Kind string

const (
	// KindCorrection covers found goods, shrinkage and damage. Lines are
	// valued at the product's current weighted-average cost.
	KindCorrection Kind = "correction"

	// KindInitialLoad brings opening inventory onto the books. Each line
	// states its own unit cost and the value posts against equity.
	KindInitialLoad Kind = "initial_load"
)

// Adjustment moves stock outside of trade documents: corrections for found
// goods, shrinkage and damage, or the initial inventory load.
type Adjustment struct {
	entity.Document

	Kind      Kind      `db:"kind" json:"kind"`
	Direction Direction `db:"direction" json:"direction"`
	Reason    string    `db:"reason" json:"reason"`

	// Value is the total adjustment value at posting, zero until posted
	Value types.Money `db:"value" json:"value"`

	// EntryID references the journal entry created at posting
	EntryID *id.ID `db:"entry_id" json:"entryId,omitempty"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one adjusted product.
type Line struct {
	LineID    id.ID          `db:"line_id" json:"lineId"`
	LineNo    int            `db:"line_no" json:"lineNo"`
	ProductID id.ID          `db:"product_id" json:"productId"`
	Quantity  types.Quantity `db:"quantity" json:"quantity"`

	// UnitCost is the stated cost basis, set only on initial-load lines.
	// Correction lines carry zero and are valued at posting time.
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`
}

// New creates a new correction adjustment.
func New(direction Direction, reason string) *Adjustment {
	return &Adjustment{
		Document:  entity.NewDocument(),
		Kind:      KindCorrection,
		Direction: direction,
		Reason:    reason,
		Value:     types.Zero(),
		Lines:     make([]Line, 0),
	}
}

// NewInitialLoad creates an opening-balance adjustment. Initial loads only
// bring stock in, so the direction is fixed to entry.
func NewInitialLoad(reason string) *Adjustment {
	doc := New(DirectionEntry, reason)
	doc.Kind = KindInitialLoad
	return doc
}

// AddLine appends a product line valued at the current average cost.
func (a *Adjustment) AddLine(productID id.ID, quantity types.Quantity) {
	a.Lines = append(a.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(a.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitCost:  types.Zero(),
	})
}

// AddLineAtCost appends a product line with a stated unit cost.
func (a *Adjustment) AddLineAtCost(productID id.ID, quantity types.Quantity, unitCost types.Money) {
	a.Lines = append(a.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(a.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitCost:  unitCost,
	})
}

// Validate implements entity.Validatable.
func (a *Adjustment) Validate(ctx context.Context) error {
	if err := a.Document.Validate(ctx); err != nil {
		return err
	}

	if a.Kind != KindCorrection && a.Kind != KindInitialLoad {
		return apperror.NewValidation("invalid adjustment kind").
			WithDetail("field", "kind").
			WithDetail("value", string(a.Kind))
	}

	if a.Direction != DirectionEntry && a.Direction != DirectionExit {
		return apperror.NewValidation("invalid adjustment direction").
			WithDetail("field", "direction").
			WithDetail("value", string(a.Direction))
	}

	if a.Kind == KindInitialLoad && a.Direction != DirectionEntry {
		return apperror.NewValidation("initial load must be an entry").
			WithDetail("field", "direction")
	}

	if a.Reason == "" {
		return apperror.NewValidation("reason is required").
			WithDetail("field", "reason")
	}

	if len(a.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range a.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("line product is required").
				WithDetail("line", i+1)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewInvalidQuantity(line.Quantity.String()).
				WithDetail("line", i+1)
		}
		switch a.Kind {
		case KindInitialLoad:
			if !line.UnitCost.IsPositive() {
				return apperror.NewValidation("initial load line requires a positive unit cost").
					WithDetail("line", i+1)
			}
		case KindCorrection:
			if !line.UnitCost.IsZero() {
				return apperror.NewValidation("correction lines are valued at the current cost, not a stated one").
					WithDetail("line", i+1)
			}
		}
	}

	return nil
}
