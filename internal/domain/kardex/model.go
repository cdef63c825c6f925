// Package kardex implements the inventory movement ledger and the
// weighted-average valuation engine.
package kardex

import (
	"time"

	"quipu/internal/core/id"
	"quipu/internal/core/types"
)

// MovementType distinguishes stock entries from exits.
type MovementType string

const (
	TypeEntry MovementType = "entry"
	TypeExit  MovementType = "exit"
)

// Reason codes for movements not tied to a trade document.
const (
	ReasonPurchase     = "purchase"
	ReasonSale         = "sale"
	ReasonAdjustment   = "adjustment"
	ReasonInitialStock = "initial_stock"
)

// Movement is one line of a product's kardex. Movements are append-only;
// corrections are made with compensating movements, never in-place edits.
type Movement struct {
	ID        id.ID        `db:"id" json:"id"`
	ProductID id.ID        `db:"product_id" json:"productId"`
	Date      time.Time    `db:"date" json:"date"`
	Type      MovementType `db:"type" json:"type"`

	// Quantity is always positive; Type carries the direction
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// UnitCost is the cost basis of this movement: the purchase cost for
	// entries, the weighted average frozen at exit time for exits
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	StockBefore   types.Quantity `db:"stock_before" json:"stockBefore"`
	StockAfter    types.Quantity `db:"stock_after" json:"stockAfter"`
	ValueMovement types.Money    `db:"value_movement" json:"valueMovement"`

	ReasonCode        string `db:"reason_code" json:"reasonCode"`
	DocumentReference string `db:"document_reference" json:"documentReference,omitempty"`

	// RecorderID/RecorderType identify the document that produced the movement
	RecorderID   id.ID  `db:"recorder_id" json:"recorderId"`
	RecorderType string `db:"recorder_type" json:"recorderType"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Position is a product's running valuation state: quantity on hand and the
// weighted-average unit cost.
type Position struct {
	Stock    types.Quantity
	UnitCost types.Money
}

// Value returns stock * unit cost.
func (p Position) Value() types.Money {
	return p.Stock.Decimal().Mul(p.UnitCost)
}
