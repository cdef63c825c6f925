package kardex

import (
	"context"
	"time"

	"quipu/internal/core/id"
)

// Period filters a movement history by date. Nil bounds are open.
type Period struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	if p.From != nil && t.Before(*p.From) {
		return false
	}
	if p.To != nil && t.After(*p.To) {
		return false
	}
	return true
}

// Repository defines persistence operations for the movement ledger.
// The ledger is append-only; there is no update or delete.
type Repository interface {
	// Create appends movements within the current transaction.
	Create(ctx context.Context, movements []*Movement) error

	// ListByProduct returns a product's movements ordered by date
	// ascending, then by ID.
	ListByProduct(ctx context.Context, productID id.ID, period Period) ([]*Movement, error)

	// ListByRecorder returns the movements produced by one document.
	ListByRecorder(ctx context.Context, recorderID id.ID) ([]*Movement, error)
}
