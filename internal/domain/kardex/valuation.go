package kardex

import (
	"sort"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/core/types"
)

// ApplyEntry computes the position after receiving quantity units at unitCost.
// The new average is (old value + quantity*unitCost) / new stock. The returned
// value is the cost of the goods as received, not the new average.
func ApplyEntry(pos Position, quantity types.Quantity, unitCost types.Money) (Position, types.Money, error) {
	if !quantity.IsPositive() {
		return pos, types.Zero(), apperror.NewInvalidQuantity(quantity.String())
	}
	if unitCost.IsNegative() {
		return pos, types.Zero(), apperror.NewValidation("unit cost cannot be negative").
			WithDetail("unitCost", unitCost.String())
	}

	value := quantity.Decimal().Mul(unitCost)
	newStock := pos.Stock + quantity
	newValue := pos.Value().Add(value)

	newCost := types.Zero()
	if newStock.IsPositive() {
		newCost = newValue.Div(newStock.Decimal())
	}

	return Position{Stock: newStock, UnitCost: newCost}, value, nil
}

// ApplyExit computes the position after issuing quantity units. The cost
// charged is the current weighted average, frozen at exit time; later entries
// never change it. Exits do not move the average.
//
// Issuing more than the available stock fails unless allowBackorder is set,
// in which case the stock goes negative and the average is kept.
func ApplyExit(pos Position, quantity types.Quantity, allowBackorder bool) (Position, types.Money, error) {
	if !quantity.IsPositive() {
		return pos, types.Zero(), apperror.NewInvalidQuantity(quantity.String())
	}
	if quantity > pos.Stock && !allowBackorder {
		return pos, types.Zero(), apperror.NewInsufficientStock(
			"", quantity.Float64(), pos.Stock.Float64(),
		)
	}

	value := quantity.Decimal().Mul(pos.UnitCost)

	return Position{Stock: pos.Stock - quantity, UnitCost: pos.UnitCost}, value, nil
}

// Replay folds a product's movement history from the empty position and
// returns the resulting position. The history is ordered by date ascending
// with ties broken by movement ID, which is chronological by construction.
//
// Replay trusts the history: exits that were allowed at record time (including
// backorders) are replayed without the stock check.
func Replay(movements []*Movement) (Position, error) {
	ordered := make([]*Movement, len(movements))
	copy(ordered, movements)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return id.Less(ordered[i].ID, ordered[j].ID)
	})

	pos := Position{Stock: 0, UnitCost: types.Zero()}
	for _, m := range ordered {
		var err error
		switch m.Type {
		case TypeEntry:
			pos, _, err = ApplyEntry(pos, m.Quantity, m.UnitCost)
		case TypeExit:
			pos, _, err = ApplyExit(pos, m.Quantity, true)
		default:
			return pos, apperror.NewValidation("unknown movement type").
				WithDetail("type", string(m.Type)).
				WithDetail("movementId", m.ID.String())
		}
		if err != nil {
			return pos, err
		}
	}

	return pos, nil
}
