package kardex

import (
	"testing"
	"time"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/core/types"
)

func mustMoney(t *testing.T, s string) types.Money {
	t.Helper()
	m, err := types.NewMoneyFromString(s)
	if err != nil {
		t.Fatalf("parse money %q: %v", s, err)
	}
	return m
}

func TestApplyEntryWeightedAverage(t *testing.T) {
	pos := Position{Stock: 0, UnitCost: types.Zero()}

	pos, value, err := ApplyEntry(pos, types.NewQuantityFromInt(10), mustMoney(t, "100"))
	if err != nil {
		t.Fatalf("first entry: %v", err)
	}
	if pos.Stock != types.NewQuantityFromInt(10) {
		t.Errorf("stock = %s, want 10", pos.Stock)
	}
	if !pos.UnitCost.Equal(mustMoney(t, "100")) {
		t.Errorf("unit cost = %s, want 100", pos.UnitCost)
	}
	if !value.Equal(mustMoney(t, "1000")) {
		t.Errorf("value = %s, want 1000", value)
	}

	pos, value, err = ApplyEntry(pos, types.NewQuantityFromInt(10), mustMoney(t, "200"))
	if err != nil {
		t.Fatalf("second entry: %v", err)
	}
	if pos.Stock != types.NewQuantityFromInt(20) {
		t.Errorf("stock = %s, want 20", pos.Stock)
	}
	if !pos.UnitCost.Equal(mustMoney(t, "150")) {
		t.Errorf("unit cost = %s, want 150", pos.UnitCost)
	}
	if !value.Equal(mustMoney(t, "2000")) {
		t.Errorf("value = %s, want 2000", value)
	}
}

func TestApplyEntryRecordsPurchaseCostNotAverage(t *testing.T) {
	pos := Position{Stock: types.NewQuantityFromInt(10), UnitCost: mustMoney(t, "100")}

	_, value, err := ApplyEntry(pos, types.NewQuantityFromInt(5), mustMoney(t, "160"))
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if !value.Equal(mustMoney(t, "800")) {
		t.Errorf("value = %s, want 800 (5 x 160 as purchased)", value)
	}
}

func TestApplyEntryInvalidQuantity(t *testing.T) {
	before := Position{Stock: types.NewQuantityFromInt(3), UnitCost: mustMoney(t, "50")}

	for _, qty := range []types.Quantity{0, types.NewQuantityFromInt(-1)} {
		after, _, err := ApplyEntry(before, qty, mustMoney(t, "10"))
		if !apperror.IsCode(err, apperror.CodeInvalidQuantity) {
			t.Errorf("quantity %s: err = %v, want INVALID_QUANTITY", qty, err)
		}
		if after != before {
			t.Errorf("quantity %s: position changed on rejected entry", qty)
		}
	}
}

func TestApplyEntryNegativeUnitCost(t *testing.T) {
	pos := Position{Stock: 0, UnitCost: types.Zero()}

	_, _, err := ApplyEntry(pos, types.NewQuantityFromInt(1), mustMoney(t, "-5"))
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Errorf("err = %v, want VALIDATION_ERROR", err)
	}
}

func TestApplyExitChargesFrozenAverage(t *testing.T) {
	pos := Position{Stock: types.NewQuantityFromInt(20), UnitCost: mustMoney(t, "150")}

	pos, value, err := ApplyExit(pos, types.NewQuantityFromInt(5), false)
	if err != nil {
		t.Fatalf("exit: %v", err)
	}
	if pos.Stock != types.NewQuantityFromInt(15) {
		t.Errorf("stock = %s, want 15", pos.Stock)
	}
	if !pos.UnitCost.Equal(mustMoney(t, "150")) {
		t.Errorf("unit cost changed on exit: %s", pos.UnitCost)
	}
	if !value.Equal(mustMoney(t, "750")) {
		t.Errorf("value = %s, want 750", value)
	}
}

func TestApplyExitInsufficientStock(t *testing.T) {
	before := Position{Stock: types.NewQuantityFromInt(3), UnitCost: mustMoney(t, "100")}

	after, _, err := ApplyExit(before, types.NewQuantityFromInt(5), false)
	if !apperror.IsCode(err, apperror.CodeInsufficientStock) {
		t.Fatalf("err = %v, want INSUFFICIENT_STOCK", err)
	}
	if after != before {
		t.Error("position changed on rejected exit")
	}
}

func TestApplyExitBackorder(t *testing.T) {
	pos := Position{Stock: types.NewQuantityFromInt(3), UnitCost: mustMoney(t, "100")}

	pos, value, err := ApplyExit(pos, types.NewQuantityFromInt(5), true)
	if err != nil {
		t.Fatalf("backorder exit: %v", err)
	}
	if pos.Stock != types.NewQuantityFromInt(-2) {
		t.Errorf("stock = %s, want -2", pos.Stock)
	}
	if !pos.UnitCost.Equal(mustMoney(t, "100")) {
		t.Errorf("unit cost changed on backorder exit: %s", pos.UnitCost)
	}
	if !value.Equal(mustMoney(t, "500")) {
		t.Errorf("value = %s, want 500", value)
	}
}

func TestApplyExitInvalidQuantity(t *testing.T) {
	pos := Position{Stock: types.NewQuantityFromInt(3), UnitCost: mustMoney(t, "100")}

	_, _, err := ApplyExit(pos, 0, false)
	if !apperror.IsCode(err, apperror.CodeInvalidQuantity) {
		t.Errorf("err = %v, want INVALID_QUANTITY", err)
	}
}

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 0, 0, 0, 0, time.UTC)
}

func entryMovement(date time.Time, qty int64, cost string) *Movement {
	return &Movement{
		ID:       id.New(),
		Date:     date,
		Type:     TypeEntry,
		Quantity: types.NewQuantityFromInt(qty),
		UnitCost: types.MustMoney(cost),
	}
}

func exitMovement(date time.Time, qty int64) *Movement {
	return &Movement{
		ID:       id.New(),
		Date:     date,
		Type:     TypeExit,
		Quantity: types.NewQuantityFromInt(qty),
	}
}

func TestReplayReproducesPosition(t *testing.T) {
	history := []*Movement{
		entryMovement(day(1), 10, "100"),
		entryMovement(day(2), 10, "200"),
		exitMovement(day(3), 5),
		entryMovement(day(4), 5, "90"),
		exitMovement(day(5), 8),
	}

	// Compute the expected final position by direct application.
	want := Position{Stock: 0, UnitCost: types.Zero()}
	var err error
	for _, m := range history {
		if m.Type == TypeEntry {
			want, _, err = ApplyEntry(want, m.Quantity, m.UnitCost)
		} else {
			want, _, err = ApplyExit(want, m.Quantity, false)
		}
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
	}

	// Replay from a shuffled copy; sorting must restore the order.
	shuffled := []*Movement{history[3], history[0], history[4], history[1], history[2]}
	got, err := Replay(shuffled)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	if got.Stock != want.Stock {
		t.Errorf("stock = %s, want %s", got.Stock, want.Stock)
	}
	if !got.UnitCost.Equal(want.UnitCost) {
		t.Errorf("unit cost = %s, want %s", got.UnitCost, want.UnitCost)
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	history := []*Movement{
		entryMovement(day(1), 7, "33.5"),
		exitMovement(day(2), 2),
		entryMovement(day(3), 4, "41"),
	}

	first, err := Replay(history)
	if err != nil {
		t.Fatalf("first replay: %v", err)
	}
	second, err := Replay(history)
	if err != nil {
		t.Fatalf("second replay: %v", err)
	}

	if first.Stock != second.Stock || !first.UnitCost.Equal(second.UnitCost) {
		t.Errorf("replays disagree: %+v vs %+v", first, second)
	}
}

func TestReplayBreaksDateTiesByID(t *testing.T) {
	// Same date throughout. IDs are UUIDv7 so creation order is the
	// expected replay order: entry 10@100 must precede the exit of 5.
	sameDay := day(10)
	first := entryMovement(sameDay, 10, "100")
	second := exitMovement(sameDay, 5)

	got, err := Replay([]*Movement{second, first})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if got.Stock != types.NewQuantityFromInt(5) {
		t.Errorf("stock = %s, want 5", got.Stock)
	}
	if !got.UnitCost.Equal(types.MustMoney("100")) {
		t.Errorf("unit cost = %s, want 100", got.UnitCost)
	}
}

func TestReplayUnknownMovementType(t *testing.T) {
	m := entryMovement(day(1), 1, "10")
	m.Type = "transfer"

	_, err := Replay([]*Movement{m})
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Errorf("err = %v, want VALIDATION_ERROR", err)
	}
}
