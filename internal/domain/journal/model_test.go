package journal

import (
	"context"
	"testing"
	"time"

	"quipu/internal/core/apperror"
	"quipu/internal/core/types"
)

func testDate() time.Time {
	return time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)
}

func balancedLines() []Line {
	return []Line{
		{AccountCode: "1141", AccountName: "Inventarios", Debit: types.MustMoney("1000")},
		{AccountCode: "2111", AccountName: "Cuentas por Pagar", Credit: types.MustMoney("1000")},
	}
}

func TestLineValidate(t *testing.T) {
	tests := []struct {
		name    string
		line    Line
		wantErr bool
	}{
		{
			name: "debit only",
			line: Line{AccountCode: "1141", Debit: types.MustMoney("100")},
		},
		{
			name: "credit only",
			line: Line{AccountCode: "2111", Credit: types.MustMoney("100")},
		},
		{
			name:    "both sides set",
			line:    Line{AccountCode: "1141", Debit: types.MustMoney("100"), Credit: types.MustMoney("100")},
			wantErr: true,
		},
		{
			name:    "neither side set",
			line:    Line{AccountCode: "1141"},
			wantErr: true,
		},
		{
			name:    "negative amount",
			line:    Line{AccountCode: "1141", Debit: types.MustMoney("-5")},
			wantErr: true,
		},
		{
			name:    "missing account code",
			line:    Line{Debit: types.MustMoney("100")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEntryComputeTotals(t *testing.T) {
	e := NewEntry(testDate(), "Compra de mercaderia", "CMP-2026-00001", []Line{
		{AccountCode: "1141", Debit: types.MustMoney("1000")},
		{AccountCode: "1143", Debit: types.MustMoney("130")},
		{AccountCode: "2111", Credit: types.MustMoney("1130")},
	})

	if !e.TotalDebit.Equal(types.MustMoney("1130")) {
		t.Errorf("total debit = %s, want 1130", e.TotalDebit)
	}
	if !e.TotalCredit.Equal(types.MustMoney("1130")) {
		t.Errorf("total credit = %s, want 1130", e.TotalCredit)
	}
}

func TestEntryValidateRequiresTwoLines(t *testing.T) {
	e := NewEntry(testDate(), "Asiento incompleto", "", []Line{
		{AccountCode: "1141", Debit: types.MustMoney("100")},
	})

	err := e.Validate(context.Background())
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Errorf("err = %v, want VALIDATION_ERROR", err)
	}
}

func TestEntryCheckBalance(t *testing.T) {
	tests := []struct {
		name    string
		debit   string
		credit  string
		wantErr bool
	}{
		{name: "exact", debit: "1130", credit: "1130"},
		{name: "within tolerance", debit: "100.00", credit: "100.01"},
		{name: "over tolerance", debit: "100.00", credit: "100.02", wantErr: true},
		{name: "grossly unbalanced", debit: "1000", credit: "500", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntry(testDate(), "Prueba", "", []Line{
				{AccountCode: "1141", Debit: types.MustMoney(tt.debit)},
				{AccountCode: "2111", Credit: types.MustMoney(tt.credit)},
			})
			err := e.CheckBalance()
			if tt.wantErr && !apperror.IsCode(err, apperror.CodeUnbalancedEntry) {
				t.Errorf("err = %v, want UNBALANCED_ENTRY", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
		})
	}
}

func TestEntryStatusMachine(t *testing.T) {
	e := NewEntry(testDate(), "Prueba", "", balancedLines())

	if err := e.Post(); err != nil {
		t.Fatalf("post draft: %v", err)
	}
	if e.Status != StatusPosted || e.PostedAt == nil {
		t.Errorf("status = %s, postedAt = %v", e.Status, e.PostedAt)
	}

	if err := e.Post(); !apperror.IsCode(err, apperror.CodeConflict) {
		t.Errorf("double post err = %v, want CONFLICT", err)
	}

	if err := e.Void(); err != nil {
		t.Fatalf("void posted: %v", err)
	}
	if e.Status != StatusVoided || e.VoidedAt == nil {
		t.Errorf("status = %s, voidedAt = %v", e.Status, e.VoidedAt)
	}

	if err := e.Void(); !apperror.IsCode(err, apperror.CodeEntryVoided) {
		t.Errorf("double void err = %v, want ENTRY_VOIDED", err)
	}
	if err := e.Post(); !apperror.IsCode(err, apperror.CodeEntryVoided) {
		t.Errorf("post voided err = %v, want ENTRY_VOIDED", err)
	}
}

func TestVoidDraftRejected(t *testing.T) {
	e := NewEntry(testDate(), "Prueba", "", balancedLines())

	if err := e.Void(); !apperror.IsCode(err, apperror.CodeConflict) {
		t.Errorf("void draft err = %v, want CONFLICT", err)
	}
}
