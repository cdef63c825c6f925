package posting

import (
	"testing"
	"time"

	"quipu/internal/core/apperror"
	"quipu/internal/core/types"
	"quipu/internal/domain/catalogs/account"
	"quipu/internal/domain/journal"
)

func eventDate() time.Time {
	return time.Date(2026, time.May, 3, 0, 0, 0, 0, time.UTC)
}

func lineAmounts(t *testing.T, e *journal.Entry, code string) (types.Money, types.Money) {
	t.Helper()
	debit := types.Zero()
	credit := types.Zero()
	found := false
	for _, l := range e.Lines {
		if l.AccountCode == code {
			debit = debit.Add(l.Debit)
			credit = credit.Add(l.Credit)
			found = true
		}
	}
	if !found {
		t.Fatalf("entry has no line for account %s", code)
	}
	return debit, credit
}

func TestPurchasePosting(t *testing.T) {
	g := NewGenerator()

	e, err := g.BuildEntry(NewPurchase(eventDate(), "CMP-2026-00001",
		types.MustMoney("1000"), types.MustMoney("130")))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(e.Lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(e.Lines))
	}

	inv, _ := lineAmounts(t, e, account.CodeInventarios)
	if !inv.Equal(types.MustMoney("1000")) {
		t.Errorf("inventory debit = %s, want 1000", inv)
	}
	iva, _ := lineAmounts(t, e, account.CodeCreditoFiscalIVA)
	if !iva.Equal(types.MustMoney("130")) {
		t.Errorf("IVA credit debit = %s, want 130", iva)
	}
	_, ap := lineAmounts(t, e, account.CodeCuentasPorPagar)
	if !ap.Equal(types.MustMoney("1130")) {
		t.Errorf("payable credit = %s, want 1130", ap)
	}

	if !e.TotalDebit.Equal(types.MustMoney("1130")) || !e.TotalCredit.Equal(types.MustMoney("1130")) {
		t.Errorf("totals = %s / %s, want 1130 / 1130", e.TotalDebit, e.TotalCredit)
	}
}

func TestSalePostingCoversRevenueAndCost(t *testing.T) {
	g := NewGenerator()

	e, err := g.BuildEntry(NewSale(eventDate(), "VTA-2026-00007",
		types.MustMoney("2000"), types.MustMoney("260"), types.MustMoney("1200")))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	ar, _ := lineAmounts(t, e, account.CodeCuentasPorCobrar)
	if !ar.Equal(types.MustMoney("2260")) {
		t.Errorf("receivable debit = %s, want 2260", ar)
	}
	_, sales := lineAmounts(t, e, account.CodeVentas)
	if !sales.Equal(types.MustMoney("2000")) {
		t.Errorf("sales credit = %s, want 2000", sales)
	}
	_, iva := lineAmounts(t, e, account.CodeDebitoFiscalIVA)
	if !iva.Equal(types.MustMoney("260")) {
		t.Errorf("IVA debit credit = %s, want 260", iva)
	}
	cogs, _ := lineAmounts(t, e, account.CodeCostoDeVentas)
	if !cogs.Equal(types.MustMoney("1200")) {
		t.Errorf("COGS debit = %s, want 1200", cogs)
	}
	_, inv := lineAmounts(t, e, account.CodeInventarios)
	if !inv.Equal(types.MustMoney("1200")) {
		t.Errorf("inventory credit = %s, want 1200", inv)
	}

	if err := e.CheckBalance(); err != nil {
		t.Errorf("sale entry unbalanced: %v", err)
	}
}

func TestServiceSaleSkipsCostSide(t *testing.T) {
	g := NewGenerator()

	e, err := g.BuildEntry(NewSale(eventDate(), "VTA-2026-00008",
		types.MustMoney("500"), types.MustMoney("65"), types.Zero()))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, l := range e.Lines {
		if l.AccountCode == account.CodeCostoDeVentas {
			t.Error("service sale carries a COGS line")
		}
	}
}

func TestEveryMappingBalances(t *testing.T) {
	g := NewGenerator()
	amount := types.MustMoney("350.75")

	events := []Event{
		NewPurchase(eventDate(), "ref", amount, types.MustMoney("45.60")),
		NewSale(eventDate(), "ref", amount, types.MustMoney("45.60"), types.MustMoney("210")),
		NewAdjustmentEntry(eventDate(), "ref", amount),
		NewAdjustmentExit(eventDate(), "ref", amount),
		NewInitialStock(eventDate(), "ref", amount),
		NewCustomerAdvance(eventDate(), "ref", amount),
		NewSupplierAdvance(eventDate(), "ref", amount),
		NewBankDeposit(eventDate(), "ref", amount, true),
		NewBankDeposit(eventDate(), "ref", amount, false),
		NewBankWithdrawal(eventDate(), "ref", amount, true),
		NewBankWithdrawal(eventDate(), "ref", amount, false),
	}

	for i, ev := range events {
		e, err := g.BuildEntry(ev)
		if err != nil {
			t.Errorf("event %d (%T): %v", i, ev, err)
			continue
		}
		if err := e.CheckBalance(); err != nil {
			t.Errorf("event %d (%T) unbalanced: %v", i, ev, err)
		}
		if len(e.Lines) < 2 {
			t.Errorf("event %d (%T): %d lines", i, ev, len(e.Lines))
		}
		for _, l := range e.Lines {
			if l.AccountName == "" {
				t.Errorf("event %d (%T): account %s has no name", i, ev, l.AccountCode)
			}
		}
	}
}

func TestZeroAmountEventsRejected(t *testing.T) {
	g := NewGenerator()

	events := []Event{
		NewPurchase(eventDate(), "ref", types.Zero(), types.Zero()),
		NewSale(eventDate(), "ref", types.Zero(), types.Zero(), types.Zero()),
		NewAdjustmentEntry(eventDate(), "ref", types.Zero()),
		NewCustomerAdvance(eventDate(), "ref", types.Zero()),
		NewBankDeposit(eventDate(), "ref", types.Zero(), true),
	}

	for i, ev := range events {
		_, err := g.BuildEntry(ev)
		if !apperror.IsCode(err, apperror.CodeUnbalanceable) {
			t.Errorf("event %d (%T): err = %v, want UNBALANCEABLE_EVENT", i, ev, err)
		}
	}
}

func TestAdjustmentMappings(t *testing.T) {
	g := NewGenerator()
	value := types.MustMoney("480")

	gain, err := g.BuildEntry(NewAdjustmentEntry(eventDate(), "AJU-1", value))
	if err != nil {
		t.Fatalf("adjustment entry: %v", err)
	}
	inv, _ := lineAmounts(t, gain, account.CodeInventarios)
	if !inv.Equal(value) {
		t.Errorf("inventory debit = %s, want %s", inv, value)
	}
	_, g4211 := lineAmounts(t, gain, account.CodeAjusteGanancia)
	if !g4211.Equal(value) {
		t.Errorf("gain credit = %s, want %s", g4211, value)
	}

	load, err := g.BuildEntry(NewInitialStock(eventDate(), "AJU-3", value))
	if err != nil {
		t.Fatalf("initial stock: %v", err)
	}
	invLoad, _ := lineAmounts(t, load, account.CodeInventarios)
	if !invLoad.Equal(value) {
		t.Errorf("inventory debit = %s, want %s", invLoad, value)
	}
	_, capital := lineAmounts(t, load, account.CodeCapital)
	if !capital.Equal(value) {
		t.Errorf("capital credit = %s, want %s", capital, value)
	}

	loss, err := g.BuildEntry(NewAdjustmentExit(eventDate(), "AJU-2", value))
	if err != nil {
		t.Fatalf("adjustment exit: %v", err)
	}
	d5211, _ := lineAmounts(t, loss, account.CodeAjustePerdida)
	if !d5211.Equal(value) {
		t.Errorf("loss debit = %s, want %s", d5211, value)
	}
	_, invCr := lineAmounts(t, loss, account.CodeInventarios)
	if !invCr.Equal(value) {
		t.Errorf("inventory credit = %s, want %s", invCr, value)
	}
}
