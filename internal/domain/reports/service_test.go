package reports

import (
	"context"
	"testing"
	"time"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/core/types"
	"quipu/internal/domain"
	"quipu/internal/domain/catalogs/account"
	"quipu/internal/domain/journal"
)

type fakeJournalRepo struct {
	entries []*journal.Entry
}

func (r *fakeJournalRepo) Create(_ context.Context, e *journal.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeJournalRepo) GetByID(_ context.Context, entryID id.ID) (*journal.Entry, error) {
	for _, e := range r.entries {
		if e.ID == entryID {
			return e, nil
		}
	}
	return nil, apperror.NewNotFound("journal entry", entryID.String())
}

func (r *fakeJournalRepo) GetByNumber(_ context.Context, number string) (*journal.Entry, error) {
	return nil, apperror.NewNotFound("journal entry", number)
}

func (r *fakeJournalRepo) UpdateStatus(_ context.Context, _ *journal.Entry) error { return nil }

func (r *fakeJournalRepo) List(_ context.Context, f journal.Filter) ([]*journal.Entry, error) {
	var out []*journal.Entry
	for _, e := range r.entries {
		if f.From != nil && e.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Date.After(*f.To) {
			continue
		}
		if len(f.Statuses) > 0 {
			match := false
			for _, st := range f.Statuses {
				if e.Status == st {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeJournalRepo) Count(ctx context.Context, f journal.Filter) (int64, error) {
	list, _ := r.List(ctx, f)
	return int64(len(list)), nil
}

type fakeAccountRepo struct{}

func (fakeAccountRepo) Create(_ context.Context, _ *account.Account) error { return nil }
func (fakeAccountRepo) GetByID(_ context.Context, accountID id.ID) (*account.Account, error) {
	return nil, apperror.NewNotFound("account", accountID.String())
}
func (fakeAccountRepo) GetByCode(_ context.Context, code string) (*account.Account, error) {
	return nil, apperror.NewNotFound("account", code)
}
func (fakeAccountRepo) Update(_ context.Context, _ *account.Account) error           { return nil }
func (fakeAccountRepo) SetDeletionMark(_ context.Context, _ id.ID, _ bool) error     { return nil }
func (fakeAccountRepo) Exists(_ context.Context, _ id.ID) (bool, error)              { return true, nil }
func (fakeAccountRepo) ExistsByCode(_ context.Context, _ string) (bool, error)       { return true, nil }
func (fakeAccountRepo) List(_ context.Context, _ domain.ListFilter) (domain.ListResult[*account.Account], error) {
	seed := account.SeedPlan()
	return domain.ListResult[*account.Account]{Items: seed, TotalCount: int64(len(seed))}, nil
}

func reportDate() time.Time {
	return time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
}

func postedEntry(t *testing.T, lines []journal.Line) *journal.Entry {
	t.Helper()
	e := journal.NewEntry(reportDate(), "Prueba", "", lines)
	if err := e.Post(); err != nil {
		t.Fatalf("post: %v", err)
	}
	return e
}

func purchaseLines() []journal.Line {
	return []journal.Line{
		{AccountCode: account.CodeInventarios, Debit: types.MustMoney("1000"), Credit: types.Zero()},
		{AccountCode: account.CodeCreditoFiscalIVA, Debit: types.MustMoney("130"), Credit: types.Zero()},
		{AccountCode: account.CodeCuentasPorPagar, Debit: types.Zero(), Credit: types.MustMoney("1130")},
	}
}

func TestTrialBalanceTotalsMatch(t *testing.T) {
	repo := &fakeJournalRepo{}
	repo.entries = append(repo.entries, postedEntry(t, purchaseLines()))
	svc := NewService(repo, fakeAccountRepo{})

	tb, err := svc.TrialBalance(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("trial balance: %v", err)
	}

	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		t.Errorf("totals differ: %s vs %s", tb.TotalDebit, tb.TotalCredit)
	}
	if !tb.TotalDebit.Equal(types.MustMoney("1130")) {
		t.Errorf("total debit = %s, want 1130", tb.TotalDebit)
	}
	if len(tb.Rows) != 3 {
		t.Errorf("rows = %d, want 3", len(tb.Rows))
	}
	for _, row := range tb.Rows {
		if row.AccountName == "" {
			t.Errorf("row %s lacks an account name", row.AccountCode)
		}
	}
}

func TestVoidedEntriesExcludedFromFolds(t *testing.T) {
	repo := &fakeJournalRepo{}
	kept := postedEntry(t, purchaseLines())
	voided := postedEntry(t, purchaseLines())
	if err := voided.Void(); err != nil {
		t.Fatalf("void: %v", err)
	}
	repo.entries = append(repo.entries, kept, voided)
	svc := NewService(repo, fakeAccountRepo{})

	tb, err := svc.TrialBalance(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("trial balance: %v", err)
	}

	// Only the kept entry contributes.
	if !tb.TotalDebit.Equal(types.MustMoney("1130")) {
		t.Errorf("total debit = %s, want 1130 (voided entry excluded)", tb.TotalDebit)
	}
}

func TestDraftEntriesExcludedFromFolds(t *testing.T) {
	repo := &fakeJournalRepo{}
	repo.entries = append(repo.entries, journal.NewEntry(reportDate(), "Borrador", "", purchaseLines()))
	svc := NewService(repo, fakeAccountRepo{})

	tb, err := svc.TrialBalance(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("trial balance: %v", err)
	}
	if len(tb.Rows) != 0 {
		t.Errorf("draft entry leaked into trial balance: %d rows", len(tb.Rows))
	}
}

func TestIncomeStatementNetIncome(t *testing.T) {
	repo := &fakeJournalRepo{}
	// Sale: revenue 2000, IVA 260, COGS 1200.
	repo.entries = append(repo.entries, postedEntry(t, []journal.Line{
		{AccountCode: account.CodeCuentasPorCobrar, Debit: types.MustMoney("2260"), Credit: types.Zero()},
		{AccountCode: account.CodeVentas, Debit: types.Zero(), Credit: types.MustMoney("2000")},
		{AccountCode: account.CodeDebitoFiscalIVA, Debit: types.Zero(), Credit: types.MustMoney("260")},
		{AccountCode: account.CodeCostoDeVentas, Debit: types.MustMoney("1200"), Credit: types.Zero()},
		{AccountCode: account.CodeInventarios, Debit: types.Zero(), Credit: types.MustMoney("1200")},
	}))
	svc := NewService(repo, fakeAccountRepo{})

	is, err := svc.IncomeStatement(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("income statement: %v", err)
	}

	if !is.TotalRevenue.Equal(types.MustMoney("2000")) {
		t.Errorf("revenue = %s, want 2000", is.TotalRevenue)
	}
	if !is.TotalExpenses.Equal(types.MustMoney("1200")) {
		t.Errorf("expenses = %s, want 1200", is.TotalExpenses)
	}
	if !is.NetIncome.Equal(types.MustMoney("800")) {
		t.Errorf("net income = %s, want 800", is.NetIncome)
	}
}

func TestBalanceSheetBalances(t *testing.T) {
	repo := &fakeJournalRepo{}
	repo.entries = append(repo.entries,
		postedEntry(t, purchaseLines()),
		postedEntry(t, []journal.Line{
			{AccountCode: account.CodeCuentasPorCobrar, Debit: types.MustMoney("2260"), Credit: types.Zero()},
			{AccountCode: account.CodeVentas, Debit: types.Zero(), Credit: types.MustMoney("2000")},
			{AccountCode: account.CodeDebitoFiscalIVA, Debit: types.Zero(), Credit: types.MustMoney("260")},
			{AccountCode: account.CodeCostoDeVentas, Debit: types.MustMoney("600"), Credit: types.Zero()},
			{AccountCode: account.CodeInventarios, Debit: types.Zero(), Credit: types.MustMoney("600")},
		}),
	)
	svc := NewService(repo, fakeAccountRepo{})

	bs, err := svc.BalanceSheet(context.Background(), reportDate())
	if err != nil {
		t.Fatalf("balance sheet: %v", err)
	}

	// Assets: inventory 400 + IVA credit 130 + receivable 2260 = 2790.
	// Liabilities: payable 1130 + IVA debit 260 = 1390.
	// Retained earnings: 2000 - 600 = 1400. Equation must hold.
	if !bs.TotalAssets.Equal(types.MustMoney("2790")) {
		t.Errorf("assets = %s, want 2790", bs.TotalAssets)
	}
	if !bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity)) {
		t.Errorf("accounting equation broken: %s != %s + %s",
			bs.TotalAssets, bs.TotalLiabilities, bs.TotalEquity)
	}
	if !bs.RetainedEarnings.Equal(types.MustMoney("1400")) {
		t.Errorf("retained earnings = %s, want 1400", bs.RetainedEarnings)
	}
}
