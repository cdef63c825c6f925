package reports

import (
	"context"
	"fmt"
	"time"

	"quipu/internal/core/types"
	"quipu/internal/domain"
	"quipu/internal/domain/catalogs/account"
	"quipu/internal/domain/journal"
)

// Service builds reports from the journal and the chart of accounts.
type Service struct {
	journal  journal.Repository
	accounts account.Repository
}

// NewService creates a new reports service.
func NewService(journalRepo journal.Repository, accountRepo account.Repository) *Service {
	return &Service{
		journal:  journalRepo,
		accounts: accountRepo,
	}
}

// TrialBalance sums debit and credit turnover per account over posted entries
// in the period.
func (s *Service) TrialBalance(ctx context.Context, from, to *time.Time) (*TrialBalance, error) {
	entries, err := s.postedEntries(ctx, from, to)
	if err != nil {
		return nil, err
	}
	index, err := s.accountIndex(ctx)
	if err != nil {
		return nil, err
	}

	acc := foldTurnover(entries)
	report := &TrialBalance{
		From:        from,
		To:          to,
		Rows:        make([]TrialBalanceRow, 0, len(acc)),
		TotalDebit:  types.Zero(),
		TotalCredit: types.Zero(),
	}

	for _, code := range sortedCodes(acc) {
		t := acc[code]
		report.Rows = append(report.Rows, TrialBalanceRow{
			AccountCode: code,
			AccountName: s.accountName(index, code),
			Debit:       t.debit,
			Credit:      t.credit,
		})
		report.TotalDebit = report.TotalDebit.Add(t.debit)
		report.TotalCredit = report.TotalCredit.Add(t.credit)
	}

	return report, nil
}

// IncomeStatement folds revenue against expenses for the period.
func (s *Service) IncomeStatement(ctx context.Context, from, to *time.Time) (*IncomeStatement, error) {
	entries, err := s.postedEntries(ctx, from, to)
	if err != nil {
		return nil, err
	}
	index, err := s.accountIndex(ctx)
	if err != nil {
		return nil, err
	}

	acc := foldTurnover(entries)
	report := &IncomeStatement{
		From:          from,
		To:            to,
		Revenue:       make([]AccountBalance, 0),
		Expenses:      make([]AccountBalance, 0),
		TotalRevenue:  types.Zero(),
		TotalExpenses: types.Zero(),
	}

	for _, code := range sortedCodes(acc) {
		a, ok := index[code]
		if !ok {
			continue
		}
		balance := signedBalance(a.Kind, acc[code])
		switch a.Kind {
		case account.KindRevenue:
			report.Revenue = append(report.Revenue, AccountBalance{
				AccountCode: code, AccountName: a.Name, Balance: balance,
			})
			report.TotalRevenue = report.TotalRevenue.Add(balance)
		case account.KindExpense:
			report.Expenses = append(report.Expenses, AccountBalance{
				AccountCode: code, AccountName: a.Name, Balance: balance,
			})
			report.TotalExpenses = report.TotalExpenses.Add(balance)
		}
	}

	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)
	return report, nil
}

// BalanceSheet folds all posted entries up to the given date. Revenue and
// expense turnover closes into retained earnings under equity.
func (s *Service) BalanceSheet(ctx context.Context, asOf time.Time) (*BalanceSheet, error) {
	entries, err := s.postedEntries(ctx, nil, &asOf)
	if err != nil {
		return nil, err
	}
	index, err := s.accountIndex(ctx)
	if err != nil {
		return nil, err
	}

	acc := foldTurnover(entries)
	report := &BalanceSheet{
		AsOf:             asOf,
		Assets:           make([]AccountBalance, 0),
		Liabilities:      make([]AccountBalance, 0),
		Equity:           make([]AccountBalance, 0),
		RetainedEarnings: types.Zero(),
		TotalAssets:      types.Zero(),
		TotalLiabilities: types.Zero(),
		TotalEquity:      types.Zero(),
	}

	for _, code := range sortedCodes(acc) {
		a, ok := index[code]
		if !ok {
			continue
		}
		balance := signedBalance(a.Kind, acc[code])
		ab := AccountBalance{AccountCode: code, AccountName: a.Name, Balance: balance}

		switch a.Kind {
		case account.KindAsset:
			report.Assets = append(report.Assets, ab)
			report.TotalAssets = report.TotalAssets.Add(balance)
		case account.KindLiability:
			report.Liabilities = append(report.Liabilities, ab)
			report.TotalLiabilities = report.TotalLiabilities.Add(balance)
		case account.KindEquity:
			report.Equity = append(report.Equity, ab)
			report.TotalEquity = report.TotalEquity.Add(balance)
		case account.KindRevenue:
			report.RetainedEarnings = report.RetainedEarnings.Add(balance)
		case account.KindExpense:
			report.RetainedEarnings = report.RetainedEarnings.Sub(balance)
		}
	}

	report.TotalEquity = report.TotalEquity.Add(report.RetainedEarnings)
	return report, nil
}

func (s *Service) postedEntries(ctx context.Context, from, to *time.Time) ([]*journal.Entry, error) {
	entries, err := s.journal.List(ctx, journal.Filter{
		From:     from,
		To:       to,
		Statuses: []journal.Status{journal.StatusPosted},
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

func (s *Service) accountIndex(ctx context.Context) (map[string]*account.Account, error) {
	result, err := s.accounts.List(ctx, domain.ListFilter{Limit: 1000, OrderBy: "code"})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	index := make(map[string]*account.Account, len(result.Items))
	for _, a := range result.Items {
		index[a.Code] = a
	}
	return index, nil
}

func (s *Service) accountName(index map[string]*account.Account, code string) string {
	if a, ok := index[code]; ok {
		return a.Name
	}
	return ""
}
