// Package reports builds financial reports as read-side folds over posted
// journal entries. Voided entries never contribute.
package reports

import (
	"sort"
	"time"

	"quipu/internal/core/types"
	"quipu/internal/domain/catalogs/account"
	"quipu/internal/domain/journal"
)

// TrialBalanceRow is one account's accumulated debit and credit turnover.
type TrialBalanceRow struct {
	AccountCode string      `json:"accountCode"`
	AccountName string      `json:"accountName"`
	Debit       types.Money `json:"debit"`
	Credit      types.Money `json:"credit"`
}

// TrialBalance lists turnover per account for a period.
type TrialBalance struct {
	From        *time.Time        `json:"from,omitempty"`
	To          *time.Time        `json:"to,omitempty"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  types.Money       `json:"totalDebit"`
	TotalCredit types.Money       `json:"totalCredit"`
}

// AccountBalance is one account's signed balance on its normal side.
type AccountBalance struct {
	AccountCode string      `json:"accountCode"`
	AccountName string      `json:"accountName"`
	Balance     types.Money `json:"balance"`
}

// BalanceSheet groups account balances by fundamental kind as of a date.
// Retained earnings close revenue and expenses into equity.
type BalanceSheet struct {
	AsOf             time.Time        `json:"asOf"`
	Assets           []AccountBalance `json:"assets"`
	Liabilities      []AccountBalance `json:"liabilities"`
	Equity           []AccountBalance `json:"equity"`
	RetainedEarnings types.Money      `json:"retainedEarnings"`
	TotalAssets      types.Money      `json:"totalAssets"`
	TotalLiabilities types.Money      `json:"totalLiabilities"`
	TotalEquity      types.Money      `json:"totalEquity"`
}

// IncomeStatement lists revenue and expense balances for a period.
type IncomeStatement struct {
	From          *time.Time       `json:"from,omitempty"`
	To            *time.Time       `json:"to,omitempty"`
	Revenue       []AccountBalance `json:"revenue"`
	Expenses      []AccountBalance `json:"expenses"`
	TotalRevenue  types.Money      `json:"totalRevenue"`
	TotalExpenses types.Money      `json:"totalExpenses"`
	NetIncome     types.Money      `json:"netIncome"`
}

// turnover accumulates per-account debit and credit over posted entries.
type turnover struct {
	debit  types.Money
	credit types.Money
}

// foldTurnover sums debit and credit per account code over posted entries
// only. Draft and voided entries are skipped.
func foldTurnover(entries []*journal.Entry) map[string]turnover {
	acc := make(map[string]turnover)
	for _, e := range entries {
		if !e.IsPosted() {
			continue
		}
		for _, l := range e.Lines {
			t := acc[l.AccountCode]
			if t.debit.IsZero() && t.credit.IsZero() {
				t.debit = types.Zero()
				t.credit = types.Zero()
			}
			t.debit = t.debit.Add(l.Debit)
			t.credit = t.credit.Add(l.Credit)
			acc[l.AccountCode] = t
		}
	}
	return acc
}

// signedBalance returns the balance on the account's normal side. Asset and
// expense accounts grow by debit, the rest by credit.
func signedBalance(kind account.Kind, t turnover) types.Money {
	if kind.DebitIncreases() {
		return t.debit.Sub(t.credit)
	}
	return t.credit.Sub(t.debit)
}

func sortedCodes(m map[string]turnover) []string {
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
