// Package account provides the chart-of-accounts catalog.
package account

import (
	"context"

	"quipu/internal/core/apperror"
	"quipu/internal/core/entity"
)

// Kind defines the fundamental accounting type of an account.
type Kind string

const (
	KindAsset     Kind = "asset"
	KindLiability Kind = "liability"
	KindEquity    Kind = "equity"
	KindRevenue   Kind = "revenue"
	KindExpense   Kind = "expense"
)

// DebitIncreases reports whether a debit increases the balance of this kind.
// Assets and expenses grow on the debit side; liabilities, equity and revenue
// grow on the credit side.
func (k Kind) DebitIncreases() bool {
	return k == KindAsset || k == KindExpense
}

// Account represents one account of the chart of accounts.
// The account code (e.g., "1141") is a fixed external vocabulary used by the
// posting generator; codes are never renumbered once entries reference them.
type Account struct {
	entity.Catalog

	// Kind determines the account's normal balance side
	Kind Kind `db:"kind" json:"kind"`

	// ParentCode groups accounts hierarchically (e.g., "1141" under "114")
	ParentCode *string `db:"parent_code" json:"parentCode,omitempty"`
}

// New creates a new Account.
func New(code, name string, kind Kind) *Account {
	return &Account{
		Catalog: entity.NewCatalog(code, name),
		Kind:    kind,
	}
}

// Validate implements entity.Validatable.
func (a *Account) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if a.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}

	if !isValidKind(a.Kind) {
		return apperror.NewValidation("invalid account kind").
			WithDetail("field", "kind").
			WithDetail("value", string(a.Kind))
	}

	return nil
}

func isValidKind(k Kind) bool {
	switch k {
	case KindAsset, KindLiability, KindEquity, KindRevenue, KindExpense:
		return true
	}
	return false
}
