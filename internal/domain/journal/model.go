// Package journal implements the double-entry journal store.
package journal

import (
	"context"
	"time"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/core/types"
)

// Status is the lifecycle state of an accounting entry.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusPosted Status = "posted"
	StatusVoided Status = "voided"
)

// Line is one debit or credit of an entry. Exactly one of Debit/Credit is
// non-zero.
type Line struct {
	AccountCode string      `db:"account_code" json:"accountCode"`
	AccountName string      `db:"account_name" json:"accountName"`
	Debit       types.Money `db:"debit" json:"debit"`
	Credit      types.Money `db:"credit" json:"credit"`
}

// Validate checks the one-sided line rule.
func (l Line) Validate() error {
	if l.AccountCode == "" {
		return apperror.NewValidation("line account code is required")
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return apperror.NewValidation("line amounts cannot be negative").
			WithDetail("accountCode", l.AccountCode)
	}
	debitSet := l.Debit.IsPositive()
	creditSet := l.Credit.IsPositive()
	if debitSet == creditSet {
		return apperror.NewValidation("line must have exactly one of debit or credit").
			WithDetail("accountCode", l.AccountCode).
			WithDetail("debit", l.Debit.String()).
			WithDetail("credit", l.Credit.String())
	}
	return nil
}

// Entry is a journal record. Once posted, only the status may change; voided
// entries are kept for audit but excluded from every balance fold.
type Entry struct {
	ID        id.ID     `db:"id" json:"id"`
	Number    string    `db:"number" json:"number"`
	Date      time.Time `db:"date" json:"date"`
	Concept   string    `db:"concept" json:"concept"`
	Reference string    `db:"reference" json:"reference,omitempty"`
	Status    Status    `db:"status" json:"status"`

	TotalDebit  types.Money `db:"total_debit" json:"totalDebit"`
	TotalCredit types.Money `db:"total_credit" json:"totalCredit"`

	Lines []Line `db:"-" json:"lines"`

	// Version is the optimistic locking counter
	Version int `db:"version" json:"version"`

	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	PostedAt  *time.Time `db:"posted_at" json:"postedAt,omitempty"`
	VoidedAt  *time.Time `db:"voided_at" json:"voidedAt,omitempty"`
}

// NewEntry creates a draft entry and computes its totals.
func NewEntry(date time.Time, concept, reference string, lines []Line) *Entry {
	e := &Entry{
		ID:        id.New(),
		Date:      date,
		Concept:   concept,
		Reference: reference,
		Status:    StatusDraft,
		Lines:     lines,
		CreatedAt: time.Now().UTC(),
	}
	e.ComputeTotals()
	return e
}

// ComputeTotals recalculates TotalDebit/TotalCredit from the lines.
func (e *Entry) ComputeTotals() {
	debit := types.Zero()
	credit := types.Zero()
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	e.TotalDebit = debit
	e.TotalCredit = credit
}

// Validate checks structural rules: a concept, at least two lines, each line
// one-sided. Balance is checked separately at posting time.
func (e *Entry) Validate(ctx context.Context) error {
	if e.Concept == "" {
		return apperror.NewValidation("concept is required").
			WithDetail("field", "concept")
	}
	if e.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	if len(e.Lines) < 2 {
		return apperror.NewValidation("entry requires at least two lines").
			WithDetail("lines", len(e.Lines))
	}
	for i, l := range e.Lines {
		if err := l.Validate(); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("line", i)
			}
			return err
		}
	}
	return nil
}

// CheckBalance verifies the debit and credit totals match within tolerance.
func (e *Entry) CheckBalance() error {
	if !types.WithinTolerance(e.TotalDebit, e.TotalCredit) {
		return apperror.NewUnbalancedEntry(e.TotalDebit.String(), e.TotalCredit.String())
	}
	return nil
}

// Post transitions draft -> posted. The balance must already be verified.
func (e *Entry) Post() error {
	switch e.Status {
	case StatusDraft:
		now := time.Now().UTC()
		e.Status = StatusPosted
		e.PostedAt = &now
		return nil
	case StatusVoided:
		return apperror.NewEntryVoided(e.ID.String())
	default:
		return apperror.NewConflict("entry is already posted").
			WithDetail("entryId", e.ID.String())
	}
}

// Void transitions posted -> voided. Irreversible; voided entries drop out of
// balance computations but stay in the store.
func (e *Entry) Void() error {
	switch e.Status {
	case StatusPosted:
		now := time.Now().UTC()
		e.Status = StatusVoided
		e.VoidedAt = &now
		return nil
	case StatusVoided:
		return apperror.NewEntryVoided(e.ID.String())
	default:
		return apperror.NewConflict("only posted entries can be voided").
			WithDetail("entryId", e.ID.String()).
			WithDetail("status", string(e.Status))
	}
}

// IsPosted reports whether the entry counts toward balances.
func (e *Entry) IsPosted() bool { return e.Status == StatusPosted }
