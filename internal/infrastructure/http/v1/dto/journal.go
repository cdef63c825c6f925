package dto

import (
	"time"

	"quipu/internal/core/types"
	"quipu/internal/domain/journal"
)

// EntryLineRequest is one debit or credit of a manual entry. Amounts are
// decimal strings; exactly one side must be positive.
type EntryLineRequest struct {
	AccountCode string `json:"accountCode" binding:"required"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// CreateEntryRequest for creating manual journal drafts.
type CreateEntryRequest struct {
	Date      time.Time          `json:"date" binding:"required"`
	Concept   string             `json:"concept" binding:"required"`
	Reference string             `json:"reference"`
	Lines     []EntryLineRequest `json:"lines" binding:"required,min=2"`
}

// ToEntity converts the request to a draft Entry. Account names are resolved
// by the service, not here.
func (r CreateEntryRequest) ToEntity() (*journal.Entry, error) {
	lines := make([]journal.Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		debit := types.Zero()
		credit := types.Zero()
		var err error
		if l.Debit != "" {
			if debit, err = types.NewMoneyFromString(l.Debit); err != nil {
				return nil, err
			}
		}
		if l.Credit != "" {
			if credit, err = types.NewMoneyFromString(l.Credit); err != nil {
				return nil, err
			}
		}
		lines = append(lines, journal.Line{
			AccountCode: l.AccountCode,
			Debit:       debit,
			Credit:      credit,
		})
	}
	return journal.NewEntry(r.Date, r.Concept, r.Reference, lines), nil
}

// EntryLineResponse is one line of an entry.
type EntryLineResponse struct {
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// EntryResponse contains journal entry fields.
type EntryResponse struct {
	ID          string              `json:"id"`
	Number      string              `json:"number"`
	Date        time.Time           `json:"date"`
	Concept     string              `json:"concept"`
	Reference   string              `json:"reference,omitempty"`
	Status      string              `json:"status"`
	TotalDebit  string              `json:"totalDebit"`
	TotalCredit string              `json:"totalCredit"`
	Version     int                 `json:"version"`
	CreatedAt   time.Time           `json:"createdAt"`
	PostedAt    *time.Time          `json:"postedAt,omitempty"`
	VoidedAt    *time.Time          `json:"voidedAt,omitempty"`
	Lines       []EntryLineResponse `json:"lines"`
}

// FromEntry creates EntryResponse from an entry.
func FromEntry(e *journal.Entry) EntryResponse {
	resp := EntryResponse{
		ID:          e.ID.String(),
		Number:      e.Number,
		Date:        e.Date,
		Concept:     e.Concept,
		Reference:   e.Reference,
		Status:      string(e.Status),
		TotalDebit:  e.TotalDebit.StringFixed(2),
		TotalCredit: e.TotalCredit.StringFixed(2),
		Version:     e.Version,
		CreatedAt:   e.CreatedAt,
		PostedAt:    e.PostedAt,
		VoidedAt:    e.VoidedAt,
		Lines:       make([]EntryLineResponse, 0, len(e.Lines)),
	}
	for _, l := range e.Lines {
		resp.Lines = append(resp.Lines, EntryLineResponse{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Debit:       l.Debit.StringFixed(2),
			Credit:      l.Credit.StringFixed(2),
		})
	}
	return resp
}
