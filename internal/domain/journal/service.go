package journal

import (
	"context"
	"fmt"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/core/numerator"
	"quipu/internal/core/tx"
	"quipu/pkg/logger"
)

// NumberPrefix is the prefix of journal entry numbers (asiento).
const NumberPrefix = "AST"

// Service provides journal operations.
type Service struct {
	repo      Repository
	numerator numerator.Generator
	txManager tx.Manager
}

// NewService creates a new journal service.
func NewService(repo Repository, gen numerator.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		numerator: gen,
		txManager: txManager,
	}
}

// CreateDraft saves a manually entered entry in draft state. Structure is
// validated; balance is enforced later at posting.
func (s *Service) CreateDraft(ctx context.Context, entry *Entry) error {
	entry.ComputeTotals()
	if err := entry.Validate(ctx); err != nil {
		return err
	}
	entry.Status = StatusDraft

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.assignNumber(ctx, entry); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, entry); err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "journal draft created", "id", entry.ID, "number", entry.Number)
	return nil
}

// Post transitions a draft entry to posted after verifying the balance.
func (s *Service) Post(ctx context.Context, entryID id.ID) (*Entry, error) {
	var entry *Entry

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.get(ctx, entryID)
		if err != nil {
			return err
		}
		if err := entry.CheckBalance(); err != nil {
			return err
		}
		if err := entry.Post(); err != nil {
			return err
		}
		if err := s.repo.UpdateStatus(ctx, entry); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "journal entry posted", "id", entry.ID, "number", entry.Number)
	return entry, nil
}

// PostDirect creates an entry already in posted state. Used by the posting
// generator for entries derived from documents; the balance gate is absolute.
func (s *Service) PostDirect(ctx context.Context, entry *Entry) error {
	entry.ComputeTotals()
	if err := entry.Validate(ctx); err != nil {
		return err
	}
	if err := entry.CheckBalance(); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		entry.Status = StatusDraft
		if err := entry.Post(); err != nil {
			return err
		}
		if err := s.assignNumber(ctx, entry); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, entry); err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "journal entry posted",
		"id", entry.ID,
		"number", entry.Number,
		"total", entry.TotalDebit,
	)
	return nil
}

// Void flips a posted entry to voided. The entry stays in the store but is
// excluded from every subsequent balance fold. No reversing entry is created.
func (s *Service) Void(ctx context.Context, entryID id.ID) (*Entry, error) {
	var entry *Entry

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.get(ctx, entryID)
		if err != nil {
			return err
		}
		if err := entry.Void(); err != nil {
			return err
		}
		if err := s.repo.UpdateStatus(ctx, entry); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "journal entry voided", "id", entry.ID, "number", entry.Number)
	return entry, nil
}

// Get retrieves an entry with lines.
func (s *Service) Get(ctx context.Context, entryID id.ID) (*Entry, error) {
	return s.get(ctx, entryID)
}

// List retrieves entries matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) get(ctx context.Context, entryID id.ID) (*Entry, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("journal entry", entryID.String())
		}
		return nil, err
	}
	return entry, nil
}

func (s *Service) assignNumber(ctx context.Context, entry *Entry) error {
	if entry.Number != "" {
		return nil
	}
	number, err := s.numerator.GetNextNumber(
		ctx,
		numerator.DefaultConfig(NumberPrefix),
		numerator.DefaultOptions(),
		entry.Date,
	)
	if err != nil {
		return fmt.Errorf("assign number: %w", err)
	}
	entry.Number = number
	return nil
}
