package purchase

import (
	"context"
	"fmt"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/core/numerator"
	"quipu/internal/core/tx"
	"quipu/internal/domain"
	"quipu/internal/domain/journal"
	"quipu/internal/domain/kardex"
	"quipu/internal/domain/posting"
	"quipu/pkg/logger"
)

// Service provides business operations for purchase documents.
type Service struct {
	repo      Repository
	kardex    *kardex.Service
	generator *posting.Generator
	journal   *journal.Service
	numerator numerator.Generator
	txManager tx.Manager
}

// NewService creates a new purchase service.
func NewService(
	repo Repository,
	kardexSvc *kardex.Service,
	generator *posting.Generator,
	journalSvc *journal.Service,
	gen numerator.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		kardex:    kardexSvc,
		generator: generator,
		journal:   journalSvc,
		numerator: gen,
		txManager: txManager,
	}
}

// Create creates a new purchase document in unposted state.
func (s *Service) Create(ctx context.Context, doc *Purchase) error {
	doc.RecalculateTotals()
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig(NumberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, doc.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase created", "id", doc.ID, "number", doc.Number)
	return nil
}

// GetByID retrieves a purchase with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Purchase, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("purchase", docID.String())
		}
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines
	return doc, nil
}

// Update updates an unposted purchase.
func (s *Service) Update(ctx context.Context, doc *Purchase) error {
	if err := doc.CanModify(); err != nil {
		return err
	}

	doc.RecalculateTotals()
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes an unposted purchase.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if doc.Posted {
		return doc.CanModify()
	}
	return s.repo.Delete(ctx, docID)
}

// Post records the purchase: one kardex entry per line plus one balanced
// journal entry, all inside a single transaction. Either everything commits
// or nothing does.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("purchase", docID.String())
			}
			return fmt.Errorf("lock document: %w", err)
		}
		if doc.Posted {
			return apperror.NewBusinessRule(
				apperror.CodeDocumentPosted,
				"Purchase is already posted",
			).WithDetail("document_id", doc.ID.String())
		}

		lines, err := s.repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		doc.Lines = lines
		doc.RecalculateTotals()
		if err := doc.Validate(ctx); err != nil {
			return err
		}

		for _, line := range doc.Lines {
			_, err := s.kardex.RegisterEntry(ctx, kardex.EntryParams{
				ProductID:         line.ProductID,
				Date:              doc.Date,
				Quantity:          line.Quantity,
				UnitCost:          line.UnitCost,
				ReasonCode:        kardex.ReasonPurchase,
				DocumentReference: doc.Number,
				RecorderID:        doc.ID,
				RecorderType:      RecorderType,
			})
			if err != nil {
				return err
			}
		}

		entry, err := s.generator.BuildEntry(posting.NewPurchase(doc.Date, doc.Number, doc.Subtotal, doc.Tax))
		if err != nil {
			return err
		}
		if err := s.journal.PostDirect(ctx, entry); err != nil {
			return err
		}

		doc.EntryID = &entry.ID
		doc.MarkPosted()
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase posted", "id", docID)
	return nil
}

// List retrieves purchases with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Purchase], error) {
	return s.repo.List(ctx, filter)
}
