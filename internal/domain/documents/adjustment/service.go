package adjustment

import (
	"context"
	"fmt"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/core/numerator"
	"quipu/internal/core/tx"
	"quipu/internal/core/types"
	"quipu/internal/domain"
	"quipu/internal/domain/journal"
	"quipu/internal/domain/kardex"
	"quipu/internal/domain/posting"
	"quipu/pkg/logger"
)

// Service provides business operations for adjustment documents.
type Service struct {
	repo      Repository
	kardex    *kardex.Service
	generator *posting.Generator
	journal   *journal.Service
	numerator numerator.Generator
	txManager tx.Manager
}

// NewService creates a new adjustment service.
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

// Create creates a new adjustment document in unposted state.
func (s *Service) Create(ctx context.Context, doc *Adjustment) error {
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

	logger.Info(ctx, "adjustment created", "id", doc.ID, "number", doc.Number)
	return nil
}

// GetByID retrieves an adjustment with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Adjustment, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("adjustment", docID.String())
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

// Delete soft-deletes an unposted adjustment.
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

// Post records the adjustment. Correction lines move stock at the product's
// current weighted-average cost and the summed value feeds one gain or loss
// entry; initial-load lines enter at their stated cost and post against
// equity.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("adjustment", docID.String())
			}
			return fmt.Errorf("lock document: %w", err)
		}
		if doc.Posted {
			return apperror.NewBusinessRule(
				apperror.CodeDocumentPosted,
				"Adjustment is already posted",
			).WithDetail("document_id", doc.ID.String())
		}

		lines, err := s.repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		doc.Lines = lines
		if err := doc.Validate(ctx); err != nil {
			return err
		}

		reason := kardex.ReasonAdjustment
		if doc.Kind == KindInitialLoad {
			reason = kardex.ReasonInitialStock
		}

		value := types.Zero()
		for _, line := range doc.Lines {
			var movement *kardex.Movement
			switch doc.Direction {
			case DirectionEntry:
				// Initial loads enter at the line's stated cost; corrections
				// enter at the product's current weighted average.
				movement, err = s.kardex.RegisterEntry(ctx, kardex.EntryParams{
					ProductID:         line.ProductID,
					Date:              doc.Date,
					Quantity:          line.Quantity,
					UnitCost:          line.UnitCost,
					ReasonCode:        reason,
					DocumentReference: doc.Number,
					RecorderID:        doc.ID,
					RecorderType:      RecorderType,
					AtCurrentCost:     doc.Kind == KindCorrection,
				})
			case DirectionExit:
				movement, err = s.kardex.RegisterExit(ctx, kardex.ExitParams{
					ProductID:         line.ProductID,
					Date:              doc.Date,
					Quantity:          line.Quantity,
					ReasonCode:        reason,
					DocumentReference: doc.Number,
					RecorderID:        doc.ID,
					RecorderType:      RecorderType,
				})
			}
			if err != nil {
				return err
			}
			value = value.Add(movement.ValueMovement)
		}
		doc.Value = value

		var event posting.Event
		switch {
		case doc.Kind == KindInitialLoad:
			event = posting.NewInitialStock(doc.Date, doc.Number, value)
		case doc.Direction == DirectionEntry:
			event = posting.NewAdjustmentEntry(doc.Date, doc.Number, value)
		default:
			event = posting.NewAdjustmentExit(doc.Date, doc.Number, value)
		}
		entry, err := s.generator.BuildEntry(event)
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

	logger.Info(ctx, "adjustment posted", "id", docID)
	return nil
}

// List retrieves adjustments with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Adjustment], error) {
	return s.repo.List(ctx, filter)
}
