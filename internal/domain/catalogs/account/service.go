package account

import (
	"context"
	"fmt"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/core/tx"
	"quipu/internal/domain"
	"quipu/pkg/logger"
)

// Service provides business operations for the chart of accounts.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new account catalog service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create creates a new account.
func (s *Service) Create(ctx context.Context, a *Account) error {
	if err := a.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByCode(ctx, a.Code)
	if err != nil {
		return fmt.Errorf("check code: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("account", "code", a.Code)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, a); err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "account created", "id", a.ID, "code", a.Code)
	return nil
}

// GetByCode retrieves an account by its code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Account, error) {
	a, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("account", code)
		}
		return nil, err
	}
	return a, nil
}

// GetByID retrieves an account by ID.
func (s *Service) GetByID(ctx context.Context, accountID id.ID) (*Account, error) {
	a, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("account", accountID.String())
		}
		return nil, err
	}
	return a, nil
}

// List retrieves accounts with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Account], error) {
	return s.repo.List(ctx, filter)
}

// EnsureSeedPlan inserts every seed account that does not exist yet.
// Safe to run on every startup.
func (s *Service) EnsureSeedPlan(ctx context.Context) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, seed := range SeedPlan() {
			exists, err := s.repo.ExistsByCode(ctx, seed.Code)
			if err != nil {
				return fmt.Errorf("check account %s: %w", seed.Code, err)
			}
			if exists {
				continue
			}
			if err := s.repo.Create(ctx, seed); err != nil {
				return fmt.Errorf("seed account %s: %w", seed.Code, err)
			}
			logger.Info(ctx, "seed account created", "code", seed.Code, "name", seed.Name)
		}
		return nil
	})
}
