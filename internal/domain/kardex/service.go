package kardex

import (
	"context"
	"fmt"
	"time"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/core/tx"
	"quipu/internal/core/types"
	"quipu/internal/domain/catalogs/product"
	"quipu/pkg/logger"
)

// EntryParams describes a stock entry to record.
type EntryParams struct {
	ProductID         id.ID
	Date              time.Time
	Quantity          types.Quantity
	UnitCost          types.Money
	ReasonCode        string
	DocumentReference string
	RecorderID        id.ID
	RecorderType      string

	// AtCurrentCost values the entry at the product's current weighted
	// average instead of UnitCost. Used by inventory adjustments, which
	// have no purchase price of their own.
	AtCurrentCost bool
}

// ExitParams describes a stock exit to record.
type ExitParams struct {
	ProductID         id.ID
	Date              time.Time
	Quantity          types.Quantity
	ReasonCode        string
	DocumentReference string
	RecorderID        id.ID
	RecorderType      string

	// AllowBackorder permits the exit to drive stock negative. Off by
	// default; callers must set it explicitly.
	AllowBackorder bool
}

// Service maintains product positions and the movement ledger. The product's
// stock and unit cost are written only here; movement creation and the
// position update commit or roll back together.
type Service struct {
	products  product.Repository
	ledger    Repository
	txManager tx.Manager
}

// NewService creates a new kardex service.
func NewService(products product.Repository, ledger Repository, txManager tx.Manager) *Service {
	return &Service{
		products:  products,
		ledger:    ledger,
		txManager: txManager,
	}
}

// RegisterEntry records a stock entry and recomputes the weighted average.
func (s *Service) RegisterEntry(ctx context.Context, p EntryParams) (*Movement, error) {
	var movement *Movement

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		prod, err := s.products.GetForUpdate(ctx, p.ProductID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("product", p.ProductID.String())
			}
			return fmt.Errorf("lock product: %w", err)
		}

		before := Position{Stock: prod.CurrentStock, UnitCost: prod.CurrentUnitCost}
		unitCost := p.UnitCost
		if p.AtCurrentCost {
			unitCost = before.UnitCost
		}
		after, value, err := ApplyEntry(before, p.Quantity, unitCost)
		if err != nil {
			return err
		}

		movement = s.newMovement(TypeEntry, p.ProductID, p.Date, p.Quantity, unitCost, value, before, after)
		movement.ReasonCode = p.ReasonCode
		movement.DocumentReference = p.DocumentReference
		movement.RecorderID = p.RecorderID
		movement.RecorderType = p.RecorderType

		if err := s.ledger.Create(ctx, []*Movement{movement}); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}
		if err := s.products.UpdatePosition(ctx, p.ProductID, after.Stock, after.UnitCost); err != nil {
			return fmt.Errorf("update position: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock entry recorded",
		"product_id", p.ProductID,
		"quantity", p.Quantity,
		"unit_cost", p.UnitCost,
	)
	return movement, nil
}

// RegisterExit records a stock exit at the current weighted-average cost.
func (s *Service) RegisterExit(ctx context.Context, p ExitParams) (*Movement, error) {
	var movement *Movement

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		prod, err := s.products.GetForUpdate(ctx, p.ProductID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("product", p.ProductID.String())
			}
			return fmt.Errorf("lock product: %w", err)
		}

		before := Position{Stock: prod.CurrentStock, UnitCost: prod.CurrentUnitCost}
		after, value, err := ApplyExit(before, p.Quantity, p.AllowBackorder)
		if err != nil {
			// ApplyExit works on the bare position and cannot name the product.
			if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeInsufficientStock {
				return appErr.WithDetail("product_id", p.ProductID.String())
			}
			return err
		}

		movement = s.newMovement(TypeExit, p.ProductID, p.Date, p.Quantity, before.UnitCost, value, before, after)
		movement.ReasonCode = p.ReasonCode
		movement.DocumentReference = p.DocumentReference
		movement.RecorderID = p.RecorderID
		movement.RecorderType = p.RecorderType

		if err := s.ledger.Create(ctx, []*Movement{movement}); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}
		if err := s.products.UpdatePosition(ctx, p.ProductID, after.Stock, after.UnitCost); err != nil {
			return fmt.Errorf("update position: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock exit recorded",
		"product_id", p.ProductID,
		"quantity", p.Quantity,
		"value", movement.ValueMovement,
	)
	return movement, nil
}

// History returns a product's kardex for the period, ordered chronologically.
func (s *Service) History(ctx context.Context, productID id.ID, period Period) ([]*Movement, error) {
	exists, err := s.products.Exists(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return s.ledger.ListByProduct(ctx, productID, period)
}

// RebuildPosition replays the full movement history and rewrites the product's
// stored position with the result. Used to repair positions after a manual
// data fix; under normal operation it is a no-op.
func (s *Service) RebuildPosition(ctx context.Context, productID id.ID) (Position, error) {
	var pos Position

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.products.GetForUpdate(ctx, productID); err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("product", productID.String())
			}
			return fmt.Errorf("lock product: %w", err)
		}

		movements, err := s.ledger.ListByProduct(ctx, productID, Period{})
		if err != nil {
			return fmt.Errorf("load movements: %w", err)
		}

		pos, err = Replay(movements)
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}

		return s.products.UpdatePosition(ctx, productID, pos.Stock, pos.UnitCost)
	})
	if err != nil {
		return Position{}, err
	}

	logger.Info(ctx, "position rebuilt",
		"product_id", productID,
		"stock", pos.Stock,
		"unit_cost", pos.UnitCost,
	)
	return pos, nil
}

func (s *Service) newMovement(
	mt MovementType,
	productID id.ID,
	date time.Time,
	quantity types.Quantity,
	unitCost types.Money,
	value types.Money,
	before, after Position,
) *Movement {
	return &Movement{
		ID:            id.New(),
		ProductID:     productID,
		Date:          date,
		Type:          mt,
		Quantity:      quantity,
		UnitCost:      unitCost,
		StockBefore:   before.Stock,
		StockAfter:    after.Stock,
		ValueMovement: value,
		CreatedAt:     time.Now().UTC(),
	}
}
