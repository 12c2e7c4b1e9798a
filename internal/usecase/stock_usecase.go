package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
)

// StockUseCase handles inventory movements. Stock mutation and log
// append are one database transaction; the product row is locked for
// the duration so concurrent movements on the same product serialize.
type StockUseCase struct {
	txManager    TransactionManager
	productRepo  ProductRepository
	movementRepo MovementRepository
	auditRepo    AuditRepository
	idGen        IDGenerator
	retrier      Retrier
}

// NewStockUseCase creates a new StockUseCase.
func NewStockUseCase(
	txManager TransactionManager,
	productRepo ProductRepository,
	movementRepo MovementRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *StockUseCase {
	return &StockUseCase{
		txManager:    txManager,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		auditRepo:    auditRepo,
		idGen:        idGen,
	}
}

// WithRetrier enables retry on transient storage failures.
func (uc *StockUseCase) WithRetrier(retrier Retrier) *StockUseCase {
	uc.retrier = retrier
	return uc
}

// StockInInput represents input for an inbound movement.
type StockInInput struct {
	ProductID string
	Quantity  int64
	UnitCost  *decimal.Decimal
	Notes     string
	Day       time.Time
	ActorID   string
}

// StockIn increases the product's stock and appends the movement row.
func (uc *StockUseCase) StockIn(ctx context.Context, input StockInInput) (*domain.InventoryMovement, error) {
	movement := &domain.InventoryMovement{
		ProductID: input.ProductID,
		Type:      domain.MovementIn,
		Quantity:  input.Quantity,
		UnitCost:  input.UnitCost,
		Notes:     input.Notes,
	}

	return uc.apply(ctx, movement, input.Day, input.ActorID, domain.AuditActionStockIn)
}

// StockOutInput represents input for an outbound movement.
type StockOutInput struct {
	ProductID string
	Quantity  int64
	Out       domain.OutContext
	Notes     string
	Day       time.Time
	ActorID   string
}

// StockOut decreases the product's stock and appends the movement
// row. Fails with ErrInsufficientStock when quantity exceeds stock.
func (uc *StockUseCase) StockOut(ctx context.Context, input StockOutInput) (*domain.InventoryMovement, error) {
	out := input.Out

	movement := &domain.InventoryMovement{
		ProductID: input.ProductID,
		Type:      domain.MovementOut,
		Quantity:  input.Quantity,
		Notes:     input.Notes,
		Out:       &out,
	}

	return uc.apply(ctx, movement, input.Day, input.ActorID, domain.AuditActionStockOut)
}

// apply runs one movement: lock product, validate the resulting
// stock, write the movement and the new stock, commit. Either both
// rows land or neither does.
func (uc *StockUseCase) apply(ctx context.Context, movement *domain.InventoryMovement, day time.Time, actorID string, action domain.AuditAction) (*domain.InventoryMovement, error) {
	if err := movement.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	movement.ID = uc.idGen.Generate()
	movement.CreatedAt = now
	movement.OccurredAt = now
	if !day.IsZero() {
		movement.OccurredAt = domain.ClinicDay(day)
	}

	run := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		product, err := uc.productRepo.GetByIDForUpdate(ctx, tx, movement.ProductID)
		if err != nil {
			return err
		}

		newStock, err := product.ApplyDelta(movement.StockDelta())
		if err != nil {
			return err
		}

		if err := uc.movementRepo.Create(ctx, tx, movement); err != nil {
			return err
		}

		if err := uc.productRepo.UpdateStock(ctx, tx, product.ID, newStock, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, run)
	} else {
		err = run()
	}

	if err != nil {
		return nil, err
	}

	uc.auditMovement(ctx, actorID, action, movement)

	return movement, nil
}

// ListMovements lists a product's movement log.
func (uc *StockUseCase) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*domain.InventoryMovement, error) {
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.movementRepo.ListByProduct(ctx, productID, limit, offset)
}

func (uc *StockUseCase) auditMovement(ctx context.Context, actorID string, action domain.AuditAction, movement *domain.InventoryMovement) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		UserID:       actorID,
		Action:       string(action),
		ResourceType: "movement",
		ResourceID:   movement.ID,
		AfterState:   domain.MarshalState(movement),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
