package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/onul/clinicdesk/internal/domain"
)

// ActivityUseCase deletes activity records (sales and inventory
// movements) with exact stock compensation. The compensating update
// and the row deletion share one transaction: if compensation cannot
// be applied, nothing is deleted.
type ActivityUseCase struct {
	txManager    TransactionManager
	productRepo  ProductRepository
	movementRepo MovementRepository
	saleRepo     SaleRepository
	auditRepo    AuditRepository
	retrier      Retrier
}

// NewActivityUseCase creates a new ActivityUseCase.
func NewActivityUseCase(
	txManager TransactionManager,
	productRepo ProductRepository,
	movementRepo MovementRepository,
	saleRepo SaleRepository,
	auditRepo AuditRepository,
) *ActivityUseCase {
	return &ActivityUseCase{
		txManager:    txManager,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
		auditRepo:    auditRepo,
	}
}

// WithRetrier enables retry on transient storage failures.
func (uc *ActivityUseCase) WithRetrier(retrier Retrier) *ActivityUseCase {
	uc.retrier = retrier
	return uc
}

// DeleteActivity resolves id as a sale or an inventory movement and
// undoes its stock effect before removing it.
func (uc *ActivityUseCase) DeleteActivity(ctx context.Context, id, actorID string) error {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err == nil {
		return uc.run(ctx, func() error { return uc.reverseSale(ctx, sale) },
			actorID, "sale", id, sale)
	}
	if !errors.Is(err, domain.ErrSaleNotFound) {
		return err
	}

	movement, err := uc.movementRepo.GetByID(ctx, id)
	if err == nil {
		return uc.run(ctx, func() error { return uc.reverseMovement(ctx, movement) },
			actorID, "movement", id, movement)
	}
	if !errors.Is(err, domain.ErrMovementNotFound) {
		return err
	}

	return domain.ErrActivityNotFound
}

func (uc *ActivityUseCase) run(ctx context.Context, op func() error, actorID, resourceType, id string, before any) error {
	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}

	if err != nil {
		return err
	}

	uc.audit(ctx, actorID, resourceType, id, before)

	return nil
}

// reverseSale restores every line item's stock, then deletes the sale.
func (uc *ActivityUseCase) reverseSale(ctx context.Context, sale *domain.Sale) error {
	now := time.Now().UTC()

	productIDs := collectUniqueProductIDs(sale.Items)
	sort.Strings(productIDs)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	products, err := uc.productRepo.GetByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		return err
	}

	if len(products) != len(productIDs) {
		return domain.ErrProductNotFound
	}

	productMap := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	for _, item := range sale.Items {
		product := productMap[item.ProductID]

		newStock, err := product.ApplyDelta(item.Quantity)
		if err != nil {
			return err
		}

		if err := uc.productRepo.UpdateStock(ctx, tx, product.ID, newStock, now); err != nil {
			return err
		}

		product.Stock = newStock
	}

	if err := uc.saleRepo.DeleteTx(ctx, tx, sale.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// reverseMovement applies the movement's inverse delta, then deletes
// the movement. Reversing an inbound movement that would drive stock
// negative means the log is already inconsistent; it surfaces as
// ErrInsufficientStock and the movement stays intact.
func (uc *ActivityUseCase) reverseMovement(ctx context.Context, movement *domain.InventoryMovement) error {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	product, err := uc.productRepo.GetByIDForUpdate(ctx, tx, movement.ProductID)
	if err != nil {
		return err
	}

	newStock, err := product.ApplyDelta(movement.InverseDelta())
	if err != nil {
		return err
	}

	if err := uc.productRepo.UpdateStock(ctx, tx, product.ID, newStock, now); err != nil {
		return err
	}

	if err := uc.movementRepo.DeleteTx(ctx, tx, movement.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (uc *ActivityUseCase) audit(ctx context.Context, actorID, resourceType, id string, before any) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		UserID:       actorID,
		Action:       string(domain.AuditActionActivityDelete),
		ResourceType: resourceType,
		ResourceID:   id,
		BeforeState:  domain.MarshalState(before),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
