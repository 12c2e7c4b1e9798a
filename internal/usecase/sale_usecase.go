package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
)

// SaleUseCase handles dental product sales. Creating a sale decrements
// stock for every line item inside one transaction.
type SaleUseCase struct {
	txManager   TransactionManager
	productRepo ProductRepository
	saleRepo    SaleRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	retrier     Retrier
}

// NewSaleUseCase creates a new SaleUseCase.
func NewSaleUseCase(
	txManager TransactionManager,
	productRepo ProductRepository,
	saleRepo SaleRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *SaleUseCase {
	return &SaleUseCase{
		txManager:   txManager,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
	}
}

// WithRetrier enables retry on transient storage failures.
func (uc *SaleUseCase) WithRetrier(retrier Retrier) *SaleUseCase {
	uc.retrier = retrier
	return uc
}

// SaleItemInput is one line of a sale request.
type SaleItemInput struct {
	ProductID string
	Quantity  int64
	SalePrice decimal.Decimal
}

// CreateSaleInput represents input for creating a sale.
type CreateSaleInput struct {
	Day         time.Time
	ChartNumber string
	PatientName string
	Items       []SaleItemInput
	ActorID     string
}

// CreateSale records a sale and decrements stock for each line item.
// Product rows are locked in sorted-ID order; any insufficient line
// aborts the whole sale.
func (uc *SaleUseCase) CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Sale, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrSaleNoItems
	}

	if input.Day.IsZero() {
		return nil, domain.ErrMissingDate
	}

	now := time.Now().UTC()

	sale := &domain.Sale{
		ID:          uc.idGen.Generate(),
		SoldAt:      domain.ClinicDay(input.Day),
		ChartNumber: input.ChartNumber,
		PatientName: input.PatientName,
		CreatedAt:   now,
	}

	for _, item := range input.Items {
		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			SalePrice: item.SalePrice,
		})
	}

	sale.TotalAmount = sale.ComputeTotal()

	if err := sale.Validate(); err != nil {
		return nil, err
	}

	// Lock products in sorted order (deadlock prevention).
	productIDs := collectUniqueProductIDs(sale.Items)
	sort.Strings(productIDs)

	run := func() error {
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

			newStock, err := product.ApplyDelta(-item.Quantity)
			if err != nil {
				return err
			}

			if err := uc.productRepo.UpdateStock(ctx, tx, product.ID, newStock, now); err != nil {
				return err
			}

			product.Stock = newStock
		}

		if err := uc.saleRepo.Create(ctx, tx, sale); err != nil {
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

	uc.audit(ctx, input.ActorID, domain.AuditActionSaleCreate, sale)

	return sale, nil
}

// GetSale retrieves a sale by ID.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	return uc.saleRepo.GetByID(ctx, id)
}

// ListDay lists sales of one clinic-local day.
func (uc *SaleUseCase) ListDay(ctx context.Context, day time.Time) ([]*domain.Sale, error) {
	if day.IsZero() {
		return nil, domain.ErrMissingDate
	}

	start, end := domain.DayWindow(day)

	return uc.saleRepo.ListByRange(ctx, start, end)
}

func (uc *SaleUseCase) audit(ctx context.Context, actorID string, action domain.AuditAction, sale *domain.Sale) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		UserID:       actorID,
		Action:       string(action),
		ResourceType: "sale",
		ResourceID:   sale.ID,
		AfterState:   domain.MarshalState(sale),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}

func collectUniqueProductIDs(items []domain.SaleItem) []string {
	seen := make(map[string]bool)

	var ids []string
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	return ids
}
