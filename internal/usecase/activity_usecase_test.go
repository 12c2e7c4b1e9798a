package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
	"github.com/onul/clinicdesk/internal/usecase/mocks"
)

type reversalFixture struct {
	productRepo  *mocks.MockProductRepository
	movementRepo *mocks.MockMovementRepository
	saleRepo     *mocks.MockSaleRepository
	auditRepo    *mocks.MockAuditRepository
	stock        *usecase.StockUseCase
	sale         *usecase.SaleUseCase
	activity     *usecase.ActivityUseCase
}

func newReversalFixture() *reversalFixture {
	f := &reversalFixture{
		productRepo:  mocks.NewMockProductRepository(),
		movementRepo: mocks.NewMockMovementRepository(),
		saleRepo:     mocks.NewMockSaleRepository(),
		auditRepo:    mocks.NewMockAuditRepository(),
	}

	txManager := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	f.stock = usecase.NewStockUseCase(txManager, f.productRepo, f.movementRepo, f.auditRepo, idGen)
	f.sale = usecase.NewSaleUseCase(txManager, f.productRepo, f.saleRepo, f.auditRepo, idGen)
	f.activity = usecase.NewActivityUseCase(txManager, f.productRepo, f.movementRepo, f.saleRepo, f.auditRepo)

	return f
}

func TestActivityUseCase_DeleteOutboundMovement_RestoresStock(t *testing.T) {
	f := newReversalFixture()
	seedProduct(f.productRepo, "p1", domain.LineImplant, 0)

	if _, err := f.stock.StockIn(context.Background(), usecase.StockInInput{ProductID: "p1", Quantity: 10}); err != nil {
		t.Fatalf("stock in: %v", err)
	}

	out, err := f.stock.StockOut(context.Background(), usecase.StockOutInput{
		ProductID: "p1",
		Quantity:  4,
		Out:       domain.OutContext{Reason: domain.OutDiscard},
	})
	if err != nil {
		t.Fatalf("stock out: %v", err)
	}

	product, _ := f.productRepo.GetByID(context.Background(), "p1")
	if product.Stock != 6 {
		t.Fatalf("expected stock 6 before reversal, got %d", product.Stock)
	}

	if err := f.activity.DeleteActivity(context.Background(), out.ID, "staff-1"); err != nil {
		t.Fatalf("delete activity: %v", err)
	}

	product, _ = f.productRepo.GetByID(context.Background(), "p1")
	if product.Stock != 10 {
		t.Errorf("expected stock restored to 10, got %d", product.Stock)
	}

	if _, err := f.movementRepo.GetByID(context.Background(), out.ID); !errors.Is(err, domain.ErrMovementNotFound) {
		t.Error("expected the movement row to be deleted")
	}
}

func TestActivityUseCase_DeleteInboundMovement_SubtractsStock(t *testing.T) {
	f := newReversalFixture()
	seedProduct(f.productRepo, "p1", domain.LineImplant, 0)

	in, err := f.stock.StockIn(context.Background(), usecase.StockInInput{ProductID: "p1", Quantity: 10})
	if err != nil {
		t.Fatalf("stock in: %v", err)
	}

	if err := f.activity.DeleteActivity(context.Background(), in.ID, "staff-1"); err != nil {
		t.Fatalf("delete activity: %v", err)
	}

	product, _ := f.productRepo.GetByID(context.Background(), "p1")
	if product.Stock != 0 {
		t.Errorf("expected stock back to 0, got %d", product.Stock)
	}
}

func TestActivityUseCase_DeleteInboundMovement_WouldGoNegative(t *testing.T) {
	f := newReversalFixture()
	seedProduct(f.productRepo, "p1", domain.LineImplant, 0)

	in, err := f.stock.StockIn(context.Background(), usecase.StockInInput{ProductID: "p1", Quantity: 10})
	if err != nil {
		t.Fatalf("stock in: %v", err)
	}

	// Consume part of the inbound batch; reversing the inbound row
	// would now drive stock negative.
	if _, err := f.stock.StockOut(context.Background(), usecase.StockOutInput{
		ProductID: "p1",
		Quantity:  7,
		Out:       domain.OutContext{Reason: domain.OutDiscard},
	}); err != nil {
		t.Fatalf("stock out: %v", err)
	}

	err = f.activity.DeleteActivity(context.Background(), in.ID, "staff-1")
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	if _, err := f.movementRepo.GetByID(context.Background(), in.ID); err != nil {
		t.Error("rejected reversal must leave the movement intact")
	}

	product, _ := f.productRepo.GetByID(context.Background(), "p1")
	if product.Stock != 3 {
		t.Errorf("rejected reversal must leave stock untouched, got %d", product.Stock)
	}
}

func TestActivityUseCase_DeleteSale_RestoresEveryLine(t *testing.T) {
	f := newReversalFixture()
	seedProduct(f.productRepo, "p1", domain.LineDental, 10)
	seedProduct(f.productRepo, "p2", domain.LineDental, 5)

	sale, err := f.sale.CreateSale(context.Background(), usecase.CreateSaleInput{
		Day:         day("2024-03-11"),
		ChartNumber: "C-1001",
		PatientName: "Kim",
		Items: []usecase.SaleItemInput{
			{ProductID: "p1", Quantity: 3, SalePrice: decimal.NewFromInt(15000)},
			{ProductID: "p2", Quantity: 2, SalePrice: decimal.NewFromInt(40000)},
		},
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	if err := f.activity.DeleteActivity(context.Background(), sale.ID, "staff-1"); err != nil {
		t.Fatalf("delete activity: %v", err)
	}

	p1, _ := f.productRepo.GetByID(context.Background(), "p1")
	p2, _ := f.productRepo.GetByID(context.Background(), "p2")
	if p1.Stock != 10 || p2.Stock != 5 {
		t.Errorf("expected stocks restored to 10 and 5, got %d and %d", p1.Stock, p2.Stock)
	}

	if _, err := f.saleRepo.GetByID(context.Background(), sale.ID); !errors.Is(err, domain.ErrSaleNotFound) {
		t.Error("expected the sale to be deleted")
	}
}

func TestActivityUseCase_DeleteActivity_Unknown(t *testing.T) {
	f := newReversalFixture()

	err := f.activity.DeleteActivity(context.Background(), "ghost", "staff-1")
	if !errors.Is(err, domain.ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestActivityUseCase_DeleteSale_DeleteFailureKeepsSale(t *testing.T) {
	f := newReversalFixture()
	seedProduct(f.productRepo, "p1", domain.LineDental, 10)

	sale, err := f.sale.CreateSale(context.Background(), usecase.CreateSaleInput{
		Day:         day("2024-03-11"),
		ChartNumber: "C-1001",
		PatientName: "Kim",
		Items:       []usecase.SaleItemInput{{ProductID: "p1", Quantity: 3, SalePrice: decimal.NewFromInt(15000)}},
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	writeFailed := errors.New("stock write failed")
	f.saleRepo.DeleteTxFunc = func(ctx context.Context, tx usecase.Transaction, id string) error {
		return writeFailed
	}

	if err := f.activity.DeleteActivity(context.Background(), sale.ID, "staff-1"); !errors.Is(err, writeFailed) {
		t.Fatalf("expected the delete failure to surface, got %v", err)
	}

	f.saleRepo.DeleteTxFunc = nil
	if _, err := f.saleRepo.GetByID(context.Background(), sale.ID); err != nil {
		t.Error("failed reversal must leave the sale intact")
	}
}

func TestActivityUseCase_DeleteActivity_Audited(t *testing.T) {
	f := newReversalFixture()
	seedProduct(f.productRepo, "p1", domain.LineImplant, 0)

	in, err := f.stock.StockIn(context.Background(), usecase.StockInInput{ProductID: "p1", Quantity: 10})
	if err != nil {
		t.Fatalf("stock in: %v", err)
	}

	before := len(f.auditRepo.Logs)
	if err := f.activity.DeleteActivity(context.Background(), in.ID, "staff-1"); err != nil {
		t.Fatalf("delete activity: %v", err)
	}

	if len(f.auditRepo.Logs) != before+1 {
		t.Fatalf("expected one audit row for the deletion")
	}

	last := f.auditRepo.Logs[len(f.auditRepo.Logs)-1]
	if last.Action != string(domain.AuditActionActivityDelete) {
		t.Errorf("expected activity delete action, got %s", last.Action)
	}
	if last.UserID != "staff-1" {
		t.Errorf("expected actor staff-1, got %s", last.UserID)
	}
}
