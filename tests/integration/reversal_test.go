package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/adapter/repository/postgres"
	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
	"github.com/onul/clinicdesk/tests/testutil"
)

func TestDeleteSaleRestoresStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()

	saleUC := usecase.NewSaleUseCase(txManager, productRepo, saleRepo, nil, idGen)
	activityUC := usecase.NewActivityUseCase(txManager, productRepo, movementRepo, saleRepo, nil)

	p1 := testDB.CreateTestProduct(ctx, domain.LineDental, "toothpaste", decimal.NewFromInt(5000), 10)
	p2 := testDB.CreateTestProduct(ctx, domain.LineDental, "interdental brush", decimal.NewFromInt(3000), 6)

	sale, err := saleUC.CreateSale(ctx, usecase.CreateSaleInput{
		ChartNumber: "C-2001",
		PatientName: "Park",
		Items: []usecase.SaleItemInput{
			{ProductID: p1.ID, Quantity: 3, SalePrice: decimal.NewFromInt(5000)},
			{ProductID: p2.ID, Quantity: 2, SalePrice: decimal.NewFromInt(3000)},
		},
	})
	if err != nil {
		t.Fatalf("failed to create sale: %v", err)
	}

	assertStock := func(id string, want int64) {
		t.Helper()
		product, err := productRepo.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("failed to reload product: %v", err)
		}
		if product.Stock != want {
			t.Fatalf("expected stock %d, got %d", want, product.Stock)
		}
	}

	assertStock(p1.ID, 7)
	assertStock(p2.ID, 4)

	if err := activityUC.DeleteActivity(ctx, sale.ID, "admin-1"); err != nil {
		t.Fatalf("failed to delete sale: %v", err)
	}

	assertStock(p1.ID, 10)
	assertStock(p2.ID, 6)

	if _, err := saleRepo.GetByID(ctx, sale.ID); err != domain.ErrSaleNotFound {
		t.Fatalf("expected sale to be gone, got %v", err)
	}
}

func TestDeleteMovementInvertsEffect(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()

	stockUC := usecase.NewStockUseCase(txManager, productRepo, movementRepo, nil, idGen)
	activityUC := usecase.NewActivityUseCase(txManager, productRepo, movementRepo, saleRepo, nil)

	product := testDB.CreateTestProduct(ctx, domain.LineImplant, "cover screw", decimal.NewFromInt(20000), 0)

	in, err := stockUC.StockIn(ctx, usecase.StockInInput{ProductID: product.ID, Quantity: 10})
	if err != nil {
		t.Fatalf("stock in failed: %v", err)
	}

	out, err := stockUC.StockOut(ctx, usecase.StockOutInput{
		ProductID: product.ID,
		Quantity:  4,
		Out:       domain.OutContext{Reason: domain.OutOther},
	})
	if err != nil {
		t.Fatalf("stock out failed: %v", err)
	}

	// Deleting the outbound movement puts its quantity back.
	if err := activityUC.DeleteActivity(ctx, out.ID, "admin-1"); err != nil {
		t.Fatalf("failed to delete outbound movement: %v", err)
	}

	got, err := productRepo.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	if got.Stock != 10 {
		t.Fatalf("expected stock 10 after reversal, got %d", got.Stock)
	}

	// Deleting the inbound movement would leave stock at zero.
	if err := activityUC.DeleteActivity(ctx, in.ID, "admin-1"); err != nil {
		t.Fatalf("failed to delete inbound movement: %v", err)
	}

	got, err = productRepo.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	if got.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", got.Stock)
	}
}

func TestDeleteInboundBlockedWhenStockSpent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()

	stockUC := usecase.NewStockUseCase(txManager, productRepo, movementRepo, nil, idGen)
	activityUC := usecase.NewActivityUseCase(txManager, productRepo, movementRepo, saleRepo, nil)

	product := testDB.CreateTestProduct(ctx, domain.LineImplant, "healing abutment", decimal.NewFromInt(15000), 0)

	in, err := stockUC.StockIn(ctx, usecase.StockInInput{ProductID: product.ID, Quantity: 10})
	if err != nil {
		t.Fatalf("stock in failed: %v", err)
	}

	if _, err := stockUC.StockOut(ctx, usecase.StockOutInput{
		ProductID: product.ID,
		Quantity:  7,
		Out:       domain.OutContext{Reason: domain.OutOther},
	}); err != nil {
		t.Fatalf("stock out failed: %v", err)
	}

	// Only 3 left; undoing the +10 would go negative.
	if err := activityUC.DeleteActivity(ctx, in.ID, "admin-1"); err != domain.ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// Movement and counter must both survive the rejected delete.
	if _, err := movementRepo.GetByID(ctx, in.ID); err != nil {
		t.Fatalf("expected inbound movement to survive, got %v", err)
	}

	got, err := productRepo.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	if got.Stock != 3 {
		t.Fatalf("expected stock 3, got %d", got.Stock)
	}
}
