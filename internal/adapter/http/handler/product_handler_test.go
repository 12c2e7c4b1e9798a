package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/adapter/http/dto"
	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
)

type productServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateProductInput) (*domain.Product, error)
	getFn    func(ctx context.Context, id string) (*domain.Product, error)
	updateFn func(ctx context.Context, input usecase.UpdateProductInput) (*domain.Product, error)
	listFn   func(ctx context.Context, input usecase.ListProductsInput) ([]*domain.Product, error)
}

func (s *productServiceStub) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *productServiceStub) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *productServiceStub) UpdateProduct(ctx context.Context, input usecase.UpdateProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, input)
}

func (s *productServiceStub) ListProducts(ctx context.Context, input usecase.ListProductsInput) ([]*domain.Product, error) {
	return s.listFn(ctx, input)
}

type stockServiceStub struct {
	inFn   func(ctx context.Context, input usecase.StockInInput) (*domain.InventoryMovement, error)
	outFn  func(ctx context.Context, input usecase.StockOutInput) (*domain.InventoryMovement, error)
	listFn func(ctx context.Context, productID string, limit, offset int) ([]*domain.InventoryMovement, error)
}

func (s *stockServiceStub) StockIn(ctx context.Context, input usecase.StockInInput) (*domain.InventoryMovement, error) {
	return s.inFn(ctx, input)
}

func (s *stockServiceStub) StockOut(ctx context.Context, input usecase.StockOutInput) (*domain.InventoryMovement, error) {
	return s.outFn(ctx, input)
}

func (s *stockServiceStub) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*domain.InventoryMovement, error) {
	return s.listFn(ctx, productID, limit, offset)
}

func newProductRouter(h *ProductHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/products", h.Create)
	r.Get("/products/{id}", h.Get)
	r.Post("/products/{id}/stock-in", h.StockIn)
	r.Post("/products/{id}/stock-out", h.StockOut)
	r.Get("/products/{id}/movements", h.Movements)
	return r
}

func TestProductHandler_StockIn(t *testing.T) {
	var captured usecase.StockInInput
	handler := NewProductHandler(&productServiceStub{}, &stockServiceStub{
		inFn: func(ctx context.Context, input usecase.StockInInput) (*domain.InventoryMovement, error) {
			captured = input
			return &domain.InventoryMovement{
				ID:        "m1",
				ProductID: input.ProductID,
				Type:      domain.MovementIn,
				Quantity:  input.Quantity,
			}, nil
		},
	})

	unitCost := decimal.NewFromInt(4500)
	body, _ := json.Marshal(dto.StockInRequest{Quantity: 10, UnitCost: &unitCost})

	req := httptest.NewRequest(http.MethodPost, "/products/p1/stock-in", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	newProductRouter(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.ProductID != "p1" || captured.Quantity != 10 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
}

func TestProductHandler_StockOut_InsufficientStock(t *testing.T) {
	handler := NewProductHandler(&productServiceStub{}, &stockServiceStub{
		outFn: func(ctx context.Context, input usecase.StockOutInput) (*domain.InventoryMovement, error) {
			return nil, domain.ErrInsufficientStock
		},
	})

	body, _ := json.Marshal(dto.StockOutRequest{Quantity: 99, Reason: "discard"})

	req := httptest.NewRequest(http.MethodPost, "/products/p1/stock-out", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	newProductRouter(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProductHandler_StockOut_PatientUseContext(t *testing.T) {
	var captured usecase.StockOutInput
	handler := NewProductHandler(&productServiceStub{}, &stockServiceStub{
		outFn: func(ctx context.Context, input usecase.StockOutInput) (*domain.InventoryMovement, error) {
			captured = input
			out := input.Out
			return &domain.InventoryMovement{
				ID:        "m1",
				ProductID: input.ProductID,
				Type:      domain.MovementOut,
				Quantity:  input.Quantity,
				Out:       &out,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.StockOutRequest{
		Quantity:    2,
		Reason:      "patient_use",
		ChartNumber: "C-1001",
		PatientName: "Kim",
		Doctor:      "Dr. Lee",
	})

	req := httptest.NewRequest(http.MethodPost, "/products/p1/stock-out", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	newProductRouter(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Out.Reason != domain.OutPatientUse || captured.Out.ChartNumber != "C-1001" {
		t.Fatalf("expected out context to pass through, got %+v", captured.Out)
	}

	var resp dto.MovementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Reason != "patient_use" || resp.Doctor != "Dr. Lee" {
		t.Errorf("expected out context in response, got %+v", resp)
	}
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	handler := NewProductHandler(&productServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}, &stockServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/products/ghost", nil)
	rec := httptest.NewRecorder()

	newProductRouter(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
