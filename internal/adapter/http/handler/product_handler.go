package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/onul/clinicdesk/internal/adapter/http/dto"
	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/infrastructure/metrics"
	"github.com/onul/clinicdesk/internal/usecase"
)

// ProductService defines the behavior needed by ProductHandler.
type ProductService interface {
	CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, input usecase.UpdateProductInput) (*domain.Product, error)
	ListProducts(ctx context.Context, input usecase.ListProductsInput) ([]*domain.Product, error)
}

// StockService defines the stock movement behavior needed by ProductHandler.
type StockService interface {
	StockIn(ctx context.Context, input usecase.StockInInput) (*domain.InventoryMovement, error)
	StockOut(ctx context.Context, input usecase.StockOutInput) (*domain.InventoryMovement, error)
	ListMovements(ctx context.Context, productID string, limit, offset int) ([]*domain.InventoryMovement, error)
}

// ProductHandler handles product catalogue and stock movement requests.
type ProductHandler struct {
	productUC ProductService
	stockUC   StockService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productUC ProductService, stockUC StockService) *ProductHandler {
	return &ProductHandler{
		productUC: productUC,
		stockUC:   stockUC,
	}
}

// Create creates a new product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	product, err := h.productUC.CreateProduct(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create product", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ProductFromDomain(product))
}

// Get retrieves a product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing product ID", "")
		return
	}

	product, err := h.productUC.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get product", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductFromDomain(product))
}

// Update edits a product's catalogue fields.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing product ID", "")
		return
	}

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	product, err := h.productUC.UpdateProduct(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update product", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductFromDomain(product))
}

// List lists products, optionally filtered by line.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	products, err := h.productUC.ListProducts(r.Context(), usecase.ListProductsInput{
		Line:   domain.ProductLine(r.URL.Query().Get("line")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list products", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListProductsResponse{
		Products: dto.ProductsFromDomain(products),
		Total:    int64(len(products)),
	})
}

// StockIn records an inbound movement for a product.
func (h *ProductHandler) StockIn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing product ID", "")
		return
	}

	var req dto.StockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	day, err := parseOptionalDate(req.Date)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid date", err.Error())
		return
	}

	movement, err := h.stockUC.StockIn(r.Context(), req.ToUseCaseInput(id, day, actorID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record stock in", err.Error())
		return
	}

	metrics.StockMovements.WithLabelValues("in").Inc()

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// StockOut records an outbound movement for a product.
func (h *ProductHandler) StockOut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing product ID", "")
		return
	}

	var req dto.StockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	day, err := parseOptionalDate(req.Date)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid date", err.Error())
		return
	}

	movement, err := h.stockUC.StockOut(r.Context(), req.ToUseCaseInput(id, day, actorID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record stock out", err.Error())
		return
	}

	metrics.StockMovements.WithLabelValues("out").Inc()

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// Movements lists a product's movement log.
func (h *ProductHandler) Movements(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing product ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	movements, err := h.stockUC.ListMovements(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(movements))
}

// parseOptionalDate parses a day that may be absent from the body.
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return domain.ParseDay(s)
}
