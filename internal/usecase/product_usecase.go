package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
)

// ProductUseCase handles product catalogue operations. Stock is never
// touched here; it moves only through the stock and sale workflows.
type ProductUseCase struct {
	productRepo ProductRepository
	idGen       IDGenerator
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(productRepo ProductRepository, idGen IDGenerator) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		idGen:       idGen,
	}
}

// CreateProductInput represents input for creating a product.
type CreateProductInput struct {
	Line          domain.ProductLine
	Name          string
	Specification string
	Price         decimal.Decimal
}

// CreateProduct creates a new product with zero stock.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if !input.Line.IsValid() {
		return nil, domain.ErrInvalidName
	}

	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Price); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:            uc.idGen.Generate(),
		Line:          input.Line,
		Name:          input.Name,
		Specification: input.Specification,
		Price:         input.Price,
		Stock:         0,
		Version:       0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// UpdateProductInput represents input for editing product details.
type UpdateProductInput struct {
	ID            string
	Name          *string
	Specification *string
	Price         *decimal.Decimal
}

// UpdateProduct edits catalogue fields. Stock and line are immutable
// through this path.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, input UpdateProductInput) (*domain.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateName(*input.Name); err != nil {
			return nil, err
		}

		product.Name = *input.Name
	}

	if input.Specification != nil {
		product.Specification = *input.Specification
	}

	if input.Price != nil {
		if err := domain.ValidateAmount(*input.Price); err != nil {
			return nil, err
		}

		product.Price = *input.Price
	}

	product.UpdatedAt = time.Now().UTC()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// ListProductsInput represents input for listing products.
type ListProductsInput struct {
	Line   domain.ProductLine
	Limit  int
	Offset int
}

// ListProducts lists products, optionally filtered by line.
func (uc *ProductUseCase) ListProducts(ctx context.Context, input ListProductsInput) ([]*domain.Product, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.productRepo.List(ctx, input.Line, limit, offset)
}
