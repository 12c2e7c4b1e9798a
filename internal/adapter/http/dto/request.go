package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
)

// CreateDepositRequest represents a request to create a bank deposit record.
type CreateDepositRequest struct {
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDepositRequest) ToUseCaseInput(day time.Time, actorID string) usecase.CreateDepositInput {
	return usecase.CreateDepositInput{
		Day:         day,
		Type:        domain.CashRecordType(r.Type),
		Amount:      r.Amount,
		Description: r.Description,
		ActorID:     actorID,
	}
}

// UpdateDepositRequest represents a request to edit a bank deposit record.
type UpdateDepositRequest struct {
	Type        *string          `json:"type,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateDepositRequest) ToUseCaseInput(id, actorID string) usecase.UpdateDepositInput {
	input := usecase.UpdateDepositInput{
		ID:          id,
		Amount:      r.Amount,
		Description: r.Description,
		ActorID:     actorID,
	}
	if r.Type != nil {
		t := domain.CashRecordType(*r.Type)
		input.Type = &t
	}
	return input
}

// CloseDayRequest represents a request to run the closing procedure.
type CloseDayRequest struct {
	Date          string           `json:"date"`
	ClosingAmount *decimal.Decimal `json:"closing_amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CloseDayRequest) ToUseCaseInput(day time.Time, actorID string) usecase.CloseDayInput {
	return usecase.CloseDayInput{
		Day:           day,
		ClosingAmount: r.ClosingAmount,
		ActorID:       actorID,
	}
}

// CreateProductRequest represents a request to create a product.
type CreateProductRequest struct {
	Line          string          `json:"line"`
	Name          string          `json:"name"`
	Specification string          `json:"specification,omitempty"`
	Price         decimal.Decimal `json:"price"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateProductRequest) ToUseCaseInput() usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Line:          domain.ProductLine(r.Line),
		Name:          r.Name,
		Specification: r.Specification,
		Price:         r.Price,
	}
}

// UpdateProductRequest represents a request to edit product details.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Specification *string          `json:"specification,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateProductRequest) ToUseCaseInput(id string) usecase.UpdateProductInput {
	return usecase.UpdateProductInput{
		ID:            id,
		Name:          r.Name,
		Specification: r.Specification,
		Price:         r.Price,
	}
}

// StockInRequest represents a request for an inbound movement.
type StockInRequest struct {
	Quantity int64            `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes    string           `json:"notes,omitempty"`
	Date     string           `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *StockInRequest) ToUseCaseInput(productID string, day time.Time, actorID string) usecase.StockInInput {
	return usecase.StockInInput{
		ProductID: productID,
		Quantity:  r.Quantity,
		UnitCost:  r.UnitCost,
		Notes:     r.Notes,
		Day:       day,
		ActorID:   actorID,
	}
}

// StockOutRequest represents a request for an outbound movement.
type StockOutRequest struct {
	Quantity    int64  `json:"quantity"`
	Reason      string `json:"reason"`
	ChartNumber string `json:"chart_number,omitempty"`
	PatientName string `json:"patient_name,omitempty"`
	Doctor      string `json:"doctor,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Date        string `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *StockOutRequest) ToUseCaseInput(productID string, day time.Time, actorID string) usecase.StockOutInput {
	return usecase.StockOutInput{
		ProductID: productID,
		Quantity:  r.Quantity,
		Out: domain.OutContext{
			Reason:      domain.OutReason(r.Reason),
			ChartNumber: r.ChartNumber,
			PatientName: r.PatientName,
			Doctor:      r.Doctor,
		},
		Notes:   r.Notes,
		Day:     day,
		ActorID: actorID,
	}
}

// SaleItemRequest is one line of a sale request.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// CreateSaleRequest represents a request to record a sale.
type CreateSaleRequest struct {
	Date        string            `json:"date"`
	ChartNumber string            `json:"chart_number"`
	PatientName string            `json:"patient_name"`
	Items       []SaleItemRequest `json:"items"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSaleRequest) ToUseCaseInput(day time.Time, actorID string) usecase.CreateSaleInput {
	items := make([]usecase.SaleItemInput, len(r.Items))
	for i, item := range r.Items {
		items[i] = usecase.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			SalePrice: item.SalePrice,
		}
	}
	return usecase.CreateSaleInput{
		Day:         day,
		ChartNumber: r.ChartNumber,
		PatientName: r.PatientName,
		Items:       items,
		ActorID:     actorID,
	}
}

// CreateTreatmentRequest represents a request to record a treatment.
type CreateTreatmentRequest struct {
	Date        string          `json:"date"`
	ChartNumber string          `json:"chart_number"`
	PatientName string          `json:"patient_name"`
	Doctor      string          `json:"doctor,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTreatmentRequest) ToUseCaseInput(day time.Time, actorID string) usecase.CreateTreatmentInput {
	return usecase.CreateTreatmentInput{
		Day:         day,
		ChartNumber: r.ChartNumber,
		PatientName: r.PatientName,
		Doctor:      r.Doctor,
		Amount:      r.Amount,
		Description: r.Description,
		ActorID:     actorID,
	}
}

// CreateExpenseRequest represents a request to record an expense.
type CreateExpenseRequest struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput(day time.Time) usecase.CreateExpenseInput {
	return usecase.CreateExpenseInput{
		Day:         day,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest represents a request to create a user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}
