package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
)

// CashRecordResponse represents a cash record in API responses.
type CashRecordResponse struct {
	ID            string           `json:"id"`
	Date          string           `json:"date"`
	Type          string           `json:"type"`
	Amount        decimal.Decimal  `json:"amount"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category,omitempty"`
	IsClosed      bool             `json:"is_closed"`
	ClosingAmount *decimal.Decimal `json:"closing_amount,omitempty"`
	ClosedAt      *time.Time       `json:"closed_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CashRecordFromDomain converts a domain cash record to a response.
func CashRecordFromDomain(rec *domain.CashRecord) *CashRecordResponse {
	return &CashRecordResponse{
		ID:            rec.ID,
		Date:          domain.FormatDay(rec.OccurredAt),
		Type:          string(rec.Type),
		Amount:        rec.Amount,
		Description:   rec.Description,
		Category:      rec.Category,
		IsClosed:      rec.IsClosed,
		ClosingAmount: rec.ClosingAmount,
		ClosedAt:      rec.ClosedAt,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

// CashRecordsFromDomain converts domain cash records to responses.
func CashRecordsFromDomain(records []*domain.CashRecord) []*CashRecordResponse {
	result := make([]*CashRecordResponse, len(records))
	for i, rec := range records {
		result[i] = CashRecordFromDomain(rec)
	}
	return result
}

// CashDayResponse is one day's ledger view.
type CashDayResponse struct {
	Date           string                `json:"date"`
	OpeningBalance decimal.Decimal       `json:"opening_balance"`
	Records        []*CashRecordResponse `json:"records"`
}

// OpeningBalanceResponse carries the balance carried into a day.
type OpeningBalanceResponse struct {
	Date           string          `json:"date"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// CloseDayResponse reports the closing procedure's effect.
type CloseDayResponse struct {
	Date          string          `json:"date"`
	ClosingAmount decimal.Decimal `json:"closing_amount"`
	ClosedRecords int64           `json:"closed_records"`
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID            string          `json:"id"`
	Line          string          `json:"line"`
	Name          string          `json:"name"`
	Specification string          `json:"specification,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Stock         int64           `json:"stock"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductFromDomain converts a domain product to a response.
func ProductFromDomain(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		Line:          string(p.Line),
		Name:          p.Name,
		Specification: p.Specification,
		Price:         p.Price,
		Stock:         p.Stock,
		Version:       p.Version,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ProductsFromDomain converts domain products to responses.
func ProductsFromDomain(products []*domain.Product) []*ProductResponse {
	result := make([]*ProductResponse, len(products))
	for i, p := range products {
		result[i] = ProductFromDomain(p)
	}
	return result
}

// ListProductsResponse wraps a product listing.
type ListProductsResponse struct {
	Products []*ProductResponse `json:"products"`
	Total    int64              `json:"total"`
}

// MovementResponse represents an inventory movement in API responses.
type MovementResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	Type        string           `json:"type"`
	Quantity    int64            `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Reason      string           `json:"reason,omitempty"`
	ChartNumber string           `json:"chart_number,omitempty"`
	PatientName string           `json:"patient_name,omitempty"`
	Doctor      string           `json:"doctor,omitempty"`
	Date        string           `json:"date"`
	CreatedAt   time.Time        `json:"created_at"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.InventoryMovement) *MovementResponse {
	resp := &MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		Notes:     m.Notes,
		Date:      domain.FormatDay(m.OccurredAt),
		CreatedAt: m.CreatedAt,
	}
	if m.Out != nil {
		resp.Reason = string(m.Out.Reason)
		resp.ChartNumber = m.Out.ChartNumber
		resp.PatientName = m.Out.PatientName
		resp.Doctor = m.Out.Doctor
	}
	return resp
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.InventoryMovement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// SaleItemResponse is one line of a sale in API responses.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// SaleResponse represents a sale in API responses.
type SaleResponse struct {
	ID          string              `json:"id"`
	Date        string              `json:"date"`
	ChartNumber string              `json:"chart_number"`
	PatientName string              `json:"patient_name"`
	Items       []*SaleItemResponse `json:"items"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	CreatedAt   time.Time           `json:"created_at"`
}

// SaleFromDomain converts a domain sale to a response.
func SaleFromDomain(s *domain.Sale) *SaleResponse {
	items := make([]*SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = &SaleItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			SalePrice: item.SalePrice,
		}
	}
	return &SaleResponse{
		ID:          s.ID,
		Date:        domain.FormatDay(s.SoldAt),
		ChartNumber: s.ChartNumber,
		PatientName: s.PatientName,
		Items:       items,
		TotalAmount: s.TotalAmount,
		CreatedAt:   s.CreatedAt,
	}
}

// SalesFromDomain converts domain sales to responses.
func SalesFromDomain(sales []*domain.Sale) []*SaleResponse {
	result := make([]*SaleResponse, len(sales))
	for i, s := range sales {
		result[i] = SaleFromDomain(s)
	}
	return result
}

// TreatmentResponse represents a treatment in API responses.
type TreatmentResponse struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	ChartNumber  string          `json:"chart_number"`
	PatientName  string          `json:"patient_name"`
	Doctor       string          `json:"doctor,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
	CashRecordID string          `json:"cash_record_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TreatmentFromDomain converts a domain treatment to a response.
func TreatmentFromDomain(t *domain.Treatment) *TreatmentResponse {
	return &TreatmentResponse{
		ID:           t.ID,
		Date:         domain.FormatDay(t.TreatedAt),
		ChartNumber:  t.ChartNumber,
		PatientName:  t.PatientName,
		Doctor:       t.Doctor,
		Amount:       t.Amount,
		Description:  t.Description,
		CashRecordID: t.CashRecordID,
		CreatedAt:    t.CreatedAt,
	}
}

// TreatmentsFromDomain converts domain treatments to responses.
func TreatmentsFromDomain(treatments []*domain.Treatment) []*TreatmentResponse {
	result := make([]*TreatmentResponse, len(treatments))
	for i, t := range treatments {
		result[i] = TreatmentFromDomain(t)
	}
	return result
}

// DiscrepancyResponse is one drifted product in a consistency report.
type DiscrepancyResponse struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	RecordedStock int64  `json:"recorded_stock"`
	LedgerStock   int64  `json:"ledger_stock"`
}

// ConsistencyReportResponse represents an inventory check result.
type ConsistencyReportResponse struct {
	TotalProducts int                    `json:"total_products"`
	Consistent    bool                   `json:"consistent"`
	Discrepancies []*DiscrepancyResponse `json:"discrepancies,omitempty"`
	CheckedAt     time.Time              `json:"checked_at"`
}

// ConsistencyReportFromUseCase converts a use case report to a response.
func ConsistencyReportFromUseCase(r *usecase.ConsistencyReport) *ConsistencyReportResponse {
	resp := &ConsistencyReportResponse{
		TotalProducts: r.TotalProducts,
		Consistent:    r.Consistent,
		CheckedAt:     r.CheckedAt,
	}
	for _, d := range r.Discrepancies {
		resp.Discrepancies = append(resp.Discrepancies, &DiscrepancyResponse{
			ProductID:     d.ProductID,
			ProductName:   d.ProductName,
			RecordedStock: d.RecordedStock,
			LedgerStock:   d.LedgerStock,
		})
	}
	return resp
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse carries a token and its user.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DeletedResponse acknowledges a successful delete.
type DeletedResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}
