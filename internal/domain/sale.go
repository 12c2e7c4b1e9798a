package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem is one line of a dental product sale.
type SaleItem struct {
	ProductID string
	Quantity  int64
	SalePrice decimal.Decimal
}

// Sale is an over-the-counter sale of dental products. Creating a
// sale decrements stock for every item; deleting it restores every
// item's stock before the sale row disappears.
type Sale struct {
	ID          string
	SoldAt      time.Time
	ChartNumber string
	PatientName string
	Items       []SaleItem
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// ComputeTotal is the sum of quantity times sale price over all items.
func (s *Sale) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.SalePrice.Mul(decimal.NewFromInt(item.Quantity)))
	}

	return total
}

// Validate checks item shape and that the stored total matches the
// item lines.
func (s *Sale) Validate() error {
	if len(s.Items) == 0 {
		return ErrSaleNoItems
	}

	for _, item := range s.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}

		if item.SalePrice.IsNegative() {
			return ErrInvalidAmount
		}
	}

	if !s.TotalAmount.Equal(s.ComputeTotal()) {
		return ErrInvalidAmount
	}

	return nil
}
