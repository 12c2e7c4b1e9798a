package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Treatment is a billed patient visit. Each treatment owns exactly one
// income cash record; the two are created and deleted together.
type Treatment struct {
	ID           string
	ChartNumber  string
	PatientName  string
	Doctor       string
	Amount       decimal.Decimal
	Description  string
	TreatedAt    time.Time
	CashRecordID string
	CreatedAt    time.Time
}
