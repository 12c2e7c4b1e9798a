package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRecordType classifies a cash movement.
type CashRecordType string

const (
	// CashIncome is money received from patients. Produced by the
	// treatment workflow, read-only through the cash ledger API.
	CashIncome CashRecordType = "income"

	// CashExpense is money paid out. Produced by the expense workflow,
	// read-only through the cash ledger API.
	CashExpense CashRecordType = "expense"

	// CashBankDeposit is cash physically moved from the drawer to a
	// bank account. The only type managed directly through the ledger.
	CashBankDeposit CashRecordType = "bank_deposit"
)

var validCashRecordTypes = map[CashRecordType]bool{
	CashIncome:      true,
	CashExpense:     true,
	CashBankDeposit: true,
}

// IsValid checks if the type is a known cash record type.
func (t CashRecordType) IsValid() bool {
	return validCashRecordTypes[t]
}

// CashRecord is a single entry in the clinic's append-only cash ledger.
type CashRecord struct {
	ID            string
	OccurredAt    time.Time
	Type          CashRecordType
	Amount        decimal.Decimal
	Description   string
	Category      string
	IsClosed      bool
	ClosingAmount *decimal.Decimal
	ClosedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SignedAmount is the record's contribution to the drawer balance:
// income adds, expense and bank deposit subtract. Unknown types
// contribute nothing.
func (r *CashRecord) SignedAmount() decimal.Decimal {
	switch r.Type {
	case CashIncome:
		return r.Amount
	case CashExpense, CashBankDeposit:
		return r.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// Editable reports whether the record may be mutated through the cash
// ledger API. Only bank deposits on a day that has not been closed.
func (r *CashRecord) Editable() error {
	if r.Type != CashBankDeposit {
		return ErrRecordNotDeposit
	}

	if r.IsClosed {
		return ErrRecordClosed
	}

	return nil
}

// Deletable reports whether a record produced by another workflow
// (treatment, expense) may still be removed by that workflow. Closing
// a day freezes its records for every code path.
func (r *CashRecord) Deletable() error {
	if r.IsClosed {
		return ErrRecordClosed
	}

	return nil
}
