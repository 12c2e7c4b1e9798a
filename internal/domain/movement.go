package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the direction of an inventory movement.
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// OutReason explains why stock left the shelf.
type OutReason string

const (
	OutPatientUse OutReason = "patient_use"
	OutDiscard    OutReason = "discard"
	OutOther      OutReason = "other"
)

var (
	ErrInvalidOutReason  = errors.New("invalid out reason")
	ErrMissingOutContext = errors.New("outbound movement requires a context")
	ErrMissingPatientUse = errors.New("patient use requires chart number, patient name and doctor")
)

// OutContext is the tagged context of an outbound movement. Patient
// use carries the chart fields; discard and other carry none.
type OutContext struct {
	Reason      OutReason
	ChartNumber string
	PatientName string
	Doctor      string
}

// Validate checks the context structurally per reason.
func (c *OutContext) Validate() error {
	switch c.Reason {
	case OutPatientUse:
		if c.ChartNumber == "" || c.PatientName == "" || c.Doctor == "" {
			return ErrMissingPatientUse
		}
	case OutDiscard, OutOther:
		// No chart context with these reasons.
	default:
		return ErrInvalidOutReason
	}

	return nil
}

// InventoryMovement is one row in a product's append-only stock log.
// Each movement was applied to Product.Stock atomically with its
// creation; deleting one must invert that effect.
type InventoryMovement struct {
	ID         string
	ProductID  string
	Type       MovementType
	Quantity   int64
	UnitCost   *decimal.Decimal
	Notes      string
	Out        *OutContext
	OccurredAt time.Time
	CreatedAt  time.Time
}

// StockDelta is the movement's effect on Product.Stock.
func (m *InventoryMovement) StockDelta() int64 {
	if m.Type == MovementOut {
		return -m.Quantity
	}

	return m.Quantity
}

// InverseDelta is the stock change that undoes this movement.
func (m *InventoryMovement) InverseDelta() int64 {
	return -m.StockDelta()
}

// Validate checks quantity and out-context shape.
func (m *InventoryMovement) Validate() error {
	if m.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	switch m.Type {
	case MovementIn:
		return nil
	case MovementOut:
		if m.Out == nil {
			return ErrMissingOutContext
		}

		return m.Out.Validate()
	default:
		return errors.New("invalid movement type")
	}
}
