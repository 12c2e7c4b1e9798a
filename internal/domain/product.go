package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductLine separates the clinic's two inventories.
type ProductLine string

const (
	LineImplant ProductLine = "implant"
	LineDental  ProductLine = "dental"
)

var validProductLines = map[ProductLine]bool{
	LineImplant: true,
	LineDental:  true,
}

// IsValid checks if the line is a known product line.
func (l ProductLine) IsValid() bool {
	return validProductLines[l]
}

// Product is an inventory item. Stock is a materialized counter that
// must stay equal to the sum of all non-reversed movement deltas; it
// is mutated only as a side effect of a logged movement.
type Product struct {
	ID            string
	Line          ProductLine
	Name          string
	Specification string
	Price         decimal.Decimal
	Stock         int64
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApplyDelta returns the stock after applying delta, rejecting any
// result below zero.
func (p *Product) ApplyDelta(delta int64) (int64, error) {
	next := p.Stock + delta
	if next < 0 {
		return 0, ErrInsufficientStock
	}

	return next, nil
}
