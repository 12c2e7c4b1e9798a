package domain

import "errors"

var (
	// Cash ledger errors
	ErrCashRecordNotFound   = errors.New("cash record not found")
	ErrRecordNotDeposit     = errors.New("only bank deposit records can be managed through the cash ledger")
	ErrRecordClosed         = errors.New("record belongs to a closed day and cannot be modified")
	ErrTypeChangeNotAllowed = errors.New("record type cannot be changed")
	ErrMissingDate          = errors.New("date is required")
	ErrInvalidDate          = errors.New("date must be formatted as YYYY-MM-DD")
	ErrMissingClosingAmount = errors.New("closing amount is required")

	// Inventory errors
	ErrProductNotFound   = errors.New("product not found")
	ErrMovementNotFound  = errors.New("inventory movement not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")

	// Sale errors
	ErrSaleNotFound     = errors.New("sale not found")
	ErrSaleNoItems      = errors.New("sale must contain at least one item")
	ErrActivityNotFound = errors.New("no sale or inventory movement with this id")

	// Treatment and expense errors
	ErrTreatmentNotFound    = errors.New("treatment not found")
	ErrDuplicateChartNumber = errors.New("chart number already registered for this day")
)
