package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAmount      = errors.New("amount must be zero or positive")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidChartNumber = errors.New("invalid chart number")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooWeak    = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MaxNameLength     = 255
	MaxDescriptionLen = 1024
	MaxCashAmount     = "1000000000" // 1 billion KRW
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var (
	emailRegex       = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	chartNumberRegex = regexp.MustCompile(`^[A-Za-z0-9\-]{1,32}$`)
)

// ValidateAmount checks a cash amount: non-negative and bounded.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	max, _ := decimal.NewFromString(MaxCashAmount)
	if amount.GreaterThan(max) {
		return ErrAmountTooLarge
	}

	return nil
}

// ValidateName checks a product or patient name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return ErrInvalidName
	}

	return nil
}

// ValidateChartNumber checks a patient chart number.
func ValidateChartNumber(chartNumber string) error {
	if !chartNumberRegex.MatchString(chartNumber) {
		return ErrInvalidChartNumber
	}

	return nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
