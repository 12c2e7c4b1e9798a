package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
)

// ExpenseUseCase produces the ledger's expense records. It writes the
// same cash_records table the cash ledger reads, so expenses are gated
// from direct ledger edits the moment they are created.
type ExpenseUseCase struct {
	cashRepo CashRecordRepository
	idGen    IDGenerator
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(cashRepo CashRecordRepository, idGen IDGenerator) *ExpenseUseCase {
	return &ExpenseUseCase{
		cashRepo: cashRepo,
		idGen:    idGen,
	}
}

// CreateExpenseInput represents input for recording an expense.
type CreateExpenseInput struct {
	Day         time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
}

// CreateExpense appends an expense record to the ledger.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.CashRecord, error) {
	if input.Day.IsZero() {
		return nil, domain.ErrMissingDate
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &domain.CashRecord{
		ID:          uc.idGen.Generate(),
		OccurredAt:  domain.ClinicDay(input.Day),
		Type:        domain.CashExpense,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.cashRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// DeleteExpense removes an expense record unless its day is closed.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, id string) error {
	record, err := uc.cashRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if record.Type != domain.CashExpense {
		return domain.ErrCashRecordNotFound
	}

	if err := record.Deletable(); err != nil {
		return err
	}

	return uc.cashRepo.Delete(ctx, id)
}

// ListDay lists the expense records of one clinic-local day.
func (uc *ExpenseUseCase) ListDay(ctx context.Context, day time.Time) ([]*domain.CashRecord, error) {
	if day.IsZero() {
		return nil, domain.ErrMissingDate
	}

	start, end := domain.DayWindow(day)

	records, err := uc.cashRepo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	expenses := make([]*domain.CashRecord, 0, len(records))
	for _, rec := range records {
		if rec.Type == domain.CashExpense {
			expenses = append(expenses, rec)
		}
	}

	return expenses, nil
}
