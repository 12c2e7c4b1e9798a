package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
)

// CashUseCase handles the cash drawer ledger: listing, the bank
// deposit mutation gate, day closing and opening balances.
type CashUseCase struct {
	cashRepo  CashRecordRepository
	auditRepo AuditRepository
	idGen     IDGenerator
}

// NewCashUseCase creates a new CashUseCase.
func NewCashUseCase(cashRepo CashRecordRepository, auditRepo AuditRepository, idGen IDGenerator) *CashUseCase {
	return &CashUseCase{
		cashRepo:  cashRepo,
		auditRepo: auditRepo,
		idGen:     idGen,
	}
}

// ListDay lists every cash record of one clinic-local day.
func (uc *CashUseCase) ListDay(ctx context.Context, day time.Time) ([]*domain.CashRecord, error) {
	if day.IsZero() {
		return nil, domain.ErrMissingDate
	}

	start, end := domain.DayWindow(day)

	return uc.cashRepo.ListByRange(ctx, start, end)
}

// OpeningBalance folds the ledger strictly before the clinic-local
// start of day: income adds, expense and bank deposit subtract,
// anything else is ignored. An empty ledger yields zero.
func (uc *CashUseCase) OpeningBalance(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	if day.IsZero() {
		return decimal.Zero, domain.ErrMissingDate
	}

	cutoff := domain.ClinicDay(day)

	records, err := uc.cashRepo.ListBefore(ctx, cutoff)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, rec := range records {
		balance = balance.Add(rec.SignedAmount())
	}

	return balance, nil
}

// CreateDepositInput represents input for creating a bank deposit record.
type CreateDepositInput struct {
	Day         time.Time
	Type        domain.CashRecordType
	Amount      decimal.Decimal
	Description string
	ActorID     string
}

// CreateDeposit appends a bank deposit record. Income and expense
// records come from the treatment and expense workflows and are
// rejected here.
func (uc *CashUseCase) CreateDeposit(ctx context.Context, input CreateDepositInput) (*domain.CashRecord, error) {
	if input.Type != domain.CashBankDeposit {
		return nil, domain.ErrRecordNotDeposit
	}

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
		Type:        domain.CashBankDeposit,
		Amount:      input.Amount,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.cashRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	uc.audit(ctx, input.ActorID, domain.AuditActionDepositCreate, record.ID, nil, record)

	return record, nil
}

// UpdateDepositInput represents input for editing a bank deposit record.
type UpdateDepositInput struct {
	ID          string
	Type        *domain.CashRecordType
	Amount      *decimal.Decimal
	Description *string
	ActorID     string
}

// UpdateDeposit edits amount or description of an open bank deposit
// record. The type field is immutable once set.
func (uc *CashUseCase) UpdateDeposit(ctx context.Context, input UpdateDepositInput) (*domain.CashRecord, error) {
	record, err := uc.cashRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := record.Editable(); err != nil {
		return nil, err
	}

	if input.Type != nil && *input.Type != record.Type {
		return nil, domain.ErrTypeChangeNotAllowed
	}

	before := *record

	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}

		record.Amount = *input.Amount
	}

	if input.Description != nil {
		record.Description = *input.Description
	}

	record.UpdatedAt = time.Now().UTC()

	if err := uc.cashRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	uc.audit(ctx, input.ActorID, domain.AuditActionDepositUpdate, record.ID, &before, record)

	return record, nil
}

// DeleteDeposit removes an open bank deposit record.
func (uc *CashUseCase) DeleteDeposit(ctx context.Context, id, actorID string) error {
	record, err := uc.cashRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := record.Editable(); err != nil {
		return err
	}

	if err := uc.cashRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit(ctx, actorID, domain.AuditActionDepositDelete, id, record, nil)

	return nil
}

// CloseDayInput represents input for the closing procedure.
type CloseDayInput struct {
	Day           time.Time
	ClosingAmount *decimal.Decimal
	ActorID       string
}

// CloseDay marks every record of the day's clinic-local window as
// reconciled against the counted drawer amount. Idempotent: re-closing
// overwrites the previous closing amount, last write wins.
//
// Later days' opening balances are always derived from the ledger fold
// (OpeningBalance), never materialized, so no cascading recompute is
// needed after a retroactive close.
func (uc *CashUseCase) CloseDay(ctx context.Context, input CloseDayInput) (int64, error) {
	if input.Day.IsZero() {
		return 0, domain.ErrMissingDate
	}

	if input.ClosingAmount == nil {
		return 0, domain.ErrMissingClosingAmount
	}

	if err := domain.ValidateAmount(*input.ClosingAmount); err != nil {
		return 0, err
	}

	start, end := domain.DayWindow(input.Day)
	closedAt := time.Now().UTC()

	count, err := uc.cashRepo.CloseRange(ctx, start, end, *input.ClosingAmount, closedAt)
	if err != nil {
		return 0, err
	}

	uc.audit(ctx, input.ActorID, domain.AuditActionDayClose, domain.FormatDay(input.Day), nil, map[string]any{
		"closing_amount": input.ClosingAmount.String(),
		"closed_records": count,
	})

	return count, nil
}

// audit writes a best-effort audit row. Audit failures never fail the
// business operation.
func (uc *CashUseCase) audit(ctx context.Context, actorID string, action domain.AuditAction, resourceID string, before, after any) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		UserID:       actorID,
		Action:       string(action),
		ResourceType: "cash_record",
		ResourceID:   resourceID,
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
