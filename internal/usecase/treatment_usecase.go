package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
)

// TreatmentUseCase handles billed patient visits. Each treatment owns
// one income cash record; both rows are written in one transaction so
// the ledger always reflects the treatment book.
type TreatmentUseCase struct {
	txManager     TransactionManager
	treatmentRepo TreatmentRepository
	cashRepo      CashRecordRepository
	auditRepo     AuditRepository
	idGen         IDGenerator
}

// NewTreatmentUseCase creates a new TreatmentUseCase.
func NewTreatmentUseCase(
	txManager TransactionManager,
	treatmentRepo TreatmentRepository,
	cashRepo CashRecordRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *TreatmentUseCase {
	return &TreatmentUseCase{
		txManager:     txManager,
		treatmentRepo: treatmentRepo,
		cashRepo:      cashRepo,
		auditRepo:     auditRepo,
		idGen:         idGen,
	}
}

// CreateTreatmentInput represents input for recording a treatment.
type CreateTreatmentInput struct {
	Day         time.Time
	ChartNumber string
	PatientName string
	Doctor      string
	Amount      decimal.Decimal
	Description string
	ActorID     string
}

// CreateTreatment records a treatment and its income cash record.
func (uc *TreatmentUseCase) CreateTreatment(ctx context.Context, input CreateTreatmentInput) (*domain.Treatment, error) {
	if input.Day.IsZero() {
		return nil, domain.ErrMissingDate
	}

	if err := domain.ValidateChartNumber(input.ChartNumber); err != nil {
		return nil, err
	}

	if err := domain.ValidateName(input.PatientName); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	// One visit per chart number per clinic day.
	start, end := domain.DayWindow(input.Day)
	sameDay, err := uc.treatmentRepo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	for _, existing := range sameDay {
		if existing.ChartNumber == input.ChartNumber {
			return nil, domain.ErrDuplicateChartNumber
		}
	}

	now := time.Now().UTC()
	day := domain.ClinicDay(input.Day)

	record := &domain.CashRecord{
		ID:          uc.idGen.Generate(),
		OccurredAt:  day,
		Type:        domain.CashIncome,
		Amount:      input.Amount,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	treatment := &domain.Treatment{
		ID:           uc.idGen.Generate(),
		ChartNumber:  input.ChartNumber,
		PatientName:  input.PatientName,
		Doctor:       input.Doctor,
		Amount:       input.Amount,
		Description:  input.Description,
		TreatedAt:    day,
		CashRecordID: record.ID,
		CreatedAt:    now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.cashRepo.CreateTx(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := uc.treatmentRepo.CreateTx(ctx, tx, treatment); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.audit(ctx, input.ActorID, domain.AuditActionTreatmentCreate, treatment.ID, nil, treatment)

	return treatment, nil
}

// DeleteTreatment removes a treatment and its income record, unless
// the record's day has already been closed.
func (uc *TreatmentUseCase) DeleteTreatment(ctx context.Context, id, actorID string) error {
	treatment, err := uc.treatmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	record, err := uc.cashRepo.GetByID(ctx, treatment.CashRecordID)
	if err != nil {
		return err
	}

	if err := record.Deletable(); err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.treatmentRepo.DeleteTx(ctx, tx, id); err != nil {
		return err
	}

	if err := uc.cashRepo.DeleteTx(ctx, tx, record.ID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.audit(ctx, actorID, domain.AuditActionTreatmentDelete, id, treatment, nil)

	return nil
}

// ListDay lists treatments of one clinic-local day.
func (uc *TreatmentUseCase) ListDay(ctx context.Context, day time.Time) ([]*domain.Treatment, error) {
	if day.IsZero() {
		return nil, domain.ErrMissingDate
	}

	start, end := domain.DayWindow(day)

	return uc.treatmentRepo.ListByRange(ctx, start, end)
}

func (uc *TreatmentUseCase) audit(ctx context.Context, actorID string, action domain.AuditAction, id string, before, after any) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		UserID:       actorID,
		Action:       string(action),
		ResourceType: "treatment",
		ResourceID:   id,
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
