package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
	"github.com/onul/clinicdesk/internal/usecase/mocks"
)

func newTreatmentUseCase(treatmentRepo *mocks.MockTreatmentRepository, cashRepo *mocks.MockCashRecordRepository) *usecase.TreatmentUseCase {
	return usecase.NewTreatmentUseCase(
		mocks.NewMockTransactionManager(),
		treatmentRepo,
		cashRepo,
		mocks.NewMockAuditRepository(),
		mocks.NewMockIDGenerator(),
	)
}

func TestTreatmentUseCase_CreateTreatment(t *testing.T) {
	treatmentRepo := mocks.NewMockTreatmentRepository()
	cashRepo := mocks.NewMockCashRecordRepository()

	uc := newTreatmentUseCase(treatmentRepo, cashRepo)

	treatment, err := uc.CreateTreatment(context.Background(), usecase.CreateTreatmentInput{
		Day:         day("2024-03-11"),
		ChartNumber: "C-1001",
		PatientName: "Kim",
		Doctor:      "Dr. Lee",
		Amount:      decimal.NewFromInt(150000),
		Description: "implant placement",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, err := cashRepo.GetByID(context.Background(), treatment.CashRecordID)
	if err != nil {
		t.Fatalf("expected the income record to exist: %v", err)
	}

	if record.Type != domain.CashIncome {
		t.Errorf("expected income record, got %s", record.Type)
	}
	if !record.Amount.Equal(treatment.Amount) {
		t.Errorf("record amount %s must match treatment amount %s", record.Amount, treatment.Amount)
	}
	if !record.OccurredAt.Equal(treatment.TreatedAt) {
		t.Error("record and treatment must share the clinic day")
	}
}

func TestTreatmentUseCase_CreateTreatment_Validation(t *testing.T) {
	valid := usecase.CreateTreatmentInput{
		Day:         day("2024-03-11"),
		ChartNumber: "C-1001",
		PatientName: "Kim",
		Amount:      decimal.NewFromInt(150000),
	}

	tests := []struct {
		name   string
		mutate func(in *usecase.CreateTreatmentInput)
	}{
		{"missing date", func(in *usecase.CreateTreatmentInput) { in.Day = time.Time{} }},
		{"bad chart number", func(in *usecase.CreateTreatmentInput) { in.ChartNumber = "has spaces!" }},
		{"empty patient name", func(in *usecase.CreateTreatmentInput) { in.PatientName = "" }},
		{"negative amount", func(in *usecase.CreateTreatmentInput) { in.Amount = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTreatmentUseCase(mocks.NewMockTreatmentRepository(), mocks.NewMockCashRecordRepository())

			input := valid
			tt.mutate(&input)

			if _, err := uc.CreateTreatment(context.Background(), input); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestTreatmentUseCase_CreateTreatment_DuplicateChartNumber(t *testing.T) {
	treatmentRepo := mocks.NewMockTreatmentRepository()
	cashRepo := mocks.NewMockCashRecordRepository()

	uc := newTreatmentUseCase(treatmentRepo, cashRepo)

	first := usecase.CreateTreatmentInput{
		Day:         day("2024-03-11"),
		ChartNumber: "C-1001",
		PatientName: "Kim",
		Amount:      decimal.NewFromInt(150000),
	}
	if _, err := uc.CreateTreatment(context.Background(), first); err != nil {
		t.Fatalf("first visit: %v", err)
	}

	if _, err := uc.CreateTreatment(context.Background(), first); !errors.Is(err, domain.ErrDuplicateChartNumber) {
		t.Fatalf("expected ErrDuplicateChartNumber, got %v", err)
	}

	// Same chart on another day is a new visit.
	nextDay := first
	nextDay.Day = day("2024-03-12")
	if _, err := uc.CreateTreatment(context.Background(), nextDay); err != nil {
		t.Fatalf("next-day visit: %v", err)
	}
}

func TestTreatmentUseCase_DeleteTreatment(t *testing.T) {
	treatmentRepo := mocks.NewMockTreatmentRepository()
	cashRepo := mocks.NewMockCashRecordRepository()

	uc := newTreatmentUseCase(treatmentRepo, cashRepo)

	treatment, err := uc.CreateTreatment(context.Background(), usecase.CreateTreatmentInput{
		Day:         day("2024-03-11"),
		ChartNumber: "C-1001",
		PatientName: "Kim",
		Amount:      decimal.NewFromInt(150000),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := uc.DeleteTreatment(context.Background(), treatment.ID, "staff-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := treatmentRepo.GetByID(context.Background(), treatment.ID); !errors.Is(err, domain.ErrTreatmentNotFound) {
		t.Error("expected the treatment to be deleted")
	}
	if _, err := cashRepo.GetByID(context.Background(), treatment.CashRecordID); !errors.Is(err, domain.ErrCashRecordNotFound) {
		t.Error("expected the income record to be deleted with the treatment")
	}
}

func TestTreatmentUseCase_DeleteTreatment_ClosedDayFrozen(t *testing.T) {
	treatmentRepo := mocks.NewMockTreatmentRepository()
	cashRepo := mocks.NewMockCashRecordRepository()

	uc := newTreatmentUseCase(treatmentRepo, cashRepo)

	treatment, err := uc.CreateTreatment(context.Background(), usecase.CreateTreatmentInput{
		Day:         day("2024-03-11"),
		ChartNumber: "C-1001",
		PatientName: "Kim",
		Amount:      decimal.NewFromInt(150000),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	record, _ := cashRepo.GetByID(context.Background(), treatment.CashRecordID)
	record.IsClosed = true

	if err := uc.DeleteTreatment(context.Background(), treatment.ID, "staff-1"); !errors.Is(err, domain.ErrRecordClosed) {
		t.Fatalf("expected ErrRecordClosed, got %v", err)
	}

	if _, err := treatmentRepo.GetByID(context.Background(), treatment.ID); err != nil {
		t.Error("closed-day treatment must stay intact")
	}
}
