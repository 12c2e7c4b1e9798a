package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
	"github.com/onul/clinicdesk/internal/usecase/mocks"
)

func TestExpenseUseCase_CreateExpense(t *testing.T) {
	cashRepo := mocks.NewMockCashRecordRepository()
	uc := usecase.NewExpenseUseCase(cashRepo, mocks.NewMockIDGenerator())

	record, err := uc.CreateExpense(context.Background(), usecase.CreateExpenseInput{
		Day:         day("2024-03-11"),
		Amount:      decimal.NewFromInt(30000),
		Category:    "supplies",
		Description: "gloves",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.Type != domain.CashExpense {
		t.Errorf("expected expense type, got %s", record.Type)
	}

	// An expense created here is immediately gated from ledger edits.
	cashUC := usecase.NewCashUseCase(cashRepo, nil, mocks.NewMockIDGenerator())
	if _, err := cashUC.UpdateDeposit(context.Background(), usecase.UpdateDepositInput{
		ID:     record.ID,
		Amount: &record.Amount,
	}); !errors.Is(err, domain.ErrRecordNotDeposit) {
		t.Errorf("expected ErrRecordNotDeposit, got %v", err)
	}
}

func TestExpenseUseCase_DeleteExpense(t *testing.T) {
	cashRepo := mocks.NewMockCashRecordRepository()
	uc := usecase.NewExpenseUseCase(cashRepo, mocks.NewMockIDGenerator())

	record, err := uc.CreateExpense(context.Background(), usecase.CreateExpenseInput{
		Day:    day("2024-03-11"),
		Amount: decimal.NewFromInt(30000),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deposit := seedRecord(cashRepo, "d1", domain.CashBankDeposit, 50000, day("2024-03-11"))

	if err := uc.DeleteExpense(context.Background(), deposit.ID); !errors.Is(err, domain.ErrCashRecordNotFound) {
		t.Errorf("non-expense records must be invisible here, got %v", err)
	}

	record.IsClosed = true
	if err := uc.DeleteExpense(context.Background(), record.ID); !errors.Is(err, domain.ErrRecordClosed) {
		t.Errorf("expected ErrRecordClosed, got %v", err)
	}

	record.IsClosed = false
	if err := uc.DeleteExpense(context.Background(), record.ID); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExpenseUseCase_ListDay_FiltersTypes(t *testing.T) {
	cashRepo := mocks.NewMockCashRecordRepository()
	seedRecord(cashRepo, "r1", domain.CashIncome, 100000, day("2024-03-11"))
	seedRecord(cashRepo, "r2", domain.CashExpense, 30000, day("2024-03-11"))
	seedRecord(cashRepo, "r3", domain.CashExpense, 5000, day("2024-03-12"))

	uc := usecase.NewExpenseUseCase(cashRepo, mocks.NewMockIDGenerator())

	expenses, err := uc.ListDay(context.Background(), day("2024-03-11"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(expenses) != 1 || expenses[0].ID != "r2" {
		t.Errorf("expected only r2, got %v", expenses)
	}
}
