package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/onul/clinicdesk/internal/adapter/http/dto"
	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*domain.CashRecord, error)
	DeleteExpense(ctx context.Context, id string) error
	ListDay(ctx context.Context, day time.Time) ([]*domain.CashRecord, error)
}

// ExpenseHandler handles expense HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Create records an expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	day, err := domain.ParseDay(req.Date)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid date", err.Error())
		return
	}

	record, err := h.expenseUC.CreateExpense(r.Context(), req.ToUseCaseInput(day))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create expense", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CashRecordFromDomain(record))
}

// Delete removes an open expense record.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	if err := h.expenseUC.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete expense", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DeletedResponse{Deleted: true, ID: id})
}

// ListDay lists expenses of one day.
func (h *ExpenseHandler) ListDay(w http.ResponseWriter, r *http.Request) {
	day, err := parseDateQuery(r)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid date", err.Error())
		return
	}

	records, err := h.expenseUC.ListDay(r.Context(), day)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashRecordsFromDomain(records))
}
