package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/adapter/http/dto"
	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/infrastructure/metrics"
	"github.com/onul/clinicdesk/internal/usecase"
)

// CashService defines the behavior needed by CashHandler.
type CashService interface {
	ListDay(ctx context.Context, day time.Time) ([]*domain.CashRecord, error)
	OpeningBalance(ctx context.Context, day time.Time) (decimal.Decimal, error)
	CreateDeposit(ctx context.Context, input usecase.CreateDepositInput) (*domain.CashRecord, error)
	UpdateDeposit(ctx context.Context, input usecase.UpdateDepositInput) (*domain.CashRecord, error)
	DeleteDeposit(ctx context.Context, id, actorID string) error
	CloseDay(ctx context.Context, input usecase.CloseDayInput) (int64, error)
}

// CashHandler handles cash ledger HTTP requests.
type CashHandler struct {
	cashUC CashService
}

// NewCashHandler creates a new CashHandler.
func NewCashHandler(cashUC CashService) *CashHandler {
	return &CashHandler{cashUC: cashUC}
}

// ListDay returns the day's records with the opening balance.
func (h *CashHandler) ListDay(w http.ResponseWriter, r *http.Request) {
	day, err := parseDateQuery(r)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid date", err.Error())
		return
	}

	records, err := h.cashUC.ListDay(r.Context(), day)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list records", err.Error())
		return
	}

	opening, err := h.cashUC.OpeningBalance(r.Context(), day)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute opening balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashDayResponse{
		Date:           domain.FormatDay(day),
		OpeningBalance: opening,
		Records:        dto.CashRecordsFromDomain(records),
	})
}

// OpeningBalance returns the balance carried into the day.
func (h *CashHandler) OpeningBalance(w http.ResponseWriter, r *http.Request) {
	day, err := parseDateQuery(r)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid date", err.Error())
		return
	}

	opening, err := h.cashUC.OpeningBalance(r.Context(), day)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute opening balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OpeningBalanceResponse{
		Date:           domain.FormatDay(day),
		OpeningBalance: opening,
	})
}

// CreateDeposit creates a bank deposit record.
func (h *CashHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	day, err := domain.ParseDay(req.Date)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid date", err.Error())
		return
	}

	record, err := h.cashUC.CreateDeposit(r.Context(), req.ToUseCaseInput(day, actorID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create deposit", err.Error())
		return
	}

	metrics.DepositsCreated.Inc()

	writeJSON(w, http.StatusCreated, dto.CashRecordFromDomain(record))
}

// UpdateDeposit edits a bank deposit record.
func (h *CashHandler) UpdateDeposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing record ID", "")
		return
	}

	var req dto.UpdateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.cashUC.UpdateDeposit(r.Context(), req.ToUseCaseInput(id, actorID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashRecordFromDomain(record))
}

// DeleteDeposit removes a bank deposit record.
func (h *CashHandler) DeleteDeposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing record ID", "")
		return
	}

	if err := h.cashUC.DeleteDeposit(r.Context(), id, actorID(r)); err != nil {
		writeError(w, mapDomainError(err), "failed to delete deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DeletedResponse{Deleted: true, ID: id})
}

// CloseDay runs the closing procedure for one day.
func (h *CashHandler) CloseDay(w http.ResponseWriter, r *http.Request) {
	var req dto.CloseDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	day, err := domain.ParseDay(req.Date)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid date", err.Error())
		return
	}

	count, err := h.cashUC.CloseDay(r.Context(), req.ToUseCaseInput(day, actorID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to close day", err.Error())
		return
	}

	metrics.DaysClosed.Inc()

	resp := dto.CloseDayResponse{
		Date:          domain.FormatDay(day),
		ClosedRecords: count,
	}
	if req.ClosingAmount != nil {
		resp.ClosingAmount = *req.ClosingAmount
	}

	writeJSON(w, http.StatusOK, resp)
}
