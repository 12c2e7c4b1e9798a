package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/onul/clinicdesk/internal/adapter/http/dto"
	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/infrastructure/metrics"
	"github.com/onul/clinicdesk/internal/usecase"
)

// TreatmentService defines the behavior needed by TreatmentHandler.
type TreatmentService interface {
	CreateTreatment(ctx context.Context, input usecase.CreateTreatmentInput) (*domain.Treatment, error)
	DeleteTreatment(ctx context.Context, id, actorID string) error
	ListDay(ctx context.Context, day time.Time) ([]*domain.Treatment, error)
}

// TreatmentHandler handles treatment HTTP requests.
type TreatmentHandler struct {
	treatmentUC TreatmentService
}

// NewTreatmentHandler creates a new TreatmentHandler.
func NewTreatmentHandler(treatmentUC TreatmentService) *TreatmentHandler {
	return &TreatmentHandler{treatmentUC: treatmentUC}
}

// Create records a treatment and its income record.
func (h *TreatmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	day, err := domain.ParseDay(req.Date)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid date", err.Error())
		return
	}

	treatment, err := h.treatmentUC.CreateTreatment(r.Context(), req.ToUseCaseInput(day, actorID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create treatment", err.Error())
		return
	}

	metrics.TreatmentsCreated.Inc()

	writeJSON(w, http.StatusCreated, dto.TreatmentFromDomain(treatment))
}

// Delete removes a treatment and its income record.
func (h *TreatmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing treatment ID", "")
		return
	}

	if err := h.treatmentUC.DeleteTreatment(r.Context(), id, actorID(r)); err != nil {
		writeError(w, mapDomainError(err), "failed to delete treatment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DeletedResponse{Deleted: true, ID: id})
}

// ListDay lists treatments of one day.
func (h *TreatmentHandler) ListDay(w http.ResponseWriter, r *http.Request) {
	day, err := parseDateQuery(r)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid date", err.Error())
		return
	}

	treatments, err := h.treatmentUC.ListDay(r.Context(), day)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list treatments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TreatmentsFromDomain(treatments))
}
