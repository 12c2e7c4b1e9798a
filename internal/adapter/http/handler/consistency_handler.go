package handler

import (
	"context"
	"net/http"

	"github.com/onul/clinicdesk/internal/adapter/http/dto"
	"github.com/onul/clinicdesk/internal/infrastructure/metrics"
	"github.com/onul/clinicdesk/internal/usecase"
)

// ConsistencyService defines the behavior needed by ConsistencyHandler.
type ConsistencyService interface {
	CheckInventoryConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// ConsistencyHandler handles inventory consistency check requests.
type ConsistencyHandler struct {
	consistencyUC ConsistencyService
}

// NewConsistencyHandler creates a new ConsistencyHandler.
func NewConsistencyHandler(consistencyUC ConsistencyService) *ConsistencyHandler {
	return &ConsistencyHandler{consistencyUC: consistencyUC}
}

// Check runs a full inventory consistency check.
func (h *ConsistencyHandler) Check(w http.ResponseWriter, r *http.Request) {
	report, err := h.consistencyUC.CheckInventoryConsistency(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check consistency", err.Error())
		return
	}

	metrics.ConsistencyDiscrepancies.Set(float64(len(report.Discrepancies)))

	writeJSON(w, http.StatusOK, dto.ConsistencyReportFromUseCase(report))
}
