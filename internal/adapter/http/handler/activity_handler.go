package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/onul/clinicdesk/internal/adapter/http/dto"
	"github.com/onul/clinicdesk/internal/infrastructure/metrics"
)

// ActivityService defines the behavior needed by ActivityHandler.
type ActivityService interface {
	DeleteActivity(ctx context.Context, id, actorID string) error
}

// ActivityHandler handles activity deletion requests.
type ActivityHandler struct {
	activityUC ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityUC ActivityService) *ActivityHandler {
	return &ActivityHandler{activityUC: activityUC}
}

// Delete removes a sale or inventory movement, undoing its stock effect.
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing activity ID", "")
		return
	}

	if err := h.activityUC.DeleteActivity(r.Context(), id, actorID(r)); err != nil {
		writeError(w, mapDomainError(err), "failed to delete activity", err.Error())
		return
	}

	metrics.ActivitiesDeleted.Inc()

	writeJSON(w, http.StatusOK, dto.DeletedResponse{Deleted: true, ID: id})
}
