package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/gommon/log"
)

// RunReconciliation triggers one reconciliation session. Overlapping runs are
// rejected with 409; a session with nothing to do returns an empty report.
func (h *ReconciliationHandler) RunReconciliation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if !h.Usecase.TryAcquireRun(r.Context()) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(APIResponse{
			Status:  "error",
			Message: ErrRunInProgress.Error(),
		})
		return
	}
	defer h.Usecase.UnlockRun(r.Context())

	report, err := h.Usecase.RunSession(r.Context())
	if err != nil {
		log.Errorf("[Handler] Reconciliation session failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(APIResponse{
			Status:  "error",
			Message: "Failed to run reconciliation",
		})
		return
	}

	if report == nil {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(APIResponse{
			Status:  "success",
			Message: "No new documents found",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(APIResponse{
		Status: "success",
		Data:   report,
	})
}
