package api

import (
	"net/http"

	"github.com/claritygate/claritygate/internal/assessment"
	"github.com/claritygate/claritygate/pkg/assess"
)

type evaluateResponse struct {
	Evaluation *assessment.EvaluationRow `json:"evaluation"`
	Result     *assess.Result            `json:"result"`
}

// handleEvaluate runs one synchronous evaluation over the assessment's
// current answer snapshot. Evaluation is deterministic; running it twice
// on the same answers produces two rows with identical payloads.
func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	assessmentID := r.PathValue("assessmentID")

	a, err := h.assessmentSvc.GetAssessment(ctx, assessmentID)
	if err != nil {
		writeError(w, http.StatusNotFound, "assessment not found: "+err.Error())
		return
	}

	row, result, err := h.runner.Evaluate(ctx, a.OrgID, assessmentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "evaluate: "+err.Error())
		return
	}

	h.cache.Put(row.ID, result)
	writeJSON(w, http.StatusOK, evaluateResponse{Evaluation: row, Result: result})
}
