package api

import (
	"encoding/json"
	"net/http"

	"github.com/claritygate/claritygate/pkg/assess"
)

func (h *Handler) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	list, err := h.assessmentSvc.ListEvaluations(r.Context(), r.PathValue("assessmentID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list evaluations: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleLatestEvaluation(w http.ResponseWriter, r *http.Request) {
	row, err := h.assessmentSvc.LatestEvaluation(r.Context(), r.PathValue("assessmentID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "no evaluations: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// handleGetEvaluation returns the full archived result payload for one
// evaluation, through the LRU cache.
func (h *Handler) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	evaluationID := r.PathValue("evaluationID")

	if cached := h.cache.Get(evaluationID); cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	row, err := h.assessmentSvc.GetEvaluationByID(ctx, evaluationID)
	if err != nil {
		writeError(w, http.StatusNotFound, "evaluation not found: "+err.Error())
		return
	}
	a, err := h.assessmentSvc.GetAssessment(ctx, row.AssessmentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load assessment: "+err.Error())
		return
	}

	data, err := h.storage.GetEvaluation(ctx, a.OrgID, evaluationID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load archived result: "+err.Error())
		return
	}

	var result assess.Result
	if err := json.Unmarshal(data, &result); err != nil {
		writeError(w, http.StatusInternalServerError, "corrupt archived result: "+err.Error())
		return
	}

	h.cache.Put(evaluationID, &result)
	writeJSON(w, http.StatusOK, &result)
}
