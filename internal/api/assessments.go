package api

import (
	"encoding/json"
	"net/http"
)

// createAssessmentRequest is the JSON body for POST /api/v1/assessments.
type createAssessmentRequest struct {
	Org     string `json:"org"`
	Name    string `json:"name"`
	Variant string `json:"variant"`
}

type createAssessmentResponse struct {
	OrgID        string `json:"org_id"`
	AssessmentID string `json:"assessment_id"`
	Variant      string `json:"variant"`
}

func (h *Handler) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	var req createAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Org == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "org and name are required")
		return
	}
	if req.Variant == "" {
		req.Variant = "boardroom"
	}
	if _, ok := h.variants[req.Variant]; !ok {
		writeError(w, http.StatusBadRequest, "unknown variant: "+req.Variant)
		return
	}

	orgID, assessmentID, err := h.assessmentSvc.EnsureOrgAndAssessment(r.Context(), req.Org, req.Name, req.Variant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create assessment: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, createAssessmentResponse{
		OrgID:        orgID,
		AssessmentID: assessmentID,
		Variant:      req.Variant,
	})
}

func (h *Handler) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := h.assessmentSvc.GetAssessment(r.Context(), r.PathValue("assessmentID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "assessment not found: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org, err := h.assessmentSvc.GetOrgByName(ctx, r.PathValue("orgName"))
	if err != nil {
		writeError(w, http.StatusNotFound, "org not found: "+err.Error())
		return
	}
	list, err := h.assessmentSvc.ListAssessments(ctx, org.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list assessments: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"org": org.Name, "assessments": list})
}

func (h *Handler) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Questions())
}

func (h *Handler) handleListVariants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.variants)
}
