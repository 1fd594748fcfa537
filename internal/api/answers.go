package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/claritygate/claritygate/pkg/assess"
)

// submitAnswersRequest is the JSON body for
// POST /api/v1/assessments/{assessmentID}/answers.
type submitAnswersRequest struct {
	Answers []submittedAnswer `json:"answers"`
}

type submittedAnswer struct {
	QuestionID    string `json:"question_id"`
	ParticipantID string `json:"participant_id"`
	Role          string `json:"role"`
	Value         any    `json:"value"`
}

type submitAnswersResponse struct {
	Accepted int `json:"accepted"`
}

// handleSubmitAnswers records a batch of answers. Every value is
// type-checked against the question's declared answer type before
// anything is written; a single bad answer rejects the whole batch so a
// submission is never half-recorded. Re-submitting is an idempotent
// upsert by (participant, question).
func (h *Handler) handleSubmitAnswers(w http.ResponseWriter, r *http.Request) {
	assessmentID := r.PathValue("assessmentID")

	var req submitAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "no answers in request")
		return
	}

	ctx := r.Context()
	if _, err := h.assessmentSvc.GetAssessment(ctx, assessmentID); err != nil {
		writeError(w, http.StatusNotFound, "assessment not found: "+err.Error())
		return
	}

	// Validate the full batch before the first write.
	for i, sa := range req.Answers {
		def, ok := h.registry.Question(sa.QuestionID)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("answers[%d]: unknown question %q", i, sa.QuestionID))
			return
		}
		if _, err := assess.ParseAnswerValue(def, sa.Value); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("answers[%d]: %v", i, err))
			return
		}
		if sa.ParticipantID == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("answers[%d]: participant_id is required", i))
			return
		}
	}

	for i, sa := range req.Answers {
		value, err := json.Marshal(sa.Value)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("answers[%d]: %v", i, err))
			return
		}
		if _, err := h.assessmentSvc.UpsertAnswer(ctx, assessmentID, sa.QuestionID, sa.ParticipantID, sa.Role, value); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("store answers[%d]: %v", i, err))
			return
		}
	}

	writeJSON(w, http.StatusOK, submitAnswersResponse{Accepted: len(req.Answers)})
}
