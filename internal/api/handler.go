// Package api implements the hosted claritygate REST API.
// It provides answer submission, evaluation and read endpoints backed by
// Postgres and blob storage.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/claritygate/claritygate/internal/archive"
	"github.com/claritygate/claritygate/internal/assessment"
	"github.com/claritygate/claritygate/pkg/assess"
)

// Handler is the top-level API handler for the hosted claritygate service.
type Handler struct {
	db            *sql.DB
	assessmentSvc *assessment.Service
	runner        *assessment.Runner
	storage       archive.StorageClient
	registry      *assess.Registry
	variants      map[string]assess.Variant
	cache         *ResultCache
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, assessmentSvc *assessment.Service, runner *assessment.Runner, storage archive.StorageClient, registry *assess.Registry, variants map[string]assess.Variant, cache *ResultCache) *Handler {
	if cache == nil {
		cache = NewResultCacheFromEnv()
	}
	return &Handler{
		db:            db,
		assessmentSvc: assessmentSvc,
		runner:        runner,
		storage:       storage,
		registry:      registry,
		variants:      variants,
		cache:         cache,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Write endpoints (auth-protected)
	mux.HandleFunc("POST /api/v1/assessments", h.handleCreateAssessment)
	mux.HandleFunc("POST /api/v1/assessments/{assessmentID}/answers", h.handleSubmitAnswers)
	mux.HandleFunc("POST /api/v1/assessments/{assessmentID}/evaluate", h.handleEvaluate)

	// Read endpoints
	mux.HandleFunc("GET /api/v1/orgs/{orgName}/assessments", h.handleListAssessments)
	mux.HandleFunc("GET /api/v1/assessments/{assessmentID}", h.handleGetAssessment)
	mux.HandleFunc("GET /api/v1/assessments/{assessmentID}/evaluations", h.handleListEvaluations)
	mux.HandleFunc("GET /api/v1/assessments/{assessmentID}/evaluations/latest", h.handleLatestEvaluation)
	mux.HandleFunc("GET /api/v1/evaluations/{evaluationID}", h.handleGetEvaluation)
	mux.HandleFunc("GET /api/v1/questions", h.handleListQuestions)
	mux.HandleFunc("GET /api/v1/variants", h.handleListVariants)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
