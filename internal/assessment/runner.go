package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/claritygate/claritygate/internal/archive"
	"github.com/claritygate/claritygate/pkg/assess"
)

// Runner executes hosted evaluation runs: it loads the current answer
// snapshot for an assessment, evaluates it, archives the full payloads
// and records the summary row.
type Runner struct {
	assessments *Service
	storage     archive.StorageClient
	engine      *assess.Engine
	registry    *assess.Registry
	variants    map[string]assess.Variant
}

// NewRunner creates an evaluation runner.
func NewRunner(assessments *Service, storage archive.StorageClient, engine *assess.Engine, registry *assess.Registry, variants map[string]assess.Variant) *Runner {
	return &Runner{
		assessments: assessments,
		storage:     storage,
		engine:      engine,
		registry:    registry,
		variants:    variants,
	}
}

// Evaluate runs one evaluation for an assessment and stores it. The
// answer snapshot is archived beside the result so any past run can be
// reproduced from its inputs.
func (r *Runner) Evaluate(ctx context.Context, orgID, assessmentID string) (*EvaluationRow, *assess.Result, error) {
	a, err := r.assessments.GetAssessment(ctx, assessmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("load assessment: %w", err)
	}
	variant, ok := r.variants[a.Variant]
	if !ok {
		return nil, nil, fmt.Errorf("assessment %s references unknown variant %q", assessmentID, a.Variant)
	}

	rows, err := r.assessments.ListAnswers(ctx, assessmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("load answers: %w", err)
	}
	answers, err := decodeAnswers(r.registry, rows)
	if err != nil {
		return nil, nil, fmt.Errorf("decode answers: %w", err)
	}

	result, err := r.engine.Evaluate(variant, answers)
	if err != nil {
		return nil, nil, fmt.Errorf("evaluate: %w", err)
	}

	evaluationID := NewEvaluationID()

	resultData, err := json.Marshal(result)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal result: %w", err)
	}
	if err := r.storage.PutEvaluation(ctx, orgID, evaluationID, resultData); err != nil {
		return nil, nil, fmt.Errorf("archive result: %w", err)
	}

	snapshotData, err := json.Marshal(answers)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal answer snapshot: %w", err)
	}
	if err := r.storage.PutSnapshot(ctx, orgID, evaluationID, snapshotData); err != nil {
		return nil, nil, fmt.Errorf("archive answer snapshot: %w", err)
	}

	row, err := r.assessments.InsertEvaluation(ctx, summarize(evaluationID, assessmentID, orgID, result))
	if err != nil {
		return nil, nil, fmt.Errorf("store evaluation row: %w", err)
	}

	log.Printf("evaluation %s completed: assessment=%s verdict=%s", evaluationID, assessmentID, result.Recommendation.Verdict)
	return row, result, nil
}

// summarize condenses a result into its database row. The storage ref
// points at the archived full payload.
func summarize(evaluationID, assessmentID, orgID string, result *assess.Result) EvaluationRow {
	row := EvaluationRow{
		ID:            evaluationID,
		AssessmentID:  assessmentID,
		Variant:       result.Variant,
		PrimaryFactor: string(result.Recommendation.PrimaryFactor),
		CriticalFlags: result.FlagCounts[assess.SeverityCritical],
		WarnFlags:     result.FlagCounts[assess.SeverityWarn],
		OpenGates:     len(result.Gates),
		StorageRef:    fmt.Sprintf("%s/evaluations/%s.json", orgID, evaluationID),
	}
	if v := result.Recommendation.Verdict; v != "" {
		s := string(v)
		row.Verdict = &s
	}
	if result.Index.Value.Valid {
		v := result.Index.Value.Value
		row.IndexValue = &v
	}
	return row
}

// decodeAnswers converts stored answer rows back into typed answers,
// re-checking every raw value against the registry.
func decodeAnswers(reg *assess.Registry, rows []AnswerRow) ([]assess.Answer, error) {
	answers := make([]assess.Answer, 0, len(rows))
	for _, row := range rows {
		def, ok := reg.Question(row.QuestionID)
		if !ok {
			return nil, fmt.Errorf("answer %s references unknown question %q", row.ID, row.QuestionID)
		}
		var raw any
		if err := json.Unmarshal(row.Value, &raw); err != nil {
			return nil, fmt.Errorf("answer %s: %w", row.ID, err)
		}
		value, err := assess.ParseAnswerValue(def, raw)
		if err != nil {
			return nil, fmt.Errorf("answer %s: %w", row.ID, err)
		}
		answers = append(answers, assess.Answer{
			QuestionID:    row.QuestionID,
			ParticipantID: row.ParticipantID,
			Role:          assess.Role(row.Role),
			Value:         value,
		})
	}
	return answers, nil
}
