// Package assessment manages hosted state: client organizations, their
// assessments, the recorded answers and the stored evaluation runs.
package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service provides assessment management backed by Postgres.
type Service struct {
	db *sql.DB
}

// Org represents one client organization running assessments.
type Org struct {
	ID         string
	Name       string
	ContactRef *string
	CreatedAt  time.Time
}

// Assessment represents one decision case being assessed.
type Assessment struct {
	ID        string
	OrgID     string
	Name      string
	Variant   string
	CreatedAt time.Time
}

// AnswerRow is one recorded answer. The raw value is stored as JSON in the
// shape the question's answer type dictates; it is type-checked before it
// reaches this layer.
type AnswerRow struct {
	ID            string
	AssessmentID  string
	QuestionID    string
	ParticipantID string
	Role          string
	Value         json.RawMessage
	UpdatedAt     time.Time
}

// EvaluationRow is the summary of one stored evaluation run. The full
// result payload lives in the archive under StorageRef.
type EvaluationRow struct {
	ID            string
	AssessmentID  string
	Variant       string
	Verdict       *string
	PrimaryFactor string
	IndexValue    *float64
	CriticalFlags int
	WarnFlags     int
	OpenGates     int
	StorageRef    string
	CreatedAt     time.Time
}

// NewService creates a new assessment Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CreateOrg creates a new client organization.
func (s *Service) CreateOrg(ctx context.Context, name string) (*Org, error) {
	o := &Org{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO orgs (name)
		 VALUES ($1)
		 RETURNING id, name, contact_ref, created_at`,
		name,
	).Scan(&o.ID, &o.Name, &o.ContactRef, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create org: %w", err)
	}
	return o, nil
}

// GetOrgByName looks up an organization by name.
func (s *Service) GetOrgByName(ctx context.Context, name string) (*Org, error) {
	o := &Org{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, contact_ref, created_at FROM orgs WHERE name = $1`,
		name,
	).Scan(&o.ID, &o.Name, &o.ContactRef, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get org by name %s: %w", name, err)
	}
	return o, nil
}

// CreateAssessment creates an assessment for an organization.
func (s *Service) CreateAssessment(ctx context.Context, orgID, name, variant string) (*Assessment, error) {
	a := &Assessment{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO assessments (org_id, name, variant)
		 VALUES ($1, $2, $3)
		 RETURNING id, org_id, name, variant, created_at`,
		orgID, name, variant,
	).Scan(&a.ID, &a.OrgID, &a.Name, &a.Variant, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create assessment %s: %w", name, err)
	}
	return a, nil
}

// GetAssessment retrieves an assessment by ID.
func (s *Service) GetAssessment(ctx context.Context, id string) (*Assessment, error) {
	a := &Assessment{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, org_id, name, variant, created_at FROM assessments WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.OrgID, &a.Name, &a.Variant, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get assessment %s: %w", id, err)
	}
	return a, nil
}

// ListAssessments returns all assessments for an organization.
func (s *Service) ListAssessments(ctx context.Context, orgID string) ([]Assessment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, org_id, name, variant, created_at
		 FROM assessments WHERE org_id = $1 ORDER BY name`,
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.ID, &a.OrgID, &a.Name, &a.Variant, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// EnsureOrgAndAssessment gets or creates an organization (by name) and an
// assessment under it. Returns orgID, assessmentID, and any error.
func (s *Service) EnsureOrgAndAssessment(ctx context.Context, orgName, assessmentName, variant string) (string, string, error) {
	o, err := s.GetOrgByName(ctx, orgName)
	if err != nil {
		o, err = s.CreateOrg(ctx, orgName)
		if err != nil {
			// Could be a race condition; try getting again
			if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
				o, err = s.GetOrgByName(ctx, orgName)
				if err != nil {
					return "", "", fmt.Errorf("ensure org: %w", err)
				}
			} else {
				return "", "", fmt.Errorf("ensure org: %w", err)
			}
		}
	}

	a := &Assessment{}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO assessments (org_id, name, variant)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (org_id, name) DO UPDATE SET variant = EXCLUDED.variant
		 RETURNING id, org_id, name, variant, created_at`,
		o.ID, assessmentName, variant,
	).Scan(&a.ID, &a.OrgID, &a.Name, &a.Variant, &a.CreatedAt)
	if err != nil {
		return "", "", fmt.Errorf("ensure assessment: %w", err)
	}

	return o.ID, a.ID, nil
}

// UpsertAnswer records one answer, idempotently by (assessment,
// participant, question). Re-submitting the same answer overwrites the
// previous value; re-evaluation picks up the current snapshot.
func (s *Service) UpsertAnswer(ctx context.Context, assessmentID, questionID, participantID, role string, value json.RawMessage) (*AnswerRow, error) {
	a := &AnswerRow{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO answers (assessment_id, question_id, participant_id, role, value)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (assessment_id, participant_id, question_id) DO UPDATE
		   SET role = EXCLUDED.role,
		       value = EXCLUDED.value,
		       updated_at = now()
		 RETURNING id, assessment_id, question_id, participant_id, role, value, updated_at`,
		assessmentID, questionID, participantID, role, value,
	).Scan(&a.ID, &a.AssessmentID, &a.QuestionID, &a.ParticipantID, &a.Role, &a.Value, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert answer %s/%s: %w", participantID, questionID, err)
	}
	return a, nil
}

// ListAnswers returns the current answer snapshot for an assessment, in a
// stable order.
func (s *Service) ListAnswers(ctx context.Context, assessmentID string) ([]AnswerRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, assessment_id, question_id, participant_id, role, value, updated_at
		 FROM answers WHERE assessment_id = $1
		 ORDER BY question_id, participant_id`,
		assessmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRow
	for rows.Next() {
		var a AnswerRow
		if err := rows.Scan(&a.ID, &a.AssessmentID, &a.QuestionID, &a.ParticipantID, &a.Role, &a.Value, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// NewEvaluationID mints the evaluation id before the run so the archive
// payload can be stored under the same key the row references.
func NewEvaluationID() string {
	return uuid.NewString()
}

// InsertEvaluation stores the summary row for one evaluation run.
func (s *Service) InsertEvaluation(ctx context.Context, row EvaluationRow) (*EvaluationRow, error) {
	e := &EvaluationRow{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO evaluations (id, assessment_id, variant, verdict, primary_factor,
		                          index_value, critical_flags, warn_flags, open_gates, storage_ref)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, assessment_id, variant, verdict, primary_factor,
		           index_value, critical_flags, warn_flags, open_gates, storage_ref, created_at`,
		row.ID, row.AssessmentID, row.Variant, row.Verdict, row.PrimaryFactor,
		row.IndexValue, row.CriticalFlags, row.WarnFlags, row.OpenGates, row.StorageRef,
	).Scan(
		&e.ID, &e.AssessmentID, &e.Variant, &e.Verdict, &e.PrimaryFactor,
		&e.IndexValue, &e.CriticalFlags, &e.WarnFlags, &e.OpenGates, &e.StorageRef, &e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert evaluation: %w", err)
	}
	return e, nil
}

// GetEvaluationByID returns a single evaluation summary by ID.
func (s *Service) GetEvaluationByID(ctx context.Context, id string) (*EvaluationRow, error) {
	e := &EvaluationRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, assessment_id, variant, verdict, primary_factor,
		        index_value, critical_flags, warn_flags, open_gates, storage_ref, created_at
		 FROM evaluations WHERE id = $1`,
		id,
	).Scan(
		&e.ID, &e.AssessmentID, &e.Variant, &e.Verdict, &e.PrimaryFactor,
		&e.IndexValue, &e.CriticalFlags, &e.WarnFlags, &e.OpenGates, &e.StorageRef, &e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get evaluation %s: %w", id, err)
	}
	return e, nil
}

// ListEvaluations returns all evaluations for an assessment, newest first.
func (s *Service) ListEvaluations(ctx context.Context, assessmentID string) ([]EvaluationRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, assessment_id, variant, verdict, primary_factor,
		        index_value, critical_flags, warn_flags, open_gates, storage_ref, created_at
		 FROM evaluations WHERE assessment_id = $1 ORDER BY created_at DESC`,
		assessmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var out []EvaluationRow
	for rows.Next() {
		var e EvaluationRow
		if err := rows.Scan(
			&e.ID, &e.AssessmentID, &e.Variant, &e.Verdict, &e.PrimaryFactor,
			&e.IndexValue, &e.CriticalFlags, &e.WarnFlags, &e.OpenGates, &e.StorageRef, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LatestEvaluation returns the most recent evaluation for an assessment.
func (s *Service) LatestEvaluation(ctx context.Context, assessmentID string) (*EvaluationRow, error) {
	e := &EvaluationRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, assessment_id, variant, verdict, primary_factor,
		        index_value, critical_flags, warn_flags, open_gates, storage_ref, created_at
		 FROM evaluations WHERE assessment_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		assessmentID,
	).Scan(
		&e.ID, &e.AssessmentID, &e.Variant, &e.Verdict, &e.PrimaryFactor,
		&e.IndexValue, &e.CriticalFlags, &e.WarnFlags, &e.OpenGates, &e.StorageRef, &e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("latest evaluation for %s: %w", assessmentID, err)
	}
	return e, nil
}
