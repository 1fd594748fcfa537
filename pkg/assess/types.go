// Package assess implements the Claritygate decision-analysis pipeline.
// It evaluates multi-stakeholder survey answers and produces a deterministic,
// evidence-backed GO / CLARIFY / NO_GO recommendation.
package assess

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Severity indicates how concerning a detected contradiction is.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarn     Severity = "WARN"
	SeverityInfo     Severity = "INFO"
)

// severityRank orders severities for sorting: CRITICAL first.
func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarn:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// Score is a nullable 0-100 score. An invalid Score means "insufficient
// data", which is distinct from a score of 0 and must propagate as-is
// through every aggregation step.
type Score struct {
	Value float64
	Valid bool
}

// ValidScore wraps a raw value into a valid Score.
func ValidScore(v float64) Score {
	return Score{Value: v, Valid: true}
}

// MarshalJSON renders a valid score as a number and an invalid one as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(s.Value, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a number or null.
func (s *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Score{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = ValidScore(v)
	return nil
}

// FlagID identifies a contradiction pattern from the fixed flag catalog.
type FlagID string

const (
	FlagReversedPairConflict      FlagID = "REVERSED_PAIR_CONFLICT"
	FlagNarrativeInflationRisk    FlagID = "NARRATIVE_INFLATION_RISK"
	FlagProofGap                  FlagID = "PROOF_GAP"
	FlagConsequenceUnowned        FlagID = "CONSEQUENCE_UNOWNED"
	FlagConfidenceWithoutEvidence FlagID = "CONFIDENCE_WITHOUT_EVIDENCE"
	FlagCrossRoleMismatch         FlagID = "CROSS_ROLE_MISMATCH"
	FlagOwnershipDiffusion        FlagID = "OWNERSHIP_DIFFUSION"
	FlagCapacityIllusionBusiness  FlagID = "CAPACITY_ILLUSION_BUSINESS"
	FlagCapacityIllusionTech      FlagID = "CAPACITY_ILLUSION_TECH"
	FlagCapacityIllusionConfirmed FlagID = "CAPACITY_ILLUSION_CONFIRMED"
	FlagTimeInconsistency         FlagID = "TIME_INCONSISTENCY"
	FlagBlindSpot                 FlagID = "BLIND_SPOT"
)

// EvidenceItem is a single piece of concrete evidence backing a flag or gate.
// It carries enough structure that a privacy filter can drop respondent-level
// fields without re-deriving scores.
type EvidenceItem struct {
	QuestionID    string  `json:"question_id,omitempty"`
	Role          Role    `json:"role,omitempty"`
	ParticipantID string  `json:"participant_id,omitempty"`
	Value         string  `json:"value,omitempty"`  // rendered raw value
	Detail        string  `json:"detail,omitempty"` // descriptive label
	Numeric       float64 `json:"numeric,omitempty"`
}

// Flag is a detected contradiction/risk pattern. Computed fresh on every
// evaluation from the current answer snapshot.
type Flag struct {
	ID       FlagID         `json:"id"`
	Severity Severity       `json:"severity"`
	Summary  string         `json:"summary"`
	Evidence []EvidenceItem `json:"evidence,omitempty"`
}

// GateID identifies one of the four override gates.
type GateID string

const (
	GateDimensionFloor    GateID = "G1"
	GateProcessFloor      GateID = "G2"
	GateAdoptionConflict  GateID = "G3"
	GateCriticalOwnership GateID = "G4"
)

// Gate is a fired override check. Any open gate forces the recommendation
// to at least CLARIFY regardless of the index value.
type Gate struct {
	ID        GateID    `json:"id"`
	Reason    string    `json:"reason"`
	Dimension Dimension `json:"dimension,omitempty"`
	FlagID    FlagID    `json:"flag_id,omitempty"`
}

// Verdict is the final recommendation value. It is empty for gate-only
// variants that do not compute an index.
type Verdict string

const (
	VerdictGo      Verdict = "GO"
	VerdictClarify Verdict = "CLARIFY"
	VerdictNoGo    Verdict = "NO_GO"
)

// PrimaryFactor names the rule that decided the recommendation.
type PrimaryFactor string

const (
	FactorNotApplicable    PrimaryFactor = "NOT_APPLICABLE"
	FactorLowIndex         PrimaryFactor = "LOW_INDEX"
	FactorCriticalFlags    PrimaryFactor = "CRITICAL_FLAGS"
	FactorGatesOpen        PrimaryFactor = "GATES_OPEN"
	FactorMidIndex         PrimaryFactor = "MID_INDEX"
	FactorClearIndex       PrimaryFactor = "CLEAR_INDEX"
	FactorInsufficientData PrimaryFactor = "INSUFFICIENT_DATA"
)

// Recommendation is the terminal output of one evaluation pass.
type Recommendation struct {
	Verdict       Verdict       `json:"verdict,omitempty"`
	PrimaryFactor PrimaryFactor `json:"primary_factor"`
	Reason        string        `json:"reason"`
	Factors       []string      `json:"factors,omitempty"`
}

// IndexContribution is one dimension's share of the clarity index.
type IndexContribution struct {
	Dimension Dimension `json:"dimension"`
	Score     Score     `json:"score"`
	Weight    float64   `json:"weight"`
	Weighted  float64   `json:"weighted"` // weight x score, 0 when score is null
}

// IndexResult is the clarity index with its per-dimension breakdown.
type IndexResult struct {
	Computed  bool                `json:"computed"`
	Value     Score               `json:"value"`
	Label     string              `json:"label,omitempty"`
	Breakdown []IndexContribution `json:"breakdown,omitempty"`
}

// DimensionScores maps dimensions to nullable case or role scores.
type DimensionScores map[Dimension]Score

// RoleDimensionScores holds per-role dimension scores.
type RoleDimensionScores map[Role]DimensionScores

// ProcessAreaScore is the score of one process area.
type ProcessAreaScore struct {
	Area  string `json:"area"`
	Score Score  `json:"score"`
}

// ProcessResult is the output of the process scorer. Inactive for variants
// without the process dimension.
type ProcessResult struct {
	Active    bool               `json:"active"`
	CaseScore Score              `json:"case_score"`
	Areas     []ProcessAreaScore `json:"areas,omitempty"`
}

// ValidationIssue reports a single answer that was excluded from
// aggregation, e.g. an out-of-range Likert value. Not a pipeline failure.
type ValidationIssue struct {
	QuestionID    string `json:"question_id"`
	ParticipantID string `json:"participant_id,omitempty"`
	Detail        string `json:"detail"`
}

// Result is the complete output of one evaluation. Immutable once computed;
// re-evaluating the same snapshot yields a byte-identical Result.
type Result struct {
	Variant          string              `json:"variant"`
	CaseScores       DimensionScores     `json:"case_scores"`
	RoleScores       RoleDimensionScores `json:"role_scores"`
	Index            IndexResult         `json:"index"`
	Flags            []Flag              `json:"flags"`
	FlagCounts       map[Severity]int    `json:"flag_counts"`
	Gates            []Gate              `json:"gates"`
	HasGates         bool                `json:"has_gates"`
	Process          ProcessResult       `json:"process"`
	Recommendation   Recommendation      `json:"recommendation"`
	ValidationIssues []ValidationIssue   `json:"validation_issues,omitempty"`
}

// IndexLabel buckets an index value into the fixed clarity tiers.
func IndexLabel(value float64, t Thresholds) string {
	switch {
	case value < t.IndexLow:
		return "unclear"
	case value < t.IndexHigh:
		return "ambiguous"
	default:
		return "clear"
	}
}
