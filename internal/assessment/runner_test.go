package assessment

import (
	"encoding/json"
	"testing"

	"github.com/claritygate/claritygate/pkg/assess"
)

func runnerRegistry(t *testing.T) *assess.Registry {
	t.Helper()
	reg, err := assess.NewRegistry([]assess.QuestionDefinition{
		{ID: "q1", Role: assess.RoleExecutive, Dimension: assess.DimensionStrategy, Type: assess.TypeLikert},
		{ID: "q2", Role: assess.RoleOperations, Dimension: assess.DimensionGovernance, Type: assess.TypeSingleSelect},
		{ID: "q3", Role: assess.RoleIT, Dimension: assess.DimensionRisk, Type: assess.TypeMultiSelect},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

func TestDecodeAnswers(t *testing.T) {
	rows := []AnswerRow{
		{ID: "a1", QuestionID: "q1", ParticipantID: "p1", Role: "executive", Value: json.RawMessage(`4`)},
		{ID: "a2", QuestionID: "q2", ParticipantID: "p2", Role: "operations", Value: json.RawMessage(`"coo"`)},
		{ID: "a3", QuestionID: "q3", ParticipantID: "p3", Role: "it", Value: json.RawMessage(`["delay","reduce_scope"]`)},
	}

	answers, err := decodeAnswers(runnerRegistry(t), rows)
	if err != nil {
		t.Fatalf("decodeAnswers: %v", err)
	}
	if len(answers) != 3 {
		t.Fatalf("got %d answers, want 3", len(answers))
	}
	if answers[0].Value.Likert != 4 {
		t.Errorf("q1 = %+v, want likert 4", answers[0].Value)
	}
	if answers[1].Value.Choice != "coo" {
		t.Errorf("q2 = %+v, want choice coo", answers[1].Value)
	}
	if len(answers[2].Value.Choices) != 2 {
		t.Errorf("q3 = %+v, want two choices", answers[2].Value)
	}
}

func TestDecodeAnswersRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  AnswerRow
	}{
		{"unknown question", AnswerRow{ID: "a1", QuestionID: "nope", Value: json.RawMessage(`4`)}},
		{"fractional likert", AnswerRow{ID: "a1", QuestionID: "q1", Value: json.RawMessage(`3.5`)}},
		{"wrong shape", AnswerRow{ID: "a1", QuestionID: "q2", Value: json.RawMessage(`7`)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeAnswers(runnerRegistry(t), []AnswerRow{tc.row}); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	result := &assess.Result{
		Variant: "boardroom",
		Index: assess.IndexResult{
			Computed: true,
			Value:    assess.Score{Value: 67.5, Valid: true},
		},
		FlagCounts: map[assess.Severity]int{
			assess.SeverityCritical: 1,
			assess.SeverityWarn:     2,
		},
		Gates: []assess.Gate{{ID: assess.GateDimensionFloor}},
		Recommendation: assess.Recommendation{
			Verdict:       assess.VerdictNoGo,
			PrimaryFactor: assess.FactorCriticalFlags,
		},
	}

	row := summarize("e-1", "as-1", "org-1", result)
	if row.Verdict == nil || *row.Verdict != "NO_GO" {
		t.Errorf("verdict = %v, want NO_GO", row.Verdict)
	}
	if row.IndexValue == nil || *row.IndexValue != 67.5 {
		t.Errorf("index = %v, want 67.5", row.IndexValue)
	}
	if row.CriticalFlags != 1 || row.WarnFlags != 2 || row.OpenGates != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1", row.CriticalFlags, row.WarnFlags, row.OpenGates)
	}
	if row.StorageRef != "org-1/evaluations/e-1.json" {
		t.Errorf("storage ref = %q", row.StorageRef)
	}
}

func TestSummarizeGateOnly(t *testing.T) {
	result := &assess.Result{
		Variant:        "process_check",
		Recommendation: assess.Recommendation{PrimaryFactor: assess.FactorNotApplicable},
	}
	row := summarize("e-2", "as-2", "org-1", result)
	if row.Verdict != nil {
		t.Errorf("verdict = %v, want nil for gate-only variant", row.Verdict)
	}
	if row.IndexValue != nil {
		t.Errorf("index = %v, want nil", row.IndexValue)
	}
}
