package assess_test

import (
	"testing"

	"github.com/claritygate/claritygate/pkg/assess"
)

func scoredIndex(v float64) assess.IndexResult {
	return assess.IndexResult{
		Computed: true,
		Value:    assess.Score{Value: v, Valid: true},
		Label:    assess.IndexLabel(v, assess.DefaultThresholds()),
	}
}

func TestRecommendPrecedence(t *testing.T) {
	criticalFlag := assess.Flag{ID: assess.FlagNarrativeInflationRisk, Severity: assess.SeverityCritical}
	floorGate := assess.Gate{ID: assess.GateDimensionFloor, Dimension: assess.DimensionValue, Reason: "value scored 48.0, below the 50 floor"}

	tests := []struct {
		name    string
		index   assess.IndexResult
		flags   []assess.Flag
		gates   []assess.Gate
		verdict assess.Verdict
		factor  assess.PrimaryFactor
	}{
		{"clear index goes", scoredIndex(82), nil, nil, assess.VerdictGo, assess.FactorClearIndex},
		{"open gate blocks a clear index", scoredIndex(82), nil, []assess.Gate{floorGate}, assess.VerdictClarify, assess.FactorGatesOpen},
		{"low index is no-go regardless of gates", scoredIndex(42), nil, []assess.Gate{floorGate}, assess.VerdictNoGo, assess.FactorLowIndex},
		{"critical flag overrides a high index", scoredIndex(78), []assess.Flag{criticalFlag}, nil, assess.VerdictNoGo, assess.FactorCriticalFlags},
		{"mid index clarifies", scoredIndex(60), nil, nil, assess.VerdictClarify, assess.FactorMidIndex},
		{"high boundary is inclusive", scoredIndex(75), nil, nil, assess.VerdictGo, assess.FactorClearIndex},
		{"low boundary is clarify, not no-go", scoredIndex(55), nil, nil, assess.VerdictClarify, assess.FactorMidIndex},
		{"null index clarifies", assess.IndexResult{Computed: true}, nil, nil, assess.VerdictClarify, assess.FactorInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := assess.Recommend(tt.index, tt.flags, tt.gates, boardroomVariant(), assess.DefaultThresholds())
			if rec.Verdict != tt.verdict {
				t.Errorf("verdict = %q, want %q", rec.Verdict, tt.verdict)
			}
			if rec.PrimaryFactor != tt.factor {
				t.Errorf("primary factor = %q, want %q", rec.PrimaryFactor, tt.factor)
			}
			if rec.Reason == "" {
				t.Error("reason must never be empty")
			}
		})
	}
}

func TestRecommendGateOnlyVariant(t *testing.T) {
	rec := assess.Recommend(assess.IndexResult{}, nil, nil,
		assess.DefaultVariants()["process_check"], assess.DefaultThresholds())
	if rec.Verdict != "" {
		t.Errorf("verdict = %q, want empty for a gate-only variant", rec.Verdict)
	}
	if rec.PrimaryFactor != assess.FactorNotApplicable {
		t.Errorf("primary factor = %q, want %q", rec.PrimaryFactor, assess.FactorNotApplicable)
	}
}

func TestRecommendFactorsListEverything(t *testing.T) {
	flags := []assess.Flag{
		{ID: assess.FlagProofGap, Severity: assess.SeverityWarn},
		{ID: assess.FlagBlindSpot, Severity: assess.SeverityInfo},
	}
	gates := []assess.Gate{{ID: assess.GateAdoptionConflict, Reason: "user friction 100.0 and readiness 100.0 are both high"}}

	rec := assess.Recommend(scoredIndex(68), flags, gates, boardroomVariant(), assess.DefaultThresholds())
	if rec.Verdict != assess.VerdictClarify {
		t.Fatalf("verdict = %q, want CLARIFY", rec.Verdict)
	}
	// index + warn count + gate; info flags are not a factor.
	if len(rec.Factors) != 3 {
		t.Errorf("factors = %v, want 3 entries", rec.Factors)
	}
}
