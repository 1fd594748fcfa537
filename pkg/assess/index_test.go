package assess_test

import (
	"math"
	"testing"

	"github.com/claritygate/claritygate/pkg/assess"
)

func TestIndexWeightsSumToOne(t *testing.T) {
	weights := assess.IndexWeights()
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("index weights sum to %v, want 1.0", sum)
	}
	if w, ok := weights[assess.DimensionProcess]; ok && w != 0 {
		t.Errorf("process dimension has index weight %v, want none", w)
	}
	if err := assess.ValidateIndexWeights(weights); err != nil {
		t.Errorf("ValidateIndexWeights: %v", err)
	}
}

func TestComputeIndexIgnoresProcessDimension(t *testing.T) {
	caseScores := assess.DimensionScores{}
	for _, dim := range assess.IndexDimensions() {
		caseScores[dim] = assess.ValidScore(80)
	}
	caseScores[assess.DimensionProcess] = assess.ValidScore(100)

	result := assess.ComputeIndex(caseScores, boardroomVariant(), assess.DefaultThresholds())
	if !result.Computed {
		t.Fatal("index not computed for boardroom variant")
	}
	if !result.Value.Valid || math.Abs(result.Value.Value-80) > 1e-9 {
		t.Errorf("index = %+v, want 80 unaffected by the process score", result.Value)
	}
	if result.Label != "clear" {
		t.Errorf("label = %q, want clear", result.Label)
	}
	if len(result.Breakdown) != 5 {
		t.Errorf("breakdown has %d entries, want 5", len(result.Breakdown))
	}
	for _, c := range result.Breakdown {
		if c.Dimension == assess.DimensionProcess {
			t.Error("process dimension present in index breakdown")
		}
	}
}

func TestComputeIndexWeightedSplit(t *testing.T) {
	caseScores := assess.DimensionScores{
		assess.DimensionStrategy:   assess.ValidScore(100), // 0.20
		assess.DimensionValue:      assess.ValidScore(60),  // 0.25
		assess.DimensionReadiness:  assess.ValidScore(40),  // 0.20
		assess.DimensionRisk:       assess.ValidScore(80),  // 0.20
		assess.DimensionGovernance: assess.ValidScore(20),  // 0.15
	}
	result := assess.ComputeIndex(caseScores, boardroomVariant(), assess.DefaultThresholds())

	want := 100*0.20 + 60*0.25 + 40*0.20 + 80*0.20 + 20*0.15
	if !result.Value.Valid || math.Abs(result.Value.Value-want) > 1e-9 {
		t.Errorf("index = %+v, want %.2f", result.Value, want)
	}
	if result.Label != "ambiguous" {
		t.Errorf("label = %q, want ambiguous", result.Label)
	}
}

func TestComputeIndexRenormalizesOverMissingDimensions(t *testing.T) {
	caseScores := assess.DimensionScores{
		assess.DimensionStrategy: assess.ValidScore(80),
		assess.DimensionValue:    assess.ValidScore(80),
		// readiness, risk, governance not answered yet
	}
	result := assess.ComputeIndex(caseScores, boardroomVariant(), assess.DefaultThresholds())

	if !result.Value.Valid || math.Abs(result.Value.Value-80) > 1e-9 {
		t.Errorf("index = %+v, want 80: partial completion must stay meaningful", result.Value)
	}
}

func TestComputeIndexAllNull(t *testing.T) {
	result := assess.ComputeIndex(assess.DimensionScores{}, boardroomVariant(), assess.DefaultThresholds())
	if !result.Computed {
		t.Fatal("index should be computed (as null) for a scored variant")
	}
	if result.Value.Valid {
		t.Errorf("index = %+v, want null with no dimension data", result.Value)
	}
}

func TestComputeIndexGateOnlyVariant(t *testing.T) {
	caseScores := assess.DimensionScores{assess.DimensionStrategy: assess.ValidScore(90)}
	result := assess.ComputeIndex(caseScores, assess.DefaultVariants()["process_check"], assess.DefaultThresholds())

	if result.Computed {
		t.Errorf("result = %+v, want computed=false for gate-only variant", result)
	}
	if result.Value.Valid {
		t.Errorf("value = %+v, want null", result.Value)
	}
}

func TestIndexLabelBuckets(t *testing.T) {
	th := assess.DefaultThresholds()
	tests := []struct {
		value float64
		want  string
	}{
		{0, "unclear"},
		{54.9, "unclear"},
		{55, "ambiguous"},
		{74.9, "ambiguous"},
		{75, "clear"},
		{100, "clear"},
	}
	for _, tt := range tests {
		if got := assess.IndexLabel(tt.value, th); got != tt.want {
			t.Errorf("IndexLabel(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestVariantValidate(t *testing.T) {
	tests := []struct {
		name    string
		variant assess.Variant
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			variant: boardroomVariant(),
		},
		{
			name: "weights must sum to one",
			variant: assess.Variant{
				Name:         "broken",
				RoleWeights:  map[assess.Role]float64{assess.RoleExecutive: 0.5, assess.RoleIT: 0.3},
				ComputeIndex: true,
			},
			wantErr: true,
		},
		{
			name: "gate-only variant requires process dimension",
			variant: assess.Variant{
				Name:        "broken_gateonly",
				RoleWeights: map[assess.Role]float64{assess.RoleExecutive: 1.0},
			},
			wantErr: true,
		},
		{
			name: "non-positive weight rejected",
			variant: assess.Variant{
				Name:         "negative",
				RoleWeights:  map[assess.Role]float64{assess.RoleExecutive: 1.2, assess.RoleIT: -0.2},
				ComputeIndex: true,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.variant.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	for name, v := range assess.DefaultVariants() {
		if err := v.Validate(); err != nil {
			t.Errorf("default variant %s invalid: %v", name, err)
		}
	}
}
