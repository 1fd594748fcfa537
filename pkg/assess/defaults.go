package assess

import "math"

// Thresholds holds the fixed numeric cut-offs of the pipeline. All
// Likert-derived thresholds are expressed on the 1-5 adjusted scale;
// 0-100 inputs are converted, never compared against a second set.
type Thresholds struct {
	IndexLow       float64 `json:"index_low" yaml:"index_low"`             // below: NO_GO
	IndexHigh      float64 `json:"index_high" yaml:"index_high"`           // at or above: GO candidate
	DimensionFloor float64 `json:"dimension_floor" yaml:"dimension_floor"` // G1/G2 floor, 0-100
	HighAdjusted   int     `json:"high_adjusted" yaml:"high_adjusted"`     // "high" rating, adjusted scale
	CrossRoleGap   float64 `json:"cross_role_gap" yaml:"cross_role_gap"`   // mismatch gap, adjusted units
}

// DefaultThresholds returns the standard cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		IndexLow:       55,
		IndexHigh:      75,
		DimensionFloor: 50,
		HighAdjusted:   4,
		CrossRoleGap:   2.0,
	}
}

// indexWeights are the fixed clarity index weights. The gate-only process
// dimension has weight 0 by construction: it is absent from this table.
var indexWeights = map[Dimension]float64{
	DimensionStrategy:   0.20,
	DimensionValue:      0.25,
	DimensionReadiness:  0.20,
	DimensionRisk:       0.20,
	DimensionGovernance: 0.15,
}

// IndexWeights returns a copy of the clarity index weight table.
func IndexWeights() map[Dimension]float64 {
	out := make(map[Dimension]float64, len(indexWeights))
	for d, w := range indexWeights {
		out[d] = w
	}
	return out
}

// ValidateIndexWeights checks the weight table invariants: the scored
// weights sum to 1.0 and the process dimension carries no weight.
func ValidateIndexWeights(weights map[Dimension]float64) error {
	var sum float64
	for d, w := range weights {
		if d == DimensionProcess && w != 0 {
			return configErrorf("process dimension has index weight %v, want 0", w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return configErrorf("index weights sum to %v, want 1.0", sum)
	}
	return nil
}

// DefaultDetectors returns the standard set of flag detectors. A nil
// classifier disables open-text classification (the detector then emits
// nothing, which is not an error).
func DefaultDetectors(classifier TextClassifier) []Detector {
	return []Detector{
		&ReversedPairDetector{},
		&TriadDetector{},
		&ConfidencePairDetector{},
		&CrossRoleDetector{CriticalGroup: "data_readiness"},
		&OwnershipDetector{Sentinel: OwnerUnclearSentinel, DiffusionMin: 3},
		&TradeOffDetector{Sentinel: NothingImpactedSentinel},
		&TimeShiftDetector{},
		&OpenTextDetector{Classifier: classifier},
	}
}
