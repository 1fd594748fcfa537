package assess

// ComputeIndex folds the case dimension scores into the single 0-100
// clarity index. The gate-only process dimension carries weight 0 by
// construction and never affects the value.
//
// The weighted sum runs only over dimensions with a non-null score, with
// the weights renormalized over those dimensions so a not-yet-answered
// dimension does not deflate the index. If every scored dimension is null
// the index value itself is null. Variants configured without an index
// return computed=false.
func ComputeIndex(caseScores DimensionScores, variant Variant, t Thresholds) IndexResult {
	if !variant.ComputeIndex {
		return IndexResult{}
	}

	result := IndexResult{Computed: true}
	var weighted, weightSum float64

	for _, dim := range IndexDimensions() {
		w := indexWeights[dim]
		s := caseScores[dim]
		contrib := IndexContribution{Dimension: dim, Score: s, Weight: w}
		if s.Valid {
			contrib.Weighted = w * s.Value
			weighted += contrib.Weighted
			weightSum += w
		}
		result.Breakdown = append(result.Breakdown, contrib)
	}

	if weightSum > 0 {
		result.Value = ValidScore(weighted / weightSum)
		result.Label = IndexLabel(result.Value.Value, t)
	}

	return result
}
