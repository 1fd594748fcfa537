package assess

// NarrativeView is the one-way boundary towards narrative generation.
// Narrative components read the finalized result through this view and
// have no write path back into scoring state; the view hands out copies
// only.
type NarrativeView struct {
	result *Result
}

// NarrativeView returns a read-only view over a finalized result.
func (r *Result) NarrativeView() NarrativeView {
	return NarrativeView{result: r}
}

// Verdict returns the final verdict (empty for gate-only variants).
func (v NarrativeView) Verdict() Verdict { return v.result.Recommendation.Verdict }

// PrimaryFactor returns the rule that decided the verdict.
func (v NarrativeView) PrimaryFactor() PrimaryFactor { return v.result.Recommendation.PrimaryFactor }

// IndexValue returns the clarity index value if one was computed.
func (v NarrativeView) IndexValue() (float64, bool) {
	if !v.result.Index.Computed || !v.result.Index.Value.Valid {
		return 0, false
	}
	return v.result.Index.Value.Value, true
}

// Flags returns a copy of the sorted flag list.
func (v NarrativeView) Flags() []Flag {
	out := make([]Flag, len(v.result.Flags))
	copy(out, v.result.Flags)
	return out
}

// BlindSpots returns only the open-text classification flags, the sole
// input the blind-spot narrative may use.
func (v NarrativeView) BlindSpots() []Flag {
	var out []Flag
	for _, f := range v.result.Flags {
		if f.ID == FlagBlindSpot {
			out = append(out, f)
		}
	}
	return out
}

// Gates returns a copy of the fired gate list.
func (v NarrativeView) Gates() []Gate {
	out := make([]Gate, len(v.result.Gates))
	copy(out, v.result.Gates)
	return out
}
