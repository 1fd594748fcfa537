package assess

import (
	"errors"
	"fmt"
)

// ErrInvalidLikert marks a raw rating outside the integer range [1,5].
// The offending answer is excluded from aggregation; it never aborts an
// evaluation.
var ErrInvalidLikert = errors.New("invalid likert value")

// NormalizedScore is the derived form of one Likert answer. Recomputed
// from the answer and its question definition on every evaluation.
type NormalizedScore struct {
	Raw      int     `json:"raw"`
	Adjusted int     `json:"adjusted"` // 1-5 after reverse-scoring
	Score    float64 `json:"score"`    // 0-100
	Reversed bool    `json:"reversed"`
}

// Normalize converts a raw 1-5 rating into an adjusted value and a 0-100
// score, applying reverse-scoring: adjusted = 6 - raw for reversed
// questions, and score = (adjusted - 1) * 25.
func Normalize(raw int, reverse bool) (NormalizedScore, error) {
	if raw < 1 || raw > 5 {
		return NormalizedScore{}, fmt.Errorf("%w: %d", ErrInvalidLikert, raw)
	}
	adjusted := raw
	if reverse {
		adjusted = 6 - raw
	}
	return NormalizedScore{
		Raw:      raw,
		Adjusted: adjusted,
		Score:    float64(adjusted-1) * 25,
		Reversed: reverse,
	}, nil
}

// NormalizeAnswer normalizes a Likert answer against its definition.
func NormalizeAnswer(def *QuestionDefinition, a Answer) (NormalizedScore, error) {
	if def.Type != TypeLikert || a.Value.Kind != TypeLikert {
		return NormalizedScore{}, fmt.Errorf("question %s: not a likert answer", def.ID)
	}
	return Normalize(a.Value.Likert, def.Reverse)
}

// meanOf returns the arithmetic mean as a Score. An empty input yields an
// invalid Score, never 0 or NaN; this null-propagation is load-bearing for
// every aggregation downstream.
func meanOf(values []float64) Score {
	if len(values) == 0 {
		return Score{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return ValidScore(sum / float64(len(values)))
}

// adjustedUnits converts a 0-100 score back to the 1-5 adjusted scale.
// Cross-role thresholds are expressed in adjusted units only; callers
// convert with this instead of keeping a second threshold.
func adjustedUnits(score float64) float64 {
	return score/25 + 1
}
