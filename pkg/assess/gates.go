package assess

import "fmt"

// GateInput is everything the gate evaluator reads. Gates run after
// scoring and flag detection and are stateless.
type GateInput struct {
	Registry   *Registry
	Answers    *AnswerSet
	Variant    Variant
	Thresholds Thresholds
	CaseScores DimensionScores
	Process    ProcessResult
	Flags      []Flag
}

// EvaluateGates runs the four override checks. Gates are additive: any
// number can fire, and each carries the evidence needed to explain itself
// downstream. Any open gate floors the recommendation at CLARIFY.
func EvaluateGates(in GateInput) ([]Gate, bool) {
	var gates []Gate

	gates = append(gates, dimensionFloorGates(in)...)
	if g, ok := processFloorGate(in); ok {
		gates = append(gates, g)
	}
	if g, ok := adoptionConflictGate(in); ok {
		gates = append(gates, g)
	}
	if g, ok := criticalOwnershipGate(in); ok {
		gates = append(gates, g)
	}

	return gates, len(gates) > 0
}

// dimensionFloorGates (G1): any scored index dimension below the floor
// opens one gate per failing dimension, tagged with the dimension. Null
// scores never fire: no data is not a low score.
func dimensionFloorGates(in GateInput) []Gate {
	var gates []Gate
	for _, dim := range IndexDimensions() {
		s := in.CaseScores[dim]
		if !s.Valid || s.Value >= in.Thresholds.DimensionFloor {
			continue
		}
		gates = append(gates, Gate{
			ID:        GateDimensionFloor,
			Dimension: dim,
			Reason:    fmt.Sprintf("%s scored %.1f, below the %.0f floor", dim, s.Value, in.Thresholds.DimensionFloor),
		})
	}
	return gates
}

// processFloorGate (G2): only evaluated when the variant carries the
// gate-only process dimension. A variant without it returns no gate, not
// a fire-on-null.
func processFloorGate(in GateInput) (Gate, bool) {
	if !in.Variant.ProcessActive || !in.Process.Active {
		return Gate{}, false
	}
	s := in.Process.CaseScore
	if !s.Valid || s.Value >= in.Thresholds.DimensionFloor {
		return Gate{}, false
	}
	reason := fmt.Sprintf("process readiness scored %.1f, below the %.0f floor", s.Value, in.Thresholds.DimensionFloor)
	if weakest, ok := weakestProcessArea(in.Process); ok {
		reason += fmt.Sprintf(" (weakest area: %s at %s)", weakest.Area, formatScore(weakest.Score))
	}
	return Gate{ID: GateProcessFloor, Dimension: DimensionProcess, Reason: reason}, true
}

// adoptionConflictGate (G3): high reported user friction from one role
// simultaneous with high self-assessed readiness from another signals an
// incongruent self-assessment.
func adoptionConflictGate(in GateInput) (Gate, bool) {
	friction := adoptionScore(in, AdoptionFriction)
	readiness := adoptionScore(in, AdoptionReadiness)
	if !friction.Valid || !readiness.Valid {
		return Gate{}, false
	}
	high := float64(in.Thresholds.HighAdjusted)
	if adjustedUnits(friction.Value) < high || adjustedUnits(readiness.Value) < high {
		return Gate{}, false
	}
	return Gate{
		ID: GateAdoptionConflict,
		Reason: fmt.Sprintf("user friction %.1f and readiness %.1f are both high",
			friction.Value, readiness.Value),
	}, true
}

// adoptionScore averages the normalized scores of the questions carrying
// one adoption tag.
func adoptionScore(in GateInput, tag AdoptionTag) Score {
	var values []float64
	for _, def := range in.Registry.AdoptionQuestions(tag) {
		if def.Type != TypeLikert {
			continue
		}
		for _, a := range in.Answers.ForQuestion(def.ID) {
			ns, err := NormalizeAnswer(def, a)
			if err != nil {
				continue
			}
			values = append(values, ns.Score)
		}
	}
	return meanOf(values)
}

// criticalOwnershipGate (G4): a CRITICAL ownership-diffusion flag opens
// the gate independently of the index value.
func criticalOwnershipGate(in GateInput) (Gate, bool) {
	for _, f := range in.Flags {
		if f.ID == FlagOwnershipDiffusion && f.Severity == SeverityCritical {
			return Gate{
				ID:     GateCriticalOwnership,
				FlagID: FlagOwnershipDiffusion,
				Reason: "ownership diffusion detected at critical severity",
			}, true
		}
	}
	return Gate{}, false
}
