package assess

import (
	"fmt"
)

// Recommend combines index, flags and gates into the final verdict. It is
// a pure, total function evaluated in strict precedence order, first
// match wins:
//
//  1. gate-only variant              -> no verdict, NOT_APPLICABLE
//  2. index < low OR critical flag   -> NO_GO (a critical contradiction
//     overrides any index value)
//  3. any gate open                  -> CLARIFY
//  4. low <= index < high            -> CLARIFY
//  5. otherwise                      -> GO
//
// No probabilistic input reaches this function; narrative text downstream
// references this result and never recomputes it.
func Recommend(index IndexResult, flags []Flag, gates []Gate, variant Variant, t Thresholds) Recommendation {
	if !variant.ComputeIndex {
		return Recommendation{
			PrimaryFactor: FactorNotApplicable,
			Reason:        fmt.Sprintf("variant %s does not compute a clarity index", variant.Name),
		}
	}

	factors := collectFactors(index, flags, gates)
	critical := hasCritical(flags)

	if critical {
		return Recommendation{
			Verdict:       VerdictNoGo,
			PrimaryFactor: FactorCriticalFlags,
			Reason:        fmt.Sprintf("%d critical contradiction(s) detected", countBySeverity(flags)[SeverityCritical]),
			Factors:       factors,
		}
	}

	if !index.Value.Valid {
		// Scored variant without enough answers for any dimension yet:
		// not scored low, but nothing to clear either.
		return Recommendation{
			Verdict:       VerdictClarify,
			PrimaryFactor: FactorInsufficientData,
			Reason:        "not enough answers to compute the clarity index",
			Factors:       factors,
		}
	}

	value := index.Value.Value
	switch {
	case value < t.IndexLow:
		return Recommendation{
			Verdict:       VerdictNoGo,
			PrimaryFactor: FactorLowIndex,
			Reason:        fmt.Sprintf("clarity index %.1f is below %.0f", value, t.IndexLow),
			Factors:       factors,
		}
	case len(gates) > 0:
		return Recommendation{
			Verdict:       VerdictClarify,
			PrimaryFactor: FactorGatesOpen,
			Reason:        fmt.Sprintf("%d gate(s) open despite index %.1f", len(gates), value),
			Factors:       factors,
		}
	case value < t.IndexHigh:
		return Recommendation{
			Verdict:       VerdictClarify,
			PrimaryFactor: FactorMidIndex,
			Reason:        fmt.Sprintf("clarity index %.1f is between %.0f and %.0f", value, t.IndexLow, t.IndexHigh),
			Factors:       factors,
		}
	default:
		return Recommendation{
			Verdict:       VerdictGo,
			PrimaryFactor: FactorClearIndex,
			Reason:        fmt.Sprintf("clarity index %.1f with no critical flags and no open gates", value),
			Factors:       factors,
		}
	}
}

// collectFactors lists every contributing signal, not just the deciding
// one, so downstream explanations can show the whole picture.
func collectFactors(index IndexResult, flags []Flag, gates []Gate) []string {
	var factors []string
	if index.Value.Valid {
		factors = append(factors, fmt.Sprintf("index %.1f (%s)", index.Value.Value, index.Label))
	} else {
		factors = append(factors, "index not computable")
	}
	counts := countBySeverity(flags)
	if counts[SeverityCritical] > 0 {
		factors = append(factors, fmt.Sprintf("%d critical flag(s)", counts[SeverityCritical]))
	}
	if counts[SeverityWarn] > 0 {
		factors = append(factors, fmt.Sprintf("%d warning flag(s)", counts[SeverityWarn]))
	}
	for _, g := range gates {
		factors = append(factors, fmt.Sprintf("gate %s: %s", g.ID, g.Reason))
	}
	return factors
}
