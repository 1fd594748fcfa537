package assess

import (
	"sort"
	"strings"
)

// Detector is the interface all contradiction detectors implement. A
// detector that cannot evaluate (missing questions or answers) returns no
// flags: absence of evidence is not evidence of absence, never an error.
type Detector interface {
	// Key returns the machine-readable detector identifier.
	Key() string
	// Name returns the human-readable detector name.
	Name() string
	// Detect scans the answer snapshot for one contradiction pattern.
	Detect(in DetectionInput) []Flag
}

// DetectionInput is the read-only snapshot every detector sees. Detectors
// are mutually independent and share no mutable state.
type DetectionInput struct {
	Registry   *Registry
	Answers    *AnswerSet
	Thresholds Thresholds
	Classifier TextClassifier
}

// FlagEngine runs all configured detectors, deduplicates their output and
// sorts it by severity.
type FlagEngine struct {
	detectors []Detector
}

// NewFlagEngine creates a flag engine with the given detectors.
func NewFlagEngine(detectors ...Detector) *FlagEngine {
	return &FlagEngine{detectors: detectors}
}

// Run executes every detector against the snapshot, deduplicates by
// flag id + evidence key, and sorts CRITICAL > WARN > INFO. Ties are
// broken by id and evidence key so output ordering never depends on
// detector execution order.
func (e *FlagEngine) Run(in DetectionInput) []Flag {
	var flags []Flag
	for _, d := range e.detectors {
		flags = append(flags, d.Detect(in)...)
	}

	seen := map[string]bool{}
	deduped := flags[:0]
	for _, f := range flags {
		k := flagKey(f)
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, f)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		ri, rj := severityRank(deduped[i].Severity), severityRank(deduped[j].Severity)
		if ri != rj {
			return ri < rj
		}
		if deduped[i].ID != deduped[j].ID {
			return deduped[i].ID < deduped[j].ID
		}
		return flagKey(deduped[i]) < flagKey(deduped[j])
	})

	return deduped
}

// flagKey builds the dedup key: flag id plus the identifying evidence
// coordinates, so the same pattern found twice for distinct evidence is
// kept while true duplicates collapse.
func flagKey(f Flag) string {
	parts := []string{string(f.ID)}
	for _, ev := range f.Evidence {
		parts = append(parts, ev.QuestionID+"/"+ev.ParticipantID)
	}
	return strings.Join(parts, "|")
}

// countBySeverity tallies flags per severity level.
func countBySeverity(flags []Flag) map[Severity]int {
	counts := map[Severity]int{}
	for _, f := range flags {
		counts[f.Severity]++
	}
	return counts
}

// hasCritical reports whether any CRITICAL flag is present.
func hasCritical(flags []Flag) bool {
	for _, f := range flags {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
