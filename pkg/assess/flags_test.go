package assess_test

import (
	"testing"

	"github.com/claritygate/claritygate/pkg/assess"
)

func TestFlagEngineSortsBySeverity(t *testing.T) {
	// One CRITICAL (ownership sentinel), one WARN (reversed pair), one
	// INFO (blind spot). Detector order is INFO-first to prove ordering
	// comes from severity, not execution order.
	engine := assess.NewFlagEngine(
		&assess.OpenTextDetector{Classifier: assess.KeywordClassifier{}},
		&assess.ReversedPairDetector{},
		&assess.OwnershipDetector{Sentinel: assess.OwnerUnclearSentinel, DiffusionMin: 3},
	)
	answers := []assess.Answer{
		likert("exec_strat_3", "p1", assess.RoleExecutive, 5),
		likert("exec_strat_2r", "p1", assess.RoleExecutive, 1),
		choice("own_exec", "p1", assess.RoleExecutive, assess.OwnerUnclearSentinel),
		{QuestionID: "ft_1", ParticipantID: "p2", Role: assess.RoleWorkforce,
			Value: assess.TextValue("there is a real risk nobody has looked at")},
	}

	flags := engine.Run(assess.DetectionInput{
		Registry:   testRegistry(t),
		Answers:    assess.NewAnswerSet(answers),
		Thresholds: assess.DefaultThresholds(),
	})

	want := []assess.Severity{assess.SeverityCritical, assess.SeverityWarn, assess.SeverityInfo}
	if len(flags) != len(want) {
		t.Fatalf("got %d flags, want %d: %+v", len(flags), len(want), flags)
	}
	for i, sev := range want {
		if flags[i].Severity != sev {
			t.Errorf("flags[%d].Severity = %s, want %s", i, flags[i].Severity, sev)
		}
	}
}

func TestFlagEngineDeduplicates(t *testing.T) {
	// The same detector registered twice produces identical flags; the
	// engine collapses them by flag id + evidence key.
	engine := assess.NewFlagEngine(&assess.ReversedPairDetector{}, &assess.ReversedPairDetector{})
	answers := []assess.Answer{
		likert("exec_strat_3", "p1", assess.RoleExecutive, 5),
		likert("exec_strat_2r", "p1", assess.RoleExecutive, 1),
	}

	flags := engine.Run(assess.DetectionInput{
		Registry:   testRegistry(t),
		Answers:    assess.NewAnswerSet(answers),
		Thresholds: assess.DefaultThresholds(),
	})
	if len(flags) != 1 {
		t.Fatalf("got %d flags, want duplicates collapsed to 1: %+v", len(flags), flags)
	}
}

func TestFlagEngineKeepsDistinctEvidence(t *testing.T) {
	// Same flag id for two different participants is two findings.
	engine := assess.NewFlagEngine(&assess.ReversedPairDetector{})
	answers := []assess.Answer{
		likert("exec_strat_3", "p1", assess.RoleExecutive, 5),
		likert("exec_strat_2r", "p1", assess.RoleExecutive, 1),
		likert("exec_strat_3", "p2", assess.RoleExecutive, 4),
		likert("exec_strat_2r", "p2", assess.RoleExecutive, 2),
	}

	flags := engine.Run(assess.DetectionInput{
		Registry:   testRegistry(t),
		Answers:    assess.NewAnswerSet(answers),
		Thresholds: assess.DefaultThresholds(),
	})
	if len(flags) != 2 {
		t.Fatalf("got %d flags, want 2 distinct findings: %+v", len(flags), flags)
	}
}

func TestDefaultDetectorsCoverCatalog(t *testing.T) {
	detectors := assess.DefaultDetectors(assess.KeywordClassifier{})
	if len(detectors) != 8 {
		t.Fatalf("got %d detectors, want 8", len(detectors))
	}
	seen := map[string]bool{}
	for _, d := range detectors {
		if d.Key() == "" || d.Name() == "" {
			t.Errorf("detector %T has empty key or name", d)
		}
		if seen[d.Key()] {
			t.Errorf("duplicate detector key %q", d.Key())
		}
		seen[d.Key()] = true
	}
}
