package assess_test

import (
	"testing"

	"github.com/claritygate/claritygate/pkg/assess"
)

func TestReversedPairConflict(t *testing.T) {
	// Raw 5 on the straight question and raw 1 on the reversed one both
	// normalize to adjusted 5: the participant agreed with a statement
	// and with its inversion.
	answers := []assess.Answer{
		likert("exec_strat_3", "p1", assess.RoleExecutive, 5),
		likert("exec_strat_2r", "p1", assess.RoleExecutive, 1),
	}
	flags := detect(t, &assess.ReversedPairDetector{}, answers)

	if len(flags) != 1 {
		t.Fatalf("got %d flags, want 1: %+v", len(flags), flags)
	}
	if flags[0].ID != assess.FlagReversedPairConflict || flags[0].Severity != assess.SeverityWarn {
		t.Errorf("flag = %s/%s, want REVERSED_PAIR_CONFLICT at WARN", flags[0].ID, flags[0].Severity)
	}
}

func TestReversedPairConsistentAnswers(t *testing.T) {
	// Raw 5 straight and raw 5 reversed (adjusted 1) is consistent.
	answers := []assess.Answer{
		likert("exec_strat_3", "p1", assess.RoleExecutive, 5),
		likert("exec_strat_2r", "p1", assess.RoleExecutive, 5),
	}
	if flags := detect(t, &assess.ReversedPairDetector{}, answers); len(flags) != 0 {
		t.Errorf("got %+v, want no flags for consistent answers", flags)
	}
}

func TestReversedPairPerParticipant(t *testing.T) {
	// p1 contradicts, p2 is consistent: exactly one flag, carrying p1.
	answers := []assess.Answer{
		likert("exec_strat_3", "p1", assess.RoleExecutive, 5),
		likert("exec_strat_2r", "p1", assess.RoleExecutive, 1),
		likert("exec_strat_3", "p2", assess.RoleExecutive, 5),
		likert("exec_strat_2r", "p2", assess.RoleExecutive, 5),
	}
	flags := detect(t, &assess.ReversedPairDetector{}, answers)
	if len(flags) != 1 {
		t.Fatalf("got %d flags, want 1: %+v", len(flags), flags)
	}
	if flags[0].Evidence[0].ParticipantID != "p1" {
		t.Errorf("evidence participant = %s, want p1", flags[0].Evidence[0].ParticipantID)
	}
}
