package assess

import "fmt"

// ReversedPairDetector (F1) finds internal inconsistency within one role:
// a question and its designated reverse-scored pair both normalizing high.
// A respondent who strongly agrees with a statement and with its inversion
// is answering mechanically or not reading.
type ReversedPairDetector struct{}

func (d *ReversedPairDetector) Key() string  { return "reversed_pair" }
func (d *ReversedPairDetector) Name() string { return "Reversed-logic contradiction" }

func (d *ReversedPairDetector) Detect(in DetectionInput) []Flag {
	var flags []Flag

	for _, pairID := range in.Registry.ReversePairIDs() {
		defs := in.Registry.ReversePair(pairID)
		if len(defs) < 2 {
			continue
		}
		straight, reversed := defs[0], defs[1]
		if straight.Reverse && !reversed.Reverse {
			straight, reversed = reversed, straight
		}

		for _, pid := range in.Answers.Participants(straight.ID) {
			a1, ok1 := in.Answers.ByParticipant(straight.ID, pid)
			a2, ok2 := in.Answers.ByParticipant(reversed.ID, pid)
			if !ok1 || !ok2 {
				continue
			}
			n1, err1 := NormalizeAnswer(straight, a1)
			n2, err2 := NormalizeAnswer(reversed, a2)
			if err1 != nil || err2 != nil {
				continue
			}
			if n1.Adjusted >= in.Thresholds.HighAdjusted && n2.Adjusted >= in.Thresholds.HighAdjusted {
				flags = append(flags, Flag{
					ID:       FlagReversedPairConflict,
					Severity: SeverityWarn,
					Summary:  fmt.Sprintf("Contradictory agreement with %s and its inversion %s", straight.ID, reversed.ID),
					Evidence: []EvidenceItem{
						{QuestionID: straight.ID, Role: straight.Role, ParticipantID: pid, Value: a1.Value.render(), Numeric: float64(n1.Adjusted)},
						{QuestionID: reversed.ID, Role: reversed.Role, ParticipantID: pid, Value: a2.Value.render(), Numeric: float64(n2.Adjusted)},
					},
				})
			}
		}
	}

	return flags
}
