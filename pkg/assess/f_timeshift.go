package assess

import "fmt"

// TimeShiftDetector (F7) checks time-separated pairs: an early-survey
// claim of simplicity and a late-survey acknowledgment of complexity from
// the same respondent. Both high means the initial story did not survive
// the respondent's own later answers.
type TimeShiftDetector struct{}

func (d *TimeShiftDetector) Key() string  { return "time_shift" }
func (d *TimeShiftDetector) Name() string { return "Time-separated consistency" }

func (d *TimeShiftDetector) Detect(in DetectionInput) []Flag {
	var flags []Flag

	for _, pairID := range in.Registry.TimePairIDs() {
		var earlyDef, lateDef *QuestionDefinition
		for _, def := range in.Registry.TimePair(pairID) {
			switch def.TimePhase {
			case TimeEarly:
				earlyDef = def
			case TimeLate:
				lateDef = def
			}
		}
		if earlyDef == nil || lateDef == nil {
			continue
		}

		for _, pid := range in.Answers.Participants(earlyDef.ID) {
			earlyAns, ok1 := in.Answers.ByParticipant(earlyDef.ID, pid)
			lateAns, ok2 := in.Answers.ByParticipant(lateDef.ID, pid)
			if !ok1 || !ok2 {
				continue
			}
			early, err1 := NormalizeAnswer(earlyDef, earlyAns)
			late, err2 := NormalizeAnswer(lateDef, lateAns)
			if err1 != nil || err2 != nil {
				continue
			}
			if early.Adjusted >= in.Thresholds.HighAdjusted && late.Adjusted >= in.Thresholds.HighAdjusted {
				flags = append(flags, Flag{
					ID:       FlagTimeInconsistency,
					Severity: SeverityWarn,
					Summary:  fmt.Sprintf("Early simplicity claim %s contradicted later by %s", earlyDef.ID, lateDef.ID),
					Evidence: []EvidenceItem{
						{QuestionID: earlyDef.ID, Role: earlyDef.Role, ParticipantID: pid, Value: earlyAns.Value.render(), Detail: "early", Numeric: float64(early.Adjusted)},
						{QuestionID: lateDef.ID, Role: lateDef.Role, ParticipantID: pid, Value: lateAns.Value.render(), Detail: "late", Numeric: float64(late.Adjusted)},
					},
				})
			}
		}
	}

	return flags
}
