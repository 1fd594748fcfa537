package assess

import "fmt"

// TriadDetector (F2) checks claim -> proof -> consequence triads. A high
// claim must be backed by evidence and an owned consequence; the three
// outcomes are distinguished by evidence strength and consequence
// ownership, not by the claim alone:
//
//	weak evidence + unowned consequence -> CRITICAL narrative inflation
//	weak evidence + owned consequence   -> WARN proof gap
//	unowned consequence, solid evidence -> WARN consequence unowned
type TriadDetector struct{}

func (d *TriadDetector) Key() string  { return "triad" }
func (d *TriadDetector) Name() string { return "Claim/proof/consequence triad" }

// weakEvidenceMax is the highest adjusted value still counted as weak.
const weakEvidenceMax = 2

func (d *TriadDetector) Detect(in DetectionInput) []Flag {
	var flags []Flag

	for _, groupID := range in.Registry.TriadGroupIDs() {
		var claimDef, evidenceDef, consequenceDef *QuestionDefinition
		for _, def := range in.Registry.TriadGroup(groupID) {
			switch def.TriadPart {
			case TriadClaim:
				claimDef = def
			case TriadEvidence:
				evidenceDef = def
			case TriadConsequence:
				consequenceDef = def
			}
		}
		if claimDef == nil || evidenceDef == nil || consequenceDef == nil {
			continue
		}

		claimAns, ok1 := in.Answers.First(claimDef.ID)
		evidenceAns, ok2 := in.Answers.First(evidenceDef.ID)
		consequenceAns, ok3 := in.Answers.First(consequenceDef.ID)
		if !ok1 || !ok2 || !ok3 {
			continue
		}

		claim, err1 := NormalizeAnswer(claimDef, claimAns)
		evidence, err2 := NormalizeAnswer(evidenceDef, evidenceAns)
		if err1 != nil || err2 != nil {
			continue
		}
		if claim.Adjusted < in.Thresholds.HighAdjusted {
			continue
		}

		weak := evidence.Adjusted <= weakEvidenceMax
		unowned := consequenceAns.Value.contains(OwnerUnclearSentinel)

		ev := []EvidenceItem{
			{QuestionID: claimDef.ID, Role: claimDef.Role, ParticipantID: claimAns.ParticipantID, Value: claimAns.Value.render(), Detail: "claim", Numeric: float64(claim.Adjusted)},
			{QuestionID: evidenceDef.ID, Role: evidenceDef.Role, ParticipantID: evidenceAns.ParticipantID, Value: evidenceAns.Value.render(), Detail: "evidence", Numeric: float64(evidence.Adjusted)},
			{QuestionID: consequenceDef.ID, Role: consequenceDef.Role, ParticipantID: consequenceAns.ParticipantID, Value: consequenceAns.Value.render(), Detail: "consequence"},
		}

		switch {
		case weak && unowned:
			flags = append(flags, Flag{
				ID:       FlagNarrativeInflationRisk,
				Severity: SeverityCritical,
				Summary:  fmt.Sprintf("High claim %s rests on weak evidence and an unowned consequence", claimDef.ID),
				Evidence: ev,
			})
		case weak:
			flags = append(flags, Flag{
				ID:       FlagProofGap,
				Severity: SeverityWarn,
				Summary:  fmt.Sprintf("High claim %s is not backed by evidence", claimDef.ID),
				Evidence: ev,
			})
		case unowned:
			flags = append(flags, Flag{
				ID:       FlagConsequenceUnowned,
				Severity: SeverityWarn,
				Summary:  fmt.Sprintf("Consequence of claim %s has no owner", claimDef.ID),
				Evidence: ev,
			})
		}
	}

	return flags
}
