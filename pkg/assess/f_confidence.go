package assess

import "fmt"

// ConfidencePairDetector (F3) flags high confidence paired with a weak
// evidence-strength classification: an "assumption" basis is CRITICAL,
// "partial_data" is WARN, "verified_data" passes.
type ConfidencePairDetector struct{}

func (d *ConfidencePairDetector) Key() string  { return "confidence_pair" }
func (d *ConfidencePairDetector) Name() string { return "Confidence vs evidence mismatch" }

func (d *ConfidencePairDetector) Detect(in DetectionInput) []Flag {
	var flags []Flag

	for _, pairID := range in.Registry.ConfidencePairIDs() {
		var confDef, basisDef *QuestionDefinition
		for _, def := range in.Registry.ConfidencePair(pairID) {
			switch def.Type {
			case TypeLikert:
				confDef = def
			case TypeSingleSelect:
				basisDef = def
			}
		}
		if confDef == nil || basisDef == nil {
			continue
		}

		confAns, ok1 := in.Answers.First(confDef.ID)
		basisAns, ok2 := in.Answers.First(basisDef.ID)
		if !ok1 || !ok2 {
			continue
		}
		conf, err := NormalizeAnswer(confDef, confAns)
		if err != nil || conf.Adjusted < in.Thresholds.HighAdjusted {
			continue
		}

		var severity Severity
		switch basisAns.Value.Choice {
		case EvidenceTierAssumption:
			severity = SeverityCritical
		case EvidenceTierPartial:
			severity = SeverityWarn
		default:
			continue
		}

		flags = append(flags, Flag{
			ID:       FlagConfidenceWithoutEvidence,
			Severity: severity,
			Summary:  fmt.Sprintf("Confidence on %s rated %d/5 but based on %q", confDef.ID, conf.Adjusted, basisAns.Value.Choice),
			Evidence: []EvidenceItem{
				{QuestionID: confDef.ID, Role: confDef.Role, ParticipantID: confAns.ParticipantID, Value: confAns.Value.render(), Detail: "confidence", Numeric: float64(conf.Adjusted)},
				{QuestionID: basisDef.ID, Role: basisDef.Role, ParticipantID: basisAns.ParticipantID, Value: basisAns.Value.render(), Detail: "evidence basis"},
			},
		})
	}

	return flags
}
