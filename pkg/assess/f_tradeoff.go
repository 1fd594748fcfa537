package assess

import "fmt"

// TradeOffDetector (F6) checks the forced trade-off pair: a business-side
// and a tech-side question that each offer a "nothing will be impacted"
// escape option. Picking it on one side is a role-specific WARN; picking
// it on both sides is a confirmed capacity illusion at CRITICAL, which
// supersedes the two WARNs for that pair.
type TradeOffDetector struct {
	Sentinel string
}

func (d *TradeOffDetector) Key() string  { return "trade_off" }
func (d *TradeOffDetector) Name() string { return "Forced trade-off / capacity illusion" }

func (d *TradeOffDetector) Detect(in DetectionInput) []Flag {
	var flags []Flag

	for _, groupID := range in.Registry.TradeOffGroupIDs() {
		var businessDef, techDef *QuestionDefinition
		for _, def := range in.Registry.TradeOffGroup(groupID) {
			switch def.TradeOffSide {
			case TradeOffBusiness:
				businessDef = def
			case TradeOffTech:
				techDef = def
			}
		}
		if businessDef == nil || techDef == nil {
			continue
		}

		businessAns, ok1 := in.Answers.First(businessDef.ID)
		techAns, ok2 := in.Answers.First(techDef.ID)
		if !ok1 || !ok2 {
			continue
		}

		businessHit := businessAns.Value.contains(d.Sentinel)
		techHit := techAns.Value.contains(d.Sentinel)

		evidence := func(def *QuestionDefinition, a Answer, side string) EvidenceItem {
			return EvidenceItem{
				QuestionID:    def.ID,
				Role:          def.Role,
				ParticipantID: a.ParticipantID,
				Value:         a.Value.render(),
				Detail:        side,
			}
		}

		switch {
		case businessHit && techHit:
			flags = append(flags, Flag{
				ID:       FlagCapacityIllusionConfirmed,
				Severity: SeverityCritical,
				Summary:  fmt.Sprintf("Both sides of %s claim nothing will be impacted", groupID),
				Evidence: []EvidenceItem{
					evidence(businessDef, businessAns, "business side"),
					evidence(techDef, techAns, "tech side"),
				},
			})
		case businessHit:
			flags = append(flags, Flag{
				ID:       FlagCapacityIllusionBusiness,
				Severity: SeverityWarn,
				Summary:  fmt.Sprintf("Business side of %s claims nothing will be impacted", groupID),
				Evidence: []EvidenceItem{evidence(businessDef, businessAns, "business side")},
			})
		case techHit:
			flags = append(flags, Flag{
				ID:       FlagCapacityIllusionTech,
				Severity: SeverityWarn,
				Summary:  fmt.Sprintf("Tech side of %s claims nothing will be impacted", groupID),
				Evidence: []EvidenceItem{evidence(techDef, techAns, "tech side")},
			})
		}
	}

	return flags
}
