package assess

import (
	"fmt"
	"sort"
)

// CrossRoleDetector (F4) compares how different roles rate the same
// underlying fact. A gap beyond the threshold (expressed in 1-5 adjusted
// units; 0-100 scores are converted, not re-thresholded) is a mismatch.
// The CriticalGroup escalates to CRITICAL; all other groups are WARN.
type CrossRoleDetector struct {
	CriticalGroup string
}

func (d *CrossRoleDetector) Key() string  { return "cross_role" }
func (d *CrossRoleDetector) Name() string { return "Cross-role mismatch" }

func (d *CrossRoleDetector) Detect(in DetectionInput) []Flag {
	var flags []Flag

	for _, groupID := range in.Registry.ContradictionGroupIDs() {
		defs := in.Registry.ContradictionGroup(groupID)

		// One mean 0-100 score per role, built from that role's questions
		// in the group.
		type roleScore struct {
			role  Role
			def   *QuestionDefinition
			score float64
		}
		byRole := map[Role][]float64{}
		defByRole := map[Role]*QuestionDefinition{}
		for _, def := range defs {
			if def.Type != TypeLikert {
				continue
			}
			for _, a := range in.Answers.ForQuestion(def.ID) {
				ns, err := NormalizeAnswer(def, a)
				if err != nil {
					continue
				}
				byRole[def.Role] = append(byRole[def.Role], ns.Score)
				defByRole[def.Role] = def
			}
		}

		var scores []roleScore
		for role, values := range byRole {
			if m := meanOf(values); m.Valid {
				scores = append(scores, roleScore{role: role, def: defByRole[role], score: m.Value})
			}
		}
		sort.Slice(scores, func(i, j int) bool { return scores[i].role < scores[j].role })

		severity := SeverityWarn
		if groupID == d.CriticalGroup {
			severity = SeverityCritical
		}

		for i := 0; i < len(scores); i++ {
			for j := i + 1; j < len(scores); j++ {
				a, b := scores[i], scores[j]
				gap := adjustedUnits(a.score) - adjustedUnits(b.score)
				if gap < 0 {
					gap = -gap
				}
				if gap <= in.Thresholds.CrossRoleGap {
					continue
				}
				flags = append(flags, Flag{
					ID:       FlagCrossRoleMismatch,
					Severity: severity,
					Summary: fmt.Sprintf("%s and %s disagree on %s by %.1f scale points",
						a.role, b.role, groupID, gap),
					Evidence: []EvidenceItem{
						{QuestionID: a.def.ID, Role: a.role, Numeric: a.score, Detail: groupID},
						{QuestionID: b.def.ID, Role: b.role, Numeric: b.score, Detail: groupID},
					},
				})
			}
		}
	}

	return flags
}
