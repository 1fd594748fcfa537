package assess

import (
	"fmt"
	"sort"
	"strings"
)

// OwnershipDetector (F5) collects the "who owns this" answers across
// roles. Ownership is diffused when DiffusionMin or more distinct owners
// are named, or when any answer is the designated no-owner sentinel, even
// with fewer distinct answers. Both cases are CRITICAL: nobody owning a
// decision is worse than a low score.
type OwnershipDetector struct {
	Sentinel     string
	DiffusionMin int
}

func (d *OwnershipDetector) Key() string  { return "ownership" }
func (d *OwnershipDetector) Name() string { return "Ownership diffusion" }

func (d *OwnershipDetector) Detect(in DetectionInput) []Flag {
	var flags []Flag

	for _, groupID := range in.Registry.OwnershipGroupIDs() {
		distinct := map[string]bool{}
		sentinelHit := false
		var evidence []EvidenceItem

		for _, def := range in.Registry.OwnershipGroup(groupID) {
			if def.Type != TypeSingleSelect {
				continue
			}
			for _, a := range in.Answers.ForQuestion(def.ID) {
				owner := strings.ToLower(strings.TrimSpace(a.Value.Choice))
				if owner == "" {
					continue
				}
				distinct[owner] = true
				if owner == d.Sentinel {
					sentinelHit = true
				}
				evidence = append(evidence, EvidenceItem{
					QuestionID:    def.ID,
					Role:          def.Role,
					ParticipantID: a.ParticipantID,
					Value:         a.Value.render(),
					Detail:        "named owner",
				})
			}
		}

		if len(evidence) == 0 {
			continue
		}
		if !sentinelHit && len(distinct) < d.DiffusionMin {
			continue
		}

		names := make([]string, 0, len(distinct))
		for n := range distinct {
			names = append(names, n)
		}
		sort.Strings(names)

		summary := fmt.Sprintf("Ownership of %s is diffused across %d answers: %s",
			groupID, len(distinct), strings.Join(names, ", "))
		if sentinelHit {
			summary = fmt.Sprintf("Ownership of %s is not clearly defined", groupID)
		}

		flags = append(flags, Flag{
			ID:       FlagOwnershipDiffusion,
			Severity: SeverityCritical,
			Summary:  summary,
			Evidence: evidence,
		})
	}

	return flags
}
