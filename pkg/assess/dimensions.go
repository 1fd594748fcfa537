package assess

import "fmt"

// ScoreDimensions aggregates normalized answers into per-role and per-case
// dimension scores for the variant's active roles.
//
// Per role and dimension, scores are averaged per participant first, then
// across participants. The case score is the role-weighted average over
// roles with data; weights are renormalized over the non-null roles so
// partial participation does not deflate the score. A dimension with no
// data stays null, never 0.
//
// Answers that fail normalization are excluded and reported as validation
// issues; they never abort the evaluation.
func ScoreDimensions(reg *Registry, answers *AnswerSet, variant Variant) (DimensionScores, RoleDimensionScores, []ValidationIssue) {
	type cell struct {
		role      Role
		dimension Dimension
	}
	// role+dimension -> participant -> scores
	buckets := map[cell]map[string][]float64{}
	var issues []ValidationIssue

	for _, a := range answers.All() {
		def, ok := reg.Question(a.QuestionID)
		if !ok {
			issues = append(issues, ValidationIssue{
				QuestionID:    a.QuestionID,
				ParticipantID: a.ParticipantID,
				Detail:        "unknown question id",
			})
			continue
		}
		if def.Type != TypeLikert {
			continue
		}
		if _, active := variant.RoleWeights[a.Role]; !active {
			continue
		}
		ns, err := NormalizeAnswer(def, a)
		if err != nil {
			issues = append(issues, ValidationIssue{
				QuestionID:    a.QuestionID,
				ParticipantID: a.ParticipantID,
				Detail:        err.Error(),
			})
			continue
		}
		c := cell{role: a.Role, dimension: def.Dimension}
		if buckets[c] == nil {
			buckets[c] = map[string][]float64{}
		}
		buckets[c][a.ParticipantID] = append(buckets[c][a.ParticipantID], ns.Score)
	}

	roleScores := RoleDimensionScores{}
	for _, role := range variant.ActiveRoles() {
		ds := DimensionScores{}
		for _, dim := range AllDimensions() {
			ds[dim] = roleDimensionScore(buckets[cell{role: role, dimension: dim}])
		}
		roleScores[role] = ds
	}

	caseScores := DimensionScores{}
	for _, dim := range AllDimensions() {
		caseScores[dim] = weightedCaseScore(roleScores, variant, dim)
	}

	return caseScores, roleScores, issues
}

// roleDimensionScore averages per participant first, then across
// participants. Null when no participant has data.
func roleDimensionScore(byParticipant map[string][]float64) Score {
	var participantMeans []float64
	for _, scores := range byParticipant {
		if m := meanOf(scores); m.Valid {
			participantMeans = append(participantMeans, m.Value)
		}
	}
	return meanOf(participantMeans)
}

// weightedCaseScore combines role scores with the variant weights,
// renormalizing over the roles that actually have a score.
func weightedCaseScore(roleScores RoleDimensionScores, variant Variant, dim Dimension) Score {
	var weighted, weightSum float64
	for _, role := range variant.ActiveRoles() {
		s := roleScores[role][dim]
		if !s.Valid {
			continue
		}
		w := variant.RoleWeights[role]
		weighted += w * s.Value
		weightSum += w
	}
	if weightSum == 0 {
		return Score{}
	}
	return ValidScore(weighted / weightSum)
}

// scoreQuestionSubset runs the same role-weighted aggregation over a
// filtered set of questions. Used by the process scorer and the gates.
func scoreQuestionSubset(reg *Registry, answers *AnswerSet, variant Variant, keep func(*QuestionDefinition) bool) Score {
	byRole := map[Role]map[string][]float64{}
	for _, a := range answers.All() {
		def, ok := reg.Question(a.QuestionID)
		if !ok || def.Type != TypeLikert || !keep(def) {
			continue
		}
		if _, active := variant.RoleWeights[a.Role]; !active {
			continue
		}
		ns, err := NormalizeAnswer(def, a)
		if err != nil {
			continue
		}
		if byRole[a.Role] == nil {
			byRole[a.Role] = map[string][]float64{}
		}
		byRole[a.Role][a.ParticipantID] = append(byRole[a.Role][a.ParticipantID], ns.Score)
	}

	roleScores := RoleDimensionScores{}
	for _, role := range variant.ActiveRoles() {
		roleScores[role] = DimensionScores{DimensionProcess: roleDimensionScore(byRole[role])}
	}
	return weightedCaseScore(roleScores, variant, DimensionProcess)
}

// formatScore renders a nullable score for reasons and summaries.
func formatScore(s Score) string {
	if !s.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", s.Value)
}
