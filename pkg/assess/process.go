package assess

// ScoreProcessAreas is the per-process-area variant of the dimension
// scorer for multi-process assessments. The case score feeds the G2 gate;
// area scores exist so the gate explanation can name the weakest area.
// Variants without the process dimension get an inactive result.
func ScoreProcessAreas(reg *Registry, answers *AnswerSet, variant Variant) ProcessResult {
	if !variant.ProcessActive {
		return ProcessResult{}
	}

	result := ProcessResult{
		Active: true,
		CaseScore: scoreQuestionSubset(reg, answers, variant, func(d *QuestionDefinition) bool {
			return d.Dimension == DimensionProcess
		}),
	}

	for _, area := range reg.ProcessAreaIDs() {
		area := area
		s := scoreQuestionSubset(reg, answers, variant, func(d *QuestionDefinition) bool {
			return d.Dimension == DimensionProcess && d.ProcessArea == area
		})
		result.Areas = append(result.Areas, ProcessAreaScore{Area: area, Score: s})
	}

	return result
}

// weakestProcessArea returns the lowest-scoring area with data, if any.
func weakestProcessArea(p ProcessResult) (ProcessAreaScore, bool) {
	var weakest ProcessAreaScore
	found := false
	for _, a := range p.Areas {
		if !a.Score.Valid {
			continue
		}
		if !found || a.Score.Value < weakest.Score.Value {
			weakest = a
			found = true
		}
	}
	return weakest, found
}
