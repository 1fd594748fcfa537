package assess

import (
	"fmt"
	"strings"
)

// BlindSpotCategory is one of the seven closed open-text categories, or
// unclassified.
type BlindSpotCategory string

const (
	CategoryKnownRisk            BlindSpotCategory = "known_risk"
	CategoryAvoidedTopic         BlindSpotCategory = "avoided_topic"
	CategoryRoleConflict         BlindSpotCategory = "role_conflict"
	CategoryCulturalResistance   BlindSpotCategory = "cultural_resistance"
	CategoryTechnicalUncertainty BlindSpotCategory = "technical_uncertainty"
	CategoryProcessInstability   BlindSpotCategory = "process_instability"
	CategoryDataQuality          BlindSpotCategory = "data_quality"
	CategoryUnclassified         BlindSpotCategory = "unclassified"
)

// blindSpotCategories lists the closed category set in stable order.
func blindSpotCategories() []BlindSpotCategory {
	return []BlindSpotCategory{
		CategoryKnownRisk,
		CategoryAvoidedTopic,
		CategoryRoleConflict,
		CategoryCulturalResistance,
		CategoryTechnicalUncertainty,
		CategoryProcessInstability,
		CategoryDataQuality,
	}
}

// TextClassifier assigns a free-text answer to one of the seven blind-spot
// categories. Implementations may be external services; the detector
// coerces anything outside the closed set to unclassified.
type TextClassifier interface {
	Classify(text string) BlindSpotCategory
}

// KeywordClassifier is the built-in deterministic classifier. It matches
// lowercased keywords in fixed category order and returns the first hit.
type KeywordClassifier struct{}

var categoryKeywords = []struct {
	category BlindSpotCategory
	words    []string
}{
	{CategoryKnownRisk, []string{"risk", "danger", "liability", "exposure"}},
	{CategoryAvoidedTopic, []string{"nobody talks", "not discussed", "taboo", "avoid"}},
	{CategoryRoleConflict, []string{"turf", "conflict between", "not my job", "blame"}},
	{CategoryCulturalResistance, []string{"resistance", "pushback", "morale", "won't accept"}},
	{CategoryTechnicalUncertainty, []string{"legacy", "integration", "technical debt", "unknown system"}},
	{CategoryProcessInstability, []string{"changes every", "workaround", "undocumented", "ad hoc"}},
	{CategoryDataQuality, []string{"data quality", "incomplete data", "duplicates", "spreadsheet"}},
}

func (KeywordClassifier) Classify(text string) BlindSpotCategory {
	lower := strings.ToLower(text)
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(lower, w) {
				return ck.category
			}
		}
	}
	return CategoryUnclassified
}

// OpenTextDetector (F8) classifies free-text answers into the closed
// blind-spot category set. Its output is INFO only and feeds narrative
// generation; it never reaches the clarity index or the recommendation.
type OpenTextDetector struct {
	Classifier TextClassifier
}

func (d *OpenTextDetector) Key() string  { return "open_text" }
func (d *OpenTextDetector) Name() string { return "Open-text classification" }

func (d *OpenTextDetector) Detect(in DetectionInput) []Flag {
	classifier := d.Classifier
	if classifier == nil {
		classifier = in.Classifier
	}
	if classifier == nil {
		return nil
	}

	var flags []Flag
	for _, def := range in.Registry.Questions() {
		if def.Type != TypeFreeText {
			continue
		}
		for _, a := range in.Answers.ForQuestion(def.ID) {
			text := strings.TrimSpace(a.Value.Text)
			if text == "" {
				continue
			}
			category := coerceCategory(classifier.Classify(text))
			if category == CategoryUnclassified {
				continue
			}
			flags = append(flags, Flag{
				ID:       FlagBlindSpot,
				Severity: SeverityInfo,
				Summary:  fmt.Sprintf("Open answer on %s points at %s", def.ID, category),
				Evidence: []EvidenceItem{
					{QuestionID: def.ID, Role: def.Role, ParticipantID: a.ParticipantID, Value: a.Value.render(), Detail: string(category)},
				},
			})
		}
	}
	return flags
}

// coerceCategory enforces the closed-set contract on external classifiers.
func coerceCategory(c BlindSpotCategory) BlindSpotCategory {
	for _, known := range blindSpotCategories() {
		if c == known {
			return c
		}
	}
	return CategoryUnclassified
}
