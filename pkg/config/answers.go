package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/claritygate/claritygate/pkg/assess"
)

// AnswerFile is the on-disk format for one assessment's answers. YAML is
// a superset of JSON, so both serializations load through the same path.
type AnswerFile struct {
	Variant string      `yaml:"variant" json:"variant"`
	Answers []RawAnswer `yaml:"answers" json:"answers"`
}

// RawAnswer is one answer before its value is checked against the
// question's declared answer type.
type RawAnswer struct {
	QuestionID    string      `yaml:"question_id" json:"question_id"`
	ParticipantID string      `yaml:"participant_id" json:"participant_id"`
	Role          assess.Role `yaml:"role" json:"role"`
	Value         any         `yaml:"value" json:"value"`
}

// LoadAnswers reads an answer file and type-checks every raw value
// against the registry. Values are checked here, once, so downstream
// evaluation never re-inspects raw input.
func LoadAnswers(path string, reg *assess.Registry) (string, []assess.Answer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading answers: %w", err)
	}

	var file AnswerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return "", nil, fmt.Errorf("parsing answers: %w", err)
	}

	answers := make([]assess.Answer, 0, len(file.Answers))
	for i, raw := range file.Answers {
		def, ok := reg.Question(raw.QuestionID)
		if !ok {
			return "", nil, fmt.Errorf("answers[%d]: unknown question %q", i, raw.QuestionID)
		}
		value, err := assess.ParseAnswerValue(def, raw.Value)
		if err != nil {
			return "", nil, fmt.Errorf("answers[%d] (%s): %w", i, raw.QuestionID, err)
		}
		answers = append(answers, assess.Answer{
			QuestionID:    raw.QuestionID,
			ParticipantID: raw.ParticipantID,
			Role:          raw.Role,
			Value:         value,
		})
	}

	return file.Variant, answers, nil
}
