package assess

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// AnswerValue is a tagged union over the raw value shapes a question can
// take. The kind is checked once at ingestion against the question's
// declared answer type and never re-inspected ad hoc downstream.
type AnswerValue struct {
	Kind    AnswerType `json:"kind"`
	Likert  int        `json:"likert,omitempty"`
	Choice  string     `json:"choice,omitempty"`
	Choices []string   `json:"choices,omitempty"`
	Text    string     `json:"text,omitempty"`
}

// LikertValue wraps a 1-5 rating.
func LikertValue(n int) AnswerValue { return AnswerValue{Kind: TypeLikert, Likert: n} }

// ChoiceValue wraps a single-select answer.
func ChoiceValue(c string) AnswerValue { return AnswerValue{Kind: TypeSingleSelect, Choice: c} }

// ChoicesValue wraps a multi-select answer.
func ChoicesValue(cs ...string) AnswerValue { return AnswerValue{Kind: TypeMultiSelect, Choices: cs} }

// TextValue wraps a free-text answer.
func TextValue(t string) AnswerValue { return AnswerValue{Kind: TypeFreeText, Text: t} }

// render produces a short display form for evidence payloads.
func (v AnswerValue) render() string {
	switch v.Kind {
	case TypeLikert:
		return fmt.Sprintf("%d", v.Likert)
	case TypeSingleSelect:
		return v.Choice
	case TypeMultiSelect:
		return strings.Join(v.Choices, ",")
	case TypeFreeText:
		if len(v.Text) > 80 {
			return v.Text[:80]
		}
		return v.Text
	default:
		return ""
	}
}

// contains reports whether a select-typed value includes the given option.
func (v AnswerValue) contains(option string) bool {
	switch v.Kind {
	case TypeSingleSelect:
		return v.Choice == option
	case TypeMultiSelect:
		for _, c := range v.Choices {
			if c == option {
				return true
			}
		}
	}
	return false
}

// ParseAnswerValue checks a dynamically-typed raw value against the
// question's declared answer type and builds the tagged union. Likert
// values must be integers in [1,5]; fractional numbers are rejected here
// so the invariant holds for the whole pipeline.
func ParseAnswerValue(def *QuestionDefinition, raw any) (AnswerValue, error) {
	switch def.Type {
	case TypeLikert:
		f, ok := toFloat(raw)
		if !ok {
			return AnswerValue{}, fmt.Errorf("question %s: %w: %v", def.ID, ErrInvalidLikert, raw)
		}
		if f != math.Trunc(f) || f < 1 || f > 5 {
			return AnswerValue{}, fmt.Errorf("question %s: %w: %v", def.ID, ErrInvalidLikert, raw)
		}
		return LikertValue(int(f)), nil
	case TypeSingleSelect:
		s, ok := raw.(string)
		if !ok {
			return AnswerValue{}, fmt.Errorf("question %s: expected string, got %T", def.ID, raw)
		}
		return ChoiceValue(s), nil
	case TypeMultiSelect:
		switch vs := raw.(type) {
		case []string:
			return ChoicesValue(vs...), nil
		case []any:
			out := make([]string, 0, len(vs))
			for _, v := range vs {
				s, ok := v.(string)
				if !ok {
					return AnswerValue{}, fmt.Errorf("question %s: expected string list, got %T element", def.ID, v)
				}
				out = append(out, s)
			}
			return ChoicesValue(out...), nil
		default:
			return AnswerValue{}, fmt.Errorf("question %s: expected string list, got %T", def.ID, raw)
		}
	case TypeFreeText:
		s, ok := raw.(string)
		if !ok {
			return AnswerValue{}, fmt.Errorf("question %s: expected string, got %T", def.ID, raw)
		}
		return TextValue(s), nil
	default:
		return AnswerValue{}, fmt.Errorf("question %s: unknown answer type %q", def.ID, def.Type)
	}
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

// Answer is one participant's response to one question. Immutable once
// recorded; the persistence layer upserts by (participant, question).
type Answer struct {
	QuestionID    string      `json:"question_id"`
	ParticipantID string      `json:"participant_id"`
	Role          Role        `json:"role"`
	Value         AnswerValue `json:"value"`
}

// AnswerSet is an immutable snapshot of the answers for one assessment,
// indexed for the detectors and scorers. Evaluation reads only this
// snapshot; nothing is cached across calls.
type AnswerSet struct {
	answers    []Answer
	byQuestion map[string][]Answer
}

// NewAnswerSet indexes a list of answers. Input order is preserved for
// deterministic iteration.
func NewAnswerSet(answers []Answer) *AnswerSet {
	s := &AnswerSet{
		answers:    make([]Answer, len(answers)),
		byQuestion: make(map[string][]Answer),
	}
	copy(s.answers, answers)
	for _, a := range s.answers {
		s.byQuestion[a.QuestionID] = append(s.byQuestion[a.QuestionID], a)
	}
	return s
}

// All returns the answers in snapshot order.
func (s *AnswerSet) All() []Answer { return s.answers }

// ForQuestion returns every answer to the given question, sorted by
// participant id for deterministic output.
func (s *AnswerSet) ForQuestion(id string) []Answer {
	as := s.byQuestion[id]
	out := make([]Answer, len(as))
	copy(out, as)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ParticipantID < out[j].ParticipantID })
	return out
}

// First returns the first answer to the given question, if any.
func (s *AnswerSet) First(id string) (Answer, bool) {
	as := s.ForQuestion(id)
	if len(as) == 0 {
		return Answer{}, false
	}
	return as[0], true
}

// ByParticipant returns the answer a specific participant gave to a
// question, if any.
func (s *AnswerSet) ByParticipant(questionID, participantID string) (Answer, bool) {
	for _, a := range s.byQuestion[questionID] {
		if a.ParticipantID == participantID {
			return a, true
		}
	}
	return Answer{}, false
}

// Participants returns the distinct participant ids that answered the
// given question, sorted.
func (s *AnswerSet) Participants(questionID string) []string {
	seen := map[string]bool{}
	var out []string
	for _, a := range s.byQuestion[questionID] {
		if !seen[a.ParticipantID] {
			seen[a.ParticipantID] = true
			out = append(out, a.ParticipantID)
		}
	}
	sort.Strings(out)
	return out
}
