package assess

import "fmt"

// Engine runs the full decision-analysis pipeline against an immutable
// snapshot of (registry, answers, variant). It holds no per-evaluation
// state: evaluating the same snapshot twice yields byte-identical results.
type Engine struct {
	registry   *Registry
	thresholds Thresholds
	flagEngine *FlagEngine
}

// Option configures an Engine.
type Option func(*Engine)

// WithThresholds overrides the default numeric cut-offs.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

// WithDetectors replaces the default detector set.
func WithDetectors(detectors ...Detector) Option {
	return func(e *Engine) { e.flagEngine = NewFlagEngine(detectors...) }
}

// NewEngine creates an evaluation engine over a loaded question registry.
// By default it uses the standard thresholds, the full detector set and
// the built-in keyword classifier.
func NewEngine(registry *Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:   registry,
		thresholds: DefaultThresholds(),
		flagEngine: NewFlagEngine(DefaultDetectors(KeywordClassifier{})...),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs one synchronous, side-effect-free pass: normalization,
// dimension and process scoring, clarity index, flag detection, gates and
// the final recommendation. A broken variant is a ConfigError and aborts
// the call; broken individual answers only become validation issues.
func (e *Engine) Evaluate(variant Variant, answers []Answer) (*Result, error) {
	if err := variant.Validate(); err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", variant.Name, err)
	}

	snapshot := NewAnswerSet(answers)

	caseScores, roleScores, issues := ScoreDimensions(e.registry, snapshot, variant)
	process := ScoreProcessAreas(e.registry, snapshot, variant)
	index := ComputeIndex(caseScores, variant, e.thresholds)

	flags := e.flagEngine.Run(DetectionInput{
		Registry:   e.registry,
		Answers:    snapshot,
		Thresholds: e.thresholds,
	})

	gates, hasGates := EvaluateGates(GateInput{
		Registry:   e.registry,
		Answers:    snapshot,
		Variant:    variant,
		Thresholds: e.thresholds,
		CaseScores: caseScores,
		Process:    process,
		Flags:      flags,
	})

	recommendation := Recommend(index, flags, gates, variant, e.thresholds)

	return &Result{
		Variant:          variant.Name,
		CaseScores:       caseScores,
		RoleScores:       roleScores,
		Index:            index,
		Flags:            flags,
		FlagCounts:       countBySeverity(flags),
		Gates:            gates,
		HasGates:         hasGates,
		Process:          process,
		Recommendation:   recommendation,
		ValidationIssues: issues,
	}, nil
}
