package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/claritygate/claritygate/pkg/assess"
	"github.com/claritygate/claritygate/pkg/config"
	"github.com/claritygate/claritygate/pkg/surface"
)

func newEvaluateCmd() *cobra.Command {
	var (
		answersPath string
		configPath  string
		variantName string
		outputFmt   string
		store       bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run a full evaluation over an answer file",
		Long:  `Loads answers, scores dimensions, computes the clarity index, runs flag detection and gates, and renders the recommendation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd.Context(), evaluateOpts{
				answersPath: answersPath,
				configPath:  configPath,
				variantName: variantName,
				outputFmt:   outputFmt,
				store:       store,
			})
		},
	}

	cmd.Flags().StringVar(&answersPath, "answers", "", "Path to answer file, YAML or JSON (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: find .claritygate/config.yaml)")
	cmd.Flags().StringVar(&variantName, "variant", "", "Variant override (default: variant named in the answer file)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&store, "store", false, "Save the result under the workspace evaluation directory")
	_ = cmd.MarkFlagRequired("answers")

	return cmd
}

type evaluateOpts struct {
	answersPath string
	configPath  string
	variantName string
	outputFmt   string
	store       bool
}

func runEvaluate(ctx context.Context, opts evaluateOpts) error {
	cfg, err := resolveConfig(opts.configPath)
	if err != nil {
		return err
	}

	registry, err := cfg.BuildRegistry()
	if err != nil {
		return err
	}
	if len(registry.Questions()) == 0 {
		return fmt.Errorf("config defines no questions; point --config at a config file with a question catalog")
	}
	variants, err := cfg.BuildVariants()
	if err != nil {
		return err
	}
	thresholds, err := cfg.BuildThresholds()
	if err != nil {
		return err
	}

	fileVariant, answers, err := config.LoadAnswers(opts.answersPath, registry)
	if err != nil {
		return err
	}

	name := firstNonEmpty(opts.variantName, fileVariant, "boardroom")
	variant, ok := variants[name]
	if !ok {
		return fmt.Errorf("unknown variant %q", name)
	}

	fmt.Fprintf(os.Stderr, "Evaluating %d answers with variant %s...\n", len(answers), name)

	engine := assess.NewEngine(registry, assess.WithThresholds(thresholds))
	result, err := engine.Evaluate(variant, answers)
	if err != nil {
		return err
	}

	if opts.store {
		saveEvaluation(opts.answersPath, result)
	}

	switch opts.outputFmt {
	case "json":
		renderer := &surface.JSONRenderer{}
		if err := renderer.Render(os.Stdout, result); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	default:
		renderer := &surface.TerminalRenderer{}
		if err := renderer.Render(os.Stdout, result); err != nil {
			return fmt.Errorf("rendering: %w", err)
		}
	}

	return nil
}

// saveEvaluation persists an evaluation result to the workspace cache so
// later runs can be compared. Failures are warnings, not errors.
func saveEvaluation(answersPath string, result *assess.Result) {
	wsRoot := filepath.Dir(answersPath)
	if abs, err := filepath.Abs(wsRoot); err == nil {
		wsRoot = abs
	}

	evalDir := config.EvaluationDir(wsRoot)
	if err := os.MkdirAll(evalDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create evaluation dir: %v\n", err)
		return
	}

	wrapped := struct {
		*assess.Result
		AnswerFile  string `json:"answer_file"`
		EvaluatedAt string `json:"evaluated_at"`
	}{
		Result:      result,
		AnswerFile:  filepath.Base(answersPath),
		EvaluatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(wrapped, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to marshal result: %v\n", err)
		return
	}

	path := filepath.Join(evalDir, time.Now().UTC().Format("20060102T150405Z")+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save result: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Evaluation saved: %s\n", path)
}
