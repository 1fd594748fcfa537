package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claritygate/claritygate/pkg/assess"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Variants) != 3 {
		t.Errorf("expected 3 default variants, got %d", len(cfg.Variants))
	}
	if _, ok := cfg.Variants["boardroom"]; !ok {
		t.Error("expected boardroom variant in defaults")
	}
	if cfg.Thresholds.IndexLow != 55 || cfg.Thresholds.IndexHigh != 75 {
		t.Errorf("expected default index thresholds 55/75, got %.0f/%.0f",
			cfg.Thresholds.IndexLow, cfg.Thresholds.IndexHigh)
	}
	if len(cfg.Questions) != 0 {
		t.Errorf("expected empty default catalog, got %d questions", len(cfg.Questions))
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "non-existent file returns defaults",
			yaml: "", // signal: don't create a file
			check: func(t *testing.T, cfg *Config) {
				if cfg.Thresholds.DimensionFloor != 50 {
					t.Errorf("expected default dimension floor 50, got %.0f", cfg.Thresholds.DimensionFloor)
				}
				if len(cfg.Variants) != 3 {
					t.Errorf("expected default variants, got %d", len(cfg.Variants))
				}
			},
		},
		{
			name: "valid YAML overrides defaults",
			yaml: `
thresholds:
  index_low: 60
  index_high: 80
  dimension_floor: 45
  high_adjusted: 4
  cross_role_gap: 1.5
questions:
  - id: q1
    role: executive
    dimension: strategy
    type: likert
  - id: q2
    role: executive
    dimension: strategy
    type: likert
    reverse: true
    reverse_pair_id: rp1
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Thresholds.IndexLow != 60 || cfg.Thresholds.IndexHigh != 80 {
					t.Errorf("expected thresholds 60/80, got %.0f/%.0f",
						cfg.Thresholds.IndexLow, cfg.Thresholds.IndexHigh)
				}
				if len(cfg.Questions) != 2 {
					t.Fatalf("expected 2 questions, got %d", len(cfg.Questions))
				}
				if !cfg.Questions[1].Reverse || cfg.Questions[1].ReversePairID != "rp1" {
					t.Errorf("expected q2 reverse-scored in pair rp1, got %+v", cfg.Questions[1])
				}
			},
		},
		{
			name:    "invalid YAML returns error",
			yaml:    "{{invalid yaml",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")

			if tc.yaml == "" && tc.name == "non-existent file returns defaults" {
				cfg, err := Load(path)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				tc.check(t, cfg)
				return
			}

			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatalf("write test config: %v", err)
			}

			cfg, err := Load(path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestBuildRegistry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Questions = []assess.QuestionDefinition{
		{ID: "q1", Role: assess.RoleExecutive, Dimension: assess.DimensionStrategy, Type: assess.TypeLikert},
		{ID: "q1", Role: assess.RoleFinance, Dimension: assess.DimensionValue, Type: assess.TypeLikert},
	}
	if _, err := cfg.BuildRegistry(); err == nil {
		t.Fatal("expected duplicate question id to fail registry build")
	}

	cfg.Questions = cfg.Questions[:1]
	reg, err := cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("expected 1 question, got %d", reg.Len())
	}
}

func TestBuildVariants(t *testing.T) {
	cfg := DefaultConfig()
	variants, err := cfg.BuildVariants()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(variants) != 3 {
		t.Errorf("expected 3 variants, got %d", len(variants))
	}
	if variants["boardroom"].Name != "boardroom" {
		t.Errorf("variant name not carried over: %+v", variants["boardroom"])
	}

	cfg.Variants["broken"] = VariantConfig{
		RoleWeights:  map[assess.Role]float64{assess.RoleExecutive: 0.5},
		ComputeIndex: true,
	}
	if _, err := cfg.BuildVariants(); err == nil {
		t.Fatal("expected weights not summing to 1 to fail")
	}
}

func TestBuildThresholds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ThresholdConfig)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*ThresholdConfig) {}},
		{name: "high below low", mutate: func(tc *ThresholdConfig) { tc.IndexHigh = 40 }, wantErr: true},
		{name: "floor out of range", mutate: func(tc *ThresholdConfig) { tc.DimensionFloor = 140 }, wantErr: true},
		{name: "high adjusted out of scale", mutate: func(tc *ThresholdConfig) { tc.HighAdjusted = 9 }, wantErr: true},
		{name: "gap too wide", mutate: func(tc *ThresholdConfig) { tc.CrossRoleGap = 4 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg.Thresholds)
			_, err := cfg.BuildThresholds()
			if tc.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDirectoryFunctions(t *testing.T) {
	workspace := "/home/alice/assessments/acme-rollout"
	slug := "assessments_acme-rollout"

	eval := EvaluationDir(workspace)
	snap := SnapshotDir(workspace)

	if !strings.Contains(eval, slug) {
		t.Errorf("EvaluationDir should contain slug %q, got %q", slug, eval)
	}
	if !strings.HasSuffix(eval, filepath.Join(slug, "evaluations")) {
		t.Errorf("EvaluationDir should end with %q, got %q", filepath.Join(slug, "evaluations"), eval)
	}
	if !strings.HasSuffix(snap, filepath.Join(slug, "snapshots")) {
		t.Errorf("SnapshotDir should end with %q, got %q", filepath.Join(slug, "snapshots"), snap)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Run("found in parent directory", func(t *testing.T) {
		root := t.TempDir()
		configDir := filepath.Join(root, ".claritygate")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("create config dir: %v", err)
		}
		configPath := filepath.Join(configDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		sub := filepath.Join(root, "a", "b")
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatalf("create sub: %v", err)
		}

		if got := FindConfigFile(sub); got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if got := FindConfigFile(t.TempDir()); got != "" {
			t.Errorf("FindConfigFile = %q, want empty", got)
		}
	})
}

func TestLoadAnswers(t *testing.T) {
	reg, err := assess.NewRegistry([]assess.QuestionDefinition{
		{ID: "q1", Role: assess.RoleExecutive, Dimension: assess.DimensionStrategy, Type: assess.TypeLikert},
		{ID: "q2", Role: assess.RoleOperations, Dimension: assess.DimensionReadiness, Type: assess.TypeSingleSelect},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	t.Run("valid file", func(t *testing.T) {
		path := write("answers.yaml", `
variant: boardroom
answers:
  - question_id: q1
    participant_id: p1
    role: executive
    value: 4
  - question_id: q2
    participant_id: p2
    role: operations
    value: not_clearly_defined
`)
		variant, answers, err := LoadAnswers(path, reg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if variant != "boardroom" {
			t.Errorf("variant = %q, want boardroom", variant)
		}
		if len(answers) != 2 {
			t.Fatalf("got %d answers, want 2", len(answers))
		}
		if answers[0].Value.Likert != 4 {
			t.Errorf("q1 value = %+v, want likert 4", answers[0].Value)
		}
	})

	t.Run("unknown question", func(t *testing.T) {
		path := write("unknown.yaml", `
answers:
  - question_id: nope
    participant_id: p1
    role: executive
    value: 3
`)
		if _, _, err := LoadAnswers(path, reg); err == nil {
			t.Fatal("expected unknown question id to fail")
		}
	})

	t.Run("out-of-range likert", func(t *testing.T) {
		path := write("range.yaml", `
answers:
  - question_id: q1
    participant_id: p1
    role: executive
    value: 9
`)
		if _, _, err := LoadAnswers(path, reg); err == nil {
			t.Fatal("expected out-of-range value to fail")
		}
	})
}
