// Package config handles loading and managing claritygate configuration:
// the question registry, assessment variants and numeric thresholds.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/claritygate/claritygate/pkg/assess"
)

// Config is the top-level configuration for claritygate.
type Config struct {
	Questions  []assess.QuestionDefinition `yaml:"questions"`
	Variants   map[string]VariantConfig    `yaml:"variants"`
	Thresholds ThresholdConfig             `yaml:"thresholds"`
}

// VariantConfig describes one assessment variant.
type VariantConfig struct {
	RoleWeights   map[assess.Role]float64 `yaml:"role_weights"`
	ComputeIndex  bool                    `yaml:"compute_index"`
	ProcessActive bool                    `yaml:"process_active"`
}

// ThresholdConfig overrides the built-in numeric cut-offs.
type ThresholdConfig struct {
	IndexLow       float64 `yaml:"index_low"`
	IndexHigh      float64 `yaml:"index_high"`
	DimensionFloor float64 `yaml:"dimension_floor"`
	HighAdjusted   int     `yaml:"high_adjusted"`
	CrossRoleGap   float64 `yaml:"cross_role_gap"`
}

// DefaultConfig returns a Config carrying the built-in variants and
// thresholds and an empty question catalog.
func DefaultConfig() *Config {
	t := assess.DefaultThresholds()
	variants := map[string]VariantConfig{}
	for name, v := range assess.DefaultVariants() {
		variants[name] = VariantConfig{
			RoleWeights:   v.RoleWeights,
			ComputeIndex:  v.ComputeIndex,
			ProcessActive: v.ProcessActive,
		}
	}
	return &Config{
		Variants: variants,
		Thresholds: ThresholdConfig{
			IndexLow:       t.IndexLow,
			IndexHigh:      t.IndexHigh,
			DimensionFloor: t.DimensionFloor,
			HighAdjusted:   t.HighAdjusted,
			CrossRoleGap:   t.CrossRoleGap,
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// BuildRegistry compiles the question catalog into an immutable registry.
func (c *Config) BuildRegistry() (*assess.Registry, error) {
	reg, err := assess.NewRegistry(c.Questions)
	if err != nil {
		return nil, fmt.Errorf("building question registry: %w", err)
	}
	return reg, nil
}

// BuildVariants converts and validates the configured variants.
func (c *Config) BuildVariants() (map[string]assess.Variant, error) {
	variants := map[string]assess.Variant{}
	for name, vc := range c.Variants {
		v := assess.Variant{
			Name:          name,
			RoleWeights:   vc.RoleWeights,
			ComputeIndex:  vc.ComputeIndex,
			ProcessActive: vc.ProcessActive,
		}
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("variant %s: %w", name, err)
		}
		variants[name] = v
	}
	return variants, nil
}

// BuildThresholds converts and validates the configured cut-offs.
func (c *Config) BuildThresholds() (assess.Thresholds, error) {
	t := assess.Thresholds{
		IndexLow:       c.Thresholds.IndexLow,
		IndexHigh:      c.Thresholds.IndexHigh,
		DimensionFloor: c.Thresholds.DimensionFloor,
		HighAdjusted:   c.Thresholds.HighAdjusted,
		CrossRoleGap:   c.Thresholds.CrossRoleGap,
	}
	if t.IndexLow <= 0 || t.IndexHigh <= t.IndexLow || t.IndexHigh > 100 {
		return assess.Thresholds{}, fmt.Errorf("thresholds: index_low %.1f and index_high %.1f must satisfy 0 < low < high <= 100", t.IndexLow, t.IndexHigh)
	}
	if t.DimensionFloor < 0 || t.DimensionFloor > 100 {
		return assess.Thresholds{}, fmt.Errorf("thresholds: dimension_floor %.1f must be within [0,100]", t.DimensionFloor)
	}
	if t.HighAdjusted < 1 || t.HighAdjusted > 5 {
		return assess.Thresholds{}, fmt.Errorf("thresholds: high_adjusted %d must be within [1,5]", t.HighAdjusted)
	}
	if t.CrossRoleGap <= 0 || t.CrossRoleGap >= 4 {
		return assess.Thresholds{}, fmt.Errorf("thresholds: cross_role_gap %.1f must be within (0,4)", t.CrossRoleGap)
	}
	return t, nil
}

// FindConfigFile looks for .claritygate/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".claritygate", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the local cache directory for a given assessment
// workspace. Uses ~/.cache/claritygate/<slug>/ to avoid polluting the
// workspace itself.
func CacheDir(workspacePath string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "claritygate", workspaceSlug(workspacePath))
}

// EvaluationDir returns the stored-evaluation directory for a workspace.
func EvaluationDir(workspacePath string) string {
	return filepath.Join(CacheDir(workspacePath), "evaluations")
}

// SnapshotDir returns the answer-snapshot directory for a workspace.
func SnapshotDir(workspacePath string) string {
	return filepath.Join(CacheDir(workspacePath), "snapshots")
}

// workspaceSlug creates a filesystem-safe identifier from a workspace
// path, using the last two path components for readability.
func workspaceSlug(workspacePath string) string {
	abs, err := filepath.Abs(workspacePath)
	if err != nil {
		abs = workspacePath
	}
	dir := filepath.Base(filepath.Dir(abs))
	base := filepath.Base(abs)
	return dir + "_" + base
}
