package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claritygate/claritygate/pkg/config"
)

func newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a config file for problems",
		Long:  `Loads the config and validates the question catalog, variant weights and thresholds without evaluating anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: find .claritygate/config.yaml)")

	return cmd
}

func runValidate(configPath string) error {
	cfg, err := resolveConfig(configPath)
	if err != nil {
		return err
	}

	registry, err := cfg.BuildRegistry()
	if err != nil {
		return err
	}
	variants, err := cfg.BuildVariants()
	if err != nil {
		return err
	}
	if _, err := cfg.BuildThresholds(); err != nil {
		return err
	}

	fmt.Printf("Config OK\n")
	fmt.Printf("  Questions: %d\n", len(registry.Questions()))
	fmt.Printf("  Variants:  %d\n", len(variants))
	if len(registry.Questions()) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no questions defined; evaluate will refuse to run\n")
	}

	return nil
}

// resolveConfig loads the config at the given path, or searches upward
// from the working directory when no path is given.
func resolveConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	found := config.FindConfigFile(cwd)
	if found == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(found)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
