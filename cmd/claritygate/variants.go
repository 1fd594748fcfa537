package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claritygate/claritygate/pkg/assess"
)

func newVariantsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List configured assessment variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVariants(configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: find .claritygate/config.yaml)")

	return cmd
}

func runVariants(configPath string) error {
	cfg, err := resolveConfig(configPath)
	if err != nil {
		return err
	}

	variants, err := cfg.BuildVariants()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v := variants[name]
		fmt.Printf("%s\n", name)
		fmt.Printf("  index:   %s\n", enabledWord(v.ComputeIndex))
		fmt.Printf("  process: %s\n", enabledWord(v.ProcessActive))
		fmt.Printf("  weights: %s\n", formatWeights(v.RoleWeights))
	}

	return nil
}

func enabledWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

func formatWeights(weights map[assess.Role]float64) string {
	roles := make([]string, 0, len(weights))
	for role := range weights {
		roles = append(roles, string(role))
	}
	sort.Strings(roles)

	parts := make([]string, 0, len(roles))
	for _, role := range roles {
		parts = append(parts, fmt.Sprintf("%s=%.2f", role, weights[assess.Role(role)]))
	}
	return strings.Join(parts, " ")
}
