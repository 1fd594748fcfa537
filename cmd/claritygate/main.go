// Package main provides the claritygate CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "claritygate",
		Short: "Decision clarity analysis for project assessments",
		Long: `Claritygate evaluates structured assessment answers, scores decision
clarity across dimensions, detects risk flags and recommends GO, CLARIFY
or NO_GO.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newEvaluateCmd(),
		newValidateCmd(),
		newVariantsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
