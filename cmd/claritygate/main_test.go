package main

import (
	"testing"

	"github.com/claritygate/claritygate/pkg/assess"
)

func TestEvaluateCmdFlags(t *testing.T) {
	cmd := newEvaluateCmd()
	f := cmd.Flags()

	// Test default output format
	outputFmt, _ := f.GetString("output")
	if outputFmt != "text" {
		t.Errorf("default output = %q, want text", outputFmt)
	}

	// Test that flags exist
	for _, flag := range []string{"answers", "config", "variant", "output", "store"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestValidateCmdFlags(t *testing.T) {
	cmd := newValidateCmd()
	if cmd.Flags().Lookup("config") == nil {
		t.Error("missing flag: config")
	}
}

func TestVariantsCmdFlags(t *testing.T) {
	cmd := newVariantsCmd()
	if cmd.Flags().Lookup("config") == nil {
		t.Error("missing flag: config")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a", "b", "c"}, "a"},
		{[]string{"", "b", "c"}, "b"},
		{[]string{"", "", "c"}, "c"},
		{[]string{"", "", ""}, ""},
	}

	for _, tt := range tests {
		got := firstNonEmpty(tt.args...)
		if got != tt.want {
			t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestFormatWeights(t *testing.T) {
	got := formatWeights(map[assess.Role]float64{
		"ops":      0.25,
		"business": 0.50,
		"it":       0.25,
	})
	want := "business=0.50 it=0.25 ops=0.25"
	if got != want {
		t.Errorf("formatWeights = %q, want %q", got, want)
	}
}
