package surface

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/claritygate/claritygate/pkg/assess"
)

// TerminalRenderer renders a Result as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func verdictColor(v assess.Verdict) string {
	if noColor() {
		return ""
	}
	switch v {
	case assess.VerdictGo:
		return colorGreen
	case assess.VerdictClarify:
		return colorYellow
	case assess.VerdictNoGo:
		return colorRed
	default:
		return ""
	}
}

func severityColor(s assess.Severity) string {
	if noColor() {
		return ""
	}
	switch s {
	case assess.SeverityCritical:
		return colorRed
	case assess.SeverityWarn:
		return colorYellow
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *assess.Result) error {
	// Header
	if result.Index.Computed && result.Index.Value.Valid {
		fmt.Fprintf(w, "%s\n\n",
			bold(fmt.Sprintf("Claritygate: %s — index %.1f (%s)",
				colored(verdictLine(result), verdictColor(result.Recommendation.Verdict)),
				result.Index.Value.Value, result.Index.Label)))
	} else {
		fmt.Fprintf(w, "%s\n\n",
			bold(fmt.Sprintf("Claritygate: %s",
				colored(verdictLine(result), verdictColor(result.Recommendation.Verdict)))))
	}
	fmt.Fprintf(w, "%s\n\n", result.Recommendation.Reason)

	// Dimension breakdown
	if len(result.Index.Breakdown) > 0 {
		fmt.Fprintln(w, "Dimensions:")
		for _, c := range result.Index.Breakdown {
			fmt.Fprintf(w, "  %-12s %s  %s\n",
				c.Dimension, formatScore(c.Score), dim(fmt.Sprintf("weight %.2f", c.Weight)))
		}
		fmt.Fprintln(w)
	}

	// Flags
	if len(result.Flags) > 0 {
		fmt.Fprintln(w, "Flags:")
		for _, f := range result.Flags {
			fmt.Fprintf(w, "  %s %s — %s\n",
				colored(fmt.Sprintf("[%s]", f.Severity), severityColor(f.Severity)),
				bold(string(f.ID)), f.Summary)
			maxEvidence := 3
			if len(f.Evidence) < maxEvidence {
				maxEvidence = len(f.Evidence)
			}
			for i := 0; i < maxEvidence; i++ {
				ev := f.Evidence[i]
				fmt.Fprintf(w, "      %s\n", dim(fmt.Sprintf("%s (%s, %s): %s", ev.QuestionID, ev.Role, ev.ParticipantID, ev.Value)))
			}
			if len(f.Evidence) > 3 {
				fmt.Fprintf(w, "      %s\n", dim(fmt.Sprintf("... and %d more", len(f.Evidence)-3)))
			}
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "No flags.")
		fmt.Fprintln(w)
	}

	// Gates
	if result.HasGates {
		fmt.Fprintln(w, "Open gates:")
		for _, g := range result.Gates {
			fmt.Fprintf(w, "  %s %s — %s\n", colored("●", colorRed), bold(string(g.ID)), g.Reason)
		}
		fmt.Fprintln(w)
	}

	// Process areas
	if result.Process.Active {
		fmt.Fprintf(w, "Process readiness: %s\n", formatScore(result.Process.CaseScore))
		for _, a := range result.Process.Areas {
			fmt.Fprintf(w, "  %-12s %s\n", a.Area, formatScore(a.Score))
		}
		fmt.Fprintln(w)
	}

	// Excluded answers
	if len(result.ValidationIssues) > 0 {
		fmt.Fprintln(w, "Excluded answers:")
		for _, issue := range result.ValidationIssues {
			fmt.Fprintf(w, "  %s\n", dim(fmt.Sprintf("%s (%s): %s", issue.QuestionID, issue.ParticipantID, issue.Detail)))
		}
		fmt.Fprintln(w)
	}

	return nil
}

func verdictLine(result *assess.Result) string {
	if result.Recommendation.Verdict == "" {
		return fmt.Sprintf("no verdict (%s variant is gate-only)", result.Variant)
	}
	return string(result.Recommendation.Verdict)
}

func formatScore(s assess.Score) string {
	if !s.Valid {
		return "  n/a"
	}
	return fmt.Sprintf("%5.1f", s.Value)
}

// SummaryLine condenses a result to one line for logs and lists.
func SummaryLine(result *assess.Result) string {
	parts := []string{verdictLine(result)}
	if result.Index.Value.Valid {
		parts = append(parts, fmt.Sprintf("index %.1f", result.Index.Value.Value))
	}
	var sevs []string
	for sev, n := range result.FlagCounts {
		sevs = append(sevs, fmt.Sprintf("%d %s", n, strings.ToLower(string(sev))))
	}
	sort.Strings(sevs)
	if len(sevs) > 0 {
		parts = append(parts, strings.Join(sevs, ", "))
	}
	if result.HasGates {
		parts = append(parts, fmt.Sprintf("%d gate(s)", len(result.Gates)))
	}
	return strings.Join(parts, " — ")
}
