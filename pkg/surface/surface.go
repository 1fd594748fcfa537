// Package surface defines output rendering for claritygate evaluation
// results. Implementations handle different output targets: terminal, JSON.
package surface

import (
	"io"

	"github.com/claritygate/claritygate/pkg/assess"
)

// Renderer produces formatted output from an evaluation Result.
type Renderer interface {
	// Render writes the formatted result to the writer.
	Render(w io.Writer, result *assess.Result) error
}
