// Package report prints glyph-prefixed progress lines for provisioning runs.
// Output is informational, not intended for machine parsing.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter writes progress lines to a single destination. The binary passes
// os.Stdout; tests pass a buffer.
type Reporter struct {
	w io.Writer
}

// New creates a reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Section prints a cyan section header.
func (r *Reporter) Section(msg string) {
	fmt.Fprintln(r.w)
	color.New(color.FgCyan).Fprintf(r.w, "=== %s ===\n", msg)
	fmt.Fprintln(r.w)
}

// Stepf prints an in-progress step line.
func (r *Reporter) Stepf(format string, a ...any) {
	fmt.Fprintf(r.w, "→ "+format+"\n", a...)
}

// Successf prints a completed step.
func (r *Reporter) Successf(format string, a ...any) {
	color.New(color.FgGreen).Fprintf(r.w, "✓ "+format+"\n", a...)
}

// Warnf prints a non-fatal warning.
func (r *Reporter) Warnf(format string, a ...any) {
	color.New(color.FgYellow).Fprintf(r.w, "⚠ "+format+"\n", a...)
}

// Infof prints an indented detail line under the previous step.
func (r *Reporter) Infof(format string, a ...any) {
	fmt.Fprintf(r.w, "  "+format+"\n", a...)
}
