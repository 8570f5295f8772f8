// cmd/genoscribe/internal/format/summary.go
package format

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Lipgloss styles for run progress messages
var (
	// Phase completion style - green
	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	// Plugin identifier style - cyan
	pluginStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	// Artifact path style - gray
	artifactStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// RunReporter renders per-phase progress lines during a report run.
type RunReporter struct {
	writer       io.Writer
	colorEnabled bool
	quiet        bool
}

// NewRunReporter creates a progress reporter for interactive runs.
func NewRunReporter(writer io.Writer, colorEnabled, quiet bool) *RunReporter {
	return &RunReporter{
		writer:       writer,
		colorEnabled: colorEnabled,
		quiet:        quiet,
	}
}

// Phase reports completion of one pipeline phase.
func (r *RunReporter) Phase(name string, sections int) {
	if r.quiet {
		return
	}
	msg := fmt.Sprintf("✓ %s complete (%d sections)", name, sections)
	if r.colorEnabled {
		msg = phaseStyle.Render(msg)
	}
	fmt.Fprintln(r.writer, msg)
}

// Artifact reports a written output file.
func (r *RunReporter) Artifact(label, path string) {
	if r.quiet {
		return
	}
	line := fmt.Sprintf("  %s: %s", label, path)
	if r.colorEnabled {
		line = artifactStyle.Render(line)
	}
	fmt.Fprintln(r.writer, line)
}

// PluginName styles a plugin identifier for interactive output.
func (r *RunReporter) PluginName(identifier string) string {
	if !r.colorEnabled {
		return identifier
	}
	return pluginStyle.Render(identifier)
}
