// pkg/util/subprocess/runner.go
// Package subprocess runs blocking external commands on behalf of
// plugins. The core imposes no timeout; a plugin that needs one wraps
// its own context around the call.
package subprocess

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/genoscribe/genoscribe/pkg/logging"
)

// Runner executes external commands synchronously, capturing output for
// diagnostics.
type Runner struct {
	logger zerolog.Logger
}

// NewRunner creates a runner logging through the given sink.
func NewRunner(logger zerolog.Logger) *Runner {
	return &Runner{logger: logger.With().Str("component", "subprocess").Logger()}
}

// Run executes name with args, blocking until it exits. Stdout is
// returned; on failure the error carries the captured stderr.
func (r *Runner) Run(name string, args ...string) (string, error) {
	r.logger.Debug().Str("command", name).Strs("args", args).Msg("running external command")

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		r.logger.Error().
			Str("command", name).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Err(err).
			Msg("external command failed")
		return "", fmt.Errorf("run %q: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}

	// Stdout can be large; defer the formatting until the event is known
	// to pass the level filter.
	r.logger.Debug().Str("command", name).
		MsgFunc(logging.LazyMessage("external command completed: ", strings.TrimSpace(stdout.String())))
	return stdout.String(), nil
}
