// Package openclaw runs the agent gateway CLI.
package openclaw

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/example/commandcenter/internal/ports/secondary"
)

// Runner implements secondary.CommandRunner with os/exec. Arguments are
// passed as an argv list, never through a shell.
type Runner struct {
	binary  string
	timeout time.Duration
}

// NewRunner creates a runner for binary. Each run is bounded by timeout.
func NewRunner(binary string, timeout time.Duration) *Runner {
	return &Runner{binary: binary, timeout: timeout}
}

// Run executes the CLI and returns its stdout.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Children that inherit the pipes must not hold Run open past the deadline.
	cmd.WaitDelay = 500 * time.Millisecond

	err := cmd.Run()
	if ctx.Err() != nil {
		err = fmt.Errorf("%s timed out: %w", r.binary, ctx.Err())
	}
	if err != nil || stderr.Len() > 0 {
		return stdout.String(), &secondary.CommandError{
			Args:   append([]string{r.binary}, args...),
			Stderr: stderr.String(),
			Err:    err,
		}
	}
	return stdout.String(), nil
}

// Ensure Runner implements the interface
var _ secondary.CommandRunner = (*Runner)(nil)
