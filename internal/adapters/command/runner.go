// Package command provides command execution adapters.
package command

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// ExecRunner executes real external commands.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command and returns the result. A non-zero exit status is
// reported through the result, not as an error.
func (r *ExecRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := ports.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// Ensure ExecRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*ExecRunner)(nil)

// RecordedCall is one invocation seen by a FakeRunner.
type RecordedCall struct {
	Command string
	Args    []string
}

// FakeRunner records invocations and returns canned results. It backs tests
// for steps that shell out.
type FakeRunner struct {
	Calls   []RecordedCall
	Results map[string]ports.CommandResult
	Err     error
}

// NewFakeRunner creates a FakeRunner with no canned results; every call
// succeeds with exit code 0.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Results: make(map[string]ports.CommandResult)}
}

// Run records the call and returns the canned result keyed by the joined
// command line, or a zero (successful) result when none is configured.
func (r *FakeRunner) Run(_ context.Context, command string, args ...string) (ports.CommandResult, error) {
	r.Calls = append(r.Calls, RecordedCall{Command: command, Args: args})
	if r.Err != nil {
		return ports.CommandResult{}, r.Err
	}
	key := strings.Join(append([]string{command}, args...), " ")
	if result, ok := r.Results[key]; ok {
		return result, nil
	}
	return ports.CommandResult{}, nil
}

// Ensure FakeRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*FakeRunner)(nil)
