package executor

import (
	"context"
	"io"
	"time"
)

// CommandExecutor abstracts command execution for testing.
// Callers are responsible for validating command arguments.
type CommandExecutor interface {
	// Execute runs name with args and captures stdout and stderr separately.
	// A non-zero exit is reported through Result.ExitCode with a nil error;
	// the error is reserved for commands that could not be started or were
	// killed because ctx was done.
	Execute(ctx context.Context, name string, args ...string) (*Result, error)

	// ExecuteWithInput is Execute with stdin fed from input.
	ExecuteWithInput(ctx context.Context, input io.Reader, name string, args ...string) (*Result, error)
}

// Result is the captured outcome of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the command exited with status zero.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// DefaultTimeout bounds a single chain CLI invocation.
// pocketd waits for the tx to be included when --timeout-duration is set, so this
// is generous.
const DefaultTimeout = 2 * time.Minute
