package executor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// OSCommandExecutor implements CommandExecutor using os/exec package.
// This is the production adapter that executes real system commands.
type OSCommandExecutor struct{}

// NewOSCommandExecutor creates a new command executor using the real OS exec package.
func NewOSCommandExecutor() *OSCommandExecutor {
	return &OSCommandExecutor{}
}

// Execute runs the command via exec.CommandContext.
func (e *OSCommandExecutor) Execute(ctx context.Context, name string, args ...string) (*Result, error) {
	return e.ExecuteWithInput(ctx, nil, name, args...)
}

// ExecuteWithInput runs the command with stdin connected to input.
func (e *OSCommandExecutor) ExecuteWithInput(ctx context.Context, input io.Reader, name string, args ...string) (*Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if input != nil {
		cmd.Stdin = input
	}

	err := cmd.Run()
	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return nil, err
}

var _ CommandExecutor = (*OSCommandExecutor)(nil)
