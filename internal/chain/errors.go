package chain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSupplierNotFound is returned when the operator has no staked supplier.
var ErrSupplierNotFound = errors.New("supplier not found")

// CommandError is returned when the chain CLI exits with a non-zero status.
type CommandError struct {
	Operation string
	Command   string
	Args      []string
	ExitCode  int
	Stdout    string
	Stderr    string
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(e.Stdout)
	}
	if msg == "" {
		return fmt.Sprintf("%s failed: %s exited with code %d", e.Operation, e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %s exited with code %d: %s", e.Operation, e.Command, e.ExitCode, lastLine(msg))
}

// QueryError is returned when a supplier query fails for a reason other than
// the supplier not being staked.
type QueryError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *QueryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("query %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("query %s failed: %s", e.Endpoint, e.Message)
}

// IsNotFound reports whether err means the supplier is not staked.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSupplierNotFound)
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
