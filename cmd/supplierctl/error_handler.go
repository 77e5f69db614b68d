package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/supplier-ops/internal/application/dto"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
)

// recoverable is implemented by errors that know how the operator can fix them.
type recoverable interface {
	RecoveryHint() string
}

// errAlreadyReported is returned after handleCommandError has printed the error.
var errAlreadyReported = errors.New("command failed")

// handleCommandError prints err with its recovery hint, if any, and returns
// an error that only carries the exit status.
func handleCommandError(cmd *cobra.Command, err error) error {
	if err == nil || errors.Is(err, errAlreadyReported) {
		return err
	}
	if output.IsCancellation(err) {
		logger.Info("Operation cancelled.")
		return nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)

	var r recoverable
	if errors.As(err, &r) {
		if hint := r.RecoveryHint(); hint != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "\nHint: %s\n", hint)
		}
	}
	return errAlreadyReported
}

// reportBatch prints the per-item failures of a batch. Any failure makes the
// command exit non-zero once the whole batch has run.
func reportBatch(cmd *cobra.Command, out *dto.BatchOutput) error {
	if out == nil {
		return nil
	}
	if len(out.Failures) > 0 {
		logger.Error("Failed items:")
	}
	for _, f := range out.Failures {
		logger.Error("  %s: %v", f.Item, f.Err)
	}
	if out.Failed > 0 {
		return handleCommandError(cmd, fmt.Errorf("%d of %d item(s) failed (run %s)", out.Failed, out.Total, out.RunID))
	}
	return nil
}
