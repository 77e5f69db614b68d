// Package application holds the operator workflows behind each supplierctl
// command. Every workflow processes items one at a time and isolates
// failures to the item that caused them.
package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/altuslabsxyz/supplier-ops/internal/application/dto"
	"github.com/altuslabsxyz/supplier-ops/internal/chain"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
	"github.com/altuslabsxyz/supplier-ops/internal/pacer"
)

// batch tallies one run over a list of items.
type batch struct {
	out      dto.BatchOutput
	progress *output.Progress
	logger   output.LoggerInterface
	pacer    *pacer.Pacer
	label    string
}

func newBatch(label string, total int, p *pacer.Pacer, logger output.LoggerInterface) *batch {
	b := &batch{
		out:      dto.BatchOutput{RunID: uuid.NewString(), Total: total},
		progress: output.NewProgress(logger.Writer(), total),
		logger:   logger,
		pacer:    p,
		label:    label,
	}
	logger.Info("%s: run %s, %d item(s)", label, b.out.RunID, total)
	return b
}

func (b *batch) stage(format string, args ...interface{}) {
	b.progress.Stage(format, args...)
}

// wait spaces out external calls.
func (b *batch) wait(ctx context.Context) error {
	if b.pacer == nil {
		return ctx.Err()
	}
	return b.pacer.Wait(ctx)
}

func (b *batch) succeed(format string, args ...interface{}) {
	b.progress.Succeed()
	b.out.Succeeded++
	b.logger.Success(format, args...)
}

func (b *batch) skip(item string, format string, args ...interface{}) {
	b.progress.Skip()
	b.out.Skipped++
	b.logger.Warn(item+": "+format, args...)
}

func (b *batch) fail(item string, err error) {
	b.progress.Fail()
	b.out.Failed++
	b.out.Failures = append(b.out.Failures, dto.ItemFailure{Item: item, Err: err})

	var cmdErr *chain.CommandError
	if errors.As(err, &cmdErr) {
		b.logger.Error("%s: %s failed", item, cmdErr.Operation)
		b.logger.PrintCommandError(&output.CommandErrorInfo{
			Command:  cmdErr.Command,
			Args:     cmdErr.Args,
			Stdout:   cmdErr.Stdout,
			Stderr:   cmdErr.Stderr,
			ExitCode: cmdErr.ExitCode,
		})
		return
	}
	b.logger.Error("%s: %v", item, err)
}

func (b *batch) done() *dto.BatchOutput {
	b.progress.Done(b.label)
	out := b.out
	return &out
}
