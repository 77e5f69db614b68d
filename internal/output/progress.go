package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Progress reports per-item progress for a batch run and tallies outcomes.
type Progress struct {
	out       io.Writer
	total     int
	current   int
	succeeded int
	failed    int
	skipped   int
}

// NewProgress creates a new Progress writing to out for total items.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{
		out:   out,
		total: total,
	}
}

// Stage prints a progress stage message in format [N/M] Description...
func (p *Progress) Stage(format string, args ...interface{}) {
	p.current++
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(p.out, "[%d/%d] %s...\n", p.current, p.total, fmt.Sprintf(format, args...))
}

// Succeed records a successful item.
func (p *Progress) Succeed() { p.succeeded++ }

// Fail records a failed item.
func (p *Progress) Fail() { p.failed++ }

// Skip records an item that was not attempted.
func (p *Progress) Skip() { p.skipped++ }

// Summary returns the outcome counters.
func (p *Progress) Summary() Summary {
	return Summary{
		Total:     p.total,
		Succeeded: p.succeeded,
		Failed:    p.failed,
		Skipped:   p.skipped,
	}
}

// Done prints the outcome line.
func (p *Progress) Done(label string) {
	s := p.Summary()
	c := color.New(color.FgGreen)
	if s.Failed > 0 {
		c = color.New(color.FgYellow)
	}
	c.Fprintf(p.out, "\n%s: %d succeeded, %d failed, %d skipped (of %d)\n",
		label, s.Succeeded, s.Failed, s.Skipped, s.Total)
}

// Summary holds the outcome counters of a batch run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
}
