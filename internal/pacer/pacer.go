// Package pacer spaces out successive calls to external services.
package pacer

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

// DefaultDelay is the spacing used between chain CLI submissions and REST queries.
const DefaultDelay = 2 * time.Second

// Pacer lets the first call through immediately and holds every later call
// until at least delay has passed since the previous one was released.
type Pacer struct {
	clock   clockwork.Clock
	limiter *rate.Limiter
	delay   time.Duration
}

// New creates a Pacer. A non-positive delay disables pacing.
func New(delay time.Duration, clock clockwork.Clock) *Pacer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Pacer{
		clock:   clock,
		limiter: rate.NewLimiter(limit, 1),
		delay:   delay,
	}
}

// Delay returns the configured spacing.
func (p *Pacer) Delay() time.Duration {
	return p.delay
}

// Wait blocks until the next call may proceed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := p.clock.Now()
	r := p.limiter.ReserveN(now, 1)
	d := r.DelayFrom(now)
	if d <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		r.CancelAt(p.clock.Now())
		return ctx.Err()
	case <-p.clock.After(d):
		return nil
	}
}
