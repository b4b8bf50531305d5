package monitor

import (
	"context"
	"time"

	clog "github.com/charmbracelet/log"
)

// DefaultInterval is the pause between poll cycles.
const DefaultInterval = 30 * time.Second

// Poller runs one poll cycle.
type Poller interface {
	PollOnce(ctx context.Context) error
}

// Runner drives the poll loop indefinitely. A failing cycle is logged and the
// loop continues after the usual sleep; only cancellation stops it.
type Runner struct {
	poller   Poller
	interval time.Duration
	log      *clog.Logger
}

// NewRunner creates a Runner polling at the given interval.
func NewRunner(poller Poller, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Runner{
		poller:   poller,
		interval: interval,
		log:      clog.Default().WithPrefix("monitor"),
	}
}

// Run polls until ctx is cancelled. One PollOnce fully completes, including
// the store reconciliation, before the next begins. Returns ctx.Err() on
// cancellation.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.log.Debug("Starting polling cycle")
		if err := r.poller.PollOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.log.Error("Poll cycle failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.interval):
		}
	}
}
