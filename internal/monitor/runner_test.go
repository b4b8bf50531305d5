package monitor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// countingPoller fails every cycle and counts invocations.
type countingPoller struct {
	calls atomic.Int64
	err   error
}

func (p *countingPoller) PollOnce(context.Context) error {
	p.calls.Add(1)
	return p.err
}

func TestRunner_ContinuesAfterFailedCycle(t *testing.T) {
	poller := &countingPoller{err: errors.New("transient API hiccup")}
	runner := NewRunner(poller, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := runner.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	// The loop outlived several failing cycles.
	assert.GreaterOrEqual(t, poller.calls.Load(), int64(2))
}

func TestRunner_StopsOnCancellation(t *testing.T) {
	poller := &countingPoller{}
	runner := NewRunner(poller, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
	}()

	// Let the first cycle run, then cancel during the inter-poll sleep.
	assert.Eventually(t, func() bool {
		return poller.calls.Load() >= 1
	}, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after cancellation")
	}
	assert.Equal(t, int64(1), poller.calls.Load())
}

func TestRunner_CancelledBeforeStart(t *testing.T) {
	poller := &countingPoller{}
	runner := NewRunner(poller, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, poller.calls.Load())
}

func TestNewRunner_DefaultInterval(t *testing.T) {
	runner := NewRunner(&countingPoller{}, 0)
	assert.Equal(t, DefaultInterval, runner.interval)
}
