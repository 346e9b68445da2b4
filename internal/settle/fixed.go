package settle

import (
	"context"
	"time"
)

// Fixed waits a constant delay after input injection, then reads once.
// This mirrors the observed latency of the service rather than any
// completion signal.
type Fixed struct {
	Delay time.Duration
}

// Name returns the strategy name
func (f *Fixed) Name() string {
	return NameFixed
}

// Settle sleeps for the configured delay and reads the page
func (f *Fixed) Settle(ctx context.Context, r Reader) (string, error) {
	if err := sleep(ctx, f.Delay); err != nil {
		return "", err
	}
	return r.ReadPageText(ctx)
}
