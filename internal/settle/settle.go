// Package settle decides when the rendered translator output is stable
// enough to read.
package settle

import (
	"context"
	"fmt"
	"time"
)

// Reader reads the current text content of the page
type Reader interface {
	ReadPageText(ctx context.Context) (string, error)
}

// Strategy waits for the page to settle and returns its text
type Strategy interface {
	Name() string
	Settle(ctx context.Context, r Reader) (string, error)
}

const (
	NameFixed   = "fixed"
	NamePolling = "polling"
)

// Options configures the strategies built by New
type Options struct {
	Delay    time.Duration          // Fixed: wait before the single read
	Interval time.Duration          // Polling: time between reads
	Timeout  time.Duration          // Polling: upper bound on the whole wait
	Ready    func(text string) bool // Polling: optional readiness predicate
}

// New builds the named strategy
func New(name string, opts Options) (Strategy, error) {
	switch name {
	case NameFixed, "":
		return &Fixed{Delay: opts.Delay}, nil
	case NamePolling:
		if opts.Interval <= 0 {
			return nil, fmt.Errorf("settle: polling interval must be positive, got %s", opts.Interval)
		}
		if opts.Timeout <= 0 {
			return nil, fmt.Errorf("settle: polling timeout must be positive, got %s", opts.Timeout)
		}
		return &Polling{Interval: opts.Interval, Timeout: opts.Timeout, Ready: opts.Ready}, nil
	default:
		return nil, fmt.Errorf("settle: unknown strategy %q", name)
	}
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
