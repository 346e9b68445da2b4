package settle

import (
	"context"
	"time"
)

// Polling reads the page every Interval until two consecutive reads are
// identical, or until Timeout elapses. When Ready is set, a stable read only
// counts once Ready accepts it, so an untouched page is not mistaken for a
// settled one.
type Polling struct {
	Interval time.Duration
	Timeout  time.Duration
	Ready    func(text string) bool
}

// Name returns the strategy name
func (p *Polling) Name() string {
	return NamePolling
}

// Settle polls the page. On timeout the last read text is returned without
// an error so the caller extracts whatever is rendered.
func (p *Polling) Settle(ctx context.Context, r Reader) (string, error) {
	deadline := time.NewTimer(p.Timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	prev, err := r.ReadPageText(ctx)
	if err != nil {
		return "", err
	}

	for {
		select {
		case <-ctx.Done():
			return prev, ctx.Err()
		case <-deadline.C:
			return prev, nil
		case <-ticker.C:
			cur, err := r.ReadPageText(ctx)
			if err != nil {
				return "", err
			}
			if cur == prev && p.ready(cur) {
				return cur, nil
			}
			prev = cur
		}
	}
}

func (p *Polling) ready(text string) bool {
	if p.Ready == nil {
		return true
	}
	return p.Ready(text)
}
