package crawler

import (
	"context"
	"time"
)

// RetryPolicy is the outer retry layer applied per logical operation: a
// fixed number of attempts with a fixed wait between them. It composes with
// the transport's own inner retry.
type RetryPolicy struct {
	Attempts int
	Wait     time.Duration
}

// Do runs op until it succeeds, the attempts run out, or ctx is cancelled.
// The wait between attempts is interruptible.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && p.Wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Wait):
			}
		}
		if err = op(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}
