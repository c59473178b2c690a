package browser

import (
	"context"
	"time"
)

// Outcome is the result of waiting on a soft UI condition.
type Outcome int

const (
	// Observed means the condition became true within the timeout.
	Observed Outcome = iota
	// TimedOut means it did not; callers decide whether that is fatal or
	// just "proceed anyway".
	TimedOut
)

// Await polls cond every interval until it reports true, the timeout
// expires, or ctx is cancelled. Errors from cond count as "not yet" —
// transient DOM states while a page is mid-render are expected.
func Await(ctx context.Context, timeout, interval time.Duration, cond func(context.Context) (bool, error)) Outcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if ok, err := cond(ctx); err == nil && ok {
			return Observed
		}
		select {
		case <-ctx.Done():
			return TimedOut
		case <-ticker.C:
		}
	}
}
