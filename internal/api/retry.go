package api

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
)

// RetryPolicy wraps a call with bounded exponential-backoff retries.
// It is independent of the transport so it can be exercised without a network.
type RetryPolicy struct {
	MaxAttempts int
	MinDelay    time.Duration
	MaxDelay    time.Duration
	Retriable   func(error) bool
}

// DefaultRetryPolicy caps at 3 total attempts, matching the exchange client
// contract: transient faults retried, request-shape errors surfaced at once.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		MinDelay:    500 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Retriable:   IsRetriable,
	}
}

// Do runs fn until it succeeds, returns a non-retriable error, or the
// attempt cap is reached. The backoff wait aborts when ctx is cancelled.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	b := &backoff.Backoff{
		Min:    p.MinDelay,
		Max:    p.MaxDelay,
		Factor: 2,
	}

	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err := fn()
		if err == nil {
			return nil
		}
		if p.Retriable == nil || !p.Retriable(err) || attempt >= p.MaxAttempts {
			return err
		}

		timer := time.NewTimer(b.Duration())
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
