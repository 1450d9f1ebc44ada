package retry

import (
	"context"
	"time"
)

// Do runs fn up to attempts times, sleeping delay between attempts.
//
// An error is retried only when retryable reports true for it; any other
// error aborts immediately and is returned as-is. The last retryable error
// is returned once the attempt budget is exhausted. Context cancellation is
// observed while sleeping between attempts.
func Do(ctx context.Context, attempts int, delay time.Duration, retryable func(error) bool, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if retryable == nil || !retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
