package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. The API client wraps
// maxlag responses, rate limits and 5xx replies with it so that [Retry]
// attempts the call again; anything else aborts the loop immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling the delay between
// attempts. Only errors wrapped in [RetryableError] are retried.
// Returns the last error when every attempt fails, or ctx.Err() when
// the context is cancelled while waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.As(err, new(*RetryableError)) || attempt == attempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

// RetryWithBackoff calls [Retry] with the defaults used throughout the
// client: 3 attempts starting at 1 second. That rides out a replica lag
// spike without hammering the wiki.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
