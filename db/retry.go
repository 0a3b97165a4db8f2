package db

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig controls WithRetry.
type RetryConfig struct {
	MaxAttempts int
	// Delay is the wait before the second attempt; it doubles after each
	// further failure up to MaxDelay (no cap when zero).
	Delay    time.Duration
	MaxDelay time.Duration
	// RetryOn reports whether err is worth another attempt. The default
	// retries deadlocks, timeouts and connection failures.
	RetryOn func(error) bool
}

func transient(err error) bool {
	return IsDeadlock(err) || IsTimeout(err) || IsConnectionFailed(err)
}

// WithRetry calls fn until it succeeds, returns an error RetryOn rejects, or
// MaxAttempts is reached. It is used at startup while the database container
// may still be coming up.
func WithRetry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	retryOn := cfg.RetryOn
	if retryOn == nil {
		retryOn = transient
	}
	attempts := max(cfg.MaxAttempts, 1)
	delay := cfg.Delay

	var err error
	for i := range attempts {
		if i > 0 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return fmt.Errorf("indosup/db: retry abandoned: %w (last error: %v)", ctx.Err(), err)
			case <-t.C:
			}
			delay *= 2
			if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}
		if err = fn(); err == nil || !retryOn(err) {
			return err
		}
	}
	return fmt.Errorf("indosup/db: gave up after %d attempts: %w", attempts, err)
}
