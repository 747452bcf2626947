// Package ratelimiter enforces a minimum spacing between external API calls.
package ratelimiter

import (
	"context"
	"log/slog"
	"time"
)

// RateLimiter gates calls to an external API so a fixed rate quota is never
// exceeded.
type RateLimiter interface {
	// Acquire blocks until the next call may be issued, or until ctx is done.
	Acquire(ctx context.Context) error
}

// IntervalLimiter keeps consecutive acquisitions at least a fixed interval
// apart. Unlike a windowed counter it can never burst, which is what the
// free tiers of market-data APIs effectively require.
//
// Not safe for concurrent use: the pipeline issues its calls sequentially.
type IntervalLimiter struct {
	interval time.Duration
	last     time.Time
}

var _ RateLimiter = (*IntervalLimiter)(nil)

// NewIntervalLimiter creates a limiter with the given minimum spacing.
// An interval of zero or less disables waiting entirely.
func NewIntervalLimiter(interval time.Duration) *IntervalLimiter {
	return &IntervalLimiter{interval: interval}
}

// PerMinute converts a calls-per-minute quota into the spacing that keeps it,
// e.g. 5 calls/min gives 12s.
func PerMinute(calls int) time.Duration {
	if calls <= 0 {
		return 0
	}
	return time.Minute / time.Duration(calls)
}

// Acquire blocks until at least the configured interval has passed since the
// previous acquisition. The first acquisition passes immediately. While
// waiting it returns early with ctx.Err() if the context is cancelled.
func (rl *IntervalLimiter) Acquire(ctx context.Context) error {
	if !rl.last.IsZero() {
		wait := rl.interval - time.Since(rl.last)
		if wait > 0 {
			slog.Debug("rate limit: waiting for next call slot", "wait", wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	rl.last = time.Now()
	return nil
}
