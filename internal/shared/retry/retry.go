// Package retry implements bounded retry with exponential backoff for
// operations that can fail transiently.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stock_ingest/internal/feature/prices/domain"
)

// Defaults used when a Policy is constructed with out-of-range values.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 1 * time.Second
	DefaultMaxDelay    = 30 * time.Second
)

// Policy retries an operation while its failures classify as retryable,
// sleeping an exponentially growing delay between attempts.
type Policy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	retryable   func(error) bool
	logger      *slog.Logger
}

// Option configures a Policy.
type Option func(*Policy)

// WithLogger sets the logger used for retry debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Policy) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRetryable overrides how failures are classified. The default treats
// transient fetch errors as retryable and everything else as final.
func WithRetryable(fn func(error) bool) Option {
	return func(p *Policy) {
		if fn != nil {
			p.retryable = fn
		}
	}
}

// NewPolicy creates a retry policy. maxAttempts is the total number of
// invocations including the first one; values below 1 fall back to
// DefaultMaxAttempts, non-positive delays fall back to their defaults.
func NewPolicy(maxAttempts int, baseDelay, maxDelay time.Duration, opts ...Option) *Policy {
	p := &Policy{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		maxDelay:    maxDelay,
		retryable:   domain.IsTransient,
		logger:      slog.Default(),
	}
	if p.maxAttempts < 1 {
		p.maxAttempts = DefaultMaxAttempts
	}
	if p.baseDelay <= 0 {
		p.baseDelay = DefaultBaseDelay
	}
	if p.maxDelay <= 0 {
		p.maxDelay = DefaultMaxDelay
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Do invokes op until it succeeds, fails with a non-retryable error, or the
// attempt budget is spent. The delay before attempt n+1 is baseDelay doubled
// n-1 times, capped at maxDelay; the sleep returns early with ctx.Err() when
// the context is cancelled. A spent budget returns an error wrapping both
// domain.ErrRetriesExhausted and the last failure.
func (p *Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error
	backoff := p.baseDelay

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if attempt > 0 {
			p.logger.Debug("retrying after transient failure",
				"attempt", attempt,
				"backoff", backoff,
				"error", lastErr,
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}

			backoff *= 2
			if backoff > p.maxDelay {
				backoff = p.maxDelay
			}
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !p.retryable(err) {
			return err
		}
	}

	return fmt.Errorf("%w: %w", domain.ErrRetriesExhausted, lastErr)
}
