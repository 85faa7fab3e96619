package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/reagent-ai/reagent/providers/ai"
)

// ErrRetryExhausted is returned by the retry middleware when all retry
// attempts have been consumed without a successful response. It is wrapped
// together with the last underlying provider error so callers can use
// errors.Is / errors.As to inspect the root cause.
var ErrRetryExhausted = errors.New("reagent: all retry attempts exhausted")

// RetryConfig holds the tuning parameters for the retry middleware. Zero
// values are replaced with the defaults documented below when [Retry] is
// called.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts after the first
	// failure. A value of 3 means the provider is called at most 4 times.
	// Default: 3.
	MaxRetries int

	// InitialBackoff is the wait duration before the first retry attempt.
	// Default: 1s.
	InitialBackoff time.Duration

	// MaxBackoff caps the computed backoff. Default: 30s.
	MaxBackoff time.Duration

	// BackoffFactor is the exponential growth multiplier applied on
	// successive retries. Default: 2.0.
	BackoffFactor float64

	// JitterFraction adds random noise to the computed backoff in the range
	// [0, JitterFraction * backoff]. Default: 0.1.
	JitterFraction float64

	// RetryableFunc reports whether an error should trigger a retry. The
	// default retries on [ai.ErrRateLimited] and [ai.ErrUpstreamUnavailable].
	RetryableFunc func(error) bool
}

func defaultRetryableFunc(err error) bool {
	return errors.Is(err, ai.ErrRateLimited) || errors.Is(err, ai.ErrUpstreamUnavailable)
}

func applyRetryDefaults(config *RetryConfig) {
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.InitialBackoff == 0 {
		config.InitialBackoff = time.Second
	}
	if config.MaxBackoff == 0 {
		config.MaxBackoff = 30 * time.Second
	}
	if config.BackoffFactor == 0 {
		config.BackoffFactor = 2.0
	}
	if config.JitterFraction == 0 {
		config.JitterFraction = 0.1
	}
	if config.RetryableFunc == nil {
		config.RetryableFunc = defaultRetryableFunc
	}
}

// computeBackoff returns the backoff duration for the given attempt
// (0-indexed): min(InitialBackoff * BackoffFactor^attempt, MaxBackoff) + jitter.
func computeBackoff(config RetryConfig, attempt int) time.Duration {
	base := float64(config.InitialBackoff) * math.Pow(config.BackoffFactor, float64(attempt))
	if base > float64(config.MaxBackoff) {
		base = float64(config.MaxBackoff)
	}

	jitter := base * config.JitterFraction * rand.Float64() //nolint:gosec // non-cryptographic jitter is intentional
	return time.Duration(base + jitter)
}

// Retry returns a middleware that retries failed oracle calls according to
// config. Zero-valued fields are replaced with safe defaults (see
// [RetryConfig]). On exhaustion the returned error wraps both
// [ErrRetryExhausted] and the last provider error.
func Retry(config RetryConfig) Middleware {
	applyRetryDefaults(&config)

	return func(next ai.CompleteFunc) ai.CompleteFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			var lastErr error

			for attempt := 0; attempt <= config.MaxRetries; attempt++ {
				if attempt > 0 {
					// Respect context cancellation between retries.
					backoff := computeBackoff(config, attempt-1)
					select {
					case <-ctx.Done():
						return nil, ctx.Err()
					case <-time.After(backoff):
					}
				}

				response, err := next(ctx, request)
				if err == nil {
					return response, nil
				}

				lastErr = err

				if !config.RetryableFunc(err) {
					return nil, err
				}
			}

			return nil, fmt.Errorf("%w after %d retries: %w", ErrRetryExhausted, config.MaxRetries, lastErr)
		}
	}
}
