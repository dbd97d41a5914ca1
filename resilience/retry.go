// Package resilience wraps outbound calls (LLM, weather upstream) with
// bounded retries and a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// RetryConfig defines retry behavior configuration
type RetryConfig struct {
	MaxAttempts     int              // Maximum number of attempts
	InitialDelay    time.Duration    // Initial delay between retries
	MaxDelay        time.Duration    // Maximum delay between retries
	Multiplier      float64          // Multiplier for exponential backoff
	RandomizeFactor float64          // Randomization factor for jitter (0-1)
	RetryIf         func(error) bool // Determines if an error is retryable
}

// DefaultRetryConfig returns a default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:     3,
		InitialDelay:    100 * time.Millisecond,
		MaxDelay:        10 * time.Second,
		Multiplier:      2.0,
		RandomizeFactor: 0.1,
		RetryIf:         IsRetryable,
	}
}

// RetryWithConfig executes a function with retry logic based on config
func RetryWithConfig(ctx context.Context, config *RetryConfig, fn func() error) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			if config.RetryIf != nil && !config.RetryIf(err) {
				return err
			}
		}

		// Don't delay after the last attempt
		if attempt < config.MaxAttempts-1 {
			select {
			case <-time.After(applyJitter(delay, config.RandomizeFactor)):
			case <-ctx.Done():
				return ctx.Err()
			}

			delay = time.Duration(float64(delay) * config.Multiplier)
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
		}
	}

	return ErrMaxRetriesExceeded{
		Attempts: config.MaxAttempts,
		LastErr:  lastErr,
	}
}

// Retry executes a function with default retry logic
func Retry(ctx context.Context, fn func() error) error {
	return RetryWithConfig(ctx, DefaultRetryConfig(), fn)
}

// applyJitter adds randomization to the delay
func applyJitter(delay time.Duration, factor float64) time.Duration {
	if factor <= 0 {
		return delay
	}
	jitter := float64(delay) * factor
	min := float64(delay) - jitter
	max := float64(delay) + jitter
	return time.Duration(min + rand.Float64()*(max-min))
}

// IsRetryable determines if an error should trigger a retry
func IsRetryable(err error) bool {
	// Don't retry on context cancellation, and don't hammer an open circuit
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrCircuitOpen) {
		return false
	}
	return true
}

// ErrMaxRetriesExceeded is returned when max retries are exceeded
type ErrMaxRetriesExceeded struct {
	Attempts int
	LastErr  error
}

func (e ErrMaxRetriesExceeded) Error() string {
	if e.LastErr != nil {
		return "max retries exceeded: " + e.LastErr.Error()
	}
	return "max retries exceeded"
}

func (e ErrMaxRetriesExceeded) Unwrap() error {
	return e.LastErr
}
