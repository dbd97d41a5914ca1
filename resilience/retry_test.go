package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(attempts int) *RetryConfig {
	return &RetryConfig{
		MaxAttempts:     attempts,
		InitialDelay:    time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		Multiplier:      2.0,
		RandomizeFactor: 0,
		RetryIf:         IsRetryable,
	}
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := RetryWithConfig(context.Background(), fastConfig(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	last := errors.New("still broken")
	err := RetryWithConfig(context.Background(), fastConfig(3), func() error {
		calls++
		return last
	})
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
	var maxErr ErrMaxRetriesExceeded
	if !errors.As(err, &maxErr) {
		t.Fatalf("Expected ErrMaxRetriesExceeded, got %v", err)
	}
	if maxErr.Attempts != 3 || !errors.Is(err, last) {
		t.Errorf("Wrapped error wrong: %+v", maxErr)
	}
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := RetryWithConfig(context.Background(), fastConfig(5), func() error {
		calls++
		return context.Canceled
	})
	if calls != 1 {
		t.Errorf("Expected a single call, got %d", calls)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithConfig(ctx, fastConfig(3), func() error {
		t.Error("fn must not run after cancellation")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(context.Canceled) || IsRetryable(context.DeadlineExceeded) {
		t.Error("Context errors must not be retried")
	}
	if IsRetryable(ErrCircuitOpen) {
		t.Error("An open circuit must not be retried")
	}
	if !IsRetryable(errors.New("transient")) {
		t.Error("Plain errors should be retried")
	}
}
