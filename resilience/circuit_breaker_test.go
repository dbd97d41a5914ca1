package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)
	fail := func() error { return errors.New("boom") }

	if err := cb.Execute(fail); err == nil {
		t.Fatal("Expected failure to propagate")
	}
	if cb.GetState() != StateClosed {
		t.Errorf("Expected closed after one failure, got %v", cb.GetState())
	}

	cb.Execute(fail)
	if cb.GetState() != StateOpen {
		t.Fatalf("Expected open after two failures, got %v", cb.GetState())
	}

	if err := cb.Execute(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)
	cb.Execute(func() error { return errors.New("boom") })
	if cb.GetState() != StateOpen {
		t.Fatalf("Expected open, got %v", cb.GetState())
	}

	time.Sleep(15 * time.Millisecond)

	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("Expected probe to run after reset timeout, got %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Errorf("Expected closed after successful probe, got %v", cb.GetState())
	}
	if cb.GetFailures() != 0 {
		t.Errorf("Expected failure count reset, got %d", cb.GetFailures())
	}
}

func TestCircuitBreakerReopensOnFailedProbe(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)
	cb.Execute(func() error { return errors.New("boom") })

	time.Sleep(15 * time.Millisecond)

	cb.Execute(func() error { return errors.New("still down") })
	if cb.GetState() != StateOpen {
		t.Errorf("Expected open after failed probe, got %v", cb.GetState())
	}
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(3, time.Minute)
	cb.Execute(func() error { return errors.New("boom") })
	cb.Execute(func() error { return errors.New("boom") })
	cb.Execute(func() error { return nil })
	if cb.GetFailures() != 0 {
		t.Errorf("Expected failures reset on success, got %d", cb.GetFailures())
	}
	if cb.GetState() != StateClosed {
		t.Errorf("Expected closed, got %v", cb.GetState())
	}
}

func TestCircuitBreakerManualReset(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Hour)
	cb.Execute(func() error { return errors.New("boom") })
	if cb.GetState() != StateOpen {
		t.Fatalf("Expected open, got %v", cb.GetState())
	}
	cb.Reset()
	if cb.GetState() != StateClosed || cb.GetFailures() != 0 {
		t.Errorf("Expected clean closed state after Reset, got %v / %d failures", cb.GetState(), cb.GetFailures())
	}
}
