package worker

import (
	"context"
	"testing"
)

func TestKeyLimiter_New(t *testing.T) {
	if l := NewKeyLimiter(10, 5); l.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", l.defaultBurst)
	}
	if l := NewKeyLimiter(10, -1); l.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l.defaultBurst)
	}
}

func TestKeyLimiter_Wait(t *testing.T) {
	limiter := NewKeyLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "10.0.0.1"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "10.0.0.2"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestKeyLimiter_Exhaustion(t *testing.T) {
	limiter := NewKeyLimiter(1, 1)

	if !limiter.Allow("10.0.0.1") {
		t.Error("first request should pass")
	}
	if limiter.Allow("10.0.0.1") {
		t.Error("expected allow to fail once the bucket is drained")
	}

	// Keys have independent buckets.
	if !limiter.Allow("10.0.0.2") {
		t.Error("expected allow for a fresh key")
	}
}

func TestKeyLimiter_SetRate(t *testing.T) {
	limiter := NewKeyLimiter(10, 10)
	limiter.SetRate("throttled", 0.1, 1)

	if !limiter.Allow("throttled") {
		t.Error("first request should pass")
	}
	if limiter.Allow("throttled") {
		t.Error("second request should fail")
	}
	if !limiter.Allow("anyone-else") {
		t.Error("other keys keep the default rate")
	}
}
