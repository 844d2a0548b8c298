package ratelimit

import (
	"testing"
	"time"

	"go.uber.org/goleak"
	"golang.org/x/time/rate"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLimiter_Allow(t *testing.T) {
	l := NewLimiter(5, time.Minute, 5)
	defer l.Close()

	for i := range 5 {
		result := l.Allow("k")
		if !result.Allowed {
			t.Errorf("request %d should be allowed", i+1)
		}
		if result.Limit != 5 {
			t.Errorf("Limit = %d, want 5", result.Limit)
		}
		if result.RetryAfter != 0 {
			t.Errorf("RetryAfter = %v, want 0", result.RetryAfter)
		}
	}

	result := l.Allow("k")
	if result.Allowed {
		t.Fatal("6th request should be rate limited")
	}
	if result.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", result.Remaining)
	}
	if result.RetryAfter < time.Second {
		t.Errorf("RetryAfter = %v, want >= 1s", result.RetryAfter)
	}
	if !result.ResetAt.After(time.Now()) {
		t.Error("ResetAt should be in the future")
	}

	if !l.Allow("other").Allowed {
		t.Error("keys must not share buckets")
	}
	if l.size() != 2 {
		t.Errorf("size() = %d, want 2", l.size())
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	l := NewLimiter(60, time.Minute, 2)
	defer l.Close()

	l.Allow("idle")
	l.Allow("busy")
	l.Allow("busy")

	// Make "idle" look full again and old.
	l.mu.Lock()
	l.buckets["idle"].limiter = rate.NewLimiter(l.rate, l.burst)
	l.mu.Unlock()

	l.cleanup(time.Now().Add(time.Second))
	l.mu.Lock()
	_, idle := l.buckets["idle"]
	_, busy := l.buckets["busy"]
	l.mu.Unlock()
	if idle {
		t.Error("full idle bucket should be dropped")
	}
	if !busy {
		t.Error("drained bucket must be kept")
	}
}

func TestLimiter_CloseStopsGoroutine(t *testing.T) {
	l := newLimiter(10, time.Second, 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	l.Close()
	l.Close()
	goleak.VerifyNone(t)
}
