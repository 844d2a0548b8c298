// Package ratelimit implements per-client token bucket rate limiting for HTTP
// handlers.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// staleAfter is how long an idle, full bucket is kept.
const staleAfter = 10 * time.Minute

// Result contains the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Limit      int           // requests per window
	Remaining  int           // requests left in current window
	ResetAt    time.Time     // when the bucket will be full again
	RetryAfter time.Duration // 0 when allowed
}

// Limiter keeps one token bucket per key.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
	window  time.Duration
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter returns a limiter allowing requests per window for each key,
// with burst capacity. Close must be called to stop its cleanup goroutine.
func NewLimiter(requests int, window time.Duration, burst int) *Limiter {
	return newLimiter(requests, window, burst, staleAfter)
}

func newLimiter(requests int, window time.Duration, burst int, cleanupEvery time.Duration) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		rate:    rate.Limit(float64(requests) / window.Seconds()),
		burst:   burst,
		window:  window,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go l.cleanupLoop(cleanupEvery)
	return l
}

// Allow consumes one token for key if available.
func (l *Limiter) Allow(key string) Result {
	now := time.Now()
	l.mu.Lock()
	b := l.buckets[key]
	if b == nil {
		b = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	r := b.limiter.ReserveN(now, 1)
	allowed := r.OK() && r.DelayFrom(now) == 0
	if !allowed && r.OK() {
		r.CancelAt(now)
	}

	tokens := b.limiter.TokensAt(now)
	res := Result{
		Allowed:   allowed,
		Limit:     int(math.Round(float64(l.rate) * l.window.Seconds())),
		Remaining: max(int(tokens), 0),
		ResetAt:   now.Add(time.Duration((float64(l.burst) - tokens) / float64(l.rate) * float64(time.Second))),
	}
	if !allowed {
		// At least one second so Retry-After is never 0.
		res.RetryAfter = max(time.Duration(float64(time.Second)/float64(l.rate)), time.Second)
	}
	return res
}

// size returns the number of tracked keys.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) cleanupLoop(every time.Duration) {
	defer close(l.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			l.cleanup(now.Add(-staleAfter))
		case <-l.stop:
			return
		}
	}
}

// cleanup drops full buckets not seen since before.
func (l *Limiter) cleanup(before time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(before) && b.limiter.Tokens() >= float64(l.burst) {
			delete(l.buckets, key)
		}
	}
}

// Close stops the cleanup goroutine and waits for it to exit. It is safe to
// call more than once.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.stop) })
	<-l.done
}
