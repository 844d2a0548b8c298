// Package bandwidth throttles egress traffic to a number of bytes per second.
package bandwidth

import (
	"context"
	"io"
	"math"

	"golang.org/x/time/rate"
)

// Limiter is a shared egress budget. A limit of 0 or less means unlimited.
// The zero value is not usable; use NewLimiter.
type Limiter struct {
	lim *rate.Limiter
}

// NewLimiter returns a limiter allowing maxBytesPerSecond, with a one second
// burst.
func NewLimiter(maxBytesPerSecond int64) *Limiter {
	if maxBytesPerSecond <= 0 {
		return &Limiter{lim: rate.NewLimiter(rate.Inf, 0)}
	}
	return &Limiter{lim: rate.NewLimiter(rate.Limit(maxBytesPerSecond), burst(maxBytesPerSecond))}
}

func burst(bps int64) int {
	return int(min(bps, math.MaxInt32))
}

// Unlimited reports whether the limiter lets everything through.
func (l *Limiter) Unlimited() bool {
	return l.lim.Limit() == rate.Inf
}

// Wait blocks until n bytes may be sent or ctx is done.
func (l *Limiter) Wait(ctx context.Context, n int) error {
	if l.Unlimited() {
		return nil
	}
	for n > 0 {
		chunk := min(n, l.lim.Burst())
		if err := l.lim.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Writer returns w throttled by l.
func (l *Limiter) Writer(ctx context.Context, w io.Writer) io.Writer {
	if l == nil || l.Unlimited() {
		return w
	}
	return &writer{ctx: ctx, l: l, w: w}
}

type writer struct {
	ctx context.Context
	l   *Limiter
	w   io.Writer
}

func (w *writer) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		chunk := p[:min(len(p), w.l.lim.Burst())]
		if err := w.l.Wait(w.ctx, len(chunk)); err != nil {
			return written, err
		}
		n, err := w.w.Write(chunk)
		written += n
		if err != nil {
			return written, err
		}
		p = p[n:]
	}
	return written, nil
}
