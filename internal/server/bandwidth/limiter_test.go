package bandwidth

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestLimiter(t *testing.T) {
	t.Run("Wait", func(t *testing.T) {
		tests := []struct {
			name        string
			bytesPerSec int64
			first       int
			second      int
			wantErr     bool
		}{
			{"within burst", 1000, 100, 100, false},
			{"exceeds deadline", 1000, 1000, 1000, true},
			{"zero limit means unlimited", 0, 1 << 20, 1 << 20, false},
			{"negative limit means unlimited", -1, 1 << 20, 1 << 20, false},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
				defer cancel()
				l := NewLimiter(tt.bytesPerSec)
				if err := l.Wait(ctx, tt.first); err != nil {
					t.Fatalf("first Wait() error = %v", err)
				}
				err := l.Wait(ctx, tt.second)
				if (err != nil) != tt.wantErr {
					t.Errorf("second Wait() error = %v, wantErr %v", err, tt.wantErr)
				}
			})
		}
	})

}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()
	if w := NewLimiter(0).Writer(ctx, &buf); w != &buf {
		t.Error("unlimited Writer() should return the writer unchanged")
	}
	var nilLimiter *Limiter
	if w := nilLimiter.Writer(ctx, &buf); w != &buf {
		t.Error("nil limiter Writer() should return the writer unchanged")
	}

	// Large enough burst that the copy does not wait.
	w := NewLimiter(1 << 20).Writer(ctx, &buf)
	payload := strings.Repeat("x", 4096)
	n, err := w.Write([]byte(payload))
	if err != nil || n != len(payload) || buf.String() != payload {
		t.Errorf("Write() = %d, %v", n, err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	buf.Reset()
	w = NewLimiter(10).Writer(canceled, &buf)
	if _, err := w.Write([]byte("0123456789abc")); err == nil {
		t.Error("Write() with a canceled context should fail")
	}
}
