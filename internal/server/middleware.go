package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hqo/showcase/internal/server/ipgeo"
	"github.com/hqo/showcase/internal/server/reqctx"
	"github.com/hqo/showcase/internal/uistate"
)

// statusRecorder captures the status code and size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// requestMetadata stores the client IP, user agent and country of the request
// in its context.
func requestMetadata(geo *ipgeo.Checker, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := reqctx.FromRequest(r)
		if cc := geo.CountryCode(reqctx.ClientIP(ctx)); cc != "" {
			ctx = reqctx.WithCountryCode(ctx, cc)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessLog logs one line per request once it completes.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		ctx := r.Context()
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		level := slog.LevelInfo
		switch {
		case rec.status >= http.StatusInternalServerError:
			level = slog.LevelError
		case r.URL.Path == "/api/health":
			level = slog.LevelDebug
		}
		slog.Log(ctx, level, "http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes", rec.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
			"ip", reqctx.ClientIP(ctx),
			"ua", reqctx.UserAgent(ctx),
			"country", reqctx.CountryCode(ctx),
		)
	})
}

// withSession installs the UI state session in every request context.
func withSession(s *uistate.Session, next http.Handler) http.Handler {
	if s == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(uistate.WithSession(r.Context(), s)))
	})
}
