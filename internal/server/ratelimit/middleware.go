// Provides response headers and writers for rate limiting.

package ratelimit

import (
	"net/http"
	"strconv"
)

// WriteHeaders writes the X-RateLimit-* headers, and Retry-After when the
// request was refused.
func WriteHeaders(w http.ResponseWriter, result Result) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	if !result.Allowed {
		h.Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
	}
}

// ResponseWriter injects rate limit headers before the status line.
type ResponseWriter struct {
	http.ResponseWriter
	result      Result
	wroteHeader bool
}

// NewResponseWriter wraps w so result's headers are sent with the response.
func NewResponseWriter(w http.ResponseWriter, result Result) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, result: result}
}

// WriteHeader implements http.ResponseWriter.
func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.injectHeaders()
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Write implements http.ResponseWriter.
func (rw *ResponseWriter) Write(b []byte) (int, error) {
	rw.injectHeaders()
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *ResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func (rw *ResponseWriter) injectHeaders() {
	if !rw.wroteHeader {
		WriteHeaders(rw.ResponseWriter, rw.result)
		rw.wroteHeader = true
	}
}

// BuildKey returns the bucket key of a client IP in a tier.
func BuildKey(ip, tierName string) string {
	return "ip:" + ip + ":" + tierName
}
