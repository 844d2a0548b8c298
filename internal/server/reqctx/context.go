// Package reqctx carries per-request metadata through a context.
package reqctx

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// GetClientIP extracts the client IP from an HTTP request, checking
// X-Forwarded-For and X-Real-IP headers for proxied requests.
func GetClientIP(r *http.Request) string {
	// The leftmost X-Forwarded-For entry is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return strings.Trim(r.RemoteAddr, "[]")
}

type contextKey int

const (
	keyClientIP contextKey = iota
	keyUserAgent
	keyCountryCode
)

// WithClientIP adds the client IP to the context.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, keyClientIP, ip)
}

// ClientIP extracts the client IP from the context.
func ClientIP(ctx context.Context) string {
	v, _ := ctx.Value(keyClientIP).(string)
	return v
}

// WithUserAgent adds the User-Agent to the context.
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, keyUserAgent, ua)
}

// UserAgent extracts the User-Agent from the context.
func UserAgent(ctx context.Context) string {
	v, _ := ctx.Value(keyUserAgent).(string)
	return v
}

// WithCountryCode adds the country code to the context.
func WithCountryCode(ctx context.Context, cc string) context.Context {
	return context.WithValue(ctx, keyCountryCode, cc)
}

// CountryCode extracts the country code from the context.
func CountryCode(ctx context.Context) string {
	v, _ := ctx.Value(keyCountryCode).(string)
	return v
}

// FromRequest returns r's context with the client IP and User-Agent attached.
func FromRequest(r *http.Request) context.Context {
	ctx := WithClientIP(r.Context(), GetClientIP(r))
	return WithUserAgent(ctx, r.Header.Get("User-Agent"))
}
