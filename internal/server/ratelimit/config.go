// Defines the read and write tiers and how requests map to them.

package ratelimit

import (
	"net/http"
	"time"

	"github.com/hqo/showcase/internal/config"
)

// Tier is a named limiter.
type Tier struct {
	Name    string
	Limiter *Limiter
}

// Config holds the limiters of every tier. A nil tier is unlimited.
type Config struct {
	Read  *Tier
	Write *Tier
}

// NewConfig builds the tiers from rate limits expressed per minute. Reads get a
// burst of a sixth of their rate and writes a burst of a sixth of theirs, with
// at least one request.
func NewConfig(rl config.RateLimits) *Config {
	return &Config{
		Read:  newTier("read", rl.ReadRatePerMin),
		Write: newTier("write", rl.WriteRatePerMin),
	}
}

func newTier(name string, perMin int) *Tier {
	if perMin <= 0 {
		return nil
	}
	return &Tier{Name: name, Limiter: NewLimiter(perMin, time.Minute, max(perMin/6, 1))}
}

// Match returns the tier for a request, or nil when it must not be limited.
func (c *Config) Match(method, path string) *Tier {
	if c == nil || path == "/api/health" {
		return nil
	}
	switch method {
	case http.MethodGet, http.MethodHead:
		return c.Read
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return c.Write
	}
	return nil
}

// Close stops all limiter cleanup goroutines.
func (c *Config) Close() {
	for _, t := range []*Tier{c.Read, c.Write} {
		if t != nil {
			t.Limiter.Close()
		}
	}
}
