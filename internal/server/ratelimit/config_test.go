package ratelimit

import (
	"testing"

	"github.com/hqo/showcase/internal/config"
)

func TestConfig_Match(t *testing.T) {
	cfg := NewConfig(config.DefaultRateLimits())
	defer cfg.Close()

	tests := []struct {
		method   string
		path     string
		wantTier string
	}{
		{"GET", "/api/health", ""},
		{"POST", "/api/health", ""},
		{"GET", "/api/prototypes", "read"},
		{"HEAD", "/api/prototypes", "read"},
		{"POST", "/api/ideas", "write"},
		{"PUT", "/api/ui-state/mode", "write"},
		{"DELETE", "/api/ideas/x", "write"},
		{"OPTIONS", "/api/ideas", ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			tier := cfg.Match(tt.method, tt.path)
			got := ""
			if tier != nil {
				got = tier.Name
			}
			if got != tt.wantTier {
				t.Errorf("Match() = %q, want %q", got, tt.wantTier)
			}
		})
	}
}

func TestConfig_Unlimited(t *testing.T) {
	cfg := NewConfig(config.RateLimits{ReadRatePerMin: 0, WriteRatePerMin: 10})
	defer cfg.Close()
	if cfg.Match("GET", "/api/prototypes") != nil {
		t.Error("0 requests per minute must disable the read tier")
	}
	if tier := cfg.Match("POST", "/api/ideas"); tier == nil || tier.Limiter.burst != 1 {
		t.Errorf("write tier = %+v, want burst 1", tier)
	}
	var nilCfg *Config
	if nilCfg.Match("GET", "/") != nil {
		t.Error("nil config must not limit")
	}
}
