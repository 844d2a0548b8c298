// Package config manages the server configuration stored in server_config.json.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the name of the configuration file inside the data directory.
const FileName = "server_config.json"

// ServerConfig stores all server-wide configuration.
// Loaded from server_config.json, created with defaults if missing.
type ServerConfig struct {
	// Quotas defines server-wide resource limits.
	Quotas ServerQuotas `json:"quotas"`

	// RateLimits defines rate limiting configuration.
	RateLimits RateLimits `json:"rate_limits"`
}

// RateLimits defines rate limiting configuration (requests per minute per
// client IP).
type RateLimits struct {
	// ReadRatePerMin limits GET requests. 0 means unlimited.
	ReadRatePerMin int `json:"read_rate_per_min"`

	// WriteRatePerMin limits POST, PUT and DELETE requests. 0 means unlimited.
	WriteRatePerMin int `json:"write_rate_per_min"`
}

// Validate checks that rate limit values are non-negative.
func (r *RateLimits) Validate() error {
	if r.ReadRatePerMin < 0 {
		return errors.New("read_rate_per_min must be non-negative")
	}
	if r.WriteRatePerMin < 0 {
		return errors.New("write_rate_per_min must be non-negative")
	}
	return nil
}

// DefaultRateLimits returns the default rate limits.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		ReadRatePerMin:  6000,
		WriteRatePerMin: 60,
	}
}

// ServerQuotas defines server-wide resource limits.
type ServerQuotas struct {
	// MaxRequestBodyBytes limits the size of any single HTTP request body.
	MaxRequestBodyBytes int64 `json:"max_request_body_bytes"`

	// MaxEgressBandwidthBps limits screenshot egress in bytes per second.
	// 0 means unlimited.
	MaxEgressBandwidthBps int64 `json:"max_egress_bandwidth_bps"`
}

// Validate checks that all quota values are non-negative.
func (q *ServerQuotas) Validate() error {
	if q.MaxRequestBodyBytes < 0 {
		return errors.New("max_request_body_bytes must be non-negative")
	}
	if q.MaxEgressBandwidthBps < 0 {
		return errors.New("max_egress_bandwidth_bps must be non-negative")
	}
	return nil
}

// DefaultServerQuotas returns the default server-wide quotas.
func DefaultServerQuotas() ServerQuotas {
	return ServerQuotas{
		MaxRequestBodyBytes:   64 * 1024, // 64 KiB
		MaxEgressBandwidthBps: 0,
	}
}

// Default returns a configuration with every default applied.
func Default() *ServerConfig {
	return &ServerConfig{Quotas: DefaultServerQuotas(), RateLimits: DefaultRateLimits()}
}

// Validate checks that the configuration is valid.
func (c *ServerConfig) Validate() error {
	if err := c.Quotas.Validate(); err != nil {
		return fmt.Errorf("quotas: %w", err)
	}
	if err := c.RateLimits.Validate(); err != nil {
		return fmt.Errorf("rate_limits: %w", err)
	}
	return nil
}

// Load loads configuration from dataDir/server_config.json.
// Creates the file with defaults if it doesn't exist.
func Load(dataDir string) (*ServerConfig, error) {
	path := filepath.Join(dataDir, FileName)
	cfg := Default()
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is constructed from dataDir, not user input
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
		}
		if err := cfg.Save(dataDir); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// Save saves configuration to dataDir/server_config.json.
func (c *ServerConfig) Save(dataDir string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(dataDir, FileName), data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return nil
}
