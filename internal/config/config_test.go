package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	again, err := Load(dir)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if diff := cmp.Diff(cfg, again); diff != "" {
		t.Errorf("reload mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(`{"rate_limits":{"write_rate_per_min":5}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	want.RateLimits.WriteRatePerMin = 5
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed", `{`, "failed to parse"},
		{"negative read", `{"rate_limits":{"read_rate_per_min":-1}}`, "read_rate_per_min"},
		{"negative write", `{"rate_limits":{"write_rate_per_min":-1}}`, "write_rate_per_min"},
		{"negative body", `{"quotas":{"max_request_body_bytes":-1}}`, "max_request_body_bytes"},
		{"negative egress", `{"quotas":{"max_egress_bandwidth_bps":-1}}`, "max_egress_bandwidth_bps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := Load(dir)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Quotas.MaxRequestBodyBytes = -5
	if err := cfg.Save(t.TempDir()); err == nil {
		t.Error("Save() succeeded with invalid config")
	}
}
