package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SWITCHEROO_LOG_LEVEL", "")
	t.Setenv("SWITCHEROO_LOG_FILE", "")
	t.Setenv("SWITCHEROO_PROBE_LIMIT", "")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.ProbeLimit != 100 || cfg.IconSize != 16 || cfg.MessagingTimeout != 0.5 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if got := strings.Join(cfg.AcceptedSubroles, ","); got != "AXStandardWindow,AXDialog" {
		t.Errorf("AcceptedSubroles = %q", got)
	}
	if cfg.CacheTTL() != 500*time.Millisecond {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL())
	}
}

func TestLoadFromPath_OverridesDefaults(t *testing.T) {
	t.Setenv("SWITCHEROO_LOG_LEVEL", "")
	t.Setenv("SWITCHEROO_LOG_FILE", "")
	t.Setenv("SWITCHEROO_PROBE_LIMIT", "")

	path := writeConfig(t, `
probe_limit: 250
icon_size: 32
accepted_subroles: [AXStandardWindow]
log_level: debug
cache_ttl_ms: 0
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.ProbeLimit != 250 || cfg.IconSize != 32 || cfg.LogLevel != "debug" || cfg.CacheTTLMillis != 0 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.AcceptedSubroles) != 1 {
		t.Errorf("AcceptedSubroles = %v", cfg.AcceptedSubroles)
	}
	// Unset keys keep their defaults.
	if cfg.MessagingTimeout != 0.5 {
		t.Errorf("MessagingTimeout = %v", cfg.MessagingTimeout)
	}
	opts := cfg.ResolveOptions()
	if opts.Limit != 250 || len(opts.Subroles) != 1 {
		t.Errorf("ResolveOptions = %+v", opts)
	}
}

func TestLoadFromPath_Errors(t *testing.T) {
	t.Setenv("SWITCHEROO_LOG_LEVEL", "")
	t.Setenv("SWITCHEROO_PROBE_LIMIT", "")

	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "probe_limt: 5\n", "failed to parse"},
		{"bad yaml", "probe_limit: [\n", "failed to parse"},
		{"zero probe limit", "probe_limit: 0\n", "probe_limit"},
		{"huge icon", "icon_size: 4096\n", "icon_size"},
		{"empty subroles", "accepted_subroles: []\n", "accepted_subroles"},
		{"blank subrole", "accepted_subroles: [\"  \"]\n", "empty entries"},
		{"negative timeout", "messaging_timeout: -1\n", "messaging_timeout"},
		{"bad level", "log_level: loud\n", "log_level"},
		{"negative ttl", "cache_ttl_ms: -5\n", "cache_ttl_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromPath(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SWITCHEROO_LOG_LEVEL", "warn")
	t.Setenv("SWITCHEROO_LOG_FILE", "/tmp/sw.log")
	t.Setenv("SWITCHEROO_PROBE_LIMIT", "12")

	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.LogLevel != "warn" || cfg.LogFile != "/tmp/sw.log" || cfg.ProbeLimit != 12 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	t.Setenv("SWITCHEROO_PROBE_LIMIT", "-3")
	cfg = Default()
	LoadFromEnv(cfg)
	if cfg.ProbeLimit != 100 {
		t.Errorf("malformed override applied: %d", cfg.ProbeLimit)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/someone")
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/home/someone/.config/switcheroo/config.yaml" {
		t.Errorf("path = %q", path)
	}
}
