// Package config loads switcheroo settings from a YAML file, with
// environment overrides applied on top.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/switcheroo/internal/logger"
	"github.com/mj1618/switcheroo/internal/switcher"
)

// Config holds all switcheroo configuration.
type Config struct {
	// ProbeLimit is the number of candidate accessibility indices probed per process.
	ProbeLimit int `yaml:"probe_limit"`

	// IconSize is the edge length, in points, icons are rasterized at.
	IconSize int `yaml:"icon_size"`

	// AcceptedSubroles lists the subroles a probed element must carry to
	// count as a window.
	AcceptedSubroles []string `yaml:"accepted_subroles"`

	// MessagingTimeout bounds every accessibility call, in seconds.
	MessagingTimeout float64 `yaml:"messaging_timeout"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// CacheTTLMillis throttles refreshes issued by the MCP server.
	CacheTTLMillis int `yaml:"cache_ttl_ms"`
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		ProbeLimit:       switcher.DefaultProbeLimit,
		IconSize:         switcher.DefaultIconSize,
		AcceptedSubroles: append([]string(nil), switcher.DefaultSubroles...),
		MessagingTimeout: 0.5,
		LogLevel:         "info",
		CacheTTLMillis:   500,
	}
}

// CacheTTL returns the server refresh throttle as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMillis) * time.Millisecond
}

// ResolveOptions converts the probing settings for the switcher engine.
func (c *Config) ResolveOptions() switcher.ResolveOptions {
	return switcher.ResolveOptions{
		Limit:    c.ProbeLimit,
		Subroles: append([]string(nil), c.AcceptedSubroles...),
	}
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.ProbeLimit <= 0 {
		return errors.Errorf("probe_limit must be positive, got %d", c.ProbeLimit)
	}
	if c.IconSize <= 0 || c.IconSize > 1024 {
		return errors.Errorf("icon_size must be between 1 and 1024, got %d", c.IconSize)
	}
	if len(c.AcceptedSubroles) == 0 {
		return errors.New("accepted_subroles must not be empty")
	}
	for _, s := range c.AcceptedSubroles {
		if strings.TrimSpace(s) == "" {
			return errors.New("accepted_subroles must not contain empty entries")
		}
	}
	if c.MessagingTimeout < 0 {
		return errors.Errorf("messaging_timeout must not be negative, got %g", c.MessagingTimeout)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	if c.CacheTTLMillis < 0 {
		return errors.Errorf("cache_ttl_ms must not be negative, got %d", c.CacheTTLMillis)
	}
	return nil
}

// DefaultConfigPath returns ~/.config/switcheroo/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(homeDir, ".config", "switcheroo", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration at path. A missing file yields the
// defaults; unknown keys and invalid values are errors.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	case len(bytes.TrimSpace(data)) > 0:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}

	LoadFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// LoadFromEnv applies SWITCHEROO_* environment overrides. Malformed values
// are ignored.
func LoadFromEnv(cfg *Config) {
	if level := os.Getenv("SWITCHEROO_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if file := os.Getenv("SWITCHEROO_LOG_FILE"); file != "" {
		cfg.LogFile = file
	}
	if limit := os.Getenv("SWITCHEROO_PROBE_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			cfg.ProbeLimit = n
		}
	}
}
