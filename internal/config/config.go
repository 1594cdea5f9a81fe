package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything tunable about the tracker. All fields have
// working defaults so a missing config file is not an error.
type Config struct {
	DataDir string `yaml:"data_dir"`

	Storage StorageConfig `yaml:"storage"`
	Timer   TimerConfig   `yaml:"timer"`
}

type StorageConfig struct {
	// Backend selects "file" (JSON snapshot) or "sqlite".
	Backend string `yaml:"backend"`

	DebounceMs   int `yaml:"debounce_ms"`
	HeartbeatSec int `yaml:"heartbeat_sec"`
	RolloverSec  int `yaml:"rollover_sec"`

	// Trim limits used by the quota-exhaustion retry.
	MaxSessions int `yaml:"max_sessions"`
	MaxLogged   int `yaml:"max_logged"`
}

type TimerConfig struct {
	DefaultRestSeconds int  `yaml:"default_rest_seconds"`
	AutoStart          bool `yaml:"auto_start"`
	Notifications      bool `yaml:"notifications"`
}

func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		DataDir: filepath.Join(home, ".ironlog"),
		Storage: StorageConfig{
			Backend:      "file",
			DebounceMs:   1500,
			HeartbeatSec: 30,
			RolloverSec:  60,
			MaxSessions:  200,
			MaxLogged:    2000,
		},
		Timer: TimerConfig{
			DefaultRestSeconds: 90,
			AutoStart:          true,
			Notifications:      true,
		},
	}
}

// Load reads config from a YAML file, then applies environment
// variable overrides. A missing file yields the defaults. Env vars use
// the prefix IRONLOG_:
//
//	IRONLOG_DATA_DIR, IRONLOG_STORAGE_BACKEND,
//	IRONLOG_STORAGE_DEBOUNCE_MS, IRONLOG_STORAGE_HEARTBEAT_SEC,
//	IRONLOG_TIMER_REST_SEC
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IRONLOG_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("IRONLOG_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("IRONLOG_STORAGE_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Storage.DebounceMs = n
		}
	}
	if v := os.Getenv("IRONLOG_STORAGE_HEARTBEAT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Storage.HeartbeatSec = n
		}
	}
	if v := os.Getenv("IRONLOG_TIMER_REST_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Timer.DefaultRestSeconds = n
		}
	}
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("storage.backend must be \"file\" or \"sqlite\", got %q", c.Storage.Backend)
	}
	if c.Storage.DebounceMs <= 0 {
		return fmt.Errorf("storage.debounce_ms must be positive")
	}
	if c.Storage.HeartbeatSec <= 0 {
		return fmt.Errorf("storage.heartbeat_sec must be positive")
	}
	if c.Timer.DefaultRestSeconds <= 0 {
		return fmt.Errorf("timer.default_rest_seconds must be positive")
	}
	return nil
}

// Debounce returns the autosave debounce as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Storage.DebounceMs) * time.Millisecond
}

// Heartbeat returns the periodic-save interval as a duration.
func (c *Config) Heartbeat() time.Duration {
	return time.Duration(c.Storage.HeartbeatSec) * time.Second
}

// RolloverPoll returns the day-rollover poll interval as a duration.
func (c *Config) RolloverPoll() time.Duration {
	return time.Duration(c.Storage.RolloverSec) * time.Second
}
