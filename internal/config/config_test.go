package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, 1500, cfg.Storage.DebounceMs)
	assert.Equal(t, 90, cfg.Timer.DefaultRestSeconds)
	assert.True(t, cfg.Timer.AutoStart)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data_dir: /tmp/ironlog-test
storage:
  backend: sqlite
  debounce_ms: 500
  heartbeat_sec: 10
timer:
  default_rest_seconds: 120
  auto_start: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ironlog-test", cfg.DataDir)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 500, cfg.Storage.DebounceMs)
	assert.Equal(t, 120, cfg.Timer.DefaultRestSeconds)
	assert.False(t, cfg.Timer.AutoStart)

	// Unset fields keep their defaults.
	assert.Equal(t, 60, cfg.Storage.RolloverSec)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [broken"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("IRONLOG_DATA_DIR", "/tmp/override")
	t.Setenv("IRONLOG_STORAGE_BACKEND", "sqlite")
	t.Setenv("IRONLOG_STORAGE_DEBOUNCE_MS", "250")
	t.Setenv("IRONLOG_TIMER_REST_SEC", "60")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override", cfg.DataDir)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 250, cfg.Storage.DebounceMs)
	assert.Equal(t, 60, cfg.Timer.DefaultRestSeconds)
}

func TestValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: redis\n"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")

	require.NoError(t, os.WriteFile(path, []byte("timer:\n  default_rest_seconds: -5\n"), 0600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1500*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 30*time.Second, cfg.Heartbeat())
	assert.Equal(t, time.Minute, cfg.RolloverPoll())
}
