package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "data/lottery.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 30, cfg.Prediction.RecentWindow)
	assert.Equal(t, int64(0), cfg.Prediction.Seed)
	assert.Equal(t, 30*time.Second, cfg.Sources.Timeout)
	assert.Equal(t, "https://media.fdj.fr/static/csv/loto.csv", cfg.Sources.LotoURL)
	assert.Equal(t, 24*60*60, cfg.JWT.ExpiresIn)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  port: "9090"
  allowed_hosts:
    - "example.org"
storage:
  driver: memory
prediction:
  recent_window: 10
  seed: 42
sources:
  timeout: 5s
sync:
  schedule: "0 0 22 * * *"
  on_startup: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"example.org"}, cfg.Server.AllowedHosts)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 10, cfg.Prediction.RecentWindow)
	assert.Equal(t, int64(42), cfg.Prediction.Seed)
	assert.Equal(t, 5*time.Second, cfg.Sources.Timeout)
	assert.Equal(t, "0 0 22 * * *", cfg.Sync.Schedule)
	assert.True(t, cfg.Sync.OnStartup)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("STORAGE_DRIVER", "mongodb")
	t.Setenv("PREDICTION_RECENT_WINDOW", "15")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "mongodb", cfg.Storage.Driver)
	assert.Equal(t, 15, cfg.Prediction.RecentWindow)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("LOTTERY_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("LOTTERY_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("LOTTERY_TEST_MISSING", "fallback"))
}
