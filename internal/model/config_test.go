package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.hippoexchange.com", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSec)
	assert.Equal(t, 300, cfg.API.CacheTTLSec)
	assert.Equal(t, 120, cfg.API.RefreshSec)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://staging.example.com/
  rate_limit_per_sec: 2
log:
  level: debug
`), 0o600))

	t.Setenv("HIPPO_API_KEY", "k-123")
	t.Setenv("HIPPO_IDENTITY_PUBLISHABLE_KEY", "pk_test")
	t.Setenv("HIPPO_STORAGE_DB_PATH", "/tmp/h.db")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com", cfg.API.BaseURL)
	assert.Equal(t, 2.0, cfg.API.RateLimitPerSec)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "k-123", cfg.API.Key)
	assert.Equal(t, "pk_test", cfg.Identity.PublishableKey)
	assert.Equal(t, "/tmp/h.db", cfg.Storage.DBPath)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := AppConfig{API: APIConfig{BaseURL: "https://x", Key: "k"}}
	assert.ErrorIs(t, cfg.Validate(), ErrMissingPublishableKey)

	cfg.Identity.PublishableKey = "pk"
	assert.NoError(t, cfg.Validate())
}

func TestSaveConfig_OmitsSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := defaultAppConfig()
	cfg.API.Key = "secret"
	cfg.Identity.PublishableKey = "pk_secret"
	cfg.Display.Theme = "dark"

	require.NoError(t, SaveConfig(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", loaded.Display.Theme)
	assert.Equal(t, cfg.API.BaseURL, loaded.API.BaseURL)
}
