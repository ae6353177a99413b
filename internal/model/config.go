package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Startup configuration errors. Either one is fatal.
var (
	ErrMissingAPIKey         = errors.New("api key is not configured (set HIPPO_API_KEY)")
	ErrMissingPublishableKey = errors.New("identity publishable key is not configured (set HIPPO_IDENTITY_PUBLISHABLE_KEY)")
)

// APIConfig holds settings for the remote Hippo Exchange API.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Key is the static API key sent with header-key authenticated calls.
	// It is normally supplied through the environment, not the file.
	Key string `mapstructure:"key" yaml:"key,omitempty"`

	TimeoutSec      int     `mapstructure:"timeout_sec" yaml:"timeout_sec"`
	RateLimitPerSec float64 `mapstructure:"rate_limit_per_sec" yaml:"rate_limit_per_sec"`
	RateBurst       int     `mapstructure:"rate_burst" yaml:"rate_burst"`
	CacheTTLSec     int     `mapstructure:"cache_ttl_sec" yaml:"cache_ttl_sec"`

	// RefreshSec is how often open views reload. Zero disables it.
	RefreshSec int `mapstructure:"refresh_sec" yaml:"refresh_sec"`
}

// IdentityConfig holds settings for the external identity provider.
type IdentityConfig struct {
	PublishableKey string `mapstructure:"publishable_key" yaml:"publishable_key,omitempty"`
}

// StorageConfig holds the location of the local preferences database.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// LogConfig controls where and how verbosely the client logs.
type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API      APIConfig      `mapstructure:"api" yaml:"api"`
	Identity IdentityConfig `mapstructure:"identity" yaml:"identity"`
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// Validate reports the first missing required setting.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.API.Key) == "" {
		return ErrMissingAPIKey
	}
	if strings.TrimSpace(c.Identity.PublishableKey) == "" {
		return ErrMissingPublishableKey
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api base url is not configured")
	}
	return nil
}

// ConfigDir returns ~/.config/hippo, falling back to the working directory.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "hippo")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/hippo/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		API: APIConfig{
			BaseURL:         "https://api.hippoexchange.com",
			TimeoutSec:      30,
			RateLimitPerSec: 10,
			RateBurst:       5,
			CacheTTLSec:     300,
			RefreshSec:      120,
		},
		Storage: StorageConfig{DBPath: filepath.Join(dir, "hippo.db")},
		Log:     LogConfig{Path: filepath.Join(dir, "hippo.log"), Level: "info"},
		Display: DisplayConfig{Theme: "default"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file is not an error: defaults and HIPPO_* environment
// variables still apply.
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("HIPPO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.timeout_sec", def.API.TimeoutSec)
	v.SetDefault("api.rate_limit_per_sec", def.API.RateLimitPerSec)
	v.SetDefault("api.rate_burst", def.API.RateBurst)
	v.SetDefault("api.cache_ttl_sec", def.API.CacheTTLSec)
	v.SetDefault("api.refresh_sec", def.API.RefreshSec)
	v.SetDefault("storage.db_path", def.Storage.DBPath)
	v.SetDefault("log.path", def.Log.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("display.theme", def.Display.Theme)

	// Keys without defaults must be bound explicitly for AutomaticEnv to
	// reach them during Unmarshal.
	for _, key := range []string{"api.key", "identity.publishable_key"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := def
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.API.TimeoutSec <= 0 {
		cfg.API.TimeoutSec = def.API.TimeoutSec
	}
	if cfg.API.RateBurst <= 0 {
		cfg.API.RateBurst = 1
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed. Secrets are never written.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	api := cfg.API
	api.Key = ""
	v.Set("api", api)
	v.Set("storage", cfg.Storage)
	v.Set("log", cfg.Log)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
