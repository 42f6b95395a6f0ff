// Package config provides centralized configuration management for mcname.
// Configuration is layered with viper: defaults, then an optional YAML file,
// then MCNAME_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is used for the XDG config directory.
	AppName = "mcname"
	// EnvPrefix prefixes every environment override, e.g. MCNAME_BATCH_SIZE.
	EnvPrefix = "MCNAME"
	// MaxBatchRetries bounds batch.max_retries.
	MaxBatchRetries = 10
)

var (
	// appConfig holds the current application configuration
	appConfig *Config
	configMu  sync.RWMutex
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.lookup_url", "https://api.mojang.com/users/profiles/minecraft")
	v.SetDefault("api.batch_url", "https://api.mojang.com/profiles/minecraft")
	v.SetDefault("api.user_agent", AppName)
	v.SetDefault("api.request_timeout", "0s")

	// Batch defaults
	v.SetDefault("batch.size", 10)
	v.SetDefault("batch.max_retries", 5)
	v.SetDefault("batch.base_wait", "1s")
	v.SetDefault("batch.max_jitter", "500ms")
	v.SetDefault("batch.delay", "100ms")

	// Logging defaults
	v.SetDefault("logging.level", "info")

	// Metrics defaults
	v.SetDefault("metrics.addr", "")

	// Worker defaults
	v.SetDefault("workers", 0)
}

// BindEnv makes every key overridable from MCNAME_* environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a validated Config and stores it as the current configuration.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		return nil, errors.New("viper instance is required")
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc()))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setConfig(cfg)
	return cfg, nil
}

// Validate rejects settings the checkers cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.API.LookupURL) == "" {
		errs = append(errs, errors.New("api.lookup_url is required"))
	}
	if strings.TrimSpace(c.API.BatchURL) == "" {
		errs = append(errs, errors.New("api.batch_url is required"))
	}
	if c.API.RequestTimeout < 0 {
		errs = append(errs, errors.New("api.request_timeout must not be negative"))
	}
	if c.Batch.Size < 1 {
		errs = append(errs, errors.New("batch.size must be at least 1"))
	}
	if c.Batch.MaxRetries < 0 || c.Batch.MaxRetries > MaxBatchRetries {
		errs = append(errs, fmt.Errorf("batch.max_retries must be between 0 and %d", MaxBatchRetries))
	}
	if c.Batch.BaseWait < 0 || c.Batch.MaxJitter < 0 || c.Batch.Delay < 0 {
		errs = append(errs, errors.New("batch durations must not be negative"))
	}
	if c.Workers < 0 {
		errs = append(errs, errors.New("workers must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// setConfig updates the current configuration (thread-safe)
func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// DefaultConfigDir returns the XDG-compliant config directory for the app.
func DefaultConfigDir() string {
	return gfconfig.GetAppConfigDir(AppName)
}

// DefaultConfigPath returns the XDG-compliant path to the user config file.
func DefaultConfigPath() string {
	configDir := DefaultConfigDir()
	if strings.TrimSpace(configDir) == "" {
		return ""
	}
	return filepath.Join(configDir, "config.yaml")
}
