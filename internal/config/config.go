package config

import "time"

// Config represents the complete application configuration. Values come from
// built-in defaults, an optional YAML file and MCNAME_* environment variables,
// in increasing order of precedence.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`

	// Workers bounds the concurrent strategy's pool; 0 means one per CPU.
	Workers int `mapstructure:"workers"`
}

// APIConfig contains profile API endpoints and transport settings.
type APIConfig struct {
	LookupURL string `mapstructure:"lookup_url"`
	BatchURL  string `mapstructure:"batch_url"`
	UserAgent string `mapstructure:"user_agent"`

	// RequestTimeout limits a single HTTP request; 0 disables the limit.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// BatchConfig contains chunking, retry and pacing settings for batch lookups.
type BatchConfig struct {
	Size       int           `mapstructure:"size"`
	MaxRetries int           `mapstructure:"max_retries"`
	BaseWait   time.Duration `mapstructure:"base_wait"`
	MaxJitter  time.Duration `mapstructure:"max_jitter"`
	Delay      time.Duration `mapstructure:"delay"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	// Addr is the listen address for /metrics during a run; empty disables it.
	Addr string `mapstructure:"addr"`
}
