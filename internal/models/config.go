package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ProjectConfig is the top-level configuration for the ladle client
type ProjectConfig struct {
	Service     ServiceConfig     `yaml:"service" json:"service"`
	Polling     PollingConfig     `yaml:"polling" json:"polling"`
	Retry       RetryConfig       `yaml:"retry" json:"retry"`
	History     HistoryConfig     `yaml:"history" json:"history"`
	Presets     map[string]string `yaml:"presets" json:"presets"` // calc type -> preset name
	DownloadDir string            `yaml:"download_dir" json:"download_dir"`
	LogLevel    string            `yaml:"log_level" json:"log_level"`
}

// ServiceConfig locates the calculation service
type ServiceConfig struct {
	BaseURL        string `yaml:"base_url" json:"base_url"`
	APIPrefix      string `yaml:"api_prefix" json:"api_prefix"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// PollingConfig controls how a submitted job is awaited.
// MaxWaitSeconds = 0 polls until the job is terminal, however long that takes.
type PollingConfig struct {
	IntervalMs       int `yaml:"interval_ms" json:"interval_ms"`
	SlowAfterSeconds int `yaml:"slow_after_seconds" json:"slow_after_seconds"`
	MaxWaitSeconds   int `yaml:"max_wait_seconds" json:"max_wait_seconds"`
}

// RetryConfig controls retry behavior for idempotent requests
type RetryConfig struct {
	MaxAttempts      int   `yaml:"max_attempts" json:"max_attempts"`
	InitialBackoffMs int64 `yaml:"initial_backoff_ms" json:"initial_backoff_ms"`
	MaxBackoffMs     int64 `yaml:"max_backoff_ms" json:"max_backoff_ms"`
}

// HistoryConfig bounds the job history view
type HistoryConfig struct {
	Limit       int `yaml:"limit" json:"limit"`
	Concurrency int `yaml:"concurrency" json:"concurrency"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Service: ServiceConfig{
			BaseURL:        "http://127.0.0.1:8000",
			APIPrefix:      "/api",
			TimeoutSeconds: 30,
		},
		Polling: PollingConfig{
			IntervalMs:       800,
			SlowAfterSeconds: 120,
			MaxWaitSeconds:   1800,
		},
		Retry: RetryConfig{
			MaxAttempts:      3,
			InitialBackoffMs: 500,
			MaxBackoffMs:     5000,
		},
		History: HistoryConfig{
			Limit:       20,
			Concurrency: 4,
		},
		Presets: map[string]string{
			string(CalcDeoxidation):     "example_deoxidation",
			string(CalcDesulfurization): "example_desulfurization",
		},
		DownloadDir: ".",
		LogLevel:    "info",
	}
}

// Validate checks the configuration for unusable values
func (c *ProjectConfig) Validate() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("service.base_url is required")
	}
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid service.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service.base_url must be http(s), got %q", c.Service.BaseURL)
	}
	if c.Service.APIPrefix != "" && !strings.HasPrefix(c.Service.APIPrefix, "/") {
		return fmt.Errorf("service.api_prefix must start with '/', got %q", c.Service.APIPrefix)
	}
	if c.Service.TimeoutSeconds <= 0 {
		return fmt.Errorf("service.timeout_seconds must be > 0, got %d", c.Service.TimeoutSeconds)
	}

	if c.Polling.IntervalMs <= 0 {
		return fmt.Errorf("polling.interval_ms must be > 0, got %d", c.Polling.IntervalMs)
	}
	if c.Polling.SlowAfterSeconds < 0 || c.Polling.MaxWaitSeconds < 0 {
		return fmt.Errorf("polling.slow_after_seconds and polling.max_wait_seconds must be >= 0")
	}

	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be >= 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.MaxBackoffMs < c.Retry.InitialBackoffMs {
		return fmt.Errorf("retry.max_backoff_ms (%d) must be >= retry.initial_backoff_ms (%d)",
			c.Retry.MaxBackoffMs, c.Retry.InitialBackoffMs)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}

	if c.History.Limit <= 0 {
		return fmt.Errorf("history.limit must be > 0, got %d", c.History.Limit)
	}
	if c.History.Concurrency <= 0 {
		return fmt.Errorf("history.concurrency must be > 0, got %d", c.History.Concurrency)
	}

	return nil
}

// PollInterval returns the configured poll interval
func (c PollingConfig) PollInterval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// SlowAfter returns the elapsed time after which a wait is reported as slow
func (c PollingConfig) SlowAfter() time.Duration {
	return time.Duration(c.SlowAfterSeconds) * time.Second
}

// MaxWait returns the polling ceiling, zero meaning none
func (c PollingConfig) MaxWait() time.Duration {
	return time.Duration(c.MaxWaitSeconds) * time.Second
}

// PresetFor returns the preset name configured for a calc type
func (c *ProjectConfig) PresetFor(calcType CalcType) (string, bool) {
	name, ok := c.Presets[string(calcType)]
	return name, ok && name != ""
}
