package services

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trobanga/ladle/internal/models"
)

// LoadConfig loads configuration from file and merges with CLI flags
// Priority order (highest to lowest):
//  1. CLI flags (via viper bindings)
//  2. Environment variables (LADLE_SERVICE_BASE_URL, ...)
//  3. Configuration file
//  4. Default values
func LoadConfig(configFile string) (*models.ProjectConfig, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("ladle")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/ladle")
		viper.AddConfigPath("/etc/ladle")
	}

	viper.SetEnvPrefix("LADLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Config file is optional
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := models.ProjectConfig{
		Service: models.ServiceConfig{
			BaseURL:        viper.GetString("service.base_url"),
			APIPrefix:      viper.GetString("service.api_prefix"),
			TimeoutSeconds: viper.GetInt("service.timeout_seconds"),
		},
		Polling: models.PollingConfig{
			IntervalMs:       viper.GetInt("polling.interval_ms"),
			SlowAfterSeconds: viper.GetInt("polling.slow_after_seconds"),
			MaxWaitSeconds:   viper.GetInt("polling.max_wait_seconds"),
		},
		Retry: models.RetryConfig{
			MaxAttempts:      viper.GetInt("retry.max_attempts"),
			InitialBackoffMs: viper.GetInt64("retry.initial_backoff_ms"),
			MaxBackoffMs:     viper.GetInt64("retry.max_backoff_ms"),
		},
		History: models.HistoryConfig{
			Limit:       viper.GetInt("history.limit"),
			Concurrency: viper.GetInt("history.concurrency"),
		},
		Presets:     viper.GetStringMapString("presets"),
		DownloadDir: viper.GetString("download_dir"),
		LogLevel:    viper.GetString("log_level"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	d := models.DefaultConfig()
	viper.SetDefault("service.base_url", d.Service.BaseURL)
	viper.SetDefault("service.api_prefix", d.Service.APIPrefix)
	viper.SetDefault("service.timeout_seconds", d.Service.TimeoutSeconds)
	viper.SetDefault("polling.interval_ms", d.Polling.IntervalMs)
	viper.SetDefault("polling.slow_after_seconds", d.Polling.SlowAfterSeconds)
	viper.SetDefault("polling.max_wait_seconds", d.Polling.MaxWaitSeconds)
	viper.SetDefault("retry.max_attempts", d.Retry.MaxAttempts)
	viper.SetDefault("retry.initial_backoff_ms", d.Retry.InitialBackoffMs)
	viper.SetDefault("retry.max_backoff_ms", d.Retry.MaxBackoffMs)
	viper.SetDefault("history.limit", d.History.Limit)
	viper.SetDefault("history.concurrency", d.History.Concurrency)
	viper.SetDefault("presets", d.Presets)
	viper.SetDefault("download_dir", d.DownloadDir)
	viper.SetDefault("log_level", d.LogLevel)
}

// GetConfigFilePath returns the path to the config file that was loaded
func GetConfigFilePath() string {
	return viper.ConfigFileUsed()
}

// SetConfigValue allows runtime override of config values
func SetConfigValue(key string, value interface{}) {
	viper.Set(key, value)
}

// BindFlagToConfig binds a CLI flag to a configuration key so the flag
// overrides config file and environment values when set
func BindFlagToConfig(flag *pflag.Flag, configKey string) error {
	return viper.BindPFlag(configKey, flag)
}

// ResetConfig clears all viper state; used between tests
func ResetConfig() {
	viper.Reset()
}
