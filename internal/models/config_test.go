package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trobanga/ladle/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := models.DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 800*time.Millisecond, cfg.Polling.PollInterval())
	assert.Equal(t, 2*time.Minute, cfg.Polling.SlowAfter())
	assert.Equal(t, 30*time.Minute, cfg.Polling.MaxWait())
	assert.Equal(t, 20, cfg.History.Limit)

	name, ok := cfg.PresetFor(models.CalcDesulfurization)
	assert.True(t, ok)
	assert.Equal(t, "example_desulfurization", name)
}

func TestProjectConfig_PresetFor(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Presets = map[string]string{"deoxidation": ""}

	_, ok := cfg.PresetFor(models.CalcDeoxidation)
	assert.False(t, ok)
	_, ok = cfg.PresetFor(models.CalcDesulfurization)
	assert.False(t, ok)
}

func TestProjectConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.ProjectConfig)
	}{
		{"empty base url", func(c *models.ProjectConfig) { c.Service.BaseURL = "" }},
		{"non-http base url", func(c *models.ProjectConfig) { c.Service.BaseURL = "ftp://calc" }},
		{"relative api prefix", func(c *models.ProjectConfig) { c.Service.APIPrefix = "api" }},
		{"zero timeout", func(c *models.ProjectConfig) { c.Service.TimeoutSeconds = 0 }},
		{"zero interval", func(c *models.ProjectConfig) { c.Polling.IntervalMs = 0 }},
		{"negative slow after", func(c *models.ProjectConfig) { c.Polling.SlowAfterSeconds = -1 }},
		{"no attempts", func(c *models.ProjectConfig) { c.Retry.MaxAttempts = 0 }},
		{"backoff order", func(c *models.ProjectConfig) { c.Retry.MaxBackoffMs = c.Retry.InitialBackoffMs - 1 }},
		{"log level", func(c *models.ProjectConfig) { c.LogLevel = "chatty" }},
		{"history concurrency", func(c *models.ProjectConfig) { c.History.Concurrency = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.DefaultConfig()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestProjectConfig_UnboundedPolling(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Polling.MaxWaitSeconds = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Duration(0), cfg.Polling.MaxWait())
}
