package cmd

import (
	"fmt"

	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/models"
	"github.com/trobanga/ladle/internal/services"
)

// runtime bundles the configuration and service clients used by a command
type runtime struct {
	config    *models.ProjectConfig
	logger    *lib.Logger
	http      *services.HTTPClient
	catalog   *services.CatalogService
	validator *services.Validator
	jobs      *services.JobClient
	history   *services.HistoryService
}

func newRuntime() (*runtime, error) {
	// Load configuration
	config, err := services.LoadConfig(cfgFile)
	if err != nil {
		return nil, lib.ErrInvalidConfig("config", err.Error())
	}

	// Create logger
	logLevel := lib.ParseLogLevel(config.LogLevel)
	if verbose {
		logLevel = lib.LogLevelDebug
	}
	logger := lib.NewLogger(logLevel)
	lib.DefaultLogger = logger

	if path := services.GetConfigFilePath(); path != "" {
		logger.Debug("Loaded configuration", "file", path)
	}

	httpClient := services.NewHTTPClient(config.Service, config.Retry, logger)
	jobs := services.NewJobClient(httpClient, config.Polling, logger)

	return &runtime{
		config:    config,
		logger:    logger,
		http:      httpClient,
		catalog:   services.NewCatalogService(httpClient, logger),
		validator: services.NewValidator(httpClient, logger),
		jobs:      jobs,
		history:   services.NewHistoryService(jobs, config.History, logger),
	}, nil
}

func (r *runtime) close() {
	r.logger.Sync()
}

func (r *runtime) describe() string {
	return fmt.Sprintf("%s%s", r.config.Service.BaseURL, r.config.Service.APIPrefix)
}
