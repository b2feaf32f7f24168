package services

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/models"
)

// CatalogLoadError is returned when the option catalog cannot be fetched or is unusable
type CatalogLoadError struct {
	Cause error
}

func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("failed to load calculation options: %v", e.Cause)
}

func (e *CatalogLoadError) Unwrap() error {
	return e.Cause
}

// CatalogService reads the server-declared option matrix and the other
// read-only endpoints (runtime info, presets)
type CatalogService struct {
	http   *HTTPClient
	logger *lib.Logger
}

// NewCatalogService creates a catalog service
func NewCatalogService(httpClient *HTTPClient, logger *lib.Logger) *CatalogService {
	return &CatalogService{http: httpClient, logger: logger}
}

// Load fetches GET /calc-options
func (s *CatalogService) Load(ctx context.Context) (*models.OptionCatalog, error) {
	var catalog models.OptionCatalog
	if err := s.http.Get(ctx, "/calc-options", &catalog); err != nil {
		return nil, &CatalogLoadError{Cause: err}
	}
	if err := catalog.Validate(); err != nil {
		return nil, &CatalogLoadError{Cause: err}
	}

	s.logger.Debug("Loaded calculation options", "calc_types", len(catalog.CalcTypes), "targets_with_species", len(catalog.SpeciesByTarget))
	return &catalog, nil
}

// LoadOrFallback loads the catalog once at startup. A failure is not fatal:
// it is logged and the static fallback catalog is returned instead.
func (s *CatalogService) LoadOrFallback(ctx context.Context) *models.OptionCatalog {
	catalog, err := s.Load(ctx)
	if err != nil {
		s.logger.Warn("Using built-in calculation options", "error", err)
		return models.FallbackCatalog()
	}
	return catalog
}

// RuntimeInfo fetches GET /config/info
func (s *CatalogService) RuntimeInfo(ctx context.Context) (*models.RuntimeInfo, error) {
	var info models.RuntimeInfo
	if err := s.http.Get(ctx, "/config/info", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListPresets fetches GET /presets, sorted by name
func (s *CatalogService) ListPresets(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.http.Get(ctx, "/presets", &names); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Preset fetches GET /presets/{name}. A preset without calc_type gets the calc
// type that offers its target element.
func (s *CatalogService) Preset(ctx context.Context, name string, catalog *models.OptionCatalog) (*models.Preset, error) {
	var preset models.Preset
	if err := s.http.Get(ctx, "/presets/"+url.PathEscape(name), &preset); err != nil {
		return nil, err
	}
	if preset.Name == "" {
		preset.Name = name
	}
	if preset.CalcType == "" {
		preset.CalcType = InferCalcType(catalog, preset.Target.Element)
	}
	return &preset, nil
}

// InferCalcType picks the calc type that offers element. Without a catalog
// match, Al means deoxidation and anything else desulfurization.
func InferCalcType(catalog *models.OptionCatalog, element string) models.CalcType {
	if catalog != nil {
		if t, ok := catalog.CalcTypeFor(element); ok {
			return t
		}
	}
	if element == "Al" {
		return models.CalcDeoxidation
	}
	return models.CalcDesulfurization
}
