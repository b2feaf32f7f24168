package services

import (
	"context"
	"net/url"

	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/models"
)

// Validator asks the service whether a solving species can be used with a
// target element. Verdicts are never cached.
type Validator struct {
	http   *HTTPClient
	logger *lib.Logger
}

// NewValidator creates a combination validator
func NewValidator(httpClient *HTTPClient, logger *lib.Logger) *Validator {
	return &Validator{http: httpClient, logger: logger}
}

// Check fetches the verdict for (species, element).
// If the check itself cannot be performed the validator fails open: the
// returned verdict is ok with no advisory, so an unreachable validation
// endpoint never blocks submission. The service re-checks on submit.
func (v *Validator) Check(ctx context.Context, species, element string) models.CombinationVerdict {
	if species == "" || element == "" {
		return models.OKVerdict()
	}

	query := url.Values{}
	query.Set("solve_species", species)
	query.Set("target_elem", element)

	var verdict models.CombinationVerdict
	if err := v.http.Get(ctx, "/validate-combination?"+query.Encode(), &verdict); err != nil {
		v.logger.Warn("Combination check unavailable, allowing submission",
			"species", species,
			"target", element,
			"error", err)
		return models.OKVerdict()
	}

	verdict = verdict.Normalize()
	v.logger.Debug("Combination verdict", "species", species, "target", element, "level", verdict.Level)
	return verdict
}
