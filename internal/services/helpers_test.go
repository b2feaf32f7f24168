package services_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/models"
	"github.com/trobanga/ladle/internal/services"
)

func testHTTPClient(baseURL string) *services.HTTPClient {
	return services.NewHTTPClient(
		models.ServiceConfig{BaseURL: baseURL, APIPrefix: "/api", TimeoutSeconds: 5},
		models.RetryConfig{MaxAttempts: 3, InitialBackoffMs: 1, MaxBackoffMs: 5},
		lib.NewNopLogger(),
	)
}

func testPolling() models.PollingConfig {
	return models.PollingConfig{IntervalMs: 5, SlowAfterSeconds: 0, MaxWaitSeconds: 0}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

func validRequest() models.CalculationRequest {
	return models.CalculationRequest{
		CalcType:     models.CalcDesulfurization,
		Steel:        models.Steel{FeG: 100000, SG: 30},
		Slag:         models.Slag{CaOG: 1500, Al2O3G: 900, SiO2G: 300},
		Conditions:   models.Conditions{TempC: 1600, PressureAtm: 1},
		Target:       models.Target{Element: "S", Value: 0.005, Unit: models.UnitWtPct},
		SolveSpecies: "Ca",
	}
}
