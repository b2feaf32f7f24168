package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trobanga/ladle/internal/models"
)

func TestJob_Validate(t *testing.T) {
	result := &models.Result{AlphaG: 1}

	tests := []struct {
		name    string
		job     models.Job
		wantErr bool
	}{
		{"pending", models.Job{JobID: "a", Status: models.JobStatusPending}, false},
		{"completed with result", models.Job{JobID: "a", Status: models.JobStatusCompleted, Result: result}, false},
		{"failed with error", models.Job{JobID: "a", Status: models.JobStatusFailed, Error: "boom"}, false},
		{"failed without error", models.Job{JobID: "a", Status: models.JobStatusFailed}, false},
		{"missing id", models.Job{Status: models.JobStatusPending}, true},
		{"unknown status", models.Job{JobID: "a", Status: "queued"}, true},
		{"completed without result", models.Job{JobID: "a", Status: models.JobStatusCompleted}, true},
		{"completed with both", models.Job{JobID: "a", Status: models.JobStatusCompleted, Result: result, Error: "x"}, true},
		{"failed with result", models.Job{JobID: "a", Status: models.JobStatusFailed, Result: result}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCalculationRequest_Validate(t *testing.T) {
	valid := models.CalculationRequest{CalcType: models.CalcDeoxidation, Target: models.Target{Element: "Al", Unit: models.UnitWtPct}}
	assert.NoError(t, valid.Validate())

	badType := models.CalculationRequest{CalcType: "smelting"}
	assert.Error(t, badType.Validate())

	badUnit := models.CalculationRequest{Target: models.Target{Unit: "mol"}}
	assert.Error(t, badUnit.Validate())

	negative := models.CalculationRequest{AlphaMax: -1}
	assert.Error(t, negative.Validate())
}
