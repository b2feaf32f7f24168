package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trobanga/ladle/internal/models"
)

func TestCombinationVerdict(t *testing.T) {
	tests := []struct {
		name         string
		verdict      models.CombinationVerdict
		wantLevel    models.VerdictLevel
		allowsSubmit bool
		advisory     string
	}{
		{"ok", models.CombinationVerdict{Level: models.VerdictOK, Message: "fine"}, models.VerdictOK, true, ""},
		{"empty level", models.CombinationVerdict{}, models.VerdictOK, true, ""},
		{"warn", models.CombinationVerdict{Level: models.VerdictWarn, Message: "not recommended"}, models.VerdictWarn, true, "not recommended"},
		{"reject", models.CombinationVerdict{Level: models.VerdictReject, Message: "impossible"}, models.VerdictReject, false, "impossible"},
		{"unknown level", models.CombinationVerdict{Level: "maybe", Message: "hmm"}, models.VerdictWarn, true, "hmm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLevel, tt.verdict.Normalize().Level)
			assert.Equal(t, tt.allowsSubmit, tt.verdict.AllowsSubmit())
			assert.Equal(t, !tt.allowsSubmit, tt.verdict.Blocking())
			assert.Equal(t, tt.advisory, tt.verdict.Advisory())
		})
	}
}
