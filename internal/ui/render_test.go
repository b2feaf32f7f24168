package ui_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trobanga/ladle/internal/models"
	"github.com/trobanga/ladle/internal/ui"
)

func TestMain(m *testing.M) {
	ui.DisableColor()
	os.Exit(m.Run())
}

func TestRenderVerdict(t *testing.T) {
	assert.Empty(t, ui.RenderVerdict(models.OKVerdict()))
	assert.Equal(t, ui.IconWarn+" Mg is not recommended", ui.RenderVerdict(models.CombinationVerdict{Level: models.VerdictWarn, Message: "Mg is not recommended"}))
	assert.Equal(t, ui.IconFail+" no sulfide", ui.RenderVerdict(models.CombinationVerdict{Level: models.VerdictReject, Message: "no sulfide"}))
	assert.Equal(t, ui.IconWarn+" odd", ui.RenderVerdict(models.CombinationVerdict{Level: "strange", Message: "odd"}))
}

func TestPrintVerdict(t *testing.T) {
	var buf bytes.Buffer
	ui.PrintVerdict(&buf, "Ca", "S", models.OKVerdict())
	assert.Equal(t, ui.IconPass+" Ca can be solved for target S\n", buf.String())
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	ui.PrintResult(&buf, &models.Result{
		AlphaG:       12.34567,
		SolveSpecies: "Ca",
		TempK:        1873.15,
		PressureAtm:  1,
		Steel:        models.SteelResult{FeWtPct: 99.7, SWtPct: 0.0042, OPPM: 18.2},
		Slag:         models.SlagResult{CaOWtPct: 48.1, CaSWtPct: 0.25},
	})

	out := buf.String()
	assert.Contains(t, out, "Required Ca: 12.3457 g")
	assert.Contains(t, out, "T = 1873.15 K, P = 1 atm")
	assert.Contains(t, out, "Steel")
	assert.Contains(t, out, "99.70%")
	assert.Contains(t, out, "4.200e-03%")
	assert.Contains(t, out, "18.2 ppm")
	assert.Contains(t, out, "Slag")
	assert.Contains(t, out, "48.10%")
	assert.Contains(t, out, "0.2500%")
}

func TestPrintResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	ui.PrintResult(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	ui.PrintHistory(&buf, nil)
	assert.Contains(t, buf.String(), "No jobs yet.")

	buf.Reset()
	ui.PrintHistory(&buf, []models.HistoryRow{
		{JobID: "job-1", CalcType: models.CalcDesulfurization, Status: models.JobStatusCompleted, CreatedAt: "2026-01-02 10:00", Solved: "1.2345"},
		{JobID: "job-2", CalcType: models.CalcDeoxidation, Status: models.JobStatusFailed, Solved: models.SolvedPlaceholder},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Contains(t, lines[0], "JOB ID")
	assert.Contains(t, lines[0], "SOLVED (g)")
	assert.Contains(t, lines[1], "job-1")
	assert.Contains(t, lines[1], "Desulfurization")
	assert.Contains(t, lines[1], "1.2345")
	assert.Contains(t, lines[1], ui.IconPass+" completed")
	assert.Contains(t, lines[2], models.SolvedPlaceholder)
	assert.Contains(t, lines[2], ui.IconFail+" failed")
	assert.Equal(t, "Total: 2 jobs", lines[len(lines)-1])
}

func TestPrintCatalog(t *testing.T) {
	catalog := &models.OptionCatalog{
		CalcTypes: map[models.CalcType][]models.TargetInfo{
			models.CalcDesulfurization: {{Element: "S", Label: "S", Unit: models.UnitWtPct, DefaultValue: 0.005}},
			models.CalcDeoxidation:     {{Element: "O", Unit: models.UnitPPM, DefaultValue: 20}},
		},
		SpeciesByTarget: map[string]models.SpeciesSet{
			"S": {Recommended: []string{"Ca"}, Allowed: []string{"Mg"}},
		},
	}

	var buf bytes.Buffer
	ui.PrintCatalog(&buf, catalog, models.CalcDesulfurization)
	out := buf.String()
	assert.Contains(t, out, "Desulfurization (desulfurization)")
	assert.Contains(t, out, "species: Ca*, Mg")
	assert.Contains(t, out, "0.005 wtpct")
	assert.NotContains(t, out, "Deoxidation")
	assert.NotContains(t, out, "built-in defaults")

	buf.Reset()
	ui.PrintCatalog(&buf, models.FallbackCatalog(), "")
	assert.Contains(t, buf.String(), "built-in defaults")
	assert.Contains(t, buf.String(), "Deoxidation")
}

func TestStatusSymbol(t *testing.T) {
	assert.Equal(t, ui.IconPending, ui.StatusSymbol(models.JobStatusPending))
	assert.Equal(t, ui.IconRunning, ui.StatusSymbol(models.JobStatusRunning))
	assert.Equal(t, "?", ui.StatusSymbol("queued"))
	assert.Equal(t, "Deoxidation", ui.CalcTypeLabel(models.CalcDeoxidation))
	assert.Equal(t, "custom", ui.CalcTypeLabel("custom"))
}
