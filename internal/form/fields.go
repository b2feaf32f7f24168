package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/trobanga/ladle/internal/models"
)

// FieldID names an editable field of the calculation form
type FieldID string

const (
	FieldFeG         FieldID = "Fe_g"
	FieldMn          FieldID = "Mn_field"
	FieldSiG         FieldID = "Si_g"
	FieldAlG         FieldID = "Al_g"
	FieldOG          FieldID = "O_g"
	FieldSG          FieldID = "S_g"
	FieldCaOG        FieldID = "CaO_g"
	FieldAl2O3G      FieldID = "Al2O3_g"
	FieldSiO2G       FieldID = "SiO2_g"
	FieldTempC       FieldID = "T_C"
	FieldPressureAtm FieldID = "P_atm"
	FieldTargetValue FieldID = "target_value"
	FieldAlphaGuess  FieldID = "alpha_guess"
	FieldAlphaMax    FieldID = "alpha_max"
)

// Fields lists every editable field in display order
var Fields = []FieldID{
	FieldFeG, FieldMn, FieldSiG, FieldAlG, FieldOG, FieldSG,
	FieldCaOG, FieldAl2O3G, FieldSiO2G,
	FieldTempC, FieldPressureAtm,
	FieldTargetValue,
	FieldAlphaGuess, FieldAlphaMax,
}

// IsField reports whether id names a form field
func IsField(id FieldID) bool {
	for _, f := range Fields {
		if f == id {
			return true
		}
	}
	return false
}

// parseNumber reads a numeric field. Empty or unparseable text is zero;
// whether a required field was provided is decided at submission.
func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// valuesFromRequest renders the field values of a request
func valuesFromRequest(req models.CalculationRequest) map[FieldID]string {
	return map[FieldID]string{
		FieldFeG:         formatNumber(req.Steel.FeG),
		FieldMn:          req.Steel.MnField,
		FieldSiG:         formatNumber(req.Steel.SiG),
		FieldAlG:         formatNumber(req.Steel.AlG),
		FieldOG:          formatNumber(req.Steel.OG),
		FieldSG:          formatNumber(req.Steel.SG),
		FieldCaOG:        formatNumber(req.Slag.CaOG),
		FieldAl2O3G:      formatNumber(req.Slag.Al2O3G),
		FieldSiO2G:       formatNumber(req.Slag.SiO2G),
		FieldTempC:       formatNumber(req.Conditions.TempC),
		FieldPressureAtm: formatNumber(orDefault(req.Conditions.PressureAtm, models.DefaultPressureAtm)),
		FieldTargetValue: formatNumber(req.Target.Value),
		FieldAlphaGuess:  formatNumber(orDefault(req.AlphaGuess, models.DefaultAlphaGuess)),
		FieldAlphaMax:    formatNumber(orDefault(req.AlphaMax, models.DefaultAlphaMax)),
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
