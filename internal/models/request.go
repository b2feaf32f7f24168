package models

import "fmt"

// CalcType selects which refining reaction is solved
type CalcType string

const (
	CalcDeoxidation     CalcType = "deoxidation"
	CalcDesulfurization CalcType = "desulfurization"
)

// CalcTypes lists calc types in display order
var CalcTypes = []CalcType{CalcDeoxidation, CalcDesulfurization}

// IsValidCalcType checks if the calc type is recognized
func IsValidCalcType(t CalcType) bool {
	return t == CalcDeoxidation || t == CalcDesulfurization
}

// Unit of a target value
type Unit string

const (
	UnitWtPct Unit = "wtpct"
	UnitPPM   Unit = "ppm"
)

// Default request values applied when the corresponding field is zero
const (
	DefaultPressureAtm  = 1.0
	DefaultAlphaGuess   = 0.5
	DefaultAlphaMax     = 10.0
	DefaultSolveSpecies = "Ca"
)

// CalculationRequest is the body of POST /calculate
type CalculationRequest struct {
	CalcType     CalcType   `json:"calc_type" yaml:"calc_type"`
	Steel        Steel      `json:"steel" yaml:"steel"`
	Slag         Slag       `json:"slag" yaml:"slag"`
	Conditions   Conditions `json:"conditions" yaml:"conditions"`
	Target       Target     `json:"target" yaml:"target"`
	SolveSpecies string     `json:"solve_species" yaml:"solve_species"`
	AlphaGuess   float64    `json:"alpha_guess" yaml:"alpha_guess"`
	AlphaMax     float64    `json:"alpha_max" yaml:"alpha_max"`
}

// Steel holds charged steel masses in grams. MnField is passed through verbatim;
// empty leaves Mn out of the calculation.
type Steel struct {
	FeG     float64 `json:"Fe_g" yaml:"Fe_g"`
	MnField string  `json:"Mn_field" yaml:"Mn_field"`
	SiG     float64 `json:"Si_g" yaml:"Si_g"`
	AlG     float64 `json:"Al_g" yaml:"Al_g"`
	OG      float64 `json:"O_g" yaml:"O_g"`
	SG      float64 `json:"S_g" yaml:"S_g"`
}

// Slag holds charged slag masses in grams
type Slag struct {
	CaOG   float64 `json:"CaO_g" yaml:"CaO_g"`
	Al2O3G float64 `json:"Al2O3_g" yaml:"Al2O3_g"`
	SiO2G  float64 `json:"SiO2_g" yaml:"SiO2_g"`
}

// Conditions are the equilibrium conditions
type Conditions struct {
	TempC       float64 `json:"T_C" yaml:"T_C"`
	PressureAtm float64 `json:"P_atm" yaml:"P_atm"`
}

// Target is the element content the solver drives towards
type Target struct {
	Element string  `json:"element" yaml:"element"`
	Value   float64 `json:"value" yaml:"value"`
	Unit    Unit    `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Preset is a stored request as served by GET /presets/{name}
type Preset struct {
	CalculationRequest `yaml:",inline"`

	Name string `json:"job_id,omitempty" yaml:"job_id,omitempty"`
}

// String renders a short human summary of the request
func (r CalculationRequest) String() string {
	return fmt.Sprintf("%s %s=%g %s via %s", r.CalcType, r.Target.Element, r.Target.Value, r.Target.Unit, r.SolveSpecies)
}
