// Package form keeps an editable calculation request consistent with the
// option catalog while the user changes calc type, target and species.
package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/models"
)

var (
	// ErrNotAnOption is returned when a selection is not offered by the catalog
	ErrNotAnOption = errors.New("not an available option")

	// ErrUnknownField is returned for a field id the form does not have
	ErrUnknownField = errors.New("unknown form field")
)

// Checker returns the verdict for a species/target pair
type Checker interface {
	Check(ctx context.Context, species, element string) models.CombinationVerdict
}

// Controller owns the state of one calculation form session.
// It is not safe for concurrent use.
type Controller struct {
	catalog *models.OptionCatalog
	checker Checker
	logger  *lib.Logger

	calcType models.CalcType
	targets  []models.TargetInfo
	target   string
	species  []string
	solve    string
	unit     models.Unit
	values   map[FieldID]string
	verdict  models.CombinationVerdict
	jobID    string
}

// NewController creates a form for catalog. A nil catalog means the built-in
// fallback catalog. The first calc type is current and no target is selected yet.
func NewController(catalog *models.OptionCatalog, checker Checker, logger *lib.Logger) *Controller {
	if catalog == nil {
		catalog = models.FallbackCatalog()
	}
	if logger == nil {
		logger = lib.NewNopLogger()
	}
	c := &Controller{
		catalog: catalog,
		checker: checker,
		logger:  logger,
		solve:   models.DefaultSolveSpecies,
		unit:    models.UnitWtPct,
		values:  valuesFromRequest(models.CalculationRequest{}),
		verdict: models.OKVerdict(),
	}
	for _, t := range models.CalcTypes {
		if len(catalog.TargetsFor(t)) > 0 {
			c.calcType = t
			c.targets = catalog.TargetsFor(t)
			break
		}
	}
	return c
}

// SelectCalcType switches the calculation type. Composition values are kept.
// If the current target is not offered for t, the first offered target is
// selected, which runs the target change flow.
func (c *Controller) SelectCalcType(ctx context.Context, t models.CalcType) error {
	targets := c.catalog.TargetsFor(t)
	if len(targets) == 0 {
		return fmt.Errorf("%w: calc type %q", ErrNotAnOption, t)
	}

	c.calcType = t
	c.targets = targets
	if c.target != "" && c.catalog.OffersTarget(t, c.target) {
		return nil
	}
	c.applyTarget(targets[0].Element)
	c.revalidate(ctx)
	return nil
}

// SelectTarget switches the target element: species options, unit and the
// default target value follow the catalog, then the combination is re-checked.
func (c *Controller) SelectTarget(ctx context.Context, element string) error {
	if !c.catalog.OffersTarget(c.calcType, element) {
		return fmt.Errorf("%w: target %q for %s", ErrNotAnOption, element, c.calcType)
	}
	c.applyTarget(element)
	c.revalidate(ctx)
	return nil
}

// SelectSpecies switches the solving species and re-checks the combination.
// No other field changes.
func (c *Controller) SelectSpecies(ctx context.Context, species string) error {
	if len(c.species) > 0 && !contains(c.species, species) {
		return fmt.Errorf("%w: species %q for target %s", ErrNotAnOption, species, c.target)
	}
	c.solve = species
	c.revalidate(ctx)
	return nil
}

// LoadTargetContext sets calc type and target element in one step: the option
// lists are populated first and the selections assigned after. Nothing changes
// if either selection is not offered. An empty element selects the first target.
func (c *Controller) LoadTargetContext(ctx context.Context, calcType models.CalcType, element string) error {
	if err := c.loadTargetContext(calcType, element); err != nil {
		return err
	}
	c.revalidate(ctx)
	return nil
}

func (c *Controller) loadTargetContext(calcType models.CalcType, element string) error {
	targets := c.catalog.TargetsFor(calcType)
	if len(targets) == 0 {
		return fmt.Errorf("%w: calc type %q", ErrNotAnOption, calcType)
	}
	if element == "" {
		element = targets[0].Element
	}
	if !c.catalog.OffersTarget(calcType, element) {
		return fmt.Errorf("%w: target %q for %s", ErrNotAnOption, element, calcType)
	}

	c.calcType = calcType
	c.targets = targets
	c.applyTarget(element)
	return nil
}

// ApplyPreset fills the form from a preset. Calc type and target are
// established before any dependent value is written; the combination is
// checked once at the end.
func (c *Controller) ApplyPreset(ctx context.Context, preset models.Preset) error {
	req := preset.CalculationRequest
	calcType := req.CalcType
	if calcType == "" {
		if t, ok := c.catalog.CalcTypeFor(req.Target.Element); ok {
			calcType = t
		} else {
			calcType = c.calcType
		}
	}

	if err := c.loadTargetContext(calcType, req.Target.Element); err != nil {
		return fmt.Errorf("preset %s: %w", preset.Name, err)
	}

	defaultTarget := c.values[FieldTargetValue]
	c.values = valuesFromRequest(req)
	if req.Target.Value == 0 {
		c.values[FieldTargetValue] = defaultTarget
	}

	if req.SolveSpecies != "" {
		if len(c.species) == 0 || contains(c.species, req.SolveSpecies) {
			c.solve = req.SolveSpecies
		} else {
			c.logger.Warn("Preset species not offered for target, keeping selection",
				"preset", preset.Name,
				"species", req.SolveSpecies,
				"target", c.target,
				"selected", c.solve)
		}
	}

	c.revalidate(ctx)
	c.logger.Debug("Preset applied", "preset", preset.Name, "calc_type", c.calcType, "target", c.target, "species", c.solve)
	return nil
}

// ApplyRequest fills the form from a complete request, e.g. one read from a file
func (c *Controller) ApplyRequest(ctx context.Context, req models.CalculationRequest) error {
	return c.ApplyPreset(ctx, models.Preset{CalculationRequest: req, Name: "request"})
}

// SetField stores the raw text of a field
func (c *Controller) SetField(id FieldID, raw string) error {
	if !IsField(id) {
		return fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	c.values[id] = raw
	return nil
}

// Field returns the raw text of a field
func (c *Controller) Field(id FieldID) string {
	return c.values[id]
}

// Request extracts the current calculation request
func (c *Controller) Request() models.CalculationRequest {
	num := func(id FieldID) float64 { return parseNumber(c.values[id]) }

	return models.CalculationRequest{
		CalcType: c.calcType,
		Steel: models.Steel{
			FeG:     num(FieldFeG),
			MnField: c.values[FieldMn],
			SiG:     num(FieldSiG),
			AlG:     num(FieldAlG),
			OG:      num(FieldOG),
			SG:      num(FieldSG),
		},
		Slag: models.Slag{
			CaOG:   num(FieldCaOG),
			Al2O3G: num(FieldAl2O3G),
			SiO2G:  num(FieldSiO2G),
		},
		Conditions: models.Conditions{
			TempC:       num(FieldTempC),
			PressureAtm: orDefault(num(FieldPressureAtm), models.DefaultPressureAtm),
		},
		Target: models.Target{
			Element: c.target,
			Value:   num(FieldTargetValue),
			Unit:    c.unit,
		},
		SolveSpecies: c.solve,
		AlphaGuess:   orDefault(num(FieldAlphaGuess), models.DefaultAlphaGuess),
		AlphaMax:     num(FieldAlphaMax),
	}
}

// Verdict returns the last combination verdict
func (c *Controller) Verdict() models.CombinationVerdict {
	return c.verdict
}

// SubmitAllowed reports whether the current combination permits submission
func (c *Controller) SubmitAllowed() bool {
	return c.verdict.AllowsSubmit()
}

// Advisory returns the combination advisory to display, empty when none
func (c *Controller) Advisory() string {
	return c.verdict.Advisory()
}

// CalcType returns the current calculation type
func (c *Controller) CalcType() models.CalcType {
	return c.calcType
}

// Targets returns the targets offered for the current calc type
func (c *Controller) Targets() []models.TargetInfo {
	return c.targets
}

// TargetElement returns the selected target element
func (c *Controller) TargetElement() string {
	return c.target
}

// SpeciesOptions returns the solving species for the target, recommended first
func (c *Controller) SpeciesOptions() []string {
	return c.species
}

// SolveSpecies returns the selected solving species
func (c *Controller) SolveSpecies() string {
	return c.solve
}

// Unit returns the unit of the target value
func (c *Controller) Unit() models.Unit {
	return c.unit
}

// Catalog returns the option catalog the form is bound to
func (c *Controller) Catalog() *models.OptionCatalog {
	return c.catalog
}

// SetJobID records the job submitted from this form
func (c *Controller) SetJobID(id string) {
	c.jobID = id
}

// JobID returns the last submitted job, empty before the first submission
func (c *Controller) JobID() string {
	return c.jobID
}

// applyTarget repopulates species options and unit for element and resets the
// target value to the catalog default
func (c *Controller) applyTarget(element string) {
	c.target = element
	c.species = c.catalog.SpeciesFor(element).Ordered()
	if len(c.species) > 0 && !contains(c.species, c.solve) {
		c.solve = c.species[0]
	}
	c.unit = c.catalog.UnitFor(element)
	c.values[FieldTargetValue] = formatNumber(c.catalog.DefaultValueFor(element))
}

func (c *Controller) revalidate(ctx context.Context) {
	if c.checker == nil {
		c.verdict = models.OKVerdict()
		return
	}
	c.verdict = c.checker.Check(ctx, c.solve, c.target).Normalize()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
