package models

// TargetInfo describes one selectable target element
type TargetInfo struct {
	Element      string  `json:"element"`
	Label        string  `json:"label"`
	Unit         Unit    `json:"unit"`
	DefaultValue float64 `json:"default"`
}

// SpeciesSet lists solving species for a target element
type SpeciesSet struct {
	Recommended []string `json:"recommended"`
	Allowed     []string `json:"allowed"`
}

// Ordered returns recommended species followed by allowed species that are not
// also recommended. Declared order is kept within each group.
func (s SpeciesSet) Ordered() []string {
	out := make([]string, 0, len(s.Recommended)+len(s.Allowed))
	seen := make(map[string]bool, cap(out))
	for _, group := range [][]string{s.Recommended, s.Allowed} {
		for _, sp := range group {
			if sp == "" || seen[sp] {
				continue
			}
			seen[sp] = true
			out = append(out, sp)
		}
	}
	return out
}

// Contains reports whether species is offered at all
func (s SpeciesSet) Contains(species string) bool {
	for _, sp := range s.Ordered() {
		if sp == species {
			return true
		}
	}
	return false
}

// IsRecommended reports whether species is in the recommended group
func (s SpeciesSet) IsRecommended(species string) bool {
	for _, sp := range s.Recommended {
		if sp == species {
			return true
		}
	}
	return false
}

// OptionCatalog is the server-declared option matrix from GET /calc-options.
// It is read-only once loaded.
type OptionCatalog struct {
	CalcTypes       map[CalcType][]TargetInfo `json:"calc_types"`
	SpeciesByTarget map[string]SpeciesSet     `json:"species_by_target"`
	Fallback        bool                      `json:"-"`
}

// TargetsFor returns the targets offered for a calc type, in declared order
func (c *OptionCatalog) TargetsFor(calcType CalcType) []TargetInfo {
	return c.CalcTypes[calcType]
}

// Target looks up target info across all calc types
func (c *OptionCatalog) Target(element string) (TargetInfo, bool) {
	for _, t := range CalcTypes {
		for _, info := range c.CalcTypes[t] {
			if info.Element == element {
				return info, true
			}
		}
	}
	// calc types the client does not know about yet
	for t, infos := range c.CalcTypes {
		if IsValidCalcType(t) {
			continue
		}
		for _, info := range infos {
			if info.Element == element {
				return info, true
			}
		}
	}
	return TargetInfo{}, false
}

// CalcTypeFor returns the first calc type offering element
func (c *OptionCatalog) CalcTypeFor(element string) (CalcType, bool) {
	for _, t := range CalcTypes {
		for _, info := range c.CalcTypes[t] {
			if info.Element == element {
				return t, true
			}
		}
	}
	return "", false
}

// OffersTarget reports whether element is selectable under calcType
func (c *OptionCatalog) OffersTarget(calcType CalcType, element string) bool {
	for _, info := range c.CalcTypes[calcType] {
		if info.Element == element {
			return true
		}
	}
	return false
}

// SpeciesFor returns the solving species declared for element
func (c *OptionCatalog) SpeciesFor(element string) SpeciesSet {
	return c.SpeciesByTarget[element]
}

// UnitFor returns the declared unit of element, wtpct when unknown
func (c *OptionCatalog) UnitFor(element string) Unit {
	if info, ok := c.Target(element); ok && info.Unit != "" {
		return info.Unit
	}
	return UnitWtPct
}

// DefaultValueFor returns the declared default target value of element
func (c *OptionCatalog) DefaultValueFor(element string) float64 {
	info, _ := c.Target(element)
	return info.DefaultValue
}

// FallbackCatalog is used when the service catalog cannot be loaded
func FallbackCatalog() *OptionCatalog {
	return &OptionCatalog{
		CalcTypes: map[CalcType][]TargetInfo{
			CalcDeoxidation: {
				{Element: "Al", Label: "Al", Unit: UnitWtPct, DefaultValue: 0.03},
				{Element: "O", Label: "O", Unit: UnitPPM, DefaultValue: 20},
			},
			CalcDesulfurization: {
				{Element: "S", Label: "S", Unit: UnitWtPct, DefaultValue: 0.005},
			},
		},
		SpeciesByTarget: map[string]SpeciesSet{
			"Al": {Recommended: []string{DefaultSolveSpecies}},
			"O":  {Recommended: []string{DefaultSolveSpecies}},
			"S":  {Recommended: []string{DefaultSolveSpecies}},
		},
		Fallback: true,
	}
}
