package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trobanga/ladle/internal/models"
)

func TestSpeciesSet_Ordered(t *testing.T) {
	tests := []struct {
		name string
		set  models.SpeciesSet
		want []string
	}{
		{
			name: "recommended first",
			set:  models.SpeciesSet{Recommended: []string{"Ca"}, Allowed: []string{"Mg", "Al"}},
			want: []string{"Ca", "Mg", "Al"},
		},
		{
			name: "overlap listed once",
			set:  models.SpeciesSet{Recommended: []string{"Al", "Ca"}, Allowed: []string{"Ca", "Mg", "Al"}},
			want: []string{"Al", "Ca", "Mg"},
		},
		{
			name: "allowed only",
			set:  models.SpeciesSet{Allowed: []string{"Si"}},
			want: []string{"Si"},
		},
		{
			name: "empty",
			set:  models.SpeciesSet{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.Ordered())
		})
	}
}

func TestSpeciesSet_Membership(t *testing.T) {
	set := models.SpeciesSet{Recommended: []string{"Ca"}, Allowed: []string{"Mg"}}
	assert.True(t, set.Contains("Ca"))
	assert.True(t, set.Contains("Mg"))
	assert.False(t, set.Contains("Si"))
	assert.True(t, set.IsRecommended("Ca"))
	assert.False(t, set.IsRecommended("Mg"))
}

func TestFallbackCatalog(t *testing.T) {
	catalog := models.FallbackCatalog()
	require.NoError(t, catalog.Validate())
	assert.True(t, catalog.Fallback)

	assert.True(t, catalog.OffersTarget(models.CalcDeoxidation, "Al"))
	assert.True(t, catalog.OffersTarget(models.CalcDeoxidation, "O"))
	assert.True(t, catalog.OffersTarget(models.CalcDesulfurization, "S"))
	assert.False(t, catalog.OffersTarget(models.CalcDesulfurization, "Al"))

	assert.Equal(t, models.UnitPPM, catalog.UnitFor("O"))
	assert.Equal(t, models.UnitWtPct, catalog.UnitFor("S"))
	assert.Equal(t, models.UnitWtPct, catalog.UnitFor("Mn"))
	assert.Equal(t, 0.005, catalog.DefaultValueFor("S"))

	for _, el := range []string{"Al", "O", "S"} {
		assert.Equal(t, []string{models.DefaultSolveSpecies}, catalog.SpeciesFor(el).Ordered())
	}
}

func TestOptionCatalog_CalcTypeFor(t *testing.T) {
	catalog := models.FallbackCatalog()

	ct, ok := catalog.CalcTypeFor("O")
	assert.True(t, ok)
	assert.Equal(t, models.CalcDeoxidation, ct)

	_, ok = catalog.CalcTypeFor("Mn")
	assert.False(t, ok)
}

func TestOptionCatalog_Validate(t *testing.T) {
	empty := &models.OptionCatalog{}
	assert.Error(t, empty.Validate())

	noElement := &models.OptionCatalog{CalcTypes: map[models.CalcType][]models.TargetInfo{
		models.CalcDeoxidation: {{Label: "Al"}},
	}}
	assert.Error(t, noElement.Validate())

	badUnit := &models.OptionCatalog{CalcTypes: map[models.CalcType][]models.TargetInfo{
		models.CalcDeoxidation: {{Element: "Al", Unit: "mol"}},
	}}
	assert.Error(t, badUnit.Validate())
}
