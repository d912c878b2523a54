package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownModel(t *testing.T) {
	info := Lookup(Navico, "HALO24")
	require.Equal(t, Navico, info.Brand)
	assert.Equal(t, "HALO24", info.Model)
	assert.True(t, info.Features.HasDoppler)
	assert.True(t, info.Features.HasDualRange)
}

func TestLookup_UnknownModelFallsBackToSentinel(t *testing.T) {
	info := Lookup(Navico, "nonexistent-model")
	assert.Equal(t, UnknownModel.DisplayName, info.DisplayName)
	assert.Empty(t, info.ExtendedControlIDs)
}

func TestRangeTablesAreAscending(t *testing.T) {
	for _, brand := range []Brand{Furuno, Navico, Raymarine, Garmin} {
		for _, info := range ListForBrand(brand) {
			for i := 1; i < len(info.RangeTableMeters); i++ {
				assert.Lessf(t, info.RangeTableMeters[i-1], info.RangeTableMeters[i],
					"%s %s range table not ascending at index %d", brand, info.Model, i)
			}
		}
	}
}

func TestAllBrandsHaveAtLeastOneModel(t *testing.T) {
	for _, brand := range []Brand{Furuno, Navico, Raymarine, Garmin} {
		assert.NotEmptyf(t, ListForBrand(brand), "brand %s has no registered models", brand)
	}
}

// TestLookup_IsPureAndStable guards against a registry lookup that hands
// back shared, mutable state: two Lookups of the same model must be
// structurally identical, diffed field-by-field rather than via a single
// Equal assertion so a future regression names the exact field that drifted.
func TestLookup_IsPureAndStable(t *testing.T) {
	a := Lookup(Navico, "HALO24")
	b := Lookup(Navico, "HALO24")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Lookup(Navico, HALO24) not stable across calls (-first +second):\n%s", diff)
	}
}
