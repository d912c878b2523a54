package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirkwa/mayara/internal/model"
)

// TestEveryExtendedControlIDIsDefined is spec.md §8 invariant 1: "For all
// (brand, model) pairs in the model database, every extended-control id in
// ModelInfo appears as a key in the control-definition table."
func TestEveryExtendedControlIDIsDefined(t *testing.T) {
	for _, brand := range []model.Brand{model.Furuno, model.Navico, model.Raymarine, model.Garmin} {
		for _, info := range model.ListForBrand(brand) {
			for _, id := range info.ExtendedControlIDs {
				_, ok := Lookup(id)
				assert.Truef(t, ok, "%s %s references undefined control id %q", brand, info.Model, id)
			}
		}
	}
}

func TestBuildManifest_UnknownModelHasOnlyBaseControls(t *testing.T) {
	d := model.Discovery{Key: "Navico-unknown-ip", Brand: model.Navico, Model: ""}
	m := BuildManifest(d, "")
	require.Len(t, m.Controls, len(BaseControlIDs))
	for _, c := range m.Controls {
		assert.Equal(t, CategoryBase, c.Category)
	}
}

func TestBuildManifest_KnownModelHasBaseAndExtended(t *testing.T) {
	d := model.Discovery{Key: "Navico-123", Brand: model.Navico, Model: "HALO24", Serial: "123"}
	m := BuildManifest(d, "")
	assert.Equal(t, len(BaseControlIDs)+len(model.Lookup(model.Navico, "HALO24").ExtendedControlIDs), len(m.Controls))
	assert.True(t, m.Characteristics.Features.HasDoppler)
}

func TestPresetModeLocksCompanionControls(t *testing.T) {
	ids := AllControlsForModel(model.Furuno, model.Lookup(model.Furuno, "DRS4D-NXT"))
	constraints := ConstraintsForControls(ids)
	require.NotEmpty(t, constraints)
	for _, c := range constraints {
		assert.Equal(t, "presetMode", c.WhenControl)
		assert.Equal(t, OpNotEquals, c.Operator)
		assert.Equal(t, "custom", c.Value)
		assert.True(t, c.Disabled)
	}
}
