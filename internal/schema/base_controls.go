package schema

import "github.com/dirkwa/mayara/internal/model"

// BaseControlIDs are implicit for every radar regardless of brand or model
// (spec.md §3, §4.2: "BASE controls (power, range, gain, sea, rain) are
// implicit for every radar").
var BaseControlIDs = []string{"power", "range", "gain", "sea", "rain"}

func init() {
	define(Definition{
		ID:          "power",
		Name:        "Power state",
		Description: "Transmit power state of the radar scanner.",
		Category:    CategoryBase,
		Kind:        KindEnum,
		// Only standby/transmit are valid SET targets (spec.md §3 invariant:
		// "off and warming are read-only states — clients may only set
		// {standby, transmit}"); off/warming appear so a client can render
		// them but attempting to set them is rejected by the controller.
		Enum: []EnumValue{
			{Value: "off", Label: "Off", ReadOnly: true},
			{Value: "standby", Label: "Standby"},
			{Value: "warming", Label: "Warming up", ReadOnly: true},
			{Value: "transmit", Label: "Transmit"},
		},
	})

	define(Definition{
		ID:          "range",
		Name:        "Range",
		Description: "Displayed range scale in meters; must match an entry in the model's range table.",
		Category:    CategoryBase,
		Kind:        KindNumber,
		Range:       &Range{Unit: "m"},
	})

	define(Definition{
		ID:          "gain",
		Name:        "Gain",
		Description: "Receiver gain; auto or manual with a 0-100% value.",
		Category:    CategoryBase,
		Kind:        KindCompound,
		Compound: map[string]Definition{
			"mode":  {ID: "gain.mode", Kind: KindEnum, Enum: []EnumValue{{Value: "auto"}, {Value: "manual"}}},
			"value": {ID: "gain.value", Kind: KindNumber, Range: &Range{Min: 0, Max: 100, Step: 1, Unit: "%"}},
		},
	})

	define(Definition{
		ID:          "sea",
		Name:        "Sea clutter",
		Description: "Sea clutter suppression; auto or manual with a 0-100% value.",
		Category:    CategoryBase,
		Kind:        KindCompound,
		Compound: map[string]Definition{
			"mode":  {ID: "sea.mode", Kind: KindEnum, Enum: []EnumValue{{Value: "auto"}, {Value: "manual"}}},
			"value": {ID: "sea.value", Kind: KindNumber, Range: &Range{Min: 0, Max: 100, Step: 1, Unit: "%"}},
		},
	})

	define(Definition{
		ID:          "rain",
		Name:        "Rain clutter",
		Description: "Rain/FTC clutter suppression, 0-100%.",
		Category:    CategoryBase,
		Kind:        KindNumber,
		Range:       &Range{Min: 0, Max: 100, Step: 1, Unit: "%"},
	})
}

// BaseControlsForBrand returns BaseControlIDs — base controls don't vary by
// brand, but the helper exists to mirror spec.md §4.3's named accessor and
// to be the single call site schema.AllControlsForModel composes through.
func BaseControlsForBrand(_ model.Brand) []string {
	out := make([]string, len(BaseControlIDs))
	copy(out, BaseControlIDs)
	return out
}
