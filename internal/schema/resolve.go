package schema

import "github.com/dirkwa/mayara/internal/model"

// ExtendedControlsForModel returns info.ExtendedControlIDs, in the stable
// order ModelInfo lists them (spec.md §4.3).
func ExtendedControlsForModel(info model.Info) []string {
	out := make([]string, len(info.ExtendedControlIDs))
	copy(out, info.ExtendedControlIDs)
	return out
}

// AllControlsForModel returns base + extended ids, in stable order: base
// first (spec.md §4.3: "base_controls_for_brand(brand)", "all_controls_for_model
// (brand, model) (base + extended ids from ModelInfo, in stable order)").
func AllControlsForModel(brand model.Brand, info model.Info) []string {
	base := BaseControlsForBrand(brand)
	ext := ExtendedControlsForModel(info)
	out := make([]string, 0, len(base)+len(ext))
	out = append(out, base...)
	out = append(out, ext...)
	return out
}
