package schema

import "github.com/dirkwa/mayara/internal/model"

// Characteristics is the manifest's read-only description of the radar's
// physical/protocol capabilities (spec.md §3 CapabilityManifest.characteristics).
type Characteristics struct {
	MinRangeMeters      int
	MaxRangeMeters      int
	RangeTableMeters    []int
	SpokesPerRevolution int
	MaxSpokeLength      int
	Features            model.Features
}

// Manifest is spec.md §3's CapabilityManifest: "The GUI and API clients
// consume this verbatim."
type Manifest struct {
	ID             string
	Make           model.Brand
	Model          string
	ModelFamily    model.Family
	SerialNumber   string
	FirmwareVersion string

	Characteristics Characteristics
	Controls        []Definition
	Constraints     []Constraint
}

// BuildManifest composes a CapabilityManifest from a Discovery, per
// spec.md §4.3: "The capability builder composes a CapabilityManifest from
// a RadarDiscovery: it resolves the ModelInfo, emits characteristics from
// it, materializes control definitions from the ids, and emits constraints
// for composite modes."
//
// firmwareVersion is optional (empty string if not yet known); it is
// supplied by the controller once a report reveals it, not by the
// discovery itself.
func BuildManifest(d model.Discovery, firmwareVersion string) Manifest {
	info := model.Lookup(d.Brand, d.Model)
	ids := AllControlsForModel(d.Brand, info)

	controls := make([]Definition, 0, len(ids))
	for _, id := range ids {
		if def, ok := Lookup(id); ok {
			controls = append(controls, def)
		}
		// Invariant (spec.md §8 #1) is that every id DOES resolve; a miss
		// here means the model table references an unregistered control,
		// which schema_test.go catches independently of any live manifest.
	}

	return Manifest{
		ID:              d.Key,
		Make:            d.Brand,
		Model:           info.Model,
		ModelFamily:     info.Family,
		SerialNumber:    d.Serial,
		FirmwareVersion: firmwareVersion,
		Characteristics: Characteristics{
			MinRangeMeters:      info.MinRangeMeters,
			MaxRangeMeters:      info.MaxRangeMeters,
			RangeTableMeters:    info.RangeTableMeters,
			SpokesPerRevolution: info.SpokesPerRevolution,
			MaxSpokeLength:      info.MaxSpokeLength,
			Features:            info.Features,
		},
		Controls:    controls,
		Constraints: ConstraintsForControls(ids),
	}
}
