// Package model holds the statically compiled table of supported radars
// (spec.md §4.2). It is grounded in the teacher's radar/commands.go style of
// a flat, hand-curated table (there: an allow-list of ASCII sensor
// commands; here: a table of (brand, model) -> characteristics) and in
// internal/config.TuningConfig's "single source of truth" comment style.
package model

// Brand is the closed set of supported radar manufacturers (spec.md §3).
type Brand string

const (
	Furuno    Brand = "Furuno"
	Navico    Brand = "Navico"
	Raymarine Brand = "Raymarine"
	Garmin    Brand = "Garmin"
)

// String returns the stable wire-level identifier used in public payloads.
func (b Brand) String() string { return string(b) }

// Family groups models that share a wire protocol generation, e.g. Navico's
// BR24 vs 3G vs 4G vs HALO.
type Family string

// Features is the set of boolean capability flags spec.md §3 lists on
// ModelInfo.
type Features struct {
	HasDoppler         bool
	HasDualRange       bool
	NoTransmitZoneCount int
}

// Info is the immutable per-(brand,model) record spec.md §3 calls ModelInfo.
type Info struct {
	Brand       Brand
	Model       string
	Family      Family
	DisplayName string

	MinRangeMeters int
	MaxRangeMeters int
	// RangeTableMeters is ordered ascending; set_control("range", v) only
	// accepts values present here (spec.md §8 boundary behaviors).
	RangeTableMeters []int

	SpokesPerRevolution int
	MaxSpokeLength      int

	Features Features

	// ExtendedControlIDs is the set of EXTENDED control ids valid for this
	// model (spec.md §4.2); BASE controls are implicit for every radar.
	ExtendedControlIDs []string
}

// UnknownModel is the sentinel spec.md §3 requires: "a sentinel
// UNKNOWN_MODEL provides safe defaults when a radar announces before its
// model is identified." It carries only BASE controls and a conservative
// range table so a capability manifest can still be emitted (spec.md §8:
// "Unknown model at discovery time").
var UnknownModel = Info{
	Brand:               "",
	Model:                "",
	Family:               "",
	DisplayName:          "Unknown radar",
	MinRangeMeters:       50,
	MaxRangeMeters:       24000,
	RangeTableMeters:     []int{50, 125, 250, 500, 1000, 2000, 4000, 8000, 16000, 24000},
	SpokesPerRevolution:  2048,
	MaxSpokeLength:       512,
	Features:             Features{},
	ExtendedControlIDs:   nil,
}

// table is keyed by brand+model for O(1) lookup; built once at init from the
// per-brand tables in brands_*.go.
var table = map[Brand]map[string]Info{}

func register(infos ...Info) {
	for _, info := range infos {
		m, ok := table[info.Brand]
		if !ok {
			m = map[string]Info{}
			table[info.Brand] = m
		}
		m[info.Model] = info
	}
}

// Lookup resolves (brand, model) to its Info, or UnknownModel if not found.
func Lookup(brand Brand, modelName string) Info {
	if m, ok := table[brand]; ok {
		if info, ok := m[modelName]; ok {
			return info
		}
	}
	return UnknownModel
}

// ListForBrand returns every known model for brand. The order of the
// returned slice is not defined.
func ListForBrand(brand Brand) []Info {
	m := table[brand]
	out := make([]Info, 0, len(m))
	for _, info := range m {
		out = append(out, info)
	}
	return out
}
