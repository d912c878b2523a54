package schema

// Extended control definitions. Every id referenced by any model.Info in
// internal/model/brands_*.go MUST be registered here — spec.md §8
// invariant 1, enforced by schema_test.go's cross-check against the model
// table.
func init() {
	define(Definition{
		ID: "interferenceRejection", Name: "Interference rejection",
		Description: "Rejects interference from other radars on the same band.",
		Category:    CategoryExtended, Kind: KindEnum,
		Enum: []EnumValue{{Value: "off"}, {Value: "low"}, {Value: "medium"}, {Value: "high"}},
	})
	define(Definition{
		ID: "targetExpansion", Name: "Target expansion",
		Description: "Enlarges small target returns for visibility at long range.",
		Category:    CategoryExtended, Kind: KindBoolean,
	})
	define(Definition{
		ID: "targetSeparation", Name: "Target separation",
		Description: "Controls how aggressively adjacent returns are merged or split.",
		Category:    CategoryExtended, Kind: KindEnum,
		Enum: []EnumValue{{Value: "off"}, {Value: "low"}, {Value: "medium"}, {Value: "high"}},
	})
	define(Definition{
		ID: "dualRange", Name: "Dual range",
		Description: "Enables simultaneous A/B channel transmission at two range scales.",
		Category:    CategoryExtended, Kind: KindBoolean,
	})
	define(Definition{
		ID: "doppler", Name: "Doppler mode",
		Description: "Colorizes approaching/receding returns using reserved pixel codes.",
		Category:    CategoryExtended, Kind: KindEnum,
		Enum: []EnumValue{{Value: "off"}, {Value: "normal"}, {Value: "approaching"}},
	})
	define(Definition{
		ID: "dopplerThreshold", Name: "Doppler speed threshold",
		Description: "Minimum closing/opening speed before a return is colorized.",
		Category:    CategoryExtended, Kind: KindNumber,
		Range: &Range{Min: 0, Max: 30, Step: 0.5, Unit: "m/s"},
	})
	define(Definition{
		ID: "bearingAlignment", Name: "Bearing alignment",
		Description: "Offset applied to correct scanner mounting rotation.",
		Category:    CategoryInstallation, Kind: KindNumber,
		Range: &Range{Min: -180, Max: 180, Step: 0.1, Unit: "deg"},
	})
	define(Definition{
		ID: "fastScan", Name: "Fast scan",
		Description: "Increases rotation speed at the cost of sensitivity.",
		Category:    CategoryExtended, Kind: KindBoolean,
	})
	define(Definition{
		ID: "noiseRejection", Name: "Noise rejection",
		Description: "Furuno's adaptive receiver-noise suppression.",
		Category:    CategoryExtended, Kind: KindEnum,
		Enum: []EnumValue{{Value: "off"}, {Value: "low"}, {Value: "medium"}, {Value: "high"}},
	})
	define(Definition{
		ID: "targetAnalyzer", Name: "Target analyzer",
		Description: "Furuno's return-strength colorization overlay.",
		Category:    CategoryExtended, Kind: KindBoolean,
	})
	define(Definition{
		ID: "echoTrail", Name: "Echo trail",
		Description: "On-radar trail rendering time, separate from the core's own trail store.",
		Category:    CategoryExtended, Kind: KindEnum,
		Enum: []EnumValue{{Value: "off"}, {Value: "15s"}, {Value: "30s"}, {Value: "1min"}, {Value: "3min"}},
	})
	define(Definition{
		ID: "presetMode", Name: "Preset mode",
		Description: "Composite operating mode; selecting a non-custom preset locks gain/sea/rain/interference (see constraints).",
		Category:    CategoryExtended, Kind: KindEnum,
		Enum:        []EnumValue{{Value: "custom"}, {Value: "harbor"}, {Value: "offshore"}, {Value: "weather"}, {Value: "bird"}},
		Modes:       []string{"custom", "harbor", "offshore", "weather", "bird"},
		DefaultMode: "custom",
	})
	define(Definition{
		ID: "targetBoost", Name: "Target boost",
		Description: "Raymarine return amplification for small/distant targets.",
		Category:    CategoryExtended, Kind: KindEnum,
		Enum: []EnumValue{{Value: "off"}, {Value: "low"}, {Value: "high"}},
	})
	define(Definition{
		ID: "wakeAlarm", Name: "Wake alarm",
		Description: "Raymarine Quantum proximity alarm independent of the core's guard zones.",
		Category:    CategoryExtended, Kind: KindBoolean,
	})
	define(Definition{
		ID: "mode", Name: "Scan mode",
		Description: "Raymarine Quantum's harbor/coastal/offshore/weather scan profile.",
		Category:    CategoryExtended, Kind: KindEnum,
		Enum: []EnumValue{{Value: "harbor"}, {Value: "coastal"}, {Value: "offshore"}, {Value: "weather"}},
	})
	define(Definition{
		ID: "noTransmitZones", Name: "No-transmit zones",
		Description: "Raymarine RD angular sectors where the magnetron is blanked.",
		Category:    CategoryInstallation, Kind: KindNumber,
		Range: &Range{Min: 0, Max: 359, Step: 1, Unit: "deg"},
	})
	define(Definition{
		ID: "noTransmitZone", Name: "No-transmit zone",
		Description: "Garmin angular sector where transmission is blanked; encoded on the wire as degrees x 32.",
		Category:    CategoryInstallation, Kind: KindNumber,
		Range: &Range{Min: 0, Max: 359, Step: 1, Unit: "deg"},
	})
}
