package model

func init() {
	register(
		Info{
			Brand:               Garmin,
			Model:                "HD",
			Family:               "HD",
			DisplayName:          "Garmin HD radome",
			MinRangeMeters:       50,
			MaxRangeMeters:       36000,
			RangeTableMeters:     []int{50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 24000, 36000},
			SpokesPerRevolution:  1440,
			MaxSpokeLength:       512,
			Features:             Features{NoTransmitZoneCount: 1},
			ExtendedControlIDs:   []string{"bearingAlignment", "noTransmitZone"},
		},
		Info{
			Brand:               Garmin,
			Model:                "xHD",
			Family:               "xHD",
			DisplayName:          "Garmin xHD open array",
			MinRangeMeters:       50,
			MaxRangeMeters:       72000,
			RangeTableMeters:     []int{50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 24000, 36000, 48000, 72000},
			SpokesPerRevolution:  2048,
			MaxSpokeLength:       512,
			Features:             Features{NoTransmitZoneCount: 2},
			ExtendedControlIDs:   []string{"bearingAlignment", "noTransmitZone", "targetSeparation"},
		},
	)
}
