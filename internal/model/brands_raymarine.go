package model

func init() {
	register(
		Info{
			Brand:               Raymarine,
			Model:                "Quantum",
			Family:               "Quantum",
			DisplayName:          "Raymarine Quantum Q24",
			MinRangeMeters:       50,
			MaxRangeMeters:       36000,
			RangeTableMeters:     []int{50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 24000, 36000},
			SpokesPerRevolution:  1024,
			MaxSpokeLength:       512,
			Features:             Features{HasDoppler: true},
			ExtendedControlIDs:   []string{"targetBoost", "wakeAlarm", "mode"},
		},
		Info{
			Brand:               Raymarine,
			Model:                "RD424",
			Family:               "RD",
			DisplayName:          "Raymarine RD424",
			MinRangeMeters:       50,
			MaxRangeMeters:       48000,
			RangeTableMeters:     []int{50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 24000, 36000, 48000},
			SpokesPerRevolution:  2048,
			MaxSpokeLength:       512,
			Features:             Features{NoTransmitZoneCount: 2},
			ExtendedControlIDs:   []string{"targetBoost", "noTransmitZones"},
		},
	)
}
