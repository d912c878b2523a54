package model

func init() {
	register(
		Info{
			Brand:               Furuno,
			Model:                "DRS4D-NXT",
			Family:               "DRS-NXT",
			DisplayName:          "Furuno DRS4D-NXT",
			MinRangeMeters:       25,
			MaxRangeMeters:       72000,
			RangeTableMeters:     []int{25, 50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 24000, 36000, 48000, 72000},
			SpokesPerRevolution:  2048,
			MaxSpokeLength:       1024,
			Features:             Features{HasDoppler: true},
			ExtendedControlIDs:   []string{"fastScan", "noiseRejection", "targetAnalyzer", "echoTrail", "presetMode"},
		},
		Info{
			Brand:               Furuno,
			Model:                "DRS6A-NXT",
			Family:               "DRS-NXT",
			DisplayName:          "Furuno DRS6A-NXT",
			MinRangeMeters:       25,
			MaxRangeMeters:       96000,
			RangeTableMeters:     []int{25, 50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 24000, 36000, 48000, 72000, 96000},
			SpokesPerRevolution:  2048,
			MaxSpokeLength:       1024,
			Features:             Features{HasDoppler: true},
			ExtendedControlIDs:   []string{"fastScan", "noiseRejection", "targetAnalyzer", "echoTrail", "presetMode"},
		},
	)
}
