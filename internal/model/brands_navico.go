package model

func init() {
	register(
		Info{
			Brand:               Navico,
			Model:                "BR24",
			Family:               "BR24",
			DisplayName:          "Navico Broadband 4G BR24",
			MinRangeMeters:       50,
			MaxRangeMeters:       24000,
			RangeTableMeters:     []int{50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 24000},
			SpokesPerRevolution:  2048,
			MaxSpokeLength:       512,
			Features:             Features{},
			ExtendedControlIDs:   []string{"seaClutter", "rainClutter", "interferenceRejection", "targetExpansion"},
		},
		Info{
			Brand:               Navico,
			Model:                "3G",
			Family:               "3G",
			DisplayName:          "Navico Broadband 3G",
			MinRangeMeters:       50,
			MaxRangeMeters:       36000,
			RangeTableMeters:     []int{50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 24000, 36000},
			SpokesPerRevolution:  2048,
			MaxSpokeLength:       512,
			Features:             Features{},
			ExtendedControlIDs:   []string{"seaClutter", "rainClutter", "interferenceRejection", "targetExpansion", "targetSeparation"},
		},
		Info{
			Brand:               Navico,
			Model:                "4G",
			Family:               "4G",
			DisplayName:          "Navico Broadband 4G",
			MinRangeMeters:       50,
			MaxRangeMeters:       48000,
			RangeTableMeters:     []int{50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 24000, 36000, 48000},
			SpokesPerRevolution:  2048,
			MaxSpokeLength:       512,
			Features:             Features{HasDualRange: true},
			ExtendedControlIDs:   []string{"seaClutter", "rainClutter", "interferenceRejection", "targetExpansion", "targetSeparation", "dualRange"},
		},
		Info{
			Brand:               Navico,
			Model:                "HALO20",
			Family:               "HALO",
			DisplayName:          "Navico HALO20",
			MinRangeMeters:       50,
			MaxRangeMeters:       36000,
			RangeTableMeters:     []int{50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 24000, 36000},
			SpokesPerRevolution:  4096,
			MaxSpokeLength:       1024,
			Features:             Features{HasDoppler: true},
			ExtendedControlIDs:   []string{"seaClutter", "rainClutter", "interferenceRejection", "targetExpansion", "doppler", "dopplerThreshold", "bearingAlignment"},
		},
		Info{
			Brand:               Navico,
			Model:                "HALO24",
			Family:               "HALO",
			DisplayName:          "Navico HALO24",
			MinRangeMeters:       50,
			MaxRangeMeters:       48000,
			RangeTableMeters:     []int{50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 24000, 36000, 48000},
			SpokesPerRevolution:  4096,
			MaxSpokeLength:       1024,
			Features:             Features{HasDoppler: true, HasDualRange: true},
			ExtendedControlIDs:   []string{"seaClutter", "rainClutter", "interferenceRejection", "targetExpansion", "doppler", "dopplerThreshold", "bearingAlignment", "dualRange"},
		},
	)
}
