package core

// GuardZone is spec.md §3's user-defined angular+range sector.
type GuardZone struct {
	ID      string
	Enabled bool

	// StartDeg/EndDeg is a half-open window; wrap-around through 0 is
	// allowed (spec.md §3, §8: "a guard zone from 350 to 10 covers spokes
	// at 355 and 5 but not 180").
	StartDeg float64
	EndDeg   float64

	InnerRadiusMeters float64
	OuterRadiusMeters float64

	AlarmIntensityThreshold byte
}

// ContainsAngle reports whether angleDeg (expected in [0,360)) lies within
// the zone's angular window, handling wrap-around.
func (z GuardZone) ContainsAngle(angleDeg float64) bool {
	start, end := z.StartDeg, z.EndDeg
	if start <= end {
		return angleDeg >= start && angleDeg < end
	}
	// wraps through 0
	return angleDeg >= start || angleDeg < end
}
