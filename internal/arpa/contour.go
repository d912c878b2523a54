// Package arpa implements spec.md §4.8's ARPA tracker: contour detection
// over a full revolution of spokes, track correlation/gating, a linear
// Kalman filter per track, acquisition/loss lifecycle, and edge-triggered
// CPA/TCPA collision warnings. Grounded in the teacher's
// internal/lidar/tracking.go multi-object tracker (predict/associate/update
// steps, Hits/Misses confirmation counters) and internal/lidar/l4perception
// (connected-region contour extraction over a sampled grid); the Kalman
// math here uses gonum.org/v1/gonum/mat in place of the teacher's
// hand-unrolled 4x4 arrays.
package arpa

import "github.com/dirkwa/mayara/internal/core"

// Candidate is one contour's polar centroid, a candidate target position.
type Candidate struct {
	BearingDeg     float64
	DistanceMeters float64
	PixelCount     int
	MeanIntensity  float64
}

// ContourConfig holds the thresholds spec.md §4.8 calls "parameters drawn
// from ARPA settings: min-size, intensity threshold" and leaves as
// "informally defaulted... implementations should make them explicit
// configuration with documented defaults" (spec.md §8 Open Questions).
type ContourConfig struct {
	MinIntensity byte
	MinPixels    int
}

// DefaultContourConfig documents the defaults this implementation pins for
// the open question above.
func DefaultContourConfig() ContourConfig {
	return ContourConfig{MinIntensity: 180, MinPixels: 3}
}

type cell struct {
	angleIdx, rangeIdx int
	intensity          byte
}

// DetectContours runs one full-revolution connected-region pass over the
// buffered spokes (spec.md §4.8: "On each full-revolution pass, identify
// connected regions of sufficient intensity and size"). spokes must be
// ordered by AngleIndex and represent exactly one revolution.
func DetectContours(spokes []core.Spoke, cfg ContourConfig) []Candidate {
	if len(spokes) == 0 {
		return nil
	}
	angleCount := len(spokes)
	grid := make(map[int]byte) // key = angleIdx*stride + rangeIdx
	stride := 0
	for _, s := range spokes {
		if len(s.Intensity) > stride {
			stride = len(s.Intensity)
		}
	}
	if stride == 0 {
		return nil
	}
	metersPerBucket := make([]float64, angleCount)
	for ai, s := range spokes {
		if len(s.Intensity) == 0 {
			continue
		}
		metersPerBucket[ai] = s.RangeMeters / float64(len(s.Intensity))
		for ri, v := range s.Intensity {
			if v >= cfg.MinIntensity {
				grid[ai*stride+ri] = v
			}
		}
	}

	visited := make(map[int]bool, len(grid))
	var candidates []Candidate
	for key := range grid {
		if visited[key] {
			continue
		}
		component := floodFill(grid, visited, key, stride, angleCount)
		if len(component) < cfg.MinPixels {
			continue
		}
		candidates = append(candidates, centroidOf(component, stride, metersPerBucket, angleCount))
	}
	return candidates
}

// floodFill walks 4-connected neighbors (angle wraps through 0) collecting
// every cell belonging to this component.
func floodFill(grid map[int]byte, visited map[int]bool, start, stride, angleCount int) []cell {
	var out []cell
	stack := []int{start}
	visited[start] = true
	for len(stack) > 0 {
		key := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ai, ri := key/stride, key%stride
		out = append(out, cell{angleIdx: ai, rangeIdx: ri, intensity: grid[key]})

		neighbors := [4][2]int{
			{(ai + 1) % angleCount, ri},
			{(ai - 1 + angleCount) % angleCount, ri},
			{ai, ri + 1},
			{ai, ri - 1},
		}
		for _, n := range neighbors {
			if n[1] < 0 {
				continue
			}
			nk := n[0]*stride + n[1]
			if _, ok := grid[nk]; !ok || visited[nk] {
				continue
			}
			visited[nk] = true
			stack = append(stack, nk)
		}
	}
	return out
}

func centroidOf(component []cell, stride int, metersPerBucket []float64, angleCount int) Candidate {
	var sumIntensity float64
	var sumBearing, sumDistance float64
	for _, c := range component {
		mpb := metersPerBucket[c.angleIdx]
		distance := (float64(c.rangeIdx) + 0.5) * mpb
		bearing := float64(c.angleIdx) * 360.0 / float64(angleCount)
		sumBearing += bearing
		sumDistance += distance
		sumIntensity += float64(c.intensity)
	}
	n := float64(len(component))
	return Candidate{
		BearingDeg:     sumBearing / n,
		DistanceMeters: sumDistance / n,
		PixelCount:     len(component),
		MeanIntensity:  sumIntensity / n,
	}
}
