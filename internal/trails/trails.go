// Package trails implements spec.md §4.9's trail store: a radar-sized
// polar grid of scalar intensities that accumulates spoke maxima and
// decays over time with a configurable half-life. Grounded in the
// teacher's internal/lidar/l3grid package, which maintains an identical
// decaying-accumulation occupancy grid over LIDAR frames; here the grid is
// polar (angle x range bucket) rather than Cartesian.
package trails

import (
	"math"

	"github.com/dirkwa/mayara/internal/core"
)

// Store is one radar's decaying polar-grid trail history (spec.md §4.9:
// "Fully owned per radar; resets on radar restart or user clear").
type Store struct {
	angleBuckets int
	rangeBuckets int
	halfLifeMs   float64

	cells     []float64 // angleBuckets * rangeBuckets, row-major by angle
	lastDecay int64     // -1 until a first spoke sets the reference time
}

// New creates a trail store sized to the radar's effective spoke geometry.
// halfLifeMs configures the exponential decay rate (spec.md §4.9:
// "a configurable half-life").
func New(angleBuckets, rangeBuckets int, halfLifeMs float64) *Store {
	return &Store{
		angleBuckets: angleBuckets,
		rangeBuckets: rangeBuckets,
		halfLifeMs:   halfLifeMs,
		cells:        make([]float64, angleBuckets*rangeBuckets),
		lastDecay:    -1,
	}
}

// OnSpoke implements spoke.Consumer: accumulate this spoke's pixels into
// the corresponding angle row by max (spec.md §4.9: "accumulates spoke
// maxima").
func (s *Store) OnSpoke(sp core.Spoke) {
	if sp.AngleIndex < 0 || sp.AngleIndex >= s.angleBuckets {
		return
	}
	s.decay(sp.TimestampMs)
	row := sp.AngleIndex * s.rangeBuckets
	n := len(sp.Intensity)
	if n > s.rangeBuckets {
		n = s.rangeBuckets
	}
	for i := 0; i < n; i++ {
		v := float64(sp.Intensity[i])
		if v > s.cells[row+i] {
			s.cells[row+i] = v
		}
	}
}

// decay applies exponential half-life decay to every cell, advancing the
// clock to nowMs. No-op until a first spoke establishes a reference time.
func (s *Store) decay(nowMs int64) {
	if s.lastDecay < 0 {
		s.lastDecay = nowMs
		return
	}
	elapsed := float64(nowMs - s.lastDecay)
	if elapsed <= 0 || s.halfLifeMs <= 0 {
		return
	}
	factor := math.Pow(0.5, elapsed/s.halfLifeMs)
	for i := range s.cells {
		s.cells[i] *= factor
	}
	s.lastDecay = nowMs
}

// Snapshot returns the current decayed grid as angleBuckets rows of
// rangeBuckets scalar intensities, for host consumption (get_trails).
func (s *Store) Snapshot(nowMs int64) [][]float64 {
	s.decay(nowMs)
	out := make([][]float64, s.angleBuckets)
	for a := 0; a < s.angleBuckets; a++ {
		row := make([]float64, s.rangeBuckets)
		copy(row, s.cells[a*s.rangeBuckets:(a+1)*s.rangeBuckets])
		out[a] = row
	}
	return out
}

// Clear resets all history (spec.md §4.9: "resets on radar restart or
// user clear").
func (s *Store) Clear() {
	for i := range s.cells {
		s.cells[i] = 0
	}
	s.lastDecay = -1
}
