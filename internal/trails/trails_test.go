package trails

import (
	"math"
	"testing"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestOnSpoke_AccumulatesByMax(t *testing.T) {
	s := New(4, 4, 10000)
	s.OnSpoke(core.Spoke{AngleIndex: 0, Intensity: []byte{10, 20}, TimestampMs: 0})
	s.OnSpoke(core.Spoke{AngleIndex: 0, Intensity: []byte{5, 30}, TimestampMs: 1})
	snap := s.Snapshot(1)
	// the first spoke's value has decayed for 1 ms of the 10 s half-life
	assert.Equal(t, 10.0*math.Pow(0.5, 1.0/10000), snap[0][0])
	assert.Equal(t, 30.0, snap[0][1])
}

func TestDecay_HalvesAtHalfLife(t *testing.T) {
	s := New(1, 1, 1000)
	s.OnSpoke(core.Spoke{AngleIndex: 0, Intensity: []byte{100}, TimestampMs: 0})
	snap := s.Snapshot(1000)
	assert.InDelta(t, 50.0, snap[0][0], 0.01)
}

func TestClear_ResetsHistory(t *testing.T) {
	s := New(1, 1, 1000)
	s.OnSpoke(core.Spoke{AngleIndex: 0, Intensity: []byte{100}, TimestampMs: 0})
	s.Clear()
	snap := s.Snapshot(0)
	assert.Equal(t, 0.0, snap[0][0])
}
