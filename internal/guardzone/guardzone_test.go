package guardzone

import (
	"testing"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spokeAt(angleIndex int, rangeMeters float64, intensity []byte, tsMs int64) core.Spoke {
	return core.Spoke{
		AngleIndex:  angleIndex,
		RangeMeters: rangeMeters,
		Intensity:   intensity,
		TimestampMs: tsMs,
	}
}

func TestOnSpoke_QualifyingReturnTriggersZoneEntered(t *testing.T) {
	p := New("radar-1", 360)
	p.SetZone(core.GuardZone{
		ID: "z1", Enabled: true,
		StartDeg: 10, EndDeg: 20,
		InnerRadiusMeters: 0, OuterRadiusMeters: 100,
		AlarmIntensityThreshold: 200,
	})

	p.OnSpoke(spokeAt(15, 100, []byte{10, 20, 210}, 0))

	events := p.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.ZoneEntered, events[0].Kind)
	assert.Equal(t, "z1", events[0].ZoneID)
}

func TestOnSpoke_NoDuplicateEventsWhileActive(t *testing.T) {
	p := New("radar-1", 360)
	p.SetZone(core.GuardZone{
		ID: "z1", Enabled: true,
		StartDeg: 10, EndDeg: 20,
		InnerRadiusMeters: 0, OuterRadiusMeters: 100,
		AlarmIntensityThreshold: 200,
	})

	p.OnSpoke(spokeAt(15, 100, []byte{210}, 0))
	p.OnSpoke(spokeAt(15, 100, []byte{210}, 100))
	p.OnSpoke(spokeAt(15, 100, []byte{210}, 200))

	events := p.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.ZoneEntered, events[0].Kind)
}

func TestOnSpoke_ZoneClearedAfterDebounce(t *testing.T) {
	p := New("radar-1", 360)
	p.SetZone(core.GuardZone{
		ID: "z1", Enabled: true,
		StartDeg: 10, EndDeg: 20,
		InnerRadiusMeters: 0, OuterRadiusMeters: 100,
		AlarmIntensityThreshold: 200,
	})

	p.OnSpoke(spokeAt(15, 100, []byte{210}, 0))
	_ = p.DrainEvents()

	// quiet return, still inside debounce window
	p.OnSpoke(spokeAt(15, 100, []byte{10}, 500))
	require.Empty(t, p.DrainEvents())

	// quiet return past the debounce window
	p.OnSpoke(spokeAt(15, 100, []byte{10}, DebounceMs+1))
	events := p.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.ZoneCleared, events[0].Kind)
}

func TestOnSpoke_WrapAroundZoneHonored(t *testing.T) {
	p := New("radar-1", 360)
	p.SetZone(core.GuardZone{
		ID: "z1", Enabled: true,
		StartDeg: 350, EndDeg: 10,
		InnerRadiusMeters: 0, OuterRadiusMeters: 100,
		AlarmIntensityThreshold: 200,
	})

	p.OnSpoke(spokeAt(355, 100, []byte{210}, 0))
	require.Len(t, p.DrainEvents(), 1)

	p.OnSpoke(spokeAt(180, 100, []byte{210}, 100))
	assert.Empty(t, p.DrainEvents())
}

func TestOnSpoke_DisabledZoneIgnored(t *testing.T) {
	p := New("radar-1", 360)
	p.SetZone(core.GuardZone{
		ID: "z1", Enabled: false,
		StartDeg: 0, EndDeg: 360,
		InnerRadiusMeters: 0, OuterRadiusMeters: 100,
		AlarmIntensityThreshold: 1,
	})

	p.OnSpoke(spokeAt(0, 100, []byte{255}, 0))
	assert.Empty(t, p.DrainEvents())
}

func TestOnSpoke_OutsideRangeWindowDoesNotQualify(t *testing.T) {
	p := New("radar-1", 360)
	p.SetZone(core.GuardZone{
		ID: "z1", Enabled: true,
		StartDeg: 0, EndDeg: 360,
		InnerRadiusMeters: 50, OuterRadiusMeters: 60,
		AlarmIntensityThreshold: 1,
	})

	// 100m spread over 10 pixels -> 10m/bucket; a strong return at bucket 0 (0-10m) is outside [50,60]
	p.OnSpoke(spokeAt(0, 100, []byte{255, 0, 0, 0, 0, 0, 0, 0, 0, 0}, 0))
	assert.Empty(t, p.DrainEvents())
}

func TestRemoveZone_StopsTracking(t *testing.T) {
	p := New("radar-1", 360)
	p.SetZone(core.GuardZone{ID: "z1", Enabled: true, StartDeg: 0, EndDeg: 360, OuterRadiusMeters: 100, AlarmIntensityThreshold: 1})
	p.RemoveZone("z1")
	p.OnSpoke(spokeAt(0, 100, []byte{255}, 0))
	assert.Empty(t, p.DrainEvents())
	assert.Empty(t, p.Zones())
}
