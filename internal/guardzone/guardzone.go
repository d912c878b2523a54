// Package guardzone implements spec.md §4.9's guard-zone processor: for
// each enabled zone and each arriving spoke, test angular containment
// (wrap-aware) and whether any pixel within the zone's range window
// exceeds its alarm threshold, firing rising-edge debounced alerts.
// Grounded in the teacher's internal/lidar/l4perception package, which
// runs an equivalent per-region threshold test over accumulated grid
// cells; here the test runs directly against each incoming spoke.
package guardzone

import (
	"github.com/dirkwa/mayara/internal/core"
)

// DebounceMs is how long a zone must stay quiescent before a new
// ZoneEntered can fire again (spec.md §4.9: "no additional event fires
// until the zone returns to quiescent for a debounce period").
const DebounceMs = 2000

type zoneTracking struct {
	zone          core.GuardZone
	active        bool
	lastQualifyMs int64
}

// Processor owns the live guard-zone set for one radar.
type Processor struct {
	radarID             string
	spokesPerRevolution int
	debounceMs          int64
	zones               map[string]*zoneTracking
	events              []core.GuardZoneEvent
}

func New(radarID string, spokesPerRevolution int) *Processor {
	return &Processor{
		radarID:             radarID,
		spokesPerRevolution: spokesPerRevolution,
		debounceMs:          DebounceMs,
		zones:               make(map[string]*zoneTracking),
	}
}

// SetDebounceMs overrides the default quiescent window before a cleared
// zone may re-fire ZoneEntered. Wired from config.TuningConfig.GetGuardZoneDebounceMs.
func (p *Processor) SetDebounceMs(ms int64) {
	p.debounceMs = ms
}

// SetZone adds or replaces a zone definition. Edits apply at the next poll
// tick (spec.md §4.9: "Zone edits are applied at the next poll tick") by
// virtue of Go's single-threaded engine loop: this call itself takes
// effect for the very next OnSpoke.
func (p *Processor) SetZone(z core.GuardZone) {
	existing, ok := p.zones[z.ID]
	if !ok {
		p.zones[z.ID] = &zoneTracking{zone: z}
		return
	}
	existing.zone = z
}

// RemoveZone deletes a zone definition.
func (p *Processor) RemoveZone(id string) {
	delete(p.zones, id)
}

// Zones returns the current zone definitions.
func (p *Processor) Zones() []core.GuardZone {
	out := make([]core.GuardZone, 0, len(p.zones))
	for _, zt := range p.zones {
		out = append(out, zt.zone)
	}
	return out
}

// OnSpoke implements spoke.Consumer: tests every enabled zone against this
// spoke's angle and pixel intensities.
func (p *Processor) OnSpoke(s core.Spoke) {
	angleDeg := p.angleToDeg(s.AngleIndex)
	for _, zt := range p.zones {
		if !zt.zone.Enabled {
			continue
		}
		if !zt.zone.ContainsAngle(angleDeg) {
			continue
		}
		if ok, distance := p.qualifies(zt.zone, s); ok {
			zt.lastQualifyMs = s.TimestampMs
			if !zt.active {
				zt.active = true
				p.events = append(p.events, core.GuardZoneEvent{
					Kind:           core.ZoneEntered,
					RadarID:        p.radarID,
					ZoneID:         zt.zone.ID,
					BearingDeg:     angleDeg,
					DistanceMeters: distance,
				})
			}
		} else if zt.active && s.TimestampMs-zt.lastQualifyMs > p.debounceMs {
			zt.active = false
			p.events = append(p.events, core.GuardZoneEvent{
				Kind:    core.ZoneCleared,
				RadarID: p.radarID,
				ZoneID:  zt.zone.ID,
			})
		}
	}
}

// angleToDeg maps a spoke's angle index onto [0,360) degrees.
func (p *Processor) angleToDeg(angleIndex int) float64 {
	if p.spokesPerRevolution <= 0 {
		return 0
	}
	return float64(angleIndex) * 360.0 / float64(p.spokesPerRevolution)
}

// qualifies reports whether any pixel of s within [inner, outer] exceeds
// the zone's alarm threshold, and the distance to the centre of the first
// such pixel's bucket. The spoke's own RangeMeters/len(Intensity) gives the
// meters covered by each pixel bucket.
func (p *Processor) qualifies(z core.GuardZone, s core.Spoke) (bool, float64) {
	if len(s.Intensity) == 0 || s.RangeMeters <= 0 {
		return false, 0
	}
	metersPerBucket := s.RangeMeters / float64(len(s.Intensity))
	startBucket := int(z.InnerRadiusMeters / metersPerBucket)
	endBucket := int(z.OuterRadiusMeters / metersPerBucket)
	if startBucket < 0 {
		startBucket = 0
	}
	if endBucket >= len(s.Intensity) {
		endBucket = len(s.Intensity) - 1
	}
	for i := startBucket; i <= endBucket && i < len(s.Intensity); i++ {
		if s.Intensity[i] >= z.AlarmIntensityThreshold {
			return true, (float64(i) + 0.5) * metersPerBucket
		}
	}
	return false, 0
}

// DrainEvents returns and clears queued guard-zone alerts.
func (p *Processor) DrainEvents() []core.GuardZoneEvent {
	out := p.events
	p.events = nil
	return out
}
