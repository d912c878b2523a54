package arpa

import (
	"math"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/google/uuid"
)

// TrackerConfig holds the tunables spec.md §4.8 leaves as informally
// defaulted (min-size/intensity live in ContourConfig; everything else
// governs correlation gating, the Kalman filter, and the lost-target
// timeout).
type TrackerConfig struct {
	// AcquireRevolutions is N: consecutive revolutions an unmatched
	// candidate must persist before becoming `acquiring` (spec.md §4.8).
	AcquireRevolutions int

	// RevolutionPeriodMs and TargetLostTimeoutMs derive the miss-count
	// loss threshold (spec.md §4.8: "miss >= targetLostTimeout /
	// revolution-period consecutive revolutions").
	RevolutionPeriodMs  int64
	TargetLostTimeoutMs int64

	// GateDistanceMeters is the base correlation gate; it scales up with
	// range (spec.md §4.8: "a brand-appropriate gate... scaled by range").
	GateDistanceMeters float64

	ProcessNoisePos  float64
	ProcessNoiseVel  float64
	MeasurementNoise float64

	Contour ContourConfig
}

// DefaultTrackerConfig pins the Open Question defaults for ARPA thresholds.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		AcquireRevolutions:  3,
		RevolutionPeriodMs:  2500,
		TargetLostTimeoutMs: 15000,
		GateDistanceMeters:  50,
		ProcessNoisePos:     0.5,
		ProcessNoiseVel:     1.0,
		MeasurementNoise:    25,
		Contour:             DefaultContourConfig(),
	}
}

func (c TrackerConfig) missesToLose() int {
	if c.RevolutionPeriodMs <= 0 {
		return 3
	}
	n := int(c.TargetLostTimeoutMs / c.RevolutionPeriodMs)
	if n < 1 {
		n = 1
	}
	return n
}

type track struct {
	target       core.ArpaTarget
	kf           *kalman
	misses       int
	lastUpdateMs int64
}

type pendingCandidate struct {
	bearingDeg, distanceMeters float64
	streak                     int
}

// Tracker is one radar's ARPA tracker (spec.md §4.8: "Per-radar. Consumes
// spokes and produces target events").
type Tracker struct {
	radarID string
	cfg     TrackerConfig
	ownShip core.OwnShip

	tracks  map[string]*track
	pending []*pendingCandidate

	revolutionBuf []core.Spoke
	lastAngle     int
	haveLastAngle bool

	events []core.TargetEvent
}

func New(radarID string, cfg TrackerConfig) *Tracker {
	return &Tracker{
		radarID: radarID,
		cfg:     cfg,
		tracks:  make(map[string]*track),
	}
}

// SetOwnShip updates the navigation-data snapshot used for lat/lon
// derivation and CPA/TCPA (spec.md §6.2). Call once per poll tick before
// feeding spokes.
func (t *Tracker) SetOwnShip(o core.OwnShip) {
	t.ownShip = o
}

// OnSpoke implements spoke.Consumer: buffers one revolution of spokes and
// triggers contour detection/correlation when the angle index wraps.
func (t *Tracker) OnSpoke(s core.Spoke) {
	if t.haveLastAngle && s.AngleIndex < t.lastAngle {
		t.processRevolution(s.TimestampMs)
		t.revolutionBuf = t.revolutionBuf[:0]
	}
	t.revolutionBuf = append(t.revolutionBuf, s)
	t.lastAngle = s.AngleIndex
	t.haveLastAngle = true
}

func (t *Tracker) processRevolution(nowMs int64) {
	candidates := DetectContours(t.revolutionBuf, t.cfg.Contour)

	for _, tr := range t.tracks {
		dt := float64(nowMs-tr.lastUpdateMs) / 1000.0
		if dt < 0 {
			dt = 0
		}
		tr.kf.predict(dt)
	}

	matched := t.correlate(candidates)
	matchedTrackIDs := make(map[string]bool)
	for ci, tr := range matched {
		c := candidates[ci]
		zx, zy := bearingToXY(c.BearingDeg, c.DistanceMeters)
		tr.kf.update(zx, zy)
		tr.misses = 0
		tr.lastUpdateMs = nowMs
		matchedTrackIDs[tr.target.ID] = true

		t.refreshTarget(tr, nowMs)

		switch tr.target.Status {
		case core.TargetAcquiring:
			tr.target.Status = core.TargetTracking
			t.events = append(t.events, core.TargetEvent{Kind: core.TargetAcquired, Target: tr.target})
		case core.TargetTracking:
			t.events = append(t.events, core.TargetEvent{Kind: core.TargetUpdated, Target: tr.target})
		}
		t.checkCPA(tr)
	}

	for id, tr := range t.tracks {
		if matchedTrackIDs[id] {
			continue
		}
		tr.misses++
		if tr.misses >= t.cfg.missesToLose() {
			tr.target.Status = core.TargetLost
			if tr.target.Acquisition == core.AcquisitionManual {
				t.events = append(t.events, core.TargetEvent{
					Kind:       core.TargetLostEvent,
					Target:     tr.target,
					LostReason: "missed too many consecutive revolutions",
				})
			}
			delete(t.tracks, id)
		}
	}

	t.advancePending(candidates, matched, nowMs)
}

func (t *Tracker) correlate(candidates []Candidate) map[int]*track {
	matched := make(map[int]*track)
	usedTracks := make(map[string]bool)
	for ci, c := range candidates {
		zx, zy := bearingToXY(c.BearingDeg, c.DistanceMeters)
		gate := t.cfg.GateDistanceMeters * (1 + c.DistanceMeters/1000)
		gate2 := gate * gate

		var best *track
		bestD2 := math.MaxFloat64
		for id, tr := range t.tracks {
			if usedTracks[id] {
				continue
			}
			d2, ok := tr.kf.gateDistanceSquared(zx, zy)
			if !ok || d2 > gate2 {
				continue
			}
			if d2 < bestD2 {
				bestD2 = d2
				best = tr
			}
		}
		if best != nil {
			matched[ci] = best
			usedTracks[best.target.ID] = true
		}
	}
	return matched
}

// advancePending tracks auto-acquisition streaks for candidates unmatched
// to any existing track (spec.md §4.8: "unmatched candidates that persist
// for N consecutive revolutions become acquiring").
func (t *Tracker) advancePending(candidates []Candidate, matched map[int]*track, nowMs int64) {
	consumed := make(map[int]bool, len(matched))
	for ci := range matched {
		consumed[ci] = true
	}

	var stillPending []*pendingCandidate
	for _, p := range t.pending {
		bestCi := -1
		bestD2 := math.MaxFloat64
		px, py := bearingToXY(p.bearingDeg, p.distanceMeters)
		for ci, c := range candidates {
			if consumed[ci] {
				continue
			}
			zx, zy := bearingToXY(c.BearingDeg, c.DistanceMeters)
			d2 := (zx-px)*(zx-px) + (zy-py)*(zy-py)
			gate := t.cfg.GateDistanceMeters * (1 + c.DistanceMeters/1000)
			if d2 > gate*gate {
				continue
			}
			if d2 < bestD2 {
				bestD2 = d2
				bestCi = ci
			}
		}
		if bestCi < 0 {
			continue // stale, drop
		}
		consumed[bestCi] = true
		p.bearingDeg = candidates[bestCi].BearingDeg
		p.distanceMeters = candidates[bestCi].DistanceMeters
		p.streak++
		if p.streak >= t.cfg.AcquireRevolutions {
			t.startAutoTrack(*p, nowMs)
			continue
		}
		stillPending = append(stillPending, p)
	}
	t.pending = stillPending

	for ci, c := range candidates {
		if consumed[ci] {
			continue
		}
		t.pending = append(t.pending, &pendingCandidate{
			bearingDeg:     c.BearingDeg,
			distanceMeters: c.DistanceMeters,
			streak:         1,
		})
	}
}

func (t *Tracker) startAutoTrack(p pendingCandidate, nowMs int64) {
	id := t.newID()
	zx, zy := bearingToXY(p.bearingDeg, p.distanceMeters)
	tr := &track{
		kf:           newKalman(zx, zy, t.cfg.ProcessNoisePos, t.cfg.ProcessNoiseVel, t.cfg.MeasurementNoise),
		lastUpdateMs: nowMs,
		target: core.ArpaTarget{
			ID:             id,
			Status:         core.TargetAcquiring,
			BearingDeg:     p.bearingDeg,
			DistanceMeters: p.distanceMeters,
			Acquisition:    core.AcquisitionAuto,
			FirstSeenMs:    nowMs,
			LastSeenMs:     nowMs,
		},
	}
	t.tracks[id] = tr
}

// AcquireManual implements spec.md §4.8's manual acquisition: "the host
// submits (bearing, distance); the tracker allocates a target id, seeds a
// track at that polar location with zero velocity, and marks it acquiring
// until confirmed."
func (t *Tracker) AcquireManual(bearingDeg, distanceMeters float64, nowMs int64) string {
	id := t.newID()
	zx, zy := bearingToXY(bearingDeg, distanceMeters)
	t.tracks[id] = &track{
		kf:           newKalman(zx, zy, t.cfg.ProcessNoisePos, t.cfg.ProcessNoiseVel, t.cfg.MeasurementNoise),
		lastUpdateMs: nowMs,
		target: core.ArpaTarget{
			ID:             id,
			Status:         core.TargetAcquiring,
			BearingDeg:     bearingDeg,
			DistanceMeters: distanceMeters,
			Acquisition:    core.AcquisitionManual,
			FirstSeenMs:    nowMs,
			LastSeenMs:     nowMs,
		},
	}
	return id
}

// CancelTarget removes a track immediately, regardless of status.
func (t *Tracker) CancelTarget(id string) {
	delete(t.tracks, id)
}

// newID mints a stable target identifier, the same role the teacher gives
// uuid.NewString() for TrackedObject.TrackID.
func (t *Tracker) newID() string {
	return uuid.NewString()
}

func (t *Tracker) refreshTarget(tr *track, nowMs int64) {
	x, y := tr.kf.position()
	vx, vy := tr.kf.velocity()

	distance := math.Hypot(x, y)
	bearing := math.Mod(math.Atan2(x, y)*180/math.Pi+360, 360)

	tr.target.BearingDeg = bearing
	tr.target.DistanceMeters = distance
	tr.target.LastSeenMs = nowMs

	speed := math.Hypot(vx, vy)
	tr.target.SpeedMps = speed
	if speed > 1e-6 {
		tr.target.CourseDeg = math.Mod(math.Atan2(vx, vy)*180/math.Pi+360, 360)
	}

	if t.ownShip.Valid && t.ownShip.HasPosition {
		tr.target.HasPosition = true
		tr.target.Lat, tr.target.Lon = localToLatLon(t.ownShip.Lat, t.ownShip.Lon, x, y)
	}
}

func (t *Tracker) checkCPA(tr *track) {
	px, py := tr.kf.position()
	vx, vy := tr.kf.velocity()

	if !t.ownShip.Valid {
		tr.target.HasCPA = false
		return
	}
	courseRad := t.ownShip.CourseDeg * math.Pi / 180
	ownVx := t.ownShip.SpeedMps * math.Sin(courseRad)
	ownVy := t.ownShip.SpeedMps * math.Cos(courseRad)

	cpa, tcpa := closestApproach(px, py, vx, vy, ownVx, ownVy)
	tr.target.HasCPA = true
	tr.target.CPAMeters = cpa
	tr.target.TCPASeconds = tcpa

	sev, crossed := core.SeverityForCPA(cpa)
	if crossed {
		if sev != tr.target.LastSeverity() {
			tr.target.SetLastSeverity(sev)
			t.events = append(t.events, core.TargetEvent{
				Kind:        core.TargetCollisionWarning,
				TargetID:    tr.target.ID,
				Severity:    sev,
				CPAMeters:   cpa,
				TCPASeconds: tcpa,
			})
		}
	} else if tr.target.LastSeverity() != "" {
		tr.target.SetLastSeverity("")
	}
}

// Targets returns a snapshot of all live tracks (spec.md "get_targets").
func (t *Tracker) Targets() []core.ArpaTarget {
	out := make([]core.ArpaTarget, 0, len(t.tracks))
	for _, tr := range t.tracks {
		out = append(out, tr.target)
	}
	return out
}

// DrainEvents returns and clears queued target events.
func (t *Tracker) DrainEvents() []core.TargetEvent {
	out := t.events
	t.events = nil
	return out
}

func bearingToXY(bearingDeg, distanceMeters float64) (x, y float64) {
	rad := bearingDeg * math.Pi / 180
	return distanceMeters * math.Sin(rad), distanceMeters * math.Cos(rad)
}

func closestApproach(px, py, vx, vy, ownVx, ownVy float64) (cpaMeters, tcpaSeconds float64) {
	rvx := vx - ownVx
	rvy := vy - ownVy
	denom := rvx*rvx + rvy*rvy
	if denom < 1e-9 {
		return math.Hypot(px, py), 0
	}
	tcpa := -(px*rvx + py*rvy) / denom
	cx := px + rvx*tcpa
	cy := py + rvy*tcpa
	return math.Hypot(cx, cy), tcpa
}

// localToLatLon offsets an own-ship lat/lon by a local-frame (x east, y
// north) meter displacement using an equirectangular approximation.
func localToLatLon(lat, lon, x, y float64) (float64, float64) {
	const metersPerDegLat = 111320.0
	metersPerDegLon := metersPerDegLat * math.Cos(lat*math.Pi/180)
	if metersPerDegLon == 0 {
		metersPerDegLon = metersPerDegLat
	}
	return lat + y/metersPerDegLat, lon + x/metersPerDegLon
}
