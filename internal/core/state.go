package core

import "time"

// PowerState is spec.md §3's RadarState.power.
type PowerState string

const (
	PowerOff      PowerState = "off"
	PowerStandby  PowerState = "standby"
	PowerTransmit PowerState = "transmit"
	PowerWarming  PowerState = "warming"
)

// Settable reports whether a power state is a valid SET target. off/warming
// are read-only (spec.md §3 invariant).
func (p PowerState) Settable() bool {
	return p == PowerStandby || p == PowerTransmit
}

// ControlValue is the dynamically-typed value of one control. Exactly one
// field is meaningful, chosen by the corresponding schema.Definition.Kind.
// Compound controls (gain/sea/rain) use Mode+Number together.
type ControlValue struct {
	Bool   *bool
	Number *float64
	Enum   string
	Mode   string // compound "mode" sub-property, e.g. gain.mode
	// Compound holds named sub-values for controls with more structure than
	// mode+number, e.g. Garmin's noTransmitZone {startDeg, endDeg}.
	Compound map[string]ControlValue
}

// ControlUpdate is one (control-id, value[, auto-flag]) tuple a decoded
// report yields (spec.md §4.4: "each variant yields an ordered sequence of
// (control-id, value, optional auto-flag) updates that the controller
// applies to RadarState").
type ControlUpdate struct {
	ControlID string
	Value     ControlValue
}

// RadarState is spec.md §3's mutable per-radar state.
type RadarState struct {
	Power        PowerState
	Controls     map[string]ControlValue
	LastUpdateMs int64
}

// NewRadarState seeds state with defaults; Power starts Off until the first
// report arrives (a freshly discovered radar has not yet told us otherwise).
func NewRadarState() *RadarState {
	return &RadarState{
		Power:    PowerOff,
		Controls: make(map[string]ControlValue),
	}
}

// Apply applies updates in arrival order with per-control last-write-wins
// (spec.md §5 ordering guarantee), stamping LastUpdateMs.
func (s *RadarState) Apply(nowMs int64, updates []ControlUpdate) {
	for _, u := range updates {
		s.Controls[u.ControlID] = u.Value
		if u.ControlID == "power" && u.Value.Enum != "" {
			s.Power = PowerState(u.Value.Enum)
		}
	}
	s.LastUpdateMs = nowMs
}

// ConnectionPhase is spec.md §3's ConnectionState machine.
type ConnectionPhase string

const (
	Disconnected ConnectionPhase = "Disconnected"
	Connecting   ConnectionPhase = "Connecting"
	Listening    ConnectionPhase = "Listening"
	Connected    ConnectionPhase = "Connected"
	Active       ConnectionPhase = "Active"
)

// Connection tracks a controller's connection state machine, backoff, and
// watchdog (spec.md §3 ConnectionState).
type Connection struct {
	Phase         ConnectionPhase
	LastReceiveMs int64
	// backoffStepMs is the current backoff duration; doubles on each failed
	// connect attempt up to 30s (spec.md §3: "1s, 2s, 4s, 8s, cap 30s").
	backoffStepMs   int64
	nextAttemptAtMs int64
}

const (
	initialBackoffMs = 1000
	maxBackoffMs     = 30000
)

// NewConnection starts Disconnected with no pending backoff.
func NewConnection() *Connection {
	return &Connection{Phase: Disconnected}
}

// ReadyToConnect reports whether enough time has passed since the last
// failure to attempt a (re)connect.
func (c *Connection) ReadyToConnect(nowMs int64) bool {
	return nowMs >= c.nextAttemptAtMs
}

// RecordFailure transitions to Disconnected and schedules the next attempt
// using exponential backoff.
func (c *Connection) RecordFailure(nowMs int64) {
	c.Phase = Disconnected
	if c.backoffStepMs == 0 {
		c.backoffStepMs = initialBackoffMs
	} else {
		c.backoffStepMs *= 2
		if c.backoffStepMs > maxBackoffMs {
			c.backoffStepMs = maxBackoffMs
		}
	}
	c.nextAttemptAtMs = nowMs + c.backoffStepMs
}

// RecordSuccess resets backoff and moves to Connected.
func (c *Connection) RecordSuccess(nowMs int64) {
	c.Phase = Connected
	c.backoffStepMs = 0
	c.LastReceiveMs = nowMs
}

// RecordReceive marks fresh data and promotes Connected -> Active.
func (c *Connection) RecordReceive(nowMs int64) {
	c.LastReceiveMs = nowMs
	if c.Phase == Connected {
		c.Phase = Active
	}
}

// CheckWatchdog transitions Connected/Active -> Disconnected after
// silenceMs without a receive (spec.md §3: "a watchdog transitions
// Connected->Disconnected after a configurable silence window").
func (c *Connection) CheckWatchdog(nowMs int64, silenceMs int64) bool {
	if c.Phase != Connected && c.Phase != Active {
		return false
	}
	if nowMs-c.LastReceiveMs > silenceMs {
		c.RecordFailure(nowMs)
		return true
	}
	return false
}

// Since is a small helper for tests/logging.
func (c *Connection) Since(nowMs int64) time.Duration {
	return time.Duration(nowMs-c.LastReceiveMs) * time.Millisecond
}
