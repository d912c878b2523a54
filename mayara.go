// Package mayara is the public facade over internal/engine: spec.md
// §4.10's Radar Engine, re-exported at the repo root so a host imports one
// package rather than reaching into internal/. Type aliases keep the
// public surface (ControlValue, RadarState, ArpaTarget, GuardZone, the
// outbound event types, OwnShip) identical to the internal/core
// definitions the engine actually operates on.
package mayara

import (
	"net"

	"github.com/dirkwa/mayara/internal/config"
	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/engine"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/schema"
)

// Engine is spec.md §4.10's Radar Engine.
type Engine = engine.Engine

// TuningConfig holds every tunable threshold spec.md §9 leaves as an Open
// Question (discovery cadence, backoff, ARPA acquisition, guard-zone
// debounce, trail half-life, down-sampling).
type TuningConfig = config.TuningConfig

// Provider is the host-implemented I/O capability set (spec.md §4.1, §6.1).
type Provider = ioprovider.Provider

type (
	ControlValue   = core.ControlValue
	RadarState     = core.RadarState
	ArpaTarget     = core.ArpaTarget
	GuardZone      = core.GuardZone
	Spoke          = core.Spoke
	OwnShip        = core.OwnShip
	Manifest       = schema.Manifest
	DiscoveryEvent = core.DiscoveryEvent
	TargetEvent    = core.TargetEvent
	GuardZoneEvent = core.GuardZoneEvent
	TargetEventEnvelope = engine.TargetEventEnvelope
)

// Control error kinds (spec.md §7), re-exported for host error-handling.
const (
	RadarNotFound          = core.RadarNotFound
	ControlNotFound        = core.ControlNotFound
	InvalidValue           = core.InvalidValue
	ControllerNotAvailable = core.ControllerNotAvailable
)

// New builds an engine over the host's enumerated local interfaces. cfg may
// be nil to select MustLoadDefaultConfig's documented defaults.
func New(io Provider, interfaces []net.IP, cfg *TuningConfig) (*Engine, error) {
	return engine.New(io, interfaces, cfg)
}

// DefaultTuningConfig loads the embedded canonical tuning defaults.
func DefaultTuningConfig() *TuningConfig {
	return config.MustLoadDefaultConfig()
}
