// Package controller implements spec.md §4.6's brand controllers: one
// variant per brand, sharing a common poll/set_control/shutdown shape but
// each holding brand-specific protocol state. Grounded in the teacher's
// serialmux package (a per-device connection state machine driving reads
// and writes over a shared I/O abstraction) generalized to spec.md's four
// radar brands.
package controller

import (
	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/schema"
)

// Controller is the common interface spec.md §4.6 describes: "poll/set/
// shutdown". Implementations are Furuno, Navico, Raymarine, Garmin
// (spec.md §4.9: "Polymorphism over brands... a tagged enum of
// controllers... not inheritance").
type Controller interface {
	// Poll drives the connection state machine: connect if needed, read
	// pending reports and update RadarState, send periodic keep-alives.
	// Returns whether anything observable changed.
	Poll(io ioprovider.Provider, nowMs int64) (bool, error)

	// SetControl formats and sends one control change. Returns
	// ControlError{ControllerNotAvailable} if disconnected (never queued),
	// ControlError{ControlNotFound} for unknown ids, ControlError{InvalidValue}
	// for malformed values.
	SetControl(io ioprovider.Provider, controlID string, value core.ControlValue) error

	// Shutdown flushes, closes sockets, transitions to Disconnected.
	Shutdown(io ioprovider.Provider)

	// State returns the controller's live RadarState (read-only view for
	// callers; the controller itself is the sole writer).
	State() *core.RadarState

	// Connection exposes the connection state machine for engine-level
	// watchdog/backoff inspection.
	Connection() *core.Connection

	// Manifest returns the current capability manifest, refreshed whenever
	// the identified model changes (e.g. Furuno's late $N96, Garmin's
	// variant detection).
	Manifest() schema.Manifest
}
