package core

import "github.com/dirkwa/mayara/internal/model"

// DiscoveryEventKind is spec.md §6.3's discovery event sum type.
type DiscoveryEventKind string

const (
	Discovered    DiscoveryEventKind = "Discovered"
	AddressChanged DiscoveryEventKind = "AddressChanged"
	Lost          DiscoveryEventKind = "Lost"
)

// DiscoveryEvent is emitted by the locator/engine on the outbound discovery
// channel.
type DiscoveryEvent struct {
	Kind      DiscoveryEventKind
	Discovery model.Discovery // populated for Discovered/AddressChanged
	Key       string          // populated for AddressChanged/Lost
}

// TargetEventKind is spec.md §6.3's target event sum type.
type TargetEventKind string

const (
	TargetAcquired         TargetEventKind = "Acquired"
	TargetUpdated          TargetEventKind = "Updated"
	TargetLostEvent        TargetEventKind = "Lost"
	TargetCollisionWarning TargetEventKind = "CollisionWarning"
)

// TargetEvent carries ARPA target lifecycle and collision-warning notifications.
type TargetEvent struct {
	Kind   TargetEventKind
	Target ArpaTarget

	// LostReason is set only for Kind == TargetLostEvent.
	LostReason string

	// CollisionWarning fields, set only for Kind == TargetCollisionWarning.
	TargetID  string
	Severity  CollisionSeverity
	CPAMeters float64
	TCPASeconds float64
}

// GuardZoneEventKind is spec.md §6.3's guard-zone alert sum type.
type GuardZoneEventKind string

const (
	ZoneEntered GuardZoneEventKind = "ZoneEntered"
	ZoneCleared GuardZoneEventKind = "ZoneCleared"
)

// GuardZoneEvent carries a rising-edge or clearing alert for one zone.
type GuardZoneEvent struct {
	Kind     GuardZoneEventKind
	RadarID  string
	ZoneID   string
	// BearingDeg/DistanceMeters locate the qualifying return for ZoneEntered.
	BearingDeg     float64
	DistanceMeters float64
}
