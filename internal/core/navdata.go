package core

// OwnShip is spec.md §6.2's navigation-data pull snapshot: own-ship
// heading, position, and speed/course over ground. The host supplies
// this each poll tick; a Valid snapshot is required to derive target
// lat/lon, resolve CPA/TCPA, or format Navico HALO nav packets.
type OwnShip struct {
	Valid bool

	HeadingDeg  float64
	HeadingFlag HeadingFlag

	HasPosition bool
	Lat, Lon    float64

	SpeedMps  float64
	CourseDeg float64
}

// OwnShipSource is a pull-style source of own-ship snapshots. The engine
// does not poll it: a host that has one passes its snapshot to
// Engine.SetOwnShip before each Engine.Poll.
type OwnShipSource interface {
	OwnShip() OwnShip
}
