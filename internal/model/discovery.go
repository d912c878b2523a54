package model

import "net"

// SocketAddrs groups the three (or with dual-range, six) endpoints a brand
// exposes for one radar (spec.md §3 RadarDiscovery).
type SocketAddrs struct {
	Report  *net.UDPAddr
	Data    *net.UDPAddr
	Command *net.UDPAddr
}

// Discovery is spec.md §3's RadarDiscovery: produced by the locator when a
// radar is seen on the network.
type Discovery struct {
	// Key is stable across restarts iff Serial is known; otherwise it is
	// derived from the primary address and may change if the radar's IP
	// changes (spec.md §3 invariant).
	Key string

	Brand Brand
	// Model is tentative: the locator only knows what the beacon told it;
	// the controller may later refine it from a report.
	Model string

	// Addrs is the primary (or, for dual-range, the "A") channel.
	Addrs SocketAddrs
	// AddrsB is present only for radars that discovered as dual-range.
	AddrsB *SocketAddrs

	Serial string
}

// Key derives spec.md §3's stable discovery key: "{Brand}-{serial}" when
// serial is known, else an address-derived fallback.
func Key(brand Brand, serial string, fallbackAddr net.IP) string {
	if serial != "" {
		return string(brand) + "-" + serial
	}
	return string(brand) + "-" + fallbackAddr.String()
}
