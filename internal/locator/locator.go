// Package locator implements spec.md §4.5's per-brand discovery state
// machine: it owns the beacon sockets, sends periodic probes, decodes
// incoming beacons via internal/protocol, deduplicates by discovery key,
// and emits DiscoveryEvents. Grounded in the teacher's
// internal/lidar/network package (interface enumeration + per-interface
// socket setup) and its discovery-beacon handling in cmd/tools/replay-server.
package locator

import (
	"net"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/dirkwa/mayara/internal/mtlog"
	"github.com/dirkwa/mayara/internal/protocol/furuno"
	"github.com/dirkwa/mayara/internal/protocol/garmin"
	"github.com/dirkwa/mayara/internal/protocol/navico"
	"github.com/dirkwa/mayara/internal/protocol/raymarine"
)

// ProbeIntervalMs is spec.md §4.5's "every ~1s send brand probes".
const ProbeIntervalMs = 1000

// DefaultLostTimeoutMs is how long a discovery may go without a fresh
// beacon before the locator emits Lost. Overridable via SetLostTimeoutMs.
const DefaultLostTimeoutMs = 30000

// beaconGroup describes one brand's beacon multicast/broadcast endpoint
// and probe cadence. Garmin has no probe (spec.md: "Garmin is passive").
type beaconGroup struct {
	brand   model.Brand
	addr    *net.UDPAddr
	probe   []byte // nil for brands that never probe
	bufSize int
}

var beaconGroups = []beaconGroup{
	{brand: model.Furuno, addr: &net.UDPAddr{IP: net.IPv4bcast, Port: 10010}, probe: furuno.ProbeMessage, bufSize: 512},
	{brand: model.Navico, addr: &net.UDPAddr{IP: net.ParseIP("236.6.7.5"), Port: 6878}, probe: navico.ProbeMessage, bufSize: 512},
	{brand: model.Raymarine, addr: &net.UDPAddr{IP: net.ParseIP("224.0.0.1"), Port: 5800}, probe: raymarine.ProbeMessage, bufSize: 512},
	{brand: model.Garmin, addr: garmin.ReportMulticastAddr, probe: nil, bufSize: 2048},
}

// socketHandle pairs one beacon group with the I/O handle bound to one
// local interface.
type socketHandle struct {
	group        beaconGroup
	handle       ioprovider.Handle
	localAddr    net.IP
	nextProbeMs  int64
}

// Locator owns one socket per (brand, interface) pair, the set of known
// discoveries (for dedup/address-change detection), and the outbound event
// queue the engine drains each poll.
type Locator struct {
	io      ioprovider.Provider
	sockets []*socketHandle
	known   map[string]model.Discovery
	lastSeenMs   map[string]int64
	lostTimeoutMs int64
	events  []core.DiscoveryEvent
}

// New creates beacon sockets for every (brand, interface) pair. interfaces
// is obtained once from the host at startup (spec.md §4.5: "the core does
// not re-enumerate").
func New(io ioprovider.Provider, interfaces []net.IP) (*Locator, error) {
	l := &Locator{
		io:            io,
		known:         make(map[string]model.Discovery),
		lastSeenMs:    make(map[string]int64),
		lostTimeoutMs: DefaultLostTimeoutMs,
	}
	for _, iface := range interfaces {
		for _, g := range beaconGroups {
			h, err := io.UDPCreate(ioprovider.UDPOptions{
				Reuse:        true,
				MulticastTTL: 1,
			})
			if err != nil {
				l.Shutdown()
				return nil, err
			}
			if isMulticast(g.addr.IP) {
				if err := io.UDPJoinMulticast(h, g.addr.IP, iface); err != nil {
					mtlog.Warnf("locator: join multicast %s on %s: %v", g.addr.IP, iface, err)
				}
			}
			l.sockets = append(l.sockets, &socketHandle{group: g, handle: h, localAddr: iface})
		}
	}
	return l, nil
}

func isMulticast(ip net.IP) bool {
	return ip.IsMulticast()
}

// SetLostTimeoutMs overrides the silence window after which a known
// discovery is declared Lost. Intended to be wired from
// config.TuningConfig.GetDiscoveryLostTimeoutMs at engine construction.
func (l *Locator) SetLostTimeoutMs(ms int64) {
	l.lostTimeoutMs = ms
}

// Poll drives one iteration: send any due probes, drain pending beacon
// datagrams, decode, dedup, and queue events. Returns whether anything
// changed (events were queued).
func (l *Locator) Poll(nowMs int64) bool {
	changed := false
	for _, sh := range l.sockets {
		if sh.group.probe != nil && nowMs >= sh.nextProbeMs {
			if _, err := l.io.UDPSendTo(sh.handle, sh.group.probe, sh.group.addr.IP, sh.group.addr.Port); err != nil {
				mtlog.Debugf("locator: probe send (%s): %v", sh.group.brand, err)
			}
			sh.nextProbeMs = nowMs + ProbeIntervalMs
		}

		buf := make([]byte, sh.group.bufSize)
		for {
			n, from, err := l.io.UDPRecvFrom(sh.handle, buf)
			if err != nil {
				break
			}
			if l.handlePacket(sh.group.brand, buf[:n], from, nowMs) {
				changed = true
			}
		}
	}
	if l.sweepLost(nowMs) {
		changed = true
	}
	return changed
}

// sweepLost emits Lost for any known discovery whose last beacon is older
// than lostTimeoutMs, and drops it from known/lastSeenMs so a later beacon
// re-emits Discovered rather than being treated as a stale duplicate.
func (l *Locator) sweepLost(nowMs int64) bool {
	changed := false
	for key, last := range l.lastSeenMs {
		if nowMs-last <= l.lostTimeoutMs {
			continue
		}
		delete(l.known, key)
		delete(l.lastSeenMs, key)
		l.events = append(l.events, core.DiscoveryEvent{Kind: core.Lost, Key: key})
		changed = true
	}
	return changed
}

func (l *Locator) handlePacket(brand model.Brand, data []byte, from *net.UDPAddr, nowMs int64) bool {
	var d model.Discovery
	var err error
	switch brand {
	case model.Furuno:
		d, err = furuno.DecodeBeaconReply(data, from)
	case model.Navico:
		d, err = navico.DecodeBeacon(data, from)
	case model.Raymarine:
		d, err = raymarine.DecodeBeacon(data, from)
	case model.Garmin:
		p, decErr := garmin.DecodePacket(data)
		if decErr != nil {
			err = decErr
		} else {
			d = garmin.DiscoverFromPacket(p, from)
		}
	}
	if err != nil {
		mtlog.Debugf("locator: beacon decode (%s): %v", brand, err)
		return false
	}
	return l.recordDiscovery(d, nowMs)
}

// recordDiscovery dedups by key and reports Discovered / AddressChanged per
// spec.md §4.5: "re-emits discoveries on each address change so that stale
// mappings can be corrected." Every beacon, duplicate or not, refreshes
// lastSeenMs so sweepLost won't time out a still-live discovery.
func (l *Locator) recordDiscovery(d model.Discovery, nowMs int64) bool {
	existing, seen := l.known[d.Key]
	l.known[d.Key] = d
	l.lastSeenMs[d.Key] = nowMs
	if !seen {
		l.events = append(l.events, core.DiscoveryEvent{Kind: core.Discovered, Discovery: d})
		return true
	}
	if !sameAddrs(existing.Addrs, d.Addrs) {
		l.events = append(l.events, core.DiscoveryEvent{Kind: core.AddressChanged, Discovery: d, Key: d.Key})
		return true
	}
	return false
}

func sameAddrs(a, b model.SocketAddrs) bool {
	return addrEqual(a.Report, b.Report) && addrEqual(a.Data, b.Data) && addrEqual(a.Command, b.Command)
}

func addrEqual(a, b *net.UDPAddr) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.IP.Equal(b.IP) && a.Port == b.Port
}

// DrainEvents returns and clears queued discovery events.
func (l *Locator) DrainEvents() []core.DiscoveryEvent {
	out := l.events
	l.events = nil
	return out
}

// Shutdown closes every owned socket (spec.md §4.5: "close all owned
// sockets; drop multicast memberships").
func (l *Locator) Shutdown() {
	for _, sh := range l.sockets {
		_ = l.io.Close(sh.handle)
	}
	l.sockets = nil
}
