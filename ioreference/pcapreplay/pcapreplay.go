// Package pcapreplay is a reference ioprovider.Provider that replays radar
// traffic captured in a pcap file instead of touching a real NIC. Grounded
// in the teacher's internal/lidar/network/pcap.go (ReadPCAPFile: gopacket
// pcap.OpenOffline + a BPF filter + iterating packetSource.Packets()),
// generalized from one fixed UDP port to per-handle UDP and TCP replay
// queues keyed by local bind port, since a capture mixes all four brands'
// traffic on whatever ports each radar happened to use.
//
// Captured packet timestamps are normalized to a replay clock starting at
// zero; UDPRecvFrom/TCPRecvRaw/TCPRecvLine only release a queued packet once
// the caller's Advance-driven virtual clock has reached its timestamp, so a
// host can drive the engine at whatever pace it likes (as fast as possible,
// or paced to wall-clock) while still seeing packets in recorded order.
package pcapreplay

import (
	"fmt"
	"net"
	"sort"
	"sync"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"github.com/dirkwa/mayara/internal/ioprovider"
)

type capturedPacket struct {
	atMs    int64
	payload []byte
	source  *net.UDPAddr
}

// Provider replays a pcap file's UDP and TCP payloads through the
// ioprovider.Provider surface. It implements every method the core calls
// during Engine.Poll; outbound sends (UDPSendTo/TCPSend) are recorded for
// inspection rather than actually transmitted, since a replay has no live
// peer to receive them.
type Provider struct {
	mu sync.Mutex

	nowMs int64

	// byUDPPort/byTCPPort hold every captured packet destined for that local
	// port, already sorted by capture time. A handle bound to a port first
	// gets handed that port's full remaining queue.
	byUDPPort map[int][]capturedPacket
	byTCPPort map[int][]capturedPacket

	nextHandle ioprovider.Handle
	sockets    map[ioprovider.Handle]*replaySocket

	sent []ioprovider.SentDatagram
}

type replaySocket struct {
	kind   ioprovider.Kind
	closed bool
	port   int // local bound port, 0 until bound by opts/connect
	queue  []capturedPacket
	connState ioprovider.TCPConnState
}

// Open parses pcapPath and buckets every UDP/TCP payload by destination
// port, timestamped relative to the capture's first packet.
func Open(pcapPath string) (*Provider, error) {
	handle, err := pcap.OpenOffline(pcapPath)
	if err != nil {
		return nil, fmt.Errorf("pcapreplay: open %s: %w", pcapPath, err)
	}
	defer handle.Close()

	p := &Provider{
		byUDPPort: make(map[int][]capturedPacket),
		byTCPPort: make(map[int][]capturedPacket),
		sockets:   make(map[ioprovider.Handle]*replaySocket),
	}

	source := gopacket.NewPacketSource(handle, handle.LinkType())
	var baseNs int64
	first := true
	for packet := range source.Packets() {
		meta := packet.Metadata()
		var tsNs int64
		if meta != nil {
			tsNs = meta.Timestamp.UnixNano()
		}
		if first {
			baseNs = tsNs
			first = false
		}
		atMs := (tsNs - baseNs) / 1_000_000

		if udpLayer := packet.Layer(layers.LayerTypeUDP); udpLayer != nil {
			udp := udpLayer.(*layers.UDP)
			if len(udp.Payload) == 0 {
				continue
			}
			srcIP := packetSrcIP(packet)
			port := int(udp.DstPort)
			p.byUDPPort[port] = append(p.byUDPPort[port], capturedPacket{
				atMs:    atMs,
				payload: append([]byte(nil), udp.Payload...),
				source:  &net.UDPAddr{IP: srcIP, Port: int(udp.SrcPort)},
			})
			continue
		}
		if tcpLayer := packet.Layer(layers.LayerTypeTCP); tcpLayer != nil {
			tcp := tcpLayer.(*layers.TCP)
			if len(tcp.Payload) == 0 {
				continue
			}
			port := int(tcp.DstPort)
			p.byTCPPort[port] = append(p.byTCPPort[port], capturedPacket{
				atMs:    atMs,
				payload: append([]byte(nil), tcp.Payload...),
			})
		}
	}
	for port := range p.byUDPPort {
		sortByTime(p.byUDPPort[port])
	}
	for port := range p.byTCPPort {
		sortByTime(p.byTCPPort[port])
	}
	return p, nil
}

func sortByTime(pkts []capturedPacket) {
	sort.SliceStable(pkts, func(i, j int) bool { return pkts[i].atMs < pkts[j].atMs })
}

func packetSrcIP(packet gopacket.Packet) net.IP {
	if ipLayer := packet.Layer(layers.LayerTypeIPv4); ipLayer != nil {
		return ipLayer.(*layers.IPv4).SrcIP
	}
	if ipLayer := packet.Layer(layers.LayerTypeIPv6); ipLayer != nil {
		return ipLayer.(*layers.IPv6).SrcIP
	}
	return nil
}

// Advance moves the replay clock forward, releasing any queued packets
// whose capture timestamp has now elapsed on the next Recv call.
func (p *Provider) Advance(ms int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nowMs += ms
}

func (p *Provider) CurrentTimeMs() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nowMs
}

func (p *Provider) Debug(level int, message string) {
	// A replay run has no structured sink of its own; the driving CLI logs
	// via mtlog, so this is intentionally a no-op.
}

func (p *Provider) UDPCreate(opts ioprovider.UDPOptions) (ioprovider.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextHandle++
	h := p.nextHandle
	s := &replaySocket{kind: ioprovider.KindUDP}
	if opts.BindAddr != nil {
		s.port = opts.BindAddr.Port
		s.queue = p.byUDPPort[s.port]
	}
	p.sockets[h] = s
	return h, nil
}

func (p *Provider) UDPJoinMulticast(h ioprovider.Handle, group net.IP, iface net.IP) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.sockets[h]; !ok {
		return ioprovider.ErrClosed
	}
	return nil
}

func (p *Provider) UDPSendTo(h ioprovider.Handle, b []byte, addr net.IP, port int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sockets[h]
	if !ok || s.closed {
		return 0, ioprovider.ErrClosed
	}
	cp := append([]byte(nil), b...)
	p.sent = append(p.sent, ioprovider.SentDatagram{Handle: h, Data: cp, Addr: addr, Port: port})
	return len(b), nil
}

func (p *Provider) UDPRecvFrom(h ioprovider.Handle, buf []byte) (int, *net.UDPAddr, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sockets[h]
	if !ok || s.closed {
		return 0, nil, ioprovider.ErrClosed
	}
	if len(s.queue) == 0 || s.queue[0].atMs > p.nowMs {
		return 0, nil, ioprovider.ErrWouldBlock
	}
	pkt := s.queue[0]
	s.queue = s.queue[1:]
	n := copy(buf, pkt.payload)
	return n, pkt.source, nil
}

func (p *Provider) TCPCreate() (ioprovider.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextHandle++
	h := p.nextHandle
	p.sockets[h] = &replaySocket{kind: ioprovider.KindTCP, connState: ioprovider.TCPConnecting}
	return h, nil
}

// TCPConnect binds the socket to addr's replay queue (keyed by the
// destination port the capture recorded) and reports it connected
// immediately — a replay has no real handshake to wait on.
func (p *Provider) TCPConnect(h ioprovider.Handle, addr net.IP, port int) (ioprovider.TCPConnState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sockets[h]
	if !ok {
		return ioprovider.TCPFailed, ioprovider.ErrClosed
	}
	if s.connState != ioprovider.TCPConnected {
		s.port = port
		s.queue = p.byTCPPort[port]
		s.connState = ioprovider.TCPConnected
	}
	return s.connState, nil
}

func (p *Provider) TCPSend(h ioprovider.Handle, b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sockets[h]
	if !ok || s.closed {
		return 0, ioprovider.ErrClosed
	}
	p.sent = append(p.sent, ioprovider.SentDatagram{Handle: h, Data: append([]byte(nil), b...), Port: s.port})
	return len(b), nil
}

func (p *Provider) TCPRecvLine(h ioprovider.Handle, timeoutMs int) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sockets[h]
	if !ok || s.closed {
		return "", ioprovider.ErrClosed
	}
	if len(s.queue) == 0 || s.queue[0].atMs > p.nowMs {
		return "", ioprovider.ErrWouldBlock
	}
	pkt := s.queue[0]
	s.queue = s.queue[1:]
	return string(pkt.payload), nil
}

func (p *Provider) TCPRecvRaw(h ioprovider.Handle, buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sockets[h]
	if !ok || s.closed {
		return 0, ioprovider.ErrClosed
	}
	if len(s.queue) == 0 || s.queue[0].atMs > p.nowMs {
		return 0, ioprovider.ErrWouldBlock
	}
	pkt := s.queue[0]
	s.queue = s.queue[1:]
	n := copy(buf, pkt.payload)
	return n, nil
}

func (p *Provider) Close(h ioprovider.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sockets[h]
	if !ok {
		return ioprovider.ErrClosed
	}
	s.closed = true
	return nil
}

// Sent returns every outbound datagram/segment the core attempted to send
// during the replay, for a CLI to summarize at the end of a run.
func (p *Provider) Sent() []ioprovider.SentDatagram {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ioprovider.SentDatagram(nil), p.sent...)
}

var _ ioprovider.Provider = (*Provider)(nil)
