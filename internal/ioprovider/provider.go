// Package ioprovider defines the only platform-dependent surface the radar
// core touches (spec.md §4.1, §6.1). Every operation is poll-based and MUST
// NOT suspend the calling goroutine for longer than a bounded quantum — the
// host decides cadence by how often it calls Engine.Poll.
//
// The shape mirrors the teacher's network.UDPSocket / network.UDPSocketFactory
// split (a factory that creates handles, handles that do non-blocking I/O)
// generalized to also cover TCP and the handful of utility operations the
// core needs (monotonic time, a debug sink).
package ioprovider

import (
	"errors"
	"net"
)

// Handle is an opaque, integer-like socket token the provider tracks
// internally. The core never dereferences it.
type Handle uint64

// Kind distinguishes the two socket families a Provider can create.
type Kind int

const (
	KindUDP Kind = iota
	KindTCP
)

// Sentinel errors distinguishing benign from fatal I/O outcomes (spec §4.1,
// §7 IoError taxonomy). WouldBlock is expected and must never be logged as
// a failure; Closed/Unreachable/OsError are not.
var (
	// ErrWouldBlock indicates no data/completion was available this poll;
	// benign and expected under the cooperative scheduling model (spec §5).
	ErrWouldBlock = errors.New("ioprovider: would block")
	// ErrClosed indicates the peer or local handle has been closed.
	ErrClosed = errors.New("ioprovider: closed")
	// ErrUnreachable indicates the destination could not be reached
	// (ICMP unreachable, routing failure).
	ErrUnreachable = errors.New("ioprovider: unreachable")
)

// OsError wraps an underlying OS-level failure the core cannot interpret
// further than "this socket is unhealthy"; callers log it and back off.
type OsError struct {
	Op  string
	Err error
}

func (e *OsError) Error() string { return "ioprovider: os error during " + e.Op + ": " + e.Err.Error() }
func (e *OsError) Unwrap() error { return e.Err }

// UDPOptions configures a UDP socket at creation time.
type UDPOptions struct {
	// BindAddr is the local address to bind to; nil means unbound (ephemeral
	// local port, used for locator probes and command sockets).
	BindAddr *net.UDPAddr
	Reuse    bool
	Broadcast bool
	// MulticastTTL, when > 0, is set on the socket before any send.
	MulticastTTL int
}

// TCPConnState reports the non-blocking connect lifecycle (spec §6.1:
// "connect (non-blocking; connection status queried by subsequent send/recv
// behavior)").
type TCPConnState int

const (
	TCPConnecting TCPConnState = iota
	TCPConnected
	TCPFailed
)

// Provider is the capability set a host must implement for the core to run.
// Operations are grouped the way spec.md §4.1/§6.1 enumerates them.
type Provider interface {
	// UDPCreate opens a UDP socket per opts and returns its handle.
	UDPCreate(opts UDPOptions) (Handle, error)
	// UDPJoinMulticast joins group on the given local interface address.
	UDPJoinMulticast(h Handle, group net.IP, iface net.IP) error
	// UDPSendTo sends bytes to addr:port. Returns bytes written, or
	// ErrWouldBlock if the send buffer is full.
	UDPSendTo(h Handle, b []byte, addr net.IP, port int) (int, error)
	// UDPRecvFrom performs a non-blocking receive into buf. Returns
	// ErrWouldBlock when nothing is pending.
	UDPRecvFrom(h Handle, buf []byte) (n int, source *net.UDPAddr, err error)

	// TCPCreate allocates a TCP handle not yet connected.
	TCPCreate() (Handle, error)
	// TCPConnect begins (or polls) a non-blocking connect. Callers poll
	// this until it returns TCPConnected or TCPFailed.
	TCPConnect(h Handle, addr net.IP, port int) (TCPConnState, error)
	// TCPSend writes bytes, non-blocking.
	TCPSend(h Handle, b []byte) (int, error)
	// TCPRecvLine reads one terminator-delimited line, or ErrWouldBlock if
	// no full line is available within timeoutMs.
	TCPRecvLine(h Handle, timeoutMs int) (string, error)
	// TCPRecvRaw reads whatever raw bytes are pending into buf, non-blocking.
	TCPRecvRaw(h Handle, buf []byte) (int, error)

	// Close releases a handle of either kind and drops multicast memberships.
	Close(h Handle) error

	// CurrentTimeMs returns a monotonic, non-decreasing millisecond clock.
	CurrentTimeMs() int64

	// Debug emits a structured diagnostic at the given level (0=debug,
	// 1=warn, 2=error), matching spec §6.1's debug(level, message).
	Debug(level int, message string)
}
