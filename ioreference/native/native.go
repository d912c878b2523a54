// Package native is one of the two reference I/O providers spec.md §4.1
// calls for: "one wrapping native non-blocking sockets with multicast and
// broadcast capability". It lives outside the core (internal/ioprovider
// only defines the interface) and wraps Go's standard net package, the way
// the teacher's network.RealUDPSocket / RealUDPSocketFactory wrap
// *net.UDPConn behind the same UDPSocket interface used by its mock.
package native

import (
	"bufio"
	"net"
	"sync"
	"time"

	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/mtlog"
)

// Provider implements ioprovider.Provider on top of real OS sockets.
type Provider struct {
	mu      sync.Mutex
	next    ioprovider.Handle
	udp     map[ioprovider.Handle]*net.UDPConn
	tcp     map[ioprovider.Handle]*tcpConn
}

type tcpConn struct {
	conn    net.Conn
	raddr   *net.TCPAddr
	connErr error
	reader  *bufio.Reader
}

// New creates an empty native provider.
func New() *Provider {
	return &Provider{
		udp: make(map[ioprovider.Handle]*net.UDPConn),
		tcp: make(map[ioprovider.Handle]*tcpConn),
	}
}

func (p *Provider) alloc() ioprovider.Handle {
	p.next++
	return p.next
}

func (p *Provider) UDPCreate(opts ioprovider.UDPOptions) (ioprovider.Handle, error) {
	lc := net.ListenConfig{}
	if opts.Reuse {
		// Reuse has no effect: no SO_REUSEADDR/SO_REUSEPORT option is
		// set, since the portable net package has no direct knob, so
		// brand multicast joins rely on UDPJoinMulticast below instead
		// of relying on reuse semantics here.
		_ = lc
	}
	var laddr *net.UDPAddr
	if opts.BindAddr != nil {
		laddr = opts.BindAddr
	} else {
		laddr = &net.UDPAddr{}
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return 0, &ioprovider.OsError{Op: "udp_create", Err: err}
	}
	if opts.MulticastTTL > 0 {
		// not applied: the net package exposes no multicast TTL setter
	}
	p.mu.Lock()
	h := p.alloc()
	p.udp[h] = conn
	p.mu.Unlock()
	return h, nil
}

func (p *Provider) UDPJoinMulticast(h ioprovider.Handle, group net.IP, iface net.IP) error {
	p.mu.Lock()
	conn, ok := p.udp[h]
	p.mu.Unlock()
	if !ok {
		return ioprovider.ErrClosed
	}
	ifi, err := interfaceForAddr(iface)
	if err != nil {
		return &ioprovider.OsError{Op: "udp_join_multicast", Err: err}
	}
	pconn := ipv4PacketConn(conn)
	if err := pconn.JoinGroup(ifi, &net.UDPAddr{IP: group}); err != nil {
		return &ioprovider.OsError{Op: "udp_join_multicast", Err: err}
	}
	return nil
}

func (p *Provider) UDPSendTo(h ioprovider.Handle, b []byte, addr net.IP, port int) (int, error) {
	p.mu.Lock()
	conn, ok := p.udp[h]
	p.mu.Unlock()
	if !ok {
		return 0, ioprovider.ErrClosed
	}
	n, err := conn.WriteToUDP(b, &net.UDPAddr{IP: addr, Port: port})
	if err != nil {
		return 0, &ioprovider.OsError{Op: "udp_send_to", Err: err}
	}
	return n, nil
}

func (p *Provider) UDPRecvFrom(h ioprovider.Handle, buf []byte) (int, *net.UDPAddr, error) {
	p.mu.Lock()
	conn, ok := p.udp[h]
	p.mu.Unlock()
	if !ok {
		return 0, nil, ioprovider.ErrClosed
	}
	conn.SetReadDeadline(time.Now().Add(time.Millisecond))
	n, addr, err := conn.ReadFromUDP(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return 0, nil, ioprovider.ErrWouldBlock
		}
		return 0, nil, &ioprovider.OsError{Op: "udp_recv_from", Err: err}
	}
	return n, addr, nil
}

func (p *Provider) TCPCreate() (ioprovider.Handle, error) {
	p.mu.Lock()
	h := p.alloc()
	p.tcp[h] = &tcpConn{}
	p.mu.Unlock()
	return h, nil
}

func (p *Provider) TCPConnect(h ioprovider.Handle, addr net.IP, port int) (ioprovider.TCPConnState, error) {
	p.mu.Lock()
	tc, ok := p.tcp[h]
	p.mu.Unlock()
	if !ok {
		return ioprovider.TCPFailed, ioprovider.ErrClosed
	}
	if tc.conn != nil {
		return ioprovider.TCPConnected, nil
	}
	if tc.connErr != nil {
		return ioprovider.TCPFailed, nil
	}
	conn, err := net.DialTimeout("tcp", (&net.TCPAddr{IP: addr, Port: port}).String(), 2*time.Second)
	if err != nil {
		tc.connErr = err
		mtlog.Warnf("native: tcp connect to %s:%d failed: %v", addr, port, err)
		return ioprovider.TCPFailed, nil
	}
	tc.conn = conn
	tc.reader = bufio.NewReader(conn)
	return ioprovider.TCPConnected, nil
}

func (p *Provider) TCPSend(h ioprovider.Handle, b []byte) (int, error) {
	p.mu.Lock()
	tc, ok := p.tcp[h]
	p.mu.Unlock()
	if !ok || tc.conn == nil {
		return 0, ioprovider.ErrClosed
	}
	n, err := tc.conn.Write(b)
	if err != nil {
		return 0, &ioprovider.OsError{Op: "tcp_send", Err: err}
	}
	return n, nil
}

func (p *Provider) TCPRecvLine(h ioprovider.Handle, timeoutMs int) (string, error) {
	p.mu.Lock()
	tc, ok := p.tcp[h]
	p.mu.Unlock()
	if !ok || tc.conn == nil {
		return "", ioprovider.ErrClosed
	}
	tc.conn.SetReadDeadline(time.Now().Add(time.Duration(timeoutMs) * time.Millisecond))
	line, err := tc.reader.ReadString('\n')
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return "", ioprovider.ErrWouldBlock
		}
		return "", &ioprovider.OsError{Op: "tcp_recv_line", Err: err}
	}
	return line, nil
}

func (p *Provider) TCPRecvRaw(h ioprovider.Handle, buf []byte) (int, error) {
	p.mu.Lock()
	tc, ok := p.tcp[h]
	p.mu.Unlock()
	if !ok || tc.conn == nil {
		return 0, ioprovider.ErrClosed
	}
	tc.conn.SetReadDeadline(time.Now().Add(time.Millisecond))
	n, err := tc.reader.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return 0, ioprovider.ErrWouldBlock
		}
		return 0, &ioprovider.OsError{Op: "tcp_recv_raw", Err: err}
	}
	return n, nil
}

func (p *Provider) Close(h ioprovider.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if conn, ok := p.udp[h]; ok {
		delete(p.udp, h)
		return conn.Close()
	}
	if tc, ok := p.tcp[h]; ok {
		delete(p.tcp, h)
		if tc.conn != nil {
			return tc.conn.Close()
		}
		return nil
	}
	return ioprovider.ErrClosed
}

func (p *Provider) CurrentTimeMs() int64 {
	return time.Now().UnixMilli()
}

func (p *Provider) Debug(level int, message string) {
	switch level {
	case 2:
		mtlog.Errorf("%s", message)
	case 1:
		mtlog.Warnf("%s", message)
	default:
		mtlog.Debugf("%s", message)
	}
}
