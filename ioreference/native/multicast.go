package native

import (
	"fmt"
	"net"

	"golang.org/x/net/ipv4"
)

// ipv4PacketConn adapts a *net.UDPConn to an *ipv4.PacketConn for multicast
// group membership management.
func ipv4PacketConn(conn *net.UDPConn) *ipv4.PacketConn {
	return ipv4.NewPacketConn(conn)
}

// interfaceForAddr finds the local net.Interface whose address list
// contains iface, matching the host-provided "interface selection" the
// locator passes through (spec.md §4.5: "for each interface... create the
// required sockets").
func interfaceForAddr(iface net.IP) (*net.Interface, error) {
	if iface == nil || iface.IsUnspecified() {
		return nil, nil
	}
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	for i := range ifaces {
		addrs, err := ifaces[i].Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipNet, ok := a.(*net.IPNet)
			if ok && ipNet.IP.Equal(iface) {
				return &ifaces[i], nil
			}
		}
	}
	return nil, fmt.Errorf("no local interface with address %s", iface)
}
