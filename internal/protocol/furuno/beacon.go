// Package furuno implements spec.md §4.4's pure encode/decode functions for
// the Furuno wire protocol (DRS4D-NXT/DRS6A-NXT): a UDP broadcast discovery
// probe/reply followed by a TCP login + ASCII command/report stream.
// Grounded in the teacher's internal/lidar/l1packets/parse package (small,
// allocation-light decode functions returning a struct or *core.ParseError)
// and its serial.go (line-oriented ASCII protocol handling).
package furuno

import (
	"fmt"
	"net"
	"strings"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/model"
)

// ProbeMessage is the broadcast announce Furuno radars respond to (spec.md
// §4.5: "broadcast-capable UDP for Furuno's probe").
var ProbeMessage = []byte{0x00, 0x01}

const replyPrefix = "FURUNORADAR"

// DecodeBeaconReply parses a Furuno UDP discovery reply line of the form
// "FURUNORADAR,<serial>,<cmdport>". The radar's model isn't known at this
// stage: Furuno only reveals it via the TCP $N96 reply after login.
func DecodeBeaconReply(line []byte, addr *net.UDPAddr) (model.Discovery, error) {
	text := strings.TrimSpace(string(line))
	if !strings.HasPrefix(text, replyPrefix) {
		return model.Discovery{}, core.NewParseError(core.InvalidHeader, "furuno beacon: missing FURUNORADAR prefix")
	}
	fields := strings.Split(text, ",")
	if len(fields) < 3 {
		return model.Discovery{}, core.NewParseError(core.TooShort, "furuno beacon: need serial and command port fields")
	}
	serial := fields[1]
	var cmdPort int
	if _, err := fmt.Sscanf(fields[2], "%d", &cmdPort); err != nil {
		return model.Discovery{}, core.NewParseError(core.InvalidHeader, "furuno beacon: non-numeric command port")
	}

	ip := addr.IP
	return model.Discovery{
		Key:   model.Key(model.Furuno, serial, ip),
		Brand: model.Furuno,
		Model: "UNKNOWN",
		Addrs: model.SocketAddrs{
			Command: &net.UDPAddr{IP: ip, Port: cmdPort},
		},
		Serial: serial,
	}, nil
}
