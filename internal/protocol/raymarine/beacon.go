package raymarine

import (
	"encoding/binary"
	"net"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/model"
)

// ProbeMessage is the 2-byte address request sent to Raymarine's beacon
// multicast group (spec.md §4.5).
var ProbeMessage = []byte{0x02, 0x00}

const minBeaconLen = 16

// modelTag maps the beacon's model-identification byte to a tentative
// model name; the controller may refine or correct this after login.
var modelTag = map[byte]string{
	0x01: "Quantum",
	0x02: "RD424",
}

// DecodeBeacon parses a Raymarine discovery beacon: serial(8) + model(1) +
// reportPort(2) + dataPort(2) + commandPort(2), little-endian.
func DecodeBeacon(data []byte, addr *net.UDPAddr) (model.Discovery, error) {
	if len(data) < minBeaconLen {
		return model.Discovery{}, core.NewParseError(core.TooShort, "raymarine beacon: too short")
	}
	serial := string(data[0:8])
	tag := data[8]
	tentativeModel, ok := modelTag[tag]
	if !ok {
		return model.Discovery{}, core.NewParseError(core.UnknownVariant, "raymarine beacon: unknown model tag")
	}
	reportPort := binary.LittleEndian.Uint16(data[9:11])
	dataPort := binary.LittleEndian.Uint16(data[11:13])
	cmdPort := binary.LittleEndian.Uint16(data[13:15])

	ip := addr.IP
	return model.Discovery{
		Key:   model.Key(model.Raymarine, serial, ip),
		Brand: model.Raymarine,
		Model: tentativeModel,
		Addrs: model.SocketAddrs{
			Report:  &net.UDPAddr{IP: ip, Port: int(reportPort)},
			Data:    &net.UDPAddr{IP: ip, Port: int(dataPort)},
			Command: &net.UDPAddr{IP: ip, Port: int(cmdPort)},
		},
		Serial: serial,
	}, nil
}
