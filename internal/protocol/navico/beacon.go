// Package navico implements spec.md §4.4's pure encode/decode functions for
// the Navico wire protocol (BR24/3G/4G/HALO), grounded in the teacher's
// internal/lidar/l1packets/parse package: small, allocation-light functions
// that take a byte slice and return a decoded struct or a *core.ParseError,
// with no I/O of their own.
package navico

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/model"
)

// Beacon variants, by payload tag byte at offset 0 (spec.md §4.4: "Navico
// uses distinct layouts for BR24 vs single-range gen3/halo20 vs dual-range
// 4G/HALO").
const (
	tagBR24       byte = 0x01
	tagSingleRange byte = 0x02
	tagDualRange   byte = 0x03
)

const minBeaconLen = 18

// DecodeBeacon parses a Navico discovery beacon. addr is the UDP source the
// beacon arrived from: its IP is used for every address the discovery
// carries and for the discovery key, while the ports come from the payload.
func DecodeBeacon(data []byte, addr *net.UDPAddr) (model.Discovery, error) {
	if len(data) < minBeaconLen {
		return model.Discovery{}, core.NewParseError(core.TooShort, fmt.Sprintf("navico beacon: %d bytes, need >= %d", len(data), minBeaconLen))
	}
	if data[0] != 0x01 && data[0] != 0x02 && data[0] != 0x03 {
		return model.Discovery{}, core.NewParseError(core.InvalidHeader, fmt.Sprintf("navico beacon: unrecognized header byte 0x%02X", data[0]))
	}

	serialBytes := data[2:10]
	serial := fmt.Sprintf("%X", serialBytes)

	reportPort := binary.LittleEndian.Uint16(data[10:12])
	dataPort := binary.LittleEndian.Uint16(data[12:14])
	cmdPort := binary.LittleEndian.Uint16(data[14:16])

	family := model.Family("BR24")
	tentativeModel := "BR24"
	switch data[1] {
	case 0x00:
		family, tentativeModel = "BR24", "BR24"
	case 0x01:
		family, tentativeModel = "3G", "3G"
	case 0x02:
		family, tentativeModel = "4G", "4G"
	case 0xB2:
		family, tentativeModel = "HALO", "HALO24"
	default:
		return model.Discovery{}, core.NewParseError(core.UnknownVariant, fmt.Sprintf("navico beacon: unknown model tag 0x%02X", data[1]))
	}
	_ = family

	ip := addr.IP
	base := model.SocketAddrs{
		Report:  &net.UDPAddr{IP: ip, Port: int(reportPort)},
		Data:    &net.UDPAddr{IP: ip, Port: int(dataPort)},
		Command: &net.UDPAddr{IP: ip, Port: int(cmdPort)},
	}

	d := model.Discovery{
		Key:    model.Key(model.Navico, serial, ip),
		Brand:  model.Navico,
		Model:  tentativeModel,
		Addrs:  base,
		Serial: serial,
	}

	if data[0] == tagDualRange && len(data) >= minBeaconLen+6 {
		bReportPort := binary.LittleEndian.Uint16(data[18:20])
		bDataPort := binary.LittleEndian.Uint16(data[20:22])
		bCmdPort := binary.LittleEndian.Uint16(data[22:24])
		d.AddrsB = &model.SocketAddrs{
			Report:  &net.UDPAddr{IP: ip, Port: int(bReportPort)},
			Data:    &net.UDPAddr{IP: ip, Port: int(bDataPort)},
			Command: &net.UDPAddr{IP: ip, Port: int(bCmdPort)},
		}
	}

	return d, nil
}

// ProbeMessage is the 2-byte address-request the locator sends periodically
// to the Navico beacon multicast address (spec.md §4.5).
var ProbeMessage = []byte{0x01, 0x00}
