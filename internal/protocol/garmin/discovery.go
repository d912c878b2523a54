package garmin

import (
	"net"

	"github.com/dirkwa/mayara/internal/model"
)

// ReportMulticastAddr is the group Garmin radars emit reports/spokes on
// (spec.md §8 scenario S3: "239.254.2.0:50100").
var ReportMulticastAddr = &net.UDPAddr{IP: net.ParseIP("239.254.2.0"), Port: 50100}

// CommandPort is the unicast port commands are sent to on the radar's
// source IP (spec.md §8 scenario S3: "the radar IP:50101").
const CommandPort = 50101

// scannerMessageReportType is Garmin's 0x099B scanner-message packet, whose
// payload carries the radar's serial; not always the first packet seen, so
// serial-based disambiguation is opportunistic (spec.md's documented Open
// Question).
const scannerMessageReportType = 0x099B

// DiscoverFromPacket treats any packet observed on the report multicast
// group as an implicit discovery: the source IP becomes the command target
// (spec.md §4.4: "Garmin has no structured beacon... source IP becomes the
// command target"). serial is empty unless this packet happens to be the
// 0x099B scanner message, in which case its value field is used as a crude
// numeric serial.
func DiscoverFromPacket(p Packet, source *net.UDPAddr) model.Discovery {
	serial := ""
	if p.PacketType == scannerMessageReportType {
		serial = formatSerial(p.Value)
	}

	ip := source.IP
	return model.Discovery{
		Key:   model.Key(model.Garmin, serial, ip),
		Brand: model.Garmin,
		Model: "UNKNOWN",
		Addrs: model.SocketAddrs{
			Report:  ReportMulticastAddr,
			Data:    ReportMulticastAddr,
			Command: &net.UDPAddr{IP: ip, Port: CommandPort},
		},
		Serial: serial,
	}
}

func formatSerial(raw uint32) string {
	if raw == 0 {
		return ""
	}
	const hexDigits = "0123456789ABCDEF"
	buf := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		buf[i] = hexDigits[raw&0xF]
		raw >>= 4
	}
	return string(buf)
}
