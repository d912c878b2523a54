// Package garmin implements spec.md §4.4/§4.6's pure encode/decode
// functions for Garmin's uniform 12-byte packet wire format, shared by both
// the legacy HD and solid-state xHD variants (differing only in their
// opcode ranges). Grounded in the teacher's internal/lidar/l1packets/parse
// package for small decode functions, and its l2frames package for the idea
// of a fixed-width header-plus-value frame.
package garmin

import (
	"encoding/binary"

	"github.com/dirkwa/mayara/internal/core"
)

// PacketLen is Garmin's fixed frame size: packet_type(u32 LE) +
// length(u32 LE) + value(u32 LE) (spec.md §4.6 verbatim).
const PacketLen = 12

// Packet is one decoded 12-byte Garmin frame.
type Packet struct {
	PacketType uint32
	Length     uint32
	Value      uint32
}

// DecodePacket parses exactly one 12-byte Garmin frame.
func DecodePacket(data []byte) (Packet, error) {
	if len(data) < PacketLen {
		return Packet{}, core.NewParseError(core.TooShort, "garmin packet: need 12 bytes")
	}
	return Packet{
		PacketType: binary.LittleEndian.Uint32(data[0:4]),
		Length:     binary.LittleEndian.Uint32(data[4:8]),
		Value:      binary.LittleEndian.Uint32(data[8:12]),
	}, nil
}

// Encode serializes a Packet back to its 12-byte wire form.
func (p Packet) Encode() []byte {
	buf := make([]byte, PacketLen)
	binary.LittleEndian.PutUint32(buf[0:4], p.PacketType)
	binary.LittleEndian.PutUint32(buf[4:8], p.Length)
	binary.LittleEndian.PutUint32(buf[8:12], p.Value)
	return buf
}

func newPacket(packetType, value uint32) Packet {
	return Packet{PacketType: packetType, Length: 4, Value: value}
}
