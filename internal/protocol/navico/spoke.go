package navico

import (
	"encoding/binary"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/model"
)

// frameHeaderLen is the fixed portion preceding the repeated spoke records
// in a Navico data packet (spec.md §4.4: "a UDP packet potentially
// containing multiple spokes (frame header + N spoke records)").
const frameHeaderLen = 4

// spokeHeaderLen: angle(u16) + range(u32) + heading(u16; top bit set =
// magnetic, clear = true; 0xFFFF = no heading).
const spokeHeaderLen = 8

// DecodeSpoke decodes a Navico data packet into zero or more normalized
// spokes. info supplies MaxSpokeLength and whether Doppler pixel remapping
// applies (HALO: info.Features.HasDoppler).
func DecodeSpoke(radarID string, data []byte, info model.Info, nowMs int64, dopplerActive bool) ([]core.Spoke, error) {
	if len(data) < frameHeaderLen+spokeHeaderLen {
		return nil, core.NewParseError(core.TooShort, "navico spoke frame")
	}
	spokeCount := int(data[1])
	pixelBytes := int(binary.LittleEndian.Uint16(data[2:4]))

	offset := frameHeaderLen
	out := make([]core.Spoke, 0, spokeCount)
	for i := 0; i < spokeCount; i++ {
		if offset+spokeHeaderLen > len(data) {
			return out, core.NewParseError(core.TooShort, "navico spoke record header")
		}
		angleRaw := binary.LittleEndian.Uint16(data[offset : offset+2])
		rangeRaw := binary.LittleEndian.Uint32(data[offset+2 : offset+6])
		headingRaw := binary.LittleEndian.Uint16(data[offset+6 : offset+8])
		offset += spokeHeaderLen

		packedLen := (pixelBytes + 1) / 2
		if offset+packedLen > len(data) {
			return out, core.NewParseError(core.TooShort, "navico spoke pixels")
		}
		packed := data[offset : offset+packedLen]
		offset += packedLen

		pixels := unpack4bit(packed, pixelBytes)
		if dopplerActive {
			remapDoppler(pixels)
		}

		hasHeading := headingRaw != 0xFFFF
		flag := core.HeadingTrue
		headingDeg := float64(headingRaw&0x7FFF) * 360.0 / 32768.0
		if headingRaw&0x8000 != 0 {
			flag = core.HeadingMagnetic
		}

		out = append(out, core.Spoke{
			RadarID:     radarID,
			AngleIndex:  int(angleRaw) % info.SpokesPerRevolution,
			RangeMeters: float64(rangeRaw),
			HasHeading:  hasHeading,
			HeadingDeg:  headingDeg,
			HeadingFlag: flag,
			TimestampMs: nowMs,
			Intensity:   pixels,
		})
	}
	return out, nil
}

// unpack4bit expands n nibble-packed pixels (Navico's 4-bit intensity
// encoding, spec.md §4.4) into one byte per pixel, scaled into 0-255.
func unpack4bit(packed []byte, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := packed[i/2]
		var nibble byte
		if i%2 == 0 {
			nibble = b & 0x0F
		} else {
			nibble = b >> 4
		}
		out[i] = nibble * 17 // scale 0-15 -> 0-255
	}
	return out
}

// remapDoppler rewrites the two reserved HALO Doppler pixel codes in place
// (spec.md §3, §4.4): value 0x0F (pre-scaling nibble) collides with the
// scaled sentinel range, so doppler detection happens on the raw nibble
// before scaling in practice; here pixels are already scaled, so the
// sentinels are represented at their scaled values (0x0F*17=0xFF,
// 0x0E*17=0xEE) reserved by convention once doppler mode is active.
func remapDoppler(pixels []byte) {
	for i, p := range pixels {
		switch p {
		case 0xFF:
			pixels[i] = core.DopplerApproaching
		case 0xEE:
			pixels[i] = core.DopplerReceding
		}
	}
}
