package raymarine

import (
	"encoding/binary"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/model"
)

// spokeHeaderLen: angle(u16) + range(u32) + heading(u16), little-endian,
// followed by one 8-bit intensity byte per pixel (spec.md §3: "Garmin/
// Raymarine: 8-bit").
const spokeHeaderLen = 8

// DecodeSpoke decodes one Raymarine data packet, which carries exactly one
// spoke per datagram.
func DecodeSpoke(radarID string, data []byte, info model.Info, nowMs int64) (core.Spoke, error) {
	if len(data) < spokeHeaderLen {
		return core.Spoke{}, core.NewParseError(core.TooShort, "raymarine spoke frame")
	}
	angleRaw := binary.LittleEndian.Uint16(data[0:2])
	rangeRaw := binary.LittleEndian.Uint32(data[2:6])
	headingRaw := binary.LittleEndian.Uint16(data[6:8])
	pixels := append([]byte(nil), data[spokeHeaderLen:]...)

	hasHeading := headingRaw != 0xFFFF
	flag := core.HeadingTrue
	headingDeg := float64(headingRaw&0x7FFF) * 360.0 / 32768.0
	if headingRaw&0x8000 != 0 {
		flag = core.HeadingMagnetic
	}

	return core.Spoke{
		RadarID:     radarID,
		AngleIndex:  int(angleRaw) % info.SpokesPerRevolution,
		RangeMeters: float64(rangeRaw),
		HasHeading:  hasHeading,
		HeadingDeg:  headingDeg,
		HeadingFlag: flag,
		TimestampMs: nowMs,
		Intensity:   pixels,
	}, nil
}
