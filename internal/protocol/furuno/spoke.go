package furuno

import (
	"encoding/binary"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/model"
)

// Furuno streams spokes over a second TCP connection as fixed-size binary
// frames: angle(u16) + range_meters(u32) + heading(u16, top bit = magnetic
// flag) + N 8-bit intensity pixels (spec.md §3: "Garmin/Raymarine: 8-bit;
// Furuno: brand-specific" -- DRS-NXT uses a flat 8-bit encoding, unlike
// Navico's 4-bit packing).
const spokeHeaderLen = 8

// DecodeSpoke decodes one fixed-size Furuno spoke frame.
func DecodeSpoke(radarID string, data []byte, info model.Info, nowMs int64) (core.Spoke, error) {
	if len(data) < spokeHeaderLen {
		return core.Spoke{}, core.NewParseError(core.TooShort, "furuno spoke frame")
	}
	angleRaw := binary.BigEndian.Uint16(data[0:2])
	rangeRaw := binary.BigEndian.Uint32(data[2:6])
	headingRaw := binary.BigEndian.Uint16(data[6:8])
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
