package garmin

// Variant distinguishes Garmin's legacy HD opcode range from the
// solid-state xHD range (spec.md §4.6: "Legacy HD and xHD use different
// opcodes for the same functions (HD: 0x02B2-0x02BE range; xHD: 0x09xx
// range); the controller detects variant from first reports").
type Variant int

const (
	VariantUnknown Variant = iota
	VariantHD
	VariantXHD
)

// VariantForPacketType classifies an observed packet_type into the HD or
// xHD opcode family, or VariantUnknown if it falls in neither documented
// range.
func VariantForPacketType(packetType uint32) Variant {
	switch {
	case packetType >= 0x02B2 && packetType <= 0x02BE:
		return VariantHD
	case packetType >= 0x0900 && packetType <= 0x09FF:
		return VariantXHD
	default:
		return VariantUnknown
	}
}

// opcode tables: control id -> {mode packet_type, value packet_type}. Only
// gain/sea/rain are mode+value pairs (spec.md §4.6: "Gain, sea, and rain
// each require TWO packets"); the rest are single packets.
type opcodePair struct {
	mode  uint32
	value uint32
}

var xhdPair = map[string]opcodePair{
	"gain": {0x0924, 0x0925},
	"sea":  {0x0926, 0x0927},
	"rain": {0x0928, 0x0929},
}

var xhdSingle = map[string]uint32{
	"power":            0x0901,
	"range":            0x0902,
	"bearingAlignment": 0x0903,
}

var xhdZoneAngles = map[string]uint32{
	"noTransmitZoneStart": 0x0905,
	"noTransmitZoneEnd":   0x0906,
}

var hdPair = map[string]opcodePair{
	"gain": {0x02B2, 0x02B3},
	"sea":  {0x02B4, 0x02B5},
	"rain": {0x02B6, 0x02B7},
}

var hdSingle = map[string]uint32{
	"power":            0x02B8,
	"range":            0x02B9,
	"bearingAlignment": 0x02BA,
}

var hdZoneAngles = map[string]uint32{
	"noTransmitZoneStart": 0x02BB,
	"noTransmitZoneEnd":   0x02BC,
}

func tablesFor(v Variant) (map[string]opcodePair, map[string]uint32, map[string]uint32) {
	if v == VariantHD {
		return hdPair, hdSingle, hdZoneAngles
	}
	return xhdPair, xhdSingle, xhdZoneAngles
}
