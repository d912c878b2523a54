package navico

import (
	"math"

	"github.com/dirkwa/mayara/internal/core"
)

// Command payload tags (spec.md §4.4 / §8 scenario S1: "06 C1 ... encodes a
// Navico gain command").
const (
	cmdRange     byte = 0x03
	cmdGain      byte = 0x06
	cmdSea       byte = 0x06
	cmdRain      byte = 0x06
	cmdPower     byte = 0x01
	cmdExtended  byte = 0x0A
)

// control sub-tags, second byte of a 0x06-family command (spec.md's "06 C1"
// example is the gain sub-tag).
const (
	subGain byte = 0xC1
	subSea  byte = 0xC2
	subRain byte = 0xC3
)

// EncodeControl produces the wire bytes for one control update/set request.
// Returns (nil, ControlError{ControlNotFound}) for ids this brand doesn't
// support.
func EncodeControl(controlID string, v core.ControlValue) ([]byte, error) {
	switch controlID {
	case "power":
		return encodePower(v)
	case "range":
		return encodeRange(v)
	case "gain":
		return encodeGainSeaLike(subGain, v)
	case "sea":
		return encodeGainSeaLike(subSea, v)
	case "rain":
		return encodeRainLike(subRain, v)
	case "interferenceRejection":
		return encodeEnumExtended(0x01, v)
	case "targetExpansion":
		return encodeEnumExtended(0x02, v)
	case "targetSeparation":
		return encodeEnumExtended(0x03, v)
	case "doppler":
		return encodeEnumExtended(0x04, v)
	case "dopplerThreshold":
		return encodeScaledExtended(0x05, v)
	case "noiseRejection":
		return encodeEnumExtended(0x06, v)
	case "targetAnalyzer":
		return encodeEnumExtended(0x07, v)
	case "targetBoost":
		return encodeEnumExtended(0x08, v)
	case "bearingAlignment":
		return encodeDegreesExtended(0x09, v)
	case "fastScan":
		return encodeBoolExtended(0x0A, v)
	default:
		return nil, core.NewControlError(core.ControlNotFound, controlID)
	}
}

// encodeGainSeaLike produces an 11-byte "06 <sub> <auto> 00*7 <value>"
// payload. For manual mode, auto=0x00 and value is the control's percentage
// scaled into 0-255 (spec scenario S1: gain manual 50% -> value byte 0x80).
func encodeGainSeaLike(sub byte, v core.ControlValue) ([]byte, error) {
	if v.Number == nil {
		return nil, core.NewControlError(core.InvalidValue, "gain/sea require a numeric value")
	}
	pct := *v.Number
	if pct < 0 || pct > 100 {
		return nil, core.NewControlError(core.InvalidValue, "gain/sea must be within 0-100")
	}
	auto := byte(0x00)
	if v.Mode == "auto" {
		auto = 0x01
	}
	value := byte(math.Round(pct * 255 / 100))
	buf := make([]byte, 11)
	buf[0] = cmdGain
	buf[1] = sub
	buf[2] = auto
	buf[10] = value
	return buf, nil
}

func encodeRainLike(sub byte, v core.ControlValue) ([]byte, error) {
	if v.Number == nil {
		return nil, core.NewControlError(core.InvalidValue, "rain requires a numeric value")
	}
	pct := *v.Number
	if pct < 0 || pct > 100 {
		return nil, core.NewControlError(core.InvalidValue, "rain must be within 0-100")
	}
	value := byte(math.Round(pct * 255 / 100))
	buf := make([]byte, 11)
	buf[0] = cmdRain
	buf[1] = sub
	buf[10] = value
	return buf, nil
}

func encodeRange(v core.ControlValue) ([]byte, error) {
	if v.Number == nil {
		return nil, core.NewControlError(core.InvalidValue, "range requires a numeric value")
	}
	meters := uint32(*v.Number)
	buf := make([]byte, 6)
	buf[0] = cmdRange
	buf[1] = 0x00
	buf[2] = byte(meters)
	buf[3] = byte(meters >> 8)
	buf[4] = byte(meters >> 16)
	buf[5] = byte(meters >> 24)
	return buf, nil
}

func encodePower(v core.ControlValue) ([]byte, error) {
	var state byte
	switch v.Enum {
	case string(core.PowerOff):
		state = 0x00
	case string(core.PowerStandby):
		state = 0x01
	case string(core.PowerTransmit):
		state = 0x04
	default:
		return nil, core.NewControlError(core.InvalidValue, "power: unsupported state "+v.Enum)
	}
	return []byte{cmdPower, 0x00, state}, nil
}

func encodeEnumExtended(sub byte, v core.ControlValue) ([]byte, error) {
	if v.Enum == "" {
		return nil, core.NewControlError(core.InvalidValue, "expects an enum value")
	}
	return []byte{cmdExtended, sub, enumOrdinal(v.Enum)}, nil
}

func encodeBoolExtended(sub byte, v core.ControlValue) ([]byte, error) {
	if v.Bool == nil {
		return nil, core.NewControlError(core.InvalidValue, "expects a boolean value")
	}
	b := byte(0)
	if *v.Bool {
		b = 1
	}
	return []byte{cmdExtended, sub, b}, nil
}

func encodeScaledExtended(sub byte, v core.ControlValue) ([]byte, error) {
	if v.Number == nil {
		return nil, core.NewControlError(core.InvalidValue, "expects a numeric value")
	}
	return []byte{cmdExtended, sub, byte(math.Round(*v.Number * 255 / 100))}, nil
}

func encodeDegreesExtended(sub byte, v core.ControlValue) ([]byte, error) {
	if v.Number == nil {
		return nil, core.NewControlError(core.InvalidValue, "expects a numeric degrees value")
	}
	raw := int16(*v.Number * 32)
	return []byte{cmdExtended, sub, byte(raw), byte(raw >> 8)}, nil
}

// enumOrdinal is a small stable mapping from known enum label strings to a
// wire ordinal; unrecognized labels map to 0, the same ordinal as "off".
func enumOrdinal(label string) byte {
	switch label {
	case "off":
		return 0
	case "low":
		return 1
	case "medium":
		return 2
	case "high":
		return 3
	default:
		return 0
	}
}
