// Package raymarine implements spec.md §4.4/§4.6's pure encode/decode
// functions for Raymarine's two incompatible wire variants: Quantum
// (solid-state) and RD (magnetron). Grounded in the teacher's
// internal/lidar/l1packets/parse package for decode shape, and in its
// serialmux package for the idea of a small per-variant dispatch table
// selected at runtime from an identified model.
package raymarine

import (
	"math"

	"github.com/dirkwa/mayara/internal/core"
)

// Variant distinguishes Raymarine's two command-prefix families (spec.md
// §4.6: "selecting the wrong variant will silently fail on the wire").
type Variant int

const (
	VariantUnknown Variant = iota
	VariantQuantum
	VariantRD
)

// VariantForModel resolves the wire variant from an identified model name.
func VariantForModel(modelName string) Variant {
	switch modelName {
	case "Quantum", "Quantum 2":
		return VariantQuantum
	case "RD424", "RD418D":
		return VariantRD
	default:
		return VariantUnknown
	}
}

// opcode table: control id -> 16-bit opcode (Quantum) / lead-byte sequence
// (RD). Both variants address the same conceptual controls through
// different wire shapes.
var quantumOpcodes = map[string]uint16{
	"power":                 0x0001,
	"range":                 0x0002,
	"gain":                  0x0003,
	"sea":                   0x0004,
	"rain":                  0x0005,
	"interferenceRejection": 0x0006,
	"targetExpansion":       0x0007,
	"doppler":               0x0008,
}

var rdLeadBytes = map[string][]byte{
	"power":                 {0x10},
	"range":                 {0x11},
	"gain":                  {0x12},
	"sea":                   {0x13},
	"rain":                  {0x14},
	"interferenceRejection": {0x15},
}

// EncodeControl produces the wire bytes for a control set request, per the
// variant selected at runtime (spec.md §4.6).
func EncodeControl(v Variant, controlID string, value core.ControlValue) ([]byte, error) {
	switch v {
	case VariantQuantum:
		return encodeQuantum(controlID, value)
	case VariantRD:
		return encodeRD(controlID, value)
	default:
		return nil, core.NewControlError(core.ControllerNotAvailable, "raymarine: model variant not yet identified")
	}
}

// encodeQuantum builds [opcode_lo, opcode_hi, 0x28, 0x00, 0x00, value...]
// (spec.md §4.6 verbatim).
func encodeQuantum(controlID string, value core.ControlValue) ([]byte, error) {
	opcode, ok := quantumOpcodes[controlID]
	if !ok {
		return nil, core.NewControlError(core.ControlNotFound, controlID)
	}
	valBytes, err := encodeValue(controlID, value)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, 5+len(valBytes))
	buf = append(buf, byte(opcode), byte(opcode>>8), 0x28, 0x00, 0x00)
	buf = append(buf, valBytes...)
	return buf, nil
}

// encodeRD builds [0x00, 0xC1, lead_bytes..., value, 0x00...] (spec.md §4.6
// verbatim).
func encodeRD(controlID string, value core.ControlValue) ([]byte, error) {
	lead, ok := rdLeadBytes[controlID]
	if !ok {
		return nil, core.NewControlError(core.ControlNotFound, controlID)
	}
	valBytes, err := encodeValue(controlID, value)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, 2+len(lead)+len(valBytes)+1)
	buf = append(buf, 0x00, 0xC1)
	buf = append(buf, lead...)
	buf = append(buf, valBytes...)
	buf = append(buf, 0x00)
	return buf, nil
}

func encodeValue(controlID string, v core.ControlValue) ([]byte, error) {
	switch controlID {
	case "power":
		if v.Enum == "" {
			return nil, core.NewControlError(core.InvalidValue, "power requires an enum value")
		}
		switch core.PowerState(v.Enum) {
		case core.PowerOff:
			return []byte{0x00}, nil
		case core.PowerStandby:
			return []byte{0x01}, nil
		case core.PowerTransmit:
			return []byte{0x02}, nil
		default:
			return nil, core.NewControlError(core.InvalidValue, "power: unsupported state "+v.Enum)
		}
	case "range":
		if v.Number == nil {
			return nil, core.NewControlError(core.InvalidValue, controlID+" requires a numeric value")
		}
		meters := uint32(*v.Number)
		return []byte{byte(meters), byte(meters >> 8), byte(meters >> 16), byte(meters >> 24)}, nil
	case "gain", "sea", "rain":
		if v.Number == nil {
			return nil, core.NewControlError(core.InvalidValue, controlID+" requires a numeric value")
		}
		pct := *v.Number
		if pct < 0 || pct > 100 {
			return nil, core.NewControlError(core.InvalidValue, controlID+" must be within 0-100")
		}
		return []byte{byte(math.Round(pct * 255 / 100))}, nil
	case "interferenceRejection", "doppler":
		if v.Enum == "" {
			return nil, core.NewControlError(core.InvalidValue, controlID+" requires an enum value")
		}
		return []byte{enumOrdinal(v.Enum)}, nil
	case "targetExpansion":
		if v.Bool == nil {
			return nil, core.NewControlError(core.InvalidValue, controlID+" requires a boolean value")
		}
		if *v.Bool {
			return []byte{0x01}, nil
		}
		return []byte{0x00}, nil
	default:
		return nil, core.NewControlError(core.ControlNotFound, controlID)
	}
}

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
