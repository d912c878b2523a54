package raymarine

import (
	"github.com/dirkwa/mayara/internal/core"
)

var quantumOpcodeToControl = reverseOpcodes(quantumOpcodes)

func reverseOpcodes(m map[string]uint16) map[uint16]string {
	out := make(map[uint16]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

var rdLeadToControl = reverseLead(rdLeadBytes)

func reverseLead(m map[string][]byte) map[byte]string {
	out := make(map[byte]string, len(m))
	for k, v := range m {
		if len(v) == 1 {
			out[v[0]] = k
		}
	}
	return out
}

// DecodeReport decodes one report datagram per the variant's wire shape
// (mirrors EncodeControl's layouts, spec.md §4.6).
func DecodeReport(v Variant, data []byte) (*core.ControlUpdate, error) {
	switch v {
	case VariantQuantum:
		return decodeQuantumReport(data)
	case VariantRD:
		return decodeRDReport(data)
	default:
		return nil, core.NewParseError(core.UnknownVariant, "raymarine report: model variant not yet identified")
	}
}

func decodeQuantumReport(data []byte) (*core.ControlUpdate, error) {
	if len(data) < 6 {
		return nil, core.NewParseError(core.TooShort, "raymarine quantum report")
	}
	if data[2] != 0x28 || data[3] != 0x00 || data[4] != 0x00 {
		return nil, core.NewParseError(core.InvalidHeader, "raymarine quantum report: bad prefix")
	}
	opcode := uint16(data[0]) | uint16(data[1])<<8
	controlID, ok := quantumOpcodeToControl[opcode]
	if !ok {
		return nil, core.NewParseError(core.UnknownVariant, "raymarine quantum report: unknown opcode")
	}
	return decodeValue(controlID, data[5:])
}

func decodeRDReport(data []byte) (*core.ControlUpdate, error) {
	if len(data) < 4 {
		return nil, core.NewParseError(core.TooShort, "raymarine rd report")
	}
	if data[0] != 0x00 || data[1] != 0xC1 {
		return nil, core.NewParseError(core.InvalidHeader, "raymarine rd report: bad prefix")
	}
	controlID, ok := rdLeadToControl[data[2]]
	if !ok {
		return nil, core.NewParseError(core.UnknownVariant, "raymarine rd report: unknown lead byte")
	}
	return decodeValue(controlID, data[3:len(data)-1])
}

func decodeValue(controlID string, payload []byte) (*core.ControlUpdate, error) {
	if len(payload) == 0 {
		return nil, core.NewParseError(core.TooShort, "raymarine report: missing value byte")
	}
	switch controlID {
	case "power":
		var state core.PowerState
		switch payload[0] {
		case 0x00:
			state = core.PowerOff
		case 0x01:
			state = core.PowerStandby
		case 0x02:
			state = core.PowerTransmit
		default:
			return nil, nil
		}
		return &core.ControlUpdate{ControlID: "power", Value: core.ControlValue{Enum: string(state)}}, nil
	case "range":
		if len(payload) < 4 {
			return nil, core.NewParseError(core.TooShort, "raymarine report: range value")
		}
		meters := float64(uint32(payload[0]) | uint32(payload[1])<<8 | uint32(payload[2])<<16 | uint32(payload[3])<<24)
		return &core.ControlUpdate{ControlID: "range", Value: core.ControlValue{Number: &meters}}, nil
	case "gain", "sea", "rain":
		pct := float64(payload[0]) * 100 / 255
		return &core.ControlUpdate{ControlID: controlID, Value: core.ControlValue{Number: &pct}}, nil
	default:
		return &core.ControlUpdate{ControlID: controlID, Value: core.ControlValue{Number: floatPtr(float64(payload[0]))}}, nil
	}
}

func floatPtr(f float64) *float64 { return &f }
