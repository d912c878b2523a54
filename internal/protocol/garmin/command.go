package garmin

import (
	"math"

	"github.com/dirkwa/mayara/internal/core"
)

// EncodeControl produces the wire packets for one control set request. Most
// controls produce a single Packet; gain/sea/rain produce two (mode, then
// value), matching spec.md §8 scenario S3 exactly for xHD gain.
func EncodeControl(v Variant, controlID string, value core.ControlValue) ([]Packet, error) {
	if v == VariantUnknown {
		return nil, core.NewControlError(core.ControllerNotAvailable, "garmin: model variant not yet identified")
	}
	pair, single, zone := tablesFor(v)

	if pt, ok := pair[controlID]; ok {
		return encodePair(pt, value)
	}
	if pt, ok := single[controlID]; ok {
		return encodeSingle(controlID, pt, value)
	}
	if controlID == "noTransmitZone" {
		return encodeNoTransmitZone(zone, value)
	}
	return nil, core.NewControlError(core.ControlNotFound, controlID)
}

// encodePair emits the mode packet (0 = manual, 1 = auto) followed by the
// value packet carrying the 0-100 percentage rounded to an integer, not
// rescaled (scenario S3: manual/50 -> mode=0x00000000, value=0x00000032).
func encodePair(pt opcodePair, v core.ControlValue) ([]Packet, error) {
	if v.Number == nil {
		return nil, core.NewControlError(core.InvalidValue, "requires a numeric value")
	}
	pct := *v.Number
	if pct < 0 || pct > 100 {
		return nil, core.NewControlError(core.InvalidValue, "must be within 0-100")
	}
	mode := uint32(0)
	if v.Mode == "auto" {
		mode = 1
	}
	return []Packet{
		newPacket(pt.mode, mode),
		newPacket(pt.value, uint32(math.Round(pct))),
	}, nil
}

func encodeSingle(controlID string, pt uint32, v core.ControlValue) ([]Packet, error) {
	switch controlID {
	case "power":
		if v.Enum == "" {
			return nil, core.NewControlError(core.InvalidValue, "power requires an enum value")
		}
		var raw uint32
		switch core.PowerState(v.Enum) {
		case core.PowerOff:
			raw = 0
		case core.PowerStandby:
			raw = 1
		case core.PowerTransmit:
			raw = 2
		default:
			return nil, core.NewControlError(core.InvalidValue, "power: unsupported state "+v.Enum)
		}
		return []Packet{newPacket(pt, raw)}, nil

	case "range":
		if v.Number == nil {
			return nil, core.NewControlError(core.InvalidValue, "range requires a numeric value")
		}
		return []Packet{newPacket(pt, uint32(*v.Number))}, nil

	case "bearingAlignment":
		if v.Number == nil {
			return nil, core.NewControlError(core.InvalidValue, "bearingAlignment requires a numeric degrees value")
		}
		// degrees x 32 (spec.md §4.6 verbatim).
		raw := int32(*v.Number * 32)
		return []Packet{newPacket(pt, uint32(raw))}, nil

	default:
		return nil, core.NewControlError(core.ControlNotFound, controlID)
	}
}

func encodeNoTransmitZone(zone map[string]uint32, v core.ControlValue) ([]Packet, error) {
	if v.Compound == nil {
		return nil, core.NewControlError(core.InvalidValue, "noTransmitZone requires startDeg/endDeg")
	}
	start, okStart := v.Compound["startDeg"]
	end, okEnd := v.Compound["endDeg"]
	if !okStart || !okEnd || start.Number == nil || end.Number == nil {
		return nil, core.NewControlError(core.InvalidValue, "noTransmitZone requires startDeg/endDeg numbers")
	}
	startRaw := uint32(int32(*start.Number * 32))
	endRaw := uint32(int32(*end.Number * 32))
	return []Packet{
		newPacket(zone["noTransmitZoneStart"], startRaw),
		newPacket(zone["noTransmitZoneEnd"], endRaw),
	}, nil
}
