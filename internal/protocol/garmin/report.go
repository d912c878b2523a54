package garmin

import (
	"github.com/dirkwa/mayara/internal/core"
)

// reverseOf inverts the command tables so a report's packet_type decodes
// back to the same control id that produced it.
func reverseOf(pair map[string]opcodePair, single map[string]uint32) (map[uint32]string, map[uint32]bool, map[uint32]string) {
	modeOf := make(map[uint32]string)
	isValue := make(map[uint32]bool)
	valueOf := make(map[uint32]string)
	for id, pt := range pair {
		modeOf[pt.mode] = id
		isValue[pt.value] = true
		valueOf[pt.value] = id
	}
	for id, pt := range single {
		valueOf[pt] = id
	}
	return modeOf, isValue, valueOf
}

// Decoder decodes report packets for one variant. Its pending map buffers a
// gain/sea/rain mode packet until its paired value packet arrives, since the two together form one ControlUpdate (spec.md
// §4.6: "Gain, sea, and rain each require TWO packets").
type Decoder struct {
	variant Variant
	pending map[string]string // control id -> pending mode ("auto"/"manual")
}

func NewDecoder(v Variant) *Decoder {
	return &Decoder{variant: v, pending: make(map[string]string)}
}

// Decode consumes one Garmin packet, updating internal mode-pairing state,
// and returns a ControlUpdate once a full (mode, value) pair - or a
// self-contained single packet - has been seen.
func (d *Decoder) Decode(p Packet) (*core.ControlUpdate, error) {
	pair, single, zone := tablesFor(d.variant)
	modeOf, _, valueOf := reverseOf(pair, single)

	if id, ok := modeOf[p.PacketType]; ok {
		mode := "manual"
		if p.Value == 1 {
			mode = "auto"
		}
		d.pending[id] = mode
		return nil, nil
	}

	if id, ok := valueOf[p.PacketType]; ok {
		if _, isPair := pair[id]; isPair {
			mode, have := d.pending[id]
			if !have {
				mode = "manual"
			}
			delete(d.pending, id)
			pct := float64(p.Value)
			return &core.ControlUpdate{ControlID: id, Value: core.ControlValue{Mode: mode, Number: &pct}}, nil
		}
		return decodeSingleValue(id, p.Value)
	}

	for name, pt := range zone {
		if pt == p.PacketType {
			deg := float64(int32(p.Value)) / 32
			return &core.ControlUpdate{ControlID: name, Value: core.ControlValue{Number: &deg}}, nil
		}
	}

	return nil, core.NewParseError(core.UnknownVariant, "garmin report: unrecognized packet_type")
}

func decodeSingleValue(id string, raw uint32) (*core.ControlUpdate, error) {
	switch id {
	case "power":
		var state core.PowerState
		switch raw {
		case 0:
			state = core.PowerOff
		case 1:
			state = core.PowerStandby
		case 2:
			state = core.PowerTransmit
		default:
			return nil, nil
		}
		return &core.ControlUpdate{ControlID: "power", Value: core.ControlValue{Enum: string(state)}}, nil
	case "range":
		meters := float64(raw)
		return &core.ControlUpdate{ControlID: "range", Value: core.ControlValue{Number: &meters}}, nil
	case "bearingAlignment":
		deg := float64(int32(raw)) / 32
		return &core.ControlUpdate{ControlID: "bearingAlignment", Value: core.ControlValue{Number: &deg}}, nil
	default:
		v := float64(raw)
		return &core.ControlUpdate{ControlID: id, Value: core.ControlValue{Number: &v}}, nil
	}
}
