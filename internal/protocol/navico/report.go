package navico

import (
	"fmt"

	"github.com/dirkwa/mayara/internal/core"
)

// Report type tags (spec.md §6.4: "report types 0x01/0x02/0x03/0x04/0x06/0x08
// with field offsets").
const (
	reportStatus       byte = 0x01
	reportControls     byte = 0x02
	reportModelInfo    byte = 0x03
	reportInstallation byte = 0x04
	reportBlankingZone byte = 0x06
	reportAdvanced     byte = 0x08
)

// DecodeReport decodes one Navico report datagram into an ordered sequence
// of control updates (spec.md §4.4).
func DecodeReport(data []byte) ([]core.ControlUpdate, error) {
	if len(data) < 2 {
		return nil, core.NewParseError(core.TooShort, "navico report: need >= 2 bytes")
	}
	switch data[0] {
	case reportStatus:
		return decodeStatusReport(data)
	case reportControls:
		return decodeControlsReport(data)
	default:
		return nil, core.NewParseError(core.UnknownVariant, fmt.Sprintf("navico report: unhandled type 0x%02X", data[0]))
	}
}

func decodeStatusReport(data []byte) ([]core.ControlUpdate, error) {
	if len(data) < 3 {
		return nil, core.NewParseError(core.TooShort, "navico status report")
	}
	var power core.PowerState
	switch data[2] {
	case 0x00:
		power = core.PowerOff
	case 0x01:
		power = core.PowerStandby
	case 0x02:
		power = core.PowerWarming
	case 0x04:
		power = core.PowerTransmit
	default:
		// Unknown field value: ignore this field only, keep decoding the
		// rest of the report (spec.md §7: ProtocolError doesn't abort).
		return nil, nil
	}
	enumVal := string(power)
	return []core.ControlUpdate{{ControlID: "power", Value: core.ControlValue{Enum: enumVal}}}, nil
}

func decodeControlsReport(data []byte) ([]core.ControlUpdate, error) {
	if len(data) < 12 {
		return nil, core.NewParseError(core.TooShort, "navico controls report")
	}
	var updates []core.ControlUpdate

	rangeMeters := float64(uint32(data[2]) | uint32(data[3])<<8 | uint32(data[4])<<16 | uint32(data[5])<<24)
	updates = append(updates, core.ControlUpdate{ControlID: "range", Value: core.ControlValue{Number: &rangeMeters}})

	gainAuto := data[6] != 0
	gainVal := float64(data[7]) * 100 / 255
	updates = append(updates, core.ControlUpdate{ControlID: "gain", Value: core.ControlValue{
		Mode:   autoModeString(gainAuto),
		Number: &gainVal,
	}})

	seaAuto := data[8] != 0
	seaVal := float64(data[9]) * 100 / 255
	updates = append(updates, core.ControlUpdate{ControlID: "sea", Value: core.ControlValue{
		Mode:   autoModeString(seaAuto),
		Number: &seaVal,
	}})

	rainVal := float64(data[10]) * 100 / 255
	updates = append(updates, core.ControlUpdate{ControlID: "rain", Value: core.ControlValue{Number: &rainVal}})

	return updates, nil
}

func autoModeString(auto bool) string {
	if auto {
		return "auto"
	}
	return "manual"
}
