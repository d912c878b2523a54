package furuno

import (
	"fmt"

	"github.com/dirkwa/mayara/internal/core"
)

// EncodeControl produces the ASCII command line for one control set request
// (spec.md §8 scenario S2: set_control(range, 5556) -> "$S1,5556").
func EncodeControl(controlID string, v core.ControlValue) (string, error) {
	switch controlID {
	case "range":
		if v.Number == nil {
			return "", core.NewControlError(core.InvalidValue, "range requires a numeric value")
		}
		return fmt.Sprintf("$S1,%d", int(*v.Number)), nil

	case "gain":
		if v.Number == nil {
			return "", core.NewControlError(core.InvalidValue, "gain requires a numeric value")
		}
		mode := v.Mode
		if mode == "" {
			mode = "manual"
		}
		return fmt.Sprintf("$S2,%s,%d", mode, int(*v.Number)), nil

	case "sea":
		if v.Number == nil {
			return "", core.NewControlError(core.InvalidValue, "sea requires a numeric value")
		}
		mode := v.Mode
		if mode == "" {
			mode = "manual"
		}
		return fmt.Sprintf("$S3,%s,%d", mode, int(*v.Number)), nil

	case "rain":
		if v.Number == nil {
			return "", core.NewControlError(core.InvalidValue, "rain requires a numeric value")
		}
		return fmt.Sprintf("$S4,%d", int(*v.Number)), nil

	case "power":
		if v.Enum == "" {
			return "", core.NewControlError(core.InvalidValue, "power requires an enum value")
		}
		return fmt.Sprintf("$P1,%s", v.Enum), nil

	case "interferenceRejection", "targetExpansion", "noiseRejection", "echoTrail", "targetBoost":
		return encodeExtendedEnum(controlID, v)

	default:
		return "", core.NewControlError(core.ControlNotFound, controlID)
	}
}

var extendedTags = map[string]string{
	"interferenceRejection": "E1",
	"targetExpansion":       "E2",
	"noiseRejection":        "E3",
	"echoTrail":             "E4",
	"targetBoost":           "E5",
}

func encodeExtendedEnum(controlID string, v core.ControlValue) (string, error) {
	if v.Enum == "" {
		return "", core.NewControlError(core.InvalidValue, controlID+" requires an enum value")
	}
	return fmt.Sprintf("$%s,%s", extendedTags[controlID], v.Enum), nil
}
