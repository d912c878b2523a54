package furuno

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dirkwa/mayara/internal/core"
)

// DecodeLine decodes one ASCII report line from the TCP command/report
// stream (spec.md §4.4: "every radar report is a single line"). A $N96
// reply returns (nil, model, nil); a range/gain/sea/rain/power report
// returns its control update; an empty, unprefixed, malformed or unhandled
// line returns a *core.ParseError.
func DecodeLine(line string) (controlUpdate *core.ControlUpdate, model string, err error) {
	text := strings.TrimSpace(line)
	if text == "" {
		return nil, "", core.NewParseError(core.TooShort, "furuno report: empty line")
	}
	if !strings.HasPrefix(text, "$") {
		return nil, "", core.NewParseError(core.InvalidHeader, "furuno report: missing '$' prefix")
	}
	body := text[1:]
	fields := strings.Split(body, ",")
	tag := fields[0]

	switch {
	case tag == "N96":
		// Model identification reply: "$N96,DRS4D-NXT".
		if len(fields) < 2 {
			return nil, "", core.NewParseError(core.TooShort, "furuno $N96: missing model field")
		}
		return nil, fields[1], nil

	case tag == "S1":
		// Range report: "$S1,<meters>".
		if len(fields) < 2 {
			return nil, "", core.NewParseError(core.TooShort, "furuno $S1: missing range field")
		}
		meters, convErr := strconv.ParseFloat(fields[1], 64)
		if convErr != nil {
			return nil, "", core.NewParseError(core.InvalidHeader, "furuno $S1: non-numeric range")
		}
		return &core.ControlUpdate{ControlID: "range", Value: core.ControlValue{Number: &meters}}, "", nil

	case tag == "S2":
		// Gain report: "$S2,<auto|manual>,<0-100>".
		if len(fields) < 3 {
			return nil, "", core.NewParseError(core.TooShort, "furuno $S2: missing gain fields")
		}
		pct, convErr := strconv.ParseFloat(fields[2], 64)
		if convErr != nil {
			return nil, "", core.NewParseError(core.InvalidHeader, "furuno $S2: non-numeric gain")
		}
		return &core.ControlUpdate{ControlID: "gain", Value: core.ControlValue{Mode: fields[1], Number: &pct}}, "", nil

	case tag == "S3":
		// Sea clutter report: "$S3,<auto|manual>,<0-100>".
		if len(fields) < 3 {
			return nil, "", core.NewParseError(core.TooShort, "furuno $S3: missing sea fields")
		}
		pct, convErr := strconv.ParseFloat(fields[2], 64)
		if convErr != nil {
			return nil, "", core.NewParseError(core.InvalidHeader, "furuno $S3: non-numeric sea")
		}
		return &core.ControlUpdate{ControlID: "sea", Value: core.ControlValue{Mode: fields[1], Number: &pct}}, "", nil

	case tag == "S4":
		// Rain clutter report: "$S4,<0-100>".
		if len(fields) < 2 {
			return nil, "", core.NewParseError(core.TooShort, "furuno $S4: missing rain field")
		}
		pct, convErr := strconv.ParseFloat(fields[1], 64)
		if convErr != nil {
			return nil, "", core.NewParseError(core.InvalidHeader, "furuno $S4: non-numeric rain")
		}
		return &core.ControlUpdate{ControlID: "rain", Value: core.ControlValue{Number: &pct}}, "", nil

	case tag == "P1":
		// Power report: "$P1,<off|standby|transmit|warming>".
		if len(fields) < 2 {
			return nil, "", core.NewParseError(core.TooShort, "furuno $P1: missing power field")
		}
		return &core.ControlUpdate{ControlID: "power", Value: core.ControlValue{Enum: fields[1]}}, "", nil

	default:
		return nil, "", core.NewParseError(core.UnknownVariant, fmt.Sprintf("furuno report: unhandled tag %q", tag))
	}
}

// LoginSequence is the fixed credential exchange Furuno's TCP command
// channel requires before any report/command line is honored (spec.md
// §4.4: "login sequence (fixed credentials documented by the protocol)").
var LoginSequence = []string{"$LOGIN,furuno,radar"}

// ModelQuery requests the $N96 model-identification reply.
const ModelQuery = "$N96"
