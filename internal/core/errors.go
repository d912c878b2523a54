// Package core holds the data types shared across the radar engine's
// components (spec.md §3) so that internal/protocol, internal/controller,
// internal/locator, internal/spoke, internal/arpa, internal/trails,
// internal/guardzone and internal/engine can all depend on one definition
// of Spoke/RadarState/ArpaTarget/GuardZone/event types without importing
// each other. Grounded in the teacher's internal/lidar package, which plays
// the identical "shared point/frame vocabulary" role for l1packets through
// l6objects.
package core

import "fmt"

// ParseErrorKind is spec.md §7's ParseError taxonomy: "raw bytes rejected by
// a codec (TooShort, InvalidHeader, UnknownVariant)."
type ParseErrorKind string

const (
	TooShort       ParseErrorKind = "TooShort"
	InvalidHeader  ParseErrorKind = "InvalidHeader"
	UnknownVariant ParseErrorKind = "UnknownVariant"
)

// ParseError is always recovered locally: logged at debug, never
// propagated upward (spec.md §7).
type ParseError struct {
	Kind    ParseErrorKind
	Context string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error (%s): %s", e.Kind, e.Context)
}

func NewParseError(kind ParseErrorKind, context string) *ParseError {
	return &ParseError{Kind: kind, Context: context}
}

// ControlErrorKind enumerates spec.md §7's ControlError taxonomy, returned
// synchronously from set_control and never retried.
type ControlErrorKind string

const (
	RadarNotFound        ControlErrorKind = "RadarNotFound"
	ControlNotFound      ControlErrorKind = "ControlNotFound"
	InvalidValue         ControlErrorKind = "InvalidValue"
	ControllerNotAvailable ControlErrorKind = "ControllerNotAvailable"
)

type ControlError struct {
	Kind   ControlErrorKind
	Reason string
}

func (e *ControlError) Error() string {
	if e.Reason == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func NewControlError(kind ControlErrorKind, reason string) *ControlError {
	return &ControlError{Kind: kind, Reason: reason}
}

// ProtocolError is spec.md §7's: "a report violates brand-specific
// invariants... Logged; the offending field is ignored; other fields in the
// same report are still applied."
type ProtocolError struct {
	Field  string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error in field %s: %s", e.Field, e.Reason)
}
