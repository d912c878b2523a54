package schema

// Operator is the comparison a Constraint's condition uses.
type Operator string

const (
	OpEquals    Operator = "equals"
	OpNotEquals Operator = "notEquals"
)

// Constraint is spec.md §3's ControlConstraint: "for control X, when
// control Y satisfies operator OP against value V, X is rendered read-only
// (or disabled) with a reason." It is a contract for clients and is NOT
// enforced server-side — the radar is authoritative (spec.md §3).
type Constraint struct {
	ControlID   string
	WhenControl string
	Operator    Operator
	Value       string
	Disabled    bool
	Reason      string
}

// presetLockedControls are the controls a non-custom preset mode locks,
// per spec.md §4.3: "when presetMode != custom, lock gain/sea/rain/
// interference with a human-readable reason."
var presetLockedControls = []string{"gain", "sea", "rain", "interferenceRejection"}

// ConstraintsForControls derives the constraint set for a resolved control
// list. Only composite-mode constraints are generated in this table; a
// brand controller may still reject other combinations at the wire level
// (that rejection is a ControlError, not a schema constraint).
func ConstraintsForControls(controlIDs []string) []Constraint {
	has := make(map[string]bool, len(controlIDs))
	for _, id := range controlIDs {
		has[id] = true
	}
	if !has["presetMode"] {
		return nil
	}
	var out []Constraint
	for _, locked := range presetLockedControls {
		if !has[locked] {
			continue
		}
		out = append(out, Constraint{
			ControlID:   locked,
			WhenControl: "presetMode",
			Operator:    OpNotEquals,
			Value:       "custom",
			Disabled:    true,
			Reason:      "locked by the active preset mode; switch presetMode to custom to adjust directly",
		})
	}
	return out
}
