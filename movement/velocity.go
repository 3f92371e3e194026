package movement

// Cause is the source of an externally applied velocity.
type Cause uint8

const (
	CauseNone Cause = iota
	CauseKnockback
	CauseBounce
	CauseExternal
)

func (c Cause) String() string {
	switch c {
	case CauseKnockback:
		return "knockback"
	case CauseBounce:
		return "bounce"
	case CauseExternal:
		return "external"
	default:
		return "none"
	}
}

// Velocity tracks velocity applied to an actor by something other than its own input. Cause is only
// meaningful while Active is true.
type Velocity struct {
	Active bool
	Cause  Cause

	// Current is the magnitude of the velocity this tick, Last the magnitude on the tick before.
	Current, Last float64
}

// Set marks velocity of the cause and magnitude passed as applied.
func (v *Velocity) Set(cause Cause, magnitude float64) {
	v.Active, v.Cause, v.Current = true, cause, magnitude
}

// Clear removes any applied velocity.
func (v *Velocity) Clear() {
	v.Active, v.Cause = false, CauseNone
}

// Is returns true if velocity of the cause passed is currently applied.
func (v Velocity) Is(cause Cause) bool {
	return v.Active && v.Cause == cause
}
