package check

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// Outcome is the verdict of a single evaluation of a check for one actor on one tick.
type Outcome struct {
	Failed bool

	// Rollback is the position the actor should be moved back to. It is only
	// meaningful if HasRollback is true.
	Rollback    mgl64.Vec3
	HasRollback bool

	// Label is the display name of the sub-heuristic that fired, for instance
	// "Flight (Hover)". A passing outcome carries the descriptor's name.
	Label string
	// Reason is a stable token used in logs and analytics, for instance "hover".
	Reason string

	// Extra holds ordered debug values describing why the outcome failed. It may be nil.
	Extra *orderedmap.OrderedMap[string, any]
}

// Pass returns a passing outcome labelled with the descriptor's name.
func Pass(d Descriptor) Outcome {
	return Outcome{Label: d.Name}
}

// Fail returns a failing outcome for the sub-heuristic passed. An empty sub
// label keeps the descriptor's name.
func Fail(d Descriptor, sub, reason string) Outcome {
	label := d.Name
	if sub != "" {
		label = d.Name + " (" + sub + ")"
	}
	return Outcome{Failed: true, Label: label, Reason: reason}
}

// WithRollback returns a copy of the outcome that rolls the actor back to pos.
func (o Outcome) WithRollback(pos mgl64.Vec3) Outcome {
	o.Rollback, o.HasRollback = pos, true
	return o
}

// With returns the outcome with the debug value passed added to its extra data.
func (o Outcome) With(key string, v any) Outcome {
	if o.Extra == nil {
		o.Extra = orderedmap.NewOrderedMap[string, any]()
	}
	o.Extra.Set(key, v)
	return o
}
