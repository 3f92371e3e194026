// Package detection implements the checks that evaluate an actor's movement window each tick.
package detection

import (
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/check"
	"github.com/oomph-ac/ascent/geometry"
	"github.com/oomph-ac/ascent/movement"
	"github.com/oomph-ac/ascent/settings"
)

// Context holds everything an Evaluator may look at for a single tick of a single actor.
type Context struct {
	Snapshot actor.Snapshot
	// State is the actor's movement window, already updated with Snapshot.
	State    *movement.State
	Oracle   geometry.Oracle
	Settings *settings.Settings
}

// Evaluator is a single check. Evaluators hold no per-actor state, so one instance serves every actor.
type Evaluator interface {
	// Descriptor returns the immutable metadata of the check.
	Descriptor() check.Descriptor
	// Description returns the description of what the check does.
	Description() string
	// Evaluate returns the verdict of the check for the tick held by ctx.
	Evaluate(ctx Context) check.Outcome
}
