package violation

import (
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/check"
)

// Scheduler schedules the removal of an actor from the server. ScheduleRemoval must not block: the
// removal itself happens at a later point and is never waited for.
type Scheduler interface {
	ScheduleRemoval(target actor.Identity, d check.Descriptor)
}

// SchedulerFunc is a function that implements Scheduler.
type SchedulerFunc func(target actor.Identity, d check.Descriptor)

// ScheduleRemoval ...
func (f SchedulerFunc) ScheduleRemoval(target actor.Identity, d check.Descriptor) {
	f(target, d)
}

// NopScheduler never removes anyone.
type NopScheduler struct{}

// ScheduleRemoval ...
func (NopScheduler) ScheduleRemoval(actor.Identity, check.Descriptor) {}
