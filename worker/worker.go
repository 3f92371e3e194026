// Package worker runs fire-and-forget jobs on a fixed pool of goroutines.
package worker

import (
	"runtime"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/check"
	"github.com/oomph-ac/ascent/violation"
)

var workerQueue = make(chan func(), runtime.NumCPU()*4)

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for f := range workerQueue {
		run(f)
	}
}

// run executes f, reporting a panic to sentry instead of taking the worker down with it.
func run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f to be run by a worker. Submit never blocks: if the queue is full, f is run on a
// goroutine of its own.
func Submit(f func()) {
	select {
	case workerQueue <- f:
	default:
		go run(f)
	}
}

// Scheduler returns a violation.Scheduler that runs remove on the worker pool for every removal scheduled.
func Scheduler(remove func(target actor.Identity, d check.Descriptor)) violation.Scheduler {
	return violation.SchedulerFunc(func(target actor.Identity, d check.Descriptor) {
		Submit(func() {
			remove(target, d)
		})
	})
}
