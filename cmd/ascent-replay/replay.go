package main

import (
	"github.com/oomph-ac/ascent"
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/session"
	"github.com/sandertv/gophertunnel/minecraft/text"
	"github.com/sirupsen/logrus"
)

// logMessenger delivers messages for an observer to the log.
type logMessenger struct {
	log  *logrus.Logger
	name string
}

func (m logMessenger) Message(msg string) error {
	m.log.Infof("[%s] %s", m.name, text.Clean(msg))
	return nil
}

// Summary holds the results of a replay.
type Summary struct {
	Ticks     int
	Flags     int
	Cancelled int
}

// Replay feeds every tick of the trace to the detector passed. Actors are ticked in turn, so that the
// nth tick of every actor is handled before any actor's n+1th tick.
func Replay(log *logrus.Logger, d *ascent.Detector, t Trace) (Summary, error) {
	for _, o := range t.Observers {
		id := Identity(o.Name)
		d.Connect(id, logMessenger{log: log, name: o.Name}, session.PermissionAlerts|session.PermissionLogs)
		if err := d.Sessions().SetListener(id.ID, o.Verbose); err != nil {
			return Summary{}, err
		}
		if err := d.Sessions().SetMuted(id.ID, o.Muted); err != nil {
			return Summary{}, err
		}
	}

	ids := make([]actor.Identity, len(t.Actors))
	ticks := make([][]TraceTick, len(t.Actors))
	longest := 0
	for i, a := range t.Actors {
		ids[i] = Identity(a.Name)
		ticks[i] = a.Expand()
		longest = max(longest, len(ticks[i]))

		var perms uint64
		if a.Debug {
			perms |= session.PermissionDebug
		}
		d.Connect(ids[i], nil, perms)
	}

	var sum Summary
	for n := 0; n < longest; n++ {
		for i, id := range ids {
			if n >= len(ticks[i]) {
				continue
			}
			tick := ticks[i][n]
			snap, err := tick.Snapshot(id)
			if err != nil {
				return sum, err
			}
			if cause, magnitude, ok := tick.Velocity(); ok {
				d.ApplyVelocity(id, cause, magnitude)
			}

			dec := d.HandleTick(snap)
			sum.Ticks++
			sum.Flags += len(dec.Outcomes)
			if dec.Cancel {
				sum.Cancelled++
				log.Infof("tick %d: move of %s cancelled, rollback to %v", n+1, id.Name, dec.Rollback)
			}
		}
	}
	for _, id := range ids {
		d.Disconnect(id.ID)
	}
	return sum, nil
}
