// Package ascent detects actors whose vertical movement is not consistent with the physics of the world
// they move in, and escalates the violations found into cancellations, notifications and removals.
package ascent

import (
	"sync"
	"time"

	"github.com/df-mc/dragonfly/server/event"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/check"
	"github.com/oomph-ac/ascent/detection"
	oevent "github.com/oomph-ac/ascent/event"
	"github.com/oomph-ac/ascent/geometry"
	"github.com/oomph-ac/ascent/metrics"
	"github.com/oomph-ac/ascent/movement"
	"github.com/oomph-ac/ascent/session"
	"github.com/oomph-ac/ascent/settings"
	"github.com/oomph-ac/ascent/violation"
	"github.com/sirupsen/logrus"
)

// Decision is the verdict of the detector on a single movement update.
type Decision struct {
	// Cancel is true if the host should refuse the update and return the actor to Rollback.
	Cancel bool
	// Rollback is the position to return the actor to. It is set whenever Cancel is true.
	Rollback    mgl64.Vec3
	HasRollback bool
	// Outcomes holds the failed outcomes of the update that were recorded as violations.
	Outcomes []check.Outcome
}

// Option configures a Detector.
type Option func(d *Detector)

// WithFormatter makes notifications be formatted by f instead of as chat messages.
func WithFormatter(f violation.Formatter) Option {
	return func(d *Detector) {
		d.formatter = f
	}
}

// WithEvaluators replaces the evaluators run on every update.
func WithEvaluators(e ...detection.Evaluator) Option {
	return func(d *Detector) {
		d.evaluators = e
	}
}

// Detector evaluates the movement updates of every actor. HandleTick may be called for different actors
// concurrently, but the updates of a single actor must be handled in order from one goroutine.
type Detector struct {
	log        *logrus.Logger
	settings   *settings.Holder
	oracle     geometry.Oracle
	sessions   *session.Manager
	engine     *violation.Engine
	evaluators []detection.Evaluator
	formatter  violation.Formatter
	scheduler  violation.Scheduler

	hMu sync.RWMutex
	h   oevent.Handler
}

// New returns a Detector using the settings passed. It returns an error if the settings are invalid.
// Removals are handed to scheduler, which must not block.
func New(log *logrus.Logger, s *settings.Settings, oracle geometry.Oracle, scheduler violation.Scheduler, opts ...Option) (*Detector, error) {
	holder, err := settings.NewHolder(*s)
	if err != nil {
		return nil, err
	}
	if scheduler == nil {
		scheduler = violation.NopScheduler{}
	}

	d := &Detector{
		log:        log,
		settings:   holder,
		oracle:     oracle,
		sessions:   session.NewManager(log),
		evaluators: detection.Evaluators(),
		scheduler:  scheduler,
		h:          oevent.NopHandler{},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.engine = violation.NewEngine(log, holder, d.sessions, removalScheduler{d: d}, d.formatter)
	return d, nil
}

// Handle makes the detector call h for its events. A nil handler resets it to a NopHandler.
func (d *Detector) Handle(h oevent.Handler) {
	if h == nil {
		h = oevent.NopHandler{}
	}
	d.hMu.Lock()
	defer d.hMu.Unlock()
	d.h = h
}

func (d *Detector) handler() oevent.Handler {
	d.hMu.RLock()
	defer d.hMu.RUnlock()
	return d.h
}

// Settings returns the active settings. The returned value must not be modified.
func (d *Detector) Settings() *settings.Settings {
	return d.settings.Load()
}

// Reload replaces the active settings. Invalid settings are rejected and the active settings are kept.
func (d *Detector) Reload(s *settings.Settings) error {
	if err := d.settings.Store(*s); err != nil {
		return err
	}
	d.log.Info("settings reloaded")
	return nil
}

// Sessions returns the session manager of the detector.
func (d *Detector) Sessions() *session.Manager {
	return d.sessions
}

// Connect registers an actor that can be sent notifications through m if it holds the alerts permission.
func (d *Detector) Connect(identity actor.Identity, m violation.Messenger, perms uint64) {
	d.sessions.Connect(identity, m, perms)
}

// Disconnect removes all state of the actor with the ID passed. Disconnecting twice is a no-op.
func (d *Detector) Disconnect(id uuid.UUID) {
	d.sessions.Disconnect(id)
}

// ToggleListener flips whether the actor with the ID passed receives debug information with notifications.
func (d *Detector) ToggleListener(id uuid.UUID) (bool, error) {
	return d.sessions.ToggleListener(id)
}

// ToggleMute flips whether the actor with the ID passed is excluded from notifications.
func (d *Detector) ToggleMute(id uuid.UUID) (bool, error) {
	return d.sessions.ToggleMute(id)
}

// ApplyVelocity reports velocity applied to an actor by the host, such as knockback, so that the movement
// it causes is not flagged. It must be called from the tick path of the actor.
func (d *Detector) ApplyVelocity(identity actor.Identity, cause movement.Cause, magnitude float64) {
	d.sessions.Acquire(identity).Movement.ApplyVelocity(cause, magnitude)
}

// HandleTick evaluates the movement update passed and returns the decision on it.
func (d *Detector) HandleTick(snap actor.Snapshot) Decision {
	start := time.Now()
	defer func() {
		metrics.RecordTick(time.Since(start))
	}()

	s := d.sessions.Acquire(snap.Identity)
	state := s.Movement
	state.Update(snap, d.oracle)

	cfg := d.settings.Load()
	ctx := detection.Context{Snapshot: snap, State: state, Oracle: d.oracle, Settings: cfg}

	var dec Decision
	for _, e := range d.evaluators {
		desc := e.Descriptor()
		if !cfg.Basics(desc.Kind).Enabled {
			continue
		}
		o := e.Evaluate(ctx)
		if !o.Failed {
			continue
		}

		fctx := event.C(oevent.NewFlagged(snap.Identity, desc, o))
		d.handler().HandleFlag(fctx)
		if fctx.Cancelled() {
			continue
		}

		dec.Outcomes = append(dec.Outcomes, o)
		if !d.engine.Record(s.Target(), desc, o) {
			continue
		}
		if !dec.Cancel {
			dec.Cancel = true
			dec.Rollback, dec.HasRollback = state.PreviousPosition, true
			if o.HasRollback {
				dec.Rollback = o.Rollback
			}
		}
	}
	if dec.Cancel {
		state.Rollback(dec.Rollback)
	}
	// Knockback only excuses the tick it was applied on, even if no check consumed it.
	if state.Velocity.Is(movement.CauseKnockback) {
		state.Velocity.Clear()
	}

	if s.HasPerm(session.PermissionDebug) && d.log.IsLevelEnabled(logrus.DebugLevel) {
		dy, _ := state.History.Latest()
		d.log.Debugf("%s movement: dy=%v air=%d asc=%d desc=%d ladder=%d velocity=%s", snap.Name, dy, state.AirTicks, state.AscendingMoves, state.DescendingMoves, state.LadderTime, state.Velocity.Cause)
	}
	return dec
}

// removalScheduler lets the event handler veto removals before they reach the scheduler of the Detector.
type removalScheduler struct {
	d *Detector
}

func (r removalScheduler) ScheduleRemoval(target actor.Identity, desc check.Descriptor) {
	ctx := event.C(oevent.NewRemoval(target, desc))
	r.d.handler().HandleRemoval(ctx)
	if ctx.Cancelled() {
		r.d.log.Infof("removal of %s (%s) was cancelled", target, desc.Name)
		return
	}
	r.d.scheduler.ScheduleRemoval(target, desc)
}
