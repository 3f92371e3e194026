package ascent

import (
	"io"
	"sync"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/event"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/check"
	oevent "github.com/oomph-ac/ascent/event"
	"github.com/oomph-ac/ascent/geometry"
	"github.com/oomph-ac/ascent/movement"
	"github.com/oomph-ac/ascent/session"
	"github.com/oomph-ac/ascent/settings"
	"github.com/sirupsen/logrus"
)

type recordingMessenger struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingMessenger) Message(msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordingMessenger) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

type countingScheduler struct {
	mu sync.Mutex
	n  int
}

func (c *countingScheduler) ScheduleRemoval(actor.Identity, check.Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

func (c *countingScheduler) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

type vetoHandler struct {
	oevent.NopHandler
	flags, removals bool
}

func (h vetoHandler) HandleFlag(ctx *event.Context[*oevent.Flagged]) {
	if h.flags {
		ctx.Cancel()
	}
}

func (h vetoHandler) HandleRemoval(ctx *event.Context[*oevent.Removal]) {
	if h.removals {
		ctx.Cancel()
	}
}

func newDetector(t *testing.T, s settings.Settings, sched *countingScheduler) *Detector {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	g := geometry.NewGrid()
	g.Fill(cube.Pos{-8, -1, -8}, cube.Pos{8, -1, 8}, geometry.SurfaceSolid)
	d, err := New(log, &s, geometry.New(g), sched)
	if err != nil {
		t.Fatalf("failed creating detector: %v", err)
	}
	return d
}

func hover(id actor.Identity) actor.Snapshot {
	return actor.Snapshot{Identity: id, Position: mgl64.Vec3{0.5, 10, 0.5}}
}

func TestHoverEscalates(t *testing.T) {
	sched := &countingScheduler{}
	d := newDetector(t, settings.DefaultSettings(), sched)

	admin := actor.Identity{ID: uuid.New(), Name: "Admin"}
	msgr := &recordingMessenger{}
	d.Connect(admin, msgr, session.PermissionAlerts)

	cheater := actor.Identity{ID: uuid.New(), Name: "Cheater"}
	for i := 1; i <= 10; i++ {
		if dec := d.HandleTick(hover(cheater)); dec.Cancel || len(dec.Outcomes) != 0 {
			t.Fatalf("tick %d: unexpected decision %+v", i, dec)
		}
	}

	// Flight cancels from its third violation on and notifies on every one.
	for i := 1; i <= 3; i++ {
		dec := d.HandleTick(hover(cheater))
		if len(dec.Outcomes) != 1 || dec.Outcomes[0].Reason != "hover" {
			t.Fatalf("violation %d: expected a hover outcome, got %+v", i, dec.Outcomes)
		}
		if dec.Cancel != (i == 3) {
			t.Fatalf("violation %d: expected cancel=%v", i, i == 3)
		}
		if dec.Cancel && (!dec.HasRollback || dec.Rollback != hover(cheater).Position) {
			t.Fatalf("expected a rollback to the previous position, got %v", dec.Rollback)
		}
	}
	if msgr.count() != 3 {
		t.Fatalf("expected three notifications, got %d", msgr.count())
	}
	if sched.count() != 0 {
		t.Fatal("no removal should be scheduled yet")
	}
}

func TestDisabledCheckNeverFlags(t *testing.T) {
	s := settings.DefaultSettings()
	b := s.Checks["flight"]
	b.Enabled = false
	s.Checks["flight"] = b
	d := newDetector(t, s, &countingScheduler{})

	id := actor.Identity{ID: uuid.New(), Name: "Cheater"}
	for i := 0; i < 30; i++ {
		if dec := d.HandleTick(hover(id)); len(dec.Outcomes) != 0 {
			t.Fatalf("a disabled check must not flag, got %+v", dec.Outcomes)
		}
	}
}

func TestHandlerCancelsFlag(t *testing.T) {
	d := newDetector(t, settings.DefaultSettings(), &countingScheduler{})
	d.Handle(vetoHandler{flags: true})

	id := actor.Identity{ID: uuid.New(), Name: "Cheater"}
	for i := 0; i < 20; i++ {
		if dec := d.HandleTick(hover(id)); dec.Cancel || len(dec.Outcomes) != 0 {
			t.Fatalf("cancelled flags must not be recorded, got %+v", dec)
		}
	}
	s, _ := d.Sessions().Session(id.ID)
	if lvl := s.Violations.Level(check.KindFlight); lvl != 0 {
		t.Fatalf("expected no violations, got %d", lvl)
	}
}

func TestRemoval(t *testing.T) {
	s := settings.DefaultSettings()
	b := s.Checks["flight"]
	b.BanAt = 2
	s.Checks["flight"] = b

	sched := &countingScheduler{}
	d := newDetector(t, s, sched)
	id := actor.Identity{ID: uuid.New(), Name: "Cheater"}
	for i := 0; i < 12; i++ {
		d.HandleTick(hover(id))
	}
	if sched.count() != 1 {
		t.Fatalf("expected one removal, got %d", sched.count())
	}

	d.Handle(vetoHandler{removals: true})
	for i := 0; i < 4; i++ {
		d.HandleTick(hover(id))
	}
	if sched.count() != 1 {
		t.Fatalf("vetoed removals must not reach the scheduler, got %d", sched.count())
	}
}

func TestKnockbackIsNotFlagged(t *testing.T) {
	d := newDetector(t, settings.DefaultSettings(), &countingScheduler{})
	id := actor.Identity{ID: uuid.New(), Name: "Steve"}

	d.HandleTick(actor.Snapshot{Identity: id, OnGround: true})
	d.ApplyVelocity(id, movement.CauseKnockback, 0.6)
	if dec := d.HandleTick(actor.Snapshot{Identity: id, Position: mgl64.Vec3{0, 0.6, 0}}); len(dec.Outcomes) != 0 {
		t.Fatalf("knockback should not be flagged, got %+v", dec.Outcomes)
	}
	if dec := d.HandleTick(actor.Snapshot{Identity: id, Position: mgl64.Vec3{0, 1.2, 0}}); len(dec.Outcomes) != 1 {
		t.Fatalf("expected the jump after knockback to be flagged, got %+v", dec.Outcomes)
	}
}

func TestUnconsumedKnockbackExpires(t *testing.T) {
	s := settings.DefaultSettings()
	b := s.Checks["flight"]
	b.Enabled = false
	s.Checks["flight"] = b
	d := newDetector(t, s, &countingScheduler{})
	id := actor.Identity{ID: uuid.New(), Name: "Steve"}

	d.HandleTick(actor.Snapshot{Identity: id, OnGround: true})
	d.ApplyVelocity(id, movement.CauseKnockback, 0.6)
	d.HandleTick(actor.Snapshot{Identity: id, OnGround: true})
	sess, _ := d.Sessions().Session(id.ID)
	if sess.Movement.Velocity.Active {
		t.Fatal("knockback should expire after the tick it was applied on")
	}

	enabled := settings.DefaultSettings()
	if err := d.Reload(&enabled); err != nil {
		t.Fatal(err)
	}
	if dec := d.HandleTick(actor.Snapshot{Identity: id, Position: mgl64.Vec3{0, 0.6, 0}}); len(dec.Outcomes) != 1 || dec.Outcomes[0].Reason != "vertical_jump" {
		t.Fatalf("expected the jump to be flagged, got %+v", dec.Outcomes)
	}
}

func TestReload(t *testing.T) {
	d := newDetector(t, settings.DefaultSettings(), &countingScheduler{})

	invalid := settings.DefaultSettings()
	invalid.Flight.MaxJump = 0
	if err := d.Reload(&invalid); err == nil {
		t.Fatal("expected invalid settings to be rejected")
	}
	if d.Settings().Flight.MaxJump != 0.42 {
		t.Fatal("rejected settings must not become active")
	}

	valid := settings.DefaultSettings()
	valid.Flight.MaxJump = 0.5
	if err := d.Reload(&valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Settings().Flight.MaxJump != 0.5 {
		t.Fatal("expected reloaded settings to be active")
	}
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	s := settings.DefaultSettings()
	delete(s.Checks, "flight")
	if _, err := New(logrus.New(), &s, geometry.New(geometry.NewGrid()), nil); err == nil {
		t.Fatal("expected missing check settings to be rejected")
	}
}

func TestDisconnectClearsState(t *testing.T) {
	d := newDetector(t, settings.DefaultSettings(), &countingScheduler{})
	id := actor.Identity{ID: uuid.New(), Name: "Cheater"}
	for i := 0; i < 11; i++ {
		d.HandleTick(hover(id))
	}

	d.Disconnect(id.ID)
	d.Disconnect(id.ID)
	if d.Sessions().Len() != 0 {
		t.Fatal("expected the session to be removed")
	}

	// A fresh session starts with a fresh movement window.
	if dec := d.HandleTick(hover(id)); len(dec.Outcomes) != 0 {
		t.Fatalf("expected no flag on the first tick after reconnecting, got %+v", dec.Outcomes)
	}
}
