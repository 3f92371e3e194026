// Package movement keeps the rolling per-actor movement window that movement checks evaluate.
package movement

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/geometry"
)

const (
	// HistorySize is the amount of vertical deltas kept for debugging.
	HistorySize = 20
	// ClipThreshold is the vertical speed above which a move is scanned for solid cells.
	ClipThreshold = 0.99

	ladderActiveTicks     = 8
	ladderStationaryTicks = 4
)

// State is the movement window of a single actor. It is only ever accessed from the tick path of the
// actor that owns it and is therefore not safe for concurrent use.
type State struct {
	PreviousPosition mgl64.Vec3
	CurrentPosition  mgl64.Vec3
	// GroundPosition is the position the actor last had ground contact at.
	GroundPosition mgl64.Vec3
	// SafePosition is the last position verified not to be inside solid geometry.
	SafePosition mgl64.Vec3

	OnGround, WasOnGround bool
	// ClientOnGround is the ground flag the client reported this tick. OnGround is the server's view,
	// which never considers an actor inside liquid to be on the ground.
	ClientOnGround bool

	// VerticalSpeed is the absolute vertical delta of this tick.
	VerticalSpeed     float64
	LastVerticalSpeed float64

	AirTicks int

	AscendingMoves  int
	DescendingMoves int
	// PriorAscendingMoves is AscendingMoves as it was before this tick's update.
	PriorAscendingMoves int

	Ascending, Descending bool
	Climbing, InLiquid    bool

	// LadderTime is the grace period, in ticks, left after climbing.
	LadderTime int

	// Clipped is true if this tick's move passed through a solid cell.
	Clipped bool

	Velocity Velocity
	History  *History

	// Ticks is the amount of updates processed.
	Ticks uint64
}

// NewState returns an empty State. The first update seeds it.
func NewState() *State {
	return &State{History: NewHistory(HistorySize)}
}

// Seeded returns true once the State has received its first update.
func (s *State) Seeded() bool {
	return s.Ticks > 0
}

// Update advances the window with the snapshot of a new tick. The first update only seeds the State,
// as there is no previous tick to compare against.
func (s *State) Update(snap actor.Snapshot, o geometry.Oracle) {
	pos := snap.Position
	s.Ticks++
	s.Clipped = false
	s.InLiquid = o.InLiquid(pos)
	s.Climbing = o.Climbable(pos)
	s.ClientOnGround = snap.OnGround

	if s.Ticks == 1 {
		s.PreviousPosition, s.CurrentPosition = pos, pos
		s.GroundPosition, s.SafePosition = pos, pos
		s.OnGround = snap.OnGround && !s.InLiquid
		s.WasOnGround = s.OnGround
		return
	}

	s.PreviousPosition, s.CurrentPosition = s.CurrentPosition, pos
	s.LastVerticalSpeed = s.VerticalSpeed
	s.WasOnGround = s.OnGround
	s.OnGround = snap.OnGround && !s.InLiquid
	s.PriorAscendingMoves = s.AscendingMoves
	s.Velocity.Last = s.Velocity.Current

	dy := pos.Y() - s.PreviousPosition.Y()
	s.VerticalSpeed = math.Abs(dy)
	s.History.Push(dy)

	if s.OnGround {
		s.AirTicks = 0
		s.GroundPosition = pos
		s.AscendingMoves, s.DescendingMoves = 0, 0
		bounce := o.OnBounceSurface(pos)
		if bounce && !s.Velocity.Is(CauseKnockback) {
			s.Velocity.Set(CauseBounce, s.Velocity.Current)
		} else if !bounce && s.Velocity.Is(CauseBounce) {
			s.Velocity.Clear()
		}
	} else {
		s.AirTicks++
	}

	s.Ascending = dy > 0 && !(s.OnGround && s.WasOnGround)
	s.Descending = dy < 0
	if s.Ascending {
		s.DescendingMoves = 0
		if !s.Climbing {
			s.AscendingMoves++
		}
	}
	if s.Descending {
		s.AscendingMoves = 0
		// Knockback is left for the flight check to consume on this same tick, and landing on a
		// bounce surface must keep the velocity it just set.
		if !s.OnGround && s.Velocity.Active && s.Velocity.Cause != CauseKnockback {
			s.Velocity.Clear()
		}
	}
	if s.Velocity.Is(CauseBounce) {
		s.Velocity.Current = s.VerticalSpeed
	}

	switch {
	case s.Climbing && (s.Ascending || s.Descending):
		s.LadderTime = ladderActiveTicks
	case s.Climbing:
		s.LadderTime = ladderStationaryTicks
	case s.LadderTime > 0:
		s.LadderTime--
	}

	if s.VerticalSpeed > ClipThreshold && s.clipped(pos, o) {
		s.Clipped = true
		return
	}
	s.SafePosition = pos
}

// clipped scans the column at the new horizontal coordinates, from one cell around the safe position
// through the vertical extent of the move, for solid cells.
func (s *State) clipped(pos mgl64.Vec3, o geometry.Oracle) bool {
	to := cube.PosFromVec3(pos)
	safeY := cube.PosFromVec3(s.SafePosition).Y()

	for y := safeY - 1; y <= safeY+1; y++ {
		if o.Solid(cube.Pos{to.X(), y, to.Z()}) {
			return true
		}
	}
	for y := min(safeY, to.Y()); y <= max(safeY, to.Y()); y++ {
		if o.Solid(cube.Pos{to.X(), y, to.Z()}) {
			return true
		}
	}
	return false
}

// ApplyVelocity marks externally applied velocity of the cause and magnitude passed.
func (s *State) ApplyVelocity(cause Cause, magnitude float64) {
	s.Velocity.Set(cause, magnitude)
}

// Rollback moves the window back to pos after the host refused a move, so that the next delta is
// measured from the position the actor was actually returned to.
func (s *State) Rollback(pos mgl64.Vec3) {
	s.CurrentPosition = pos
	s.SafePosition = pos
}

// DistanceFromGround returns the vertical distance between the last ground contact and the current position.
func (s *State) DistanceFromGround() float64 {
	return math.Abs(s.CurrentPosition.Y() - s.GroundPosition.Y())
}
