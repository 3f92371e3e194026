package detection

import (
	"math"

	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/check"
	"github.com/oomph-ac/ascent/movement"
)

const (
	hoverTicks         = 10
	ladderAirTicks     = 20
	ladderAscendMoves  = 4
	ladderInstantBonus = 0.12

	maxJumpDistance = 1.4
	jumpBoostBonus  = 0.4

	glideDistance   = 1.6
	glideLowerDelta = 0.05
	glideUpperDelta = 0.07
)

// Flight checks whether the vertical movement of an actor is physically possible.
type Flight struct {
	desc check.Descriptor
}

// NewFlight ...
func NewFlight() *Flight {
	return &Flight{desc: check.MustLookup(check.KindFlight)}
}

func (f *Flight) Descriptor() check.Descriptor {
	return f.desc
}

func (*Flight) Description() string {
	return "Checks if the vertical movement of a player is possible: hovering, fast ladders, jumping too high or for too long, walking on liquids and falling without gravity."
}

// Evaluate runs the sub-checks of flight in order and returns the first one that fails.
func (f *Flight) Evaluate(ctx Context) check.Outcome {
	s := ctx.State
	if s.Ticks < 2 {
		return check.Pass(f.desc)
	}
	if s.Clipped {
		if s.Velocity.Is(movement.CauseKnockback) {
			s.Velocity.Clear()
		}
		return check.Fail(f.desc, "Vertical Clip", "vclip_solid").
			WithRollback(s.SafePosition).
			With("speed", check.Round64(s.VerticalSpeed, 3))
	}

	// Knockback legitimately defeats every other heuristic for the tick it is applied on.
	if s.Velocity.Is(movement.CauseKnockback) {
		s.Velocity.Clear()
		return check.Pass(f.desc)
	}

	for _, sub := range [...]func(Context) (check.Outcome, bool){
		f.hover,
		f.ladder,
		f.bounce,
		f.liquid,
		f.ascension,
		f.glide,
	} {
		if o, failed := sub(ctx); failed {
			return o
		}
	}
	return check.Pass(f.desc)
}

// hover flags actors that stay in the air without any vertical movement.
func (f *Flight) hover(ctx Context) (check.Outcome, bool) {
	s, snap := ctx.State, ctx.Snapshot
	if s.WasOnGround || snap.InVehicle || s.Climbing || s.LadderTime > 0 || s.InLiquid || snap.Effects.Has(actor.EffectLevitation) {
		return check.Outcome{}, false
	}
	if s.LastVerticalSpeed != 0 || s.VerticalSpeed != 0 || s.AirTicks < hoverTicks {
		return check.Outcome{}, false
	}
	return check.Fail(f.desc, "Hover", "hover").With("air_ticks", s.AirTicks), true
}

// ladder flags actors that climb faster than a ladder allows after being in the air for a long time.
func (f *Flight) ladder(ctx Context) (check.Outcome, bool) {
	s, snap := ctx.State, ctx.Snapshot
	if !s.Climbing || s.AirTicks < ladderAirTicks || s.PriorAscendingMoves <= ladderAscendMoves || snap.FallDistance != 0 {
		return check.Outcome{}, false
	}

	cfg := ctx.Settings.Flight
	var reason string
	var limit float64
	switch {
	case s.Ascending && s.VerticalSpeed > cfg.AscendLadder+ladderInstantBonus:
		reason, limit = "ladder_instant", cfg.AscendLadder+ladderInstantBonus
	case s.Ascending && s.VerticalSpeed > cfg.AscendLadder:
		reason, limit = "ladder_ascend", cfg.AscendLadder
	case s.Descending && s.VerticalSpeed > cfg.DescendLadder:
		reason, limit = "ladder_descend", cfg.DescendLadder
	default:
		return check.Outcome{}, false
	}
	return check.Fail(f.desc, "Ladder", reason).
		WithRollback(s.PreviousPosition).
		With("speed", check.Round64(s.VerticalSpeed, 4)).
		With("max", limit), true
}

// bounce flags actors whose velocity from a bounce surface grows instead of decaying.
func (f *Flight) bounce(ctx Context) (check.Outcome, bool) {
	s := ctx.State
	if !s.Velocity.Is(movement.CauseBounce) || s.Climbing || s.InLiquid || s.OnGround {
		return check.Outcome{}, false
	}
	if s.Velocity.Current <= s.Velocity.Last || s.AscendingMoves <= ctx.Settings.Flight.AscendTime {
		return check.Outcome{}, false
	}
	return check.Fail(f.desc, "Ascension", "ascending_slimeblock").
		With("velocity", check.Round64(s.Velocity.Current, 4)).
		With("last", check.Round64(s.Velocity.Last, 4)).
		With("moves", s.AscendingMoves), true
}

// liquid flags actors that claim to be on the ground while moving vertically in a liquid.
func (f *Flight) liquid(ctx Context) (check.Outcome, bool) {
	s := ctx.State
	if !(s.Ascending || s.Descending) || !s.InLiquid || s.OnGround {
		return check.Outcome{}, false
	}
	if !s.ClientOnGround || s.VerticalSpeed == 0 {
		return check.Outcome{}, false
	}
	return check.Fail(f.desc, "Jesus", "ccground_liquid").With("speed", check.Round64(s.VerticalSpeed, 4)), true
}

// unassisted returns true if nothing but the actor's own input can explain its vertical movement.
func unassisted(ctx Context) bool {
	s, snap := ctx.State, ctx.Snapshot
	pos := s.CurrentPosition
	return !s.Velocity.Active && !s.Climbing && !s.InLiquid && !snap.InVehicle &&
		!ctx.Oracle.OnSlab(pos) && !ctx.Oracle.OnStair(pos)
}

// ascension flags jumps that are too high, too long or too fast.
func (f *Flight) ascension(ctx Context) (check.Outcome, bool) {
	s := ctx.State
	if !s.Ascending || !unassisted(ctx) || ctx.Oracle.OnFence(s.CurrentPosition) {
		return check.Outcome{}, false
	}

	cfg := ctx.Settings.Flight
	if dist := s.DistanceFromGround(); dist >= maxJumpDistance {
		return check.Fail(f.desc, "Ascension", "ascending_distance").With("distance", check.Round64(dist, 4)), true
	}
	if s.AscendingMoves > cfg.AscendTime {
		return check.Fail(f.desc, "Ascension", "ascending_move").With("moves", s.AscendingMoves).With("max", cfg.AscendTime), true
	}
	if limit := maxJump(ctx); s.VerticalSpeed > limit {
		return check.Fail(f.desc, "Ascension", "vertical_jump").
			WithRollback(s.PreviousPosition).
			With("speed", check.Round64(s.VerticalSpeed, 4)).
			With("max", limit), true
	}
	return check.Outcome{}, false
}

// maxJump returns the highest vertical speed a single tick of a jump may have.
func maxJump(ctx Context) float64 {
	limit := ctx.Settings.Flight.MaxJump
	if ctx.Snapshot.Effects.Has(actor.EffectJumpBoost) {
		limit += jumpBoostBonus
	}
	return limit
}

// glide flags falls that are not accelerated by gravity.
func (f *Flight) glide(ctx Context) (check.Outcome, bool) {
	s := ctx.State
	if !s.Descending || !unassisted(ctx) || ctx.Snapshot.Effects.Anchored() {
		return check.Outcome{}, false
	}
	s.DescendingMoves++

	diff := s.VerticalSpeed - s.LastVerticalSpeed
	if math.Abs(diff) == 0 {
		return check.Fail(f.desc, "Glide", "descend_delta").With("speed", check.Round64(s.VerticalSpeed, 4)), true
	}

	// TODO: This accepts only a narrow band of accelerations and flags long falls near terminal
	// velocity. Kept as is until the intended band is confirmed.
	if s.DistanceFromGround() > glideDistance && s.LadderTime == 0 && (diff > glideUpperDelta || diff < glideLowerDelta) {
		return check.Fail(f.desc, "Glide", "descend_difference").
			With("diff", check.Round64(diff, 4)).
			With("moves", s.DescendingMoves), true
	}
	return check.Outcome{}, false
}
