package main

import (
	"os"
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/geometry"
	"github.com/oomph-ac/ascent/movement"
	"github.com/oomph-ac/ascent/oerror"
	"gopkg.in/yaml.v3"
)

// World describes the cells of a replayed world.
type World struct {
	Cells []Cells `yaml:"cells"`
	// Unloaded lists the chunks, as [x, z] pairs, that are not loaded.
	Unloaded [][2]int32 `yaml:"unloaded,omitempty"`
}

// Cells is a cuboid of cells sharing a surface.
type Cells struct {
	From    [3]int `yaml:"from"`
	To      [3]int `yaml:"to"`
	Surface string `yaml:"surface"`
}

// Trace is a recording of the movement of one or more actors.
type Trace struct {
	Observers []TraceObserver `yaml:"observers,omitempty"`
	Actors    []TraceActor    `yaml:"actors"`
}

// TraceObserver is an actor that receives notifications during the replay without moving.
type TraceObserver struct {
	Name    string `yaml:"name"`
	Verbose bool   `yaml:"verbose"`
	Muted   bool   `yaml:"muted"`
}

// TraceActor is the recorded movement of a single actor.
type TraceActor struct {
	Name  string      `yaml:"name"`
	Debug bool        `yaml:"debug"`
	Ticks []TraceTick `yaml:"ticks"`
}

// TraceTick is a single recorded movement update.
type TraceTick struct {
	Position     [3]float64 `yaml:"pos"`
	OnGround     bool       `yaml:"ground"`
	FallDistance float64    `yaml:"fall,omitempty"`
	InVehicle    bool       `yaml:"vehicle,omitempty"`
	Effects      []string   `yaml:"effects,omitempty"`
	// Knockback is the magnitude of knockback applied right before the tick.
	Knockback float64 `yaml:"knockback,omitempty"`
	// Repeat replays the tick this many times. Zero and one both replay it once.
	Repeat int `yaml:"repeat,omitempty"`
}

var surfaces = map[string]geometry.Surface{
	"none":   geometry.SurfaceNone,
	"solid":  geometry.SurfaceSolid,
	"slab":   geometry.SurfaceSlab,
	"stair":  geometry.SurfaceStair,
	"ladder": geometry.SurfaceLadder,
	"bounce": geometry.SurfaceBounce,
	"liquid": geometry.SurfaceLiquid,
	"fence":  geometry.SurfaceFence,
}

var effects = map[string]actor.Effect{
	"jump_boost":   actor.EffectJumpBoost,
	"levitation":   actor.EffectLevitation,
	"slow_falling": actor.EffectSlowFalling,
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return oerror.New("error reading %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return oerror.New("error decoding %s: %v", path, err)
	}
	return nil
}

// LoadWorld reads the world file at path into a Grid.
func LoadWorld(path string) (*geometry.Grid, error) {
	var w World
	if err := decodeFile(path, &w); err != nil {
		return nil, err
	}
	return w.Grid()
}

// Grid builds a Grid holding the cells of the world.
func (w World) Grid() (*geometry.Grid, error) {
	g := geometry.NewGrid()
	for _, c := range w.Cells {
		s, ok := surfaces[strings.ToLower(c.Surface)]
		if !ok {
			return nil, oerror.New("unknown surface %q", c.Surface)
		}
		g.Fill(cube.Pos{c.From[0], c.From[1], c.From[2]}, cube.Pos{c.To[0], c.To[1], c.To[2]}, s)
	}
	for _, chunk := range w.Unloaded {
		g.SetLoaded(chunk[0], chunk[1], false)
	}
	return g, nil
}

// LoadTrace reads the trace file at path.
func LoadTrace(path string) (Trace, error) {
	var t Trace
	if err := decodeFile(path, &t); err != nil {
		return Trace{}, err
	}
	for _, a := range t.Actors {
		if a.Name == "" {
			return Trace{}, oerror.New("trace actor without name")
		}
	}
	return t, nil
}

// Identity returns a stable identity for the actor name passed, so that replays of the same trace
// produce the same sessions.
func Identity(name string) actor.Identity {
	return actor.Identity{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)), Name: name}
}

// Snapshot converts the tick to the snapshot of the actor passed.
func (t TraceTick) Snapshot(id actor.Identity) (actor.Snapshot, error) {
	snap := actor.Snapshot{
		Identity:     id,
		Position:     mgl64.Vec3{t.Position[0], t.Position[1], t.Position[2]},
		OnGround:     t.OnGround,
		FallDistance: t.FallDistance,
		InVehicle:    t.InVehicle,
	}
	for _, name := range t.Effects {
		eff, ok := effects[strings.ToLower(name)]
		if !ok {
			return actor.Snapshot{}, oerror.New("unknown effect %q", name)
		}
		snap.Effects = snap.Effects.With(eff)
	}
	return snap, nil
}

// Velocity returns the knockback applied before the tick, if any.
func (t TraceTick) Velocity() (movement.Cause, float64, bool) {
	if t.Knockback <= 0 {
		return movement.CauseNone, 0, false
	}
	return movement.CauseKnockback, t.Knockback, true
}

// Expand returns the ticks of the actor with every repeated tick expanded.
func (a TraceActor) Expand() []TraceTick {
	ticks := make([]TraceTick, 0, len(a.Ticks))
	for _, t := range a.Ticks {
		for i := 0; i < max(t.Repeat, 1); i++ {
			ticks = append(ticks, t)
		}
	}
	return ticks
}
