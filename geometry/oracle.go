// Package geometry exposes the read-only world queries used by movement checks. Every query degrades to
// "nothing special here" when the region it touches is not loaded, so that transient gaps in world loading
// cannot produce a flag.
package geometry

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Oracle answers point queries about world geometry. Positions passed as mgl64.Vec3 are the feet
// position of an actor.
type Oracle interface {
	// Solid returns true if the cell at pos blocks movement.
	Solid(pos cube.Pos) bool
	// Climbable returns true if the actor is inside a ladder or vine.
	Climbable(pos mgl64.Vec3) bool
	// OnSlab returns true if the actor is standing in or on a slab.
	OnSlab(pos mgl64.Vec3) bool
	// OnStair returns true if the actor is standing in or on stairs.
	OnStair(pos mgl64.Vec3) bool
	// OnBounceSurface returns true if the actor is standing on a surface that launches it upwards.
	OnBounceSurface(pos mgl64.Vec3) bool
	// InLiquid returns true if the actor's feet are inside a liquid.
	InLiquid(pos mgl64.Vec3) bool
	// OnFence returns true if the actor is standing on a fence or wall, which extends jump height.
	OnFence(pos mgl64.Vec3) bool
}

// Surface is the movement-relevant classification of a single cell.
type Surface uint8

const (
	SurfaceNone Surface = iota
	SurfaceSolid
	SurfaceSlab
	SurfaceStair
	SurfaceLadder
	SurfaceBounce
	SurfaceLiquid
	SurfaceFence
)

// Solid returns true if the surface blocks movement through the cell.
func (s Surface) Solid() bool {
	switch s {
	case SurfaceSolid, SurfaceSlab, SurfaceStair, SurfaceBounce, SurfaceFence:
		return true
	default:
		return false
	}
}

// Classifier classifies cells. ok is false if the cell is in a region that is not loaded.
type Classifier interface {
	Surface(pos cube.Pos) (s Surface, ok bool)
}

// cellOracle implements Oracle on top of a Classifier.
type cellOracle struct {
	c Classifier
}

// New returns an Oracle that answers queries using the Classifier passed.
func New(c Classifier) Oracle {
	return cellOracle{c: c}
}

// surface returns the surface of the cell, treating unloaded cells as empty.
func (o cellOracle) surface(pos cube.Pos) Surface {
	s, ok := o.c.Surface(pos)
	if !ok {
		return SurfaceNone
	}
	return s
}

func (o cellOracle) at(pos mgl64.Vec3, yOffset float64) Surface {
	return o.surface(cube.PosFromVec3(mgl64.Vec3{pos.X(), pos.Y() + yOffset, pos.Z()}))
}

func (o cellOracle) Solid(pos cube.Pos) bool {
	return o.surface(pos).Solid()
}

func (o cellOracle) Climbable(pos mgl64.Vec3) bool {
	return o.at(pos, 0) == SurfaceLadder
}

func (o cellOracle) OnSlab(pos mgl64.Vec3) bool {
	return o.at(pos, 0) == SurfaceSlab || o.at(pos, -0.5) == SurfaceSlab
}

func (o cellOracle) OnStair(pos mgl64.Vec3) bool {
	return o.at(pos, 0) == SurfaceStair || o.at(pos, -0.5) == SurfaceStair
}

func (o cellOracle) OnBounceSurface(pos mgl64.Vec3) bool {
	return o.at(pos, -0.5) == SurfaceBounce
}

func (o cellOracle) InLiquid(pos mgl64.Vec3) bool {
	return o.at(pos, 0) == SurfaceLiquid
}

func (o cellOracle) OnFence(pos mgl64.Vec3) bool {
	// Fences are 1.5 cells tall, so an actor on top of one has its feet half way into the cell above.
	return o.at(pos, -0.5) == SurfaceFence || o.at(pos, -1) == SurfaceFence
}
