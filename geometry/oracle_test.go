package geometry

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
)

func TestGridQueries(t *testing.T) {
	g := NewGrid()
	g.Fill(cube.Pos{-2, 0, -2}, cube.Pos{2, 0, 2}, SurfaceSolid)
	g.Set(cube.Pos{0, 1, 0}, SurfaceLadder)
	g.Set(cube.Pos{1, 1, 0}, SurfaceSlab)
	g.Set(cube.Pos{-1, 0, 0}, SurfaceBounce)
	g.Set(cube.Pos{0, 1, 1}, SurfaceLiquid)
	g.Set(cube.Pos{2, 1, 2}, SurfaceFence)
	o := New(g)

	if !o.Solid(cube.Pos{0, 0, 0}) || o.Solid(cube.Pos{0, 2, 0}) {
		t.Fatal("unexpected solidity")
	}
	if o.Solid(cube.Pos{0, 1, 0}) {
		t.Fatal("ladders must not be solid")
	}
	if !o.Climbable(mgl64.Vec3{0.5, 1, 0.5}) {
		t.Fatal("expected ladder to be climbable")
	}
	if !o.OnSlab(mgl64.Vec3{1.5, 1.5, 0.5}) {
		t.Fatal("expected actor standing on bottom slab")
	}
	if !o.OnBounceSurface(mgl64.Vec3{-0.5, 1, 0.5}) {
		t.Fatal("expected bounce surface under actor")
	}
	if o.OnBounceSurface(mgl64.Vec3{0.5, 1, 0.5}) {
		t.Fatal("stone is not a bounce surface")
	}
	if !o.InLiquid(mgl64.Vec3{0.5, 1.2, 1.5}) {
		t.Fatal("expected liquid")
	}
	if !o.OnFence(mgl64.Vec3{2.5, 2.5, 2.5}) {
		t.Fatal("expected actor on top of fence")
	}
}

func TestGridUnloadedDegrades(t *testing.T) {
	g := NewGrid()
	g.Set(cube.Pos{0, 0, 0}, SurfaceSolid)
	g.Set(cube.Pos{0, 1, 0}, SurfaceLadder)
	g.SetLoaded(0, 0, false)
	o := New(g)

	if o.Solid(cube.Pos{0, 0, 0}) {
		t.Fatal("unloaded cells must not be solid")
	}
	if o.Climbable(mgl64.Vec3{0.5, 1, 0.5}) {
		t.Fatal("unloaded cells must not be climbable")
	}

	g.SetLoaded(0, 0, true)
	if !o.Solid(cube.Pos{0, 0, 0}) {
		t.Fatal("expected cell to be solid once loaded again")
	}
}

type mockWorld struct {
	blocks map[cube.Pos]world.Block
	loaded bool
}

func (w mockWorld) Block(pos cube.Pos) world.Block {
	if b, ok := w.blocks[pos]; ok {
		return b
	}
	return block.Air{}
}

func (w mockWorld) IsChunkLoaded(int32, int32) bool {
	return w.loaded
}

func TestWorldOracle(t *testing.T) {
	w := mockWorld{
		loaded: true,
		blocks: map[cube.Pos]world.Block{
			{0, 0, 0}: block.Stone{},
			{0, 1, 0}: block.Ladder{},
			{3, 1, 3}: block.Water{Still: true, Depth: 8},
		},
	}
	o := NewWorldOracle(w)

	if !o.Solid(cube.Pos{0, 0, 0}) {
		t.Fatal("stone should be solid")
	}
	if o.Solid(cube.Pos{0, 5, 0}) {
		t.Fatal("air should not be solid")
	}
	if !o.Climbable(mgl64.Vec3{0.5, 1, 0.5}) {
		t.Fatal("ladder should be climbable")
	}
	if !o.InLiquid(mgl64.Vec3{3.5, 1.1, 3.5}) {
		t.Fatal("water should be liquid")
	}

	w.loaded = false
	o = NewWorldOracle(w)
	if o.Solid(cube.Pos{0, 0, 0}) || o.Climbable(mgl64.Vec3{0.5, 1, 0.5}) {
		t.Fatal("queries on unloaded chunks must degrade to empty")
	}
}
