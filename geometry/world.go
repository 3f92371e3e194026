package geometry

import (
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/model"
	"github.com/df-mc/dragonfly/server/world"
)

// BlockSource bridges a host world to the oracle.
type BlockSource interface {
	Block(pos cube.Pos) world.Block
	IsChunkLoaded(chunkX, chunkZ int32) bool
}

// WorldClassifier classifies the blocks of a dragonfly world.
type WorldClassifier struct {
	Source BlockSource
}

// NewWorldOracle returns an Oracle backed by the blocks of src.
func NewWorldOracle(src BlockSource) Oracle {
	return New(WorldClassifier{Source: src})
}

// Surface ...
func (c WorldClassifier) Surface(pos cube.Pos) (Surface, bool) {
	if c.Source == nil || !c.Source.IsChunkLoaded(int32(pos.X()>>4), int32(pos.Z()>>4)) {
		return SurfaceNone, false
	}
	b := c.Source.Block(pos)
	if b == nil {
		return SurfaceNone, true
	}
	return SurfaceOf(b), true
}

// SurfaceOf returns the surface classification of a block. dragonfly has no slime block, so SurfaceBounce is
// only returned for custom blocks registered by the host under the name "minecraft:slime".
func SurfaceOf(b world.Block) Surface {
	switch b.(type) {
	case block.Air:
		return SurfaceNone
	case block.Ladder:
		return SurfaceLadder
	case block.Slab:
		return SurfaceSlab
	case block.Stairs:
		return SurfaceStair
	case block.WoodFence, block.WoodFenceGate, block.NetherBrickFence, block.Wall:
		return SurfaceFence
	}
	if _, ok := b.(world.Liquid); ok {
		return SurfaceLiquid
	}

	name, _ := b.EncodeBlock()
	switch name {
	case "minecraft:slime":
		return SurfaceBounce
	case "minecraft:vine", "minecraft:cave_vines", "minecraft:cave_vines_body_with_berries", "minecraft:cave_vines_head_with_berries",
		"minecraft:twisting_vines", "minecraft:weeping_vines":
		return SurfaceLadder
	}

	if _, ok := b.Model().(model.Solid); ok {
		return SurfaceSolid
	}
	return SurfaceNone
}
