package geometry

import (
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
)

// Grid is an in-memory Classifier. Cells that were never set are empty, and whole chunks may be marked
// as unloaded. It is safe for concurrent use.
type Grid struct {
	mu       sync.RWMutex
	cells    map[cube.Pos]Surface
	unloaded map[[2]int32]struct{}
}

// NewGrid returns an empty Grid in which every chunk is loaded.
func NewGrid() *Grid {
	return &Grid{
		cells:    make(map[cube.Pos]Surface),
		unloaded: make(map[[2]int32]struct{}),
	}
}

// Set sets the surface of the cell at pos. Setting SurfaceNone removes the cell.
func (g *Grid) Set(pos cube.Pos, s Surface) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s == SurfaceNone {
		delete(g.cells, pos)
		return
	}
	g.cells[pos] = s
}

// Fill sets every cell in the inclusive box between a and b.
func (g *Grid) Fill(a, b cube.Pos, s Surface) {
	for x := min(a.X(), b.X()); x <= max(a.X(), b.X()); x++ {
		for y := min(a.Y(), b.Y()); y <= max(a.Y(), b.Y()); y++ {
			for z := min(a.Z(), b.Z()); z <= max(a.Z(), b.Z()); z++ {
				g.Set(cube.Pos{x, y, z}, s)
			}
		}
	}
}

// SetLoaded marks the chunk at the chunk coordinates passed as loaded or not.
func (g *Grid) SetLoaded(chunkX, chunkZ int32, loaded bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if loaded {
		delete(g.unloaded, [2]int32{chunkX, chunkZ})
		return
	}
	g.unloaded[[2]int32{chunkX, chunkZ}] = struct{}{}
}

// Surface ...
func (g *Grid) Surface(pos cube.Pos) (Surface, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.unloaded[[2]int32{int32(pos.X() >> 4), int32(pos.Z() >> 4)}]; ok {
		return SurfaceNone, false
	}
	return g.cells[pos], true
}
