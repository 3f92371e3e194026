package violation

import (
	"sync"

	"github.com/oomph-ac/ascent/check"
)

// Data holds the violation levels of a single actor. Levels only ever increase by one or are
// cleared back to zero. Data is safe for concurrent use.
type Data struct {
	mu     sync.Mutex
	levels map[check.Kind]int
}

// NewData ...
func NewData() *Data {
	return &Data{levels: make(map[check.Kind]int)}
}

// Increment raises the level of the check kind passed by one and returns the new level.
func (d *Data) Increment(k check.Kind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.levels[k]++
	return d.levels[k]
}

// Level returns the current level of the check kind passed.
func (d *Data) Level(k check.Kind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.levels[k]
}

// Clear resets the level of the check kind passed to zero.
func (d *Data) Clear(k check.Kind) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.levels, k)
}

// ClearAll resets every level to zero. Clearing cleared data is a no-op.
func (d *Data) ClearAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.levels)
}
