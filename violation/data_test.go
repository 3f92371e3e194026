package violation

import (
	"testing"

	"github.com/oomph-ac/ascent/check"
)

func TestData(t *testing.T) {
	d := NewData()
	for i := 1; i <= 3; i++ {
		if lvl := d.Increment(check.KindFlight); lvl != i {
			t.Fatalf("expected level %d, got %d", i, lvl)
		}
	}
	d.Increment(check.KindSpeed)

	d.Clear(check.KindFlight)
	if d.Level(check.KindFlight) != 0 || d.Level(check.KindSpeed) != 1 {
		t.Fatal("Clear should only reset the kind passed")
	}

	d.ClearAll()
	d.ClearAll()
	if d.Level(check.KindSpeed) != 0 {
		t.Fatal("ClearAll should reset every kind")
	}
	if lvl := d.Increment(check.KindSpeed); lvl != 1 {
		t.Fatalf("expected cleared data to count from 1, got %d", lvl)
	}
}
