package check

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDescriptorsRegistered(t *testing.T) {
	seen := make(map[string]bool)
	for i, d := range Descriptors() {
		if d.Kind != Kind(i) {
			t.Fatalf("descriptor at %d has kind %d", i, d.Kind)
		}
		if d.Name == "" || d.Key == "" {
			t.Fatalf("descriptor %d is missing a name or key", i)
		}
		if seen[d.Key] {
			t.Fatalf("duplicate key %q", d.Key)
		}
		seen[d.Key] = true
	}
	if _, ok := Lookup(kindCount); ok {
		t.Fatal("expected lookup of an unregistered kind to fail")
	}
}

func TestDescriptorsCannotBeMutated(t *testing.T) {
	list := Descriptors()
	list[KindFlight].Name = "Flight (Hover)"
	if MustLookup(KindFlight).Name != "Flight" {
		t.Fatal("mutating the returned slice changed the registered descriptor")
	}
}

func TestFailLabels(t *testing.T) {
	d := MustLookup(KindFlight)
	o := Fail(d, "Hover", "hover")
	if !o.Failed || o.Label != "Flight (Hover)" || o.Reason != "hover" {
		t.Fatalf("unexpected outcome %+v", o)
	}
	if o.HasRollback {
		t.Fatal("fail should not carry a rollback unless requested")
	}
	o = o.WithRollback(mgl64.Vec3{1, 2, 3})
	if !o.HasRollback || o.Rollback != (mgl64.Vec3{1, 2, 3}) {
		t.Fatalf("rollback not applied: %+v", o)
	}
	if p := Pass(d); p.Failed || p.Label != "Flight" {
		t.Fatalf("unexpected pass %+v", p)
	}
}

func TestExtraString(t *testing.T) {
	if got := ExtraString(nil); got != "[]" {
		t.Fatalf("expected empty brackets, got %q", got)
	}
	o := Fail(MustLookup(KindFlight), "Ladder", "ladder_ascend").
		With("speed", Round64(0.123456, 3)).
		With("max", 0.118)
	if got := ExtraString(o.Extra); got != "[speed=0.123 max=0.118]" {
		t.Fatalf("unexpected extra string %q", got)
	}
}
