package actor

import "testing"

func TestEffects(t *testing.T) {
	e := NewEffects(EffectJumpBoost)
	if !e.Has(EffectJumpBoost) || e.Has(EffectLevitation) {
		t.Fatalf("unexpected set %08b", e)
	}
	if e.Anchored() {
		t.Fatal("jump boost should not anchor the actor")
	}
	e = e.With(EffectSlowFalling)
	if !e.Anchored() {
		t.Fatal("slow falling should anchor the actor")
	}
	e = e.Without(EffectSlowFalling).Without(EffectJumpBoost)
	if e != 0 {
		t.Fatalf("expected empty set, got %08b", e)
	}
}
