package actor

// Effect is a status effect that changes what vertical movement is legitimate.
type Effect uint8

const (
	EffectJumpBoost Effect = iota
	EffectLevitation
	EffectSlowFalling
)

// Effects is a set of active status effects.
type Effects uint8

// NewEffects returns a set holding the effects passed.
func NewEffects(effects ...Effect) Effects {
	var e Effects
	for _, eff := range effects {
		e = e.With(eff)
	}
	return e
}

// With returns a copy of the set with eff added.
func (e Effects) With(eff Effect) Effects {
	return e | 1<<eff
}

// Without returns a copy of the set with eff removed.
func (e Effects) Without(eff Effect) Effects {
	return e &^ (1 << eff)
}

// Has returns true if eff is active.
func (e Effects) Has(eff Effect) bool {
	return e&(1<<eff) != 0
}

// Anchored returns true if an active effect overrides normal gravity.
func (e Effects) Anchored() bool {
	return e.Has(EffectLevitation) || e.Has(EffectSlowFalling)
}
