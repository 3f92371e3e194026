package check

import "github.com/oomph-ac/ascent/assert"

// Kind identifies a check. Violation levels and thresholds are keyed by Kind.
type Kind uint8

const (
	KindFlight Kind = iota
	KindSpeed
	KindNoFall
	KindMorePackets
	KindCriticals
	KindNoSwing
	KindReach
	KindRegeneration
	KindFastConsume
	KindKillAura
	kindCount
)

// Category groups checks by the kind of behaviour they inspect.
type Category uint8

const (
	CategoryMovement Category = iota
	CategoryFight
	CategoryInventory
)

func (c Category) String() string {
	switch c {
	case CategoryMovement:
		return "movement"
	case CategoryFight:
		return "fight"
	case CategoryInventory:
		return "inventory"
	default:
		return "unknown"
	}
}

// Descriptor is the immutable metadata of a check. Descriptors are shared by every
// actor and are never modified after registration: the sub-heuristic that fired
// is carried on the Outcome instead.
type Descriptor struct {
	Kind     Kind
	Category Category
	// Name is the canonical display name, e.g. "Flight".
	Name string
	// Key is the configuration key of the check, e.g. "flight".
	Key string
}

var descriptors = [kindCount]Descriptor{
	KindFlight:       {Kind: KindFlight, Category: CategoryMovement, Name: "Flight", Key: "flight"},
	KindSpeed:        {Kind: KindSpeed, Category: CategoryMovement, Name: "Speed", Key: "speed"},
	KindNoFall:       {Kind: KindNoFall, Category: CategoryMovement, Name: "NoFall", Key: "nofall"},
	KindMorePackets:  {Kind: KindMorePackets, Category: CategoryMovement, Name: "MorePackets", Key: "morepackets"},
	KindCriticals:    {Kind: KindCriticals, Category: CategoryFight, Name: "Criticals", Key: "criticals"},
	KindNoSwing:      {Kind: KindNoSwing, Category: CategoryFight, Name: "NoSwing", Key: "noswing"},
	KindReach:        {Kind: KindReach, Category: CategoryFight, Name: "Reach", Key: "reach"},
	KindRegeneration: {Kind: KindRegeneration, Category: CategoryFight, Name: "Regeneration", Key: "regeneration"},
	KindFastConsume:  {Kind: KindFastConsume, Category: CategoryInventory, Name: "FastConsume", Key: "fastconsume"},
	KindKillAura:     {Kind: KindKillAura, Category: CategoryFight, Name: "KillAura", Key: "killaura"},
}

// Lookup returns the descriptor registered for the kind passed.
func Lookup(k Kind) (Descriptor, bool) {
	if k >= kindCount {
		return Descriptor{}, false
	}
	return descriptors[k], true
}

// MustLookup returns the descriptor of k and panics if k was never registered.
func MustLookup(k Kind) Descriptor {
	d, ok := Lookup(k)
	assert.IsTrue(ok, "check: kind %d is not registered", k)
	return d
}

// Descriptors returns every registered descriptor, ordered by Kind.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors[:])
	return out
}

func (k Kind) String() string {
	if d, ok := Lookup(k); ok {
		return d.Key
	}
	return "unknown"
}
