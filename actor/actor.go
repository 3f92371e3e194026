// Package actor holds the read-only view of a connected actor that the host hands to the
// detector once per tick.
package actor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Identity identifies an actor across ticks.
type Identity struct {
	ID   uuid.UUID
	Name string
}

// String ...
func (i Identity) String() string {
	if i.Name != "" {
		return i.Name
	}
	return i.ID.String()
}

// Snapshot is the state of an actor as reported for a single tick. The detector never
// retains a Snapshot past the tick it was delivered on.
type Snapshot struct {
	Identity

	// Position is the position of the actor's feet.
	Position mgl64.Vec3
	// OnGround is the ground flag as claimed by the client.
	OnGround bool
	// FallDistance is the host's accumulated fall distance for the actor.
	FallDistance float64
	// InVehicle is true if the actor is riding another entity.
	InVehicle bool
	Effects   Effects
}
