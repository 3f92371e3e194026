// Package event holds the hooks a host can install on the detector to observe and veto its decisions.
package event

import (
	"github.com/df-mc/dragonfly/server/event"
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/check"
)

// Handler handles events called by the detector. Implementations embed NopHandler and override only
// the methods they need.
type Handler interface {
	// HandleFlag handles an actor failing a check. Cancelling ctx drops the flag: no violation is recorded
	// and the update is not cancelled.
	HandleFlag(ctx *event.Context[*Flagged])
	// HandleRemoval handles the removal of an actor being scheduled. Cancelling ctx keeps the actor on
	// the server.
	HandleRemoval(ctx *event.Context[*Removal])
}

// NopHandler implements Handler without doing anything.
type NopHandler struct{}

func (NopHandler) HandleFlag(*event.Context[*Flagged])   {}
func (NopHandler) HandleRemoval(*event.Context[*Removal]) {}

// Flagged is the payload of a failed check.
type Flagged struct {
	Actor     actor.Identity `json:"-"`
	Player    string         `json:"player"`
	Detection string         `json:"check_main"`
	Type      string         `json:"check_sub"`
	Reason    string         `json:"reason"`
	ExtraData string         `json:"extraData"`

	Outcome check.Outcome `json:"-"`
}

// ID ...
func (*Flagged) ID() string {
	return "ascent:flagged"
}

// NewFlagged returns the Flagged payload of the check d failed by target with outcome o.
func NewFlagged(target actor.Identity, d check.Descriptor, o check.Outcome) *Flagged {
	return &Flagged{
		Actor:     target,
		Player:    target.Name,
		Detection: d.Name,
		Type:      o.Label,
		Reason:    o.Reason,
		ExtraData: check.ExtraString(o.Extra),
		Outcome:   o,
	}
}

// Removal is the payload of a scheduled removal.
type Removal struct {
	Actor     actor.Identity `json:"-"`
	Player    string         `json:"player"`
	Detection string         `json:"check_main"`
}

// ID ...
func (*Removal) ID() string {
	return "ascent:removal"
}

// NewRemoval ...
func NewRemoval(target actor.Identity, d check.Descriptor) *Removal {
	return &Removal{Actor: target, Player: target.Name, Detection: d.Name}
}
