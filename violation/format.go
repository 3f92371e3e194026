package violation

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/check"
	"github.com/sandertv/gophertunnel/minecraft/text"
)

// Notification is sent to observers when an actor reaches a notifying violation level.
type Notification struct {
	Actor actor.Identity
	Check check.Descriptor
	// Label is the display label of the sub-check that failed.
	Label  string
	Reason string
	Level  int
	Extra  *orderedmap.OrderedMap[string, any]
}

// Info returns the debug information of the notification: its reason followed by any extra data.
func (n Notification) Info() string {
	if n.Extra == nil || n.Extra.Len() == 0 {
		return n.Reason
	}
	return n.Reason + " " + check.ExtraString(n.Extra)
}

// Formatter turns a Notification into the text sent to a single observer. Verbose observers are
// those listening for debug information.
type Formatter interface {
	Format(n Notification, verbose bool) string
}

// ChatFormatter formats notifications as coloured chat messages.
type ChatFormatter struct{}

// Format ...
func (ChatFormatter) Format(n Notification, verbose bool) string {
	msg := text.Colourf("<dark-grey>[<red>Arc</red>]</dark-grey> <blue>%s</blue> has violated check <red>%s</red> <dark-grey>(<red>%d</red>)</dark-grey>", n.Actor.Name, n.Label, n.Level)
	if verbose {
		msg += text.Colourf(" <grey>[%s]</grey>", n.Info())
	}
	return msg
}
