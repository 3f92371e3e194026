package event

import (
	"encoding/json"
	"testing"

	"github.com/df-mc/dragonfly/server/event"
	"github.com/google/uuid"
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/check"
)

func TestNewFlagged(t *testing.T) {
	target := actor.Identity{ID: uuid.New(), Name: "Steve"}
	o := check.Fail(check.MustLookup(check.KindFlight), "Ladder", "ladder_ascend").With("speed", 0.2)
	f := NewFlagged(target, check.MustLookup(check.KindFlight), o)

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("failed encoding flagged event: %v", err)
	}
	want := `{"player":"Steve","check_main":"Flight","check_sub":"Flight (Ladder)","reason":"ladder_ascend","extraData":"[speed=0.2]"}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

func TestNopHandlerNeverCancels(t *testing.T) {
	var h Handler = NopHandler{}
	target := actor.Identity{ID: uuid.New(), Name: "Steve"}

	ctx := event.C(NewRemoval(target, check.MustLookup(check.KindFlight)))
	h.HandleRemoval(ctx)
	if ctx.Cancelled() {
		t.Fatal("NopHandler should not cancel removals")
	}
	if ctx.Val().Player != "Steve" {
		t.Fatalf("unexpected payload %+v", ctx.Val())
	}
}
