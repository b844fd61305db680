package systems

import (
	"testing"

	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

func TestDeathDestroysZeroHealthEntities(t *testing.T) {
	r := newTestRegistry()
	d := NewDeath(r.Components, nil)
	r.AddSystem(d, 0)

	dead := r.Create()
	ecs.Emplace(r, dead, components.Health{Current: 0, Max: 20})
	alive := r.Create()
	ecs.Emplace(r, alive, components.Health{Current: 5, Max: 20})

	d.Update(r, 1.0/60.0)

	if ecs.Has[components.Health](r, dead) {
		t.Fatal("zero-health entity must be destroyed")
	}
	if !ecs.Has[components.Health](r, alive) {
		t.Fatal("entity with remaining health must survive")
	}
}

func TestDeathFiresOnPlayerDeathBeforeDestroyingInputControlled(t *testing.T) {
	r := newTestRegistry()

	var firedBeforeDestroy bool
	var calledWith ecs.Entity
	d := NewDeath(r.Components, func(e ecs.Entity) {
		calledWith = e
		firedBeforeDestroy = ecs.Has[components.Health](r, e)
	})
	r.AddSystem(d, 0)

	player := r.Create()
	ecs.Emplace(r, player, components.Health{Current: 0, Max: 20})
	ecs.Emplace(r, player, components.InputControlled{})

	d.Update(r, 1.0/60.0)

	if calledWith != player {
		t.Fatal("expected onPlayerDeath callback invoked for the player entity")
	}
	if !firedBeforeDestroy {
		t.Fatal("expected onPlayerDeath to fire before the entity was destroyed")
	}
	if ecs.Has[components.InputControlled](r, player) {
		t.Fatal("expected the entity to be destroyed after the callback")
	}
}

func TestDeathSkipsCallbackForNonPlayerEntities(t *testing.T) {
	r := newTestRegistry()

	called := false
	d := NewDeath(r.Components, func(ecs.Entity) { called = true })
	r.AddSystem(d, 0)

	e := r.Create()
	ecs.Emplace(r, e, components.Health{Current: 0, Max: 20})

	d.Update(r, 1.0/60.0)

	if called {
		t.Fatal("onPlayerDeath must only fire for InputControlled entities")
	}
}
