package systems

import (
	"testing"

	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

func TestAnimationAdvancesFrameOnceDurationElapsed(t *testing.T) {
	r := newTestRegistry()
	a := NewAnimation(r.Components)
	r.AddSystem(a, 0)

	e := r.Create()
	ecs.Emplace(r, e, components.Renderable{
		AutoAnimate:     true,
		Frames:          []components.Vec2{{}, {}, {}},
		FrameDurationMs: 100,
	})

	a.Update(r, 0.05) // 50ms, not enough yet
	if ecs.Get[components.Renderable](r, e).CurrentFrame != 0 {
		t.Fatal("expected no frame advance before duration elapses")
	}

	a.Update(r, 0.06) // total 110ms, one advance with 10ms carried forward
	render := ecs.Get[components.Renderable](r, e)
	if render.CurrentFrame != 1 {
		t.Fatalf("expected frame 1, got %d", render.CurrentFrame)
	}
	if render.ElapsedMs() != 10 {
		t.Fatalf("expected 10ms carried into the next frame, got %d", render.ElapsedMs())
	}
}

func TestAnimationWrapsFrameIndex(t *testing.T) {
	r := newTestRegistry()
	a := NewAnimation(r.Components)
	r.AddSystem(a, 0)

	e := r.Create()
	ecs.Emplace(r, e, components.Renderable{
		AutoAnimate:     true,
		Frames:          []components.Vec2{{}, {}},
		FrameDurationMs: 10,
		CurrentFrame:    1,
	})

	a.Update(r, 0.01)

	if ecs.Get[components.Renderable](r, e).CurrentFrame != 0 {
		t.Fatal("expected frame index to wrap back to 0")
	}
}

func TestAnimationSkipsNonAutoAnimatedSprites(t *testing.T) {
	r := newTestRegistry()
	a := NewAnimation(r.Components)
	r.AddSystem(a, 0)

	e := r.Create()
	ecs.Emplace(r, e, components.Renderable{
		AutoAnimate:     false,
		Frames:          []components.Vec2{{}, {}},
		FrameDurationMs: 1,
		CurrentFrame:    0,
	})

	a.Update(r, 10)

	if ecs.Get[components.Renderable](r, e).CurrentFrame != 0 {
		t.Fatal("expected static sprite to never advance")
	}
}
