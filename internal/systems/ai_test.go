package systems

import (
	"math"
	"testing"

	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

func TestAISetsVerticalVelocityFromSafeAmplitude(t *testing.T) {
	r := newTestRegistry()
	a := NewAI(r.Components)
	r.AddSystem(a, 0)

	e := r.Create()
	ecs.Emplace(r, e, components.AIControlled{})
	ecs.Emplace(r, e, components.SinusoidalPattern{Amplitude: 100, Frequency: 0.01, Phase: 0})
	ecs.Emplace(r, e, components.Position{X: 0, Y: 500})
	ecs.Emplace(r, e, components.Velocity{X: 50, Y: 0})
	ecs.Emplace(r, e, components.Renderable{ScreenSizeY: 1080})
	ecs.Emplace(r, e, components.Collider{Size: components.Vec2{X: 10, Y: 10}})

	a.Update(r, 1.0/60.0)

	v := ecs.Get[components.Velocity](r, e)
	want := 100.0 * 0.01 * math.Cos(0*0.01+0) * 50.0
	if math.Abs(v.Y-want) > 1e-9 {
		t.Fatalf("expected v.Y=%v, got %v", want, v.Y)
	}
}

func TestAIZeroesVelocityWhenNoSafeAmplitude(t *testing.T) {
	r := newTestRegistry()
	a := NewAI(r.Components)
	r.AddSystem(a, 0)

	e := r.Create()
	ecs.Emplace(r, e, components.AIControlled{})
	ecs.Emplace(r, e, components.SinusoidalPattern{Amplitude: 100, Frequency: 0.01, Phase: 0})
	// Position pinned at the very top: topMargin=5 < 10 forces safeAmplitude <= 0.
	ecs.Emplace(r, e, components.Position{X: 0, Y: 5})
	ecs.Emplace(r, e, components.Velocity{X: 50, Y: 999})
	ecs.Emplace(r, e, components.Renderable{ScreenSizeY: 1080})
	ecs.Emplace(r, e, components.Collider{Size: components.Vec2{X: 10, Y: 10}})

	a.Update(r, 1.0/60.0)

	v := ecs.Get[components.Velocity](r, e)
	if v.Y != 0 {
		t.Fatalf("expected v.Y=0 when no room to weave, got %v", v.Y)
	}
}
