package systems

import (
	"math"

	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

// AI drives the sinusoidal vertical weave used by enemy waves. It must
// run before Motion so the velocity it writes survives integration in
// the same tick.
type AI struct {
	ecs.Base
}

// NewAI builds the AI system.
func NewAI(reg *ecs.ComponentRegistry) *AI {
	a := &AI{Base: ecs.NewBase("ai")}
	a.Require(
		ecs.IDOf[components.AIControlled](reg),
		ecs.IDOf[components.SinusoidalPattern](reg),
		ecs.IDOf[components.Position](reg),
		ecs.IDOf[components.Velocity](reg),
		ecs.IDOf[components.Renderable](reg),
		ecs.IDOf[components.Collider](reg),
	)
	return a
}

// Update implements ecs.System.
func (a *AI) Update(r *ecs.Registry, _ float64) {
	ecs.Each6[components.AIControlled, components.SinusoidalPattern, components.Position, components.Velocity, components.Renderable, components.Collider](
		r,
		func(_ ecs.Entity, _ *components.AIControlled, pat *components.SinusoidalPattern, p *components.Position, v *components.Velocity, render *components.Renderable, col *components.Collider) {
			topMargin := p.Y
			bottomMargin := render.ScreenSizeY - col.Size.Y - p.Y

			safeAmplitude := math.Min(pat.Amplitude, math.Min(topMargin-10, bottomMargin-10))
			if safeAmplitude > 0 {
				v.Y = safeAmplitude * pat.Frequency * math.Cos(p.X*pat.Frequency+pat.Phase) * math.Abs(v.X)
			} else {
				v.Y = 0
			}
		},
	)
}
