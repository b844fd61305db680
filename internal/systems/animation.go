package systems

import (
	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

// Animation advances Renderable.CurrentFrame for auto-animating sprites,
// driven purely by server time so every connected client renders the
// same frame.
type Animation struct {
	ecs.Base
}

// NewAnimation builds the Animation system.
func NewAnimation(reg *ecs.ComponentRegistry) *Animation {
	a := &Animation{Base: ecs.NewBase("animation")}
	a.Require(ecs.IDOf[components.Renderable](reg))
	return a
}

// Update implements ecs.System.
func (a *Animation) Update(r *ecs.Registry, dt float64) {
	ecs.Each1[components.Renderable](r, func(_ ecs.Entity, render *components.Renderable) {
		if !render.AutoAnimate || len(render.Frames) == 0 || render.FrameDurationMs <= 0 {
			return
		}
		render.AddElapsedMs(int(dt * 1000))
		for render.ElapsedMs() >= render.FrameDurationMs {
			render.AddElapsedMs(-render.FrameDurationMs)
			render.CurrentFrame = (render.CurrentFrame + 1) % len(render.Frames)
		}
	})
}
