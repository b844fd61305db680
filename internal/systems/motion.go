package systems

import (
	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

// Motion integrates velocity from acceleration, clamps position to the
// screen rectangle, and applies friction, in that fixed order. Friction
// running after the position clamp means a one-tick overshoot can never
// carry the entity out of bounds.
type Motion struct {
	ecs.Base
}

// NewMotion builds the Motion system and computes its signature from the
// component registry.
func NewMotion(reg *ecs.ComponentRegistry) *Motion {
	m := &Motion{Base: ecs.NewBase("motion")}
	m.Require(
		ecs.IDOf[components.Position](reg),
		ecs.IDOf[components.Velocity](reg),
		ecs.IDOf[components.Acceleration](reg),
		ecs.IDOf[components.Renderable](reg),
		ecs.IDOf[components.Collider](reg),
	)
	return m
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func applyFriction(v *float64, dt float64) {
	delta := frictionPerSecond * dt
	switch {
	case *v > 0:
		*v -= delta
		if *v < 0 {
			*v = 0
		}
	case *v < 0:
		*v += delta
		if *v > 0 {
			*v = 0
		}
	}
}

// Update implements ecs.System.
func (m *Motion) Update(r *ecs.Registry, dt float64) {
	ecs.Each5[components.Position, components.Velocity, components.Acceleration, components.Renderable, components.Collider](
		r,
		func(_ ecs.Entity, pos *components.Position, vel *components.Velocity, acc *components.Acceleration, render *components.Renderable, col *components.Collider) {
			vel.X = clamp(vel.X+acc.X*dt, -vel.SpeedMax, vel.SpeedMax)
			vel.Y = clamp(vel.Y+acc.Y*dt, -vel.SpeedMax, vel.SpeedMax)

			pos.X = clamp(pos.X+vel.X*dt, 0, render.ScreenSizeX-col.Size.X)
			pos.Y = clamp(pos.Y+vel.Y*dt, 0, render.ScreenSizeY-col.Size.Y)

			if acc.Decelerate {
				applyFriction(&vel.X, dt)
				applyFriction(&vel.Y, dt)
			}
		},
	)
}
