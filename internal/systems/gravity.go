package systems

import (
	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

// Gravity adds a constant downward force to Acceleration every tick, for
// the flap game mode only (side-scroller entities never carry a Gravity
// component). Runs after Input (so it isn't zeroed by Input's reset) and
// before Motion (so it integrates the same tick it's applied).
type Gravity struct {
	ecs.Base
}

// NewGravity builds the Gravity system.
func NewGravity(reg *ecs.ComponentRegistry) *Gravity {
	g := &Gravity{Base: ecs.NewBase("gravity")}
	g.Require(
		ecs.IDOf[components.Gravity](reg),
		ecs.IDOf[components.Acceleration](reg),
	)
	return g
}

// Update implements ecs.System.
func (g *Gravity) Update(r *ecs.Registry, _ float64) {
	ecs.Each2[components.Gravity, components.Acceleration](r, func(_ ecs.Entity, grav *components.Gravity, acc *components.Acceleration) {
		acc.Y += grav.Force
	})
}
