package systems

import (
	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

// Domain destroys any entity that has left its bounding rectangle. It
// must run before Collision so off-screen projectiles never reach the
// broad-phase grid.
type Domain struct {
	ecs.Base
}

// NewDomain builds the Domain system.
func NewDomain(reg *ecs.ComponentRegistry) *Domain {
	d := &Domain{Base: ecs.NewBase("domain")}
	d.Require(
		ecs.IDOf[components.Position](reg),
		ecs.IDOf[components.Domain](reg),
	)
	return d
}

// Update implements ecs.System.
func (d *Domain) Update(r *ecs.Registry, _ float64) {
	ecs.Each2[components.Position, components.Domain](r, func(e ecs.Entity, p *components.Position, dom *components.Domain) {
		if p.X < dom.AX || p.X > dom.BX || p.Y < dom.AY || p.Y > dom.BY {
			r.Destroy(e)
		}
	})
}
