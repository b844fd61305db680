package systems

import (
	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

// Death destroys every zero-health entity. An entity that is also
// InputControlled gets its OnPlayerDeath callback fired first, so the
// session manager can record which player's entity died before the id
// is recycled (session.Manager queues it and sends KILLED later).
type Death struct {
	ecs.Base
	OnPlayerDeath func(e ecs.Entity)
}

// NewDeath builds the Death system. onPlayerDeath may be nil.
func NewDeath(reg *ecs.ComponentRegistry, onPlayerDeath func(e ecs.Entity)) *Death {
	d := &Death{Base: ecs.NewBase("death"), OnPlayerDeath: onPlayerDeath}
	d.Require(ecs.IDOf[components.Health](reg))
	return d
}

// Update implements ecs.System.
func (d *Death) Update(r *ecs.Registry, _ float64) {
	ecs.Each1[components.Health](r, func(e ecs.Entity, h *components.Health) {
		if h.Current > 0 {
			return
		}
		if ecs.Has[components.InputControlled](r, e) && d.OnPlayerDeath != nil {
			d.OnPlayerDeath(e)
		}
		r.Destroy(e)
	})
}
