package systems

import (
	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

// Lifetime counts down components.Lifetime.Time and destroys the entity
// once it expires. This is a backstop for entities that should not
// persist forever regardless of their Domain rectangle (e.g. a
// projectile that stalls against a wall inside bounds).
type Lifetime struct {
	ecs.Base
}

// NewLifetime builds the Lifetime system.
func NewLifetime(reg *ecs.ComponentRegistry) *Lifetime {
	l := &Lifetime{Base: ecs.NewBase("lifetime")}
	l.Require(ecs.IDOf[components.Lifetime](reg))
	return l
}

// Update implements ecs.System.
func (l *Lifetime) Update(r *ecs.Registry, dt float64) {
	ecs.Each1[components.Lifetime](r, func(e ecs.Entity, lt *components.Lifetime) {
		lt.Time -= dt
		if lt.Time <= 0 {
			r.Destroy(e)
		}
	})
}
