package systems

import (
	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
	"github.com/rtype-server/rtype-server/internal/spatial"
)

// Collision runs the uniform-grid broad phase followed by an AABB narrow
// phase, applying mutual damage on overlap. It owns a persistent
// *spatial.Grid, cleared and rebuilt every tick rather than reallocated.
type Collision struct {
	ecs.Base
	grid *spatial.Grid
	kills *KillFeed
}

// NewCollision builds the Collision system. kills may be nil if the
// caller doesn't wire a Score system.
func NewCollision(reg *ecs.ComponentRegistry, kills *KillFeed) *Collision {
	c := &Collision{Base: ecs.NewBase("collision"), grid: spatial.NewGrid(), kills: kills}
	c.Require(
		ecs.IDOf[components.Position](reg),
		ecs.IDOf[components.Renderable](reg),
		ecs.IDOf[components.Collider](reg),
		ecs.IDOf[components.Damage](reg),
		ecs.IDOf[components.Health](reg),
	)
	return c
}

func aabbOverlap(ax0, ay0, ax1, ay1, bx0, by0, bx1, by1 float64) bool {
	return ax0 < bx1 && ax1 > bx0 && ay0 < by1 && ay1 > by0
}

// Update implements ecs.System.
func (c *Collision) Update(r *ecs.Registry, _ float64) {
	c.grid.Clear()

	ecs.Each5[components.Position, components.Renderable, components.Collider, components.Damage, components.Health](
		r,
		func(e ecs.Entity, p *components.Position, _ *components.Renderable, col *components.Collider, _ *components.Damage, _ *components.Health) {
			originX := p.X + col.OriginOffset.X
			originY := p.Y + col.OriginOffset.Y
			if originX < 0 || originY < 0 {
				return
			}
			c.grid.InsertAABB(uint32(e), originX, originY, originX+col.Size.X, originY+col.Size.Y)
		},
	)

	cols, rows := c.grid.Dimensions()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := append([]uint32(nil), c.grid.Cell(col, row)...)
			for len(cell) > 1 {
				e0 := cell[0]
				for _, e1 := range cell[1:] {
					c.tryCollide(r, ecs.Entity(e0), ecs.Entity(e1))
				}
				for _, nb := range c.grid.ForwardNeighbors(col, row) {
					for _, e1 := range c.grid.Cell(nb[0], nb[1]) {
						c.tryCollide(r, ecs.Entity(e0), ecs.Entity(e1))
					}
				}
				cell = cell[1:]
			}
		}
	}
}

func (c *Collision) tryCollide(r *ecs.Registry, e1, e2 ecs.Entity) {
	if e1 == e2 {
		return
	}
	if !ecs.Has[components.Collider](r, e1) || !ecs.Has[components.Collider](r, e2) {
		return
	}
	col1 := ecs.Get[components.Collider](r, e1)
	col2 := ecs.Get[components.Collider](r, e2)
	if col1.SelfMask&col2.SelfMask == 0 {
		return
	}

	p1 := ecs.Get[components.Position](r, e1)
	p2 := ecs.Get[components.Position](r, e2)

	ax0, ay0 := p1.X+col1.OriginOffset.X, p1.Y+col1.OriginOffset.Y
	bx0, by0 := p2.X+col2.OriginOffset.X, p2.Y+col2.OriginOffset.Y
	if !aabbOverlap(ax0, ay0, ax0+col1.Size.X, ay0+col1.Size.Y, bx0, by0, bx0+col2.Size.X, by0+col2.Size.Y) {
		return
	}

	h1 := ecs.Get[components.Health](r, e1)
	h2 := ecs.Get[components.Health](r, e2)
	d1 := ecs.Get[components.Damage](r, e1)
	d2 := ecs.Get[components.Damage](r, e2)

	// An already-dead side neither absorbs nor deals damage this tick.
	if h1.Current <= 0 || h2.Current <= 0 {
		return
	}

	if h1.Current > 0 {
		h1.Current -= d2.Value
		if h1.Current < 0 {
			h1.Current = 0
		}
		if h1.Current == 0 && c.kills != nil {
			c.kills.Push(KillEvent{Killer: e2, Victim: e1, Points: scoreValueOf(r, e1)})
		}
	}
	if h2.Current > 0 {
		h2.Current -= d1.Value
		if h2.Current < 0 {
			h2.Current = 0
		}
		if h2.Current == 0 && c.kills != nil {
			c.kills.Push(KillEvent{Killer: e1, Victim: e2, Points: scoreValueOf(r, e2)})
		}
	}
}

func scoreValueOf(r *ecs.Registry, e ecs.Entity) int {
	if !ecs.Has[components.ScoreValue](r, e) {
		return 0
	}
	return ecs.Get[components.ScoreValue](r, e).Points
}
