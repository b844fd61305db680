package systems

import (
	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

// Score credits a killer's Score component with the victim's ScoreValue
// whenever Collision reports a kill. It drains the shared KillFeed each
// tick rather than joining over components directly, since crediting is
// driven by events, not standing state.
type Score struct {
	ecs.Base
	kills *KillFeed
}

// NewScore builds the Score system against the given feed, shared with
// the Collision system that populates it.
func NewScore(reg *ecs.ComponentRegistry, kills *KillFeed) *Score {
	s := &Score{Base: ecs.NewBase("score"), kills: kills}
	s.Require(ecs.IDOf[components.Score](reg))
	return s
}

// Update implements ecs.System.
func (s *Score) Update(r *ecs.Registry, _ float64) {
	if s.kills == nil {
		return
	}
	for _, ev := range s.kills.Drain() {
		if ev.Points == 0 || !ecs.Has[components.Score](r, ev.Killer) {
			continue
		}
		ecs.Get[components.Score](r, ev.Killer).Total += ev.Points
	}
}
