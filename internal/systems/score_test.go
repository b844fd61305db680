package systems

import (
	"testing"

	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

func TestScoreCreditsKillerFromKillFeed(t *testing.T) {
	r := newTestRegistry()
	feed := NewKillFeed()
	s := NewScore(r.Components, feed)
	r.AddSystem(s, 0)

	killer := r.Create()
	ecs.Emplace(r, killer, components.Score{})

	feed.Push(KillEvent{Killer: killer, Victim: ecs.Entity(999), Points: 50})

	s.Update(r, 1.0/60.0)

	if ecs.Get[components.Score](r, killer).Total != 50 {
		t.Fatalf("expected killer score=50, got %d", ecs.Get[components.Score](r, killer).Total)
	}
}

func TestScoreIgnoresKillerWithoutScoreComponent(t *testing.T) {
	r := newTestRegistry()
	feed := NewKillFeed()
	s := NewScore(r.Components, feed)
	r.AddSystem(s, 0)

	killer := r.Create() // no Score component (e.g. an enemy killing another enemy)
	feed.Push(KillEvent{Killer: killer, Victim: ecs.Entity(1), Points: 10})

	s.Update(r, 1.0/60.0) // must not panic
}

func TestScoreWithNilFeedIsNoop(t *testing.T) {
	r := newTestRegistry()
	s := NewScore(r.Components, nil)
	r.AddSystem(s, 0)

	s.Update(r, 1.0/60.0) // nil feed: no-op, must not panic
}
