package systems

import "github.com/rtype-server/rtype-server/internal/ecs"

// KillEvent records that Killer's collision damage dropped Victim's
// health to zero this tick. Emitted by Collision, consumed by Score; the
// Death system destroys the victim independently of scoring. Points is
// captured at push time because Victim's components (including
// ScoreValue) may already be gone by the time Score drains the feed.
type KillEvent struct {
	Killer, Victim ecs.Entity
	Points         int
}

// KillFeed is the narrow hand-off between Collision and Score: neither
// system needs to know the other's internals, only this shared queue.
// Not safe for concurrent use; both systems run under the registry's
// single-threaded Update.
type KillFeed struct {
	pending []KillEvent
}

// NewKillFeed returns an empty feed.
func NewKillFeed() *KillFeed { return &KillFeed{} }

// Push records a kill event for the next Score.Update to drain.
func (k *KillFeed) Push(ev KillEvent) { k.pending = append(k.pending, ev) }

// Drain returns and clears all pending events.
func (k *KillFeed) Drain() []KillEvent {
	ev := k.pending
	k.pending = nil
	return ev
}
