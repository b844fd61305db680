// Package snapshot runs the 20Hz state broadcaster: it samples every
// networked entity's position and pushes a SNAPSHOT packet to each
// joined client (see DESIGN.md for the broadcast-loop grounding).
package snapshot

import (
	"log"
	"time"

	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
	"github.com/rtype-server/rtype-server/internal/protocol"
)

// Interval is the fixed broadcast cadence: 20Hz.
const Interval = 50 * time.Millisecond

// maxEntities mirrors protocol.maxSnapshotEntities; entities beyond this
// count are dropped from the packet and logged, never silently truncated
// without a trace.
const maxEntities = 255

// Broadcaster periodically samples the registry and broadcasts SNAPSHOT
// packets through a session manager.
type Broadcaster struct {
	guard     registryReader
	broadcast func(t protocol.PacketType, payload []byte)
}

// registryReader is the subset of *session.RegistryGuard a Broadcaster
// needs; declared locally so this package doesn't import session (the
// dependency runs the other way: cmd/server wires both together).
type registryReader interface {
	With(func(r *ecs.Registry))
}

// NewBroadcaster builds a Broadcaster reading through guard and sending
// via broadcast (typically session.Manager.Broadcast).
func NewBroadcaster(guard registryReader, broadcast func(t protocol.PacketType, payload []byte)) *Broadcaster {
	return &Broadcaster{guard: guard, broadcast: broadcast}
}

// Sample reads every Position+Renderable entity and builds the
// SNAPSHOT payload for the current tick.
func (b *Broadcaster) Sample() ([]protocol.SnapshotEntity, int) {
	var entities []protocol.SnapshotEntity
	dropped := 0

	b.guard.With(func(r *ecs.Registry) {
		ecs.Each2[components.Position, components.Renderable](r, func(e ecs.Entity, p *components.Position, _ *components.Renderable) {
			if len(entities) >= maxEntities {
				dropped++
				return
			}
			entities = append(entities, protocol.SnapshotEntity{
				ID: uint8(e),
				X:  float32(p.X),
				Y:  float32(p.Y),
			})
		})
	})

	return entities, dropped
}

// Tick samples the registry once and broadcasts the resulting SNAPSHOT.
func (b *Broadcaster) Tick() {
	entities, dropped := b.Sample()
	if dropped > 0 {
		log.Printf("[snapshot] dropped %d entities beyond the %d-entity cap", dropped, maxEntities)
	}

	payload, err := protocol.EncodeSnapshot(entities)
	if err != nil {
		log.Printf("[snapshot] encode failed: %v", err)
		return
	}
	b.broadcast(protocol.Snapshot, payload)
}

// Run broadcasts a SNAPSHOT every Interval until stop is closed.
func (b *Broadcaster) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(Interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			b.Tick()
		}
	}
}
