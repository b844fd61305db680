// Package session implements the four-slot player table and the JOIN /
// INPUT / timeout / KILLED transitions.
package session

import (
	"log"
	"net"
	"sync"
	"time"

	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
	"github.com/rtype-server/rtype-server/internal/metrics"
	"github.com/rtype-server/rtype-server/internal/protocol"
)

// MaxSlots is the number of concurrent players.
const MaxSlots = 4

// DefaultTimeout is the recommended idle timeout before a slot is
// reclaimed.
const DefaultTimeout = 5 * time.Second

// Slot is one player's session state.
type Slot struct {
	InUse    bool
	Endpoint *net.UDPAddr
	Username string
	LastSeen time.Time
	Entity   ecs.Entity
}

// Sender delivers a fully-framed datagram to a single client endpoint.
// Implemented by the UDP transport; kept as an interface so Manager is
// testable without a real socket.
type Sender func(addr *net.UDPAddr, datagram []byte)

// Manager owns the slot table. Its own mutex is always acquired before
// any RegistryGuard lock it touches (see DESIGN.md for the lock order).
type Manager struct {
	mu    sync.Mutex
	slots [MaxSlots]Slot

	guard   *RegistryGuard
	mode    Mode
	timeout time.Duration
	send    Sender

	packetIDs uint16

	deathsMu sync.Mutex
	deaths   []ecs.Entity
}

// NewManager builds a session manager bound to guard and mode, sending
// outgoing packets through send.
func NewManager(guard *RegistryGuard, mode Mode, timeout time.Duration, send Sender) *Manager {
	return &Manager{guard: guard, mode: mode, timeout: timeout, send: send}
}

func endpointKey(a *net.UDPAddr) string { return a.String() }

func (m *Manager) nextPacketID() uint16 {
	m.packetIDs++
	return m.packetIDs
}

func serverTimestamp() uint32 { return uint32(time.Now().UnixMilli()) }

func (m *Manager) sendTo(addr *net.UDPAddr, t protocol.PacketType, payload []byte) {
	h := protocol.Header{Type: t, PacketID: m.nextPacketID(), Timestamp: serverTimestamp()}
	m.send(addr, protocol.Encode(h, payload))
}

// slotByEndpoint returns the index of the slot bound to addr, or -1.
// Caller must hold m.mu.
func (m *Manager) slotByEndpoint(addr *net.UDPAddr) int {
	key := endpointKey(addr)
	for i := range m.slots {
		if m.slots[i].InUse && endpointKey(m.slots[i].Endpoint) == key {
			return i
		}
	}
	return -1
}

func (m *Manager) activePlayers() int {
	n := 0
	for i := range m.slots {
		if m.slots[i].InUse {
			n++
		}
	}
	return n
}

// ActivePlayers reports the current occupancy, 0..4.
func (m *Manager) ActivePlayers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activePlayers()
}

// HandleJoin processes a JOIN packet.
func (m *Manager) HandleJoin(addr *net.UDPAddr, username string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.slotByEndpoint(addr); i >= 0 {
		metrics.RecordSessionTransition("rejoin")
		m.sendTo(addr, protocol.PlayerIDAssign, protocol.EncodePlayerIDAssign(uint8(i)))
		return
	}

	if m.activePlayers() >= MaxSlots {
		metrics.RecordSessionTransition("server_full")
		m.sendTo(addr, protocol.PlayerIDAssign, protocol.EncodePlayerIDAssign(protocol.ServerFull))
		return
	}

	slotID := -1
	for i := range m.slots {
		if !m.slots[i].InUse {
			slotID = i
			break
		}
	}

	var entity ecs.Entity
	m.guard.With(func(r *ecs.Registry) {
		entity = createPlayerEntity(r, m.mode, uint8(slotID))
	})

	m.slots[slotID] = Slot{
		InUse:    true,
		Endpoint: addr,
		Username: username,
		LastSeen: time.Now(),
		Entity:   entity,
	}

	m.sendTo(addr, protocol.PlayerIDAssign, protocol.EncodePlayerIDAssign(uint8(slotID)))
	metrics.RecordSessionTransition("join")
	log.Printf("[session] slot %d joined by %q from %s", slotID, username, addr)
}

// HandleInput processes an INPUT packet. A mismatched endpoint/playerId
// pair is logged and discarded.
func (m *Manager) HandleInput(addr *net.UDPAddr, in protocol.InputPayload) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.slotByEndpoint(addr)
	if i < 0 || uint8(i) != in.PlayerID {
		log.Printf("[session] discarding INPUT: endpoint %s does not own playerId %d", addr, in.PlayerID)
		return
	}

	slot := &m.slots[i]
	slot.LastSeen = time.Now()

	key := components.InputKey(in.KeyCode)
	m.guard.With(func(r *ecs.Registry) {
		if !ecs.Has[components.InputControlled](r, slot.Entity) {
			return
		}
		ic := ecs.Get[components.InputControlled](r, slot.Entity)
		if in.Action == protocol.ActionPressed {
			ic.PressKey(key)
		} else {
			ic.ReleaseKey(key)
		}
	})
}

// HandlePing replies with PING_RESPONSE, echoing the request's
// packetId/timestamp in the response header.
func (m *Manager) HandlePing(addr *net.UDPAddr, req protocol.Header) {
	h := protocol.Header{Type: protocol.PingResponse, PacketID: req.PacketID, Timestamp: req.Timestamp}
	m.send(addr, protocol.Encode(h, protocol.EncodePingResponse()))
}

// CheckTimeouts reclaims any slot idle for longer than m.timeout,
// broadcasting TIMEOUT and destroying its entity.
func (m *Manager) CheckTimeouts(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.slots {
		slot := &m.slots[i]
		if !slot.InUse || now.Sub(slot.LastSeen) <= m.timeout {
			continue
		}

		username := slot.Username
		entity := slot.Entity
		addr := slot.Endpoint

		m.guard.With(func(r *ecs.Registry) {
			r.Destroy(entity)
		})
		*slot = Slot{}

		m.broadcastLocked(protocol.Timeout, protocol.EncodeTimeout(username))
		metrics.RecordSessionTransition("timeout")
		log.Printf("[session] slot %d (%q, %s) timed out", i, username, addr)
	}
}

// OnPlayerDeath is wired into the Death system (systems.Death.OnPlayerDeath).
// It fires synchronously while the simulation loop still holds the
// RegistryGuard, so it only enqueues the entity; it must never acquire
// m.mu itself, or it would invert the documented slot-then-registry lock
// order into registry-then-slot and risk deadlock. ProcessDeaths, called
// by the simulation loop once Update() returns and the registry lock is
// released, does the actual slot bookkeeping.
func (m *Manager) OnPlayerDeath(e ecs.Entity) {
	m.deathsMu.Lock()
	m.deaths = append(m.deaths, e)
	m.deathsMu.Unlock()
}

// ProcessDeaths drains queued player deaths, broadcasting KILLED and
// freeing each slot. Must be called outside any RegistryGuard critical
// section.
func (m *Manager) ProcessDeaths() {
	m.deathsMu.Lock()
	pending := m.deaths
	m.deaths = nil
	m.deathsMu.Unlock()

	if len(pending) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range pending {
		for i := range m.slots {
			if m.slots[i].InUse && m.slots[i].Entity == e {
				m.broadcastLocked(protocol.Killed, protocol.EncodeKilled(uint8(i)))
				m.slots[i] = Slot{}
				metrics.RecordSessionTransition("killed")
				break
			}
		}
	}
}

// Broadcast sends payload to every occupied slot's endpoint.
func (m *Manager) Broadcast(t protocol.PacketType, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcastLocked(t, payload)
}

func (m *Manager) broadcastLocked(t protocol.PacketType, payload []byte) {
	for i := range m.slots {
		if m.slots[i].InUse {
			m.sendTo(m.slots[i].Endpoint, t, payload)
		}
	}
}

// Snapshot returns a copy of the current slot table for the snapshot
// broadcaster to iterate without holding Manager's lock.
func (m *Manager) Snapshot() [MaxSlots]Slot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots
}
