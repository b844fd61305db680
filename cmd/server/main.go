package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rtype-server/rtype-server/internal/adminhttp"
	"github.com/rtype-server/rtype-server/internal/config"
	"github.com/rtype-server/rtype-server/internal/ecs"
	"github.com/rtype-server/rtype-server/internal/level"
	"github.com/rtype-server/rtype-server/internal/metrics"
	"github.com/rtype-server/rtype-server/internal/protocol"
	"github.com/rtype-server/rtype-server/internal/session"
	"github.com/rtype-server/rtype-server/internal/snapshot"
	"github.com/rtype-server/rtype-server/internal/spectator"
	"github.com/rtype-server/rtype-server/internal/systems"
)

// fixedTickRate is the simulation's fixed step: 60Hz.
const fixedTickRate = 1.0 / 60.0

// defaultLevelPath is where the enemy spawn script is read from; a
// missing or malformed file is logged and the server runs with an empty
// spawn list rather than refusing to start.
const defaultLevelPath = "level.json"

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Println(err)
		config.Usage(os.Stderr)
		os.Exit(config.ExitUsageError)
	}

	log.Printf("rtype-server starting: mode=%s listen=%s:%d", cfg.Mode, cfg.Hostname, cfg.Port)

	listenAddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(cfg.Hostname, strconv.Itoa(cfg.Port)))
	if err != nil {
		log.Fatalf("could not resolve %s:%d: %v", cfg.Hostname, cfg.Port, err)
	}
	conn, err := net.ListenUDP("udp", listenAddr)
	if err != nil {
		log.Fatalf("udp listen failed: %v", err)
	}
	defer conn.Close()

	send := func(addr *net.UDPAddr, datagram []byte) {
		if _, err := conn.WriteToUDP(datagram, addr); err != nil {
			log.Printf("udp write failed: %v", err)
		}
	}

	reg := ecs.NewRegistry(fixedTickRate)
	guard := session.NewRegistryGuard(reg)
	kills := systems.NewKillFeed()
	mgr := session.NewManager(guard, cfg.Mode, cfg.SessionTimeout, send)

	buildSystems(reg, cfg.Mode, kills, mgr.OnPlayerDeath)

	spawner := loadLevel(defaultLevelPath)

	throttle := session.NewLogThrottle(cfg.LogThrottle)
	defer throttle.Stop()

	stopUDP := make(chan struct{})
	go receiveLoop(conn, mgr, throttle, stopUDP)

	hub := spectator.NewHub()
	stopHub := make(chan struct{})
	go hub.Run(stopHub)

	broadcaster := snapshot.NewBroadcaster(guard, mgr.Broadcast)
	stopBroadcast := make(chan struct{})
	go runBroadcastLoop(broadcaster, mgr, hub, stopBroadcast)

	adminServer := &http.Server{
		Addr: cfg.AdminListenAddr,
		Handler: adminhttp.NewRouter(adminhttp.Config{
			Stats:     mgr,
			Spectator: hub,
		}),
	}
	go func() {
		log.Printf("admin http on http://%s", cfg.AdminListenAddr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("admin http server error: %v", err)
		}
	}()

	stopSim := make(chan struct{})
	go runSimulationLoop(guard, mgr, spawner, stopSim)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	close(stopSim)
	close(stopBroadcast)
	close(stopHub)
	close(stopUDP)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	adminServer.Shutdown(ctx)

	log.Println("goodbye")
}

// buildSystems registers every system in its normative execution order,
// with the supplemental Gravity/Score/Lifetime systems slotted in at
// their documented judgment-call positions (see DESIGN.md).
func buildSystems(reg *ecs.Registry, mode session.Mode, kills *systems.KillFeed, onPlayerDeath func(e ecs.Entity)) {
	var input *systems.Input
	if mode == session.ModeFlap {
		input = systems.NewInputFlap(reg.Components)
	} else {
		input = systems.NewInputRType(reg.Components)
	}

	reg.AddSystem(input, 10)
	reg.AddSystem(systems.NewGravity(reg.Components), 15)
	reg.AddSystem(systems.NewAI(reg.Components), 20)
	reg.AddSystem(systems.NewMotion(reg.Components), 30)
	reg.AddSystem(systems.NewDomain(reg.Components), 40)
	reg.AddSystem(systems.NewCollision(reg.Components, kills), 50)
	reg.AddSystem(systems.NewScore(reg.Components, kills), 55)
	reg.AddSystem(systems.NewDeath(reg.Components, onPlayerDeath), 60)
	reg.AddSystem(systems.NewLifetime(reg.Components), 70)
	reg.AddSystem(systems.NewAnimation(reg.Components), 80)
}

func loadLevel(path string) *level.Spawner {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("level: %q not found, starting with an empty spawn list (%v)", path, err)
		return level.NewSpawner(nil)
	}
	entries, err := level.Parse(data)
	if err != nil {
		log.Printf("level: failed to parse %q, starting with an empty spawn list (%v)", path, err)
		return level.NewSpawner(nil)
	}
	log.Printf("level: loaded %d spawn entries from %q", len(entries), path)
	return level.NewSpawner(entries)
}

// runSimulationLoop drives the fixed-step registry update, the idle-slot
// timeout sweep, and the level spawn cursor. Queued player deaths are
// processed strictly after each registry Update call returns, never
// while the registry lock is held (see session.Manager.ProcessDeaths).
func runSimulationLoop(guard *session.RegistryGuard, mgr *session.Manager, spawner *level.Spawner, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Duration(fixedTickRate * float64(time.Second)))
	defer ticker.Stop()
	timeoutCheck := time.NewTicker(time.Second)
	defer timeoutCheck.Stop()

	var totalTime float64

	for {
		select {
		case <-stop:
			return
		case <-timeoutCheck.C:
			mgr.CheckTimeouts(time.Now())
		case <-ticker.C:
			start := time.Now()

			guard.With(func(r *ecs.Registry) {
				r.Update(fixedTickRate)
			})
			mgr.ProcessDeaths()

			totalTime += fixedTickRate
			spawner.Advance(totalTime, func(d level.EnemySpawnData) {
				guard.With(func(r *ecs.Registry) {
					level.CreateEnemyFromData(r, d)
				})
				metrics.RecordEnemySpawned()
			})

			metrics.RecordTick(time.Since(start))
			guard.With(func(r *ecs.Registry) {
				metrics.UpdateEntityCount(r.Alive())
			})
			metrics.UpdateSessionSlots(mgr.ActivePlayers())
		}
	}
}

// runBroadcastLoop samples the registry at 20Hz, broadcasts a SNAPSHOT to
// every joined client, and mirrors the same sample to any connected
// spectator sockets.
func runBroadcastLoop(b *snapshot.Broadcaster, mgr *session.Manager, hub *spectator.Hub, stop <-chan struct{}) {
	ticker := time.NewTicker(snapshot.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			entities, dropped := b.Sample()
			metrics.RecordSnapshotSent(dropped)

			payload, err := protocol.EncodeSnapshot(entities)
			if err != nil {
				log.Printf("snapshot encode failed: %v", err)
				continue
			}
			mgr.Broadcast(protocol.Snapshot, payload)
			hub.PublishSnapshot(entities)
		}
	}
}

func receiveLoop(conn *net.UDPConn, mgr *session.Manager, throttle *session.LogThrottle, stop <-chan struct{}) {
	buf := make([]byte, 2048)
	for {
		select {
		case <-stop:
			return
		default:
		}

		conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			select {
			case <-stop:
				return
			default:
			}
			continue
		}

		dispatch(mgr, addr, append([]byte(nil), buf[:n]...), throttle)
	}
}

func dispatch(mgr *session.Manager, addr *net.UDPAddr, datagram []byte, throttle *session.LogThrottle) {
	h, payload, err := protocol.DecodeHeader(datagram)
	if err != nil {
		metrics.RecordProtocolError("truncated")
		if throttle.Allow(addr.String()) {
			log.Printf("protocol: dropping truncated datagram from %s", addr)
		}
		return
	}

	switch h.Type {
	case protocol.Join:
		mgr.HandleJoin(addr, protocol.DecodeJoin(payload))
	case protocol.Input:
		in, err := protocol.DecodeInput(payload)
		if err != nil {
			metrics.RecordProtocolError("bad_input_payload")
			if throttle.Allow(addr.String()) {
				log.Printf("protocol: bad INPUT payload from %s: %v", addr, err)
			}
			return
		}
		mgr.HandleInput(addr, in)
	case protocol.Ping:
		mgr.HandlePing(addr, h)
	default:
		metrics.RecordProtocolError("unknown_type")
		if throttle.Allow(addr.String()) {
			log.Printf("protocol: unknown packet type 0x%02x from %s", h.Type, addr)
		}
	}
}
