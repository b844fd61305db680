// Package metrics exposes the server's prometheus instrumentation:
// promauto-declared package-level metrics with bounded-cardinality
// labels (no per-player labels) for the simulation tick, session slots,
// and protocol framing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TickDuration is wall-clock time spent in one fixed simulation step.
	TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rtype_tick_duration_seconds",
		Help:    "Time spent in one fixed simulation tick",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.02, 0.05},
	})

	// EntityCount is the number of live entities in the registry.
	EntityCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rtype_entity_count",
		Help: "Current number of live entities",
	})

	// SessionSlotsInUse is the number of occupied player slots (0..4).
	SessionSlotsInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rtype_session_slots_in_use",
		Help: "Current number of occupied player slots",
	})

	// SnapshotsSent counts SNAPSHOT packets broadcast to clients.
	SnapshotsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rtype_snapshots_sent_total",
		Help: "Total SNAPSHOT packets broadcast",
	})

	// SnapshotEntitiesDropped counts entities omitted from a SNAPSHOT
	// because the 255-entity wire cap was exceeded.
	SnapshotEntitiesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rtype_snapshot_entities_dropped_total",
		Help: "Entities omitted from a SNAPSHOT packet due to the wire cap",
	})

	// ProtocolErrors counts malformed/rejected datagrams, labelled by a
	// small bounded reason set (never the raw packet type byte, to keep
	// cardinality bounded against a hostile sender).
	ProtocolErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rtype_protocol_errors_total",
		Help: "Datagrams rejected by the protocol decoder",
	}, []string{"reason"}) // "truncated", "bad_input_payload", "unknown_type"

	// SessionTransitions counts JOIN/TIMEOUT/KILLED slot transitions.
	SessionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rtype_session_transitions_total",
		Help: "Player slot transitions",
	}, []string{"kind"}) // "join", "rejoin", "server_full", "timeout", "killed"

	// EnemiesSpawned counts enemies emitted by the level spawner.
	EnemiesSpawned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rtype_enemies_spawned_total",
		Help: "Total enemies spawned from the level script",
	})
)

// RecordTick observes one simulation tick's wall-clock duration.
func RecordTick(d time.Duration) { TickDuration.Observe(d.Seconds()) }

// UpdateEntityCount sets the live-entity gauge.
func UpdateEntityCount(n int) { EntityCount.Set(float64(n)) }

// UpdateSessionSlots sets the occupied-slots gauge.
func UpdateSessionSlots(n int) { SessionSlotsInUse.Set(float64(n)) }

// RecordSnapshotSent increments the SNAPSHOT counter and, if dropped > 0,
// the dropped-entities counter.
func RecordSnapshotSent(dropped int) {
	SnapshotsSent.Inc()
	if dropped > 0 {
		SnapshotEntitiesDropped.Add(float64(dropped))
	}
}

// RecordProtocolError increments the protocol error counter for reason.
func RecordProtocolError(reason string) { ProtocolErrors.WithLabelValues(reason).Inc() }

// RecordSessionTransition increments the session transition counter for kind.
func RecordSessionTransition(kind string) { SessionTransitions.WithLabelValues(kind).Inc() }

// RecordEnemySpawned increments the enemy spawn counter.
func RecordEnemySpawned() { EnemiesSpawned.Inc() }
