// Package adminhttp serves the server's loopback-only operational
// surface: health, metrics, and pprof, on a chi + cors middleware stack
// (see DESIGN.md for the routes this trims relative to its origin).
package adminhttp

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsProvider reports the live counts the /api/stats endpoint
// surfaces.
type StatsProvider interface {
	ActivePlayers() int
}

// Config configures the admin router.
type Config struct {
	// Stats backs /api/stats (which reports 0 when Stats is nil).
	// /healthz does not consult it.
	Stats StatsProvider

	// Spectator, if non-nil, is mounted at /ws (internal/spectator.Hub).
	Spectator http.Handler

	// DisableLogging turns off the request logger middleware (tests).
	DisableLogging bool
}

// NewRouter builds the admin HTTP router. Callers must bind it to a
// loopback address only (see cmd/server/main.go): this exposes pprof.
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET"},
	}))

	r.Get("/healthz", handleHealthz(cfg.Stats))
	r.Handle("/metrics", promhttp.Handler())

	r.HandleFunc("/debug/pprof/", pprof.Index)
	r.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	r.HandleFunc("/debug/pprof/profile", pprof.Profile)
	r.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	r.HandleFunc("/debug/pprof/trace", pprof.Trace)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", handleStats(cfg.Stats))
	})

	if cfg.Spectator != nil {
		r.Handle("/ws", cfg.Spectator)
	}

	return r
}

func handleHealthz(stats StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}

func handleStats(stats StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := 0
		if stats != nil {
			active = stats.ActivePlayers()
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"activePlayers": active})
	}
}
