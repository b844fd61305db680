package session

import (
	"sync"

	"github.com/rtype-server/rtype-server/internal/ecs"
)

// RegistryGuard is the single mutex serialising all registry access: the
// simulation thread's Update() and every packet handler that emplaces,
// gets, or destroys take this same lock. Manager holds its own slot
// mutex separately and always acquires it before calling into a
// RegistryGuard, per the documented lock order (see DESIGN.md).
type RegistryGuard struct {
	mu  sync.Mutex
	Reg *ecs.Registry
}

// NewRegistryGuard wraps r.
func NewRegistryGuard(r *ecs.Registry) *RegistryGuard {
	return &RegistryGuard{Reg: r}
}

// With runs f with the registry mutex held.
func (g *RegistryGuard) With(f func(r *ecs.Registry)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f(g.Reg)
}
