package ecs

import "sort"

// Registry owns entities, component pools, systems, and the simulation
// clock. It is the single seam through which gameplay systems observe and
// mutate authoritative state; there is no package-level singleton, so
// every caller threads a *Registry explicitly.
type Registry struct {
	Components *ComponentRegistry

	entities  *EntityManager
	pools     map[ComponentID]anyPool
	available Signature

	systems       []*systemEntry
	nextSystemID  uint32
	deferredKills []Entity
	inEach        int

	clock *Clock
}

type systemEntry struct {
	id       uint32
	system   System
	priority int
	enabled  bool
	active   bool // hasRequiredComponents
}

// NewRegistry returns an empty registry driven by a clock with the given
// fixed step (seconds).
func NewRegistry(fixedDeltaTime float64) *Registry {
	return &Registry{
		Components: NewComponentRegistry(),
		entities:   NewEntityManager(),
		pools:      make(map[ComponentID]anyPool, MaxComponents),
		clock:      NewClock(fixedDeltaTime),
	}
}

// Clock returns the registry's simulation clock.
func (r *Registry) Clock() *Clock { return r.clock }

// Create allocates a new entity.
func (r *Registry) Create() Entity {
	return r.entities.Create()
}

// Destroy removes e from every component pool and recycles its id
// (invariant D). If an each() is currently iterating the pivot pool,
// destruction is deferred to the end of that each() so the pivot's
// cursor is never disturbed mid-iteration.
func (r *Registry) Destroy(e Entity) {
	if r.inEach > 0 {
		r.deferredKills = append(r.deferredKills, e)
		return
	}
	r.destroyNow(e)
	r.updateSystemAvailability()
}

func (r *Registry) destroyNow(e Entity) {
	for id, p := range r.pools {
		if p.contains(e) {
			p.erase(e)
			if p.len() == 0 {
				r.available.Clear(id)
			}
		}
	}
	r.entities.Destroy(e)
}

func (r *Registry) flushDeferred() {
	if len(r.deferredKills) == 0 {
		return
	}
	kills := r.deferredKills
	r.deferredKills = nil
	for _, e := range kills {
		r.destroyNow(e)
	}
	r.updateSystemAvailability()
}

// Alive returns the number of currently live entities.
func (r *Registry) Alive() int { return r.entities.Alive() }

// Reserve preallocates entity free-list capacity.
func (r *Registry) Reserve(capacity int) { r.entities.Reserve(capacity) }

// Clear destroys everything: entities, component pools, and system
// activation state. Systems themselves remain registered (§3: a system is
// destroyed only at registry teardown, never by Clear).
func (r *Registry) Clear() {
	r.pools = make(map[ComponentID]anyPool, MaxComponents)
	r.entities.Clear()
	r.available = Signature{}
	r.deferredKills = nil
	r.updateSystemAvailability()
}

// Available returns the bitset of component kinds with at least one live
// value (invariant C).
func (r *Registry) Available() Signature { return r.available }

func assurePool[V any](r *Registry, id ComponentID) *pool[V] {
	if p, ok := r.pools[id]; ok {
		return p.(*pool[V])
	}
	p := newPool[V]()
	r.pools[id] = p
	return p
}

// Emplace stores v as entity e's component of type T, creating the pool on
// first use. Re-emplacing an existing component replaces its value
// without changing pool membership. Returns a pointer to the stored
// value.
func Emplace[T any](r *Registry, e Entity, v T) *T {
	id := IDOf[T](r.Components)
	p := assurePool[T](r, id)
	wasEmpty := p.len() == 0
	p.insert(e, v)
	if wasEmpty {
		r.available.Set(id)
		r.updateSystemAvailability()
	}
	return p.get(e)
}

// Remove deletes entity e's component of type T, if present.
func Remove[T any](r *Registry, e Entity) {
	id := IDOf[T](r.Components)
	p, ok := r.pools[id]
	if !ok || !p.contains(e) {
		return
	}
	p.erase(e)
	if p.len() == 0 {
		r.available.Clear(id)
		r.updateSystemAvailability()
	}
}

// Has reports whether entity e carries a component of type T.
func Has[T any](r *Registry, e Entity) bool {
	id := IDOf[T](r.Components)
	p, ok := r.pools[id]
	return ok && p.contains(e)
}

// Get returns a pointer to entity e's component of type T. Panics if
// absent; guard with Has when the component is optional.
func Get[T any](r *Registry, e Entity) *T {
	id := IDOf[T](r.Components)
	p := assurePool[T](r, id)
	return p.get(e)
}

// Count returns the number of live components of type T.
func Count[T any](r *Registry) int {
	id := IDOf[T](r.Components)
	p, ok := r.pools[id]
	if !ok {
		return 0
	}
	return p.len()
}

// View returns the raw sparse set backing component type T, for callers
// that need direct dense iteration outside an each() join (e.g. the
// snapshot broadcaster).
func View[T any](r *Registry) *SparseSet[T] {
	id := IDOf[T](r.Components)
	return assurePool[T](r, id).set
}

// AddSystem registers sys at the given priority (ascending; lower runs
// first) and recomputes activation.
func (r *Registry) AddSystem(sys System, priority int) {
	id := r.nextSystemID
	r.nextSystemID++
	r.systems = append(r.systems, &systemEntry{
		id:       id,
		system:   sys,
		priority: priority,
		enabled:  true,
	})
	sort.SliceStable(r.systems, func(i, j int) bool {
		return r.systems[i].priority < r.systems[j].priority
	})
	r.updateSystemAvailability()
}

// SetSystemEnabled toggles a registered system by name.
func (r *Registry) SetSystemEnabled(name string, enabled bool) {
	for _, se := range r.systems {
		if se.system.Name() == name {
			se.enabled = enabled
		}
	}
}

func (r *Registry) updateSystemAvailability() {
	for _, se := range r.systems {
		se.active = se.system.Signature().Subset(r.available)
	}
}

// Update advances the clock by realDt and, for every whole fixed step
// produced, runs every enabled+active system in ascending priority order
// with the fixed step's scaled delta time.
func (r *Registry) Update(realDt float64) int {
	steps := r.clock.Advance(realDt)
	dt := r.clock.StepDeltaTime()
	for i := 0; i < steps; i++ {
		for _, se := range r.systems {
			if se.enabled && se.active {
				se.system.Update(r, dt)
			}
		}
	}
	return steps
}

// System is the interface every gameplay system implements.
type System interface {
	// Name identifies the system for logging and enable/disable lookups.
	Name() string
	// Signature is the set of component kinds this system requires to be
	// active; computed once at construction from the components the
	// system actually joins over.
	Signature() Signature
	// Update runs one fixed step. Only invoked when enabled and the
	// registry's available components are a superset of Signature().
	Update(r *Registry, dt float64)
}

// Base provides the common Name/Signature bookkeeping systems embed,
// mirroring the original's System<Derived> CRTP helper without the
// runtime polymorphism overhead on the hot path.
type Base struct {
	name      string
	signature Signature
}

// NewBase returns a Base with the given name and an empty signature; call
// Require to populate the signature from the registry's component
// registry.
func NewBase(name string) Base {
	return Base{name: name}
}

// Name implements System.
func (b *Base) Name() string { return b.name }

// Signature implements System.
func (b *Base) Signature() Signature { return b.signature }

// Require records that this system needs the given component ids to be
// available.
func (b *Base) Require(ids ...ComponentID) {
	for _, id := range ids {
		b.signature.Set(id)
	}
}
