package ecs

// each<Components...> join semantics: invoke f exactly once per entity
// present in every listed pool, in the iteration order of the smallest
// pool (the "pivot"). Picking the smallest pool as pivot is a mandatory
// optimisation and is observable as iteration order when pool sizes
// differ.
//
// Reentrancy strategy: the pivot's entity list is snapshotted before the
// callback runs, and any Destroy() called from within f is deferred until
// the top-level each() returns (see Registry.inEach / flushDeferred). This
// guarantees the pivot's cursor is never invalidated by structural
// mutation during iteration.
//
// Joining against a component kind with no pool at all is equivalent to
// joining against an empty pool: the callback is simply never invoked.

func snapshotPivot(sizes []int) int {
	pivot := 0
	best := sizes[0]
	for i := 1; i < len(sizes); i++ {
		if sizes[i] < best {
			best = sizes[i]
			pivot = i
		}
	}
	return pivot
}

func (r *Registry) enterEach() { r.inEach++ }

func (r *Registry) exitEach() {
	r.inEach--
	if r.inEach == 0 {
		r.flushDeferred()
	}
}

// Each2 joins two component kinds.
func Each2[A, B any](r *Registry, f func(e Entity, a *A, b *B)) {
	idA, idB := IDOf[A](r.Components), IDOf[B](r.Components)
	pa, pb := assurePool[A](r, idA), assurePool[B](r, idB)

	pivot := snapshotPivot([]int{pa.len(), pb.len()})
	var entities []Entity
	switch pivot {
	case 0:
		entities = append([]Entity(nil), pa.set.Dense()...)
	case 1:
		entities = append([]Entity(nil), pb.set.Dense()...)
	}

	r.enterEach()
	defer r.exitEach()
	for _, e := range entities {
		if pa.contains(e) && pb.contains(e) {
			f(e, pa.get(e), pb.get(e))
		}
	}
}

// Each3 joins three component kinds.
func Each3[A, B, C any](r *Registry, f func(e Entity, a *A, b *B, c *C)) {
	idA, idB, idC := IDOf[A](r.Components), IDOf[B](r.Components), IDOf[C](r.Components)
	pa, pb, pc := assurePool[A](r, idA), assurePool[B](r, idB), assurePool[C](r, idC)

	pivot := snapshotPivot([]int{pa.len(), pb.len(), pc.len()})
	var entities []Entity
	switch pivot {
	case 0:
		entities = append([]Entity(nil), pa.set.Dense()...)
	case 1:
		entities = append([]Entity(nil), pb.set.Dense()...)
	case 2:
		entities = append([]Entity(nil), pc.set.Dense()...)
	}

	r.enterEach()
	defer r.exitEach()
	for _, e := range entities {
		if pa.contains(e) && pb.contains(e) && pc.contains(e) {
			f(e, pa.get(e), pb.get(e), pc.get(e))
		}
	}
}

// Each5 joins five component kinds (Motion: Position, Velocity,
// Acceleration, Renderable, Collider; Collision: Position, Renderable,
// Collider, Damage, Health).
func Each5[A, B, C, D, E any](r *Registry, f func(e Entity, a *A, b *B, c *C, d *D, ee *E)) {
	idA, idB, idC, idD, idE := IDOf[A](r.Components), IDOf[B](r.Components), IDOf[C](r.Components), IDOf[D](r.Components), IDOf[E](r.Components)
	pa, pb, pc, pd, pe := assurePool[A](r, idA), assurePool[B](r, idB), assurePool[C](r, idC), assurePool[D](r, idD), assurePool[E](r, idE)

	pivot := snapshotPivot([]int{pa.len(), pb.len(), pc.len(), pd.len(), pe.len()})
	var entities []Entity
	switch pivot {
	case 0:
		entities = append([]Entity(nil), pa.set.Dense()...)
	case 1:
		entities = append([]Entity(nil), pb.set.Dense()...)
	case 2:
		entities = append([]Entity(nil), pc.set.Dense()...)
	case 3:
		entities = append([]Entity(nil), pd.set.Dense()...)
	case 4:
		entities = append([]Entity(nil), pe.set.Dense()...)
	}

	r.enterEach()
	defer r.exitEach()
	for _, e := range entities {
		if pa.contains(e) && pb.contains(e) && pc.contains(e) && pd.contains(e) && pe.contains(e) {
			f(e, pa.get(e), pb.get(e), pc.get(e), pd.get(e), pe.get(e))
		}
	}
}

// Each6 joins six component kinds (AI: AIControlled, SinusoidalPattern,
// Position, Velocity, Renderable, Collider).
func Each6[A, B, C, D, E, F any](r *Registry, f func(e Entity, a *A, b *B, c *C, d *D, ee *E, ff *F)) {
	idA := IDOf[A](r.Components)
	idB := IDOf[B](r.Components)
	idC := IDOf[C](r.Components)
	idD := IDOf[D](r.Components)
	idE := IDOf[E](r.Components)
	idF := IDOf[F](r.Components)
	pa := assurePool[A](r, idA)
	pb := assurePool[B](r, idB)
	pc := assurePool[C](r, idC)
	pd := assurePool[D](r, idD)
	pe := assurePool[E](r, idE)
	pf := assurePool[F](r, idF)

	pivot := snapshotPivot([]int{pa.len(), pb.len(), pc.len(), pd.len(), pe.len(), pf.len()})
	var entities []Entity
	switch pivot {
	case 0:
		entities = append([]Entity(nil), pa.set.Dense()...)
	case 1:
		entities = append([]Entity(nil), pb.set.Dense()...)
	case 2:
		entities = append([]Entity(nil), pc.set.Dense()...)
	case 3:
		entities = append([]Entity(nil), pd.set.Dense()...)
	case 4:
		entities = append([]Entity(nil), pe.set.Dense()...)
	case 5:
		entities = append([]Entity(nil), pf.set.Dense()...)
	}

	r.enterEach()
	defer r.exitEach()
	for _, e := range entities {
		if pa.contains(e) && pb.contains(e) && pc.contains(e) && pd.contains(e) && pe.contains(e) && pf.contains(e) {
			f(e, pa.get(e), pb.get(e), pc.get(e), pd.get(e), pe.get(e), pf.get(e))
		}
	}
}
