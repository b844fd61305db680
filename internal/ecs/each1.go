package ecs

// Each1 joins a single component kind. There is no pivot choice to make;
// reentrancy (deferred Destroy) follows the same rule as the multi-kind
// joins.
func Each1[A any](r *Registry, f func(e Entity, a *A)) {
	id := IDOf[A](r.Components)
	pa := assurePool[A](r, id)

	entities := append([]Entity(nil), pa.set.Dense()...)

	r.enterEach()
	defer r.exitEach()
	for _, e := range entities {
		if pa.contains(e) {
			f(e, pa.get(e))
		}
	}
}
