package ecs

import "testing"

type posT struct{ X, Y float64 }
type velT struct{ X, Y float64 }
type tagT struct{}

func TestRegistryEmplaceGetHasRemove(t *testing.T) {
	r := NewRegistry(1.0 / 60.0)
	e := r.Create()

	if Has[posT](r, e) {
		t.Fatal("entity should not have posT before emplace")
	}

	Emplace(r, e, posT{X: 1, Y: 2})
	if !Has[posT](r, e) {
		t.Fatal("expected posT after emplace")
	}
	got := Get[posT](r, e)
	if got.X != 1 || got.Y != 2 {
		t.Fatalf("unexpected component value: %+v", *got)
	}

	Remove[posT](r, e)
	if Has[posT](r, e) {
		t.Fatal("expected posT removed")
	}
}

func TestRegistryAvailableComponentsInvariant(t *testing.T) {
	r := NewRegistry(1.0 / 60.0)
	e1 := r.Create()
	e2 := r.Create()

	id := IDOf[posT](r.Components)
	if r.Available().Has(id) {
		t.Fatal("posT should not be available before any emplace")
	}

	Emplace(r, e1, posT{})
	if !r.Available().Has(id) {
		t.Fatal("posT should be available once a value exists")
	}

	Emplace(r, e2, posT{})
	Remove[posT](r, e1)
	if !r.Available().Has(id) {
		t.Fatal("posT should remain available while e2 still holds one")
	}

	Remove[posT](r, e2)
	if r.Available().Has(id) {
		t.Fatal("posT should become unavailable once the pool empties")
	}
}

func TestRegistryDestroyRemovesFromAllPools(t *testing.T) {
	r := NewRegistry(1.0 / 60.0)
	e := r.Create()
	Emplace(r, e, posT{X: 1})
	Emplace(r, e, velT{X: 2})

	before := r.Alive()
	r.Destroy(e)

	if r.Alive() != before-1 {
		t.Fatalf("expected alive to drop by 1, got %d -> %d", before, r.Alive())
	}
	if Has[posT](r, e) || Has[velT](r, e) {
		t.Fatal("destroyed entity must be removed from every pool")
	}
}

func TestRegistryCreateDestroyPreservesAliveCount(t *testing.T) {
	r := NewRegistry(1.0 / 60.0)
	before := r.Alive()
	e := r.Create()
	r.Destroy(e)
	if r.Alive() != before {
		t.Fatalf("create+destroy should leave alive() unchanged, got %d want %d", r.Alive(), before)
	}
}

func TestEach2JoinsOnlyEntitiesWithBothComponents(t *testing.T) {
	r := NewRegistry(1.0 / 60.0)

	both := r.Create()
	onlyPos := r.Create()

	Emplace(r, both, posT{X: 1})
	Emplace(r, both, velT{X: 2})
	Emplace(r, onlyPos, posT{X: 3})

	seen := map[Entity]bool{}
	Each2(r, func(e Entity, p *posT, v *velT) {
		seen[e] = true
	})

	if len(seen) != 1 || !seen[both] {
		t.Fatalf("expected only the joined entity to be visited, got %v", seen)
	}
}

func TestEachPivotsOnSmallestPool(t *testing.T) {
	r := NewRegistry(1.0 / 60.0)

	// Many entities with posT, few with velT. The pivot must be velT's
	// pool, so exactly the velT-bearing entities are visited.
	for i := 0; i < 50; i++ {
		e := r.Create()
		Emplace(r, e, posT{})
	}
	joined := r.Create()
	Emplace(r, joined, posT{})
	Emplace(r, joined, velT{})

	count := 0
	Each2(r, func(e Entity, p *posT, v *velT) {
		count++
	})
	if count != 1 {
		t.Fatalf("expected exactly 1 joined entity visited, got %d", count)
	}
}

func TestEachJoinAgainstUnknownComponentIsEmpty(t *testing.T) {
	r := NewRegistry(1.0 / 60.0)
	e := r.Create()
	Emplace(r, e, posT{})

	called := false
	Each2(r, func(e Entity, p *posT, v *velT) {
		called = true
	})
	if called {
		t.Fatal("join against a component with no live values must skip the callback")
	}
}

func TestEachAllowsDestroyDuringIterationWithoutCursorCorruption(t *testing.T) {
	r := NewRegistry(1.0 / 60.0)

	var entities []Entity
	for i := 0; i < 5; i++ {
		e := r.Create()
		Emplace(r, e, posT{X: float64(i)})
		entities = append(entities, e)
	}

	visited := 0
	Each2(r, func(e Entity, p *posT, v *velT) {})
	_ = visited

	visitedPos := map[Entity]bool{}
	Each2[posT, posT](r, func(e Entity, a *posT, b *posT) {
		visitedPos[e] = true
		// Destroying mid-iteration must not skip or double-visit peers,
		// and must not panic.
		r.Destroy(e)
	})

	if len(visitedPos) != len(entities) {
		t.Fatalf("expected every entity visited exactly once, got %d of %d", len(visitedPos), len(entities))
	}
	if r.Alive() != 0 {
		t.Fatalf("expected all entities destroyed after iteration completes, alive=%d", r.Alive())
	}
}

type sysA struct {
	Base
	calls int
}

func (s *sysA) Update(r *Registry, dt float64) { s.calls++ }

func TestSystemOnlyRunsWhenSignatureSatisfied(t *testing.T) {
	r := NewRegistry(1.0 / 60.0)

	base := NewBase("sysA")
	base.Require(IDOf[posT](r.Components))
	sys := &sysA{Base: base}
	r.AddSystem(sys, 0)

	r.Update(1.0 / 60.0)
	if sys.calls != 0 {
		t.Fatalf("system requiring posT should not run before any posT exists, calls=%d", sys.calls)
	}

	e := r.Create()
	Emplace(r, e, posT{})

	r.Update(1.0 / 60.0)
	if sys.calls != 1 {
		t.Fatalf("expected system to run once posT is available, calls=%d", sys.calls)
	}
}

func TestSystemsRunInPriorityOrder(t *testing.T) {
	r := NewRegistry(1.0 / 60.0)
	e := r.Create()
	Emplace(r, e, posT{})

	var order []string
	mk := func(name string) *recordingSystem {
		b := NewBase(name)
		b.Require(IDOf[posT](r.Components))
		return &recordingSystem{Base: b, order: &order}
	}

	r.AddSystem(mk("second"), 10)
	r.AddSystem(mk("first"), 0)
	r.AddSystem(mk("third"), 20)

	r.Update(1.0 / 60.0)

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("expected %d system runs, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected priority order %v, got %v", want, order)
		}
	}
}

type recordingSystem struct {
	Base
	order *[]string
}

func (s *recordingSystem) Update(r *Registry, dt float64) {
	*s.order = append(*s.order, s.Name())
}
