package ecs

import "testing"

func TestEntityManagerRecyclesLIFO(t *testing.T) {
	m := NewEntityManager()

	a := m.Create()
	b := m.Create()
	c := m.Create()

	m.Destroy(b)
	m.Destroy(c)

	// LIFO: c was destroyed last, so it must be reissued first.
	if got := m.Create(); got != c {
		t.Fatalf("expected recycled id %d, got %d", c, got)
	}
	if got := m.Create(); got != b {
		t.Fatalf("expected recycled id %d, got %d", b, got)
	}

	// Free list exhausted: next id is fresh, after a.
	fresh := m.Create()
	if fresh == a || fresh == b || fresh == c {
		t.Fatalf("expected a fresh id, got reused %d", fresh)
	}
}

func TestEntityManagerAliveCount(t *testing.T) {
	m := NewEntityManager()

	for i := 0; i < 5; i++ {
		m.Create()
	}
	if m.Alive() != 5 {
		t.Fatalf("expected alive=5, got %d", m.Alive())
	}

	e := m.Create()
	m.Destroy(e)
	if m.Alive() != 5 {
		t.Fatalf("expected alive unchanged after create+destroy, got %d", m.Alive())
	}
}

func TestEntityManagerClear(t *testing.T) {
	m := NewEntityManager()
	m.Create()
	m.Create()
	m.Clear()

	if m.Alive() != 0 {
		t.Fatalf("expected alive=0 after clear, got %d", m.Alive())
	}
	if got := m.Create(); got != 0 {
		t.Fatalf("expected first id after clear to be 0, got %d", got)
	}
}
