package ecs

import "testing"

func TestSparseSetInsertContainsGet(t *testing.T) {
	s := NewSparseSet[int]()

	if s.Contains(3) {
		t.Fatal("empty set should not contain entity 3")
	}

	s.Insert(3, 42)
	if !s.Contains(3) {
		t.Fatal("expected entity 3 to be present after insert")
	}
	if got := *s.Get(3); got != 42 {
		t.Fatalf("expected value 42, got %d", got)
	}
}

func TestSparseSetInsertIsIdempotent(t *testing.T) {
	s := NewSparseSet[int]()
	s.Insert(5, 1)
	s.Insert(5, 2)

	if s.Len() != 1 {
		t.Fatalf("expected len=1 after re-insert, got %d", s.Len())
	}
	if got := *s.Get(5); got != 2 {
		t.Fatalf("expected replaced value 2, got %d", got)
	}
}

func TestSparseSetEraseSwapsWithLast(t *testing.T) {
	s := NewSparseSet[string]()
	s.Insert(1, "a")
	s.Insert(2, "b")
	s.Insert(3, "c")

	s.Erase(1)

	if s.Contains(1) {
		t.Fatal("entity 1 should be gone after erase")
	}
	if !s.Contains(2) || !s.Contains(3) {
		t.Fatal("erase of entity 1 must not disturb entities 2 and 3")
	}
	if s.Len() != 2 {
		t.Fatalf("expected len=2 after erase, got %d", s.Len())
	}
	if got := *s.Get(3); got != "c" {
		t.Fatalf("expected entity 3's value unaffected by swap, got %q", got)
	}
}

func TestSparseSetEraseAbsentIsNoop(t *testing.T) {
	s := NewSparseSet[int]()
	s.Insert(1, 1)
	s.Erase(99)
	if s.Len() != 1 {
		t.Fatalf("erase of absent entity must be a no-op, got len=%d", s.Len())
	}
}

func TestSparseSetDenseIterationOrder(t *testing.T) {
	s := NewSparseSet[int]()
	s.Insert(10, 100)
	s.Insert(20, 200)
	s.Insert(30, 300)

	want := []Entity{10, 20, 30}
	for i, e := range want {
		if s.EntityAt(i) != e {
			t.Fatalf("dense[%d]: expected %d, got %d", i, e, s.EntityAt(i))
		}
	}
}

func TestSparseSetGetPanicsOnAbsent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic getting an absent entity")
		}
	}()
	s := NewSparseSet[int]()
	s.Get(7)
}
