package ecs

// EntityManager generates and recycles entity ids. Destroyed ids are
// reused in LIFO order before any fresh id is issued, backed by a
// monotonic counter plus a free list.
type EntityManager struct {
	next     Entity
	freeList []Entity
	aliveN   int
}

// NewEntityManager returns an empty manager.
func NewEntityManager() *EntityManager {
	return &EntityManager{}
}

// Create returns a new entity, reusing the most recently destroyed id
// before allocating a fresh one.
func (m *EntityManager) Create() Entity {
	if n := len(m.freeList); n > 0 {
		e := m.freeList[n-1]
		m.freeList = m.freeList[:n-1]
		m.aliveN++
		return e
	}
	e := m.next
	m.next++
	m.aliveN++
	return e
}

// Destroy recycles e. Callers must ensure e is not destroyed twice.
func (m *EntityManager) Destroy(e Entity) {
	m.freeList = append(m.freeList, e)
	m.aliveN--
}

// Alive returns the number of currently live entities.
func (m *EntityManager) Alive() int {
	return m.aliveN
}

// Reserve preallocates free-list capacity for the given number of entities.
func (m *EntityManager) Reserve(capacity int) {
	if cap(m.freeList) < capacity {
		grown := make([]Entity, len(m.freeList), capacity)
		copy(grown, m.freeList)
		m.freeList = grown
	}
}

// Clear resets the manager to its initial empty state.
func (m *EntityManager) Clear() {
	m.next = 0
	m.aliveN = 0
	m.freeList = m.freeList[:0]
}
