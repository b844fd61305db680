package level

// Spawner walks a spawnTime-sorted list with a cursor that only ever
// advances and never retreats.
type Spawner struct {
	list   []EnemySpawnData
	cursor int
}

// NewSpawner wraps an already-sorted spawn list (Parse's output).
func NewSpawner(list []EnemySpawnData) *Spawner {
	return &Spawner{list: list}
}

// Cursor returns the index of the next entry yet to spawn.
func (s *Spawner) Cursor() int { return s.cursor }

// Remaining reports how many entries have not yet spawned.
func (s *Spawner) Remaining() int { return len(s.list) - s.cursor }

// Advance spawns every entry whose SpawnTime has been reached as of
// totalTime, invoking spawn once per entry in spawnTime order.
func (s *Spawner) Advance(totalTime float64, spawn func(EnemySpawnData)) {
	for s.cursor < len(s.list) && totalTime >= s.list[s.cursor].SpawnTime {
		spawn(s.list[s.cursor])
		s.cursor++
	}
}
