package level

import (
	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

// enemySelfMask collides with both the player hull (0x01) and player
// projectiles (0x02); see internal/systems/constants.go.
const enemySelfMask = 0x03

// enemyTuning is the per-type tuning table: velocity, (negative)
// acceleration, health, and animation frame duration per enemy type.
type enemyTuning struct {
	speedMax        float64
	acceleration    float64
	health          int
	damage          int
	frameDurationMs int
	weave           bool
}

var enemyTuningByType = map[int]enemyTuning{
	1: {speedMax: 180, acceleration: -180, health: 1, damage: 1, frameDurationMs: 1000},
	2: {speedMax: 240, acceleration: -240, health: 2, damage: 1, frameDurationMs: 800},
	3: {speedMax: 150, acceleration: -150, health: 1, damage: 1, frameDurationMs: 1200, weave: true},
	4: {speedMax: 300, acceleration: -300, health: 3, damage: 2, frameDurationMs: 600},
}

var defaultEnemyTuning = enemyTuning{speedMax: 180, acceleration: -180, health: 1, damage: 1, frameDurationMs: 1000}

const enemyFrameCount = 8

// CreateEnemyFromData spawns an AI-controlled enemy entity tuned by
// data.Type. Unknown types fall back to defaultEnemyTuning (the original
// logs a warning and keeps its locals at their pre-switch defaults).
func CreateEnemyFromData(r *ecs.Registry, data EnemySpawnData) ecs.Entity {
	tuning, ok := enemyTuningByType[data.Type]
	if !ok {
		tuning = defaultEnemyTuning
	}

	e := r.Create()
	ecs.Emplace(r, e, components.AIControlled{})
	ecs.Emplace(r, e, components.Position{X: data.X, Y: data.Y})
	ecs.Emplace(r, e, components.Velocity{SpeedMax: tuning.speedMax})
	ecs.Emplace(r, e, components.Acceleration{X: tuning.acceleration})

	frames := make([]components.Vec2, enemyFrameCount)
	for i := 0; i < enemyFrameCount; i++ {
		frames[i] = components.Vec2{
			X: data.TextureRect.X + float64(i)*data.TextureRect.W,
			Y: data.TextureRect.Y,
		}
	}
	ecs.Emplace(r, e, components.Renderable{
		ScreenSizeX:     1920,
		ScreenSizeY:     1080,
		Sheet:           data.SpritePath,
		Frames:          frames,
		FrameSize:       components.Vec2{X: data.TextureRect.W, Y: data.TextureRect.H},
		FrameDurationMs: tuning.frameDurationMs,
		AutoAnimate:     true,
	})

	ecs.Emplace(r, e, components.Collider{
		SelfMask: enemySelfMask,
		Size:     components.Vec2{X: data.TextureRect.W, Y: data.TextureRect.H},
	})
	ecs.Emplace(r, e, components.Domain{AX: 5, AY: 0, BX: 1920, BY: 1080})
	ecs.Emplace(r, e, components.Health{Current: tuning.health, Max: tuning.health})
	ecs.Emplace(r, e, components.Damage{Value: tuning.damage})
	ecs.Emplace(r, e, components.ScoreValue{Points: tuning.health * 100})

	if tuning.weave {
		ecs.Emplace(r, e, components.SinusoidalPattern{Amplitude: 80, Frequency: 0.01})
	}

	return e
}
