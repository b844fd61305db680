package session

import (
	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

// Player archetype tunables for a side-scroller ship; the flap variant
// reuses the same hitbox/health, adds Gravity, and deals no contact
// damage (Damage 0). Health and Damage
// match createPlayerEntity's rtype-mode archetype verbatim (a player is
// one hit from death, and deals 1 damage on contact); SpeedMax is
// adapted from its raw per-frame figure to px/s for this engine's fixed
// 60Hz step (see DESIGN.md).
const (
	playerSpeedMax  = 400.0
	playerMaxHealth = 1
	playerDamage    = 1
	playerWidth     = 32.0
	playerHeight    = 32.0
	playerSelfMask  = 0x01

	playerSpawnX = 100.0

	flapGravity = 900.0 // px/s², downward
)

// createPlayerEntity builds the component set for a freshly joined
// player occupying slotID, tuned by the active game mode.
func createPlayerEntity(r *ecs.Registry, mode Mode, slotID uint8) ecs.Entity {
	e := r.Create()

	spawnY := 100.0 + float64(slotID)*200.0
	ecs.Emplace(r, e, components.Position{X: playerSpawnX, Y: spawnY})
	ecs.Emplace(r, e, components.Velocity{SpeedMax: playerSpeedMax})
	ecs.Emplace(r, e, components.Acceleration{Decelerate: true})
	ecs.Emplace(r, e, components.Collider{
		SelfMask: playerSelfMask,
		Size:     components.Vec2{X: playerWidth, Y: playerHeight},
	})
	ecs.Emplace(r, e, components.Health{Current: playerMaxHealth, Max: playerMaxHealth})
	ecs.Emplace(r, e, components.Renderable{ScreenSizeX: 1920, ScreenSizeY: 1080})
	ecs.Emplace(r, e, components.InputControlled{})
	ecs.Emplace(r, e, components.Score{})
	ecs.Emplace(r, e, components.Domain{AX: 0, AY: 0, BX: 1920, BY: 1080})

	if mode == ModeFlap {
		ecs.Emplace(r, e, components.Damage{Value: 0})
		ecs.Emplace(r, e, components.Gravity{Force: flapGravity})
	} else {
		ecs.Emplace(r, e, components.Damage{Value: playerDamage})
	}

	return e
}
