package systems

import (
	"github.com/rtype-server/rtype-server/internal/components"
	"github.com/rtype-server/rtype-server/internal/ecs"
)

// ShootAction is invoked once per tick for every InputControlled entity
// whose pressedKeys currently include KeyShoot. The two variants below
// plug different behaviour into the same directional-key handling.
type ShootAction func(r *ecs.Registry, e ecs.Entity, pos *components.Position)

// Input turns queued key presses into an Acceleration every tick. The
// directional handling (UP/DOWN/LEFT/RIGHT) is identical across game
// modes; only the SHOOT action differs, selected once at construction
// by the game-mode flag.
type Input struct {
	ecs.Base
	onShoot ShootAction
}

// NewInputRType builds the side-scroller input handler: SHOOT spawns a
// forward-travelling projectile.
func NewInputRType(reg *ecs.ComponentRegistry) *Input {
	return newInput(reg, "input.rtype", spawnProjectile)
}

// NewInputFlap builds the flap-mode input handler: SHOOT assigns a
// one-shot upward velocity impulse instead of firing.
func NewInputFlap(reg *ecs.ComponentRegistry) *Input {
	return newInput(reg, "input.flap", applyFlapImpulse)
}

func newInput(reg *ecs.ComponentRegistry, name string, onShoot ShootAction) *Input {
	in := &Input{Base: ecs.NewBase(name), onShoot: onShoot}
	in.Require(
		ecs.IDOf[components.InputControlled](reg),
		ecs.IDOf[components.Acceleration](reg),
		ecs.IDOf[components.Position](reg),
	)
	return in
}

// Update implements ecs.System.
func (in *Input) Update(r *ecs.Registry, _ float64) {
	ecs.Each3[components.InputControlled, components.Acceleration, components.Position](
		r,
		func(e ecs.Entity, ic *components.InputControlled, acc *components.Acceleration, pos *components.Position) {
			acc.X, acc.Y = 0, 0

			for _, key := range ic.PressedKeys {
				switch key {
				case components.KeyUp:
					acc.Y -= inputAcceleration
				case components.KeyDown:
					acc.Y += inputAcceleration
				case components.KeyLeft:
					acc.X -= inputAcceleration
				case components.KeyRight:
					acc.X += inputAcceleration
				case components.KeyShoot:
					if in.onShoot != nil {
						in.onShoot(r, e, pos)
					}
				}
			}

			acc.Decelerate = acc.X == 0 && acc.Y == 0
		},
	)
}

// spawnProjectile creates a forward-travelling bullet at the player's
// current position. Speed, damage, and hitbox are system constants, not
// client-supplied.
func spawnProjectile(r *ecs.Registry, _ ecs.Entity, pos *components.Position) {
	proj := r.Create()
	ecs.Emplace(r, proj, components.Position{X: pos.X, Y: pos.Y})
	ecs.Emplace(r, proj, components.Velocity{X: projectileSpeed, SpeedMax: projectileSpeed})
	ecs.Emplace(r, proj, components.Acceleration{})
	ecs.Emplace(r, proj, components.Renderable{ScreenSizeX: 1920, ScreenSizeY: 1080})
	ecs.Emplace(r, proj, components.Collider{SelfMask: projectileSelfMask, Size: components.Vec2{X: projectileHitboxW, Y: projectileHitboxH}})
	ecs.Emplace(r, proj, components.Damage{Value: projectileDamage})
	ecs.Emplace(r, proj, components.Health{Current: 1, Max: 1})
	ecs.Emplace(r, proj, components.Domain{AX: 0, AY: 0, BX: 1920, BY: 1080})
	ecs.Emplace(r, proj, components.Lifetime{Time: projectileLifetime})
}

// applyFlapImpulse assigns the one-shot vertical velocity used by the
// flap game mode's jump button.
func applyFlapImpulse(r *ecs.Registry, e ecs.Entity, _ *components.Position) {
	if !ecs.Has[components.Velocity](r, e) {
		return
	}
	vel := ecs.Get[components.Velocity](r, e)
	vel.Y = flapImpulse
}
