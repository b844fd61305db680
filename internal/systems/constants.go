// Package systems implements the fixed-step gameplay systems that run
// against an internal/ecs.Registry: input handling, gravity, AI, motion,
// domain clipping, collision, score, death, lifetime, and animation.
// Wiring order is Input → Gravity → AI → Motion → Domain → Collision →
// Score → Death → Lifetime → Animation,
// registered with ascending priority at construction time in
// cmd/server/main.go.
package systems

// Projectile speed, damage, and hitbox are constants of the system, not
// client-supplied, so a client can't inflate its own damage or speed.
const (
	inputAcceleration = 1000.0 // px/s², side-scroller variant
	flapImpulse       = -420.0 // px/s, one-shot vertical velocity on SHOOT

	projectileSpeed     = 900.0
	projectileDamage    = 10
	projectileHitboxW   = 12.0
	projectileHitboxH   = 4.0
	projectileSelfMask  = 0x02 // distinct layer from ships
	projectileLifetime  = 2.0  // seconds, matches Domain clipping as a backstop

	frictionPerSecond = 600.0 // px/s², Motion system step 3
)
