// Package components declares the plain-data component kinds that make up
// authoritative game state. None of them carry behaviour; systems in
// internal/systems own all mutation. The ECS core identifies kinds by
// dense integer id rather than RTTI, so no IComponent/Component[T] base
// is needed.
package components

// Vec2 is a world-space or screen-space 2D point/extent in pixels.
type Vec2 struct {
	X, Y float64
}

// Position is the entity's world-space location.
type Position struct {
	X, Y float64
}

// Velocity is per-axis signed speed with a shared clamp magnitude.
type Velocity struct {
	X, Y     float64
	SpeedMax float64
}

// Acceleration is the per-tick force applied to Velocity. Decelerate
// requests the Motion system's 600 px/s² friction while no acceleration
// is being applied this tick.
type Acceleration struct {
	X, Y       float64
	Decelerate bool
}

// Collider is an axis-aligned hitbox plus an 8-bit layer mask. A pair
// collides iff SelfMask & SelfMask of the two entities is non-zero (see
// internal/systems/collision.go). OtherMask is carried for wire/debug
// symmetry with the layer model but is not consulted by the gate.
type Collider struct {
	OriginOffset Vec2
	SelfMask     uint8
	OtherMask    uint8
	Size         Vec2
}

// Health tracks current/max hit points. An entity reaching Current == 0
// is reaped by the Death system.
type Health struct {
	Current, Max int
}

// Damage is the amount of health subtracted from the other side of a
// collision pair.
type Damage struct {
	Value int
}

// Domain is the inclusive world-space rectangle an entity must stay
// inside; leaving it destroys the entity (internal/systems/domain.go).
type Domain struct {
	AX, AY, BX, BY float64
}

// Renderable carries the semantic (non-graphical) sprite/animation data
// the server needs: screen bounds for motion clamping, and frame timing
// for the Animation system. Actual texture/sprite rendering is a
// client-side concern and is not modelled here.
type Renderable struct {
	ScreenSizeX, ScreenSizeY float64
	Sheet                    string
	Frames                   []Vec2
	FrameSize                Vec2
	FrameDurationMs          int
	AutoAnimate              bool
	CurrentFrame             int
	elapsedMs                int
}

// ElapsedMs returns the animation's accumulated time within the current
// frame.
func (r *Renderable) ElapsedMs() int { return r.elapsedMs }

// AddElapsedMs accumulates animation time; used by the Animation system.
func (r *Renderable) AddElapsedMs(ms int) { r.elapsedMs += ms }

// ResetElapsedMs zeroes the accumulated frame time.
func (r *Renderable) ResetElapsedMs() { r.elapsedMs = 0 }

// InputKey enumerates the wire-level key codes carried in INPUT packets
// and InputControlled.PressedKeys.
type InputKey uint8

const (
	KeyUp InputKey = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyShoot
)

// InputControlled marks an entity as driven by a player's queued key
// presses rather than AI.
type InputControlled struct {
	PressedKeys []InputKey
	FirstInput  bool
}

// PressKey adds key to the pressed set if not already present.
func (c *InputControlled) PressKey(key InputKey) {
	for _, k := range c.PressedKeys {
		if k == key {
			return
		}
	}
	c.PressedKeys = append(c.PressedKeys, key)
	c.FirstInput = true
}

// ReleaseKey removes key from the pressed set.
func (c *InputControlled) ReleaseKey(key InputKey) {
	for i, k := range c.PressedKeys {
		if k == key {
			c.PressedKeys = append(c.PressedKeys[:i], c.PressedKeys[i+1:]...)
			return
		}
	}
}

// AIControlled is a marker component selecting the sinusoidal AI system.
type AIControlled struct{}

// SinusoidalPattern parameterises the vertical weave applied by the AI
// system (internal/systems/ai.go).
type SinusoidalPattern struct {
	Amplitude float64
	Frequency float64
	Phase     float64
}

// Gravity applies a constant downward (or, for the flap variant, any
// signed) force; used by the flap-mode input/motion pairing.
type Gravity struct {
	Force float64
}

// FireRate gates how often an entity may fire, in seconds between shots.
type FireRate struct {
	Rate float64
	Time float64
}

// Lifetime is a countdown in seconds after which the entity is destroyed.
type Lifetime struct {
	Time float64
}

// ScoreValue is the score awarded to the killer when this entity dies.
type ScoreValue struct {
	Points int
}

// Score is the cumulative score held by a player entity, credited by
// the Score system whenever one of its kills lands (internal/systems).
type Score struct {
	Total int
}

// OnPickup describes the bonuses granted by consuming a pickup entity.
type OnPickup struct {
	HPBonus              int
	HPMaxBonus           int
	DamageBonus          int
	CooldownBonus        float64
	ScoreMultiplierBonus float64
	Duration             float64
}

// Audio is a semantic cue for the client to play; the server never
// decodes or mixes sound itself.
type Audio struct {
	SoundName string
	Volume    float64
	Loop      bool
}

// Text is a small HUD/label string with a point size, consumed by the
// client renderer only.
type Text struct {
	Content  string
	FontSize int
}
