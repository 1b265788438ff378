package spaceship

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/spaceship/ecs"
	"github.com/plus3/spaceship/ecs/debugui"
)

const (
	SpaceshipImage = "spaceship.png"
	BulletImage    = "bullet.png"
)

// Player marks the ship steered by the keyboard. Exactly one is expected.
type Player struct{}

// Bullet marks a projectile fired by the player.
type Bullet struct{}

// Transform places an entity in world space: origin at the window centre,
// y pointing up, one unit per logical pixel.
type Transform struct {
	Translation mgl32.Vec3
	Scale       mgl32.Vec3
}

func NewTransform(x, y, scale float32) Transform {
	return Transform{
		Translation: mgl32.Vec3{x, y, 0},
		Scale:       mgl32.Vec3{scale, scale, 1},
	}
}

// SpriteMovement moves an entity along Direction at Speed units per second.
// Direction need not be normalised.
type SpriteMovement struct {
	Direction mgl32.Vec3
	Speed     float32
}

// Velocity is the per-second displacement. A zero direction yields zero.
func (m *SpriteMovement) Velocity() mgl32.Vec3 {
	return normalizeOrZero(m.Direction).Mul(m.Speed)
}

// CooldownTimer gates how often the player may fire.
type CooldownTimer struct {
	ecs.Timer
}

// Sprite draws the image at Path centred on the entity's Transform.
type Sprite struct {
	Path string
}

// Window is the current logical screen size.
type Window struct {
	Width  int
	Height int
}

// HalfExtents returns half the width and height, the reachable world bounds.
func (w *Window) HalfExtents() (float32, float32) {
	return float32(w.Width) / 2, float32(w.Height) / 2
}

// ClearColor fills the screen before sprites are drawn.
type ClearColor struct {
	color.Color
}

func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(float64(l)) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// RegisterComponents registers every component the game spawns, including
// the debug overlay's.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Bullet](registry)
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[SpriteMovement](registry)
	ecs.RegisterComponent[CooldownTimer](registry)
	ecs.RegisterComponent[Sprite](registry)
	debugui.RegisterComponents(registry)
}
