package spaceship

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spaceship/ecs"
)

// SpriteMovementSystem integrates every moving entity's position.
type SpriteMovementSystem struct {
	Movers ecs.Query[struct {
		*Transform
		*SpriteMovement
	}]
}

func (s *SpriteMovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for m := range s.Movers.Iter() {
		m.Translation = m.Translation.Add(m.Velocity().Mul(dt))
	}
}

// singlePlayer warns once when the player query does not hold exactly one
// entity, and again after it recovers and fails anew.
type singlePlayer struct {
	warned bool
}

func (p *singlePlayer) check(system string, ok bool, count int) bool {
	if ok {
		p.warned = false
		return true
	}
	if !p.warned {
		log.Printf("%s: expected exactly one player, found %d; skipping", system, count)
		p.warned = true
	}
	return false
}

// ShipMovementInputSystem turns WASD and arrow keys into the player's
// movement direction. Each axis keeps its value until a key changes it.
type ShipMovementInputSystem struct {
	Players ecs.Query[struct {
		*Player
		*SpriteMovement
	}]
	Keyboard ecs.Singleton[Keyboard]

	single singlePlayer
}

func (s *ShipMovementInputSystem) Execute(frame *ecs.UpdateFrame) {
	kb := s.Keyboard.Get()
	player, ok := s.Players.Single()
	if kb == nil || !s.single.check("ShipMovementInputSystem", ok, s.Players.Len()) {
		return
	}

	dir := &player.Direction
	dir[0] = steer(kb, dir[0], -1, LeftKeys, RightKeys)
	dir[0] = steer(kb, dir[0], 1, RightKeys, LeftKeys)
	dir[1] = steer(kb, dir[1], 1, UpKeys, DownKeys)
	dir[1] = steer(kb, dir[1], -1, DownKeys, UpKeys)
}

// steer applies one side of an axis. A fresh press points the axis at sign.
// Releasing that side stops the axis unless another key for the same side
// is still held, or flips it when the opposite side is held.
func steer(kb *Keyboard, v, sign float32, keys, opposite []ebiten.Key) float32 {
	switch {
	case kb.JustPressed(keys...):
		return sign
	case kb.JustReleased(keys...) && v*sign > 0:
		if kb.Pressed(keys...) {
			return sign
		}
		if kb.Pressed(opposite...) {
			return -sign
		}
		return 0
	}
	return v
}

// ConfinePlayerSystem keeps the player inside the window. Once past an edge
// and still heading out, the axis is stopped and the position clamped.
type ConfinePlayerSystem struct {
	Players ecs.Query[struct {
		*Player
		*Transform
		*SpriteMovement
	}]
	Window ecs.Singleton[Window]

	single singlePlayer
}

func (s *ConfinePlayerSystem) Execute(frame *ecs.UpdateFrame) {
	window := s.Window.Get()
	player, ok := s.Players.Single()
	if window == nil || !s.single.check("ConfinePlayerSystem", ok, s.Players.Len()) {
		return
	}

	halfW, halfH := window.HalfExtents()
	confine(&player.Translation[0], &player.Direction[0], halfW)
	confine(&player.Translation[1], &player.Direction[1], halfH)
}

func confine(pos, dir *float32, bound float32) {
	switch {
	case *pos < -bound && *dir < 0:
		*pos, *dir = -bound, 0
	case *pos > bound && *dir > 0:
		*pos, *dir = bound, 0
	}
}

// BulletFiringSystem spawns a bullet above the player on a fresh press of
// Space, at most once per cooldown.
type BulletFiringSystem struct {
	Players ecs.Query[struct {
		*Player
		*Transform
		*CooldownTimer
	}]
	Keyboard ecs.Singleton[Keyboard]

	Speed  float32
	Offset mgl32.Vec3

	single singlePlayer
}

func (s *BulletFiringSystem) Execute(frame *ecs.UpdateFrame) {
	kb := s.Keyboard.Get()
	player, ok := s.Players.Single()
	if kb == nil || !s.single.check("BulletFiringSystem", ok, s.Players.Len()) {
		return
	}

	timer := &player.CooldownTimer.Timer
	timer.Tick(time.Duration(frame.DeltaTime * float64(time.Second)))
	if !kb.JustPressed(FireKeys...) || !timer.Finished() {
		return
	}

	frame.Commands.Spawn(newBullet(player.Translation.Add(s.Offset), s.Speed)...)
	timer.Reset()
}

func newBullet(at mgl32.Vec3, speed float32) []any {
	return []any{
		Bullet{},
		Sprite{Path: BulletImage},
		Transform{Translation: at, Scale: mgl32.Vec3{1, 1, 1}},
		SpriteMovement{Direction: mgl32.Vec3{0, 1, 0}, Speed: speed},
	}
}

// BulletCullSystem despawns bullets that have left the window by more than
// Margin units.
type BulletCullSystem struct {
	Bullets ecs.Query[struct {
		ecs.EntityId
		*Bullet
		*Transform
	}]
	Window ecs.Singleton[Window]

	Margin float32
}

func (s *BulletCullSystem) Execute(frame *ecs.UpdateFrame) {
	window := s.Window.Get()
	if window == nil {
		return
	}

	halfW, halfH := window.HalfExtents()
	for b := range s.Bullets.Iter() {
		x, y := b.Translation.X(), b.Translation.Y()
		if y > halfH+s.Margin || y < -halfH-s.Margin || x > halfW+s.Margin || x < -halfW-s.Margin {
			frame.Commands.Delete(b.EntityId)
		}
	}
}
