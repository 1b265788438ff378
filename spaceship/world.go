package spaceship

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/spaceship/ecs"
	"github.com/plus3/spaceship/ecs/debugui"
)

// World holds the game state and the update schedule. It has no window and
// no images, so it runs headless under tests and the soak command.
type World struct {
	Config    Config
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	// Player keeps the player's ref alive for callers that track it.
	Player *ecs.EntityRef
}

// NewWorld spawns the player and the performance overlay and registers the
// game systems in frame order. The first systems run ahead of the game
// systems each frame, so input capture they record is current when
// KeyboardSystem reads it. Callers may register more systems after.
func NewWorld(cfg Config, keys KeySource, first ...ecs.System) *World {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	storage.AddSingleton(Keyboard{})
	storage.AddSingleton(Window{Width: cfg.Width, Height: cfg.Height})
	storage.AddSingleton(ClearColor{Color: clearColor})
	storage.AddSingleton(debugui.ImguiInputState{})
	storage.AddSingleton(debugui.NewFrameDiagnostics(debugui.DefaultHistoryFrames))

	w := &World{
		Config:    cfg,
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),
	}
	w.Player = storage.CreateEntityRef(w.spawnPlayer())
	storage.Spawn(debugui.PerfOverlay{
		DisplayLabels: true,
		Entries:       []debugui.PerfEntry{debugui.EntryFPSWorst, debugui.EntryFPS},
	})

	for _, system := range first {
		w.Scheduler.Register(system)
	}
	w.Scheduler.Register(&KeyboardSystem{Source: keys})
	w.Scheduler.Register(&SpriteMovementSystem{})
	w.Scheduler.Register(&ShipMovementInputSystem{})
	w.Scheduler.Register(&ConfinePlayerSystem{})
	w.Scheduler.Register(&BulletFiringSystem{
		Speed:  cfg.BulletSpeed,
		Offset: mgl32.Vec3{0, cfg.MuzzleOffset, 0},
	})
	if cfg.CullBullets {
		w.Scheduler.Register(&BulletCullSystem{Margin: cfg.CullMargin})
	}
	w.Scheduler.Register(&debugui.DiagnosticsSystem{})
	return w
}

func (w *World) spawnPlayer() ecs.EntityId {
	return w.Storage.Spawn(
		Player{},
		Sprite{Path: SpaceshipImage},
		NewTransform(0, 0, w.Config.ShipScale),
		SpriteMovement{Speed: w.Config.ShipSpeed},
		CooldownTimer{Timer: ecs.NewTimer(w.Config.FireCooldown, ecs.TimerOnce)},
	)
}

// Step runs one frame of dt seconds.
func (w *World) Step(dt float64) {
	w.Scheduler.Once(dt)
}

// PlayerTransform returns the player's transform, or nil once the player is
// gone.
func (w *World) PlayerTransform() *Transform {
	id, ok := w.Storage.ResolveEntityRef(w.Player)
	if !ok {
		return nil
	}
	return ecs.ReadComponent[Transform](w.Storage, id)
}

// BulletCount is the number of live bullets.
func (w *World) BulletCount() int {
	return ecs.NewView[struct{ *Bullet }](w.Storage).Count()
}

// Resize updates the Window singleton.
func (w *World) Resize(width, height int) {
	var window *Window
	if w.Storage.ReadSingleton(&window) {
		window.Width, window.Height = width, height
	}
}
