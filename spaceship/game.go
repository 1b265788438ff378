package spaceship

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spaceship/ecs"
	"github.com/plus3/spaceship/ecs/debugui"
	debugebiten "github.com/plus3/spaceship/ecs/debugui/ebiten"
)

// A stalled loop (window drag, breakpoint) would otherwise teleport the ship.
const maxFrameDelta = 0.25

// Game runs a World inside ebiten. Update steps the world; Draw runs a
// separate draw schedule over the same storage.
type Game struct {
	world  *World
	draw   *ecs.Scheduler
	render *RenderSystem
	text   *debugebiten.TextOverlaySystem
	imgui  *debugebiten.ImguiBackend
	timer  *debugui.FrameTimer
}

// NewGame loads both images from assets and builds the world. For
// OverlayImgui it creates the Dear ImGui window, otherwise the caller sets
// up the ebiten window.
func NewGame(cfg Config, assets *Assets) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, path := range []string{SpaceshipImage, BulletImage} {
		if _, err := assets.Image(path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	g := &Game{timer: debugui.NewFrameTimer()}

	var first []ecs.System
	if cfg.Overlay == OverlayImgui {
		backend := debugebiten.NewImguiBackend(cfg.Title, cfg.Width, cfg.Height)
		g.imgui = &backend
		first = append(first, &debugui.ImguiSystem{})
	}
	g.world = NewWorld(cfg, EbitenKeys, first...)
	storage := g.world.Storage

	g.draw = ecs.NewScheduler(storage)
	g.render = &RenderSystem{Assets: assets}
	g.draw.Register(g.render)

	switch cfg.Overlay {
	case OverlayText:
		g.text = &debugebiten.TextOverlaySystem{X: 8, Y: 8}
		g.draw.Register(g.text)
	case OverlayImgui:
		storage.Spawn(debugui.SystemTimingsWindow(g.world.Scheduler.GetStats))
		debugui.SpawnDebugUI(storage)
		g.world.Scheduler.Register(&debugui.PerfOverlaySystem{})
		g.world.Scheduler.Register(&debugui.DebugWindowsSystem{})
	}
	return g, nil
}

// World exposes the game state.
func (g *Game) World() *World {
	return g.world
}

func (g *Game) Update() error {
	if g.render.Err != nil {
		return fmt.Errorf("render: %w", g.render.Err)
	}

	dt := min(g.timer.DeltaTime(), maxFrameDelta)
	if g.imgui != nil {
		g.imgui.BeginFrame()
		defer g.imgui.EndFrame()
	}
	g.world.Step(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Screen = screen
	if g.text != nil {
		g.text.Screen = screen
	}
	g.draw.Once(0)

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.world.Resize(outsideWidth, outsideHeight)
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
