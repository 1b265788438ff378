package spaceship

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spaceship/ecs"
	"golang.org/x/image/colornames"
)

var clearColor = colornames.Black

// RenderSystem clears the screen and draws every sprite. Game sets Screen
// before each draw frame. The first image that fails to load is kept in Err
// and the sprite is skipped.
type RenderSystem struct {
	Sprites ecs.Query[struct {
		*Transform
		*Sprite
	}]
	Window ecs.Singleton[Window]
	Clear  ecs.Singleton[ClearColor]

	Assets *Assets
	Screen *ebiten.Image
	Err    error

	opts ebiten.DrawImageOptions
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Screen == nil {
		return
	}
	if c := s.Clear.Get(); c != nil && c.Color != nil {
		s.Screen.Fill(c.Color)
	}

	window := s.Window.Get()
	if window == nil {
		return
	}
	for sprite := range s.Sprites.Iter() {
		img, err := s.Assets.Image(sprite.Path)
		if err != nil {
			if s.Err == nil {
				s.Err = err
			}
			continue
		}

		x, y := ScreenPosition(*window, sprite.Translation.X(), sprite.Translation.Y())
		bounds := img.Bounds()
		s.opts.GeoM.Reset()
		s.opts.GeoM.Translate(-float64(bounds.Dx())/2, -float64(bounds.Dy())/2)
		s.opts.GeoM.Scale(float64(sprite.Scale.X()), float64(sprite.Scale.Y()))
		s.opts.GeoM.Translate(float64(x), float64(y))
		s.opts.Filter = ebiten.FilterNearest
		s.Screen.DrawImage(img, &s.opts)
	}
}

// ScreenPosition maps a world translation to screen pixels for a window of
// the given size.
func ScreenPosition(window Window, x, y float32) (float32, float32) {
	halfW, halfH := window.HalfExtents()
	return halfW + x, halfH - y
}
