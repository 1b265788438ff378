package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/spaceship/ecs"
	"github.com/plus3/spaceship/ecs/debugui"
)

const (
	// ebitenutil's debug font cell size.
	glyphWidth  = 6
	lineHeight  = 16
	textPadding = 4
)

var textBackground = color.RGBA{A: 160}

// DrawText prints lines at (x, y) on a translucent backdrop using the
// ebitenutil debug font.
func DrawText(screen *ebiten.Image, lines []string, x, y int) {
	if len(lines) == 0 {
		return
	}

	width := 0
	for _, line := range lines {
		width = max(width, len(line)*glyphWidth)
	}
	height := len(lines) * lineHeight

	vector.DrawFilledRect(screen,
		float32(x-textPadding), float32(y-textPadding),
		float32(width+2*textPadding), float32(height+textPadding),
		textBackground, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*lineHeight)
	}
}

// TextOverlaySystem draws every PerfOverlay as debug text. Register it on
// the draw schedule and set Screen before each run.
type TextOverlaySystem struct {
	Overlays    ecs.Query[struct{ *debugui.PerfOverlay }]
	Diagnostics ecs.Singleton[debugui.FrameDiagnostics]

	Screen *ebiten.Image
	X, Y   int
}

func (s *TextOverlaySystem) Execute(frame *ecs.UpdateFrame) {
	diag := s.Diagnostics.Get()
	if s.Screen == nil || diag == nil {
		return
	}

	stats := frame.Storage.CollectStats()
	y := s.Y
	for item := range s.Overlays.Iter() {
		lines := item.Lines(diag, stats)
		DrawText(s.Screen, lines, s.X, y)
		y += len(lines)*lineHeight + 2*textPadding
	}
}
