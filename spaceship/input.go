package spaceship

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/spaceship/ecs"
	"github.com/plus3/spaceship/ecs/debugui"
)

var (
	LeftKeys  = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	RightKeys = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	UpKeys    = []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}
	DownKeys  = []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}
	FireKeys  = []ebiten.Key{ebiten.KeySpace}
)

// KeySource reports which keys are held right now.
type KeySource interface {
	AppendPressedKeys(keys []ebiten.Key) []ebiten.Key
}

// KeySourceFunc adapts a function to KeySource.
type KeySourceFunc func(keys []ebiten.Key) []ebiten.Key

func (f KeySourceFunc) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return f(keys)
}

// EbitenKeys polls the real keyboard.
var EbitenKeys KeySource = KeySourceFunc(inpututil.AppendPressedKeys)

// Keyboard is the per-frame key state singleton. Edges are derived by
// comparing the keys held this frame with those held the frame before.
type Keyboard struct {
	held     map[ebiten.Key]bool
	pressed  map[ebiten.Key]bool
	released map[ebiten.Key]bool
}

// Update replaces the held set with keys and recomputes the edges.
func (k *Keyboard) Update(keys []ebiten.Key) {
	if k.held == nil {
		k.held = make(map[ebiten.Key]bool)
		k.pressed = make(map[ebiten.Key]bool)
		k.released = make(map[ebiten.Key]bool)
	}
	clear(k.pressed)
	clear(k.released)

	for key := range k.held {
		if !slices.Contains(keys, key) {
			k.released[key] = true
			delete(k.held, key)
		}
	}
	for _, key := range keys {
		if !k.held[key] {
			k.pressed[key] = true
			k.held[key] = true
		}
	}
}

// Pressed reports whether any of keys is held.
func (k *Keyboard) Pressed(keys ...ebiten.Key) bool {
	return anyOf(k.held, keys)
}

// JustPressed reports whether any of keys went down this frame.
func (k *Keyboard) JustPressed(keys ...ebiten.Key) bool {
	return anyOf(k.pressed, keys)
}

// JustReleased reports whether any of keys went up this frame.
func (k *Keyboard) JustReleased(keys ...ebiten.Key) bool {
	return anyOf(k.released, keys)
}

func anyOf(set map[ebiten.Key]bool, keys []ebiten.Key) bool {
	for _, key := range keys {
		if set[key] {
			return true
		}
	}
	return false
}

// KeyboardSystem feeds the Keyboard singleton from Source. While Dear ImGui
// has keyboard focus the game sees no keys held.
type KeyboardSystem struct {
	Keyboard ecs.Singleton[Keyboard]
	Imgui    ecs.Singleton[debugui.ImguiInputState]

	Source KeySource
	buf    []ebiten.Key
}

func (s *KeyboardSystem) Execute(frame *ecs.UpdateFrame) {
	kb := s.Keyboard.Get()
	if kb == nil {
		return
	}

	s.buf = s.buf[:0]
	if state := s.Imgui.Get(); state == nil || !state.WantCaptureKeyboard {
		s.buf = s.Source.AppendPressedKeys(s.buf)
	}
	kb.Update(s.buf)
}
