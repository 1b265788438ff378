package spaceship

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"
)

// OverlayMode selects how the performance overlay is drawn.
type OverlayMode string

const (
	OverlayImgui OverlayMode = "imgui"
	OverlayText  OverlayMode = "text"
	OverlayOff   OverlayMode = "off"
)

// Set implements flag.Value.
func (m *OverlayMode) Set(s string) error {
	switch mode := OverlayMode(s); mode {
	case OverlayImgui, OverlayText, OverlayOff:
		*m = mode
		return nil
	}
	return fmt.Errorf("unknown overlay mode %q (want imgui, text or off)", s)
}

func (m *OverlayMode) String() string {
	return string(*m)
}

type Config struct {
	Title  string
	Width  int
	Height int
	TPS    int

	// AssetDir is read for images when set; otherwise the embedded
	// assets are used.
	AssetDir string
	Overlay  OverlayMode

	ShipSpeed    float32
	ShipScale    float32
	BulletSpeed  float32
	MuzzleOffset float32
	FireCooldown time.Duration

	// CullBullets despawns bullets once they are CullMargin units past the
	// window edge. With it off, bullets live forever.
	CullBullets bool
	CullMargin  float32
}

func DefaultConfig() Config {
	return Config{
		Title:        "Spaceship",
		Width:        1280,
		Height:       720,
		TPS:          60,
		Overlay:      OverlayText,
		ShipSpeed:    200,
		ShipScale:    2,
		BulletSpeed:  500,
		MuzzleOffset: 30,
		FireCooldown: 100 * time.Millisecond,
		CullBullets:  true,
		CullMargin:   64,
	}
}

var errInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", errInvalidConfig, c.Width, c.Height)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d", errInvalidConfig, c.TPS)
	case c.ShipSpeed < 0 || c.BulletSpeed < 0:
		return fmt.Errorf("%w: negative speed", errInvalidConfig)
	case c.ShipScale <= 0:
		return fmt.Errorf("%w: ship scale %v", errInvalidConfig, c.ShipScale)
	case c.FireCooldown < 0:
		return fmt.Errorf("%w: negative fire cooldown", errInvalidConfig)
	case c.CullMargin < 0:
		return fmt.Errorf("%w: negative cull margin", errInvalidConfig)
	}

	mode := c.Overlay
	if err := mode.Set(string(c.Overlay)); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	return nil
}

// RegisterFlags binds the config's fields to flags on fs, using the current
// values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "window width")
	fs.IntVar(&c.Height, "height", c.Height, "window height")
	fs.IntVar(&c.TPS, "tps", c.TPS, "updates per second")
	fs.StringVar(&c.AssetDir, "assets", c.AssetDir, "read images from this directory instead of the embedded ones")
	fs.Var(&c.Overlay, "overlay", "performance overlay: imgui, text or off")
	fs.Var((*float32Value)(&c.ShipSpeed), "ship-speed", "ship speed in units per second")
	fs.Var((*float32Value)(&c.BulletSpeed), "bullet-speed", "bullet speed in units per second")
	fs.DurationVar(&c.FireCooldown, "cooldown", c.FireCooldown, "minimum time between shots")
	fs.BoolVar(&c.CullBullets, "cull", c.CullBullets, "despawn bullets that leave the window")
}

type float32Value float32

func (f *float32Value) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*f = float32Value(v)
	return nil
}

func (f *float32Value) String() string {
	return strconv.FormatFloat(float64(*f), 'g', -1, 32)
}
