package spaceship

import (
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spaceship/assets"
)

// Assets loads images by path from a file system and caches them as
// ebiten images.
type Assets struct {
	fsys   fs.FS
	images map[string]*ebiten.Image
}

func NewAssets(fsys fs.FS) *Assets {
	return &Assets{
		fsys:   fsys,
		images: make(map[string]*ebiten.Image),
	}
}

// AssetsFor returns the directory named by cfg.AssetDir, or the embedded
// images when it is empty.
func AssetsFor(cfg Config) *Assets {
	if cfg.AssetDir != "" {
		return NewAssets(os.DirFS(cfg.AssetDir))
	}
	return NewAssets(assets.FS)
}

// Decode reads and decodes the image at path.
func (a *Assets) Decode(path string) (image.Image, error) {
	f, err := a.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", path, err)
	}
	return img, nil
}

// Image returns the cached ebiten image for path, loading it on first use.
func (a *Assets) Image(path string) (*ebiten.Image, error) {
	if img, ok := a.images[path]; ok {
		return img, nil
	}

	decoded, err := a.Decode(path)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(decoded)
	a.images[path] = img
	return img, nil
}

// Check decodes every path without creating GPU images, so a broken asset
// directory is reported before the window opens.
func (a *Assets) Check(paths ...string) error {
	for _, path := range paths {
		if _, err := a.Decode(path); err != nil {
			return err
		}
	}
	return nil
}
