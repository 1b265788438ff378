package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spaceship/spaceship"
)

func main() {
	cfg := spaceship.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	assets := spaceship.AssetsFor(cfg)
	if err := assets.Check(spaceship.SpaceshipImage, spaceship.BulletImage); err != nil {
		log.Fatalf("Failed to load assets: %v", err)
	}

	if cfg.Overlay != spaceship.OverlayImgui {
		ebiten.SetWindowTitle(cfg.Title)
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetTPS(cfg.TPS)

	game, err := spaceship.NewGame(cfg, assets)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Starting %s (%dx%d, overlay %s)", cfg.Title, cfg.Width, cfg.Height, cfg.Overlay)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
