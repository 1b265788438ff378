// Package assets embeds the game's default images.
package assets

import "embed"

//go:embed *.png
var FS embed.FS
