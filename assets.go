package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

// loadBackground reads the world background image. A missing or unreadable
// file is not fatal: the pipeline draws entities over black instead.
func loadBackground(path string, log *zap.SugaredLogger) *ebiten.Image {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		log.Warnw("background image unavailable", "path", path, "error", err)
		return nil
	}
	log.Infow("background loaded", "path", path,
		"w", img.Bounds().Dx(), "h", img.Bounds().Dy())
	return img
}
