// Package render draws the world: background, entities with their avatar
// frames, name labels, and the diagnostic overlay.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/lowwcrystal/go-mmo-client/game"
)

// Frames caches drawable sprite frames derived from avatar definitions.
// Derivation happens the first time a definition is used and is skipped on
// every later resolve.
type Frames struct {
	log   *zap.SugaredLogger
	cache map[string]map[game.Facing][]*ebiten.Image
}

// NewFrames returns an empty frame cache.
func NewFrames(log *zap.SugaredLogger) *Frames {
	return &Frames{
		log:   log,
		cache: make(map[string]map[game.Facing][]*ebiten.Image),
	}
}

// Resolve returns the frame for (facing, index), deriving the definition's
// images on first use. West resolves to the east frames; the pipeline mirrors
// them at draw time. A false return means the caller skips the draw.
func (f *Frames) Resolve(def *game.AvatarDefinition, facing game.Facing, frame int) (*ebiten.Image, bool) {
	set, ok := f.cache[def.Name]
	if !ok {
		set = f.derive(def)
		f.cache[def.Name] = set
	}
	seq := set[facing]
	if facing == game.FacingWest && len(seq) == 0 {
		seq = set[game.FacingEast]
	}
	if len(seq) == 0 {
		return nil, false
	}
	if frame < 0 {
		frame = 0
	}
	return seq[frame%len(seq)], true
}

func (f *Frames) derive(def *game.AvatarDefinition) map[game.Facing][]*ebiten.Image {
	set := make(map[game.Facing][]*ebiten.Image, len(def.Frames))
	for facing, payloads := range def.Frames {
		imgs := make([]*ebiten.Image, 0, len(payloads))
		for i, payload := range payloads {
			src, err := decodeFrame(payload)
			if err != nil {
				f.log.Warnw("bad avatar frame", "avatar", def.Name,
					"facing", facing, "frame", i, "error", err)
				continue
			}
			imgs = append(imgs, ebiten.NewImageFromImage(src))
		}
		set[facing] = imgs
	}
	return set
}

// decodeFrame accepts either a data URI or bare base64 image bytes.
func decodeFrame(payload string) (image.Image, error) {
	if i := strings.Index(payload, "base64,"); i >= 0 {
		payload = payload[i+len("base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
