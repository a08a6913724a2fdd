package render

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/lowwcrystal/go-mmo-client/game"
)

const (
	playerSpriteSize    = 32.0
	companionSpriteSize = 28.0
	cullMargin          = 50.0
	labelGap            = 4.0
)

var (
	labelFill   = color.White
	labelStroke = color.Black
)

// Pipeline draws the world each frame from the entity store and a viewport.
// It never mutates the store.
type Pipeline struct {
	store      *game.Store
	frames     *Frames
	background *ebiten.Image
	face       text.Face
	log        *zap.SugaredLogger
}

// NewPipeline wires a pipeline. The background image may be nil; the world is
// then drawn on black.
func NewPipeline(store *game.Store, frames *Frames, background *ebiten.Image, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		store:      store,
		frames:     frames,
		background: background,
		face:       text.NewGoXFace(basicfont.Face7x13),
		log:        log,
	}
}

// Draw renders one frame: background, players, companions, then the
// diagnostic overlay. Missing avatars or frames skip their entity; nothing
// here can fail a frame.
func (p *Pipeline) Draw(screen *ebiten.Image, vp game.Viewport, status string) {
	p.drawBackground(screen, vp)

	for _, id := range sortedKeys(p.store.Players()) {
		pl := p.store.Players()[id]
		p.drawEntity(screen, vp, pl.X, pl.Y, pl.Facing, pl.Frame, pl.Avatar, pl.Username, playerSpriteSize)
	}
	for _, id := range sortedKeys(p.store.Companions()) {
		c := p.store.Companions()[id]
		p.drawEntity(screen, vp, c.X, c.Y, c.Facing, c.Frame, c.Avatar, c.Name, companionSpriteSize)
	}

	p.drawOverlay(screen, vp, status)
}

// drawBackground crops the background to the viewport rectangle and draws it
// 1:1. Where the world is smaller than the view the screen stays unfilled.
func (p *Pipeline) drawBackground(screen *ebiten.Image, vp game.Viewport) {
	if p.background == nil {
		return
	}
	rect := image.Rect(int(vp.X), int(vp.Y), int(vp.X+vp.W)+1, int(vp.Y+vp.H)+1)
	rect = rect.Intersect(p.background.Bounds())
	if rect.Empty() {
		return
	}
	sub := p.background.SubImage(rect).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(rect.Min.X)-vp.X, float64(rect.Min.Y)-vp.Y)
	screen.DrawImage(sub, op)
}

func (p *Pipeline) drawEntity(screen *ebiten.Image, vp game.Viewport, wx, wy float64,
	facing game.Facing, frame int, avatar, label string, size float64) {

	sx, sy := vp.WorldToScreen(wx, wy)
	if !visible(vp, sx, sy) {
		return
	}
	def, ok := p.store.Avatar(avatar)
	if !ok {
		return
	}
	img, ok := p.frames.Resolve(def, facing, frame)
	if !ok {
		return
	}

	b := img.Bounds()
	s := spriteScale(b.Dx(), b.Dy(), size)
	w := float64(b.Dx()) * s
	h := float64(b.Dy()) * s

	op := &ebiten.DrawImageOptions{}
	if facing == game.FacingWest {
		// Mirror about the vertical axis through the sprite position.
		op.GeoM.Scale(-s, s)
		op.GeoM.Translate(sx+w/2, sy-h/2)
	} else {
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(sx-w/2, sy-h/2)
	}
	screen.DrawImage(img, op)

	p.drawLabel(screen, label, sx, sy-h/2-labelGap)
}

// drawLabel draws name text with a dark outline under a light fill so it
// stays legible on any background. The outline is four offset passes.
func (p *Pipeline) drawLabel(screen *ebiten.Image, s string, cx, baseY float64) {
	if s == "" {
		return
	}
	w, h := text.Measure(s, p.face, 0)
	x := cx - w/2
	y := baseY - h
	for _, off := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+off[0], y+off[1])
		op.ColorScale.ScaleWithColor(labelStroke)
		text.Draw(screen, s, p.face, op)
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(labelFill)
	text.Draw(screen, s, p.face, op)
}

// drawOverlay reports connection and entity state. Purely observational.
func (p *Pipeline) drawOverlay(screen *ebiten.Image, vp game.Viewport, status string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Conn: %s\n", status)
	if lp, ok := p.store.LocalPlayer(); ok {
		fmt.Fprintf(&b, "Me: %s (%.0f, %.0f)\n", lp.ID, lp.X, lp.Y)
	} else {
		b.WriteString("Me: -\n")
	}
	fmt.Fprintf(&b, "View: (%.0f, %.0f) %dx%d\n", vp.X, vp.Y, int(vp.W), int(vp.H))
	fmt.Fprintf(&b, "Players: %d  FPS: %.1f\n", len(p.store.Players()), ebiten.ActualFPS())
	fmt.Fprintf(&b, "Companions: %d\n", len(p.store.Companions()))
	for _, id := range sortedKeys(p.store.Companions()) {
		c := p.store.Companions()[id]
		sx, sy := vp.WorldToScreen(c.X, c.Y)
		fmt.Fprintf(&b, "  %s (%.0f, %.0f) visible=%v\n", c.Name, c.X, c.Y, visible(vp, sx, sy))
	}
	ebitenutil.DebugPrint(screen, b.String())
}

// visible is a cheap bounding check on the entity's anchor point, not exact
// sprite bounds.
func visible(vp game.Viewport, sx, sy float64) bool {
	return sx >= -cullMargin && sx <= vp.W+cullMargin &&
		sy >= -cullMargin && sy <= vp.H+cullMargin
}

// spriteScale fits the source's larger edge to the target size, preserving
// aspect ratio.
func spriteScale(w, h int, target float64) float64 {
	edge := w
	if h > edge {
		edge = h
	}
	if edge <= 0 {
		return 1
	}
	return target / float64(edge)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
