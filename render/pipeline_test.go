package render

import (
	"testing"

	"github.com/lowwcrystal/go-mmo-client/game"
)

func TestVisibleCullMargin(t *testing.T) {
	vp := game.NewViewport(800, 600)

	tests := []struct {
		name   string
		sx, sy float64
		want   bool
	}{
		{"center", 400, 300, true},
		{"on edge", 0, 0, true},
		{"inside margin left", -50, 300, true},
		{"outside margin left", -51, 300, false},
		{"inside margin right", 850, 300, true},
		{"outside margin right", 851, 300, false},
		{"inside margin bottom", 400, 650, true},
		{"outside margin bottom", 400, 651, false},
		{"far away", -500, -500, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visible(vp, tt.sx, tt.sy); got != tt.want {
				t.Errorf("visible(%v, %v) = %v, want %v", tt.sx, tt.sy, got, tt.want)
			}
		})
	}
}

func TestSpriteScalePreservesAspect(t *testing.T) {
	tests := []struct {
		w, h   int
		target float64
		want   float64
	}{
		{64, 32, 32, 0.5},
		{32, 64, 32, 0.5},
		{16, 16, 32, 2},
		{0, 0, 32, 1},
	}
	for _, tt := range tests {
		if got := spriteScale(tt.w, tt.h, tt.target); got != tt.want {
			t.Errorf("spriteScale(%d, %d, %v) = %v, want %v", tt.w, tt.h, tt.target, got, tt.want)
		}
	}
}
