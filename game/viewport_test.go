package game

import "testing"

func TestWorldScreenRoundTrip(t *testing.T) {
	v := NewViewport(800, 600)
	v.Recenter(1000, 500)

	points := [][2]float64{
		{0, 0},
		{1000, 500},
		{123.5, 77.25},
		{WorldWidth, WorldHeight},
	}
	for _, p := range points {
		sx, sy := v.WorldToScreen(p[0], p[1])
		wx, wy := v.ScreenToWorld(sx, sy)
		if wx != p[0] || wy != p[1] {
			t.Errorf("round trip of (%v, %v) gave (%v, %v)", p[0], p[1], wx, wy)
		}
	}
}

func TestRecenterClamp(t *testing.T) {
	tests := []struct {
		name         string
		px, py       float64
		wantX, wantY float64
	}{
		{"interior", 1024, 1024, 624, 724},
		{"top left corner", 0, 0, 0, 0},
		{"bottom right corner", WorldWidth, WorldHeight, WorldWidth - 800, WorldHeight - 600},
		{"near left edge", 10, 1024, 0, 724},
		{"near bottom edge", 1024, WorldHeight - 5, 624, WorldHeight - 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(800, 600)
			v.Recenter(tt.px, tt.py)
			if v.X != tt.wantX || v.Y != tt.wantY {
				t.Errorf("origin = (%v, %v), want (%v, %v)", v.X, v.Y, tt.wantX, tt.wantY)
			}
			if v.X < 0 || v.X > WorldWidth-v.W || v.Y < 0 || v.Y > WorldHeight-v.H {
				t.Errorf("origin (%v, %v) outside legal range", v.X, v.Y)
			}
		})
	}
}

func TestRecenterCentersPlayerWhenUnclamped(t *testing.T) {
	v := NewViewport(800, 600)
	v.Recenter(1000, 900)
	if cx := v.X + v.W/2; cx != 1000 {
		t.Errorf("center x = %v, want 1000", cx)
	}
	if cy := v.Y + v.H/2; cy != 900 {
		t.Errorf("center y = %v, want 900", cy)
	}
}

func TestRecenterWorldSmallerThanViewport(t *testing.T) {
	v := NewViewport(WorldWidth*2, 600)
	v.Recenter(100, 1024)
	if v.X != 0 {
		t.Errorf("x origin = %v, want 0 when world narrower than view", v.X)
	}
	if v.Y != 724 {
		t.Errorf("y origin = %v, want 724", v.Y)
	}
}
