package game

// Viewport is the camera rectangle: an origin and size in world units.
// WorldToScreen and ScreenToWorld are exact inverses for a fixed origin.
type Viewport struct {
	X, Y float64 // top-left corner in world coordinates
	W, H float64
}

// NewViewport returns a viewport of the given size anchored at the world
// origin.
func NewViewport(w, h float64) Viewport {
	return Viewport{W: w, H: h}
}

// WorldToScreen converts a world position to screen coordinates.
func (v Viewport) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx - v.X, wy - v.Y
}

// ScreenToWorld converts a screen position back to world coordinates.
func (v Viewport) ScreenToWorld(sx, sy float64) (float64, float64) {
	return sx + v.X, sy + v.Y
}

// Recenter moves the viewport so (px, py) sits at its center, then clamps
// each axis independently to keep the visible rectangle inside the world.
// When the world is smaller than the viewport on an axis, the origin for
// that axis stays at 0 and the background simply does not fill the screen.
func (v *Viewport) Recenter(px, py float64) {
	v.X = clampOrigin(px-v.W/2, WorldWidth-v.W)
	v.Y = clampOrigin(py-v.H/2, WorldHeight-v.H)
}

func clampOrigin(o, max float64) float64 {
	if max < 0 {
		return 0
	}
	return Clamp(o, 0, max)
}
