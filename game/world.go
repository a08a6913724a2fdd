package game

// World dimensions in world units. The background image and every entity
// position live inside this rectangle.
const (
	WorldWidth  = 2048.0
	WorldHeight = 2048.0
)

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampToWorld pulls a position back inside the world rectangle.
func ClampToWorld(x, y float64) (float64, float64) {
	return Clamp(x, 0, WorldWidth), Clamp(y, 0, WorldHeight)
}
