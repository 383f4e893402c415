package physics

import "math"

// Transform is an entity's position in world units. Headings are not stored
// here; they are derived with AngleTo or carried by Motion.
type Transform struct {
	X, Y float64
}

// AngleTo returns the heading in degrees from t toward (x, y) using the game's
// convention: 0 is up and angles grow clockwise.
func (t Transform) AngleTo(x, y float64) float64 {
	r := math.Atan2(t.Y-y, t.X-x) * 180 / math.Pi
	if r < 0 {
		return math.Mod(r+630, 360)
	}
	return math.Mod(r+270, 360)
}

// Translate adds delta to the position exactly.
func (t *Transform) Translate(delta Vec2) {
	t.X += delta.X
	t.Y += delta.Y
}

func (t Transform) Vec() Vec2 {
	return Vec2{t.X, t.Y}
}

func (t Transform) IsFinite() bool {
	return t.Vec().IsFinite()
}
