package physics

import "math"

// Vec2 is a displacement or direction in world units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Normalize returns the unit vector of v. The second result is false for
// zero or non-finite input.
func (v Vec2) Normalize() (Vec2, bool) {
	l := v.Len()
	if l == 0 || math.IsInf(l, 0) || math.IsNaN(l) {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// Reflect mirrors v about the unit normal n: v - 2(v·n)n. A non-finite result
// reports false and the caller should keep its previous velocity.
func Reflect(v, n Vec2) (Vec2, bool) {
	r := v.Sub(n.Scale(2 * v.Dot(n)))
	if !r.IsFinite() {
		return v, false
	}
	return r, true
}

// HeadingVector is the unit vector for a heading in degrees, where 0 points
// up (-Y) and angles grow clockwise.
func HeadingVector(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	return Vec2{math.Sin(rad), -math.Cos(rad)}
}

// AngleOf is the inverse of HeadingVector, normalised to [0, 360).
func AngleOf(v Vec2) float64 {
	deg := math.Atan2(v.X, -v.Y) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
