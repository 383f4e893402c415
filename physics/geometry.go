package physics

import "math"

// Overlapping reports whether two shapes intersect. Touching edges do not
// count. The result does not depend on argument order.
func Overlapping(ta Transform, a Shape, tb Transform, b Shape) bool {
	switch {
	case a.Kind == KindCircle && b.Kind == KindCircle:
		dx, dy := ta.X-tb.X, ta.Y-tb.Y
		r := a.Radius + b.Radius
		return dx*dx+dy*dy < r*r
	case a.Kind == KindCircle:
		return circleBox(ta, a.Radius, tb, b.HalfW, b.HalfH)
	case b.Kind == KindCircle:
		return circleBox(tb, b.Radius, ta, a.HalfW, a.HalfH)
	default:
		return math.Abs(ta.X-tb.X) < a.HalfW+b.HalfW &&
			math.Abs(ta.Y-tb.Y) < a.HalfH+b.HalfH
	}
}

// closestOnBox clamps p onto the box centred at c.
func closestOnBox(p, c Transform, hw, hh float64) Vec2 {
	return Vec2{
		X: math.Max(c.X-hw, math.Min(p.X, c.X+hw)),
		Y: math.Max(c.Y-hh, math.Min(p.Y, c.Y+hh)),
	}
}

func circleBox(tc Transform, r float64, tb Transform, hw, hh float64) bool {
	d := tc.Vec().Sub(closestOnBox(tc, tb, hw, hh))
	return d.Dot(d) < r*r
}

// contactNormal returns the unit normal pointing from the obstacle toward the
// mover. fallback is used when the geometry gives no direction, such as
// concentric shapes.
func contactNormal(mt Transform, ms Shape, ot Transform, os Shape, fallback Vec2) Vec2 {
	var n Vec2
	switch {
	case ms.Kind == KindCircle && os.Kind == KindCircle:
		n = mt.Vec().Sub(ot.Vec())
	case ms.Kind == KindCircle:
		n = mt.Vec().Sub(closestOnBox(mt, ot, os.HalfW, os.HalfH))
		if n.IsZero() {
			n = boxAxis(mt, ms, ot, os)
		}
	default:
		n = boxAxis(mt, ms, ot, os)
	}

	if unit, ok := n.Normalize(); ok {
		return unit
	}
	return fallback
}

// boxAxis picks the axis of least penetration between the bounding boxes of
// the two shapes.
func boxAxis(mt Transform, ms Shape, ot Transform, os Shape) Vec2 {
	mhw, mhh := ms.HalfExtents()
	ohw, ohh := os.HalfExtents()
	dx, dy := mt.X-ot.X, mt.Y-ot.Y

	penX := mhw + ohw - math.Abs(dx)
	penY := mhh + ohh - math.Abs(dy)
	if penX < penY {
		return Vec2{X: sign(dx)}
	}
	return Vec2{Y: sign(dy)}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
