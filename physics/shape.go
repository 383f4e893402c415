package physics

import (
	"fmt"
	"math"
)

type ShapeKind uint8

const (
	KindCircle ShapeKind = iota
	KindBox
)

func (k ShapeKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindBox:
		return "box"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// Shape is either a circle or an axis-aligned box given by half extents.
// It is a plain value so copies never share state.
type Shape struct {
	Kind   ShapeKind
	Radius float64
	HalfW  float64
	HalfH  float64
}

func Circle(radius float64) Shape {
	return Shape{Kind: KindCircle, Radius: radius}
}

func Box(halfW, halfH float64) Shape {
	return Shape{Kind: KindBox, HalfW: halfW, HalfH: halfH}
}

// SetRadius resizes a circle. Boxes keep their aspect ratio and get a
// half-diagonal of r.
func (s *Shape) SetRadius(r float64) {
	if s.Kind == KindCircle {
		s.Radius = r
		return
	}
	if e := s.Extent(); e > 0 {
		s.Scale(r / e)
	}
}

// Scale multiplies every dimension by f.
func (s *Shape) Scale(f float64) {
	s.Radius *= f
	s.HalfW *= f
	s.HalfH *= f
}

// Extent is the radius of the smallest circle around the shape's centre that
// contains it.
func (s Shape) Extent() float64 {
	if s.Kind == KindCircle {
		return s.Radius
	}
	return math.Hypot(s.HalfW, s.HalfH)
}

// HalfExtents returns the half size of the shape's bounding box.
func (s Shape) HalfExtents() (float64, float64) {
	if s.Kind == KindCircle {
		return s.Radius, s.Radius
	}
	return s.HalfW, s.HalfH
}

func (s Shape) String() string {
	if s.Kind == KindCircle {
		return fmt.Sprintf("circle(r=%.2f)", s.Radius)
	}
	return fmt.Sprintf("box(%.2fx%.2f)", s.HalfW*2, s.HalfH*2)
}
