package physics

import (
	"math"

	"github.com/plus3/roids/ecs"
)

// Wrap tags bodies that leave one side of the world and come back on the other.
type Wrap struct{}

// Bounds is an axis-aligned world rectangle.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func NewBounds(width, height float64) Bounds {
	return Bounds{MaxX: width, MaxY: height}
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

func (b Bounds) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Grow returns b extended by margin on every side.
func (b Bounds) Grow(margin float64) Bounds {
	return Bounds{b.MinX - margin, b.MinY - margin, b.MaxX + margin, b.MaxY + margin}
}

func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Wrap teleports a coordinate that left the band [min-margin, max+margin] to
// the opposite side. The result always lies inside the band, so wrapping it
// again is a no-op.
func (b Bounds) Wrap(x, y, margin float64) (float64, float64, bool) {
	nx, wx := wrapAxis(x, b.MinX, b.MaxX, margin)
	ny, wy := wrapAxis(y, b.MinY, b.MaxY, margin)
	return nx, ny, wx || wy
}

func wrapAxis(v, lo, hi, margin float64) (float64, bool) {
	lo, hi = lo-margin, hi+margin
	span := hi - lo
	if span <= 0 {
		return v, false
	}
	switch {
	case v > hi:
		return v - span*math.Ceil((v-hi)/span), true
	case v < lo:
		return v + span*math.Ceil((lo-v)/span), true
	default:
		return v, false
	}
}

// WrapSystem wraps every Wrap-tagged body around Bounds. The margin is the
// body's extent plus Buffer so that shapes disappear fully before wrapping.
type WrapSystem struct {
	Space  *Space
	Bounds Bounds
	Buffer float64

	Bodies ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Body
		*Wrap
	}]
}

func (s *WrapSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Bodies.Values() {
		extent := 0.0
		if c := item.Primary(); c != nil {
			extent = c.Shape.Extent()
		}

		x, y, wrapped := s.Bounds.Wrap(item.X, item.Y, extent+s.Buffer)
		if !wrapped {
			continue
		}
		if x != item.X {
			s.Space.MoveBodyToX(item.EntityId, x)
		}
		if y != item.Y {
			s.Space.MoveBodyToY(item.EntityId, y)
		}
	}
}
