package physics

import (
	"math"

	"github.com/plus3/roids/ecs"
)

// Motion is per-step kinematic state. DX/DY is a constant drift; Speed along
// Angle (degrees, 0 up, clockwise) is added on top. Accel and Curve change
// Speed and Angle once per step.
type Motion struct {
	DX, DY float64
	Speed  float64
	Angle  float64
	Accel  float64
	Curve  float64
}

// Step advances speed and angle, then returns this step's displacement.
func (m *Motion) Step() Vec2 {
	m.Speed += m.Accel
	m.Angle += m.Curve
	rad := m.Angle * math.Pi / 180
	return Vec2{
		X: m.DX + math.Sin(rad)*m.Speed,
		Y: m.DY - math.Cos(rad)*m.Speed,
	}
}

// Bounce makes movement collide-aware. Each contact reflects the heading and
// counts toward Limit; a contact once Count has reached Limit sets Spent.
type Bounce struct {
	Count int
	Limit int
	Spent bool
}

// MotionSystem integrates Motion into Transform. Bodies carrying Bounce move
// with MoveBodyAndCollide and reflect off what they hit.
type MotionSystem struct {
	Space  *Space
	Movers ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Motion
		Bounce *Bounce `ecs:"optional"`
		Body   *Body   `ecs:"optional"`
	}]
}

func (s *MotionSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Movers.Values() {
		delta := item.Motion.Step()

		if item.Bounce == nil || item.Body == nil {
			item.Transform.Translate(delta)
			continue
		}
		if delta.IsZero() {
			continue
		}

		contacts, moved := s.Space.MoveBodyAndCollide(item.EntityId, delta)
		if moved || len(contacts) == 0 {
			continue
		}
		ApplyBounce(item.Motion, item.Bounce, contacts)
	}
}

// ApplyBounce records a blocking contact on b and turns m's heading away
// from the averaged contact normal. A degenerate normal leaves the heading
// unchanged.
func ApplyBounce(m *Motion, b *Bounce, contacts []Contact) {
	if b.Count >= b.Limit {
		b.Spent = true
		return
	}
	b.Count++

	var sum Vec2
	for _, c := range contacts {
		sum = sum.Add(c.Normal)
	}
	n := sum.Scale(1 / sum.Len())

	if reflected, ok := Reflect(HeadingVector(m.Angle), n); ok {
		m.Angle = AngleOf(reflected)
	}
}
