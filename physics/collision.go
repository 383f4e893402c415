package physics

import "github.com/plus3/roids/ecs"

// CollisionSystem rebuilds every collider's overlap list. All pairs of bodies
// are tested using their first collider; a side only records the overlap when
// its CollidesWith mask includes the other side's layer.
type CollisionSystem struct {
	Bodies ecs.Query[bodyEntry]

	entries []bodyEntry
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	s.entries = s.entries[:0]
	for entry := range s.Bodies.Values() {
		s.entries = append(s.entries, entry)
	}
	detect(s.entries)
}

// Detect runs one detection pass over every body in the space outside of a
// scheduler.
func (s *Space) Detect() {
	var entries []bodyEntry
	for entry := range s.bodies.Values() {
		entries = append(entries, entry)
	}
	detect(entries)
}

func detect(entries []bodyEntry) {
	for _, e := range entries {
		for i := range e.Colliders {
			e.Colliders[i].Overlaps = e.Colliders[i].Overlaps[:0]
		}
	}

	for i := 0; i < len(entries); i++ {
		a := entries[i]
		ca := a.Primary()
		if ca == nil {
			continue
		}

		for j := i + 1; j < len(entries); j++ {
			b := entries[j]
			cb := b.Primary()
			if cb == nil {
				continue
			}

			aSees, bSees := ca.Reacts(cb.Layer), cb.Reacts(ca.Layer)
			if !aSees && !bSees {
				continue
			}
			if !Overlapping(*a.Transform, ca.Shape, *b.Transform, cb.Shape) {
				continue
			}

			sideA := overlapSide(a.EntityId, ca, *a.Transform)
			sideB := overlapSide(b.EntityId, cb, *b.Transform)
			if aSees {
				ca.Overlaps = append(ca.Overlaps, Overlap{Self: sideA, Other: sideB})
			}
			if bSees {
				cb.Overlaps = append(cb.Overlaps, Overlap{Self: sideB, Other: sideA})
			}
		}
	}
}

func overlapSide(id ecs.EntityId, c *Collider, t Transform) OverlapSide {
	return OverlapSide{
		Entity:       id,
		Shape:        c.Shape,
		Layer:        c.Layer,
		CollidesWith: c.CollidesWith,
		Transform:    t,
	}
}
