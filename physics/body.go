package physics

import "github.com/plus3/roids/ecs"

// Collider is one shape of a body together with its layer masks. Layer says
// what the collider is, CollidesWith what it reacts to. Sensors record
// overlaps but never block collide-aware movement.
type Collider struct {
	Shape        Shape
	Layer        uint64
	CollidesWith uint64
	Sensor       bool

	// Overlaps is rebuilt by every detection pass.
	Overlaps []Overlap
}

// Reacts reports whether c records or is blocked by something on layer.
func (c *Collider) Reacts(layer uint64) bool {
	return c.CollidesWith&layer != 0
}

// OverlapsLayer reports whether any record from the last pass was against
// one of the given layers.
func (c *Collider) OverlapsLayer(layers uint64) (Overlap, bool) {
	for _, o := range c.Overlaps {
		if o.Other.Layer&layers != 0 {
			return o, true
		}
	}
	return Overlap{}, false
}

// Body is the set of colliders owned by one entity. Only the first collider
// takes part in detection and collide-aware movement; further colliders act
// as obstacles for others.
type Body struct {
	Colliders []Collider
}

func NewBody(colliders ...Collider) Body {
	return Body{Colliders: colliders}
}

// Primary returns the first collider, or nil for an empty body.
func (b *Body) Primary() *Collider {
	if len(b.Colliders) == 0 {
		return nil
	}
	return &b.Colliders[0]
}

// Clone deep-copies the body. Overlap lists are not carried over.
func (b Body) Clone() Body {
	colliders := make([]Collider, len(b.Colliders))
	for i, c := range b.Colliders {
		c.Overlaps = nil
		colliders[i] = c
	}
	return Body{Colliders: colliders}
}

// OverlapSide is one participant of an overlap as it was at detection time.
type OverlapSide struct {
	Entity       ecs.EntityId
	Shape        Shape
	Layer        uint64
	CollidesWith uint64
	Transform    Transform
}

// Overlap is a detection record oriented toward the collider that stores it.
// It is only meaningful during the step that produced it.
type Overlap struct {
	Self  OverlapSide
	Other OverlapSide
}

// ImpactAngle is the heading from the other participant toward this one.
func (o Overlap) ImpactAngle() float64 {
	return o.Other.Transform.AngleTo(o.Self.Transform.X, o.Self.Transform.Y)
}

// Contact is a blocking obstacle found by MoveBodyAndCollide.
type Contact struct {
	Entity ecs.EntityId
	Layer  uint64
	// Normal is a unit vector pointing from the obstacle toward the mover.
	Normal Vec2
}
