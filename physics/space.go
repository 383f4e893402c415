package physics

import (
	"fmt"
	"reflect"

	"github.com/plus3/roids/ecs"
)

// RegisterComponents registers every physics component with the registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Motion](registry)
	ecs.RegisterComponent[Bounce](registry)
	ecs.RegisterComponent[Wrap](registry)
}

// Parts is a mutable view of an entity's transform and body.
type Parts struct {
	*Transform
	*Body
}

type bodyEntry struct {
	ecs.EntityId
	*Transform
	*Body
}

// Space is the spatial store: it maps entities to their transform and body.
// The data itself lives in the ECS storage; Space only adds the physics
// operations on top of it.
type Space struct {
	storage    *ecs.Storage
	parts      *ecs.View[Parts]
	bodies     *ecs.View[bodyEntry]
	transforms *ecs.View[struct{ *Transform }]
}

func NewSpace(storage *ecs.Storage) *Space {
	return &Space{
		storage:    storage,
		parts:      ecs.NewView[Parts](storage),
		bodies:     ecs.NewView[bodyEntry](storage),
		transforms: ecs.NewView[struct{ *Transform }](storage),
	}
}

func (s *Space) Storage() *ecs.Storage {
	return s.storage
}

// Spawn creates an entity that carries t, b and any extra components.
func (s *Space) Spawn(t Transform, b Body, extra ...any) ecs.EntityId {
	return s.storage.Spawn(bodyComponents(t, b, extra)...)
}

// SpawnDeferred queues the same creation as Spawn on cmds.
func (s *Space) SpawnDeferred(cmds *ecs.Commands, t Transform, b Body, extra ...any) {
	cmds.Spawn(bodyComponents(t, b, extra)...)
}

func bodyComponents(t Transform, b Body, extra []any) []any {
	components := make([]any, 0, len(extra)+2)
	components = append(components, t, b)
	return append(components, extra...)
}

// CreateBody gives an existing entity a transform and a body. The entity may
// already carry a transform, which is overwritten. The returned id replaces
// id, since the entity changes archetype.
func (s *Space) CreateBody(id ecs.EntityId, t Transform, b Body) (ecs.EntityId, error) {
	if !s.storage.Alive(id) {
		return 0, fmt.Errorf("create body for %v: %w", id, ErrNoEntity)
	}
	if s.storage.HasComponent(id, reflect.TypeFor[Body]()) {
		return id, fmt.Errorf("create body for %v: %w", id, ErrBodyExists)
	}

	id = s.storage.AddComponent(id, t)
	return s.storage.AddComponent(id, b), nil
}

// Transform returns a copy of the entity's transform.
func (s *Space) Transform(id ecs.EntityId) (Transform, bool) {
	item := s.transforms.Get(id)
	if item == nil {
		return Transform{}, false
	}
	return *item.Transform, true
}

// Collider returns the entity's body. The collider slice is shared with the
// store; use Body.Clone before keeping it past the current step.
func (s *Space) Collider(id ecs.EntityId) (Body, bool) {
	item := s.parts.Get(id)
	if item == nil {
		return Body{}, false
	}
	return *item.Body, true
}

// PartsMut returns pointers into the store for the entity's transform and
// body. They stay valid until the next structural change or compaction.
func (s *Space) PartsMut(id ecs.EntityId) (Parts, bool) {
	var parts Parts
	if !s.parts.Fill(id, &parts) {
		return Parts{}, false
	}
	return parts, true
}

// Bodies iterates every entity with a transform and a body.
func (s *Space) Bodies() func(yield func(ecs.EntityId, Parts) bool) {
	return func(yield func(ecs.EntityId, Parts) bool) {
		for id, entry := range s.bodies.Iter() {
			if !yield(id, Parts{Transform: entry.Transform, Body: entry.Body}) {
				return
			}
		}
	}
}

// MoveBody adds delta to the entity's position exactly.
func (s *Space) MoveBody(id ecs.EntityId, delta Vec2) bool {
	item := s.transforms.Get(id)
	if item == nil {
		return false
	}
	item.Transform.Translate(delta)
	return true
}

// MoveBodyToX places the entity at x without any collision response.
func (s *Space) MoveBodyToX(id ecs.EntityId, x float64) bool {
	item := s.transforms.Get(id)
	if item == nil {
		return false
	}
	item.Transform.X = x
	return true
}

// MoveBodyToY places the entity at y without any collision response.
func (s *Space) MoveBodyToY(id ecs.EntityId, y float64) bool {
	item := s.transforms.Get(id)
	if item == nil {
		return false
	}
	item.Transform.Y = y
	return true
}

// MoveBodyAndCollide tries to move the entity by delta. The destination of
// its first collider is tested against the solid colliders of every other
// body on a layer the mover collides with. Without contacts the move is
// committed and true is returned. Otherwise the entity stays where it is and
// the contacts are returned. Zero deltas, missing entities and empty bodies
// return (nil, false) without touching anything.
func (s *Space) MoveBodyAndCollide(id ecs.EntityId, delta Vec2) ([]Contact, bool) {
	if delta.IsZero() || !delta.IsFinite() {
		return nil, false
	}

	parts, ok := s.PartsMut(id)
	if !ok {
		return nil, false
	}
	mover := parts.Primary()
	if mover == nil {
		return nil, false
	}

	dest := Transform{X: parts.X + delta.X, Y: parts.Y + delta.Y}
	fallback, _ := delta.Scale(-1).Normalize()

	var contacts []Contact
	for otherId, other := range s.bodies.Iter() {
		if otherId == id {
			continue
		}
		for i := range other.Colliders {
			c := &other.Colliders[i]
			if c.Sensor || !mover.Reacts(c.Layer) {
				continue
			}
			if !Overlapping(dest, mover.Shape, *other.Transform, c.Shape) {
				continue
			}
			contacts = append(contacts, Contact{
				Entity: otherId,
				Layer:  c.Layer,
				Normal: contactNormal(dest, mover.Shape, *other.Transform, c.Shape, fallback),
			})
		}
	}

	if len(contacts) > 0 {
		return contacts, false
	}
	*parts.Transform = dest
	return nil, true
}

// Sync applies the commands queued so far.
func (s *Space) Sync(cmds *ecs.Commands) {
	cmds.Flush(s.storage)
}
