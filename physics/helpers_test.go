package physics_test

import (
	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
)

const (
	layerShip uint64 = 1 << iota
	layerRock
	layerShot
	layerWall
)

func newSpace() (*ecs.Storage, *physics.Space) {
	registry := ecs.NewComponentRegistry()
	physics.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	return storage, physics.NewSpace(storage)
}

func circle(r float64, layer, mask uint64) physics.Body {
	return physics.NewBody(physics.Collider{
		Shape:        physics.Circle(r),
		Layer:        layer,
		CollidesWith: mask,
		Sensor:       true,
	})
}

func wall(hw, hh float64) physics.Body {
	return physics.NewBody(physics.Collider{
		Shape: physics.Box(hw, hh),
		Layer: layerWall,
	})
}
