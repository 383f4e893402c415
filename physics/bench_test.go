package physics_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/plus3/roids/physics"
)

func BenchmarkDetect(b *testing.B) {
	for _, n := range []int{64, 256, 1024} {
		b.Run(fmt.Sprint(n), func(b *testing.B) {
			_, space := newSpace()
			rng := rand.New(rand.NewPCG(1, 2))
			for range n {
				t := physics.Transform{X: rng.Float64() * 1280, Y: rng.Float64() * 720}
				space.Spawn(t, circle(5+rng.Float64()*20, layerRock, layerShot|layerShip))
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				space.Detect()
			}
		})
	}
}

func BenchmarkMoveBodyAndCollide(b *testing.B) {
	_, space := newSpace()
	for i := range 32 {
		space.Spawn(physics.Transform{X: float64(i) * 40, Y: 100}, wall(10, 10))
	}
	shot := space.Spawn(physics.Transform{X: 20, Y: 300}, physics.NewBody(physics.Collider{
		Shape:        physics.Circle(4),
		Layer:        layerShot,
		CollidesWith: layerWall,
	}))

	delta := physics.Vec2{X: 0.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, moved := space.MoveBodyAndCollide(shot, delta); !moved {
			delta = delta.Scale(-1)
		}
	}
}
