package game

import (
	"testing"

	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// quietConfig turns the spawners off so tests control every entity.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.AsteroidEvery = 1e12
	cfg.SpinnerEvery = 1e12
	return cfg
}

func newTestWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	w, err := NewWorld(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return w
}

func flushSpawn(w *World, spawn func(cmds *ecs.Commands)) {
	var cmds ecs.Commands
	spawn(&cmds)
	w.Space().Sync(&cmds)
}

func placeAsteroid(w *World, x, y, radius float64) *ecs.EntityRef {
	before := map[ecs.EntityId]bool{}
	for id := range asteroidIds(w) {
		before[id] = true
	}
	flushSpawn(w, func(cmds *ecs.Commands) {
		spawnAsteroid(w.Space(), cmds, physics.Transform{X: x, Y: y}, asteroidBody(radius), physics.Motion{})
	})
	for id := range asteroidIds(w) {
		if !before[id] {
			return w.Storage().CreateEntityRef(id)
		}
	}
	return nil
}

func placeBullet(w *World, team Team, x, y, angle, speed float64) *ecs.EntityRef {
	view := ecs.NewView[struct {
		ecs.EntityId
		*Bullet
	}](w.Storage())

	before := map[ecs.EntityId]bool{}
	for id := range view.Iter() {
		before[id] = true
	}
	cfg := w.Config()
	flushSpawn(w, func(cmds *ecs.Commands) {
		spawnBullet(w.Space(), cmds, &cfg, team, physics.Transform{X: x, Y: y}, angle, speed)
	})
	for id := range view.Iter() {
		if !before[id] {
			return w.Storage().CreateEntityRef(id)
		}
	}
	return nil
}

func asteroidIds(w *World) func(yield func(ecs.EntityId) bool) {
	view := ecs.NewView[struct {
		ecs.EntityId
		*Asteroid
	}](w.Storage())
	return func(yield func(ecs.EntityId) bool) {
		for id := range view.Iter() {
			if !yield(id) {
				return
			}
		}
	}
}

func resolve(t *testing.T, w *World, ref *ecs.EntityRef) (ecs.EntityId, bool) {
	t.Helper()
	return w.Storage().ResolveEntityRef(ref)
}

func playerRef(t *testing.T, w *World) *ecs.EntityRef {
	t.Helper()
	for id := range w.players.Iter() {
		return w.Storage().CreateEntityRef(id)
	}
	t.Fatal("no player")
	return nil
}

func radiusOf(space *physics.Space, id ecs.EntityId) float64 {
	body, ok := space.Collider(id)
	if !ok {
		return 0
	}
	return body.Primary().Shape.Radius
}
