package game

import (
	"testing"

	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestAsteroidSplitScenario(t *testing.T) {
	w := newTestWorld(t, quietConfig())

	rock := placeAsteroid(w, 200, 200, 100)
	shot := placeBullet(w, TeamPlayer, 200, 150, 0, 0)
	require.NotNil(t, rock)
	require.NotNil(t, shot)

	w.Step()

	_, ok := resolve(t, w, shot)
	assert.False(t, ok, "bullet is used up by the hit")

	rockId, ok := resolve(t, w, rock)
	require.True(t, ok)

	var ids []ecs.EntityId
	for id := range asteroidIds(w) {
		ids = append(ids, id)
	}
	require.Len(t, ids, 2)

	// The bullet sat straight above, so the impact heading is down (180).
	const impact, eps = 180.0, 1e-9
	for _, id := range ids {
		assert.InDelta(t, 100/1.5, radiusOf(w.Space(), id), 1e-9)
		tr, _ := w.Space().Transform(id)
		assert.Equal(t, physics.Transform{X: 200, Y: 200}, tr)

		m := ecs.ReadComponent[physics.Motion](w.Storage(), id)
		if id == rockId {
			assert.True(t, m.Angle > impact-140-eps && m.Angle <= impact+eps, "original veers one way: %v", m.Angle)
		} else {
			assert.True(t, m.Angle >= impact-eps && m.Angle < impact+140+eps, "sibling veers the other way: %v", m.Angle)
		}
	}
	assert.Equal(t, 1, w.Stats().Splits)
}

func TestAsteroidSmallHitIsDestroyed(t *testing.T) {
	w := newTestWorld(t, quietConfig())

	rock := placeAsteroid(w, 200, 200, 20)
	placeBullet(w, TeamPlayer, 200, 185, 0, 0)
	w.Step()

	_, ok := resolve(t, w, rock)
	assert.False(t, ok)
	for range asteroidIds(w) {
		t.Fatal("no fragment expected")
	}
}

// Drives AsteroidSplitSystem alone with hand-made overlap records.
func TestAsteroidRepeatedSplits(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	space := physics.NewSpace(storage)

	storage.AddSingleton(DefaultConfig())
	storage.AddSingleton(NewRand(3))
	storage.AddSingleton(Stats{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&AsteroidSplitSystem{Space: space, Log: zaptest.NewLogger(t)})

	id := space.Spawn(physics.Transform{X: 500, Y: 500}, asteroidBody(100), Asteroid{}, physics.Motion{})
	ref := storage.CreateEntityRef(id)

	hit := func() {
		id, ok := storage.ResolveEntityRef(ref)
		require.True(t, ok)
		parts, _ := space.PartsMut(id)
		parts.Primary().Overlaps = []physics.Overlap{{
			Self:  physics.OverlapSide{Entity: id, Transform: *parts.Transform},
			Other: physics.OverlapSide{Layer: LayerBulletPlayer, Transform: physics.Transform{X: 500, Y: 600}},
		}}
	}

	radius := 100.0
	var seen []float64
	for {
		hit()
		scheduler.Once(1)

		id, ok := storage.ResolveEntityRef(ref)
		if !ok {
			break
		}
		r := radiusOf(space, id)
		require.Less(t, r, radius, "radius must strictly shrink")
		radius = r
		seen = append(seen, r)

		// Clear the stale record so the next step only sees the new one.
		parts, _ := space.PartsMut(id)
		parts.Primary().Overlaps = nil
	}

	require.Len(t, seen, 4)
	assert.InDelta(t, 100/1.5, seen[0], 1e-9)
	assert.InDelta(t, 100/1.5/1.5/1.5/1.5, seen[3], 1e-9)
	assert.GreaterOrEqual(t, seen[3], 15.0)
	assert.Less(t, seen[3]/1.5, 15.0)

	// One fragment per surviving split.
	fragments := 0
	for range ecs.NewView[struct{ *Asteroid }](storage).Values() {
		fragments++
	}
	assert.Equal(t, 4, fragments)
}

func TestSplitSystemRequiresConfig(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	storage.AddSingleton(NewRand(1))
	storage.AddSingleton(Stats{})

	scheduler := ecs.NewScheduler(storage)
	assert.PanicsWithValue(t,
		"system AsteroidSplitSystem needs singleton game.Config (field Config) but storage has none",
		func() {
			scheduler.Register(&AsteroidSplitSystem{Space: physics.NewSpace(storage), Log: zaptest.NewLogger(t)})
		},
	)

	var cfg *Config
	assert.False(t, storage.ReadSingleton(&cfg), "registration must not invent a zero Config")
}

func TestBulletBounceLimit(t *testing.T) {
	cfg := quietConfig()
	cfg.Walls = []WallConfig{
		{X: 100, Y: 300, HalfW: 5, HalfH: 300},
		{X: 300, Y: 300, HalfW: 5, HalfH: 300},
	}
	w := newTestWorld(t, cfg)

	shot := placeBullet(w, TeamPlayer, 200, 100, 90, 12)
	require.NotNil(t, shot)

	bounces := []int{}
	last := 0
	for range 200 {
		id, ok := resolve(t, w, shot)
		require.True(t, ok)
		before := *ecs.ReadComponent[physics.Bounce](w.Storage(), id)
		require.False(t, before.Spent)

		w.Step()

		id, ok = resolve(t, w, shot)
		if !ok {
			assert.Equal(t, 3, before.Count, "destroyed on the contact after the third bounce")
			break
		}
		if b := ecs.ReadComponent[physics.Bounce](w.Storage(), id); b.Count != last {
			last = b.Count
			bounces = append(bounces, last)
		}
	}

	_, ok := resolve(t, w, shot)
	assert.False(t, ok)
	assert.Equal(t, []int{1, 2, 3}, bounces)
}

func TestPlayerInvulnerabilityWindow(t *testing.T) {
	cfg := quietConfig()
	w := newTestWorld(t, cfg)
	player := playerRef(t, w)

	cx, cy := cfg.Bounds().Center()
	placeAsteroid(w, cx, cy, 30)

	var hitTicks []int
	hp := cfg.PlayerHP
	for tick := 0; tick < 100 && !w.Defeated(); tick++ {
		w.Step()

		id, ok := resolve(t, w, player)
		if !ok {
			hitTicks = append(hitTicks, tick)
			break
		}
		h := ecs.ReadComponent[Health](w.Storage(), id)
		if h.HP != hp {
			hp = h.HP
			hitTicks = append(hitTicks, tick)
			assert.Equal(t, cfg.IframeMax, h.IframeCount)
		}
	}

	assert.Equal(t, []int{0, 20, 40}, hitTicks)
	assert.True(t, w.Defeated())
	assert.Equal(t, 3, w.Stats().PlayerHits)
}

func TestEnemyBulletHitsPlayer(t *testing.T) {
	cfg := quietConfig()
	w := newTestWorld(t, cfg)
	player := playerRef(t, w)

	cx, cy := cfg.Bounds().Center()
	shot := placeBullet(w, TeamEnemy, cx, cy-100, 180, 10)

	for range 12 {
		w.Step()
	}

	_, ok := resolve(t, w, shot)
	assert.False(t, ok)
	id, ok := resolve(t, w, player)
	require.True(t, ok)
	assert.Equal(t, cfg.PlayerHP-1, ecs.ReadComponent[Health](w.Storage(), id).HP)
}

func TestOffscreenCleanup(t *testing.T) {
	w := newTestWorld(t, quietConfig())

	far := w.Storage().Spawn(physics.Transform{X: 2281, Y: 0})
	near := w.Storage().Spawn(physics.Transform{X: 2279, Y: -999})
	farRef := w.Storage().CreateEntityRef(far)
	nearRef := w.Storage().CreateEntityRef(near)

	w.Step()

	_, ok := resolve(t, w, farRef)
	assert.False(t, ok)
	_, ok = resolve(t, w, nearRef)
	assert.True(t, ok)
}

func TestSpawnCount(t *testing.T) {
	counter := 0.0
	total := 0
	for range 50 {
		total += spawnCount(&counter, 50)
	}
	assert.Equal(t, 0, total, "the counter must exceed the threshold")

	assert.Equal(t, 1, spawnCount(&counter, 50))
	assert.Equal(t, 1.0, counter, "threshold is subtracted, not reset")

	counter = 149
	assert.Equal(t, 2, spawnCount(&counter, 50))
	assert.Equal(t, 50.0, counter)
}
