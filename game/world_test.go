package game

import (
	"math"
	"slices"
	"testing"

	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorld(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())

	assert.False(t, w.Defeated())
	assert.NotEmpty(t, w.RunID())
	assert.Equal(t, uint64(0), w.Tick())

	_, err := NewWorld(Config{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAsteroidSpawner(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())

	for range 50 {
		w.Step()
	}
	assert.Equal(t, 0, w.Stats().AsteroidsSpawned)

	w.Step()
	assert.Equal(t, 1, w.Stats().AsteroidsSpawned)

	var ids []ecs.EntityId
	for id := range asteroidIds(w) {
		ids = append(ids, id)
	}
	require.Len(t, ids, 1)

	cfg := w.Config()
	r := radiusOf(w.Space(), ids[0])
	assert.GreaterOrEqual(t, r, cfg.AsteroidMinRadius)
	assert.Less(t, r, cfg.AsteroidMaxRadius)

	m := ecs.ReadComponent[physics.Motion](w.Storage(), ids[0])
	assert.GreaterOrEqual(t, m.Speed, cfg.AsteroidMinSpeed)
	assert.Less(t, m.Speed, cfg.AsteroidMaxSpeed)
}

// onSpawnRing reports whether t lies on the ring edgePoint draws from for a
// shape of radius r.
func onSpawnRing(b physics.Bounds, t physics.Transform, r float64) bool {
	within := func(v, lo, hi float64) bool { return v >= lo && v < hi }
	if t.X == b.MinX-r || t.X == b.MaxX-1+r {
		return within(t.Y, b.MinY-r, b.MaxY+r)
	}
	if t.Y == b.MinY-r || t.Y == b.MaxY-1+r {
		return within(t.X, b.MinX-r, b.MaxX+r)
	}
	return false
}

func angleGap(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	return min(d, 360-d)
}

func TestAsteroidSpawnSystem(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	cfg := w.Config()
	cx, cy := cfg.Bounds().Center()

	ecs.NewSingleton[Timers](w.Storage()).Get().Asteroid = 2*cfg.AsteroidEvery + 0.5
	scheduler := ecs.NewScheduler(w.Storage())
	scheduler.Register(&AsteroidSpawnSystem{Space: w.Space()})
	scheduler.Once(1)

	var ids []ecs.EntityId
	for id := range asteroidIds(w) {
		ids = append(ids, id)
	}
	require.Len(t, ids, 2)
	assert.Equal(t, 2, w.Stats().AsteroidsSpawned)
	assert.InDelta(t, 1.5, ecs.NewSingleton[Timers](w.Storage()).Get().Asteroid, 1e-9)

	for _, id := range ids {
		r := radiusOf(w.Space(), id)
		assert.GreaterOrEqual(t, r, cfg.AsteroidMinRadius)
		assert.Less(t, r, cfg.AsteroidMaxRadius)

		tr := ecs.ReadComponent[physics.Transform](w.Storage(), id)
		assert.True(t, onSpawnRing(cfg.Bounds(), *tr, r), "asteroid at %v, %v is off the spawn ring", tr.X, tr.Y)

		m := ecs.ReadComponent[physics.Motion](w.Storage(), id)
		assert.LessOrEqual(t, angleGap(m.Angle, tr.AngleTo(cx, cy)), cfg.AimJitter)
		assert.GreaterOrEqual(t, m.Speed, cfg.AsteroidMinSpeed)
		assert.Less(t, m.Speed, cfg.AsteroidMaxSpeed)
	}
}

func TestSpinnerSpawnSystem(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	cfg := w.Config()
	cx, cy := cfg.Bounds().Center()

	ecs.NewSingleton[Timers](w.Storage()).Get().Spinner = 2*cfg.SpinnerEvery + 0.5
	scheduler := ecs.NewScheduler(w.Storage())
	scheduler.Register(&SpinnerSpawnSystem{Space: w.Space()})
	scheduler.Once(1)

	spinners := ecs.NewView[struct {
		ecs.EntityId
		*Spinner
		*physics.Transform
		*physics.Motion
	}](w.Storage())

	n := 0
	for s := range spinners.Values() {
		n++
		assert.True(t, onSpawnRing(cfg.Bounds(), *s.Transform, cfg.SpinnerRadius), "spinner at %v, %v is off the spawn ring", s.X, s.Y)
		assert.LessOrEqual(t, angleGap(s.Angle, s.Transform.AngleTo(cx, cy)), cfg.AimJitter)
		assert.Equal(t, cfg.SpinnerSpeed, s.Speed)
		assert.Equal(t, cfg.SpinnerCurve, math.Abs(s.Curve))
		assert.Equal(t, cfg.SpinnerRadius, radiusOf(w.Space(), s.EntityId))
	}
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, w.Stats().SpinnersSpawned)
}

func TestSpawnersCatchUpInOneStep(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	cfg := w.Config()

	timers := ecs.NewSingleton[Timers](w.Storage()).Get()
	timers.Asteroid = 2*cfg.AsteroidEvery + 0.5
	timers.Spinner = 2*cfg.SpinnerEvery + 0.5
	w.Step()

	assert.Equal(t, 2, w.Stats().AsteroidsSpawned)
	assert.Equal(t, 2, w.Stats().SpinnersSpawned)
}

func TestPlayerFires(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	cfg := w.Config()

	cx, cy := cfg.Bounds().Center()
	w.AimAt(cx+100, cy)
	assert.InDelta(t, 90, w.Intent().Aim, 1e-9)

	w.Intent().Fire = true
	for range cfg.PlayerCooldown + 1 {
		w.Step()
	}
	assert.Equal(t, 2, w.Stats().BulletsFired)

	for s := range w.Sprites() {
		if s.Kind == SpriteBullet {
			assert.Greater(t, s.X, cx)
			assert.InDelta(t, 90, s.Angle, 1e-9)
		}
	}
}

func TestPlayerMoves(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	player := playerRef(t, w)
	cfg := w.Config()
	cx, cy := cfg.Bounds().Center()

	w.Intent().MoveRight = true
	w.Intent().MoveUp = true
	for range 4 {
		w.Step()
	}

	id, ok := resolve(t, w, player)
	require.True(t, ok)
	tr, _ := w.Space().Transform(id)
	assert.Equal(t, physics.Transform{X: cx + 4*cfg.PlayerSpeed, Y: cy - 4*cfg.PlayerSpeed}, tr)
}

func TestSpritesDrawOrder(t *testing.T) {
	cfg := quietConfig()
	cfg.Walls = []WallConfig{{X: 50, Y: 50, HalfW: 10, HalfH: 10}}
	w := newTestWorld(t, cfg)
	placeBullet(w, TeamPlayer, 10, 10, 0, 0)
	placeAsteroid(w, 900, 100, 50)

	var kinds []SpriteKind
	for s := range w.Sprites() {
		kinds = append(kinds, s.Kind)
		if s.Kind == SpriteAsteroid {
			assert.InDelta(t, 100.0/1024, s.Scale(1024), 1e-12)
		}
	}
	assert.Equal(t, []SpriteKind{SpriteAsteroid, SpriteWall, SpritePlayer, SpriteBullet}, kinds)
	assert.True(t, slices.IsSorted(kinds))
}

func TestWorldIsDeterministic(t *testing.T) {
	run := func() []Sprite {
		w := newTestWorld(t, DefaultConfig())
		w.Intent().Fire = true
		for i := range 700 {
			w.Intent().Aim = float64(i * 7 % 360)
			w.Step()
		}
		return slices.Collect(w.Sprites())
	}

	first, second := run(), run()
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestWorldReset(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	run := w.RunID()
	for range 120 {
		w.Step()
	}
	require.NotZero(t, w.Stats().AsteroidsSpawned)

	w.Reset()
	assert.NotEqual(t, run, w.RunID())
	assert.Equal(t, Stats{}, w.Stats())
	assert.Equal(t, uint64(0), w.Tick())
	assert.False(t, w.Defeated())
}
