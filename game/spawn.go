package game

import (
	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
)

type playerPos struct {
	*Player
	*physics.Transform
}

func asteroidBody(radius float64) physics.Body {
	return physics.NewBody(physics.Collider{
		Shape:        physics.Circle(radius),
		Layer:        LayerAsteroid,
		CollidesWith: LayerBulletPlayer,
		Sensor:       true,
	})
}

func spawnAsteroid(space *physics.Space, cmds *ecs.Commands, t physics.Transform, body physics.Body, m physics.Motion) {
	space.SpawnDeferred(cmds, t, body,
		Asteroid{},
		m,
		physics.Wrap{},
		Look{Kind: SpriteAsteroid, Color: colorAsteroid},
	)
}

func spawnBullet(space *physics.Space, cmds *ecs.Commands, cfg *Config, team Team, t physics.Transform, angle, speed float64) {
	layer, mask := bulletLayers(team)
	body := physics.NewBody(physics.Collider{
		Shape:        physics.Circle(cfg.BulletRadius),
		Layer:        layer,
		CollidesWith: mask,
		Sensor:       true,
	})
	m := physics.Motion{Speed: speed, Angle: angle}

	if team == TeamEnemy {
		space.SpawnDeferred(cmds, t, body, Bullet{Team: team}, m, Look{Kind: SpriteBullet, Color: colorEnemyShot})
		return
	}
	space.SpawnDeferred(cmds, t, body,
		Bullet{Team: team},
		m,
		physics.Bounce{Limit: cfg.BulletBounceLimit},
		Look{Kind: SpriteBullet, Color: colorBullet},
	)
}

func spawnPlayer(space *physics.Space, cfg *Config) ecs.EntityId {
	const damagedBy = LayerAsteroid | LayerEnemy | LayerBulletEnemy

	x, y := cfg.Bounds().Center()
	return space.Spawn(
		physics.Transform{X: x, Y: y},
		physics.NewBody(physics.Collider{
			Shape:        physics.Circle(cfg.PlayerRadius),
			Layer:        LayerPlayer,
			CollidesWith: damagedBy,
			Sensor:       true,
		}),
		Player{},
		physics.Motion{},
		physics.Wrap{},
		Health{HP: cfg.PlayerHP, IframeMax: cfg.IframeMax, DamagedBy: damagedBy},
		Gun{Cooldown: cfg.PlayerCooldown, Speed: cfg.BulletSpeed},
		Look{Kind: SpritePlayer, Color: colorPlayer},
	)
}

func spawnWall(space *physics.Space, w WallConfig) ecs.EntityId {
	return space.Spawn(
		physics.Transform{X: w.X, Y: w.Y},
		physics.NewBody(physics.Collider{
			Shape: physics.Box(w.HalfW, w.HalfH),
			Layer: LayerWall,
		}),
		Wall{},
		Look{Kind: SpriteWall, Color: colorWall},
	)
}

// edgePoint picks a point just outside a random side of b, pushed out by r so
// a shape of that radius starts fully hidden.
func edgePoint(rng Rand, b physics.Bounds, r float64) physics.Transform {
	if rng.IntN(2) == 0 {
		x := b.MinX - r
		if rng.IntN(2) == 0 {
			x = b.MaxX - 1 + r
		}
		return physics.Transform{X: x, Y: rng.Uniform(b.MinY-r, b.MaxY+r)}
	}

	y := b.MinY - r
	if rng.IntN(2) == 0 {
		y = b.MaxY - 1 + r
	}
	return physics.Transform{X: rng.Uniform(b.MinX-r, b.MaxX+r), Y: y}
}

// aimTarget is the first live player, or the centre of the world.
func aimTarget(players *ecs.Query[playerPos], cfg *Config) (float64, float64) {
	for p := range players.Values() {
		return p.X, p.Y
	}
	return cfg.Bounds().Center()
}

// spawnCount advances a spawner accumulator by one tick and returns how many
// spawns are due. The threshold is subtracted, not reset, so long ticks can
// produce several spawns.
func spawnCount(counter *float64, threshold float64) int {
	*counter++
	n := 0
	for *counter > threshold {
		*counter -= threshold
		n++
	}
	return n
}

// AsteroidSpawnSystem brings in asteroids from the edges, aimed roughly at
// the player.
type AsteroidSpawnSystem struct {
	Space   *physics.Space
	Config  ecs.Singleton[Config]
	Timers  ecs.Singleton[Timers]
	Rand    ecs.Singleton[Rand]
	Stats   ecs.Singleton[Stats]
	Players ecs.Query[playerPos]
}

func (s *AsteroidSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	cfg, rng := s.Config.Get(), *s.Rand.Get()

	for range spawnCount(&s.Timers.Get().Asteroid, cfg.AsteroidEvery) {
		radius := rng.Uniform(cfg.AsteroidMinRadius, cfg.AsteroidMaxRadius)
		t := edgePoint(rng, cfg.Bounds(), radius)

		tx, ty := aimTarget(&s.Players, cfg)
		m := physics.Motion{
			Angle: t.AngleTo(tx, ty) + rng.Uniform(-cfg.AimJitter, cfg.AimJitter),
			Speed: rng.Uniform(cfg.AsteroidMinSpeed, cfg.AsteroidMaxSpeed),
		}

		spawnAsteroid(s.Space, frame.Commands, t, asteroidBody(radius), m)
		s.Stats.Get().AsteroidsSpawned++
	}
}

// SpinnerSpawnSystem brings in enemies that curve toward the player.
type SpinnerSpawnSystem struct {
	Space   *physics.Space
	Config  ecs.Singleton[Config]
	Timers  ecs.Singleton[Timers]
	Rand    ecs.Singleton[Rand]
	Stats   ecs.Singleton[Stats]
	Players ecs.Query[playerPos]
}

func (s *SpinnerSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	cfg, rng := s.Config.Get(), *s.Rand.Get()

	for range spawnCount(&s.Timers.Get().Spinner, cfg.SpinnerEvery) {
		t := edgePoint(rng, cfg.Bounds(), cfg.SpinnerRadius)
		tx, ty := aimTarget(&s.Players, cfg)

		curve := cfg.SpinnerCurve
		if rng.IntN(2) == 0 {
			curve = -curve
		}

		s.Space.SpawnDeferred(frame.Commands, t,
			physics.NewBody(physics.Collider{
				Shape:        physics.Circle(cfg.SpinnerRadius),
				Layer:        LayerEnemy,
				CollidesWith: LayerBulletPlayer,
				Sensor:       true,
			}),
			Spinner{},
			physics.Motion{
				Angle: t.AngleTo(tx, ty) + rng.Uniform(-cfg.AimJitter, cfg.AimJitter),
				Speed: cfg.SpinnerSpeed,
				Curve: curve,
				Accel: cfg.SpinnerAccel,
			},
			Health{HP: 1, DamagedBy: LayerBulletPlayer},
			Gun{Cooldown: cfg.SpinnerCooldown, Timer: cfg.SpinnerCooldown, Speed: cfg.BulletSpeed / 2},
			Look{Kind: SpriteSpinner, Color: colorSpinner},
		)
		s.Stats.Get().SpinnersSpawned++
	}
}
