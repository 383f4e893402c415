package game

import (
	"iter"

	"github.com/google/uuid"
	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
	"go.uber.org/zap"
)

// World owns the store and the tick pipeline for one game.
type World struct {
	cfg Config
	log *zap.Logger

	run       uuid.UUID
	defeated  bool
	storage   *ecs.Storage
	space     *physics.Space
	scheduler *ecs.Scheduler

	intent  *ecs.Singleton[Intent]
	stats   *ecs.Singleton[Stats]
	players *ecs.View[playerPos]
	sprites *ecs.View[spriteView]
}

// NewWorld validates cfg and builds a fresh world. A nil logger disables
// logging.
func NewWorld(cfg Config, logger *zap.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &World{cfg: cfg, log: logger}
	w.Reset()
	return w, nil
}

// Reset throws the current state away and starts a new run with the
// configured seed.
func (w *World) Reset() {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)

	w.run = uuid.New()
	w.defeated = false
	w.storage = ecs.NewStorage(registry)
	w.space = physics.NewSpace(w.storage)

	w.storage.AddSingleton(w.cfg)
	w.storage.AddSingleton(NewRand(w.cfg.Seed))
	w.intent = ecs.NewSingleton[Intent](w.storage)
	w.stats = ecs.NewSingleton[Stats](w.storage)
	ecs.NewSingleton[Timers](w.storage)

	w.players = ecs.NewView[playerPos](w.storage)
	w.sprites = ecs.NewView[spriteView](w.storage)

	spawnPlayer(w.space, &w.cfg)
	for _, wall := range w.cfg.Walls {
		spawnWall(w.space, wall)
	}

	w.scheduler = w.buildScheduler()
	w.log.Info("world reset",
		zap.Stringer("run", w.run),
		zap.Uint64("seed", w.cfg.Seed),
		zap.Int("walls", len(w.cfg.Walls)),
	)
}

func (w *World) buildScheduler() *ecs.Scheduler {
	s := ecs.NewScheduler(w.storage)
	log := w.log.With(zap.Stringer("run", w.run))

	s.Register(&AsteroidSpawnSystem{Space: w.space})
	s.Register(&SpinnerSpawnSystem{Space: w.space})
	s.Register(&PlayerControlSystem{Space: w.space})
	s.Register(&SpinnerFireSystem{Space: w.space})
	s.Sync()

	s.Register(&physics.MotionSystem{Space: w.space})
	s.Register(&physics.WrapSystem{Space: w.space, Bounds: w.cfg.Bounds(), Buffer: w.cfg.WrapBuffer})
	s.Sync()

	s.Register(&physics.CollisionSystem{})
	s.Register(&InvulnerabilitySystem{})
	s.Register(&DamageSystem{Log: log})
	s.Register(&AsteroidSplitSystem{Space: w.space, Log: log})
	s.Register(&BulletSystem{})
	s.Register(&OffscreenSystem{})
	return s
}

// Step advances the simulation by one tick.
func (w *World) Step() {
	w.scheduler.Once(1)

	if every := w.cfg.CompactEvery; every > 0 && w.scheduler.Tick()%every == 0 {
		w.storage.Compact()
	}

	if !w.defeated && w.Defeated() {
		w.defeated = true
		stats := w.stats.Get()
		w.log.Info("player defeated",
			zap.Stringer("run", w.run),
			zap.Uint64("tick", w.scheduler.Tick()),
			zap.Int("asteroids", stats.AsteroidsSpawned),
			zap.Int("splits", stats.Splits),
			zap.Int("shots", stats.BulletsFired),
		)
	}
}

// Defeated reports whether no player entity is left.
func (w *World) Defeated() bool {
	for range w.players.Values() {
		return false
	}
	return true
}

// Intent is the input singleton the front end writes into.
func (w *World) Intent() *Intent {
	return w.intent.Get()
}

// AimAt points the intent's aim from the player toward (x, y).
func (w *World) AimAt(x, y float64) {
	for p := range w.players.Values() {
		w.intent.Get().Aim = p.AngleTo(x, y)
		return
	}
}

// Sprites yields every drawable entity in draw order.
func (w *World) Sprites() iter.Seq[Sprite] {
	return spriteSeq(w.sprites)
}

func (w *World) Stats() Stats {
	return *w.stats.Get()
}

func (w *World) Config() Config {
	return w.cfg
}

func (w *World) RunID() string {
	return w.run.String()
}

func (w *World) Tick() uint64 {
	return w.scheduler.Tick()
}

func (w *World) Space() *physics.Space {
	return w.space
}

func (w *World) Storage() *ecs.Storage {
	return w.storage
}

func (w *World) Scheduler() *ecs.Scheduler {
	return w.scheduler
}
