package game

import (
	"image/color"
	"math/rand/v2"

	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
)

type Asteroid struct{}

type Player struct{}

// Spinner is an enemy that flies a curved path and shoots at the player.
type Spinner struct{}

type Wall struct{}

type Bullet struct {
	Team Team
}

// Health is removed one point per qualifying hit. After a hit the entity
// ignores damage until IframeCount has ticked back down to zero.
type Health struct {
	HP          int
	IframeCount int
	IframeMax   int
	// DamagedBy is the set of layers that hurt this entity.
	DamagedBy uint64
}

// Invulnerable reports whether a hit would be ignored right now.
func (h Health) Invulnerable() bool {
	return h.IframeCount > 0
}

type Gun struct {
	Cooldown int
	Timer    int
	Speed    float64
}

// Ready counts the gun down one tick and reports whether it may fire.
func (g *Gun) Ready() bool {
	if g.Timer > 0 {
		g.Timer--
	}
	return g.Timer == 0
}

// Look carries render hints.
type Look struct {
	Kind  SpriteKind
	Color color.RGBA
}

// Intent is written by the input layer once per frame.
type Intent struct {
	MoveLeft, MoveRight bool
	MoveUp, MoveDown    bool
	Fire                bool
	// Aim is a heading in degrees, 0 up and clockwise.
	Aim float64
}

// Timers holds the spawner accumulators.
type Timers struct {
	Asteroid float64
	Spinner  float64
}

// Rand is the world's seeded random source.
type Rand struct {
	*rand.Rand
}

func NewRand(seed uint64) Rand {
	return Rand{rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Uniform returns a value in [lo, hi).
func (r Rand) Uniform(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Stats counts lifecycle events since the last reset.
type Stats struct {
	AsteroidsSpawned int
	SpinnersSpawned  int
	Splits           int
	Destroyed        int
	BulletsFired     int
	PlayerHits       int
}

var (
	colorAsteroid  = color.RGBA{0xb0, 0xa8, 0x9c, 0xff}
	colorPlayer    = color.RGBA{0x64, 0x95, 0xed, 0xff}
	colorSpinner   = color.RGBA{0xe0, 0x4a, 0x4a, 0xff}
	colorBullet    = color.RGBA{0xff, 0xf0, 0x90, 0xff}
	colorEnemyShot = color.RGBA{0xff, 0x80, 0x40, 0xff}
	colorWall      = color.RGBA{0x50, 0x50, 0x60, 0xff}
)

// RegisterComponents registers the physics and gameplay components.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	physics.RegisterComponents(registry)
	ecs.RegisterComponent[Asteroid](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Spinner](registry)
	ecs.RegisterComponent[Wall](registry)
	ecs.RegisterComponent[Bullet](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Gun](registry)
	ecs.RegisterComponent[Look](registry)
}
