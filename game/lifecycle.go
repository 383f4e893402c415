package game

import (
	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
	"go.uber.org/zap"
)

// InvulnerabilitySystem counts every invulnerability window down by one.
// It runs before DamageSystem, so a hit taken on tick T blocks further
// damage through tick T+IframeMax-1.
type InvulnerabilitySystem struct {
	Healths ecs.Query[struct{ *Health }]
}

func (s *InvulnerabilitySystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Healths.Values() {
		if item.IframeCount > 0 {
			item.IframeCount--
		}
	}
}

// DamageSystem applies one point of damage to entities overlapping a layer
// they are damaged by, unless they are invulnerable. Entities at zero hp are
// destroyed.
type DamageSystem struct {
	Log     *zap.Logger
	Stats   ecs.Singleton[Stats]
	Targets ecs.Query[struct {
		ecs.EntityId
		*Health
		*physics.Body
		Player *Player `ecs:"optional"`
	}]
}

func (s *DamageSystem) Execute(frame *ecs.UpdateFrame) {
	stats := s.Stats.Get()

	for item := range s.Targets.Values() {
		c := item.Primary()
		if c == nil || item.Health.Invulnerable() {
			continue
		}
		o, hit := c.OverlapsLayer(item.DamagedBy)
		if !hit {
			continue
		}

		item.HP--
		item.IframeCount = item.IframeMax
		if item.Player != nil {
			stats.PlayerHits++
		}
		s.Log.Debug("hit",
			zap.Stringer("entity", item.EntityId),
			zap.Stringer("by", o.Other.Entity),
			zap.Int("hp", item.HP),
		)

		if item.HP <= 0 {
			frame.Commands.Delete(item.EntityId)
			stats.Destroyed++
			s.Log.Debug("destroyed", zap.Stringer("entity", item.EntityId), zap.String("reason", "health"))
		}
	}
}

// AsteroidSplitSystem shrinks asteroids hit by player bullets. Asteroids that
// fall below the minimum radius are destroyed; the rest split in two, both
// veering away from the impact heading in opposite directions.
type AsteroidSplitSystem struct {
	Space     *physics.Space
	Log       *zap.Logger
	Config    ecs.Singleton[Config]
	Rand      ecs.Singleton[Rand]
	Stats     ecs.Singleton[Stats]
	Asteroids ecs.Query[struct {
		ecs.EntityId
		*Asteroid
		*physics.Transform
		*physics.Body
		*physics.Motion
	}]
}

func (s *AsteroidSplitSystem) Execute(frame *ecs.UpdateFrame) {
	cfg, rng, stats := s.Config.Get(), *s.Rand.Get(), s.Stats.Get()

	for a := range s.Asteroids.Values() {
		c := a.Primary()
		if c == nil {
			continue
		}
		o, hit := c.OverlapsLayer(LayerBulletPlayer)
		if !hit {
			continue
		}

		impact := o.ImpactAngle()
		c.Shape.SetRadius(c.Shape.Radius / cfg.SplitDivisor)

		if c.Shape.Radius < cfg.SplitMinRadius {
			frame.Commands.Delete(a.EntityId)
			stats.Destroyed++
			s.Log.Debug("destroyed", zap.Stringer("entity", a.EntityId), zap.String("reason", "split"))
			continue
		}

		sibling := *a.Motion
		a.Motion.Angle = impact - rng.Uniform(0, cfg.SplitSpread)
		sibling.Angle = impact + rng.Uniform(0, cfg.SplitSpread)

		spawnAsteroid(s.Space, frame.Commands, *a.Transform, a.Body.Clone(), sibling)
		stats.Splits++
		s.Log.Debug("split",
			zap.Stringer("entity", a.EntityId),
			zap.Float64("radius", c.Shape.Radius),
			zap.Float64("impact", impact),
		)
	}
}

// BulletSystem removes bullets that hit something or ran out of bounces.
type BulletSystem struct {
	Bullets ecs.Query[struct {
		ecs.EntityId
		*Bullet
		*physics.Body
		Bounce *physics.Bounce `ecs:"optional"`
	}]
}

func (s *BulletSystem) Execute(frame *ecs.UpdateFrame) {
	for b := range s.Bullets.Values() {
		c := b.Primary()
		hit := c != nil && len(c.Overlaps) > 0
		spent := b.Bounce != nil && b.Bounce.Spent
		if hit || spent {
			frame.Commands.Delete(b.EntityId)
		}
	}
}

// OffscreenSystem destroys anything that drifted far outside the world.
type OffscreenSystem struct {
	Config ecs.Singleton[Config]
	Stats  ecs.Singleton[Stats]
	Things ecs.Query[struct {
		ecs.EntityId
		*physics.Transform
	}]
}

func (s *OffscreenSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get()
	limit := cfg.Bounds().Grow(cfg.OffscreenMargin)

	for item := range s.Things.Values() {
		if !limit.Contains(item.X, item.Y) {
			frame.Commands.Delete(item.EntityId)
			s.Stats.Get().Destroyed++
		}
	}
}
