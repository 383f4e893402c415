package game

import (
	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
)

// PlayerControlSystem turns the frame's Intent into player motion and shots.
type PlayerControlSystem struct {
	Space   *physics.Space
	Config  ecs.Singleton[Config]
	Intent  ecs.Singleton[Intent]
	Stats   ecs.Singleton[Stats]
	Players ecs.Query[struct {
		*Player
		*physics.Transform
		*physics.Motion
		*Gun
	}]
}

func axis(neg, pos bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	default:
		return 0
	}
}

func (s *PlayerControlSystem) Execute(frame *ecs.UpdateFrame) {
	cfg, intent := s.Config.Get(), s.Intent.Get()

	for p := range s.Players.Values() {
		p.Motion.DX = axis(intent.MoveLeft, intent.MoveRight) * cfg.PlayerSpeed
		p.Motion.DY = axis(intent.MoveUp, intent.MoveDown) * cfg.PlayerSpeed

		if !p.Gun.Ready() || !intent.Fire {
			continue
		}
		spawnBullet(s.Space, frame.Commands, cfg, TeamPlayer, *p.Transform, intent.Aim, p.Gun.Speed)
		p.Gun.Timer = p.Gun.Cooldown
		s.Stats.Get().BulletsFired++
	}
}

// SpinnerFireSystem makes spinners shoot at the player whenever their gun
// has cooled down. Without a player they hold fire.
type SpinnerFireSystem struct {
	Space    *physics.Space
	Config   ecs.Singleton[Config]
	Players  ecs.Query[playerPos]
	Spinners ecs.Query[struct {
		*Spinner
		*physics.Transform
		*Gun
	}]
}

func (s *SpinnerFireSystem) Execute(frame *ecs.UpdateFrame) {
	var target *physics.Transform
	for p := range s.Players.Values() {
		target = p.Transform
		break
	}
	if target == nil {
		return
	}

	for sp := range s.Spinners.Values() {
		if !sp.Gun.Ready() {
			continue
		}
		angle := sp.Transform.AngleTo(target.X, target.Y)
		spawnBullet(s.Space, frame.Commands, s.Config.Get(), TeamEnemy, *sp.Transform, angle, sp.Gun.Speed)
		sp.Gun.Timer = sp.Gun.Cooldown
	}
}
