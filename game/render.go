package game

import (
	"fmt"
	"image/color"
	"iter"
	"slices"

	"github.com/plus3/roids/ecs"
	"github.com/plus3/roids/physics"
)

// SpriteKind also fixes the draw order: lower kinds are drawn first.
type SpriteKind uint8

const (
	SpriteAsteroid SpriteKind = iota
	SpriteWall
	SpritePlayer
	SpriteSpinner
	SpriteBullet
)

func (k SpriteKind) String() string {
	switch k {
	case SpriteAsteroid:
		return "asteroid"
	case SpriteWall:
		return "wall"
	case SpritePlayer:
		return "player"
	case SpriteSpinner:
		return "spinner"
	case SpriteBullet:
		return "bullet"
	default:
		return fmt.Sprintf("SpriteKind(%d)", uint8(k))
	}
}

// Sprite is everything a renderer needs to draw one entity.
type Sprite struct {
	Entity ecs.EntityId
	Kind   SpriteKind
	Shape  physics.Shape
	X, Y   float64
	// Angle is the motion heading in degrees, 0 up and clockwise.
	Angle float64
	Tint  color.RGBA
}

// Scale returns the factor that fits a square texture of textureSize pixels
// to the sprite's shape.
func (s Sprite) Scale(textureSize float64) float64 {
	if textureSize <= 0 {
		return 0
	}
	return 2 * s.Shape.Extent() / textureSize
}

var flashTint = color.RGBA{0xff, 0xff, 0xff, 0x80}

type spriteView struct {
	ecs.EntityId
	*physics.Transform
	*Look
	Body   *physics.Body   `ecs:"optional"`
	Motion *physics.Motion `ecs:"optional"`
	Health *Health         `ecs:"optional"`
}

func makeSprite(v spriteView) Sprite {
	s := Sprite{
		Entity: v.EntityId,
		Kind:   v.Kind,
		X:      v.X,
		Y:      v.Y,
		Tint:   v.Color,
	}
	if v.Body != nil {
		if c := v.Body.Primary(); c != nil {
			s.Shape = c.Shape
		}
	}
	if v.Motion != nil {
		s.Angle = v.Motion.Angle
	}
	// Blink every four ticks while invulnerable.
	if v.Health != nil && v.Health.Invulnerable() && (v.Health.IframeCount/4)%2 == 0 {
		s.Tint = flashTint
	}
	return s
}

func sortSprites(sprites []Sprite) {
	slices.SortStableFunc(sprites, func(a, b Sprite) int {
		return int(a.Kind) - int(b.Kind)
	})
}

// spriteSeq yields sprites in draw order. Rendering reads the store and never
// changes it.
func spriteSeq(view *ecs.View[spriteView]) iter.Seq[Sprite] {
	return func(yield func(Sprite) bool) {
		var sprites []Sprite
		for v := range view.Values() {
			sprites = append(sprites, makeSprite(v))
		}
		sortSprites(sprites)
		for _, s := range sprites {
			if !yield(s) {
				return
			}
		}
	}
}
