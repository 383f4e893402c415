package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/roids/game"
	"github.com/plus3/roids/physics"

	debugui_ebiten "github.com/plus3/roids/ecs/debugui/ebiten"
)

var background = color.RGBA{0x10, 0x10, 0x18, 0xff}

// Game adapts a World to ebiten. It has two scenes: playing, and the game
// over screen shown once the player is gone.
type Game struct {
	world   *game.World
	overlay *debugui_ebiten.Overlay
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.overlay != nil {
		g.overlay.Update()
	}

	if g.world.Defeated() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.world.Reset()
		}
		return nil
	}

	g.readInput()
	g.world.Step()
	return nil
}

func (g *Game) readInput() {
	keys, mouse := ebiten.IsKeyPressed, ebiten.IsMouseButtonPressed
	if g.overlay != nil && g.overlay.CapturingKeyboard() {
		keys = func(ebiten.Key) bool { return false }
	}
	if g.overlay != nil && g.overlay.CapturingMouse() {
		mouse = func(ebiten.MouseButton) bool { return false }
	}

	aim := g.world.Intent().Aim
	*g.world.Intent() = intentFrom(keys, mouse, aim)

	if g.overlay == nil || !g.overlay.CapturingMouse() {
		x, y := ebiten.CursorPosition()
		g.world.AimAt(float64(x), float64(y))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for s := range g.world.Sprites() {
		drawSprite(screen, s)
	}
	if g.world.Defeated() {
		drawGameOver(screen, g.world.Stats())
	} else {
		stats := g.world.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("asteroids %d  splits %d  destroyed %d",
			stats.AsteroidsSpawned, stats.Splits, stats.Destroyed))
	}

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	cfg := g.world.Config()
	return int(cfg.Width), int(cfg.Height)
}

func drawSprite(screen *ebiten.Image, s game.Sprite) {
	x, y := float32(s.X), float32(s.Y)
	switch s.Shape.Kind {
	case physics.KindCircle:
		vector.DrawFilledCircle(screen, x, y, float32(s.Shape.Radius), s.Tint, true)
	case physics.KindBox:
		w, h := float32(s.Shape.HalfW), float32(s.Shape.HalfH)
		vector.DrawFilledRect(screen, x-w, y-h, 2*w, 2*h, s.Tint, false)
	}

	if s.Kind == game.SpriteSpinner || s.Kind == game.SpriteBullet {
		tip := physics.HeadingVector(s.Angle).Scale(s.Shape.Extent() * 1.5)
		vector.StrokeLine(screen, x, y, x+float32(tip.X), y+float32(tip.Y), 2, s.Tint, true)
	}
}

func drawGameOver(screen *ebiten.Image, stats game.Stats) {
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), color.RGBA{0, 0, 0, 0xa0}, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"GAME OVER\n\nasteroids %d\nsplits %d\nshots %d\n\npress R to play again",
		stats.AsteroidsSpawned, stats.Splits, stats.BulletsFired,
	), b.Dx()/2-70, b.Dy()/2-50)
}
