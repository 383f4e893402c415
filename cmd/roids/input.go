package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/roids/game"
)

// intentFrom maps the pressed keys and buttons to a game intent. WASD and
// the arrow keys move, space or the left mouse button fire.
func intentFrom(key func(ebiten.Key) bool, button func(ebiten.MouseButton) bool, aim float64) game.Intent {
	return game.Intent{
		MoveLeft:  key(ebiten.KeyA) || key(ebiten.KeyArrowLeft),
		MoveRight: key(ebiten.KeyD) || key(ebiten.KeyArrowRight),
		MoveUp:    key(ebiten.KeyW) || key(ebiten.KeyArrowUp),
		MoveDown:  key(ebiten.KeyS) || key(ebiten.KeyArrowDown),
		Fire:      key(ebiten.KeySpace) || button(ebiten.MouseButtonLeft),
		Aim:       aim,
	}
}
