package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lowwcrystal/go-mmo-client/protocol"
)

// keyBindings maps the fixed key set to cardinal move directions. Arrows and
// WASD are equivalent. A slice keeps the dispatch order deterministic.
var keyBindings = []struct {
	key ebiten.Key
	dir string
}{
	{ebiten.KeyArrowUp, protocol.DirUp},
	{ebiten.KeyArrowDown, protocol.DirDown},
	{ebiten.KeyArrowLeft, protocol.DirLeft},
	{ebiten.KeyArrowRight, protocol.DirRight},
	{ebiten.KeyW, protocol.DirUp},
	{ebiten.KeyS, protocol.DirDown},
	{ebiten.KeyA, protocol.DirLeft},
	{ebiten.KeyD, protocol.DirRight},
}

// pollInput turns this frame's key transitions into movement intents: a move
// per just-pressed bound key, and a stop if any bound key was released. The
// pressed/released probes are injected so tests run without a real keyboard.
func pollInput(pressed, released func(ebiten.Key) bool) (moves []string, stop bool) {
	for _, b := range keyBindings {
		if pressed(b.key) {
			moves = append(moves, b.dir)
		}
		if released(b.key) {
			stop = true
		}
	}
	return moves, stop
}
