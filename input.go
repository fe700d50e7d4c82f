package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/darkdepths/obj"
)

var (
	leftKeys    = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	rightKeys   = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	jumpKeys    = []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp, ebiten.KeySpace}
	confirmKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter}
	choiceKeys  = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}
)

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// readInput samples the held movement keys for this tick.
func readInput() obj.InputState {
	var in obj.InputState
	if anyPressed(leftKeys) {
		in.MoveX--
	}
	if anyPressed(rightKeys) {
		in.MoveX++
	}
	in.Jump = anyPressed(jumpKeys)
	return in
}

// choicePressed returns the option index of a number key pressed this tick.
func choicePressed() (int, bool) {
	for i, k := range choiceKeys {
		if inpututil.IsKeyJustPressed(k) {
			return i, true
		}
	}
	return 0, false
}
