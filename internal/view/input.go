package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeySource reports edge-triggered key presses for the current frame.
type KeySource interface {
	JustPressed(k ebiten.Key) bool
}

// keyboard reads the real keyboard.
type keyboard struct{}

func (keyboard) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// triggerInput feeds a KeySource to the battle as its per-tick input, so
// holding the cheer key fires once rather than every frame.
type triggerInput struct {
	keys KeySource
}

func (ti triggerInput) IsKeyPressed(k ebiten.Key) bool { return ti.keys.JustPressed(k) }
