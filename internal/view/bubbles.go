package view

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Cheer-Sense/internal/battle"
)

// bubbleLifetime is how many ticks a bubble stays up (the 2 s cheer window).
const bubbleLifetime = 120

var cheerPhrases = []string{"Huzzah!", "Hurrah!", "Victory!", "For glory!"}

// bubble is a speech bubble above a cheering soldier.
type bubble struct {
	soldier *battle.Soldier
	text    string
	age     int
	yOff    float32 // stacked offset when a soldier has more than one
}

// collectBubbles turns new voice cues into bubbles.
func (g *Game) collectBubbles() {
	for _, s := range g.sim.Battle.Soldiers() {
		seen := g.heard[s.ID()]
		for seen < s.Voices() {
			seen++
			var yOff float32
			for _, b := range g.bubbles {
				if b.soldier == s {
					yOff -= 18
				}
			}
			g.bubbles = append(g.bubbles, &bubble{
				soldier: s,
				text:    cheerPhrases[(s.ID()+seen)%len(cheerPhrases)],
				yOff:    yOff,
			})
		}
		g.heard[s.ID()] = seen
	}
}

// ageBubbles ticks bubbles and prunes expired or orphaned ones.
func (g *Game) ageBubbles() {
	if g.paused {
		return
	}
	kept := g.bubbles[:0]
	for _, b := range g.bubbles {
		b.age++
		if b.age < bubbleLifetime && b.soldier.Active() {
			kept = append(kept, b)
		}
	}
	g.bubbles = kept
}

func (g *Game) drawBubbles(screen *ebiten.Image) {
	const charW = 7
	const lineH = 13
	const padX = 5
	const padY = 3

	for _, b := range g.bubbles {
		progress := float64(b.age) / float64(bubbleLifetime)
		alpha := float32(1.0)
		if progress > 0.70 {
			alpha = float32(1.0 - (progress-0.70)/0.30)
		}
		if alpha < 0.05 {
			continue
		}

		sx, sy := g.worldToScreen(b.soldier.Position())
		bgW := float32(len(b.text)*charW + padX*2)
		bgH := float32(lineH + padY*2)
		bgX := sx - bgW/2
		bgY := sy - soldierPixelRadius - bgH - 6 + b.yOff

		vector.FillRect(screen, bgX, bgY, bgW, bgH, color.RGBA{R: 20, G: 22, B: 20, A: uint8(210 * alpha)}, false)
		accent := teamColour(b.soldier)
		accent.A = uint8(220 * alpha)
		vector.FillRect(screen, bgX, bgY, 3, bgH, accent, false)
		vector.StrokeRect(screen, bgX, bgY, bgW, bgH, 0.5,
			color.RGBA{R: 100, G: 100, B: 100, A: uint8(80 * alpha)}, false)

		g.print(screen, b.text, float64(bgX+padX+2), float64(bgY+padY),
			color.RGBA{R: 255, G: 236, B: 150, A: uint8(255 * alpha)})

		vector.StrokeLine(screen, sx, bgY+bgH, sx, sy-soldierPixelRadius,
			0.5, color.RGBA{R: 100, G: 100, B: 100, A: uint8(60 * alpha)}, false)
	}
}
