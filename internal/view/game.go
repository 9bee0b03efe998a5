// Package view renders a battle.Sim with ebiten and maps the keyboard onto
// it: the configured cheer key, K to kill an enemy for the player, Tab to
// switch scenario.
package view

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Cheer-Sense/internal/battle"
	"github.com/Garsondee/Cheer-Sense/internal/cheer"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720

	panelWidth     = 380
	pixelsPerMetre = 12.0
	tickDT         = 1.0 / 60
)

// Game is the ebiten.Game for the cheer viewer.
type Game struct {
	cfg       cheer.Config
	seed      int64
	scenarios []battle.Scenario
	current   int

	sim   *battle.Sim
	keys  KeySource
	voice battle.VoiceSink
	face  text.Face

	bubbles []*bubble
	heard   map[int]int // soldier ID -> voice cues already turned into bubbles

	paused  bool
	showHUD bool
	tick    int
}

// Option configures a Game.
type Option func(*Game)

// WithKeySource replaces the keyboard.
func WithKeySource(k KeySource) Option {
	return func(g *Game) { g.keys = k }
}

// WithVoice routes cheer cues to v.
func WithVoice(v battle.VoiceSink) Option {
	return func(g *Game) { g.voice = v }
}

// WithSeed sets the seed of the first scenario.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.seed = seed }
}

// WithScenario starts on the named scenario. Unknown names keep the first.
func WithScenario(name string) Option {
	return func(g *Game) {
		for i, sc := range g.scenarios {
			if sc.Name == name {
				g.current = i
				return
			}
		}
		log.Printf("[view] Warning: unknown scenario %q, starting with %q", name, g.scenarios[0].Name)
	}
}

// New builds the viewer and loads the first scenario.
func New(cfg cheer.Config, opts ...Option) *Game {
	g := &Game{
		cfg:       cfg,
		seed:      1,
		scenarios: battle.Scenarios(),
		keys:      keyboard{},
		face:      text.NewGoXFace(basicfont.Face7x13),
		showHUD:   true,
	}
	for _, o := range opts {
		o(g)
	}
	g.load()
	return g
}

// load (re)builds the current scenario.
func (g *Game) load() {
	g.sim = g.scenarios[g.current].Build(g.seed, g.cfg)
	g.sim.Battle.SetInput(triggerInput{keys: g.keys})
	if g.voice != nil {
		g.sim.Battle.SetVoice(g.voice)
	}
	g.bubbles = nil
	g.heard = make(map[int]int)
	g.tick = 0
}

// Sim returns the running simulation.
func (g *Game) Sim() *battle.Sim { return g.sim }

// Scenario returns the running scenario.
func (g *Game) Scenario() battle.Scenario { return g.scenarios[g.current] }

// Paused reports whether the simulation is frozen.
func (g *Game) Paused() bool { return g.paused }

func (g *Game) Update() error {
	g.handleInput()
	if !g.paused {
		g.sim.Step(tickDT)
		g.tick++
		g.collectBubbles()
	}
	g.ageBubbles()
	return nil
}

// handleInput processes viewer keys. The cheer key itself is read by the
// battle during Step.
func (g *Game) handleInput() {
	switch {
	case g.keys.JustPressed(ebiten.KeyTab):
		g.current = (g.current + 1) % len(g.scenarios)
		g.seed++
		g.load()
	case g.keys.JustPressed(ebiten.KeyR):
		g.load()
	}
	if g.keys.JustPressed(ebiten.KeyK) {
		if victim := g.sim.KillEnemyOfMain(); victim == nil {
			log.Printf("[view] no enemy left to kill")
		}
	}
	if g.keys.JustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.keys.JustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// worldToScreen maps a ground position to screen pixels. The main soldier
// sits at the centre of the battlefield viewport; +Y on the ground is down
// on screen.
func (g *Game) worldToScreen(p cheer.Point) (float32, float32) {
	var centre cheer.Point
	if m := g.sim.Battle.MainSoldier(); m != nil {
		centre = m.Position()
	}
	vpW := float64(ScreenWidth - panelWidth)
	x := vpW/2 + (p.X-centre.X)*pixelsPerMetre
	y := float64(ScreenHeight)/2 + (p.Y-centre.Y)*pixelsPerMetre
	return float32(x), float32(y)
}
