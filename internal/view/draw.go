package view

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Cheer-Sense/internal/battle"
	"github.com/Garsondee/Cheer-Sense/internal/cheer"
)

const (
	soldierPixelRadius = 5
	logLineHeight      = 14
	gridMetres         = 5.0
)

var (
	redTeam   = color.RGBA{R: 210, G: 70, B: 70, A: 255}
	blueTeam  = color.RGBA{R: 70, G: 110, B: 210, A: 255}
	mountCol  = color.RGBA{R: 130, G: 100, B: 70, A: 255}
	deadCol   = color.RGBA{R: 70, G: 70, B: 70, A: 255}
	cheerRing = color.RGBA{R: 255, G: 220, B: 90, A: 255}
	panelText = color.RGBA{R: 200, G: 210, B: 200, A: 255}
)

func teamColour(s *battle.Soldier) color.RGBA {
	switch {
	case !s.Active():
		return deadCol
	case !s.Human():
		return mountCol
	case s.Side() != nil && s.Side().ID == 0:
		return redTeam
	default:
		return blueTeam
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 28, G: 42, B: 28, A: 255})
	g.drawGrid(screen)
	g.drawHeroRadius(screen)
	for _, s := range g.sim.Battle.Soldiers() {
		g.drawSoldier(screen, s)
	}
	g.drawBubbles(screen)
	g.drawPanel(screen, ScreenWidth-panelWidth, ScreenHeight)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) print(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	vpW := float32(ScreenWidth - panelWidth)
	step := float32(gridMetres * pixelsPerMetre)
	ox, oy := g.worldToScreen(cheer.Point{})
	lineCol := color.RGBA{R: 40, G: 58, B: 40, A: 255}
	for x := ox - step*float32(int(ox/step)); x < vpW; x += step {
		vector.StrokeLine(screen, x, 0, x, ScreenHeight, 1.0, lineCol, false)
	}
	for y := oy - step*float32(int(oy/step)); y < ScreenHeight; y += step {
		vector.StrokeLine(screen, 0, y, vpW, y, 1.0, lineCol, false)
	}
}

// drawHeroRadius outlines the pickup radius when the player is an
// unassigned hero.
func (g *Game) drawHeroRadius(screen *ebiten.Image) {
	main := g.sim.Battle.MainSoldier()
	if main == nil || cheer.Classify(main) != cheer.RoleUnassignedHero {
		return
	}
	x, y := g.worldToScreen(main.Position())
	r := float32(g.sim.Config().UnassignedHeroRadius * pixelsPerMetre)
	vector.StrokeCircle(screen, x, y, r, 1.0, color.RGBA{R: 200, G: 200, B: 120, A: 90}, true)
}

func (g *Game) drawSoldier(screen *ebiten.Image, s *battle.Soldier) {
	x, y := g.worldToScreen(s.Position())
	col := teamColour(s)
	if !s.Active() {
		const d = 3
		vector.StrokeLine(screen, x-d, y-d, x+d, y+d, 1.5, col, true)
		vector.StrokeLine(screen, x-d, y+d, x+d, y-d, 1.5, col, true)
		return
	}
	r := float32(soldierPixelRadius)
	if !s.Human() {
		r = 3.5
	}
	vector.FillCircle(screen, x, y, r, col, true)

	switch cheer.Classify(s) {
	case cheer.RoleGeneral:
		vector.StrokeCircle(screen, x, y, r+3, 1.5, color.RGBA{R: 230, G: 190, B: 60, A: 255}, true)
	case cheer.RoleCaptain:
		vector.StrokeRect(screen, x-r-2, y-r-2, 2*r+4, 2*r+4, 1.0, color.RGBA{R: 200, G: 200, B: 210, A: 255}, false)
	case cheer.RoleUnassignedHero:
		vector.FillRect(screen, x-1.5, y-r-5, 3, 3, color.RGBA{R: 230, G: 230, B: 120, A: 255}, false)
	}
	if s.PlayerControlled() {
		vector.StrokeCircle(screen, x, y, r+1, 1.0, color.White, true)
	}
	if s.State() == battle.SoldierStateCheering {
		pulse := float32(g.tick%30) / 30
		vector.StrokeCircle(screen, x, y, r+4+pulse*4, 1.5, cheerRing, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	b := g.sim.Behavior
	det := b.Detector()
	cfg := b.Config()
	sc := g.Scenario()

	meter := fmt.Sprintf("Cheer meter: %d/%d", det.Meter(), cfg.MeterThreshold)
	if det.Ready() {
		meter += fmt.Sprintf("  READY - press %s", cfg.TriggerKey)
	}
	status := ""
	if !b.Eligible() {
		status = "  (cheering unavailable here)"
	}
	if g.paused {
		status += "  PAUSED"
	}
	lines := []string{
		fmt.Sprintf("%s  [%s, %s]%s", sc.Title, sc.Name, g.sim.Battle.Mission.Mode, status),
		meter,
		fmt.Sprintf("Groups: %d  Cheering: %d  t=%.1fs", b.Orchestrator().GroupCount(), b.Orchestrator().CheeringCount(), b.Elapsed()),
		fmt.Sprintf("leadership cap %.0f  max morale %.0f  hero radius %.0fm",
			cfg.LeadershipThreshold, cfg.MaxMoraleGain, cfg.UnassignedHeroRadius),
		"Tab scenario  K kill enemy  R restart  P pause  H help",
	}
	lines = append(lines, orderOfBattle(g.sim.Battle)...)
	h := float32(len(lines)*logLineHeight + 8)
	vector.FillRect(screen, 6, 6, 460, h, color.RGBA{R: 10, G: 12, B: 10, A: 200}, false)
	for i, l := range lines {
		g.print(screen, l, 12, float64(10+i*logLineHeight), panelText)
	}
}

// orderOfBattle lists each team with its general and the formations under it.
func orderOfBattle(b *battle.Battle) []string {
	var lines []string
	for _, t := range b.Teams() {
		general := "none"
		if gen := t.General(); gen != nil {
			general = gen.Label()
		}
		lines = append(lines, fmt.Sprintf("%s: general %s, %d alive", t.Name, general, b.Alive(t)))
		for _, f := range b.Formations() {
			if f.Team() != t {
				continue
			}
			captain := "none"
			if c := f.Captain(); c != nil {
				captain = c.Label()
			}
			alive := 0
			for _, m := range f.Members() {
				if m.Active() {
					alive++
				}
			}
			lines = append(lines, fmt.Sprintf("  F%d %s, captain %s, %d alive", f.ID, f.Type, captain, alive))
		}
	}
	return lines
}

// drawPanel renders the debug feed when logging is enabled, otherwise the
// tail of the structured event log.
func (g *Game) drawPanel(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(panelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)
	vector.FillRect(screen, float32(panelX), 0, float32(panelWidth), 18, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)

	var lines []string
	title := "CHEER EVENTS"
	if g.sim.Config().LoggingEnabled {
		title = "CHEER LOG"
		for _, m := range g.sim.Behavior.Feed().Recent() {
			lines = append(lines, fmt.Sprintf("%5d %s", m.Tick, m.Text))
		}
	} else {
		for _, e := range g.sim.Behavior.Log().Entries() {
			lines = append(lines, strings.TrimSpace(e.String()))
		}
	}
	g.print(screen, title, float64(panelX+8), 3, panelText)
	vector.StrokeLine(screen, float32(panelX), 18, float32(panelX+panelWidth), 18, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	maxVisible := (panelH - 26) / logLineHeight
	if len(lines) > maxVisible {
		lines = lines[len(lines)-maxVisible:]
	}
	const recent = 3
	maxChars := (panelWidth - 16) / 7
	y := 22
	for i, l := range lines {
		if i >= len(lines)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(panelWidth-4), logLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		if len(l) > maxChars {
			l = l[:maxChars]
		}
		g.print(screen, l, float64(panelX+8), float64(y), panelText)
		y += logLineHeight
	}
}
