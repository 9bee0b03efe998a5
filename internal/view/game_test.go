package view

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Cheer-Sense/internal/cheer"
)

// fakeKeys reports each queued key as just pressed for a single Update.
type fakeKeys struct {
	next map[ebiten.Key]bool
	cur  map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{next: map[ebiten.Key]bool{}, cur: map[ebiten.Key]bool{}}
}

func (fk *fakeKeys) press(keys ...ebiten.Key) {
	for _, k := range keys {
		fk.next[k] = true
	}
}

// frame moves queued presses into the current frame.
func (fk *fakeKeys) frame() {
	fk.cur, fk.next = fk.next, map[ebiten.Key]bool{}
}

func (fk *fakeKeys) JustPressed(k ebiten.Key) bool { return fk.cur[k] }

func update(t *testing.T, g *Game, fk *fakeKeys) {
	t.Helper()
	fk.frame()
	if err := g.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestGame_KillThenCheerKeyRallies(t *testing.T) {
	fk := newFakeKeys()
	g := New(cheer.DefaultConfig(), WithKeySource(fk), WithScenario("general"), WithSeed(11))

	fk.press(ebiten.KeyK)
	update(t, g, fk)
	if g.Sim().Behavior.Detector().Meter() != 1 {
		t.Fatalf("K should bank a kill, meter=%d", g.Sim().Behavior.Detector().Meter())
	}

	fk.press(ebiten.KeyV)
	update(t, g, fk)
	if n := g.Sim().Behavior.Orchestrator().GroupCount(); n != 21 {
		t.Fatalf("expected 21 groups after the cheer key, got %d", n)
	}
	if len(g.bubbles) != 1 {
		t.Fatalf("initiator bubble expected on the trigger frame, got %d", len(g.bubbles))
	}

	for i := 0; i < 260; i++ {
		update(t, g, fk)
	}
	if g.Sim().Behavior.Orchestrator().GroupCount() != 0 {
		t.Fatal("groups should have drained")
	}
	if len(g.bubbles) != 0 {
		t.Fatalf("all bubbles should have expired, %d left", len(g.bubbles))
	}
	total := 0
	for _, n := range g.heard {
		total += n
	}
	if total != 21 {
		t.Fatalf("expected 21 bubbles over the cheer, got %d", total)
	}
}

func TestGame_HoldingTheKeyDoesNotRetrigger(t *testing.T) {
	fk := newFakeKeys()
	cfg := cheer.DefaultConfig()
	cfg.MeterThreshold = 0
	g := New(cfg, WithKeySource(fk), WithScenario("hero"))

	fk.press(ebiten.KeyV)
	update(t, g, fk)
	update(t, g, fk) // key still physically down, but not just pressed
	if n := g.Sim().Behavior.Log().CountCategory("trigger", "formed"); n != 1 {
		t.Fatalf("expected one trigger, got %d", n)
	}
}

func TestGame_TabCyclesScenarios(t *testing.T) {
	fk := newFakeKeys()
	g := New(cheer.DefaultConfig(), WithKeySource(fk))
	want := []string{"captain", "hero", "general"}
	if g.Scenario().Name != "general" {
		t.Fatalf("expected to start on general, got %s", g.Scenario().Name)
	}
	for _, name := range want {
		fk.press(ebiten.KeyTab)
		update(t, g, fk)
		if g.Scenario().Name != name {
			t.Fatalf("expected %s, got %s", name, g.Scenario().Name)
		}
	}
}

func TestGame_PauseFreezesSimulation(t *testing.T) {
	fk := newFakeKeys()
	g := New(cheer.DefaultConfig(), WithKeySource(fk))
	update(t, g, fk)
	before := g.Sim().Ticks()

	fk.press(ebiten.KeyP)
	update(t, g, fk)
	update(t, g, fk)
	if !g.Paused() || g.Sim().Ticks() != before {
		t.Fatalf("paused sim advanced from %d to %d", before, g.Sim().Ticks())
	}
	fk.press(ebiten.KeyP)
	update(t, g, fk)
	if g.Sim().Ticks() != before+1 {
		t.Fatal("unpausing should resume stepping")
	}
}

func TestGame_WorldToScreenCentresMain(t *testing.T) {
	g := New(cheer.DefaultConfig(), WithKeySource(newFakeKeys()))
	main := g.Sim().Battle.MainSoldier()
	x, y := g.worldToScreen(main.Position())
	if x != float32(ScreenWidth-panelWidth)/2 || y != float32(ScreenHeight)/2 {
		t.Fatalf("main should be centred, got (%.1f, %.1f)", x, y)
	}
	p := main.Position()
	p.X += 1
	x2, _ := g.worldToScreen(p)
	if math.Abs(float64(x2-x)-pixelsPerMetre) > 1e-3 {
		t.Fatalf("one metre should be %v pixels, got %v", pixelsPerMetre, x2-x)
	}
}

func TestGame_LayoutIsFixed(t *testing.T) {
	g := New(cheer.DefaultConfig(), WithKeySource(newFakeKeys()))
	w, h := g.Layout(640, 480)
	if w != ScreenWidth || h != ScreenHeight {
		t.Fatalf("unexpected layout %dx%d", w, h)
	}
}

func TestOrderOfBattle_ListsTeamsAndFormations(t *testing.T) {
	fk := newFakeKeys()
	g := New(cheer.DefaultConfig(), WithKeySource(fk))
	want := []string{
		"Vlandia: general S0, 23 alive",
		"  F1 line, captain S1, 12 alive",
		"  F2 column, captain S20, 8 alive",
		"Battania: general none, 10 alive",
		"  F90 line, captain none, 10 alive",
	}
	got := orderOfBattle(g.Sim().Battle)
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}

	fk.press(ebiten.KeyK)
	update(t, g, fk)
	got = orderOfBattle(g.Sim().Battle)
	if got[3] != "Battania: general none, 9 alive" || got[4] != "  F90 line, captain none, 9 alive" {
		t.Fatalf("kill not reflected: %q", got[3:])
	}
}
