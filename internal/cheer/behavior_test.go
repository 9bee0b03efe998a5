package cheer

import (
	"math/rand"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func newTestBehavior(h *fakeHost, cfg Config) *Behavior {
	return NewBehavior(cfg, h, rand.New(rand.NewSource(5))) // #nosec G404 -- test determinism
}

func TestDetector_ControlledPrefersMain(t *testing.T) {
	h := newFakeHost()
	fallback := h.add(&fakeUnit{id: 0, human: true, player: true})
	main := h.add(&fakeUnit{id: 1, human: true, player: true})
	h.main = main
	b := newTestBehavior(h, DefaultConfig())

	if got := b.Detector().Controlled(); !sameParticipant(got, main) {
		t.Fatalf("expected main participant, got %v", got)
	}
	main.player = false
	if got := b.Detector().Controlled(); !sameParticipant(got, fallback) {
		t.Fatalf("expected fallback to first player-controlled participant, got %v", got)
	}
	fallback.player = false
	if got := b.Detector().Controlled(); got != nil {
		t.Fatalf("expected no controlled participant, got %v", got)
	}
}

func TestDetector_TriggerNeedsKeyAndMeter(t *testing.T) {
	h := newFakeHost()
	_, general := armyWithGeneral(h, 5, 300)
	general.player = true
	h.main = general
	cfg := DefaultConfig()
	cfg.MeterThreshold = 2
	b := newTestBehavior(h, cfg)
	victim := &fakeUnit{id: 99, human: true}

	h.pressed[ebiten.KeyV] = true
	b.OnTick(0.016)
	if b.Orchestrator().GroupCount() != 0 {
		t.Fatal("cheer must not fire with an empty meter")
	}

	b.OnParticipantRemoved(victim, general)
	b.OnParticipantRemoved(victim, general)
	if b.Detector().Meter() != 2 {
		t.Fatalf("expected meter=2, got %d", b.Detector().Meter())
	}

	h.pressed[ebiten.KeyV] = false
	b.OnTick(0.016)
	if b.Orchestrator().GroupCount() != 0 {
		t.Fatal("cheer must not fire without the trigger key")
	}

	h.pressed[ebiten.KeyV] = true
	b.OnTick(0.016)
	if b.Orchestrator().GroupCount() != 5 {
		t.Fatalf("expected initiator + 4 satellites, got %d groups", b.Orchestrator().GroupCount())
	}
	if b.Detector().Meter() != 0 {
		t.Fatalf("meter should reset after a cheer, got %d", b.Detector().Meter())
	}
	if !b.Orchestrator().Cheering(general) {
		t.Fatal("initiator should start cheering in the trigger tick")
	}
}

func TestDetector_MeterSaturatesAtThreshold(t *testing.T) {
	h := newFakeHost()
	main := h.add(&fakeUnit{id: 0, human: true, player: true, character: true})
	h.main = main
	cfg := DefaultConfig()
	cfg.MeterThreshold = 3
	b := newTestBehavior(h, cfg)

	for i := 0; i < 10; i++ {
		b.OnParticipantRemoved(&fakeUnit{id: 100 + i}, main)
		if m := b.Detector().Meter(); m > cfg.MeterThreshold || m < 0 {
			t.Fatalf("meter %d escaped [0,%d]", m, cfg.MeterThreshold)
		}
	}
	if b.Detector().Meter() != 3 {
		t.Fatalf("expected saturated meter=3, got %d", b.Detector().Meter())
	}
	if n := b.Log().CountCategory("meter", "increment"); n != 3 {
		t.Fatalf("expected 3 increments logged, got %d", n)
	}
}

func TestDetector_KillCreditOnlyForMain(t *testing.T) {
	h := newFakeHost()
	main := h.add(&fakeUnit{id: 0, human: true, character: true})
	fallback := h.add(&fakeUnit{id: 1, human: true, player: true})
	h.main = main
	b := newTestBehavior(h, DefaultConfig())
	victim := &fakeUnit{id: 50}

	b.OnParticipantRemoved(victim, fallback)
	if b.Detector().Meter() != 0 {
		t.Fatal("kills by the fallback controlled participant must not count")
	}
	b.OnParticipantRemoved(main, main)
	b.OnParticipantRemoved(nil, main)
	b.OnParticipantRemoved(victim, nil)
	if b.Detector().Meter() != 0 {
		t.Fatal("self kills and nil participants must not count")
	}
	b.OnParticipantRemoved(victim, main)
	if b.Detector().Meter() != 1 {
		t.Fatalf("expected main's kill to count, meter=%d", b.Detector().Meter())
	}
}

func TestBehavior_IneligibleContextBlocksTriggersButDrainsGroups(t *testing.T) {
	h := newFakeHost()
	_, general := armyWithGeneral(h, 4, 300)
	general.player = true
	h.main = general
	cfg := DefaultConfig()
	cfg.MeterThreshold = 0
	b := newTestBehavior(h, cfg)

	h.pressed[ebiten.KeyV] = true
	b.OnTick(0.1)
	h.pressed[ebiten.KeyV] = false
	if b.Orchestrator().GroupCount() == 0 {
		t.Fatal("expected a cheer while eligible")
	}

	h.eligible = false
	b.OnParticipantRemoved(&fakeUnit{id: 70}, general)
	if b.Detector().Meter() != 0 {
		t.Fatal("kills must not count outside an eligible battle")
	}
	h.pressed[ebiten.KeyV] = true
	startsBefore := b.Log().CountCategory("trigger", "formed")
	for i := 0; i < 60; i++ {
		b.OnTick(0.1)
	}
	if b.Log().CountCategory("trigger", "formed") != startsBefore {
		t.Fatal("no new cheer may form while ineligible")
	}
	if b.Orchestrator().GroupCount() != 0 {
		t.Fatalf("existing groups should drain, %d left", b.Orchestrator().GroupCount())
	}
	if b.Orchestrator().CheeringCount() != 0 {
		t.Fatal("registry should be empty after draining")
	}
}

func TestBehavior_DisabledConfigNeverTriggers(t *testing.T) {
	h := newFakeHost()
	_, general := armyWithGeneral(h, 3, 300)
	general.player = true
	h.main = general
	cfg := DefaultConfig()
	cfg.Enabled = false
	cfg.MeterThreshold = 0
	b := newTestBehavior(h, cfg)

	h.pressed[ebiten.KeyV] = true
	b.OnTick(0.1)
	if b.Orchestrator().GroupCount() != 0 {
		t.Fatal("disabled behavior must not cheer")
	}
}

func TestBehavior_CustomTriggerKey(t *testing.T) {
	h := newFakeHost()
	_, general := armyWithGeneral(h, 3, 300)
	general.player = true
	h.main = general
	cfg := DefaultConfig()
	cfg.MeterThreshold = 0
	cfg.TriggerKey = ebiten.KeyC
	b := newTestBehavior(h, cfg)

	h.pressed[ebiten.KeyV] = true
	b.OnTick(0.1)
	if b.Orchestrator().GroupCount() != 0 {
		t.Fatal("default key must not trigger when another key is configured")
	}
	h.pressed[ebiten.KeyC] = true
	b.OnTick(0.1)
	if b.Orchestrator().GroupCount() == 0 {
		t.Fatal("configured key should trigger")
	}
}

func TestBehavior_LoggingFlagGatesFeed(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		h := newFakeHost()
		_, general := armyWithGeneral(h, 3, 300)
		general.player = true
		h.main = general
		cfg := DefaultConfig()
		cfg.MeterThreshold = 0
		cfg.LoggingEnabled = enabled
		b := newTestBehavior(h, cfg)

		h.pressed[ebiten.KeyV] = true
		b.OnTick(0.1)
		if got := b.Feed().Len() > 0; got != enabled {
			t.Fatalf("logging=%v: feed has %d messages", enabled, b.Feed().Len())
		}
		if b.Log().CountCategory("trigger", "formed") != 1 {
			t.Fatal("structured log records regardless of the logging flag")
		}
	}
}

func TestBehavior_ZeroLeadershipThresholdFallsBackToDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LeadershipThreshold = 0
	b := newTestBehavior(newFakeHost(), cfg)
	if b.Config().LeadershipThreshold != DefaultLeadershipThreshold {
		t.Fatalf("expected default threshold, got %.0f", b.Config().LeadershipThreshold)
	}
}

func TestMessageFeed_RingBufferKeepsNewest(t *testing.T) {
	mf := NewMessageFeed()
	for i := 0; i < feedCapacity+5; i++ {
		mf.Add(i, "msg")
	}
	recent := mf.Recent()
	if len(recent) != feedCapacity {
		t.Fatalf("expected %d messages, got %d", feedCapacity, len(recent))
	}
	if recent[0].Tick != 5 || recent[len(recent)-1].Tick != feedCapacity+4 {
		t.Fatalf("unexpected window: first=%d last=%d", recent[0].Tick, recent[len(recent)-1].Tick)
	}
}
