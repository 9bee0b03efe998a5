package cheer

import (
	"fmt"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeUnit is a minimal in-memory participant for tests.
type fakeUnit struct {
	id         int
	active     bool
	human      bool
	hero       bool
	character  bool
	player     bool
	team       *fakeTeam
	formation  *fakeFormation
	leadership int
	pos        Point
	morale     float64
}

func (u *fakeUnit) ID() int { return u.id }
func (u *fakeUnit) Label() string { return fmt.Sprintf("U%d", u.id) }
func (u *fakeUnit) Active() bool { return u.active }
func (u *fakeUnit) Human() bool { return u.human }
func (u *fakeUnit) Hero() bool { return u.hero }
func (u *fakeUnit) HasCharacter() bool { return u.character }
func (u *fakeUnit) PlayerControlled() bool { return u.player }
func (u *fakeUnit) Leadership() int { return u.leadership }
func (u *fakeUnit) Position() Point { return u.pos }
func (u *fakeUnit) Morale() float64 { return u.morale }
func (u *fakeUnit) SetMorale(v float64) { u.morale = v }
func (u *fakeUnit) Team() Team {
	if u.team == nil {
		return nil
	}
	return u.team
}
func (u *fakeUnit) Formation() Formation {
	if u.formation == nil {
		return nil
	}
	return u.formation
}

type fakeTeam struct {
	general *fakeUnit
}

func (t *fakeTeam) General() Participant {
	if t.general == nil {
		return nil
	}
	return t.general
}

type fakeFormation struct {
	team    *fakeTeam
	captain *fakeUnit
}

func (f *fakeFormation) Captain() Participant {
	if f.captain == nil {
		return nil
	}
	return f.captain
}

func (f *fakeFormation) Team() Team {
	if f.team == nil {
		return nil
	}
	return f.team
}

// fakeHost records every animator call and answers world queries from a
// flat unit list.
type fakeHost struct {
	units    []*fakeUnit
	main     *fakeUnit
	pressed  map[ebiten.Key]bool
	eligible bool

	starts map[int]int
	stops  map[int]int
	voices map[int]int
	// open tracks participants between a start and a stop action.
	open        map[int]bool
	doubleStart int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		pressed:  map[ebiten.Key]bool{},
		eligible: true,
		starts:   map[int]int{},
		stops:    map[int]int{},
		voices:   map[int]int{},
		open:     map[int]bool{},
	}
}

func (h *fakeHost) add(u *fakeUnit) *fakeUnit {
	u.active = true
	h.units = append(h.units, u)
	return u
}

func (h *fakeHost) Main() Participant {
	if h.main == nil {
		return nil
	}
	return h.main
}

func (h *fakeHost) Participants() []Participant {
	var out []Participant
	for _, u := range h.units {
		if u.active {
			out = append(out, u)
		}
	}
	return out
}

func (h *fakeHost) ActiveTeamMembers(t Team) []Participant {
	var out []Participant
	for _, u := range h.units {
		if u.active && u.team != nil && Team(u.team) == t {
			out = append(out, u)
		}
	}
	return out
}

func (h *fakeHost) IsKeyPressed(k ebiten.Key) bool { return h.pressed[k] }
func (h *fakeHost) EligibleBattle() bool { return h.eligible }

func (h *fakeHost) PlayStartAction(p Participant, variant int) {
	if h.open[p.ID()] {
		h.doubleStart++
	}
	h.open[p.ID()] = true
	h.starts[p.ID()]++
}

func (h *fakeHost) PlayStopAction(p Participant) {
	h.open[p.ID()] = false
	h.stops[p.ID()]++
}

func (h *fakeHost) PlayVoiceCue(p Participant) { h.voices[p.ID()]++ }

func (h *fakeHost) totalStarts() int {
	n := 0
	for _, c := range h.starts {
		n += c
	}
	return n
}

// armyWithGeneral builds a team of size members where unit 0 is the general.
func armyWithGeneral(h *fakeHost, size, leadership int) (*fakeTeam, *fakeUnit) {
	team := &fakeTeam{}
	var general *fakeUnit
	for i := 0; i < size; i++ {
		u := h.add(&fakeUnit{id: i, human: true, character: true, team: team})
		if i == 0 {
			general = u
			u.leadership = leadership
			u.hero = true
		}
	}
	team.general = general
	return team, general
}

func newTestOrchestrator(h *fakeHost, cfg Config, seed int64) (*Orchestrator, *EventLog) {
	log := NewEventLog()
	tick := 0
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- test determinism
	return NewOrchestrator(cfg, h, h, rng, log, &tick), log
}
