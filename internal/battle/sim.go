package battle

import (
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Cheer-Sense/internal/cheer"
)

// ScriptedInput is an Input driven by code: keys set with Press stay down
// until Release or Clear.
type ScriptedInput struct {
	down map[ebiten.Key]bool
}

// NewScriptedInput returns an input with no keys down.
func NewScriptedInput() *ScriptedInput {
	return &ScriptedInput{down: make(map[ebiten.Key]bool)}
}

// Press holds k down.
func (si *ScriptedInput) Press(k ebiten.Key) { si.down[k] = true }

// Release lets k go.
func (si *ScriptedInput) Release(k ebiten.Key) { delete(si.down, k) }

// Clear releases every key.
func (si *ScriptedInput) Clear() { clear(si.down) }

// IsKeyPressed implements Input.
func (si *ScriptedInput) IsKeyPressed(k ebiten.Key) bool { return si.down[k] }

// Sim is a headless battle with a cheer behavior attached. It drives the
// same per-tick path the viewer does, with deterministic seeding.
type Sim struct {
	Battle   *Battle
	Behavior *cheer.Behavior
	Input    *ScriptedInput

	cfg     cheer.Config
	rng     *rand.Rand
	mode    Mode
	pending []ebiten.Key
	ticks   int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra     simOptionKind = iota // seed, mode, config: applied first
	simOptStructure                      // teams and formations
	simOptSoldier                        // soldiers, after teams exist
	simOptRole                           // generals, captains, heroes, main
	simOptLayout                         // formation layout, after captains
)

// SimOption is a builder function applied to a Sim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*Sim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation RNG
	}}
}

// WithMode sets the mission mode.
func WithMode(m Mode) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.mode = m
	}}
}

// WithConfig sets the cheer configuration.
func WithConfig(cfg cheer.Config) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.cfg = cfg
	}}
}

// WithTeam adds a team.
func WithTeam(id int, name string) SimOption {
	return SimOption{simOptStructure, func(s *Sim) {
		s.Battle.AddTeam(NewTeam(id, name))
	}}
}

// WithFormation adds an empty formation to a team.
func WithFormation(id, teamID int) SimOption {
	return SimOption{simOptStructure, func(s *Sim) {
		s.addFormation(id, teamID)
	}}
}

// WithSoldier adds a human soldier with the given leadership.
func WithSoldier(id, teamID int, x, y float64, leadership int) SimOption {
	return SimOption{simOptSoldier, func(s *Sim) {
		sol := NewSoldier(id, s.Battle.TeamByID(teamID), cheer.Point{X: x, Y: y})
		sol.leadership = leadership
		s.Battle.AddSoldier(sol)
	}}
}

// WithMount adds a horse to a team.
func WithMount(id, teamID int, x, y float64) SimOption {
	return SimOption{simOptSoldier, func(s *Sim) {
		s.Battle.AddSoldier(NewMount(id, s.Battle.TeamByID(teamID), cheer.Point{X: x, Y: y}))
	}}
}

// WithGeneral makes soldier id the general of its team.
func WithGeneral(id int) SimOption {
	return SimOption{simOptRole, func(s *Sim) {
		if sol := s.Battle.SoldierByID(id); sol != nil && sol.team != nil {
			sol.team.SetGeneral(sol)
		}
	}}
}

// WithCaptain makes soldier id the captain of formation formationID.
func WithCaptain(formationID, id int) SimOption {
	return SimOption{simOptRole, func(s *Sim) {
		f := s.Battle.FormationByID(formationID)
		sol := s.Battle.SoldierByID(id)
		if f != nil && sol != nil {
			f.SetCaptain(sol)
		}
	}}
}

// WithHero marks soldier id as a hero.
func WithHero(id int) SimOption {
	return SimOption{simOptRole, func(s *Sim) {
		if sol := s.Battle.SoldierByID(id); sol != nil {
			sol.hero = true
		}
	}}
}

// WithMain makes soldier id the player's main soldier.
func WithMain(id int) SimOption {
	return SimOption{simOptRole, func(s *Sim) {
		if sol := s.Battle.SoldierByID(id); sol != nil {
			sol.player = true
			s.Battle.SetMain(sol)
		}
	}}
}

// WithFormationLine assigns soldiers to a formation and lays them out in a
// line centred on (x,y) facing heading. A captain among ids takes the centre
// slot.
func WithFormationLine(formationID int, x, y, heading float64, ids ...int) SimOption {
	return WithFormationLayout(formationID, FormationLine, x, y, heading, ids...)
}

// WithFormationLayout assigns soldiers to a formation and lays them out in
// shape ft anchored on (x,y) facing heading. A captain among ids takes the
// anchor slot.
func WithFormationLayout(formationID int, ft FormationType, x, y, heading float64, ids ...int) SimOption {
	return SimOption{simOptLayout, func(s *Sim) {
		f := s.Battle.FormationByID(formationID)
		if f == nil {
			return
		}
		for _, id := range ids {
			if sol := s.Battle.SoldierByID(id); sol != nil {
				f.Add(sol)
			}
		}
		f.Type = ft
		f.LayOut(cheer.Point{X: x, Y: y}, heading)
	}}
}

// NewSim constructs a Sim from the given options in ordered passes:
//  1. Infrastructure (seed, mode, config)
//  2. Teams and formations
//  3. Soldiers
//  4. Roles
//  5. Formation layout
//
// The behavior is built last and receives its own RNG derived from the seed.
func NewSim(opts ...SimOption) *Sim {
	s := &Sim{
		Input: NewScriptedInput(),
		cfg:   cheer.DefaultConfig(),
		rng:   rand.New(rand.NewSource(1)), // #nosec G404 -- simulation RNG default
		mode:  ModeFieldBattle,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(s)
		}
	}
	s.Battle = NewBattle(s.mode)
	for _, kind := range []simOptionKind{simOptStructure, simOptSoldier, simOptRole, simOptLayout} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(s)
			}
		}
	}
	s.Battle.SetInput(s.Input)
	behaviorRNG := rand.New(rand.NewSource(s.rng.Int63())) // #nosec G404 -- simulation RNG
	s.Behavior = cheer.NewBehavior(s.cfg, s.Battle, behaviorRNG)
	s.Battle.SetRemovalListener(s.Behavior)
	return s
}

func (s *Sim) addFormation(id, teamID int) {
	s.Battle.AddFormation(NewFormation(id, s.Battle.TeamByID(teamID)))
}

// PressOnNextTick holds k down for exactly the next Step.
func (s *Sim) PressOnNextTick(k ebiten.Key) {
	s.pending = append(s.pending, k)
}

// Step advances one tick of dt seconds.
func (s *Sim) Step(dt float64) {
	for _, k := range s.pending {
		s.Input.Press(k)
	}
	s.ticks++
	s.Behavior.OnTick(dt)
	for _, k := range s.pending {
		s.Input.Release(k)
	}
	s.pending = s.pending[:0]
}

// RunFor advances the simulation by seconds in steps of dt and returns the
// number of ticks run.
func (s *Sim) RunFor(seconds, dt float64) int {
	if !(dt > 0) || !(seconds > 0) {
		return 0
	}
	n := int(math.Ceil(seconds/dt - 1e-9))
	for i := 0; i < n; i++ {
		s.Step(dt)
	}
	return n
}

// RunUntil steps until predicate returns true or maxTicks is reached.
// Returns the tick at which the predicate held, or -1.
func (s *Sim) RunUntil(predicate func(*Sim) bool, dt float64, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		s.Step(dt)
		if predicate(s) {
			return s.ticks
		}
	}
	return -1
}

// Ticks returns the number of steps run.
func (s *Sim) Ticks() int { return s.ticks }

// Config returns the configuration the behavior runs with.
func (s *Sim) Config() cheer.Config { return s.Behavior.Config() }

// KillEnemyOfMain kills a random live soldier not on the main soldier's
// team, credited to the main soldier. Returns the victim, or nil.
func (s *Sim) KillEnemyOfMain() *Soldier {
	main := s.Battle.MainSoldier()
	if main == nil {
		return nil
	}
	var enemies []*Soldier
	for _, sol := range s.Battle.Soldiers() {
		if sol.alive && sol.team != main.team {
			enemies = append(enemies, sol)
		}
	}
	if len(enemies) == 0 {
		return nil
	}
	victim := enemies[s.rng.Intn(len(enemies))]
	s.Battle.Kill(victim, main)
	return victim
}

// BankMeter credits kills to the main soldier until the meter is full.
// Returns the number of kills made.
func (s *Sim) BankMeter() int {
	kills := 0
	for !s.Behavior.Detector().Ready() {
		if s.KillEnemyOfMain() == nil {
			break
		}
		kills++
	}
	return kills
}

// TriggerCheer presses the configured key on the next tick and steps once.
func (s *Sim) TriggerCheer(dt float64) {
	s.PressOnNextTick(s.Config().TriggerKey)
	s.Step(dt)
}
