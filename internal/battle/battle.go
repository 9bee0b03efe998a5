package battle

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Cheer-Sense/internal/cheer"
)

// Input reports keys pressed during the current tick.
type Input interface {
	IsKeyPressed(k ebiten.Key) bool
}

// VoiceSink plays an audible cue. voice.Player satisfies it.
type VoiceSink interface {
	PlayCue()
}

// RemovalListener is told when a soldier leaves the battle.
type RemovalListener interface {
	OnParticipantRemoved(victim, killer cheer.Participant)
}

// Battle owns the soldiers and implements cheer.Host.
type Battle struct {
	Mission Mission

	soldiers   []*Soldier
	teams      []*Team
	formations []*Formation
	main       *Soldier

	input    Input
	voice    VoiceSink
	listener RemovalListener
}

// NewBattle creates an active battle of the given mode.
func NewBattle(mode Mode) *Battle {
	return &Battle{Mission: Mission{Mode: mode, Active: true}}
}

// AddTeam registers a team.
func (b *Battle) AddTeam(t *Team) { b.teams = append(b.teams, t) }

// AddFormation registers a formation.
func (b *Battle) AddFormation(f *Formation) { b.formations = append(b.formations, f) }

// AddSoldier registers a soldier.
func (b *Battle) AddSoldier(s *Soldier) { b.soldiers = append(b.soldiers, s) }

// SetMain designates the player's soldier.
func (b *Battle) SetMain(s *Soldier) { b.main = s }

// SetInput sets the key source. A nil input never reports a press.
func (b *Battle) SetInput(in Input) { b.input = in }

// SetVoice sets where voice cues are played. nil keeps the battle silent.
func (b *Battle) SetVoice(v VoiceSink) { b.voice = v }

// SetRemovalListener sets who is told about kills.
func (b *Battle) SetRemovalListener(l RemovalListener) { b.listener = l }

// Soldiers returns every soldier, dead ones included.
func (b *Battle) Soldiers() []*Soldier { return b.soldiers }

// Teams returns the registered teams.
func (b *Battle) Teams() []*Team { return b.teams }

// Formations returns the registered formations.
func (b *Battle) Formations() []*Formation { return b.formations }

// MainSoldier returns the concrete main soldier, or nil.
func (b *Battle) MainSoldier() *Soldier { return b.main }

// SoldierByID looks a soldier up.
func (b *Battle) SoldierByID(id int) *Soldier {
	for _, s := range b.soldiers {
		if s.id == id {
			return s
		}
	}
	return nil
}

// TeamByID looks a team up.
func (b *Battle) TeamByID(id int) *Team {
	for _, t := range b.teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// FormationByID looks a formation up.
func (b *Battle) FormationByID(id int) *Formation {
	for _, f := range b.formations {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// Alive counts live soldiers on team t.
func (b *Battle) Alive(t *Team) int {
	n := 0
	for _, s := range b.soldiers {
		if s.alive && s.team == t {
			n++
		}
	}
	return n
}

// Main implements cheer.World.
func (b *Battle) Main() cheer.Participant { return participant(b.main) }

// Participants implements cheer.World.
func (b *Battle) Participants() []cheer.Participant {
	out := make([]cheer.Participant, 0, len(b.soldiers))
	for _, s := range b.soldiers {
		if s.alive {
			out = append(out, s)
		}
	}
	return out
}

// ActiveTeamMembers implements cheer.World.
func (b *Battle) ActiveTeamMembers(t cheer.Team) []cheer.Participant {
	team, ok := t.(*Team)
	if !ok || team == nil {
		return nil
	}
	var out []cheer.Participant
	for _, s := range b.soldiers {
		if s.alive && s.team == team {
			out = append(out, s)
		}
	}
	return out
}

// IsKeyPressed implements cheer.Input.
func (b *Battle) IsKeyPressed(k ebiten.Key) bool {
	if b.input == nil {
		return false
	}
	return b.input.IsKeyPressed(k)
}

// PlayStartAction implements cheer.Animator.
func (b *Battle) PlayStartAction(p cheer.Participant, variant int) {
	s, ok := p.(*Soldier)
	if !ok || !s.alive {
		return
	}
	s.action = fmt.Sprintf("cheer_%d", variant+1)
	s.state = SoldierStateCheering
}

// PlayStopAction implements cheer.Animator.
func (b *Battle) PlayStopAction(p cheer.Participant) {
	s, ok := p.(*Soldier)
	if !ok || !s.alive {
		return
	}
	s.action = ""
	s.state = SoldierStateIdle
}

// PlayVoiceCue implements cheer.Animator.
func (b *Battle) PlayVoiceCue(p cheer.Participant) {
	s, ok := p.(*Soldier)
	if !ok {
		return
	}
	s.voices++
	if b.voice != nil {
		b.voice.PlayCue()
	}
}

// EligibleBattle implements cheer.Gate.
func (b *Battle) EligibleBattle() bool { return b.Mission.Eligible() }

// Kill removes victim from the battle and reports the kill. Killing a dead
// soldier does nothing.
func (b *Battle) Kill(victim, killer *Soldier) {
	if victim == nil || !victim.alive {
		return
	}
	victim.alive = false
	victim.state = SoldierStateDead
	victim.action = ""
	if b.listener != nil {
		b.listener.OnParticipantRemoved(victim, participant(killer))
	}
}
