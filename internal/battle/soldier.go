package battle

import (
	"fmt"

	"github.com/Garsondee/Cheer-Sense/internal/cheer"
)

// DefaultMorale is the morale a soldier starts with.
const DefaultMorale = 50.0

// Team is a side in the battle.
type Team struct {
	ID      int
	Name    string
	general *Soldier
}

// NewTeam creates a team without a general.
func NewTeam(id int, name string) *Team {
	return &Team{ID: id, Name: name}
}

// General implements cheer.Team.
func (t *Team) General() cheer.Participant {
	if t.general == nil {
		return nil
	}
	return t.general
}

// SetGeneral appoints s as the team's general.
func (t *Team) SetGeneral(s *Soldier) {
	t.general = s
}

// SoldierState is what the soldier's action channel is doing.
type SoldierState int

const (
	SoldierStateIdle SoldierState = iota
	SoldierStateCheering
	SoldierStateDead
)

func (ss SoldierState) String() string {
	switch ss {
	case SoldierStateIdle:
		return "idle"
	case SoldierStateCheering:
		return "cheering"
	case SoldierStateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Soldier is a battlefield agent. Mounts are soldiers with human=false.
type Soldier struct {
	id    int
	label string
	team  *Team

	formation *Formation
	pos       cheer.Point

	alive     bool
	human     bool
	hero      bool
	character bool
	player    bool

	leadership int
	morale     float64

	state  SoldierState
	action string // current action animation, "" when none
	voices int    // voice cues played
}

// NewSoldier creates a live human soldier with a character profile.
func NewSoldier(id int, team *Team, pos cheer.Point) *Soldier {
	return &Soldier{
		id:        id,
		label:     fmt.Sprintf("S%d", id),
		team:      team,
		pos:       pos,
		alive:     true,
		human:     true,
		character: true,
		morale:    DefaultMorale,
	}
}

// NewMount creates a horse. Mounts are never human and have no character.
func NewMount(id int, team *Team, pos cheer.Point) *Soldier {
	return &Soldier{
		id:     id,
		label:  fmt.Sprintf("M%d", id),
		team:   team,
		pos:    pos,
		alive:  true,
		morale: DefaultMorale,
	}
}

func (s *Soldier) ID() int { return s.id }
func (s *Soldier) Label() string { return s.label }
func (s *Soldier) Active() bool { return s.alive }
func (s *Soldier) Human() bool { return s.human }
func (s *Soldier) Hero() bool { return s.hero }
func (s *Soldier) HasCharacter() bool { return s.character }
func (s *Soldier) PlayerControlled() bool { return s.player }
func (s *Soldier) Leadership() int { return s.leadership }
func (s *Soldier) Position() cheer.Point { return s.pos }
func (s *Soldier) Morale() float64 { return s.morale }
func (s *Soldier) SetMorale(v float64) { s.morale = v }

// Team implements cheer.Participant.
func (s *Soldier) Team() cheer.Team {
	if s.team == nil {
		return nil
	}
	return s.team
}

// Formation implements cheer.Participant.
func (s *Soldier) Formation() cheer.Formation {
	if s.formation == nil {
		return nil
	}
	return s.formation
}

// Side returns the concrete team, or nil.
func (s *Soldier) Side() *Team { return s.team }

// Unit returns the concrete formation, or nil.
func (s *Soldier) Unit() *Formation { return s.formation }

// State returns the soldier's current state.
func (s *Soldier) State() SoldierState { return s.state }

// Action returns the current action animation name, or "".
func (s *Soldier) Action() string { return s.action }

// Voices returns how many voice cues the soldier has played.
func (s *Soldier) Voices() int { return s.voices }

func (s *Soldier) String() string {
	return fmt.Sprintf("%s(%s)", s.label, s.state)
}

// participant converts s to a cheer.Participant, keeping nil untyped.
func participant(s *Soldier) cheer.Participant {
	if s == nil {
		return nil
	}
	return s
}
