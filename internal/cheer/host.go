package cheer

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Point is a ground-plane position in metres.
type Point struct {
	X, Y float64
}

// Distance returns the straight-line distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Participant is a battlefield entity owned by the host. The controller only
// reads its role fields and writes morale through SetMorale.
//
// Implementations must return an untyped nil from Team and Formation when the
// participant has none; a typed nil pointer wrapped in the interface is
// treated as a real team.
type Participant interface {
	ID() int
	Label() string
	Active() bool
	Human() bool
	Hero() bool
	HasCharacter() bool
	PlayerControlled() bool
	Team() Team
	Formation() Formation
	Leadership() int
	Position() Point
	Morale() float64
	SetMorale(v float64)
}

// Team is a side in the battle.
type Team interface {
	General() Participant
}

// Formation is a unit inside a team, optionally led by a captain.
type Formation interface {
	Captain() Participant
	Team() Team
}

// World exposes the participant lists the controller selects from.
type World interface {
	// Main is the designated player participant, or nil.
	Main() Participant
	// Participants returns every live participant in the mission.
	Participants() []Participant
	// ActiveTeamMembers returns the active members of t.
	ActiveTeamMembers(t Team) []Participant
}

// Input reports whether a key went down during the current tick.
type Input interface {
	IsKeyPressed(k ebiten.Key) bool
}

// Animator performs the visible side effects of a cheer.
type Animator interface {
	PlayStartAction(p Participant, variant int)
	PlayStopAction(p Participant)
	PlayVoiceCue(p Participant)
}

// Gate reports whether the current mission allows cheering at all
// (mission running and one of field battle, sally out or siege).
type Gate interface {
	EligibleBattle() bool
}

// Host is everything the behavior needs from the running simulation.
type Host interface {
	World
	Input
	Animator
	Gate
}

// sameParticipant compares participants by identity.
func sameParticipant(a, b Participant) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}

// eligible reports whether p may take part in a cheer: present, active and
// human. Mounts and other non-human entities never join.
func eligible(p Participant) bool {
	return p != nil && p.Active() && p.Human()
}

// leadershipOf returns the leadership skill of p, or 0 when p has no
// character profile.
func leadershipOf(p Participant) int {
	if p == nil || !p.HasCharacter() {
		return 0
	}
	return p.Leadership()
}
