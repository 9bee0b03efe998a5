package battle

import (
	"math"

	"github.com/Garsondee/Cheer-Sense/internal/cheer"
)

// FormationType identifies the shape a formation is laid out in.
type FormationType int

const (
	FormationLine   FormationType = iota // side-by-side perpendicular to heading
	FormationColumn                      // single file behind the captain
	FormationLoose                       // staggered two-deep line
)

func (ft FormationType) String() string {
	switch ft {
	case FormationLine:
		return "line"
	case FormationColumn:
		return "column"
	case FormationLoose:
		return "loose"
	}
	return "unknown"
}

// slotSpacing is the gap in metres between adjacent formation slots.
const slotSpacing = 1.5

// Formation is a unit inside a team, optionally led by a captain.
type Formation struct {
	ID      int
	Type    FormationType
	team    *Team
	captain *Soldier
	members []*Soldier
}

// NewFormation creates an empty formation belonging to team.
func NewFormation(id int, team *Team) *Formation {
	return &Formation{ID: id, team: team}
}

// Captain implements cheer.Formation.
func (f *Formation) Captain() cheer.Participant {
	if f.captain == nil {
		return nil
	}
	return f.captain
}

// Team implements cheer.Formation.
func (f *Formation) Team() cheer.Team {
	if f.team == nil {
		return nil
	}
	return f.team
}

// SetCaptain makes s the captain. s joins the formation if it is not in it.
func (f *Formation) SetCaptain(s *Soldier) {
	f.captain = s
	if s != nil && s.formation != f {
		f.Add(s)
	}
}

// Add moves s into the formation.
func (f *Formation) Add(s *Soldier) {
	if s.formation == f {
		return
	}
	if s.formation != nil {
		s.formation.remove(s)
	}
	s.formation = f
	f.members = append(f.members, s)
}

func (f *Formation) remove(s *Soldier) {
	for i, m := range f.members {
		if m == s {
			f.members = append(f.members[:i], f.members[i+1:]...)
			break
		}
	}
	if f.captain == s {
		f.captain = nil
	}
}

// Members returns the soldiers assigned to the formation, captain included.
func (f *Formation) Members() []*Soldier {
	out := make([]*Soldier, len(f.members))
	copy(out, f.members)
	return out
}

// formationOffsets returns the local (forward, right) offsets for each slot
// in a formation of count members. Slot 0 is the anchor.
func formationOffsets(ft FormationType, count int) [][2]float64 {
	offsets := make([][2]float64, count)
	if count == 0 {
		return offsets
	}
	switch ft {
	case FormationLine:
		// ...-2,-1,0,+1,+2,...
		for i := 1; i < count; i++ {
			side := float64((i+1)/2) * slotSpacing
			if i%2 == 1 {
				side = -side
			}
			offsets[i] = [2]float64{0, side}
		}
	case FormationColumn:
		for i := 1; i < count; i++ {
			offsets[i] = [2]float64{-float64(i) * slotSpacing, 0}
		}
	case FormationLoose:
		for i := 1; i < count; i++ {
			side := float64((i+1)/2) * slotSpacing * 1.4
			if i%2 == 1 {
				side = -side
			}
			depth := 0.0
			if (i/2)%2 == 1 {
				depth = -slotSpacing
			}
			offsets[i] = [2]float64{depth, side}
		}
	}
	return offsets
}

// SlotWorld converts a local (forward, right) offset into a world position
// given the anchor position and heading in radians.
func SlotWorld(anchor cheer.Point, heading, fwd, right float64) cheer.Point {
	fx := math.Cos(heading)
	fy := math.Sin(heading)
	// Right is 90 degrees clockwise from forward.
	rx := -fy
	ry := fx
	return cheer.Point{
		X: anchor.X + fx*fwd + rx*right,
		Y: anchor.Y + fy*fwd + ry*right,
	}
}

// LayOut places the members on formation slots around anchor. The captain,
// if any, takes slot 0.
func (f *Formation) LayOut(anchor cheer.Point, heading float64) {
	ordered := make([]*Soldier, 0, len(f.members))
	if f.captain != nil {
		ordered = append(ordered, f.captain)
	}
	for _, m := range f.members {
		if m != f.captain {
			ordered = append(ordered, m)
		}
	}
	offsets := formationOffsets(f.Type, len(ordered))
	for i, s := range ordered {
		s.pos = SlotWorld(anchor, heading, offsets[i][0], offsets[i][1])
	}
}
