package cheer

// Role decides which participants an initiator can rally.
type Role int

const (
	RoleNone           Role = iota // no co-cheerers
	RoleGeneral                    // whole team
	RoleCaptain                    // own formation
	RoleUnassignedHero             // everyone nearby
)

func (r Role) String() string {
	switch r {
	case RoleGeneral:
		return "general"
	case RoleCaptain:
		return "captain"
	case RoleUnassignedHero:
		return "unassigned_hero"
	default:
		return "none"
	}
}

func isGeneral(p Participant) bool {
	t := p.Team()
	return t != nil && sameParticipant(t.General(), p)
}

func isCaptain(p Participant) bool {
	f := p.Formation()
	return f != nil && sameParticipant(f.Captain(), p)
}

// Classify returns the first matching role in precedence order
// general, captain, unassigned hero.
func Classify(p Participant) Role {
	switch {
	case p == nil:
		return RoleNone
	case isGeneral(p):
		return RoleGeneral
	case isCaptain(p):
		return RoleCaptain
	case p.HasCharacter() && p.Hero():
		return RoleUnassignedHero
	default:
		return RoleNone
	}
}

// candidatePool returns the eligible co-cheerers of initiator for role.
// The initiator itself is never part of the pool.
func candidatePool(w World, cfg Config, initiator Participant, role Role) []Participant {
	switch role {
	case RoleGeneral:
		return generalPool(w, initiator)
	case RoleCaptain:
		return captainPool(w, initiator)
	case RoleUnassignedHero:
		return radiusPool(w, initiator, cfg.UnassignedHeroRadius)
	default:
		return nil
	}
}

func generalPool(w World, initiator Participant) []Participant {
	var out []Participant
	for _, p := range w.ActiveTeamMembers(initiator.Team()) {
		if sameParticipant(p, initiator) || !eligible(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func captainPool(w World, initiator Participant) []Participant {
	f := initiator.Formation()
	captain := f.Captain()
	var out []Participant
	for _, p := range w.ActiveTeamMembers(f.Team()) {
		if sameParticipant(p, initiator) || !eligible(p) {
			continue
		}
		pf := p.Formation()
		if pf == nil || !sameParticipant(pf.Captain(), captain) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func radiusPool(w World, initiator Participant, radius float64) []Participant {
	origin := initiator.Position()
	var out []Participant
	for _, p := range w.Participants() {
		if sameParticipant(p, initiator) || !eligible(p) {
			continue
		}
		if p.Position().Distance(origin) > radius {
			continue
		}
		out = append(out, p)
	}
	return out
}
