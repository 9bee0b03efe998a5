// Package battle is a headless battlefield that hosts the cheer controller:
// soldiers, teams, formations, a mission gate, scripted input and a
// functional-options harness for scenarios and tests.
package battle

// Mode is the kind of mission being played.
type Mode int

const (
	ModeFieldBattle Mode = iota
	ModeSallyOut
	ModeSiege
	ModeVillage // town and village scenes, no fighting
	ModeArena   // practice and tournaments
)

func (m Mode) String() string {
	switch m {
	case ModeFieldBattle:
		return "field_battle"
	case ModeSallyOut:
		return "sally_out"
	case ModeSiege:
		return "siege"
	case ModeVillage:
		return "village"
	case ModeArena:
		return "arena"
	default:
		return "unknown"
	}
}

// Mission is the running scene.
type Mission struct {
	Mode   Mode
	Active bool
}

// Eligible reports whether cheering is allowed: the mission must be running
// and be a field battle, sally out or siege.
func (m Mission) Eligible() bool {
	if !m.Active {
		return false
	}
	switch m.Mode {
	case ModeFieldBattle, ModeSallyOut, ModeSiege:
		return true
	default:
		return false
	}
}
