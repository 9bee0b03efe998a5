package battle

import (
	"fmt"
	"math"

	"github.com/Garsondee/Cheer-Sense/internal/cheer"
)

// Scenario builds a ready-to-run Sim.
type Scenario struct {
	Name  string
	Title string
	Build func(seed int64, cfg cheer.Config) *Sim
}

// Scenarios lists the built-in scenarios in display order.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "general", Title: "General rallies the army", Build: GeneralScenario},
		{Name: "captain", Title: "Captain rallies a formation", Build: CaptainScenario},
		{Name: "hero", Title: "Unassigned hero rallies nearby troops", Build: HeroScenario},
	}
}

// ScenarioByName finds a built-in scenario.
func ScenarioByName(name string) (Scenario, error) {
	for _, sc := range Scenarios() {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q", name)
}

const (
	friendlyTeam = 0
	enemyTeam    = 1
)

// enemyLine adds count enemy soldiers in a formation facing the friendly
// army from 60 m away.
func enemyLine(firstID, count int) []SimOption {
	opts := []SimOption{WithTeam(enemyTeam, "Battania"), WithFormation(90, enemyTeam)}
	ids := make([]int, 0, count)
	for i := 0; i < count; i++ {
		id := firstID + i
		opts = append(opts, WithSoldier(id, enemyTeam, 0, 0, 20))
		ids = append(ids, id)
	}
	opts = append(opts, WithFormationLine(90, 0, -60, math.Pi/2, ids...))
	return opts
}

// formationBlock adds count soldiers with ids starting at firstID to a
// formation and lays them out in shape ft around (x,y).
func formationBlock(formationID int, ft FormationType, firstID, count int, x, y float64, leadership int) []SimOption {
	opts := []SimOption{WithFormation(formationID, friendlyTeam)}
	ids := make([]int, 0, count)
	for i := 0; i < count; i++ {
		id := firstID + i
		opts = append(opts, WithSoldier(id, friendlyTeam, 0, 0, leadership))
		ids = append(ids, id)
	}
	opts = append(opts, WithFormationLayout(formationID, ft, x, y, -math.Pi/2, ids...))
	return opts
}

// GeneralScenario is a field battle where the player is the army's general.
// A line and a column stand behind the general with two mounts.
func GeneralScenario(seed int64, cfg cheer.Config) *Sim {
	opts := []SimOption{
		WithSeed(seed),
		WithMode(ModeFieldBattle),
		WithConfig(cfg),
		WithTeam(friendlyTeam, "Vlandia"),
		WithSoldier(0, friendlyTeam, 0, 8, 300),
		WithGeneral(0),
		WithHero(0),
		WithMain(0),
		WithMount(40, friendlyTeam, 2, 9),
		WithMount(41, friendlyTeam, -2, 9),
	}
	opts = append(opts, formationBlock(1, FormationLine, 1, 12, -10, 0, 40)...)
	opts = append(opts, WithCaptain(1, 1))
	opts = append(opts, formationBlock(2, FormationColumn, 20, 8, 10, 0, 30)...)
	opts = append(opts, WithCaptain(2, 20))
	opts = append(opts, enemyLine(100, 10)...)
	return NewSim(opts...)
}

// CaptainScenario is a siege where the player captains a formation while an
// AI general commands the army.
func CaptainScenario(seed int64, cfg cheer.Config) *Sim {
	opts := []SimOption{
		WithSeed(seed),
		WithMode(ModeSiege),
		WithConfig(cfg),
		WithTeam(friendlyTeam, "Sturgia"),
		WithSoldier(0, friendlyTeam, 0, 20, 250),
		WithGeneral(0),
		WithHero(0),
	}
	opts = append(opts, formationBlock(1, FormationLine, 1, 14, 0, 0, 20)...)
	opts = append(opts,
		WithCaptain(1, 1),
		WithHero(1),
		WithMain(1),
	)
	// Runs in the role pass, after every soldier exists with its default skill.
	opts = append(opts, withLeadership(1, 200))
	opts = append(opts, formationBlock(2, FormationLoose, 30, 10, 25, 0, 20)...)
	opts = append(opts, WithCaptain(2, 30))
	opts = append(opts, enemyLine(100, 12)...)
	return NewSim(opts...)
}

// HeroScenario is a sally out where the player is a companion with no
// command. Troops stand at increasing distances so only some are in range.
func HeroScenario(seed int64, cfg cheer.Config) *Sim {
	opts := []SimOption{
		WithSeed(seed),
		WithMode(ModeSallyOut),
		WithConfig(cfg),
		WithTeam(friendlyTeam, "Khuzait"),
		WithSoldier(0, friendlyTeam, 0, 40, 280),
		WithGeneral(0),
		WithSoldier(50, friendlyTeam, 0, 0, 150),
		WithHero(50),
		WithMain(50),
		WithFormation(1, friendlyTeam),
		WithMount(60, friendlyTeam, 1, 1),
	}
	ids := []int{}
	for i, d := range []float64{2, 3.5, 5, 6, 7.5, 9, 9.8, 12, 15, 20, 25, 30} {
		id := 1 + i
		angle := float64(i) * 0.9
		opts = append(opts, WithSoldier(id, friendlyTeam, d*math.Cos(angle), d*math.Sin(angle), 10))
		ids = append(ids, id)
	}
	opts = append(opts, withFormationMembers(1, ids...))
	opts = append(opts, enemyLine(100, 8)...)
	return NewSim(opts...)
}

// withLeadership overrides one soldier's leadership skill.
func withLeadership(id, v int) SimOption {
	return SimOption{simOptRole, func(s *Sim) {
		if sol := s.Battle.SoldierByID(id); sol != nil {
			sol.leadership = v
		}
	}}
}

// withFormationMembers assigns soldiers to a formation without moving them.
func withFormationMembers(formationID int, ids ...int) SimOption {
	return SimOption{simOptRole, func(s *Sim) {
		f := s.Battle.FormationByID(formationID)
		if f == nil {
			return
		}
		for _, id := range ids {
			if sol := s.Battle.SoldierByID(id); sol != nil {
				f.Add(sol)
			}
		}
	}}
}
