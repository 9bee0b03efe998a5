package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Cheer-Sense/internal/battle"
	"github.com/Garsondee/Cheer-Sense/internal/cheer"
	"github.com/Garsondee/Cheer-Sense/internal/settings"
)

type runStats struct {
	runIndex int
	seed     int64
	scenario string

	role       string
	pool       int
	satellites int
	kills      int

	groupsCreated   int
	groupsRemoved   int
	groupsLeft      int
	starts          int
	stops           int
	duplicateStarts int
	moraleGained    float64

	firstStartTick int
	lastStopTick   int
	cheered        map[string]struct{}
}

func main() {
	var runs int
	var seconds float64
	var dt float64
	var seedBase int64
	var seedStep int64
	var scenario string
	var configPath string
	var copyReport bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.Float64Var(&seconds, "seconds", 5, "simulated seconds after the cheer key")
	flag.Float64Var(&dt, "dt", 1.0/60, "seconds per tick")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "all", "scenario name (general|captain|hero|all)")
	flag.StringVar(&configPath, "config", "", "optional yaml settings file")
	flag.BoolVar(&copyReport, "copy", false, "copy the report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if seconds <= 0 || dt <= 0 {
		fmt.Println("error: -seconds and -dt must be > 0")
		return
	}
	scenarios, err := selectScenarios(scenario)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	cfg := settings.Resolve(configPath).Config()

	var report strings.Builder
	out := io.MultiWriter(os.Stdout, &report)
	writeReport(out, scenarios, cfg, runs, seedBase, seedStep, seconds, dt)

	if copyReport {
		if err := clipboard.WriteAll(report.String()); err != nil {
			fmt.Printf("warning: copy to clipboard: %v\n", err)
		} else {
			fmt.Println("(report copied to clipboard)")
		}
	}
}

func selectScenarios(name string) ([]battle.Scenario, error) {
	if name == "all" {
		return battle.Scenarios(), nil
	}
	sc, err := battle.ScenarioByName(name)
	if err != nil {
		return nil, fmt.Errorf("%w (supported: general, captain, hero, all)", err)
	}
	return []battle.Scenario{sc}, nil
}

func writeReport(w io.Writer, scenarios []battle.Scenario, cfg cheer.Config, runs int, seedBase, seedStep int64, seconds, dt float64) {
	fmt.Fprintf(w, "=== Headless Cheer Report ===\n")
	fmt.Fprintf(w, "runs=%d seconds=%.2f dt=%.4f seed_base=%d seed_step=%d\n", runs, seconds, dt, seedBase, seedStep)
	fmt.Fprintf(w, "config: key=%s kills=%d leadership_cap=%.0f max_morale=%.0f hero_radius=%.0f\n\n",
		cfg.TriggerKey, cfg.MeterThreshold, cfg.LeadershipThreshold, cfg.MaxMoraleGain, cfg.UnassignedHeroRadius)

	for _, sc := range scenarios {
		all := make([]runStats, 0, runs)
		for i := 0; i < runs; i++ {
			seed := seedBase + int64(i)*seedStep
			rs := runScenario(sc, cfg, i+1, seed, seconds, dt)
			all = append(all, rs)
			printRun(w, rs)
		}
		printAggregate(w, sc.Name, all)
	}
}

// runScenario banks the meter through kills, presses the cheer key once and
// lets the cheer play out.
func runScenario(sc battle.Scenario, cfg cheer.Config, runIndex int, seed int64, seconds, dt float64) runStats {
	sim := sc.Build(seed, cfg)
	kills := sim.BankMeter()
	sim.TriggerCheer(dt)
	sim.RunFor(seconds, dt)

	log := sim.Behavior.Log()
	rs := runStats{
		runIndex:        runIndex,
		seed:            seed,
		scenario:        sc.Name,
		kills:           kills,
		groupsCreated:   log.CountCategory("group", "created"),
		groupsRemoved:   log.CountCategory("group", "removed"),
		groupsLeft:      sim.Behavior.Orchestrator().GroupCount(),
		starts:          log.CountCategory("cheer", "start"),
		stops:           log.CountCategory("cheer", "stop"),
		duplicateStarts: countDuplicateStarts(log.Entries()),
		firstStartTick:  -1,
		lastStopTick:    -1,
		cheered:         map[string]struct{}{},
	}
	if e, ok := log.LastOf("trigger", "formed"); ok {
		rs.satellites = int(e.NumVal)
		_, _ = fmt.Sscanf(e.Value, "role=%s pool=%d", &rs.role, &rs.pool)
	}
	for _, e := range log.Entries() {
		switch {
		case e.Category == "cheer" && e.Key == "start":
			if rs.firstStartTick < 0 {
				rs.firstStartTick = e.Tick
			}
			rs.cheered[e.Participant] = struct{}{}
		case e.Category == "cheer" && e.Key == "stop":
			rs.lastStopTick = e.Tick
		case e.Category == "morale" && e.Key == "gain":
			rs.moraleGained += e.NumVal
		}
	}
	return rs
}

// countDuplicateStarts counts cheer starts for a participant that is
// already cheering.
func countDuplicateStarts(entries []cheer.EventLogEntry) int {
	active := map[string]bool{}
	dup := 0
	for _, e := range entries {
		if e.Category != "cheer" {
			continue
		}
		switch e.Key {
		case "start":
			if active[e.Participant] {
				dup++
			}
			active[e.Participant] = true
		case "stop":
			delete(active, e.Participant)
		}
	}
	return dup
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- %s run %d (seed=%d) ---\n", rs.scenario, rs.runIndex, rs.seed)
	fmt.Fprintf(w, "trigger: role=%s pool=%d satellites=%d kills_to_fill=%d\n", rs.role, rs.pool, rs.satellites, rs.kills)
	fmt.Fprintf(w, "groups: created=%d removed=%d left=%d\n", rs.groupsCreated, rs.groupsRemoved, rs.groupsLeft)
	fmt.Fprintf(w, "cheers: starts=%d stops=%d duplicate_starts=%d morale_gained=%.0f\n",
		rs.starts, rs.stops, rs.duplicateStarts, rs.moraleGained)
	fmt.Fprintf(w, "timing: first_start_tick=%d last_stop_tick=%d\n", rs.firstStartTick, rs.lastStopTick)
	fmt.Fprintf(w, "cheered: %s\n\n", joinSet(rs.cheered))
}

func printAggregate(w io.Writer, scenario string, all []runStats) {
	var satellites, starts, stops, dups, left int
	var morale float64
	for _, rs := range all {
		satellites += rs.satellites
		starts += rs.starts
		stops += rs.stops
		dups += rs.duplicateStarts
		left += rs.groupsLeft
		morale += rs.moraleGained
	}
	n := len(all)
	fmt.Fprintf(w, "=== Aggregate: %s ===\n", scenario)
	fmt.Fprintf(w, "runs=%d\n", n)
	fmt.Fprintf(w, "avg_per_run: satellites=%.1f starts=%.1f stops=%.1f morale_gained=%.1f\n",
		avg(satellites, n), avg(starts, n), avg(stops, n), avgF(morale, n))
	verdict := "ok"
	if dups > 0 || left > 0 {
		verdict = "VIOLATION"
	}
	fmt.Fprintf(w, "checks: duplicate_starts=%d groups_left=%d -> %s\n\n", dups, left, verdict)
}

func avg(sum int, n int) float64 {
	return avgF(float64(sum), n)
}

func avgF(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return sum / float64(n)
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
