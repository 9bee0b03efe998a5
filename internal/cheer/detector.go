package cheer

import "fmt"

// Detector watches the controlled participant's trigger key and the cheer
// meter banked from kills, and starts a cheer when both allow it.
type Detector struct {
	cfg   Config
	world World
	input Input
	orch  *Orchestrator
	log   *EventLog
	tick  *int

	meter int
}

// NewDetector wires a detector to the orchestrator it feeds.
func NewDetector(cfg Config, world World, input Input, orch *Orchestrator, log *EventLog, tick *int) *Detector {
	if tick == nil {
		tick = new(int)
	}
	return &Detector{
		cfg:   cfg.sanitized(),
		world: world,
		input: input,
		orch:  orch,
		log:   log,
		tick:  tick,
	}
}

// Meter is the current kill count toward the next cheer.
func (d *Detector) Meter() int {
	return d.meter
}

// Ready reports whether the meter allows a cheer.
func (d *Detector) Ready() bool {
	return d.meter >= d.cfg.MeterThreshold
}

// Controlled resolves the participant the player is steering: the main
// participant when it is player controlled, otherwise the first
// player-controlled live participant, otherwise nil.
func (d *Detector) Controlled() Participant {
	if m := d.world.Main(); m != nil && m.PlayerControlled() {
		return m
	}
	for _, p := range d.world.Participants() {
		if p != nil && p.PlayerControlled() {
			return p
		}
	}
	return nil
}

// Tick checks the trigger for this frame and reports whether a cheer was
// started.
func (d *Detector) Tick(dt float64) bool {
	p := d.Controlled()
	if p == nil {
		return false
	}
	if !d.input.IsKeyPressed(d.cfg.TriggerKey) || !d.Ready() {
		return false
	}
	d.orch.CreateGroup(p)
	d.log.Add(*d.tick, p.Label(), "meter", "reset",
		fmt.Sprintf("%d → 0", d.meter), 0)
	d.meter = 0
	return true
}

// CreditKill banks a kill toward the next cheer. Only kills by the main
// participant count, and the meter stops at the threshold. Callers are
// responsible for the battle-context gate.
func (d *Detector) CreditKill(victim, killer Participant) {
	if victim == nil || killer == nil || sameParticipant(victim, killer) {
		return
	}
	if d.Ready() {
		return
	}
	if !sameParticipant(killer, d.world.Main()) {
		return
	}
	d.meter++
	d.log.Add(*d.tick, killer.Label(), "meter", "increment",
		fmt.Sprintf("%d/%d after %s", d.meter, d.cfg.MeterThreshold, victim.Label()), float64(d.meter))
}
