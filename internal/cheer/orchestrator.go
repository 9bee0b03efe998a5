package cheer

import (
	"fmt"
	"math/rand"
)

// Orchestrator owns every pending and active cheer group plus the started
// registry, and advances them once per tick.
type Orchestrator struct {
	cfg   Config
	world World
	anim  Animator
	rng   *rand.Rand
	log   *EventLog
	tick  *int

	groups  groupArena
	started map[int]struct{} // participant IDs currently cheering

	logf func(format string, args ...any)
}

// NewOrchestrator creates an orchestrator. log may be nil. tick points at
// the caller's tick counter and is only read for event timestamps.
func NewOrchestrator(cfg Config, world World, anim Animator, rng *rand.Rand, log *EventLog, tick *int) *Orchestrator {
	if tick == nil {
		tick = new(int)
	}
	return &Orchestrator{
		cfg:     cfg.sanitized(),
		world:   world,
		anim:    anim,
		rng:     rng,
		log:     log,
		tick:    tick,
		started: make(map[int]struct{}),
		logf:    func(string, ...any) {},
	}
}

// Rally is the outcome of a single CreateGroup call.
type Rally struct {
	Role       Role
	PoolSize   int
	Satellites int
	Created    bool
}

// CreateGroup starts a cheer led by initiator: one group for the initiator
// at timer 0 and one staggered satellite group per selected co-cheerer.
// Ineligible initiators, or ones without a character profile, are ignored.
func (o *Orchestrator) CreateGroup(initiator Participant) Rally {
	if !eligible(initiator) || !initiator.HasCharacter() {
		return Rally{}
	}
	o.addGroup([]Participant{initiator}, 0, initiator)

	role := Classify(initiator)
	pool := candidatePool(o.world, o.cfg, initiator, role)
	skill := leadershipOf(initiator)
	count := o.cfg.SelectionCount(len(pool), skill)
	for _, p := range o.pick(pool, count) {
		delay := MinStagger + o.rng.Float64()*(MaxStagger-MinStagger)
		o.addGroup([]Participant{p}, SatelliteOffset+delay, initiator)
	}

	o.log.Add(*o.tick, initiator.Label(), "trigger", "formed",
		fmt.Sprintf("role=%s pool=%d selected=%d", role, len(pool), count), float64(count))
	o.logf("%s cheers as %s: %d of %d join", initiator.Label(), role, count, len(pool))
	return Rally{Role: role, PoolSize: len(pool), Satellites: count, Created: true}
}

// pick returns n members of pool chosen uniformly at random without
// replacement. pool itself is left untouched.
func (o *Orchestrator) pick(pool []Participant, n int) []Participant {
	if n <= 0 {
		return nil
	}
	shuffled := append([]Participant(nil), pool...)
	o.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

func (o *Orchestrator) addGroup(members []Participant, timer float64, leader Participant) {
	id := o.groups.insert(Group{Members: members, Timer: timer, Leader: leader})
	o.log.Add(*o.tick, members[0].Label(), "group", "created",
		fmt.Sprintf("id=%d timer=%.2f leader=%s", id, timer, leader.Label()), timer)
}

// Advance steps every group by dt seconds. Members of groups inside the
// cheering window start once; groups past StopThreshold stop all members and
// are removed after the pass. A non-positive or NaN dt is a paused tick.
func (o *Orchestrator) Advance(dt float64) {
	if !(dt > 0) {
		return
	}
	var finished []int
	for i := range o.groups.slots {
		slot := &o.groups.slots[i]
		if !slot.live {
			continue
		}
		g := &slot.group
		g.Timer += dt

		if g.Active() {
			for _, m := range g.Members {
				o.startCheer(m, g.Leader)
			}
		}
		if g.Timer >= StopThreshold {
			for _, m := range g.Members {
				o.stopCheer(m)
			}
			o.log.Add(*o.tick, g.Members[0].Label(), "group", "removed",
				fmt.Sprintf("id=%d timer=%.2f", g.ID, g.Timer), g.Timer)
			finished = append(finished, i)
		}
	}
	for _, idx := range finished {
		o.groups.release(idx)
	}
	o.groups.compact()
}

func (o *Orchestrator) startCheer(p Participant, leader Participant) {
	if _, ok := o.started[p.ID()]; ok {
		return
	}
	if !p.Active() {
		return
	}
	variant := o.rng.Intn(CheerVariants)
	o.anim.PlayStartAction(p, variant)
	o.anim.PlayVoiceCue(p)

	gain := o.cfg.MoraleGain(leadershipOf(leader))
	p.SetMorale(p.Morale() + float64(gain))
	o.started[p.ID()] = struct{}{}

	o.log.Add(*o.tick, p.Label(), "cheer", "start",
		fmt.Sprintf("variant=%d leader=%s", variant, leader.Label()), float64(variant))
	o.log.Add(*o.tick, p.Label(), "morale", "gain",
		fmt.Sprintf("+%d → %.0f", gain, p.Morale()), float64(gain))
}

func (o *Orchestrator) stopCheer(p Participant) {
	if p.Active() {
		o.anim.PlayStopAction(p)
	}
	delete(o.started, p.ID())
	o.log.Add(*o.tick, p.Label(), "cheer", "stop", "", 0)
}

// Groups returns a copy of every live group.
func (o *Orchestrator) Groups() []Group {
	return o.groups.snapshot()
}

// GroupCount is the number of live groups.
func (o *Orchestrator) GroupCount() int {
	return o.groups.len()
}

// Cheering reports whether p is in the started registry.
func (o *Orchestrator) Cheering(p Participant) bool {
	if p == nil {
		return false
	}
	_, ok := o.started[p.ID()]
	return ok
}

// CheeringCount is the size of the started registry.
func (o *Orchestrator) CheeringCount() int {
	return len(o.started)
}
