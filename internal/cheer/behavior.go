// Package cheer implements the battle cheer controller: a per-tick behavior
// that lets the player spend banked kills on a rallying cheer, pulls nearby
// troops into a staggered group reaction and boosts their morale according
// to the initiator's leadership.
package cheer

import (
	"fmt"
	"math/rand"
)

// Behavior is the host-facing entry point. The host calls OnTick once per
// simulation tick and OnParticipantRemoved whenever a participant leaves the
// battle; both calls must be serial.
type Behavior struct {
	cfg  Config
	host Host

	orch *Orchestrator
	det  *Detector
	log  *EventLog
	feed *MessageFeed

	tick    int
	elapsed float64
}

// NewBehavior builds a behavior for one mission.
func NewBehavior(cfg Config, host Host, rng *rand.Rand) *Behavior {
	cfg = cfg.sanitized()
	b := &Behavior{
		cfg:  cfg,
		host: host,
		log:  NewEventLog(),
		feed: NewMessageFeed(),
	}
	b.orch = NewOrchestrator(cfg, host, host, rng, b.log, &b.tick)
	b.orch.logf = b.logf
	b.det = NewDetector(cfg, host, host, b.orch, b.log, &b.tick)
	return b
}

// Eligible reports whether cheering is allowed in the current mission.
func (b *Behavior) Eligible() bool {
	return b.cfg.Enabled && b.host.EligibleBattle()
}

// OnTick runs trigger detection (only when eligible) and then advances every
// cheer group. Groups already formed keep draining while the context is
// ineligible so no participant is left mid-cheer.
func (b *Behavior) OnTick(dt float64) {
	b.tick++
	if dt > 0 {
		b.elapsed += dt
	}
	if b.Eligible() {
		if b.det.Tick(dt) {
			b.logf("cheer meter spent")
		}
	}
	b.orch.Advance(dt)
}

// OnParticipantRemoved credits kills toward the player's cheer meter.
func (b *Behavior) OnParticipantRemoved(victim, killer Participant) {
	if !b.Eligible() {
		return
	}
	before := b.det.Meter()
	b.det.CreditKill(victim, killer)
	if after := b.det.Meter(); after != before && b.det.Ready() {
		b.logf("cheer ready (%d/%d)", after, b.cfg.MeterThreshold)
	}
}

// logf writes to the message feed when debug logging is on.
func (b *Behavior) logf(format string, args ...any) {
	if !b.cfg.LoggingEnabled {
		return
	}
	b.feed.Add(b.tick, fmt.Sprintf(format, args...))
}

// Config returns the configuration the behavior runs with.
func (b *Behavior) Config() Config { return b.cfg }

// Orchestrator exposes the group engine for inspection.
func (b *Behavior) Orchestrator() *Orchestrator { return b.orch }

// Detector exposes the trigger detector for inspection.
func (b *Behavior) Detector() *Detector { return b.det }

// Log is the structured event log.
func (b *Behavior) Log() *EventLog { return b.log }

// Feed is the debug message feed.
func (b *Behavior) Feed() *MessageFeed { return b.feed }

// Tick is the number of OnTick calls so far.
func (b *Behavior) Tick() int { return b.tick }

// Elapsed is the simulated time in seconds.
func (b *Behavior) Elapsed() float64 { return b.elapsed }
