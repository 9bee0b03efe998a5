package cheer

import (
	"fmt"
	"strings"
)

// EventLogEntry is one thing the controller did on a given tick.
type EventLogEntry struct {
	Tick        int
	Participant string  // who it happened to, e.g. "S3"
	Category    string  // trigger, group, cheer, morale, meter
	Key         string  // formed, created, removed, start, stop, gain, increment, reset
	Value       string  // free-form detail for humans
	NumVal      float64 // selected count, cue variant, morale gain or meter value
}

// String renders the entry for the viewer panel and the headless report:
//
//	[T=042] S0   cheer     start            variant=2 leader=S0
func (e EventLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Participant, e.Category, e.Key, e.Value)
}

// EventLog keeps every controller event for the life of a battle. The bounded
// on-screen text lives in MessageFeed instead. A nil *EventLog drops writes.
type EventLog struct {
	entries []EventLogEntry
}

func NewEventLog() *EventLog {
	return &EventLog{}
}

// Add appends an entry. Safe on a nil log.
func (el *EventLog) Add(tick int, participant, category, key, value string, numVal float64) {
	if el == nil {
		return
	}
	el.entries = append(el.entries, EventLogEntry{
		Tick:        tick,
		Participant: participant,
		Category:    category,
		Key:         key,
		Value:       value,
		NumVal:      numVal,
	})
}

// Entries returns the entries oldest first.
func (el *EventLog) Entries() []EventLogEntry {
	if el == nil {
		return nil
	}
	return el.entries
}

// Filter returns the entries of one category, narrowed to one key when key
// is set. An empty category matches every category.
func (el *EventLog) Filter(category, key string) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory counts entries the way Filter selects them, e.g.
// CountCategory("cheer", "start") is the number of participants that began
// cheering.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the newest entry Filter would select.
func (el *EventLog) LastOf(category, key string) (EventLogEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// Format renders one String line per entry.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
