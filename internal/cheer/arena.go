package cheer

// Group is one pending or active cheer. Members are referenced, never owned.
type Group struct {
	ID      int
	Members []Participant
	Timer   float64 // seconds since creation, offset by the creation delay
	Leader  Participant
}

// Active reports whether the group's timer is inside the cheering window.
func (g Group) Active() bool {
	return g.Timer >= 0 && g.Timer < StopThreshold
}

type groupSlot struct {
	group Group
	live  bool
}

// groupArena stores groups in index-stable slots. Releasing a slot only marks
// it free, so a pass over the slots is never disturbed by removals; freed
// slots are reused by later inserts and trailing free slots are trimmed by
// compact between passes.
type groupArena struct {
	slots  []groupSlot
	free   []int
	nextID int
}

func (a *groupArena) insert(g Group) int {
	g.ID = a.nextID
	a.nextID++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[idx] = groupSlot{group: g, live: true}
		return g.ID
	}
	a.slots = append(a.slots, groupSlot{group: g, live: true})
	return g.ID
}

func (a *groupArena) release(idx int) {
	if idx < 0 || idx >= len(a.slots) || !a.slots[idx].live {
		return
	}
	a.slots[idx] = groupSlot{}
	a.free = append(a.free, idx)
}

// compact drops free slots at the tail and rebuilds the free list.
func (a *groupArena) compact() {
	end := len(a.slots)
	for end > 0 && !a.slots[end-1].live {
		end--
	}
	if end == len(a.slots) {
		return
	}
	a.slots = a.slots[:end]
	kept := a.free[:0]
	for _, idx := range a.free {
		if idx < end {
			kept = append(kept, idx)
		}
	}
	a.free = kept
}

func (a *groupArena) len() int {
	return len(a.slots) - len(a.free)
}

// snapshot copies every live group in slot order.
func (a *groupArena) snapshot() []Group {
	out := make([]Group, 0, a.len())
	for _, s := range a.slots {
		if !s.live {
			continue
		}
		g := s.group
		g.Members = append([]Participant(nil), g.Members...)
		out = append(out, g)
	}
	return out
}
